package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// Scoring weights and thresholds. A submission accumulates points per
// triggered heuristic; totals at or above reviewThreshold are queued for
// review, at or above blockThreshold they are rejected outright.
const (
	blockThreshold  = 70
	reviewThreshold = 40

	weightFlaggedIP      = 25
	weightKeywordHit     = 15
	weightDisposableMail = 30
	weightFastFill       = 30
	weightNoRenderStamp  = 10

	ipLookbackWindow = 24 * time.Hour
	minFillTime      = 3 * time.Second
)

// spamKeywords are matched case-insensitively against the free-text content.
var spamKeywords = []string{
	"viagra", "casino", "crypto giveaway", "forex", "seo services",
	"buy followers", "loan approval", "click here", "work from home",
}

// disposableDomains are throwaway mail providers commonly used by bots.
var disposableDomains = []string{
	"mailinator.com", "guerrillamail.com", "tempmail.com", "10minutemail.com",
	"throwaway.email", "yopmail.com",
}

// SpamService scores public form submissions with weighted heuristics and
// records every verdict as an IP reputation signal.
type SpamService struct {
	BaseService
	spamRepo portsrepo.SpamRepository
}

// NewSpamService creates a new spam scorer.
func NewSpamService(spamRepo portsrepo.SpamRepository) *SpamService {
	return &SpamService{spamRepo: spamRepo}
}

// Ensure SpamService implements portssvc.SpamSvc
var _ portssvc.SpamSvc = (*SpamService)(nil)

// ScoreSubmission evaluates each heuristic, sums the weights and maps the
// total onto a verdict. The signal row is saved best-effort; a storage
// failure never blocks the caller.
func (s *SpamService) ScoreSubmission(ctx context.Context, sub domain.Submission) (domain.SpamAssessment, error) {
	score := 0
	var reasons []string

	if sub.IP != "" {
		flagged, err := s.spamRepo.CountRecentFlagged(ctx, sub.IP, sub.SubmittedAt.Add(-ipLookbackWindow))
		if err != nil {
			// Reputation lookup failure degrades to scoring without it.
			s.LogWarn(ctx, "IP reputation lookup failed", slog.String("ip", sub.IP), slog.Any("error", err))
		} else if flagged > 0 {
			score += weightFlaggedIP * flagged
			reasons = append(reasons, "ip recently flagged")
		}
	}

	content := strings.ToLower(sub.Content)
	for _, kw := range spamKeywords {
		if strings.Contains(content, kw) {
			score += weightKeywordHit
			reasons = append(reasons, "spam keyword: "+kw)
		}
	}

	if mailDomain := emailDomain(sub.Email); mailDomain != "" {
		for _, d := range disposableDomains {
			if mailDomain == d {
				score += weightDisposableMail
				reasons = append(reasons, "disposable email domain")
				break
			}
		}
	}

	if sub.FormRenderedAt.IsZero() {
		score += weightNoRenderStamp
		reasons = append(reasons, "missing form render timestamp")
	} else if sub.SubmittedAt.Sub(sub.FormRenderedAt) < minFillTime {
		score += weightFastFill
		reasons = append(reasons, "form filled too quickly")
	}

	verdict := domain.VerdictAllow
	switch {
	case score >= blockThreshold:
		verdict = domain.VerdictBlock
	case score >= reviewThreshold:
		verdict = domain.VerdictReview
	}

	assessment := domain.SpamAssessment{Score: score, Verdict: verdict, Reasons: reasons}

	signal := domain.SpamSignal{
		SignalID:  uuid.NewString(),
		IP:        sub.IP,
		Email:     sub.Email,
		Score:     score,
		Verdict:   verdict,
		CreatedAt: sub.SubmittedAt,
	}
	if err := s.spamRepo.SaveSignal(ctx, signal); err != nil {
		s.LogError(ctx, err, "Failed to save spam signal", slog.String("ip", sub.IP))
	}

	if verdict != domain.VerdictAllow {
		s.LogInfo(ctx, "Submission flagged",
			slog.String("verdict", string(verdict)),
			slog.Int("score", score),
			slog.String("ip", sub.IP))
	}
	return assessment, nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
