package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/utils"
	"github.com/clubledger/clubledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// AdjustmentService posts manually entered, self-balancing debit/credit
// pairs used to true-up account balances outside normal entry.
type AdjustmentService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
}

// NewAdjustmentService creates a new adjustment poster.
func NewAdjustmentService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) *AdjustmentService {
	return &AdjustmentService{accountRepo: accountRepo, journalRepo: journalRepo}
}

// Ensure AdjustmentService implements portssvc.AdjustmentSvc
var _ portssvc.AdjustmentSvc = (*AdjustmentService)(nil)

// PostAdjustment validates the request, then writes the journal header and
// the mirrored line pair inside one database transaction. The audit row is
// recorded after the commit and is advisory: its failure is logged and
// swallowed, never unwinding the journal.
func (s *AdjustmentService) PostAdjustment(ctx context.Context, req dto.PostAdjustmentRequest, memberID, ip string) (*domain.Journal, error) {
	if strings.TrimSpace(req.Memo) == "" {
		return nil, fmt.Errorf("%w: memo is required", apperrors.ErrValidation)
	}
	if req.AccountID == req.OffsetAccountID {
		return nil, fmt.Errorf("%w: primary and offset accounts must differ", apperrors.ErrValidation)
	}
	if err := accounting.ValidateAdjustmentAmounts(req.DebitAmount, req.CreditAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// Resolve both accounts with a single query; any miss aborts before
	// writes.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.AccountID, req.OffsetAccountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve accounts for adjustment")
		return nil, err
	}
	if _, ok := accounts[req.AccountID]; !ok {
		return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, req.AccountID)
	}
	if _, ok := accounts[req.OffsetAccountID]; !ok {
		return nil, fmt.Errorf("%w: offset account %s does not exist", apperrors.ErrValidation, req.OffsetAccountID)
	}

	now := time.Now()
	refNo, err := generateAdjustmentReference(now)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate adjustment reference")
		return nil, apperrors.NewAppError(500, "failed to generate adjustment reference", err)
	}

	source := req.EntrySource
	if source == "" {
		source = "adjustment"
	}
	lineDescription := req.EntryMemo
	if lineDescription == "" {
		lineDescription = req.Memo
	}

	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		JournalDate: req.AdjustDate,
		Memo:        req.Memo,
		Source:      source,
		RefNo:       refNo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		},
	}

	// The offset line mirrors the primary line's amounts, so the journal
	// balances by construction rather than by validation.
	lines := accounting.MirroredPair(
		journal.JournalID,
		req.AccountID,
		req.OffsetAccountID,
		req.DebitAmount,
		req.CreditAmount,
		uuid.NewString(),
		uuid.NewString(),
		lineDescription,
	)
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		s.LogError(ctx, err, "Adjustment journal failed the balance check",
			slog.String("journal_id", journal.JournalID))
		return nil, apperrors.NewAppError(500, "adjustment journal does not balance", err)
	}

	if err := s.journalRepo.CreateJournalWithLines(ctx, journal, lines); err != nil {
		s.LogError(ctx, err, "Failed to post adjustment journal",
			slog.String("journal_id", journal.JournalID),
			slog.String("ref_no", refNo))
		return nil, err
	}

	audit := domain.AdjustmentAudit{
		AuditID:          uuid.NewString(),
		JournalID:        journal.JournalID,
		PrimaryAccountID: req.AccountID,
		OffsetAccountID:  req.OffsetAccountID,
		Debit:            req.DebitAmount,
		Credit:           req.CreditAmount,
		Reason:           req.Memo,
		EntryReference:   req.EntryReference,
		EntrySource:      source,
		EntryMemo:        req.EntryMemo,
		CreatedBy:        memberID,
		IPAddress:        ip,
		CreatedAt:        now,
	}
	if err := s.journalRepo.SaveAdjustmentAudit(ctx, audit); err != nil {
		// The audit trail is advisory; the journal stands regardless.
		s.LogError(ctx, err, "Failed to record adjustment audit row",
			slog.String("journal_id", journal.JournalID))
	}

	s.LogInfo(ctx, "Adjustment posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("ref_no", refNo),
		slog.String("primary_account_id", req.AccountID),
		slog.String("offset_account_id", req.OffsetAccountID))
	return &journal, nil
}

// GetJournal retrieves a journal header with its lines.
func (s *AdjustmentService) GetJournal(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalLine, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, err
	}
	return journal, lines, nil
}

// generateAdjustmentReference builds the ADJ-<timestamp>-<4 hex> reference.
func generateAdjustmentReference(now time.Time) (string, error) {
	suffix, err := utils.GenerateSecureRandomString(2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ADJ-%d-%s", now.Unix(), suffix), nil
}
