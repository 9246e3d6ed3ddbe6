package services

import (
	"context"
	"errors"
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
	"github.com/google/uuid"
)

// validCapabilities guards capability assignment against typos.
var validCapabilities = map[string]bool{
	domain.CapAccountingView:   true,
	domain.CapAccountingManage: true,
	domain.CapMemberManage:     true,
}

// MemberService covers membership, signup and credential checks.
type MemberService struct {
	BaseService
	memberRepo portsrepo.MemberRepository
	spamSvc    portssvc.SpamSvc
}

// NewMemberService creates a new member service.
func NewMemberService(memberRepo portsrepo.MemberRepository, spamSvc portssvc.SpamSvc) *MemberService {
	return &MemberService{memberRepo: memberRepo, spamSvc: spamSvc}
}

// Ensure MemberService implements portssvc.MemberSvc
var _ portssvc.MemberSvc = (*MemberService)(nil)

// Signup handles the public membership application. The submission is spam
// scored first: BLOCK rejects it, REVIEW creates the member inactive pending
// approval, ALLOW creates an active member. New members start with no
// capabilities either way.
func (s *MemberService) Signup(ctx context.Context, req dto.SignupRequest, ip string) (*domain.Member, *domain.SpamAssessment, error) {
	assessment, err := s.spamSvc.ScoreSubmission(ctx, domain.Submission{
		IP:             ip,
		Email:          req.Email,
		Content:        req.Name + " " + req.Message,
		FormRenderedAt: req.FormRenderedAt,
		SubmittedAt:    time.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to score signup submission")
		return nil, nil, err
	}
	if assessment.Verdict == domain.VerdictBlock {
		return nil, &assessment, fmt.Errorf("%w: submission rejected", apperrors.ErrValidation)
	}

	member, err := s.createMember(ctx, req.Name, req.Email, req.Password, nil, "signup")
	if err != nil {
		return nil, &assessment, err
	}

	if assessment.Verdict == domain.VerdictReview {
		member.IsActive = false
		member.LastUpdatedAt = time.Now()
		if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
			s.LogError(ctx, err, "Failed to hold member for review", slog.String("member_id", member.MemberID))
			return nil, &assessment, err
		}
		s.LogInfo(ctx, "Signup held for review",
			slog.String("member_id", member.MemberID),
			slog.Int("spam_score", assessment.Score))
	}

	return member, &assessment, nil
}

// CreateMember creates a member with explicit capabilities, on behalf of an
// administrator.
func (s *MemberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorID string) (*domain.Member, error) {
	if err := validateCapabilities(req.Capabilities); err != nil {
		return nil, err
	}
	return s.createMember(ctx, req.Name, req.Email, req.Password, req.Capabilities, creatorID)
}

func (s *MemberService) createMember(ctx context.Context, name, email, password string, capabilities []string, creatorID string) (*domain.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.memberRepo.FindMemberByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness")
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to process credentials", err)
	}

	if capabilities == nil {
		capabilities = []string{}
	}

	now := time.Now()
	member := domain.Member{
		MemberID:     uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Capabilities: capabilities,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save member", slog.String("member_id", member.MemberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member created", slog.String("member_id", member.MemberID))
	return &member, nil
}

// GetMemberByID retrieves a single member.
func (s *MemberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member", slog.String("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

// ListMembers retrieves a page of members.
func (s *MemberService) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	members, err := s.memberRepo.ListMembers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, err
	}
	return members, nil
}

// UpdateMember applies the requested field changes.
func (s *MemberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, updaterID string) (*domain.Member, error) {
	member, err := s.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		member.Name = *req.Name
		updated = true
	}
	if req.Capabilities != nil {
		if err := validateCapabilities(*req.Capabilities); err != nil {
			return nil, err
		}
		member.Capabilities = *req.Capabilities
		updated = true
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return member, nil
	}

	member.LastUpdatedAt = time.Now()
	member.LastUpdatedBy = updaterID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member updated", slog.String("member_id", memberID))
	return member, nil
}

// DeactivateMember marks a member inactive, revoking login.
func (s *MemberService) DeactivateMember(ctx context.Context, memberID string, updaterID string) error {
	if err := s.memberRepo.DeactivateMember(ctx, memberID, updaterID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate member", slog.String("member_id", memberID))
		}
		return err
	}
	s.LogInfo(ctx, "Member deactivated", slog.String("member_id", memberID))
	return nil
}

// Authenticate verifies credentials. All failure modes collapse into the
// same ErrForbidden so callers cannot distinguish unknown emails from wrong
// passwords or inactive accounts.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (*domain.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	member, err := s.memberRepo.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up member for login")
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.ErrForbidden
	}
	if !utils.CheckPasswordHash(password, member.PasswordHash) {
		return nil, apperrors.ErrForbidden
	}
	return member, nil
}

func validateCapabilities(capabilities []string) error {
	for _, c := range capabilities {
		if !validCapabilities[c] {
			return fmt.Errorf("%w: unknown capability '%s'", apperrors.ErrValidation, c)
		}
	}
	return nil
}
