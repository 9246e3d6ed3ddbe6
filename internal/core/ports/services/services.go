package services

import (
	"context"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvc covers the ledger account lifecycle.
type AccountSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, memberID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, memberID string) (*domain.Account, error)
	// DeleteAccount removes an account. When the account still has movements
	// it fails with a count-specific validation error unless reassignTo names
	// the account that should absorb them.
	DeleteAccount(ctx context.Context, accountID string, reassignTo string, memberID string) error
	// SetupStandardChart bulk-creates the predefined chart of accounts,
	// skipping numbers that already exist.
	SetupStandardChart(ctx context.Context, memberID string) (created, skipped int, err error)
}

// BalanceSvc computes account balances from movement history.
type BalanceSvc interface {
	// OpeningBalance sums all movements dated strictly before asOf (all time
	// when nil), signed by the account type's convention. Unknown accounts
	// yield zero, not an error.
	OpeningBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// RegisterSvc merges both movement stores into one chronological, running-
// balance-annotated register.
type RegisterSvc interface {
	BuildRegister(ctx context.Context, params dto.RegisterParams) (*domain.RegisterResult, error)
}

// TransactionSvc records simple single-sided transactions.
type TransactionSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, memberID string) (*domain.Transaction, error)
}

// AdjustmentSvc posts balancing adjustment pairs.
type AdjustmentSvc interface {
	PostAdjustment(ctx context.Context, req dto.PostAdjustmentRequest, memberID, ip string) (*domain.Journal, error)
	GetJournal(ctx context.Context, journalID string) (*domain.Journal, []domain.JournalLine, error)
}

// MemberSvc covers membership and credentials.
type MemberSvc interface {
	Signup(ctx context.Context, req dto.SignupRequest, ip string) (*domain.Member, *domain.SpamAssessment, error)
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorID string) (*domain.Member, error)
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error)
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, updaterID string) (*domain.Member, error)
	DeactivateMember(ctx context.Context, memberID string, updaterID string) error
	Authenticate(ctx context.Context, email, password string) (*domain.Member, error)
}

// SpamSvc scores public form submissions.
type SpamSvc interface {
	ScoreSubmission(ctx context.Context, sub domain.Submission) (domain.SpamAssessment, error)
}

// ServiceContainer bundles all services for route registration.
type ServiceContainer struct {
	Account     AccountSvc
	Balance     BalanceSvc
	Register    RegisterSvc
	Transaction TransactionSvc
	Adjustment  AdjustmentSvc
	Member      MemberSvc
	Spam        SpamSvc
}
