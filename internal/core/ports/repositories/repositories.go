package repositories

import (
	"context"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterFilter narrows the movement set fetched for one register request.
// Zero values mean "no constraint" except DateFrom/DateTo which are required
// by the service layer before the repository is called.
type RegisterFilter struct {
	AccountID string
	DateFrom  time.Time
	DateTo    time.Time
	Source    string // "all", "transactions" or "journal"
	Search    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// AccountListFilter narrows the account list/hierarchy view.
type AccountListFilter struct {
	AccountType domain.AccountType
	Search      string
}

// AccountRepository persists ledger accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, filter AccountListFilter) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount hard-deletes an account row. Callers must have verified
	// that no movements or active children remain.
	DeleteAccount(ctx context.Context, accountID string) error
	// HasActiveChildren reports whether any active account references
	// accountID as its parent.
	HasActiveChildren(ctx context.Context, accountID string) (bool, error)
	// CountMovements returns the number of transaction and journal-line rows
	// referencing the account.
	CountMovements(ctx context.Context, accountID string) (int, error)
	// ReassignMovements moves every transaction and journal line from one
	// account to another inside a single database transaction.
	ReassignMovements(ctx context.Context, fromAccountID, toAccountID, memberID string, now time.Time) error
}

// MovementRepository reads the normalized union of the two movement stores
// and writes simple transactions.
type MovementRepository interface {
	// FetchMovements returns filtered movements from both stores merged and
	// sorted by (entry_date, source, entry_id).
	FetchMovements(ctx context.Context, filter RegisterFilter) ([]domain.Movement, error)
	// SumAccountMovements returns total debits and credits for an account,
	// dated strictly before the boundary (all time when before is nil).
	SumAccountMovements(ctx context.Context, accountID string, before *time.Time) (debit, credit decimal.Decimal, err error)
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// JournalRepository persists journals, their lines and the adjustment audit
// trail.
type JournalRepository interface {
	// CreateJournalWithLines inserts the journal header and all lines inside
	// one database transaction, rolled back wholesale on any failure.
	CreateJournalWithLines(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	// SaveAdjustmentAudit appends one audit row. Best-effort from the
	// caller's perspective: failures are logged, never fatal.
	SaveAdjustmentAudit(ctx context.Context, audit domain.AdjustmentAudit) error
}

// MemberRepository persists club members.
type MemberRepository interface {
	SaveMember(ctx context.Context, member domain.Member) error
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)
	ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error)
	UpdateMember(ctx context.Context, member domain.Member) error
	DeactivateMember(ctx context.Context, memberID string, updatedBy string, now time.Time) error
}

// RepositoryProvider bundles all repositories for wiring in main.
type RepositoryProvider struct {
	AccountRepo  AccountRepository
	MovementRepo MovementRepository
	JournalRepo  JournalRepository
	MemberRepo   MemberRepository
	SpamRepo     SpamRepository
}

// SpamRepository persists scored submissions and answers IP reputation
// queries.
type SpamRepository interface {
	SaveSignal(ctx context.Context, signal domain.SpamSignal) error
	// CountRecentFlagged returns how many REVIEW/BLOCK signals the IP has
	// accumulated since the given time.
	CountRecentFlagged(ctx context.Context, ip string, since time.Time) (int, error)
}
