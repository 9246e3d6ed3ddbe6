package services_test

import (
	"context"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountListFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) HasActiveChildren(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) CountMovements(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) ReassignMovements(ctx context.Context, fromAccountID, toAccountID, memberID string, now time.Time) error {
	args := m.Called(ctx, fromAccountID, toAccountID, memberID, now)
	return args.Error(0)
}

// MockMovementRepository is a mock type for the MovementRepository interface
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FetchMovements(ctx context.Context, filter portsrepo.RegisterFilter) ([]domain.Movement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) SumAccountMovements(ctx context.Context, accountID string, before *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockMovementRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepository interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) CreateJournalWithLines(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveAdjustmentAudit(ctx context.Context, audit domain.AdjustmentAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

// MockMemberRepository is a mock type for the MemberRepository interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) DeactivateMember(ctx context.Context, memberID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, memberID, updatedBy, now)
	return args.Error(0)
}

// MockSpamRepository is a mock type for the SpamRepository interface
type MockSpamRepository struct {
	mock.Mock
}

func (m *MockSpamRepository) SaveSignal(ctx context.Context, signal domain.SpamSignal) error {
	args := m.Called(ctx, signal)
	return args.Error(0)
}

func (m *MockSpamRepository) CountRecentFlagged(ctx context.Context, ip string, since time.Time) (int, error) {
	args := m.Called(ctx, ip, since)
	return args.Int(0), args.Error(1)
}

// MockBalanceSvc is a mock type for the BalanceSvc interface
type MockBalanceSvc struct {
	mock.Mock
}

func (m *MockBalanceSvc) OpeningBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSpamSvc is a mock type for the SpamSvc interface
type MockSpamSvc struct {
	mock.Mock
}

func (m *MockSpamSvc) ScoreSubmission(ctx context.Context, sub domain.Submission) (domain.SpamAssessment, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(domain.SpamAssessment), args.Error(1)
}
