package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// BalanceService computes opening balances from movement history.
type BalanceService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	movementRepo portsrepo.MovementRepository
}

// NewBalanceService creates a new balance calculator.
func NewBalanceService(accountRepo portsrepo.AccountRepository, movementRepo portsrepo.MovementRepository) *BalanceService {
	return &BalanceService{accountRepo: accountRepo, movementRepo: movementRepo}
}

// Ensure BalanceService implements portssvc.BalanceSvc
var _ portssvc.BalanceSvc = (*BalanceService)(nil)

// OpeningBalance sums all movements for the account dated strictly before
// asOf (all time when nil), signed by the account type's convention:
// Asset/Expense net to debits minus credits, Liability/Equity/Income to
// credits minus debits. An unknown account yields zero rather than an error.
func (s *BalanceService) OpeningBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Opening balance requested for unknown account",
				slog.String("account_id", accountID))
			return decimal.Zero, nil
		}
		s.LogError(ctx, err, "Failed to resolve account for opening balance",
			slog.String("account_id", accountID))
		return decimal.Zero, err
	}

	debit, credit, err := s.movementRepo.SumAccountMovements(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum movements for opening balance",
			slog.String("account_id", accountID))
		return decimal.Zero, err
	}

	balance, err := accounting.SignedDelta(account.AccountType, debit, credit)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply sign convention",
			slog.String("account_id", accountID),
			slog.String("account_type", string(account.AccountType)))
		return decimal.Zero, err
	}
	return balance, nil
}
