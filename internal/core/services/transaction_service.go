package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/google/uuid"
)

// TransactionService records simple single-sided movements, the everyday
// income/expense entry form.
type TransactionService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	movementRepo portsrepo.MovementRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(accountRepo portsrepo.AccountRepository, movementRepo portsrepo.MovementRepository) *TransactionService {
	return &TransactionService{accountRepo: accountRepo, movementRepo: movementRepo}
}

// Ensure TransactionService implements portssvc.TransactionSvc
var _ portssvc.TransactionSvc = (*TransactionService)(nil)

// CreateTransaction validates and persists a simple transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, memberID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account does not exist", apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to resolve account for transaction",
			slog.String("account_id", req.AccountID))
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		Date:          req.Date,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		},
	}

	if err := s.movementRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID))
	return &txn, nil
}
