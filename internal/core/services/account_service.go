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

// maxParentDepth bounds the ancestor walk during cycle checks so corrupted
// data cannot loop forever.
const maxParentDepth = 100

// AccountService covers the ledger account lifecycle.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// Ensure AccountService implements portssvc.AccountSvc
var _ portssvc.AccountSvc = (*AccountService)(nil)

// CreateAccount validates and persists a new ledger account.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, memberID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type '%s'", apperrors.ErrValidation, req.AccountType)
	}

	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber); err == nil {
		return nil, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, req.AccountNumber)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account number uniqueness",
			slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account does not exist", apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     memberID,
			LastUpdatedAt: now,
			LastUpdatedBy: memberID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts for the list/hierarchy view.
func (s *AccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountListFilter{
		AccountType: domain.AccountType(params.AccountType),
		Search:      params.Search,
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount applies the requested field changes, guarding parent edits
// against cycles.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, memberID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil {
		newParent := *req.ParentAccountID
		if newParent != "" {
			if err := s.checkParentCycle(ctx, accountID, newParent); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = newParent
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = memberID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// checkParentCycle rejects a parent assignment that would make the account
// its own ancestor. It walks up from the proposed parent until a root or the
// account itself is reached.
func (s *AccountService) checkParentCycle(ctx context.Context, accountID, parentID string) error {
	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxParentDepth {
			return fmt.Errorf("%w: parent chain too deep", apperrors.ErrValidation)
		}
		if current == accountID {
			return fmt.Errorf("%w: cannot set parent to the account itself or one of its descendants", apperrors.ErrValidation)
		}
		ancestor, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account does not exist", apperrors.ErrValidation)
			}
			return err
		}
		current = ancestor.ParentAccountID
	}
	return nil
}

// DeleteAccount removes an account. Accounts still carrying movements cannot
// be deleted unless reassignTo names the absorbing account; active children
// always block deletion.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, reassignTo string, memberID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	hasChildren, err := s.accountRepo.HasActiveChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: this account has active child accounts; deactivate or re-parent them first", apperrors.ErrValidation)
	}

	count, err := s.accountRepo.CountMovements(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count movements", slog.String("account_id", accountID))
		return err
	}
	if count > 0 {
		if reassignTo == "" {
			return fmt.Errorf("%w: this account has %d transaction(s); reassign them before deleting", apperrors.ErrValidation, count)
		}
		if reassignTo == accountID {
			return fmt.Errorf("%w: cannot reassign movements to the account being deleted", apperrors.ErrValidation)
		}
		if _, err := s.GetAccountByID(ctx, reassignTo); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: reassignment target does not exist", apperrors.ErrValidation)
			}
			return err
		}
		if err := s.accountRepo.ReassignMovements(ctx, accountID, reassignTo, memberID, time.Now()); err != nil {
			s.LogError(ctx, err, "Failed to reassign movements",
				slog.String("from_account_id", accountID),
				slog.String("to_account_id", reassignTo))
			return err
		}
		s.LogInfo(ctx, "Movements reassigned",
			slog.Int("count", count),
			slog.String("from_account_id", accountID),
			slog.String("to_account_id", reassignTo))
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// SetupStandardChart bulk-creates the predefined chart of accounts, skipping
// any whose number already exists.
func (s *AccountService) SetupStandardChart(ctx context.Context, memberID string) (int, int, error) {
	created, skipped := 0, 0
	for _, entry := range StandardChart {
		_, err := s.accountRepo.FindAccountByNumber(ctx, entry.Number)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check standard account",
				slog.String("account_number", entry.Number))
			return created, skipped, err
		}

		now := time.Now()
		account := domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: entry.Number,
			Name:          entry.Name,
			AccountType:   entry.Type,
			Description:   entry.Description,
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     memberID,
				LastUpdatedAt: now,
				LastUpdatedBy: memberID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			// A concurrent setup may have just created the number.
			if errors.Is(err, apperrors.ErrDuplicate) {
				skipped++
				continue
			}
			s.LogError(ctx, err, "Failed to create standard account",
				slog.String("account_number", entry.Number))
			return created, skipped, err
		}
		created++
	}

	s.LogInfo(ctx, "Standard chart setup finished",
		slog.Int("created", created),
		slog.Int("skipped", skipped))
	return created, skipped, nil
}
