package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, account_number, name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for ledger account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var parentID sql.NullString

	err := row.Scan(
		&acc.AccountID,
		&acc.AccountNumber,
		&acc.Name,
		&acc.AccountType,
		&parentID,
		&acc.Description,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		acc.ParentAccountID = parentID.String
	}
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO ledger_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var parentID sql.NullString
	if account.ParentAccountID != "" {
		parentID = sql.NullString{String: account.ParentAccountID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountNumber,
		account.Name,
		account.AccountType,
		parentID,
		account.Description,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByNumber retrieves an account by its user-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE account_number = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are
// simply absent from the map; callers check completeness.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves accounts matching the list filter, ordered by
// account number for the hierarchy view.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountListFilter) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts
		WHERE ($1 = '' OR account_type = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR account_number ILIKE '%' || $2 || '%')
		ORDER BY account_number;
	`

	rows, err := r.Pool.Query(ctx, query, string(filter.AccountType), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's mutable fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE ledger_accounts
		SET name = $2, description = $3, is_active = $4, parent_account_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	var parentID sql.NullString
	if account.ParentAccountID != "" {
		parentID = sql.NullString{String: account.ParentAccountID, Valid: true}
	}

	cmdTag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Description,
		account.IsActive,
		parentID,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount hard-deletes an account row. The service layer guarantees no
// movements or active children remain.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasActiveChildren reports whether any active account has accountID as its
// parent.
func (r *PgxAccountRepository) HasActiveChildren(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ledger_accounts WHERE parent_account_id = $1 AND is_active = TRUE);`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check children of account %s: %w", accountID, err)
	}
	return exists, nil
}

// CountMovements returns how many transaction and journal-line rows reference
// the account.
func (r *PgxAccountRepository) CountMovements(ctx context.Context, accountID string) (int, error) {
	var count int
	query := `
		SELECT (SELECT COUNT(*) FROM transactions WHERE account_id = $1)
		     + (SELECT COUNT(*) FROM journal_lines WHERE account_id = $1);
	`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movements for account %s: %w", accountID, err)
	}
	return count, nil
}

// ReassignMovements moves all movements from one account to another inside a
// single database transaction.
func (r *PgxAccountRepository) ReassignMovements(ctx context.Context, fromAccountID, toAccountID, memberID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op after a successful commit

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET account_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, fromAccountID, toAccountID, now, memberID)
	if err != nil {
		return fmt.Errorf("failed to reassign transactions from %s: %w", fromAccountID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_lines SET account_id = $2 WHERE account_id = $1;
	`, fromAccountID, toAccountID)
	if err != nil {
		return fmt.Errorf("failed to reassign journal lines from %s: %w", fromAccountID, err)
	}

	return r.Commit(ctx, tx)
}
