package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository over the normalized union
// of the transaction and journal-line stores.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepository
var _ portsrepo.MovementRepository = (*PgxMovementRepository)(nil)

// movementUnion normalizes both stores into one shape. Simple transactions
// are mapped onto the debit/credit axis by account type: balance-sheet
// accounts take income as a debit and expense as a credit, while
// profit-and-loss accounts accrue the matching type on their natural side
// (expense debits an expense account, income credits an income account).
// Rows whose account no longer resolves fall back to the cash reading
// (income as debit) and carry empty account fields. The CASE predicate must
// stay in lockstep with accounting.NormalizeTransaction, which the register
// and balance tests pin combination by combination.
const movementUnion = `
	SELECT t.transaction_id                 AS entry_id,
	       t.txn_date                       AS entry_date,
	       COALESCE(a.account_id, '')       AS account_id,
	       COALESCE(a.name, '')             AS account_name,
	       COALESCE(a.account_number, '')   AS account_number,
	       COALESCE(a.account_type, '')     AS account_type,
	       CASE WHEN (t.txn_type = 'INCOME') = COALESCE(a.account_type IN ('ASSET','LIABILITY','EQUITY'), TRUE)
	            THEN t.amount ELSE 0 END    AS debit,
	       CASE WHEN (t.txn_type = 'INCOME') = COALESCE(a.account_type IN ('ASSET','LIABILITY','EQUITY'), TRUE)
	            THEN 0 ELSE t.amount END    AS credit,
	       'transaction'                    AS entry_source,
	       t.description                    AS memo,
	       ''                               AS reference
	FROM transactions t
	LEFT JOIN ledger_accounts a ON a.account_id = t.account_id
	UNION ALL
	SELECT l.line_id,
	       j.journal_date,
	       COALESCE(a.account_id, ''),
	       COALESCE(a.name, ''),
	       COALESCE(a.account_number, ''),
	       COALESCE(a.account_type, ''),
	       l.debit,
	       l.credit,
	       'journal',
	       COALESCE(NULLIF(l.description, ''), j.memo),
	       j.ref_no
	FROM journal_lines l
	JOIN journals j ON j.journal_id = l.journal_id
	LEFT JOIN ledger_accounts a ON a.account_id = l.account_id
`

// FetchMovements returns the filtered, merged movement list sorted by
// (entry_date, source, entry_id). The source column sorts 'journal' before
// 'transaction', which fixes the same-date tie-break deterministically.
func (r *PgxMovementRepository) FetchMovements(ctx context.Context, filter portsrepo.RegisterFilter) ([]domain.Movement, error) {
	query := `
		SELECT entry_id, entry_date, account_id, account_name, account_number, account_type,
		       debit, credit, entry_source, memo, reference
		FROM (` + movementUnion + `) m
		WHERE m.entry_date >= $1 AND m.entry_date <= $2
		  AND ($3 = '' OR m.account_id = $3)
		  AND ($4 = '' OR $4 = 'all'
		       OR m.entry_source = CASE $4 WHEN 'transactions' THEN 'transaction' ELSE 'journal' END)
		  AND ($5 = '' OR m.memo ILIKE '%' || $5 || '%'
		       OR m.reference ILIKE '%' || $5 || '%'
		       OR m.account_name ILIKE '%' || $5 || '%')
		  AND ($6::numeric IS NULL OR GREATEST(m.debit, m.credit) >= $6)
		  AND ($7::numeric IS NULL OR GREATEST(m.debit, m.credit) <= $7)
		ORDER BY m.entry_date, m.entry_source, m.entry_id;
	`

	rows, err := r.Pool.Query(ctx, query,
		filter.DateFrom,
		filter.DateTo,
		filter.AccountID,
		filter.Source,
		filter.Search,
		filter.MinAmount,
		filter.MaxAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		var m domain.Movement
		err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.AccountID,
			&m.AccountName,
			&m.AccountNumber,
			&m.AccountType,
			&m.Debit,
			&m.Credit,
			&m.Source,
			&m.Memo,
			&m.Reference,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// SumAccountMovements returns total debits and credits for one account dated
// strictly before the boundary, or across all time when before is nil.
func (r *PgxMovementRepository) SumAccountMovements(ctx context.Context, accountID string, before *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(m.debit), 0), COALESCE(SUM(m.credit), 0)
		FROM (` + movementUnion + `) m
		WHERE m.account_id = $1
		  AND ($2::timestamptz IS NULL OR m.entry_date < $2);
	`

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum movements for account %s: %w", accountID, err)
	}
	return debit, credit, nil
}

// SaveTransaction inserts a new simple transaction.
func (r *PgxMovementRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, account_id, amount, txn_type, txn_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.Amount,
		txn.Type,
		txn.Date,
		txn.Description,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}
