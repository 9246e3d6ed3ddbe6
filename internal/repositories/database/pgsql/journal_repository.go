package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and
// adjustment-audit data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// CreateJournalWithLines inserts the journal header and all lines inside one
// database transaction. Any failure rolls back wholesale; there is never a
// header without its lines.
func (r *PgxJournalRepository) CreateJournalWithLines(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op after a successful commit

	headerQuery := `
		INSERT INTO journals (journal_id, journal_date, memo, source, ref_no, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		journal.JournalID,
		journal.JournalDate,
		journal.Memo,
		journal.Source,
		journal.RefNo,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, line_order, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.LineOrder,
			line.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, journal_date, memo, source, ref_no, created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE journal_id = $1;
	`
	var j domain.Journal
	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&j.JournalID,
		&j.JournalDate,
		&j.Memo,
		&j.Source,
		&j.RefNo,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return &j, nil
}

// FindLinesByJournalID retrieves all lines of a journal in line order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, debit, credit, line_order, description
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.JournalID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.LineOrder,
			&l.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}

// SaveAdjustmentAudit appends one audit row. The caller treats failures as
// non-fatal; the journal itself is already committed.
func (r *PgxJournalRepository) SaveAdjustmentAudit(ctx context.Context, audit domain.AdjustmentAudit) error {
	query := `
		INSERT INTO adjustment_audit (audit_id, journal_id, primary_account_id, offset_account_id, debit, credit, reason, entry_reference, entry_source, entry_memo, created_by, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		audit.AuditID,
		audit.JournalID,
		audit.PrimaryAccountID,
		audit.OffsetAccountID,
		audit.Debit,
		audit.Credit,
		audit.Reason,
		audit.EntryReference,
		audit.EntrySource,
		audit.EntryMemo,
		audit.CreatedBy,
		audit.IPAddress,
		audit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment audit for journal %s: %w", audit.JournalID, err)
	}
	return nil
}
