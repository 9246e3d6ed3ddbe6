package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB satisfies DB and hands out a scripted transaction so the journal
// write path can be driven through its failure branches without Postgres.
type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected pool exec")
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected pool query")
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fakeTx struct {
	execErr       error
	batchCloseErr error

	committed   bool
	rolledBack  bool
	batchSent   bool
	queuedCount int
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, t.execErr
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	t.batchSent = true
	t.queuedCount = b.Len()
	return &fakeBatchResults{closeErr: t.batchCloseErr}
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeBatchResults struct {
	closeErr error
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (b *fakeBatchResults) Query() (pgx.Rows, error)         { return nil, errors.New("not supported") }
func (b *fakeBatchResults) QueryRow() pgx.Row                { return nil }
func (b *fakeBatchResults) Close() error                     { return b.closeErr }

func testJournalAndLines() (domain.Journal, []domain.JournalLine) {
	journal := domain.Journal{
		JournalID:   "j-1",
		JournalDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Memo:        "float correction",
		Source:      "adjustment",
		RefNo:       "ADJ-1749100000-ab12",
	}
	lines := []domain.JournalLine{
		{LineID: "l-1", JournalID: "j-1", AccountID: "acc-a", Debit: decimal.NewFromInt(75), LineOrder: 1},
		{LineID: "l-2", JournalID: "j-1", AccountID: "acc-b", Credit: decimal.NewFromInt(75), LineOrder: 2},
	}
	return journal, lines
}

func TestCreateJournalWithLines_CommitsWhenAllWritesSucceed(t *testing.T) {
	tx := &fakeTx{}
	repo := &PgxJournalRepository{BaseRepository: BaseRepository{Pool: &fakeDB{tx: tx}}}
	journal, lines := testJournalAndLines()

	err := repo.CreateJournalWithLines(context.Background(), journal, lines)

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, 2, tx.queuedCount)
}

func TestCreateJournalWithLines_RollsBackWhenLineBatchFails(t *testing.T) {
	// The header insert succeeds, then the line batch fails mid-write. The
	// transaction must roll back so no header survives without its lines.
	tx := &fakeTx{batchCloseErr: errors.New("line insert failed")}
	repo := &PgxJournalRepository{BaseRepository: BaseRepository{Pool: &fakeDB{tx: tx}}}
	journal, lines := testJournalAndLines()

	err := repo.CreateJournalWithLines(context.Background(), journal, lines)

	require.Error(t, err)
	assert.True(t, tx.batchSent)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestCreateJournalWithLines_RollsBackWhenHeaderInsertFails(t *testing.T) {
	tx := &fakeTx{execErr: errors.New("header insert failed")}
	repo := &PgxJournalRepository{BaseRepository: BaseRepository{Pool: &fakeDB{tx: tx}}}
	journal, lines := testJournalAndLines()

	err := repo.CreateJournalWithLines(context.Background(), journal, lines)

	require.Error(t, err)
	assert.False(t, tx.batchSent)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}
