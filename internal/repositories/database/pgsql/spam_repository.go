package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSpamRepository struct {
	BaseRepository
}

// newPgxSpamRepository creates a new repository for spam signal data.
func newPgxSpamRepository(pool *pgxpool.Pool) portsrepo.SpamRepository {
	return &PgxSpamRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSpamRepository implements portsrepo.SpamRepository
var _ portsrepo.SpamRepository = (*PgxSpamRepository)(nil)

// SaveSignal appends one scored submission record.
func (r *PgxSpamRepository) SaveSignal(ctx context.Context, signal domain.SpamSignal) error {
	query := `
		INSERT INTO spam_signals (signal_id, ip, email, score, verdict, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		signal.SignalID,
		signal.IP,
		signal.Email,
		signal.Score,
		signal.Verdict,
		signal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save spam signal %s: %w", signal.SignalID, err)
	}
	return nil
}

// CountRecentFlagged returns how many REVIEW/BLOCK signals the IP has
// accumulated since the given time.
func (r *PgxSpamRepository) CountRecentFlagged(ctx context.Context, ip string, since time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM spam_signals
		WHERE ip = $1 AND verdict IN ('REVIEW', 'BLOCK') AND created_at >= $2;
	`
	if err := r.Pool.QueryRow(ctx, query, ip, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count flagged signals for IP: %w", err)
	}
	return count, nil
}
