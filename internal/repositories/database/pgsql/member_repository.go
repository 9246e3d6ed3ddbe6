package pgsql

import (
	"context"
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

const memberColumns = `member_id, name, email, password_hash, capabilities, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepository {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepository
var _ portsrepo.MemberRepository = (*PgxMemberRepository)(nil)

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Capabilities,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMember inserts a new member.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.Email,
		member.PasswordHash,
		member.Capabilities,
		member.IsActive,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, member.Email)
		}
		return fmt.Errorf("failed to save member %s: %w", member.MemberID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by ID.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`

	m, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return m, nil
}

// FindMemberByEmail retrieves a member by email.
func (r *PgxMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1;`

	m, err := scanMember(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by email: %w", err)
	}
	return m, nil
}

// ListMembers retrieves a paginated list of members ordered by name.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// UpdateMember updates a member's mutable fields.
func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	query := `
		UPDATE members
		SET name = $2, capabilities = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE member_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.Capabilities,
		member.IsActive,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update member %s: %w", member.MemberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateMember marks a member as inactive.
func (r *PgxMemberRepository) DeactivateMember(ctx context.Context, memberID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE members
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE member_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, memberID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate member %s: %w", memberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindMemberByID(ctx, memberID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check member status after deactivation attempt for %s: %w", memberID, findErr)
		}
		// Member exists but was already inactive.
		return apperrors.ErrValidation
	}
	return nil
}
