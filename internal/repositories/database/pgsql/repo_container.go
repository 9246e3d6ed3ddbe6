package pgsql

import (
	portsrepo "github.com/clubledger/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		MovementRepo: newPgxMovementRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		MemberRepo:   newPgxMemberRepository(dbPool),
		SpamRepo:     newPgxSpamRepository(dbPool),
	}
}
