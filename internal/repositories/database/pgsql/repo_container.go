package pgsql

import (
	portsrepo "github.com/TyroGames/api-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgsql repository implementations against
// one shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	sequenceRepo := newPgxSequenceRepository(pool)
	return &portsrepo.RepositoryProvider{
		EntryRepo:        newPgxEntryRepository(pool, sequenceRepo),
		SequenceRepo:     sequenceRepo,
		ReportingRepo:    newPgxReportingRepository(pool),
		DocumentRepo:     newPgxDocumentRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		FiscalPeriodRepo: newPgxFiscalPeriodRepository(pool),
	}
}
