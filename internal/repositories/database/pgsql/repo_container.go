package pgsql

import (
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TemplateRepo:    newPgxTemplateRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		SequenceRepo:    newPgxSequenceRepository(dbPool),
	}
}
