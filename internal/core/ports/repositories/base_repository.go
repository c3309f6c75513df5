package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Posting and voiding span a sequence allocation and an aggregate write, so
// services drive one pgx.Tx across both repositories.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
