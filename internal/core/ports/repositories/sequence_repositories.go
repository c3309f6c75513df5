package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepositoryFacade allocates audit-safe document numbers.
type SequenceRepositoryFacade interface {
	// NextNumber atomically increments the (sequenceType, year) counter and
	// returns the formatted document number, e.g. "TRX-2025-0042". The counter
	// row is created on first use. The increment-and-fetch is indivisible:
	// concurrent callers always receive distinct numbers with no gaps. When
	// tx is non-nil the allocation joins that database transaction.
	NextNumber(ctx context.Context, tx pgx.Tx, sequenceType string, year int) (string, error)
}
