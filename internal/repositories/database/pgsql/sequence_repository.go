package pgsql

import (
	"context"
	"fmt"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxSequenceNumber bounds a yearly counter. The formatted number keeps
// growing past four digits, so this is a sanity ceiling, not a format limit.
const maxSequenceNumber = 99_999_999

type PgxSequenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxSequenceRepository creates a new repository for document sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{pool: pool}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// NextNumber atomically increments the (sequenceType, year) counter and
// returns the formatted document number. The upsert makes the first
// allocation of a new year create the counter row, and the row lock taken by
// the update serializes concurrent allocators, so numbers are dense and
// unique. Callers that pass a tx tie the allocation to their commit.
func (r *PgxSequenceRepository) NextNumber(ctx context.Context, tx pgx.Tx, sequenceType string, year int) (string, error) {
	query := `
		INSERT INTO transaction_sequences (sequence_type, year, prefix, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (sequence_type, year)
		DO UPDATE SET last_number = transaction_sequences.last_number + 1
		RETURNING prefix, last_number;
	`
	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, query, sequenceType, year, domain.SequencePrefix(sequenceType))
	} else {
		row = r.pool.QueryRow(ctx, query, sequenceType, year, domain.SequencePrefix(sequenceType))
	}

	seq := domain.TransactionSequence{SequenceType: sequenceType, Year: year}
	if err := row.Scan(&seq.Prefix, &seq.LastNumber); err != nil {
		return "", fmt.Errorf("failed to allocate %s number for %d: %w", sequenceType, year, err)
	}
	if seq.LastNumber > maxSequenceNumber {
		return "", fmt.Errorf("%w: %s sequence for %d", apperrors.ErrSequenceExhausted, sequenceType, year)
	}
	return seq.DocumentNumber(), nil
}
