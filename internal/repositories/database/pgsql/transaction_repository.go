package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, transaction_number, transaction_date, template_id, amount, description, reference_number, project_id, status, posted_at, posted_by, void_reason, void_notes, voided_at, voided_by, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.TransactionNumber,
		&t.TransactionDate,
		&t.TemplateID,
		&t.Amount,
		&t.Description,
		&t.ReferenceNumber,
		&t.ProjectID,
		&t.Status,
		&t.PostedAt,
		&t.PostedBy,
		&t.VoidReason,
		&t.VoidNotes,
		&t.VoidedAt,
		&t.VoidedBy,
		&t.Version,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveDraft persists a new DRAFT transaction with its variables and account
// mappings in one database transaction.
func (r *PgxTransactionRepository) SaveDraft(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin draft save: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		txn.TransactionID,
		txn.TransactionNumber,
		txn.TransactionDate,
		txn.TemplateID,
		txn.Amount,
		txn.Description,
		txn.ReferenceNumber,
		txn.ProjectID,
		txn.Status,
		txn.PostedAt,
		txn.PostedBy,
		txn.VoidReason,
		txn.VoidNotes,
		txn.VoidedAt,
		txn.VoidedBy,
		txn.Version,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	variableQuery := `
		INSERT INTO transaction_variables (transaction_id, name, value)
		VALUES ($1, $2, $3);
	`
	for _, v := range txn.Variables {
		batch.Queue(variableQuery, txn.TransactionID, v.Name, v.Value)
	}
	mappingQuery := `
		INSERT INTO transaction_account_mappings (transaction_id, template_line_id, account_id)
		VALUES ($1, $2, $3);
	`
	for _, m := range txn.AccountMappings {
		batch.Queue(mappingQuery, txn.TransactionID, m.TemplateLineID, m.AccountID)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("failed to save draft detail rows for %s: %w", txn.TransactionID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close draft detail batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit draft save: %w", err)
	}
	return nil
}

// MarkPosted flips a DRAFT to POSTED and inserts the journal entries inside
// the caller's transaction. The update is guarded by version and status so a
// concurrent poster loses cleanly with ErrConflict.
func (r *PgxTransactionRepository) MarkPosted(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.JournalEntry) error {
	query := `
		UPDATE transactions
		SET transaction_number = $3, status = $4, posted_at = $5, posted_by = $6, version = version + 1, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1 AND version = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.Version,
		txn.TransactionNumber,
		domain.StatusPosted,
		txn.PostedAt,
		txn.PostedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s posted: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrConflict, txn.TransactionID)
	}

	return insertEntries(ctx, tx, entries)
}

// MarkVoided flips a POSTED transaction to VOID and inserts the reversal
// entries, with the same version guard as MarkPosted.
func (r *PgxTransactionRepository) MarkVoided(ctx context.Context, tx pgx.Tx, txn domain.Transaction, reversals []domain.JournalEntry) error {
	query := `
		UPDATE transactions
		SET status = $3, void_reason = $4, void_notes = $5, voided_at = $6, voided_by = $7, version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1 AND version = $2 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.Version,
		domain.StatusVoid,
		txn.VoidReason,
		txn.VoidNotes,
		txn.VoidedAt,
		txn.VoidedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s voided: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrConflict, txn.TransactionID)
	}

	return insertEntries(ctx, tx, reversals)
}

func insertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entries (entry_id, transaction_id, journal_number, journal_date, account_id, description, debit_amount, credit_amount, is_reversal, reversal_of, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.EntryID,
			e.TransactionID,
			e.JournalNumber,
			e.JournalDate,
			e.AccountID,
			e.Description,
			e.DebitAmount,
			e.CreditAmount,
			e.IsReversal,
			e.ReversalOf,
			e.CreatedAt,
			e.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to insert journal entry %s: %w", entries[i].JournalNumber, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close journal entry batch: %w", err)
	}
	return nil
}

// DeleteDraft removes a draft transaction. Variables and mappings go with it
// via ON DELETE CASCADE. The status guard keeps posted history safe even if
// the service check raced.
func (r *PgxTransactionRepository) DeleteDraft(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND status = 'DRAFT';`

	cmdTag, err := r.Pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// FindTransactionByID retrieves a transaction with its variables and account
// mappings.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	variableQuery := `
		SELECT transaction_id, name, value
		FROM transaction_variables
		WHERE transaction_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, variableQuery, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction variables for %s: %w", transactionID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var v domain.TransactionVariable
		if err := rows.Scan(&v.TransactionID, &v.Name, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan transaction variable row: %w", err)
		}
		txn.Variables = append(txn.Variables, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction variable rows: %w", rows.Err())
	}

	mappingQuery := `
		SELECT transaction_id, template_line_id, account_id
		FROM transaction_account_mappings
		WHERE transaction_id = $1;
	`
	mappingRows, err := r.Pool.Query(ctx, mappingQuery, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account mappings for %s: %w", transactionID, err)
	}
	defer mappingRows.Close()
	for mappingRows.Next() {
		var m domain.TransactionAccountMapping
		if err := mappingRows.Scan(&m.TransactionID, &m.TemplateLineID, &m.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan account mapping row: %w", err)
		}
		txn.AccountMappings = append(txn.AccountMappings, m)
	}
	if mappingRows.Err() != nil {
		return nil, fmt.Errorf("error iterating account mapping rows: %w", mappingRows.Err())
	}

	return &txn, nil
}

// FindEntriesByTransactionID retrieves the journal entries of a transaction
// ordered by journal number, originals before reversals.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, transaction_id, journal_number, journal_date, account_id, description, debit_amount, credit_amount, is_reversal, reversal_of, created_at, created_by
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY is_reversal, journal_number;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for %s: %w", transactionID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var e domain.JournalEntry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.JournalNumber,
			&e.JournalDate,
			&e.AccountID,
			&e.Description,
			&e.DebitAmount,
			&e.CreditAmount,
			&e.IsReversal,
			&e.ReversalOf,
			&e.CreatedAt,
			&e.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", rows.Err())
	}
	return entries, nil
}

// ListTransactions retrieves a paginated list of transactions, optionally
// filtered by status, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, status *domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return transactions, nil
}
