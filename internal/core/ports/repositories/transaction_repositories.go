package repositories

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for posting transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its variables and
	// account mappings (journal entries are loaded separately).
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves the journal entries of a
	// transaction ordered by journal number.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)

	// ListTransactions retrieves a page of transactions, optionally filtered
	// by status, ordered by transaction date descending.
	ListTransactions(ctx context.Context, status *domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for the transaction lifecycle.
// The transition writers take an open pgx.Tx so the caller can bind the
// status flip, the entry inserts, and the sequence allocation into one atomic
// unit of work.
type TransactionWriter interface {
	// SaveDraft persists a new DRAFT transaction together with its variables
	// and account mappings.
	SaveDraft(ctx context.Context, txn domain.Transaction) error

	// MarkPosted flips a DRAFT transaction to POSTED and inserts its journal
	// entries. The update is guarded by the transaction's version; a lost
	// update returns apperrors.ErrConflict and inserts nothing.
	MarkPosted(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entries []domain.JournalEntry) error

	// MarkVoided flips a POSTED transaction to VOID and inserts its reversal
	// entries, with the same version guard as MarkPosted. Original entries
	// are never touched.
	MarkVoided(ctx context.Context, tx pgx.Tx, txn domain.Transaction, reversals []domain.JournalEntry) error

	// DeleteDraft removes a DRAFT transaction and its variables and mappings.
	DeleteDraft(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction management.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
