package services

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
)

// TransactionReaderSvc defines read operations for posting transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its variables, account
	// mappings, and journal entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, optionally filtered by status.
	ListTransactions(ctx context.Context, status *domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionLifecycleSvc governs the DRAFT -> POSTED -> VOID state machine.
type TransactionLifecycleSvc interface {
	// CreateDraft builds a DRAFT transaction from a template. No document
	// number is assigned and no journal entries exist until Post succeeds.
	CreateDraft(ctx context.Context, req dto.CreateTransactionRequest, creator string) (*domain.Transaction, error)

	// Post atomically turns a DRAFT into a POSTED transaction: accounts
	// resolved, formulas evaluated, balance validated, numbers allocated,
	// journal entries written. Any failure leaves the draft untouched.
	Post(ctx context.Context, transactionID string, actor string) (*domain.Transaction, error)

	// Void appends balancing reversal entries to a POSTED transaction and
	// marks it VOID. Original entries are never modified. Irreversible.
	Void(ctx context.Context, transactionID string, reason domain.VoidReason, notes string, actor string) (*domain.Transaction, error)

	// Preview performs a side-effect-free dry run of a template execution:
	// no persistence, no sequence numbers consumed.
	Preview(ctx context.Context, req dto.PreviewTransactionRequest) (*dto.PreviewResponse, error)

	// DeleteDraft removes a DRAFT transaction. Posted or voided transactions
	// can never be deleted.
	DeleteDraft(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionLifecycleSvc
}
