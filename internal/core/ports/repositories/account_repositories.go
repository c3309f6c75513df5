package repositories

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data. The
// posting engine only ever reads accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its hierarchical code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by account code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations used by setup and import flows.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
