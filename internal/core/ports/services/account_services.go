package services

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for setup flows.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creator string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
