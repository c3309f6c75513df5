package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, account_code, account_name, account_type, normal_balance, parent_account_id, is_header, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.AccountCode,
		&a.AccountName,
		&a.AccountType,
		&a.NormalBalance,
		&a.ParentAccountID,
		&a.IsHeader,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO chart_of_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.AccountCode,
		account.AccountName,
		account.AccountType,
		account.NormalBalance,
		account.ParentAccountID,
		account.IsHeader,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, account.AccountCode)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_id = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &account, nil
}

// FindAccountByCode retrieves an account by its hierarchical code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_code = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", accountCode, err)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs that do not
// exist are simply absent from the result map; the caller decides whether
// that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM chart_of_accounts WHERE account_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[account.AccountID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM chart_of_accounts
		ORDER BY account_code
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}
