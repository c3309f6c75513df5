package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/hendrawijaya/pembukuan_app/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new chart-of-accounts entry. Account codes are
// unique; a duplicate surfaces as ErrDuplicate from the repository.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creator string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent account %s: %w", *req.ParentAccountID, err)
		}
		if !parent.IsHeader {
			return nil, fmt.Errorf("%w: parent account %s is not a header account", apperrors.ErrValidation, parent.AccountCode)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		AccountType:     req.AccountType,
		NormalBalance:   req.NormalBalance,
		ParentAccountID: req.ParentAccountID,
		IsHeader:        req.IsHeader,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_code", req.AccountCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}
