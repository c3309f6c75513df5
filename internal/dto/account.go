package dto

import (
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
)

// CreateAccountRequest defines the structure for creating a new account.
type CreateAccountRequest struct {
	AccountCode     string               `json:"accountCode" binding:"required,max=20"`
	AccountName     string               `json:"accountName" binding:"required,max=255"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   domain.NormalBalance `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
	ParentAccountID *string              `json:"parentAccountID" binding:"omitempty,uuid"`
	IsHeader        bool                 `json:"isHeader"`
}

// AccountResponse defines the API representation of an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	AccountCode     string               `json:"accountCode"`
	AccountName     string               `json:"accountName"`
	AccountType     domain.AccountType   `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	ParentAccountID *string              `json:"parentAccountID,omitempty"`
	IsHeader        bool                 `json:"isHeader"`
	IsActive        bool                 `json:"isActive"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		AccountCode:     a.AccountCode,
		AccountName:     a.AccountName,
		AccountType:     a.AccountType,
		NormalBalance:   a.NormalBalance,
		ParentAccountID: a.ParentAccountID,
		IsHeader:        a.IsHeader,
		IsActive:        a.IsActive,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
