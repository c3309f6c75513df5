package dto

import (
	"time"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the structure for creating a draft
// transaction from a template. AccountMappings binds dynamic template lines
// (keyed by template line ID) to caller-chosen accounts.
type CreateTransactionRequest struct {
	TemplateID      string                     `json:"templateID" binding:"required,uuid"`
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	Amount          decimal.Decimal            `json:"amount"`
	Description     string                     `json:"description" binding:"required,max=500"`
	ReferenceNumber string                     `json:"referenceNumber" binding:"max=100"`
	ProjectID       *string                    `json:"projectID" binding:"omitempty,uuid"`
	Variables       map[string]decimal.Decimal `json:"variables"`
	AccountMappings map[string]string          `json:"accountMappings"`
}

// VoidTransactionRequest defines the structure for voiding a posted transaction.
type VoidTransactionRequest struct {
	Reason domain.VoidReason `json:"reason" binding:"required,oneof=DUPLICATE DATA_ERROR WRONG_DATE CANCELLED OTHER"`
	Notes  string            `json:"notes" binding:"max=500"`
}

// PreviewTransactionRequest defines the structure for a side-effect-free dry
// run of a template execution.
type PreviewTransactionRequest struct {
	TemplateID      string                     `json:"templateID" binding:"required,uuid"`
	Amount          decimal.Decimal            `json:"amount"`
	Variables       map[string]decimal.Decimal `json:"variables"`
	AccountMappings map[string]string          `json:"accountMappings"`
}

// PreviewLine is one resolved line of a preview.
type PreviewLine struct {
	LineOrder    int             `json:"lineOrder"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// PreviewResponse carries the outcome of a dry run: the resolved lines and
// totals when valid, or every detected problem when not.
type PreviewResponse struct {
	Valid       bool            `json:"valid"`
	Errors      []string        `json:"errors,omitempty"`
	Lines       []PreviewLine   `json:"lines,omitempty"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// JournalEntryResponse is the API representation of one ledger line.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	JournalNumber string          `json:"journalNumber"`
	JournalDate   time.Time       `json:"journalDate"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	IsReversal    bool            `json:"isReversal"`
	ReversalOf    *string         `json:"reversalOf,omitempty"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID     string                     `json:"transactionID"`
	TransactionNumber *string                    `json:"transactionNumber,omitempty"`
	TransactionDate   time.Time                  `json:"transactionDate"`
	TemplateID        string                     `json:"templateID"`
	Amount            decimal.Decimal            `json:"amount"`
	Description       string                     `json:"description"`
	ReferenceNumber   string                     `json:"referenceNumber,omitempty"`
	ProjectID         *string                    `json:"projectID,omitempty"`
	Status            domain.TransactionStatus   `json:"status"`
	PostedAt          *time.Time                 `json:"postedAt,omitempty"`
	PostedBy          string                     `json:"postedBy,omitempty"`
	VoidReason        domain.VoidReason          `json:"voidReason,omitempty"`
	VoidNotes         string                     `json:"voidNotes,omitempty"`
	VoidedAt          *time.Time                 `json:"voidedAt,omitempty"`
	VoidedBy          string                     `json:"voidedBy,omitempty"`
	Variables         map[string]decimal.Decimal `json:"variables,omitempty"`
	JournalEntries    []JournalEntryResponse     `json:"journalEntries,omitempty"`
}

// ToJournalEntryResponses maps domain journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = JournalEntryResponse{
			EntryID:       entry.EntryID,
			JournalNumber: entry.JournalNumber,
			JournalDate:   entry.JournalDate,
			AccountID:     entry.AccountID,
			Description:   entry.Description,
			DebitAmount:   entry.DebitAmount,
			CreditAmount:  entry.CreditAmount,
			IsReversal:    entry.IsReversal,
			ReversalOf:    entry.ReversalOf,
		}
	}
	return responses
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		TransactionDate:   t.TransactionDate,
		TemplateID:        t.TemplateID,
		Amount:            t.Amount,
		Description:       t.Description,
		ReferenceNumber:   t.ReferenceNumber,
		ProjectID:         t.ProjectID,
		Status:            t.Status,
		PostedAt:          t.PostedAt,
		PostedBy:          t.PostedBy,
		VoidReason:        t.VoidReason,
		VoidNotes:         t.VoidNotes,
		VoidedAt:          t.VoidedAt,
		VoidedBy:          t.VoidedBy,
	}
	if len(t.Variables) > 0 {
		resp.Variables = make(map[string]decimal.Decimal, len(t.Variables))
		for _, v := range t.Variables {
			resp.Variables[v.Name] = v.Value
		}
	}
	if len(t.JournalEntries) > 0 {
		resp.JournalEntries = ToJournalEntryResponses(t.JournalEntries)
	}
	return resp
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
