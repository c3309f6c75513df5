package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a posting event.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
	StatusVoid   TransactionStatus = "VOID"
)

// VoidReason categorizes why a posted transaction was voided.
type VoidReason string

const (
	VoidDuplicate  VoidReason = "DUPLICATE"
	VoidDataError  VoidReason = "DATA_ERROR"
	VoidWrongDate  VoidReason = "WRONG_DATE"
	VoidCancelled  VoidReason = "CANCELLED"
	VoidOtherCause VoidReason = "OTHER"
)

// Transaction is the aggregate root of one posting event. It is created as a
// DRAFT without a transaction number; the number is allocated only when the
// transaction is posted, so abandoned drafts never leave gaps in the audit
// numbering.
type Transaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	TransactionNumber *string           `json:"transactionNumber"`
	TransactionDate   time.Time         `json:"transactionDate"`
	TemplateID        string            `json:"templateID"`
	Amount            decimal.Decimal   `json:"amount"` // Primary input for SIMPLE templates
	Description       string            `json:"description"`
	ReferenceNumber   string            `json:"referenceNumber"`
	ProjectID         *string           `json:"projectID"`
	Status            TransactionStatus `json:"status"`

	PostedAt *time.Time `json:"postedAt"`
	PostedBy string     `json:"postedBy"`

	VoidReason VoidReason `json:"voidReason"`
	VoidNotes  string     `json:"voidNotes"`
	VoidedAt   *time.Time `json:"voidedAt"`
	VoidedBy   string     `json:"voidedBy"`

	// Version guards state transitions against concurrent writers.
	Version int64 `json:"version"`

	Variables       []TransactionVariable       `json:"variables"`
	AccountMappings []TransactionAccountMapping `json:"accountMappings"`
	JournalEntries  []JournalEntry              `json:"journalEntries"`

	AuditFields
}

func (t *Transaction) IsDraft() bool  { return t.Status == StatusDraft }
func (t *Transaction) IsPosted() bool { return t.Status == StatusPosted }
func (t *Transaction) IsVoid() bool   { return t.Status == StatusVoid }

// VariableEnv flattens the transaction's inputs into a formula environment.
// The primary amount is always exposed as "amount"; DETAILED templates add
// their named variables on top.
func (t *Transaction) VariableEnv() map[string]decimal.Decimal {
	env := make(map[string]decimal.Decimal, len(t.Variables)+1)
	env["amount"] = t.Amount
	for _, v := range t.Variables {
		env[v.Name] = v.Value
	}
	return env
}

// MappedAccountID returns the caller-chosen account for a dynamic template
// line, or false when no mapping was supplied.
func (t *Transaction) MappedAccountID(templateLineID string) (string, bool) {
	for _, m := range t.AccountMappings {
		if m.TemplateLineID == templateLineID {
			return m.AccountID, true
		}
	}
	return "", false
}

// TransactionVariable is a named decimal input for DETAILED templates.
type TransactionVariable struct {
	TransactionID string          `json:"transactionID"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
}

// TransactionAccountMapping binds a dynamic template line to the account the
// caller selected for this transaction.
type TransactionAccountMapping struct {
	TransactionID  string `json:"transactionID"`
	TemplateLineID string `json:"templateLineID"`
	AccountID      string `json:"accountID"`
}
