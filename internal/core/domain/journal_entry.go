package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one immutable ledger line. Exactly one of DebitAmount and
// CreditAmount is nonzero; both are non-negative. Entries are never updated
// or deleted once written: voiding produces new reversal entries instead.
type JournalEntry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	JournalNumber string          `json:"journalNumber"` // e.g. "JE-2025-0001-01"
	JournalDate   time.Time       `json:"journalDate"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	IsReversal    bool            `json:"isReversal"`
	ReversalOf    *string         `json:"reversalOf"` // EntryID of the entry this one negates
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// Amount returns the nonzero side of the entry.
func (e *JournalEntry) Amount() decimal.Decimal {
	if e.DebitAmount.IsZero() {
		return e.CreditAmount
	}
	return e.DebitAmount
}

// Position reports which side of the ledger the entry sits on.
func (e *JournalEntry) Position() JournalPosition {
	if e.DebitAmount.IsZero() {
		return Credit
	}
	return Debit
}
