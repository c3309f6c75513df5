package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side of a double-entry line grows an account.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// Account represents one node of the chart of accounts. The posting engine
// consumes accounts but never creates or mutates them; they are owned by
// setup and import flows.
type Account struct {
	AccountID       string        `json:"accountID"`       // Primary Key (UUID)
	AccountCode     string        `json:"accountCode"`     // Unique hierarchical dotted code, e.g. "1.1.01"
	AccountName     string        `json:"accountName"`     // User-visible name
	AccountType     AccountType   `json:"accountType"`     // ASSET, LIABILITY, etc.
	NormalBalance   NormalBalance `json:"normalBalance"`   // DEBIT or CREDIT polarity
	ParentAccountID *string       `json:"parentAccountID"` // Nullable, self-referencing
	IsHeader        bool          `json:"isHeader"`        // Aggregation node, not postable
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// IsPostable reports whether journal entries may be written against this account.
func (a *Account) IsPostable() bool {
	return a.IsActive && !a.IsHeader
}
