package domain

// TemplateType determines how a template's formulas are parameterized.
type TemplateType string

const (
	// TemplateSimple takes a single "amount" input.
	TemplateSimple TemplateType = "SIMPLE"
	// TemplateDetailed takes multiple named variables.
	TemplateDetailed TemplateType = "DETAILED"
)

// JournalPosition indicates whether a template line produces a debit or a credit.
type JournalPosition string

const (
	Debit  JournalPosition = "DEBIT"
	Credit JournalPosition = "CREDIT"
)

// JournalTemplate is a reusable recipe for producing a balanced set of journal
// entries. Templates are authored by setup flows and are read-only to the
// posting engine.
type JournalTemplate struct {
	TemplateID   string                `json:"templateID"` // Primary Key (UUID)
	Name         string                `json:"name"`
	Category     string                `json:"category"`
	TemplateType TemplateType          `json:"templateType"`
	IsActive     bool                  `json:"isActive"`
	Lines        []JournalTemplateLine `json:"lines"` // Ordered by LineOrder
	AuditFields
}

// JournalTemplateLine is one debit-or-credit leg of a template. A line either
// names a fixed account or leaves AccountID nil, in which case the caller
// supplies the account at transaction time via a TransactionAccountMapping.
type JournalTemplateLine struct {
	LineID      string          `json:"lineID"`
	TemplateID  string          `json:"templateID"`
	AccountID   *string         `json:"accountID"`   // nil means dynamic account selection
	AccountHint string          `json:"accountHint"` // Shown to the user for dynamic lines
	Position    JournalPosition `json:"position"`
	Formula     string          `json:"formula"` // e.g. "amount", "amount * 0.11"
	LineOrder   int             `json:"lineOrder"`
	Description string          `json:"description"`
}

// IsDynamic reports whether the line's account must be supplied at transaction time.
func (l *JournalTemplateLine) IsDynamic() bool {
	return l.AccountID == nil
}
