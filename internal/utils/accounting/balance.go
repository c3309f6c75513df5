// Package accounting holds the double-entry arithmetic shared by services
// and repositories.
package accounting

import (
	"fmt"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolvedLine is one fully resolved leg of a posting attempt: the account
// has been chosen and the formula evaluated.
type ResolvedLine struct {
	LineOrder   int
	AccountID   string
	AccountCode string
	AccountName string
	Position    domain.JournalPosition
	Amount      decimal.Decimal
}

// UnbalancedError reports a debit/credit mismatch with both totals and their
// difference. An imbalance is never rounded away.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal not balanced: debit=%s credit=%s difference=%s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference().StringFixed(2))
}

// Difference returns the absolute gap between the two sides.
func (e *UnbalancedError) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit).Abs()
}

// Totals sums the debit and credit sides of a set of resolved lines.
func Totals(lines []ResolvedLine) (totalDebit, totalCredit decimal.Decimal) {
	for _, line := range lines {
		if line.Position == domain.Debit {
			totalDebit = totalDebit.Add(line.Amount)
		} else {
			totalCredit = totalCredit.Add(line.Amount)
		}
	}
	return totalDebit, totalCredit
}

// ValidateBalance succeeds iff total debits equal total credits at two
// decimal places. This gate runs before any journal entry or sequence number
// is persisted.
func ValidateBalance(lines []ResolvedLine) error {
	totalDebit, totalCredit := Totals(lines)
	if !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
		return &UnbalancedError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return nil
}

// EntryTotals sums the debit and credit sides of persisted journal entries.
func EntryTotals(entries []domain.JournalEntry) (totalDebit, totalCredit decimal.Decimal) {
	for _, entry := range entries {
		totalDebit = totalDebit.Add(entry.DebitAmount)
		totalCredit = totalCredit.Add(entry.CreditAmount)
	}
	return totalDebit, totalCredit
}
