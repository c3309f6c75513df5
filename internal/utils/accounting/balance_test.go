package accounting_test

import (
	"testing"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/hendrawijaya/pembukuan_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(position domain.JournalPosition, amount string) accounting.ResolvedLine {
	return accounting.ResolvedLine{
		Position: position,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestValidateBalance(t *testing.T) {
	t.Run("balanced pair passes", func(t *testing.T) {
		lines := []accounting.ResolvedLine{
			line(domain.Debit, "150000"),
			line(domain.Credit, "150000"),
		}
		assert.NoError(t, accounting.ValidateBalance(lines))
	})

	t.Run("multi line split passes", func(t *testing.T) {
		lines := []accounting.ResolvedLine{
			line(domain.Debit, "1110000"),
			line(domain.Credit, "1000000"),
			line(domain.Credit, "110000"),
		}
		assert.NoError(t, accounting.ValidateBalance(lines))
	})

	t.Run("imbalance reports both totals", func(t *testing.T) {
		lines := []accounting.ResolvedLine{
			line(domain.Debit, "100.00"),
			line(domain.Credit, "99.99"),
		}
		err := accounting.ValidateBalance(lines)
		require.Error(t, err)

		var unbalanced *accounting.UnbalancedError
		require.ErrorAs(t, err, &unbalanced)
		assert.Equal(t, "100.00", unbalanced.TotalDebit.StringFixed(2))
		assert.Equal(t, "99.99", unbalanced.TotalCredit.StringFixed(2))
		assert.Equal(t, "0.01", unbalanced.Difference().StringFixed(2))
	})

	t.Run("comparison uses two decimal places", func(t *testing.T) {
		lines := []accounting.ResolvedLine{
			line(domain.Debit, "33.333"),
			line(domain.Credit, "33.334"),
		}
		// Both sides round to 33.33.
		assert.NoError(t, accounting.ValidateBalance(lines))
	})

	t.Run("empty set is balanced", func(t *testing.T) {
		assert.NoError(t, accounting.ValidateBalance(nil))
	})
}

func TestTotals(t *testing.T) {
	lines := []accounting.ResolvedLine{
		line(domain.Debit, "250"),
		line(domain.Debit, "750"),
		line(domain.Credit, "600"),
	}
	totalDebit, totalCredit := accounting.Totals(lines)
	assert.Equal(t, "1000.00", totalDebit.StringFixed(2))
	assert.Equal(t, "600.00", totalCredit.StringFixed(2))
}

func TestEntryTotals(t *testing.T) {
	entries := []domain.JournalEntry{
		{DebitAmount: decimal.RequireFromString("500"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("500")},
	}
	totalDebit, totalCredit := accounting.EntryTotals(entries)
	assert.True(t, totalDebit.Equal(totalCredit))
}
