package domain_test

import (
	"testing"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_StatusHelpers(t *testing.T) {
	tests := []struct {
		status                       domain.TransactionStatus
		isDraft, isPosted, isVoid bool
	}{
		{domain.StatusDraft, true, false, false},
		{domain.StatusPosted, false, true, false},
		{domain.StatusVoid, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			txn := domain.Transaction{Status: tt.status}
			assert.Equal(t, tt.isDraft, txn.IsDraft())
			assert.Equal(t, tt.isPosted, txn.IsPosted())
			assert.Equal(t, tt.isVoid, txn.IsVoid())
		})
	}
}

func TestTransaction_VariableEnv(t *testing.T) {
	txn := domain.Transaction{
		Amount: decimal.RequireFromString("1000000"),
		Variables: []domain.TransactionVariable{
			{Name: "gross", Value: decimal.RequireFromString("5000000")},
			{Name: "tax", Value: decimal.RequireFromString("250000")},
		},
	}

	env := txn.VariableEnv()
	assert.Len(t, env, 3)
	assert.True(t, env["amount"].Equal(txn.Amount))
	assert.True(t, env["gross"].Equal(decimal.RequireFromString("5000000")))
	assert.True(t, env["tax"].Equal(decimal.RequireFromString("250000")))
}

func TestTransaction_MappedAccountID(t *testing.T) {
	txn := domain.Transaction{
		AccountMappings: []domain.TransactionAccountMapping{
			{TemplateLineID: "line-1", AccountID: "acc-9"},
		},
	}

	accountID, ok := txn.MappedAccountID("line-1")
	assert.True(t, ok)
	assert.Equal(t, "acc-9", accountID)

	_, ok = txn.MappedAccountID("line-2")
	assert.False(t, ok)
}

func TestAccount_IsPostable(t *testing.T) {
	assert.True(t, (&domain.Account{IsActive: true}).IsPostable())
	assert.False(t, (&domain.Account{IsActive: true, IsHeader: true}).IsPostable())
	assert.False(t, (&domain.Account{IsActive: false}).IsPostable())
}

func TestJournalTemplateLine_IsDynamic(t *testing.T) {
	accountID := "acc-1"
	assert.False(t, (&domain.JournalTemplateLine{AccountID: &accountID}).IsDynamic())
	assert.True(t, (&domain.JournalTemplateLine{}).IsDynamic())
}

func TestJournalEntry_AmountAndPosition(t *testing.T) {
	debit := domain.JournalEntry{DebitAmount: decimal.RequireFromString("100")}
	assert.Equal(t, domain.Debit, debit.Position())
	assert.Equal(t, "100.00", debit.Amount().StringFixed(2))

	credit := domain.JournalEntry{CreditAmount: decimal.RequireFromString("75.50")}
	assert.Equal(t, domain.Credit, credit.Position())
	assert.Equal(t, "75.50", credit.Amount().StringFixed(2))
}

func TestTransactionSequence_DocumentNumber(t *testing.T) {
	seq := domain.TransactionSequence{SequenceType: domain.SequenceTransaction, Year: 2025, Prefix: "TRX", LastNumber: 42}
	assert.Equal(t, "TRX-2025-0042", seq.DocumentNumber())

	// The number widens past four digits instead of overflowing the format.
	seq.LastNumber = 123456
	assert.Equal(t, "TRX-2025-123456", seq.DocumentNumber())
}

func TestSequencePrefix(t *testing.T) {
	assert.Equal(t, "TRX", domain.SequencePrefix(domain.SequenceTransaction))
	assert.Equal(t, "JE", domain.SequencePrefix(domain.SequenceJournal))
}
