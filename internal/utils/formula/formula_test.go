package formula_test

import (
	"testing"

	"github.com/hendrawijaya/pembukuan_app/internal/utils/formula"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(pairs map[string]string) formula.Env {
	e := formula.Env{}
	for name, value := range pairs {
		e[name] = decimal.RequireFromString(value)
	}
	return e
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		env     formula.Env
		want    string
	}{
		{
			name:    "blank formula defaults to amount",
			formula: "",
			env:     env(map[string]string{"amount": "150000"}),
			want:    "150000.00",
		},
		{
			name:    "whitespace only defaults to amount",
			formula: "   ",
			env:     env(map[string]string{"amount": "42.5"}),
			want:    "42.50",
		},
		{
			name:    "plain variable",
			formula: "amount",
			env:     env(map[string]string{"amount": "1000000"}),
			want:    "1000000.00",
		},
		{
			name:    "vat multiplication",
			formula: "amount * 0.11",
			env:     env(map[string]string{"amount": "1000000"}),
			want:    "110000.00",
		},
		{
			name:    "addition and subtraction",
			formula: "gross - deductions + bonus",
			env:     env(map[string]string{"gross": "5000000", "deductions": "250000", "bonus": "100000"}),
			want:    "4850000.00",
		},
		{
			name:    "parentheses change precedence",
			formula: "(gross - deductions) * 0.05",
			env:     env(map[string]string{"gross": "1000", "deductions": "200"}),
			want:    "40.00",
		},
		{
			name:    "multiplication binds tighter than addition",
			formula: "a + b * c",
			env:     env(map[string]string{"a": "1", "b": "2", "c": "3"}),
			want:    "7.00",
		},
		{
			name:    "unary minus",
			formula: "-amount + 100",
			env:     env(map[string]string{"amount": "40"}),
			want:    "60.00",
		},
		{
			name:    "division",
			formula: "amount / 3",
			env:     env(map[string]string{"amount": "100"}),
			want:    "33.33",
		},
		{
			name:    "rounding happens once after full evaluation",
			formula: "amount / 3 * 3",
			env:     env(map[string]string{"amount": "100"}),
			want:    "100.00",
		},
		{
			name:    "half up rounding",
			formula: "amount * 0.005",
			env:     env(map[string]string{"amount": "101"}),
			want:    "0.51",
		},
		{
			name:    "numeric literal only",
			formula: "12500.75",
			env:     formula.Env{},
			want:    "12500.75",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formula.Evaluate(tt.formula, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		env     formula.Env
		wantErr error
	}{
		{
			name:    "unknown variable",
			formula: "amount * rate",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrUnknownVariable,
		},
		{
			name:    "division by zero literal",
			formula: "amount / 0",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrDivisionByZero,
		},
		{
			name:    "division by zero variable",
			formula: "amount / divisor",
			env:     env(map[string]string{"amount": "100", "divisor": "0"}),
			wantErr: formula.ErrDivisionByZero,
		},
		{
			name:    "dangling operator",
			formula: "amount +",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrSyntax,
		},
		{
			name:    "unclosed parenthesis",
			formula: "(amount * 2",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrSyntax,
		},
		{
			name:    "unexpected character",
			formula: "amount % 2",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrSyntax,
		},
		{
			name:    "trailing garbage",
			formula: "amount 2",
			env:     env(map[string]string{"amount": "100"}),
			wantErr: formula.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formula.Evaluate(tt.formula, tt.env)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, formula.Validate(""))
	assert.NoError(t, formula.Validate("amount * 0.11"))
	assert.NoError(t, formula.Validate("(gross - deductions) * 0.05"))

	// Unknown variables pass validation; they are only resolvable with a
	// concrete environment.
	assert.NoError(t, formula.Validate("some_future_variable * 2"))

	assert.ErrorIs(t, formula.Validate("amount +"), formula.ErrSyntax)
	assert.ErrorIs(t, formula.Validate("(amount"), formula.ErrSyntax)
	assert.ErrorIs(t, formula.Validate("amount $ 2"), formula.ErrSyntax)
}
