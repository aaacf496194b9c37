package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.0000", "10"},
		{"10", "10"},
		{"10.5", "10.5"},
		{"10.50", "10.5"},
		{"0", "0"},
		{"0.0001", "0.0001"},
		{"1.23456", "1.2346"},
		{"1.23455", "1.2346"},
		{"1.23465", "1.2346"},
		{"-3.1000", "-3.1"},
		{"100", "100"},
		{"1000000.25", "1000000.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{" 2.5 ", "2.5"},
		{"1.00005", "1"},
		{"1.00015", "1.0002"},
		{"0.12345678", "0.1235"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{
		"", "abc", "1.2.3", "1,5",
		"1e3", "1E3", "1e-9999999", "1e9999999",
		"0." + strings.Repeat("0", 40) + "1",
	} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestTransactionTypeKnown(t *testing.T) {
	assert.True(t, ParseTransactionType(" Deposit ").Known())
	assert.True(t, ParseTransactionType("CHARGEBACK").Known())
	assert.False(t, ParseTransactionType("refund").Known())
	assert.Equal(t, TransactionTypeWithdrawal, ParseTransactionType("withdrawal"))
}
