package csvio

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payments-engine/internal/domain"
)

func TestWriteAccounts(t *testing.T) {
	accounts := []domain.Account{
		{
			Client:    1,
			Available: decimal.RequireFromString("10.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("10.5"),
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("-2.00000"),
			Held:      decimal.RequireFromString("12.3400"),
			Total:     decimal.RequireFromString("10.3400"),
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(accounts))

	want := "client,available,held,total,locked\n" +
		"1,10.5,0,10.5,false\n" +
		"2,-2,12.34,10.34,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAccountsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(nil))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
