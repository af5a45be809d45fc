package csvfile

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/txengine/internal/domain"
)

func TestWriter_WriteAccounts(t *testing.T) {
	accounts := []*domain.Account{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.5"),
		},
		{
			Client:    2,
			Available: decimal.Zero,
			Held:      decimal.Zero,
			Total:     decimal.Zero,
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(accounts))

	expected := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriter_WriteAccountsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAccounts(nil))

	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
