package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckAmount(t *testing.T) {
	ok := []string{"0", "0.01", "2500", "999.50", "9999999999.99"}
	for _, s := range ok {
		assert.NoError(t, CheckAmount(decimal.RequireFromString(s)), s)
	}

	bad := map[string]error{
		"-0.01":       errNegativeAmount,
		"0.005":       errAmountScale,
		"12.345":      errAmountScale,
		"10000000000": errAmountTooLarge,
		"1e12":        errAmountTooLarge,
	}
	for s, want := range bad {
		assert.ErrorIs(t, CheckAmount(decimal.RequireFromString(s)), want, s)
	}
}

func TestCheckAmountIgnoresTrailingZeros(t *testing.T) {
	assert.NoError(t, CheckAmount(decimal.RequireFromString("2500.000")))
}
