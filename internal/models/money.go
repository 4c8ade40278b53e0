package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(12, 2).
const (
	MoneyScale      = 2
	MaxItemQuantity = 10000
)

// MaxAmount is the exclusive upper bound of any price, subtotal or total.
var MaxAmount = decimal.New(1, 10)

var (
	errNegativeAmount = errors.New("must not be negative")
	errAmountScale    = errors.New("must have at most 2 decimal places")
	errAmountTooLarge = errors.New("must be below 10000000000")
)

// CheckAmount reports whether d can be stored exactly in a money column.
func CheckAmount(d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return errNegativeAmount
	case !d.Equal(d.Round(MoneyScale)):
		return errAmountScale
	case d.GreaterThanOrEqual(MaxAmount):
		return errAmountTooLarge
	}
	return nil
}
