package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cents is a fixed-point money amount with a scale of 100 (one unit = one cent).
type Cents int64

var hundred = decimal.NewFromInt(100)

// CentsFromDollars rounds a dollar amount to the nearest cent, half away from zero.
// The conversion goes through the shortest decimal representation of the float, so
// values such as 1.005 round to 101 cents rather than drifting to 100.
// NaN and infinities convert to zero.
func CentsFromDollars(dollars float64) Cents {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return 0
	}
	return Cents(decimal.NewFromFloat(dollars).Mul(hundred).Round(0).IntPart())
}

// Dollars converts cents back to a floating dollar amount.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// Decimal returns the exact dollar value.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as a signed dollar string, e.g. "-150.00".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}
