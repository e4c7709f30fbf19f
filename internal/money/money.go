// Package money holds exact amounts parsed from the stored numeric strings.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal value that may be NaN when it came from a non-numeric string.
// NaN propagates through arithmetic.
type Amount struct {
	d   decimal.Decimal
	nan bool
}

var NaN = Amount{nan: true}

// Parse coerces s to a number: surrounding spaces are ignored, an empty string is zero,
// and anything else that is not numeric is NaN.
func Parse(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return NaN
	}

	return Amount{d: d}
}

func FromInt(n int64) Amount {
	return Amount{d: decimal.NewFromInt(n)}
}

func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

func (a Amount) IsNaN() bool { return a.nan }

func (a Amount) IsZero() bool { return !a.nan && a.d.IsZero() }

// IsPositive reports a > 0. NaN is never positive.
func (a Amount) IsPositive() bool { return !a.nan && a.d.IsPositive() }

func (a Amount) Add(b Amount) Amount {
	if a.nan || b.nan {
		return NaN
	}

	return Amount{d: a.d.Add(b.d)}
}

func (a Amount) Sub(b Amount) Amount {
	if a.nan || b.nan {
		return NaN
	}

	return Amount{d: a.d.Sub(b.d)}
}

// Equal compares two amounts. NaN is not equal to anything, itself included.
func (a Amount) Equal(b Amount) bool {
	if a.nan || b.nan {
		return false
	}

	return a.d.Equal(b.d)
}

// Decimal returns the underlying value; it is zero for NaN.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Percent returns round(a / total * 100). ok is false when the ratio is undefined.
func (a Amount) Percent(total Amount) (int64, bool) {
	if a.nan || total.nan || total.d.IsZero() {
		return 0, false
	}

	return a.d.Div(total.d).Mul(decimal.NewFromInt(100)).Round(0).IntPart(), true
}

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

func (a Amount) String() string {
	if a.nan {
		return "NaN"
	}

	return a.d.String()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Sum adds every amount. The sum of nothing is zero.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}
