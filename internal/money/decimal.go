// Package money holds the fixed-point helpers used for currency math.
// Values are shopspring decimals, binary floating point is never involved.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ConversionScale is the number of fractional digits kept in conversion results.
const ConversionScale int32 = 2

// Accepted shape of externally supplied decimals. Work on a decimal grows with
// its exponent, so values outside these bounds are refused before any math.
const (
	MinExponent int32 = -18
	MaxExponent int32 = 18
	MaxDigits         = 38
)

var (
	ErrUndefinedOperand = errors.New("multiplication operand is undefined")
	ErrExponentOverflow = errors.New("multiplication result exponent overflows")
)

// InRange reports whether v is present, its exponent lies within
// [MinExponent, MaxExponent] and its coefficient has at most MaxDigits digits.
func InRange(v *decimal.Decimal) bool {
	if v == nil {
		return false
	}
	if exp := v.Exponent(); exp < MinExponent || exp > MaxExponent {
		return false
	}
	return v.NumDigits() <= MaxDigits
}

// Multiply returns a*b computed exactly. A nil operand is an error, never zero.
func Multiply(a, b *decimal.Decimal) (decimal.Decimal, error) {
	if a == nil || b == nil {
		return decimal.Decimal{}, ErrUndefinedOperand
	}
	// decimal.Mul panics when the exponent sum leaves int32
	if exp := int64(a.Exponent()) + int64(b.Exponent()); exp < math.MinInt32 || exp > math.MaxInt32 {
		return decimal.Decimal{}, ErrExponentOverflow
	}
	return a.Mul(*b), nil
}

// RoundHalfUp rounds v to scale fractional digits, ties away from zero.
// nil passes through as nil. Use Format to render trailing zeros.
func RoundHalfUp(v *decimal.Decimal, scale int32) *decimal.Decimal {
	if v == nil {
		return nil
	}
	// decimal.Round is half away from zero, which is HALF_UP for signed values
	r := v.Round(scale)
	return &r
}

// IsPositive reports whether v is present and strictly greater than zero.
func IsPositive(v *decimal.Decimal) bool {
	return v != nil && v.IsPositive()
}

// Format renders v with exactly scale fractional digits; nil renders as zero.
func Format(v *decimal.Decimal, scale int32) string {
	if v == nil {
		return decimal.Zero.StringFixed(scale)
	}
	return v.StringFixed(scale)
}
