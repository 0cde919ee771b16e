package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestMultiply(t *testing.T) {
	got, err := Multiply(dec(t, "253.408233"), dec(t, "3.96"))
	require.NoError(t, err)
	require.True(t, got.Equal(*dec(t, "1003.49660268")), "got %s", got)
}

func TestMultiply_UndefinedOperand(t *testing.T) {
	_, err := Multiply(nil, dec(t, "1"))
	require.ErrorIs(t, err, ErrUndefinedOperand)

	_, err = Multiply(dec(t, "1"), nil)
	require.ErrorIs(t, err, ErrUndefinedOperand)
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in    string
		scale int32
		want  string
	}{
		{in: "2.345", scale: 2, want: "2.35"},
		{in: "2.344", scale: 2, want: "2.34"},
		{in: "1003.49660268", scale: 2, want: "1003.50"},
		{in: "253.408233", scale: 2, want: "253.41"},
		{in: "-2.345", scale: 2, want: "-2.35"},
		{in: "0.005", scale: 2, want: "0.01"},
		{in: "1.5", scale: 0, want: "2"},
		{in: "7", scale: 2, want: "7.00"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := RoundHalfUp(dec(t, tc.in), tc.scale)
			require.NotNil(t, got)
			require.Equal(t, tc.want, got.StringFixed(tc.scale))
		})
	}
}

func TestRoundHalfUp_DecimalExact(t *testing.T) {
	// 1.005 is 1.00499999... as a float64, decimal keeps the tie
	require.Equal(t, "1.01", RoundHalfUp(dec(t, "1.005"), 2).StringFixed(2))
}

func TestRoundHalfUp_NilPassesThrough(t *testing.T) {
	require.Nil(t, RoundHalfUp(nil, 2))
}

func TestIsPositive(t *testing.T) {
	require.True(t, IsPositive(dec(t, "0.0000001")))
	require.True(t, IsPositive(dec(t, "3.96")))
	require.False(t, IsPositive(dec(t, "0")))
	require.False(t, IsPositive(dec(t, "-1")))
	require.False(t, IsPositive(nil))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "1003.50", Format(dec(t, "1003.5"), 2))
	require.Equal(t, "0.00", Format(nil, 2))
	require.Equal(t, "3.960", Format(dec(t, "3.96"), 3))
}

func TestMultiply_ExponentOverflow(t *testing.T) {
	cases := []struct {
		name string
		a, b decimal.Decimal
	}{
		{name: "below int32", a: *dec(t, "1e-2147483647"), b: *dec(t, "3.96")},
		{name: "above int32", a: decimal.New(1, math.MaxInt32), b: decimal.New(1, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := Multiply(&tc.a, &tc.b)
				require.ErrorIs(t, err, ErrExponentOverflow)
			})
		})
	}
}

func TestInRange(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{in: "3.96", want: true},
		{in: "253.408233", want: true},
		{in: "0.000000000000000001", want: true},
		{in: "1e18", want: true},
		{in: "99999999999999999999999999999999999999", want: true},
		{in: "0.0000000000000000001", want: false},
		{in: "1e19", want: false},
		{in: "1e-5000000", want: false},
		{in: "1e-2147483647", want: false},
		{in: "1e2000000", want: false},
		{in: "999999999999999999999999999999999999999", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, InRange(dec(t, tc.in)))
		})
	}
	require.False(t, InRange(nil))
	require.True(t, InRange(&decimal.Decimal{}))
}
