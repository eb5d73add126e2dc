package lib

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnitsIsExact(t *testing.T) {
	cases := map[string]int64{
		"12.34":  1234,
		"50":     5000,
		"0.01":   1,
		"0.1":    10,
		"19.99":  1999,
		"1.005":  101,
		"0.004":  0,
		"0.001":  0,
		"100000": 10000000,
		"1e3":    100000,
		"1.5E-1": 15,
	}
	cases["92233720368547758.07"] = math.MaxInt64
	cases["-92233720368547758.08"] = math.MinInt64
	for in, expected := range cases {
		cents, err := ToMinorUnits(decimal.RequireFromString(in))
		require.NoError(t, err, in)
		assert.Equal(t, expected, cents, in)
	}
}

func TestToMinorUnitsOutOfRange(t *testing.T) {
	for _, in := range []string{"92233720368547758.08", "1e17", "1e300", "-1e300", "100000000000000000"} {
		_, err := ToMinorUnits(decimal.RequireFromString(in))
		assert.ErrorIs(t, err, ErrAmountOutOfRange, in)
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, in := range []string{"12.34", "0.01", "7", "1234.5"} {
		amount := decimal.RequireFromString(in)
		cents, err := ToMinorUnits(amount)
		require.NoError(t, err)
		assert.True(t, amount.Equal(FromMinorUnits(cents)), in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.05", FormatCurrency(5))
	assert.Equal(t, "$12.34", FormatCurrency(1234))
	assert.Equal(t, "$1,234.56", FormatCurrency(123456))
	assert.Equal(t, "$1,000,000.00", FormatCurrency(100000000))
	assert.Equal(t, "-$3.10", FormatCurrency(-310))
}
