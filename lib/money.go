package lib

import (
	"errors"
	"math"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/shopspring/decimal"
)

var ErrAmountOutOfRange = errors.New("amount does not fit in minor units")

var (
	minorUnits    = decimal.NewFromInt(common.MinorUnitsPerMajor)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a currency amount to cents, rounding half away from zero
// when the amount carries more precision than a cent. Amounts whose cents do
// not fit an int64 return ErrAmountOutOfRange.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(minorUnits).Round(0)
	if cents.GreaterThan(maxMinorUnits) || cents.LessThan(minMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCurrency renders cents as a dollar string, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := FromMinorUnits(cents).Truncate(0).String()
	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}
	return sign + "$" + string(grouped) + "." + FromMinorUnits(cents%100).StringFixed(2)[2:]
}
