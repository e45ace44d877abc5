package amount

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Format renders a base-unit amount as a human-readable decimal string,
// e.g. 100000000 with 7 decimals -> "10".
func Format(value *big.Int, decimals int) string {
	return decimal.NewFromBigInt(value, -int32(decimals)).String()
}

// FormatUSD renders a USD estimate with two fractional digits.
func FormatUSD(value decimal.Decimal) string {
	return value.Round(2).StringFixed(2)
}
