// Package curve implements the two-leg proportional fee model used to
// size cross-chain stablecoin transfers. Amounts pass through a virtual
// USD unit at a fixed internal precision; each leg deducts the pool's
// proportional fee share. The flat share is a deliberate simplification
// of the partner's reserve-dependent stable-swap curve, so results are
// estimates and the partner stays authoritative.
package curve

import (
	"fmt"
	"math/big"

	"github.com/snaplink-hq/paybridge/pkg/amount"
)

// SystemDecimals is the internal precision of the virtual USD unit.
const SystemDecimals = 9

// PoolToken carries the two token attributes the fee model needs.
type PoolToken struct {
	Decimals int
	FeeShare *big.Rat
}

// ParseFeeShare reads a partner fee share such as "0.003" and validates
// the documented range 0 <= share < 1.
func ParseFeeShare(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid fee share %q", s)
	}
	if r.Sign() < 0 || r.Cmp(big.NewRat(1, 1)) >= 0 {
		return nil, fmt.Errorf("fee share %q out of range [0, 1)", s)
	}
	return r, nil
}

// applyFee deducts the proportional fee, rounding the fee itself down:
// amount - floor(amount * share). Favors the pool.
func applyFee(value *big.Int, share *big.Rat) *big.Int {
	if share == nil || share.Sign() == 0 {
		return new(big.Int).Set(value)
	}
	fee := new(big.Int).Mul(value, share.Num())
	fee.Quo(fee, share.Denom())
	return new(big.Int).Sub(value, fee)
}

// grossUp inverts applyFee, rounding up: ceil(amount / (1 - share)).
// Ensures the payer sends at least enough to cover the desired output.
func grossUp(value *big.Int, share *big.Rat) *big.Int {
	if share == nil || share.Sign() == 0 {
		return new(big.Int).Set(value)
	}
	// amount*den / (den-num), rounded up
	divisor := new(big.Int).Sub(share.Denom(), share.Num())
	scaled := new(big.Int).Mul(value, share.Denom())
	q, r := new(big.Int).QuoRem(scaled, divisor, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// QuoteForward converts a source-chain amount to the destination-chain
// amount the payee receives. Both fee deductions floor, so the payer
// receives at most the fair-curve amount.
func QuoteForward(amountIn *big.Int, source, dest PoolToken) *big.Int {
	v := amount.Convert(amountIn, source.Decimals, SystemDecimals)
	v = applyFee(v, source.FeeShare)
	v = amount.Convert(v, SystemDecimals, dest.Decimals)
	return applyFee(v, dest.FeeShare)
}

// QuoteReverse sizes the source-chain amount needed for a desired
// destination amount. Legs are inverted in reverse order and every
// rounding goes up, so pushing the result back through QuoteForward can
// never under-deliver.
func QuoteReverse(amountOut *big.Int, source, dest PoolToken) *big.Int {
	v := grossUp(amountOut, dest.FeeShare)
	v = amount.ConvertCeil(v, dest.Decimals, SystemDecimals)
	v = grossUp(v, source.FeeShare)
	return amount.ConvertCeil(v, SystemDecimals, source.Decimals)
}

// SourceLegFee returns floor(amountIn * share): the fee the source leg
// will deduct. Used for the quote's bridge-fee estimate.
func SourceLegFee(amountIn *big.Int, share *big.Rat) *big.Int {
	if share == nil || share.Sign() == 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(amountIn, share.Num())
	return fee.Quo(fee, share.Denom())
}
