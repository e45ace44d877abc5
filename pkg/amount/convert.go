// Package amount provides arbitrary-precision handling of token amounts.
// All amounts in the system are base-unit integers carried as decimal
// strings or *big.Int, never floats.
package amount

import (
	"fmt"
	"math/big"
)

// pow10 returns 10^n as a big.Int. n is caller-guaranteed non-negative.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Convert rescales a base-unit amount between two fixed-point decimal
// precisions. Widening is exact; narrowing truncates toward zero, so
// information loss is expected when fromDecimals > toDecimals.
func Convert(value *big.Int, fromDecimals, toDecimals int) *big.Int {
	if fromDecimals == toDecimals {
		return new(big.Int).Set(value)
	}
	if fromDecimals > toDecimals {
		return new(big.Int).Quo(value, pow10(fromDecimals-toDecimals))
	}
	return new(big.Int).Mul(value, pow10(toDecimals-fromDecimals))
}

// ConvertCeil is Convert with round-up narrowing. The reverse quote path
// uses it so that a narrowed amount, once widened back on the forward
// path, can never undershoot the original.
func ConvertCeil(value *big.Int, fromDecimals, toDecimals int) *big.Int {
	if fromDecimals <= toDecimals {
		return Convert(value, fromDecimals, toDecimals)
	}
	divisor := pow10(fromDecimals - toDecimals)
	q, r := new(big.Int).QuoRem(value, divisor, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// Parse reads a base-unit amount from its decimal string form.
func Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid base-unit amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative base-unit amount %q", s)
	}
	return v, nil
}
