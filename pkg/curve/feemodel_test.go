package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShare(t *testing.T, s string) *big.Rat {
	t.Helper()
	r, err := ParseFeeShare(s)
	require.NoError(t, err)
	return r
}

// TestParseFeeShare tests fee share validation
func TestParseFeeShare(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "Typical share",
			input: "0.003",
		},
		{
			name:  "Zero share",
			input: "0",
		},
		{
			name:  "Upper range",
			input: "0.049",
		},
		{
			name:    "One is rejected",
			input:   "1",
			wantErr: true,
		},
		{
			name:    "Above one is rejected",
			input:   "1.5",
			wantErr: true,
		},
		{
			name:    "Negative is rejected",
			input:   "-0.003",
			wantErr: true,
		},
		{
			name:    "Garbage is rejected",
			input:   "abc",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFeeShare(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestQuoteForwardZeroFee tests that a zero fee share degenerates to a
// pure precision conversion
func TestQuoteForwardZeroFee(t *testing.T) {
	src := PoolToken{Decimals: 6, FeeShare: mustShare(t, "0")}
	dst := PoolToken{Decimals: 7, FeeShare: mustShare(t, "0")}

	in := big.NewInt(1000000) // 1.000000
	out := QuoteForward(in, src, dst)
	assert.Equal(t, "10000000", out.String())

	back := QuoteReverse(out, src, dst)
	assert.Equal(t, in.String(), back.String())
}

// TestQuoteForward tests the two-leg deduction with floor rounding
func TestQuoteForward(t *testing.T) {
	src := PoolToken{Decimals: 6, FeeShare: mustShare(t, "0.003")}
	dst := PoolToken{Decimals: 7, FeeShare: mustShare(t, "0.003")}

	// 10.000000 -> system 10000000000, fee 30000000 -> 9970000000
	// -> dest 99700000, fee 299100 -> 99400900
	out := QuoteForward(big.NewInt(10000000), src, dst)
	assert.Equal(t, "99400900", out.String())
}

// TestQuoteReverseCoversForward verifies the inverse bound: grossing up
// and pushing the result back through the forward path never
// under-delivers the requested output
func TestQuoteReverseCoversForward(t *testing.T) {
	tests := []struct {
		name      string
		srcDec    int
		dstDec    int
		srcShare  string
		dstShare  string
		amountOut string
	}{
		{
			name:      "USDC 6 to 7 decimals with 0.3% both legs",
			srcDec:    6,
			dstDec:    7,
			srcShare:  "0.003",
			dstShare:  "0.003",
			amountOut: "100000000",
		},
		{
			name:      "Equal decimals",
			srcDec:    6,
			dstDec:    6,
			srcShare:  "0.003",
			dstShare:  "0.001",
			amountOut: "5000001",
		},
		{
			name:      "Narrowing source with 18 decimals",
			srcDec:    18,
			dstDec:    7,
			srcShare:  "0.0015",
			dstShare:  "0.003",
			amountOut: "123456789",
		},
		{
			name:      "Awkward odd amount",
			srcDec:    6,
			dstDec:    7,
			srcShare:  "0.003",
			dstShare:  "0.003",
			amountOut: "99999991",
		},
		{
			name:      "Tiny amount",
			srcDec:    6,
			dstDec:    7,
			srcShare:  "0.003",
			dstShare:  "0.003",
			amountOut: "1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := PoolToken{Decimals: tc.srcDec, FeeShare: mustShare(t, tc.srcShare)}
			dst := PoolToken{Decimals: tc.dstDec, FeeShare: mustShare(t, tc.dstShare)}

			want, ok := new(big.Int).SetString(tc.amountOut, 10)
			require.True(t, ok)

			in := QuoteReverse(want, src, dst)
			delivered := QuoteForward(in, src, dst)

			assert.GreaterOrEqual(t, delivered.Cmp(want), 0,
				"forward(reverse(%s)) = %s must cover the requested output", want, delivered)
		})
	}
}

// TestFeeMonotonicity tests that a larger fee share strictly shrinks the
// forward output and strictly grows the reverse input
func TestFeeMonotonicity(t *testing.T) {
	dst := PoolToken{Decimals: 7, FeeShare: mustShare(t, "0.003")}
	in := big.NewInt(10000000)
	out := big.NewInt(100000000)

	shares := []string{"0.001", "0.003", "0.01", "0.03"}

	var prevForward, prevReverse *big.Int
	for _, s := range shares {
		src := PoolToken{Decimals: 6, FeeShare: mustShare(t, s)}

		forward := QuoteForward(in, src, dst)
		reverse := QuoteReverse(out, src, dst)

		if prevForward != nil {
			assert.Equal(t, -1, forward.Cmp(prevForward),
				"forward output must strictly decrease as fee share grows")
			assert.Equal(t, 1, reverse.Cmp(prevReverse),
				"reverse input must strictly increase as fee share grows")
		}
		prevForward, prevReverse = forward, reverse
	}
}

// TestSourceLegFee tests the bridge-fee estimate helper
func TestSourceLegFee(t *testing.T) {
	fee := SourceLegFee(big.NewInt(1000000), mustShare(t, "0.003"))
	assert.Equal(t, "3000", fee.String())

	fee = SourceLegFee(big.NewInt(1000000), mustShare(t, "0"))
	assert.Equal(t, "0", fee.String())

	// floor: 0.003 * 999 = 2.997 -> 2
	fee = SourceLegFee(big.NewInt(999), mustShare(t, "0.003"))
	assert.Equal(t, "2", fee.String())
}
