package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGet tests chain lookup by symbol
func TestGet(t *testing.T) {
	c, ok := Get("ETH")
	require.True(t, ok)
	assert.Equal(t, "Ethereum", c.Name)
	assert.Equal(t, 1, c.EVMChainID)

	c, ok = Get("XLM")
	require.True(t, ok)
	assert.Equal(t, "Stellar", c.Name)
	assert.Zero(t, c.EVMChainID)

	_, ok = Get("DOGE")
	assert.False(t, ok)
}

// TestIsSource tests that the settlement chain is not a valid source
func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("ETH"))
	assert.True(t, IsSource("BSC"))
	assert.False(t, IsSource("XLM"))
	assert.False(t, IsSource("DOGE"))
}

// TestAssetDecimals tests per-chain asset precision lookup
func TestAssetDecimals(t *testing.T) {
	tests := []struct {
		name     string
		chain    string
		asset    string
		decimals int
		found    bool
	}{
		{
			name:     "USDC on Ethereum",
			chain:    "ETH",
			asset:    "USDC",
			decimals: 6,
			found:    true,
		},
		{
			name:     "USDC on Stellar",
			chain:    "XLM",
			asset:    "USDC",
			decimals: 7,
			found:    true,
		},
		{
			name:     "USDC on BSC uses 18 decimals",
			chain:    "BSC",
			asset:    "USDC",
			decimals: 18,
			found:    true,
		},
		{
			name:  "Unknown asset",
			chain: "ETH",
			asset: "USDT",
		},
		{
			name:  "Unknown chain",
			chain: "DOGE",
			asset: "USDC",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := AssetDecimals(tc.chain, tc.asset)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.decimals, d)
			}
		})
	}
}

// TestListIsCopy tests that mutating the returned slice does not touch
// the registry
func TestListIsCopy(t *testing.T) {
	l := List()
	require.NotEmpty(t, l)
	l[0].Symbol = "MUTATED"

	c, ok := Get("ETH")
	require.True(t, ok)
	assert.Equal(t, "ETH", c.Symbol)
}
