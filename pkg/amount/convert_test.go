package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvert tests rescaling between decimal precisions
func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		from     int
		to       int
		expected string
	}{
		{
			name:     "Same precision",
			value:    "1000000",
			from:     6,
			to:       6,
			expected: "1000000",
		},
		{
			name:     "Widening 6 to 7",
			value:    "1000000",
			from:     6,
			to:       7,
			expected: "10000000",
		},
		{
			name:     "Widening 6 to 18",
			value:    "5",
			from:     6,
			to:       18,
			expected: "5000000000000",
		},
		{
			name:     "Narrowing truncates",
			value:    "1234567",
			from:     7,
			to:       6,
			expected: "123456",
		},
		{
			name:     "Narrowing to zero",
			value:    "999",
			from:     7,
			to:       3,
			expected: "0",
		},
		{
			name:     "Zero value",
			value:    "0",
			from:     6,
			to:       18,
			expected: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tc.value, 10)
			require.True(t, ok)

			result := Convert(v, tc.from, tc.to)
			assert.Equal(t, tc.expected, result.String())
		})
	}
}

// TestConvertCeil tests round-up narrowing
func TestConvertCeil(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		from     int
		to       int
		expected string
	}{
		{
			name:     "Exact division",
			value:    "1230",
			from:     7,
			to:       6,
			expected: "123",
		},
		{
			name:     "Remainder rounds up",
			value:    "1234567",
			from:     7,
			to:       6,
			expected: "123457",
		},
		{
			name:     "Widening is unchanged",
			value:    "123",
			from:     6,
			to:       9,
			expected: "123000",
		},
		{
			name:     "Small value rounds to one",
			value:    "1",
			from:     9,
			to:       6,
			expected: "1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tc.value, 10)
			require.True(t, ok)

			result := ConvertCeil(v, tc.from, tc.to)
			assert.Equal(t, tc.expected, result.String())
		})
	}
}

// TestConvertRoundTrip verifies that narrowing after widening is exact,
// while widening after narrowing may only lose value
func TestConvertRoundTrip(t *testing.T) {
	values := []string{"0", "1", "999", "1000001", "123456789123456789"}

	for _, s := range values {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)

		t.Run("Widen then narrow "+s, func(t *testing.T) {
			widened := Convert(v, 6, 9)
			back := Convert(widened, 9, 6)
			assert.Zero(t, back.Cmp(v))
		})

		t.Run("Narrow then widen "+s, func(t *testing.T) {
			narrowed := Convert(v, 9, 6)
			back := Convert(narrowed, 6, 9)
			assert.LessOrEqual(t, back.Cmp(v), 0)
		})
	}
}

// TestParse tests base-unit string parsing
func TestParse(t *testing.T) {
	v, err := Parse("100000000")
	require.NoError(t, err)
	assert.Equal(t, "100000000", v.String())

	_, err = Parse("12.5")
	assert.Error(t, err)

	_, err = Parse("-1")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

// TestFormat tests human-readable rendering
func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int
		expected string
	}{
		{
			name:     "Whole amount",
			value:    "100000000",
			decimals: 7,
			expected: "10",
		},
		{
			name:     "Fractional amount",
			value:    "1234567",
			decimals: 6,
			expected: "1.234567",
		},
		{
			name:     "Sub-unit amount",
			value:    "42",
			decimals: 6,
			expected: "0.000042",
		},
		{
			name:     "Zero",
			value:    "0",
			decimals: 18,
			expected: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tc.value, 10)
			require.True(t, ok)
			assert.Equal(t, tc.expected, Format(v, tc.decimals))
		})
	}
}
