package partner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetadataCache tests the TTL behavior of the directory cache
func TestMetadataCache(t *testing.T) {
	t.Run("Single fetch within TTL", func(t *testing.T) {
		var calls int32
		cache := NewMetadataCache(60*time.Second, func(ctx context.Context) (Directory, error) {
			atomic.AddInt32(&calls, 1)
			return Directory{"ETH": {ChainID: 1}}, nil
		})

		first, err := cache.Get(context.Background())
		require.NoError(t, err)
		second, err := cache.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Refetch after TTL elapses", func(t *testing.T) {
		var calls int32
		cache := NewMetadataCache(10*time.Millisecond, func(ctx context.Context) (Directory, error) {
			atomic.AddInt32(&calls, 1)
			return Directory{}, nil
		})

		_, err := cache.Get(context.Background())
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		_, err = cache.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Fetch failure propagates", func(t *testing.T) {
		fetchErr := errors.New("partner down")
		cache := NewMetadataCache(time.Minute, func(ctx context.Context) (Directory, error) {
			return nil, fetchErr
		})

		_, err := cache.Get(context.Background())
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("No stale value after failure", func(t *testing.T) {
		var calls int32
		cache := NewMetadataCache(time.Minute, func(ctx context.Context) (Directory, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("first fetch fails")
			}
			return Directory{"POL": {ChainID: 137}}, nil
		})

		_, err := cache.Get(context.Background())
		require.Error(t, err)

		// The failed fetch must not have primed the cache
		dir, err := cache.Get(context.Background())
		require.NoError(t, err)
		assert.Contains(t, dir, "POL")
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Invalidate forces refetch", func(t *testing.T) {
		var calls int32
		cache := NewMetadataCache(time.Minute, func(ctx context.Context) (Directory, error) {
			atomic.AddInt32(&calls, 1)
			return Directory{}, nil
		})

		_, err := cache.Get(context.Background())
		require.NoError(t, err)

		cache.Invalidate()

		_, err = cache.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Concurrent access", func(t *testing.T) {
		var calls int32
		cache := NewMetadataCache(time.Minute, func(ctx context.Context) (Directory, error) {
			atomic.AddInt32(&calls, 1)
			return Directory{"ETH": {ChainID: 1}}, nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				dir, err := cache.Get(context.Background())
				assert.NoError(t, err)
				assert.Contains(t, dir, "ETH")
			}()
		}
		wg.Wait()

		// Simultaneous expiry may race into redundant fetches, but a
		// warm cache never explodes into one fetch per reader
		for i := 0; i < 10; i++ {
			_, err := cache.Get(context.Background())
			require.NoError(t, err)
		}
		assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(10))
	})
}

// BenchmarkMetadataCacheGet benchmarks cache hits
func BenchmarkMetadataCacheGet(b *testing.B) {
	cache := NewMetadataCache(time.Minute, func(ctx context.Context) (Directory, error) {
		return Directory{"ETH": {ChainID: 1}}, nil
	})
	if _, err := cache.Get(context.Background()); err != nil {
		b.Fatal(fmt.Sprintf("prime failed: %v", err))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(context.Background())
	}
}
