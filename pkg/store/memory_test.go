package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaplink-hq/paybridge/pkg/models"
)

func seedIntent(t *testing.T, s *MemoryStore, status models.Status) *models.Intent {
	t.Helper()
	intent := &models.Intent{
		ID:               "intent-1",
		PaymentRequestID: "req-1",
		SourceChain:      "ETH",
		AmountIn:         "10070000",
		AmountOut:        "100000000",
		Status:           status,
		QuoteExpiresAt:   time.Now().Add(30 * time.Minute),
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	require.NoError(t, s.CreateIntent(context.Background(), intent))
	return intent
}

// TestMemoryStoreIntentCRUD tests create, read and conditional update
func TestMemoryStoreIntentCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("Get missing intent", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.GetIntent(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Create and read back", func(t *testing.T) {
		s := NewMemoryStore()
		created := seedIntent(t, s, models.StatusPendingDeposit)

		got, err := s.GetIntent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.AmountOut, got.AmountOut)
		assert.Equal(t, models.StatusPendingDeposit, got.Status)
	})

	t.Run("Reads return copies", func(t *testing.T) {
		s := NewMemoryStore()
		created := seedIntent(t, s, models.StatusPendingDeposit)

		got, err := s.GetIntent(ctx, created.ID)
		require.NoError(t, err)
		got.Status = models.StatusFailed

		again, err := s.GetIntent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendingDeposit, again.Status)
	})

	t.Run("Conditional update succeeds on expected status", func(t *testing.T) {
		s := NewMemoryStore()
		created := seedIntent(t, s, models.StatusPendingDeposit)

		processing := models.StatusProcessing
		hash := "0xdeposit"
		updated, err := s.UpdateIntent(ctx, created.ID,
			[]models.Status{models.StatusPendingDeposit},
			IntentUpdate{Status: &processing, DepositTxHash: &hash})
		require.NoError(t, err)
		assert.Equal(t, models.StatusProcessing, updated.Status)
		assert.Equal(t, "0xdeposit", updated.DepositTxHash)
	})

	t.Run("Conditional update refuses unexpected status", func(t *testing.T) {
		s := NewMemoryStore()
		created := seedIntent(t, s, models.StatusSuccess)

		pending := models.StatusPendingDeposit
		_, err := s.UpdateIntent(ctx, created.ID,
			[]models.Status{models.StatusPendingDeposit, models.StatusProcessing},
			IntentUpdate{Status: &pending})
		assert.ErrorIs(t, err, ErrConflict)

		got, err := s.GetIntent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, got.Status)
	})

	t.Run("Update on missing intent", func(t *testing.T) {
		s := NewMemoryStore()
		processing := models.StatusProcessing
		_, err := s.UpdateIntent(ctx, "nope",
			[]models.Status{models.StatusPendingDeposit},
			IntentUpdate{Status: &processing})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestMemoryStoreTerminalRace tests that concurrent conditional updates
// cannot produce divergent terminal states
func TestMemoryStoreTerminalRace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedIntent(t, s, models.StatusProcessing)

	nonTerminal := []models.Status{models.StatusPendingDeposit, models.StatusProcessing}
	success := models.StatusSuccess
	failed := models.StatusFailed

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, target := range []models.Status{success, failed} {
		wg.Add(1)
		go func(status models.Status) {
			defer wg.Done()
			_, err := s.UpdateIntent(ctx, "intent-1", nonTerminal, IntentUpdate{Status: &status})
			results <- err
		}(target)
	}
	wg.Wait()
	close(results)

	var conflicts, wins int
	for err := range results {
		if err == nil {
			wins++
		} else if assert.ErrorIs(t, err, ErrConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	got, err := s.GetIntent(ctx, "intent-1")
	require.NoError(t, err)
	assert.True(t, got.Status.Terminal())
}

// TestMemoryStorePaymentRequests tests the payment-request read path
func TestMemoryStorePaymentRequests(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetPaymentRequest(ctx, "req-1")
	assert.ErrorIs(t, err, ErrNotFound)

	s.PutPaymentRequest(models.PaymentRequest{
		ID:                 "req-1",
		DestinationAddress: "GDEST",
		AssetSymbol:        "USDC",
		Amount:             "100000000",
		Network:            "XLM",
	})

	req, err := s.GetPaymentRequest(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "100000000", req.Amount)
	assert.Equal(t, "XLM", req.Network)
}
