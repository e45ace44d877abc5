package bridging

import (
	"context"
	"errors"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/metrics"
	"github.com/snaplink-hq/paybridge/pkg/models"
	"github.com/snaplink-hq/paybridge/pkg/partner"
	"github.com/snaplink-hq/paybridge/pkg/store"
)

// nonTerminalStatuses guards every tracker write: once an intent is
// terminal, no update may touch it.
var nonTerminalStatuses = []models.Status{
	models.StatusPendingDeposit,
	models.StatusProcessing,
	models.StatusIncompleteDeposit,
}

// Status returns the current snapshot of an intent, refreshing from the
// partner when a deposit is in flight. Terminal intents are answered from
// the store with no partner call. A partner failure degrades to the last
// persisted snapshot: the partner indexes deposits with a lag, so a
// transient miss is expected and must not surface as an error.
func (s *Service) Status(ctx context.Context, intentID string) (*models.StatusSnapshot, error) {
	if intentID == "" {
		return nil, &InvalidInputError{Field: "intent id"}
	}

	intent, err := s.store.GetIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Kind: "intent", ID: intentID}
		}
		return nil, err
	}

	if intent.Status.Terminal() {
		return snapshot(intent), nil
	}

	if intent.DepositTxHash == "" {
		return snapshot(intent), nil
	}

	transfer, err := s.partner.TransferStatus(ctx, intent.SourceChain, intent.DepositTxHash)
	if err != nil {
		metrics.DegradedStatusReads.Inc()
		s.logger.DebugWithChain(intent.SourceChain,
			"Transfer status lookup failed for intent %s, serving last snapshot: %v", intent.ID, err)
		return snapshot(intent), nil
	}

	mapped := mapTransferStatus(transfer.Status)
	if mapped == intent.Status {
		return snapshot(intent), nil
	}
	if mapped == models.StatusPendingDeposit {
		// Unrecognized partner status carries no information; never
		// walk an intent backwards.
		return snapshot(intent), nil
	}

	update := store.IntentUpdate{Status: &mapped}
	if transfer.ReceiveTransactionHash != "" {
		update.SettlementTxHash = &transfer.ReceiveTransactionHash
	}
	if mapped.Terminal() {
		now := time.Now().UTC()
		update.CompletedAt = &now
	}

	updated, err := s.store.UpdateIntent(ctx, intent.ID, nonTerminalStatuses, update)
	if errors.Is(err, store.ErrConflict) {
		// A concurrent check won the write; serve its result
		updated, err = s.store.GetIntent(ctx, intent.ID)
	}
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(intent.Status), string(updated.Status)).Inc()
	s.logger.InfoWithChain(intent.SourceChain, "Intent %s moved %s -> %s",
		intent.ID, intent.Status, updated.Status)

	return snapshot(updated), nil
}

// RecordDeposit stores the payer's deposit transaction hash and moves the
// intent to PROCESSING. Calling it again with the same hash is a no-op,
// and a terminal intent is never regressed.
func (s *Service) RecordDeposit(ctx context.Context, intentID, depositTxHash string) (*models.StatusSnapshot, error) {
	if intentID == "" {
		return nil, &InvalidInputError{Field: "intent id"}
	}
	if depositTxHash == "" {
		return nil, &InvalidInputError{Field: "deposit tx hash"}
	}

	intent, err := s.store.GetIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Kind: "intent", ID: intentID}
		}
		return nil, err
	}

	if intent.Status.Terminal() {
		return snapshot(intent), nil
	}
	if intent.Status == models.StatusProcessing && intent.DepositTxHash == depositTxHash {
		return snapshot(intent), nil
	}

	processing := models.StatusProcessing
	updated, err := s.store.UpdateIntent(ctx, intent.ID,
		[]models.Status{models.StatusPendingDeposit, models.StatusProcessing},
		store.IntentUpdate{Status: &processing, DepositTxHash: &depositTxHash})
	if errors.Is(err, store.ErrConflict) {
		updated, err = s.store.GetIntent(ctx, intent.ID)
	}
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(intent.Status), string(updated.Status)).Inc()
	s.logger.InfoWithChain(intent.SourceChain, "Recorded deposit %s for intent %s",
		depositTxHash, intent.ID)

	return snapshot(updated), nil
}

// mapTransferStatus maps the partner vocabulary onto the local enum.
// Anything unrecognized reads as a deposit still pending.
func mapTransferStatus(status partner.TransferStatus) models.Status {
	switch status {
	case partner.TransferPending, partner.TransferInProgress:
		return models.StatusProcessing
	case partner.TransferComplete:
		return models.StatusSuccess
	case partner.TransferFailed:
		return models.StatusFailed
	}
	return models.StatusPendingDeposit
}

func snapshot(intent *models.Intent) *models.StatusSnapshot {
	return &models.StatusSnapshot{
		IntentID:         intent.ID,
		Status:           intent.Status,
		DepositTxHash:    intent.DepositTxHash,
		SettlementTxHash: intent.SettlementTxHash,
		RefundTxHash:     intent.RefundTxHash,
		QuoteExpiresAt:   intent.QuoteExpiresAt,
		QuoteExpired:     !intent.Status.Terminal() && time.Now().After(intent.QuoteExpiresAt),
		CompletedAt:      intent.CompletedAt,
	}
}
