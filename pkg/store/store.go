// Package store defines the record store the bridging core persists
// intents through, plus in-memory and Postgres implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/models"
)

var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a conditional update found the intent outside the
	// expected statuses. The caller should re-read and decide.
	ErrConflict = errors.New("intent status conflict")
)

// IntentUpdate describes the mutable subset of an intent. Nil fields are
// left untouched.
type IntentUpdate struct {
	Status           *models.Status
	DepositTxHash    *string
	SettlementTxHash *string
	RefundTxHash     *string
	CompletedAt      *time.Time
}

// Store is the persistence collaborator. UpdateIntent is conditional on
// the current status being one of expect, which is how status
// monotonicity survives concurrent status checks.
type Store interface {
	CreateIntent(ctx context.Context, intent *models.Intent) error
	GetIntent(ctx context.Context, id string) (*models.Intent, error)
	UpdateIntent(ctx context.Context, id string, expect []models.Status, update IntentUpdate) (*models.Intent, error)

	GetPaymentRequest(ctx context.Context, id string) (*models.PaymentRequest, error)
}

func statusAllowed(current models.Status, expect []models.Status) bool {
	for _, s := range expect {
		if s == current {
			return true
		}
	}
	return false
}

func applyUpdate(intent *models.Intent, update IntentUpdate) {
	if update.Status != nil {
		intent.Status = *update.Status
	}
	if update.DepositTxHash != nil {
		intent.DepositTxHash = *update.DepositTxHash
	}
	if update.SettlementTxHash != nil {
		intent.SettlementTxHash = *update.SettlementTxHash
	}
	if update.RefundTxHash != nil {
		intent.RefundTxHash = *update.RefundTxHash
	}
	if update.CompletedAt != nil {
		intent.CompletedAt = update.CompletedAt
	}
	intent.UpdatedAt = time.Now().UTC()
}
