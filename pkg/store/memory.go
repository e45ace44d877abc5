package store

import (
	"context"
	"sync"

	"github.com/snaplink-hq/paybridge/pkg/models"
)

// MemoryStore is an in-process Store used in tests and single-node
// development setups.
type MemoryStore struct {
	mu       sync.RWMutex
	intents  map[string]models.Intent
	requests map[string]models.PaymentRequest
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		intents:  make(map[string]models.Intent),
		requests: make(map[string]models.PaymentRequest),
	}
}

// CreateIntent stores a new intent record
func (s *MemoryStore) CreateIntent(_ context.Context, intent *models.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intents[intent.ID] = *intent
	return nil
}

// GetIntent returns a copy of the intent record
func (s *MemoryStore) GetIntent(_ context.Context, id string) (*models.Intent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	intent, exists := s.intents[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &intent, nil
}

// UpdateIntent applies a conditional read-modify-write under the lock
func (s *MemoryStore) UpdateIntent(_ context.Context, id string, expect []models.Status, update IntentUpdate) (*models.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, exists := s.intents[id]
	if !exists {
		return nil, ErrNotFound
	}
	if !statusAllowed(intent.Status, expect) {
		return nil, ErrConflict
	}

	applyUpdate(&intent, update)
	s.intents[id] = intent
	return &intent, nil
}

// GetPaymentRequest returns a copy of the payment request record
func (s *MemoryStore) GetPaymentRequest(_ context.Context, id string) (*models.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, exists := s.requests[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &req, nil
}

// PutPaymentRequest seeds a payment request; the web application owns
// these records in production.
func (s *MemoryStore) PutPaymentRequest(req models.PaymentRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests[req.ID] = req
}
