// Package mocks provides test doubles for the partner API without any
// network traffic.
package mocks

import (
	"context"
	"sync"

	"github.com/snaplink-hq/paybridge/pkg/partner"
)

// MockPartner implements partner.API with canned responses and call
// counters so tests can assert exactly how often each endpoint was hit.
type MockPartner struct {
	mu sync.Mutex

	Directory    partner.Directory
	TokenInfoErr error

	FeeResponse *partner.ReceiveFeeResponse
	FeeErr      error

	TransferResponse *partner.TransferStatusResponse
	TransferErr      error

	TokenInfoCalls      int
	ReceiveFeeCalls     int
	TransferStatusCalls int

	LastFeeRequest    partner.ReceiveFeeRequest
	LastTransferChain string
	LastTransferTx    string
}

var _ partner.API = (*MockPartner)(nil)

// TokenInfo returns the configured directory
func (m *MockPartner) TokenInfo(_ context.Context) (partner.Directory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TokenInfoCalls++
	if m.TokenInfoErr != nil {
		return nil, m.TokenInfoErr
	}
	return m.Directory, nil
}

// ReceiveFee returns the configured fee response
func (m *MockPartner) ReceiveFee(_ context.Context, req partner.ReceiveFeeRequest) (*partner.ReceiveFeeResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReceiveFeeCalls++
	m.LastFeeRequest = req
	if m.FeeErr != nil {
		return nil, m.FeeErr
	}
	return m.FeeResponse, nil
}

// TransferStatus returns the configured transfer record
func (m *MockPartner) TransferStatus(_ context.Context, chainSymbol, txID string) (*partner.TransferStatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TransferStatusCalls++
	m.LastTransferChain = chainSymbol
	m.LastTransferTx = txID
	if m.TransferErr != nil {
		return nil, m.TransferErr
	}
	return m.TransferResponse, nil
}
