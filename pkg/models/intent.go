package models

import (
	"time"
)

// Status represents the lifecycle state of a bridging intent
type Status string

const (
	// StatusPendingDeposit means the payer has not yet broadcast a deposit transaction
	StatusPendingDeposit Status = "PENDING_DEPOSIT"
	// StatusProcessing means a deposit was recorded and the bridge is moving funds
	StatusProcessing Status = "PROCESSING"
	// StatusIncompleteDeposit means the payer sent less than the quoted amount.
	// No partner status maps onto it; it is only set through the store directly.
	StatusIncompleteDeposit Status = "INCOMPLETE_DEPOSIT"
	// StatusSuccess means the destination-chain payout completed
	StatusSuccess Status = "SUCCESS"
	// StatusFailed means the bridge reported a failure
	StatusFailed Status = "FAILED"
	// StatusRefunded means funds were returned to the refund address
	StatusRefunded Status = "REFUNDED"
)

// Terminal reports whether the status is final. Terminal intents are served
// from persisted state and never polled against the partner again.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Intent is the durable record of one cross-chain payment attempt.
// AmountOut is fixed at creation time and never recalculated; only Status,
// the transaction hashes and CompletedAt move forward.
type Intent struct {
	ID                 string     `json:"id"`
	PaymentRequestID   string     `json:"payment_request_id"`
	DepositAddress     string     `json:"deposit_address"`
	DepositMemo        string     `json:"deposit_memo,omitempty"`
	SourceChain        string     `json:"source_chain"`
	SourceToken        string     `json:"source_token"`
	AmountIn           string     `json:"amount_in"`
	AmountInFormatted  string     `json:"amount_in_formatted"`
	DestinationAddress string     `json:"destination_address"`
	DestinationToken   string     `json:"destination_token"`
	AmountOut          string     `json:"amount_out"`
	AmountOutFormatted string     `json:"amount_out_formatted"`
	RefundAddress      string     `json:"refund_address"`
	Status             Status     `json:"status"`
	DepositTxHash      string     `json:"deposit_tx_hash,omitempty"`
	SettlementTxHash   string     `json:"settlement_tx_hash,omitempty"`
	RefundTxHash       string     `json:"refund_tx_hash,omitempty"`
	QuoteExpiresAt     time.Time  `json:"quote_expires_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// PaymentRequest is the target a bridging intent funds: a fixed receivable
// amount on a fixed destination chain and asset.
type PaymentRequest struct {
	ID                 string `json:"id"`
	DestinationAddress string `json:"destination_address"`
	AssetSymbol        string `json:"asset_symbol"`
	Amount             string `json:"amount"`
	Network            string `json:"network"`
}
