package models

import (
	"time"
)

// Quote is the ephemeral result of one conversion computation. It is never
// persisted on its own; its fields are copied into an Intent when a
// non-dry-run quote is accepted.
type Quote struct {
	SourceChain        string `json:"source_chain"`
	SourceToken        string `json:"source_token"`
	DestinationChain   string `json:"destination_chain"`
	DestinationToken   string `json:"destination_token"`
	AmountIn           string `json:"amount_in"`
	AmountInFormatted  string `json:"amount_in_formatted"`
	AmountOut          string `json:"amount_out"`
	AmountOutFormatted string `json:"amount_out_formatted"`
	BridgeFee          string `json:"bridge_fee"`
	BridgeFeeUSD       string `json:"bridge_fee_usd"`
	GasFee             string `json:"gas_fee"`
	GasFeeUSD          string `json:"gas_fee_usd"`
	EstimatedTimeMs    int64  `json:"estimated_time_ms"`
	DepositAddress     string `json:"deposit_address"`
	Messenger          string `json:"messenger"`
}

// StatusSnapshot is the read-model returned by status checks. QuoteExpired
// is derived from QuoteExpiresAt so callers can detect staleness without
// clock comparisons of their own.
type StatusSnapshot struct {
	IntentID         string     `json:"intent_id"`
	Status           Status     `json:"status"`
	DepositTxHash    string     `json:"deposit_tx_hash,omitempty"`
	SettlementTxHash string     `json:"settlement_tx_hash,omitempty"`
	RefundTxHash     string     `json:"refund_tx_hash,omitempty"`
	QuoteExpiresAt   time.Time  `json:"quote_expires_at"`
	QuoteExpired     bool       `json:"quote_expired"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
