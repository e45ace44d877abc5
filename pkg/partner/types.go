package partner

import (
	"fmt"
	"math/big"

	"github.com/snaplink-hq/paybridge/pkg/curve"
)

// MessengerAllbridge is the route identifier for the bridge's own
// messenger, the only route this service uses.
const MessengerAllbridge = "ALLBRIDGE"

// PoolInfo is the pool reserve snapshot attached to each token. The quote
// engine does not run the reserve-dependent curve, but the fields are
// decoded so the schema matches the wire format.
type PoolInfo struct {
	AValue       string `json:"aValue"`
	DValue       string `json:"dValue"`
	TokenBalance string `json:"tokenBalance"`
	VUsdBalance  string `json:"vUsdBalance"`
}

// TokenInfo is an immutable snapshot of one bridgeable token as reported
// by the partner. It is never locally mutated.
type TokenInfo struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	TokenAddress string   `json:"tokenAddress"`
	Decimals     int      `json:"decimals"`
	FeeShare     string   `json:"feeShare"`
	PoolAddress  string   `json:"poolAddress"`
	PoolInfo     PoolInfo `json:"poolInfo"`

	feeShare *big.Rat
}

// FeeShareRat returns the fee share parsed during ingress validation
func (t *TokenInfo) FeeShareRat() *big.Rat {
	return t.feeShare
}

// PoolToken adapts the token for the fee model
func (t *TokenInfo) PoolToken() curve.PoolToken {
	return curve.PoolToken{Decimals: t.Decimals, FeeShare: t.feeShare}
}

// validate checks the invariants the data source guarantees; a violation
// means the payload cannot be trusted for quoting.
func (t *TokenInfo) validate(chain string) error {
	if t.Decimals < 0 || t.Decimals > 18 {
		return fmt.Errorf("token %s on %s: decimals %d out of range [0, 18]", t.Symbol, chain, t.Decimals)
	}
	share, err := curve.ParseFeeShare(t.FeeShare)
	if err != nil {
		return fmt.Errorf("token %s on %s: %w", t.Symbol, chain, err)
	}
	t.feeShare = share
	return nil
}

// MessengerTime holds the estimated transfer time per messenger in
// milliseconds.
type MessengerTime struct {
	Allbridge int64 `json:"allbridge"`
}

// ChainInfo is the per-chain entry of the token-info directory
type ChainInfo struct {
	ChainID       int                      `json:"chainId"`
	BridgeAddress string                   `json:"bridgeAddress"`
	TransferTime  map[string]MessengerTime `json:"transferTime"`
	Tokens        []TokenInfo              `json:"tokens"`
}

// FindToken returns the token with the given symbol, or nil
func (c *ChainInfo) FindToken(symbol string) *TokenInfo {
	for i := range c.Tokens {
		if c.Tokens[i].Symbol == symbol {
			return &c.Tokens[i]
		}
	}
	return nil
}

// Directory is the partner's token/pool directory keyed by chain symbol
type Directory map[string]ChainInfo

// Validate checks every token in the directory and parses its fee share.
// Runs on ingress; quoting never sees an unvalidated token.
func (d Directory) Validate() error {
	for chain := range d {
		info := d[chain]
		for i := range info.Tokens {
			if err := info.Tokens[i].validate(chain); err != nil {
				return err
			}
		}
		d[chain] = info
	}
	return nil
}

// ReceiveFeeRequest asks for a gas-fee estimate for one route
type ReceiveFeeRequest struct {
	SourceChainID      int    `json:"sourceChainId"`
	DestinationChainID int    `json:"destinationChainId"`
	Messenger          string `json:"messenger"`
}

// ReceiveFeeResponse carries the estimate in source-chain native base
// units plus the price context to express it in USD.
type ReceiveFeeResponse struct {
	Fee                    string `json:"fee"`
	SourceNativeTokenPrice string `json:"sourceNativeTokenPrice"`
	ExchangeRate           string `json:"exchangeRate"`
}

// TransferStatus is the partner's transfer-status vocabulary
type TransferStatus string

const (
	TransferPending    TransferStatus = "Pending"
	TransferInProgress TransferStatus = "InProgress"
	TransferComplete   TransferStatus = "Complete"
	TransferFailed     TransferStatus = "Failed"
)

// TransferStatusResponse is the settlement record for one deposit
// transaction.
type TransferStatusResponse struct {
	Status                 TransferStatus `json:"status"`
	SendTransactionHash    string         `json:"sendTransactionHash"`
	ReceiveTransactionHash string         `json:"receiveTransactionHash"`
	SendAmount             string         `json:"sendAmount"`
	ReceiveAmount          string         `json:"receiveAmount"`
}
