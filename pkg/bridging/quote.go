package bridging

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snaplink-hq/paybridge/pkg/amount"
	"github.com/snaplink-hq/paybridge/pkg/chains"
	"github.com/snaplink-hq/paybridge/pkg/curve"
	"github.com/snaplink-hq/paybridge/pkg/metrics"
	"github.com/snaplink-hq/paybridge/pkg/models"
	"github.com/snaplink-hq/paybridge/pkg/partner"
	"github.com/snaplink-hq/paybridge/pkg/store"
)

// evmNativeDecimals is the base-unit precision of EVM gas tokens
const evmNativeDecimals = 18

// QuoteRequest is one quote call. DryRun computes the quote without
// persisting an intent.
type QuoteRequest struct {
	SourceChain      string `json:"source_chain"`
	PaymentRequestID string `json:"payment_request_id"`
	RefundAddress    string `json:"refund_address"`
	DryRun           bool   `json:"dry_run"`
}

// QuoteResult is the quote plus, for non-dry runs, the persisted intent
type QuoteResult struct {
	Quote          models.Quote `json:"quote"`
	QuoteExpiresAt time.Time    `json:"quote_expires_at"`
	IntentID       string       `json:"intent_id,omitempty"`
}

// Quote sizes the transfer a payer must send on the source chain to fund
// a payment request, and for non-dry runs persists the resulting intent
// in PENDING_DEPOSIT. This is the only write path in quote building.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if err := validateQuoteRequest(req); err != nil {
		metrics.QuoteErrors.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	// Registry check first: an unknown chain must fail before any
	// partner traffic.
	if !chains.IsSource(req.SourceChain) {
		metrics.QuoteErrors.WithLabelValues("unsupported_chain").Inc()
		return nil, &UnsupportedChainError{Chain: req.SourceChain}
	}

	request, err := s.store.GetPaymentRequest(ctx, req.PaymentRequestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.QuoteErrors.WithLabelValues("not_found").Inc()
			return nil, &NotFoundError{Kind: "payment request", ID: req.PaymentRequestID}
		}
		return nil, err
	}
	if _, ok := chains.Get(request.Network); !ok {
		metrics.QuoteErrors.WithLabelValues("unsupported_chain").Inc()
		return nil, &UnsupportedChainError{Chain: request.Network}
	}

	dir, err := s.directory.Get(ctx)
	if err != nil {
		metrics.QuoteErrors.WithLabelValues("partner_unavailable").Inc()
		return nil, &PartnerUnavailableError{Op: "token-info", Err: err}
	}

	srcChain, ok := dir[req.SourceChain]
	if !ok {
		metrics.QuoteErrors.WithLabelValues("unsupported_chain").Inc()
		return nil, &UnsupportedChainError{Chain: req.SourceChain}
	}
	dstChain, ok := dir[request.Network]
	if !ok {
		metrics.QuoteErrors.WithLabelValues("unsupported_chain").Inc()
		return nil, &UnsupportedChainError{Chain: request.Network}
	}

	srcToken := srcChain.FindToken(request.AssetSymbol)
	if srcToken == nil {
		metrics.QuoteErrors.WithLabelValues("asset_unavailable").Inc()
		return nil, &AssetUnavailableError{Chain: req.SourceChain, Asset: request.AssetSymbol}
	}
	dstToken := dstChain.FindToken(request.AssetSymbol)
	if dstToken == nil {
		metrics.QuoteErrors.WithLabelValues("asset_unavailable").Inc()
		return nil, &AssetUnavailableError{Chain: request.Network, Asset: request.AssetSymbol}
	}

	amountOut, err := amount.Parse(request.Amount)
	if err != nil {
		return nil, &InvalidInputError{Field: "payment request amount", Reason: err.Error()}
	}

	amountIn := curve.QuoteReverse(amountOut, srcToken.PoolToken(), dstToken.PoolToken())

	feeResp, err := s.partner.ReceiveFee(ctx, partner.ReceiveFeeRequest{
		SourceChainID:      srcChain.ChainID,
		DestinationChainID: dstChain.ChainID,
		Messenger:          partner.MessengerAllbridge,
	})
	if err != nil {
		metrics.QuoteErrors.WithLabelValues("partner_unavailable").Inc()
		return nil, &PartnerUnavailableError{Op: "receive-fee", Err: err}
	}

	transferTime := srcChain.TransferTime[request.Network].Allbridge
	if transferTime == 0 {
		transferTime = defaultTransferTimeMs
	}

	bridgeFee := curve.SourceLegFee(amountIn, srcToken.FeeShareRat())
	gasFeeUSD := nativeFeeUSD(feeResp.Fee, feeResp.SourceNativeTokenPrice)

	quote := models.Quote{
		SourceChain:        req.SourceChain,
		SourceToken:        srcToken.TokenAddress,
		DestinationChain:   request.Network,
		DestinationToken:   dstToken.TokenAddress,
		AmountIn:           amountIn.String(),
		AmountInFormatted:  amount.Format(amountIn, srcToken.Decimals),
		AmountOut:          amountOut.String(),
		AmountOutFormatted: amount.Format(amountOut, dstToken.Decimals),
		BridgeFee:          bridgeFee.String(),
		BridgeFeeUSD:       stableFeeUSD(bridgeFee, srcToken.Decimals),
		GasFee:             feeResp.Fee,
		GasFeeUSD:          gasFeeUSD,
		EstimatedTimeMs:    transferTime,
		DepositAddress:     srcChain.BridgeAddress,
		Messenger:          partner.MessengerAllbridge,
	}

	expiresAt := time.Now().UTC().Add(s.quoteExpiry)
	metrics.QuotesComputed.WithLabelValues(req.SourceChain, boolLabel(req.DryRun)).Inc()

	if req.DryRun {
		return &QuoteResult{Quote: quote, QuoteExpiresAt: expiresAt}, nil
	}

	now := time.Now().UTC()
	intent := &models.Intent{
		ID:                 uuid.NewString(),
		PaymentRequestID:   request.ID,
		DepositAddress:     quote.DepositAddress,
		SourceChain:        quote.SourceChain,
		SourceToken:        quote.SourceToken,
		AmountIn:           quote.AmountIn,
		AmountInFormatted:  quote.AmountInFormatted,
		DestinationAddress: request.DestinationAddress,
		DestinationToken:   quote.DestinationToken,
		AmountOut:          quote.AmountOut,
		AmountOutFormatted: quote.AmountOutFormatted,
		RefundAddress:      req.RefundAddress,
		Status:             models.StatusPendingDeposit,
		QuoteExpiresAt:     expiresAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateIntent(ctx, intent); err != nil {
		return nil, err
	}

	metrics.IntentsCreated.WithLabelValues(req.SourceChain).Inc()
	s.logger.InfoWithChain(req.SourceChain, "Created intent %s: %s in for %s out",
		intent.ID, quote.AmountInFormatted, quote.AmountOutFormatted)

	return &QuoteResult{Quote: quote, QuoteExpiresAt: expiresAt, IntentID: intent.ID}, nil
}

// SupportedChains returns the static chain/asset registry. Cacheable
// indefinitely by callers.
func (s *Service) SupportedChains() []chains.Chain {
	return chains.List()
}

const defaultTransferTimeMs = 180000

func validateQuoteRequest(req QuoteRequest) error {
	if req.SourceChain == "" {
		return &InvalidInputError{Field: "source chain"}
	}
	if req.PaymentRequestID == "" {
		return &InvalidInputError{Field: "payment request id"}
	}
	if req.RefundAddress == "" {
		return &InvalidInputError{Field: "refund address"}
	}
	if chains.IsEVM(req.SourceChain) && !common.IsHexAddress(req.RefundAddress) {
		return &InvalidInputError{Field: "refund address", Reason: "is not a valid address"}
	}
	return nil
}

// stableFeeUSD treats the stablecoin at par: the USD estimate of a fee in
// USDC base units is its human form rounded to cents.
func stableFeeUSD(fee *big.Int, decimals int) string {
	return amount.FormatUSD(decimal.NewFromBigInt(fee, -int32(decimals)))
}

// nativeFeeUSD converts a gas fee in native base units to USD using the
// partner-reported native token price.
func nativeFeeUSD(fee, price string) string {
	feeDec, err := decimal.NewFromString(fee)
	if err != nil {
		return ""
	}
	priceDec, err := decimal.NewFromString(price)
	if err != nil {
		return ""
	}
	return amount.FormatUSD(feeDec.Shift(-evmNativeDecimals).Mul(priceDec))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
