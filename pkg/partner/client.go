// Package partner implements the typed client for the bridge partner's
// HTTP API and the time-boxed cache of its token/pool directory.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/logger"
	"github.com/snaplink-hq/paybridge/pkg/metrics"
)

// API is the partner surface the quote builder and lifecycle tracker
// consume. Narrow on purpose so tests can substitute a double.
type API interface {
	TokenInfo(ctx context.Context) (Directory, error)
	ReceiveFee(ctx context.Context, req ReceiveFeeRequest) (*ReceiveFeeResponse, error)
	TransferStatus(ctx context.Context, chainSymbol, txID string) (*TransferStatusResponse, error)
}

// Client talks to the partner bridge API
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     logger.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a partner API client with a bounded request timeout.
// The partner tolerates indexing lag, so the timeout is generous but must
// exist to avoid indefinite hangs.
func NewClient(endpoint string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint: endpoint,
		logger:   log,
	}
}

// TokenInfo fetches the full per-chain token/pool directory and validates
// every token on ingress. Untyped payloads never leave this package.
func (c *Client) TokenInfo(ctx context.Context) (Directory, error) {
	body, err := c.get(ctx, "token-info", c.endpoint+"/token-info?filter=all")
	if err != nil {
		return nil, err
	}

	var dir Directory
	if err := json.Unmarshal(body, &dir); err != nil {
		return nil, fmt.Errorf("failed to decode token info: %v", err)
	}
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return dir, nil
}

// ReceiveFee fetches the gas-fee estimate for a route
func (c *Client) ReceiveFee(ctx context.Context, req ReceiveFeeRequest) (*ReceiveFeeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode receive-fee request: %v", err)
	}

	body, err := c.post(ctx, "receive-fee", c.endpoint+"/receive-fee", payload)
	if err != nil {
		return nil, err
	}

	var resp ReceiveFeeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode receive-fee response: %v", err)
	}
	if resp.Fee == "" {
		return nil, fmt.Errorf("receive-fee response missing fee")
	}
	return &resp, nil
}

// TransferStatus fetches the settlement record for a deposit transaction.
// A miss here is routine while the partner indexes the transaction; the
// caller decides whether to degrade.
func (c *Client) TransferStatus(ctx context.Context, chainSymbol, txID string) (*TransferStatusResponse, error) {
	u := fmt.Sprintf("%s/chain/%s/%s", c.endpoint, url.PathEscape(chainSymbol), url.PathEscape(txID))
	body, err := c.get(ctx, "transfer-status", u)
	if err != nil {
		return nil, err
	}

	var resp TransferStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode transfer status: %v", err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	return c.do(endpoint, req)
}

func (c *Client) post(ctx context.Context, endpoint, u string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(endpoint, req)
}

func (c *Client) do(endpoint string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PartnerRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PartnerRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("partner %s request failed: %v", endpoint, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("Failed to close response body: %v", closeErr)
		}
	}()

	// Read the response body regardless of status code
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PartnerRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.PartnerRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("partner %s returned status %d, body: %s", endpoint, resp.StatusCode, string(body))
	}

	metrics.PartnerRequests.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}
