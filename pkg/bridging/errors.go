package bridging

import (
	"fmt"
	"time"
)

// UnsupportedChainError means the requested chain is absent from the
// registry or the partner metadata.
type UnsupportedChainError struct {
	Chain string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("chain %s is not supported", e.Chain)
}

// AssetUnavailableError means the requested asset is not listed on a
// chain the partner otherwise serves.
type AssetUnavailableError struct {
	Chain string
	Asset string
}

func (e *AssetUnavailableError) Error() string {
	return fmt.Sprintf("asset %s is not available on chain %s", e.Asset, e.Chain)
}

// NotFoundError means an intent or payment request does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// QuoteExpiredError means the quoted amounts are no longer guaranteed
type QuoteExpiredError struct {
	IntentID  string
	ExpiredAt time.Time
}

func (e *QuoteExpiredError) Error() string {
	return fmt.Sprintf("quote for intent %s expired at %s", e.IntentID, e.ExpiredAt.Format(time.RFC3339))
}

// PartnerUnavailableError means a metadata or fee fetch failed with no
// usable cache. Quote requests fail loudly rather than quote from stale
// pool state.
type PartnerUnavailableError struct {
	Op  string
	Err error
}

func (e *PartnerUnavailableError) Error() string {
	return fmt.Sprintf("bridge partner unavailable during %s: %v", e.Op, e.Err)
}

func (e *PartnerUnavailableError) Unwrap() error {
	return e.Err
}

// InvalidInputError means a required field is missing or malformed
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid input: %s is required", e.Field)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}
