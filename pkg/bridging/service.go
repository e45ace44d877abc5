// Package bridging implements the cross-chain stablecoin quote engine:
// quote building over the partner's token directory and the lifecycle
// tracking of payment intents through deposit, settlement and refund.
package bridging

import (
	"time"

	"github.com/snaplink-hq/paybridge/pkg/logger"
	"github.com/snaplink-hq/paybridge/pkg/partner"
	"github.com/snaplink-hq/paybridge/pkg/store"
)

// Service exposes the caller-facing bridging operations. Concurrent
// requests share only the metadata cache; every intent write goes through
// the store's conditional update.
type Service struct {
	store       store.Store
	partner     partner.API
	directory   *partner.MetadataCache
	quoteExpiry time.Duration
	logger      logger.Logger
}

// NewService creates the bridging service. The metadata cache wraps the
// partner's token-info endpoint with the given TTL.
func NewService(st store.Store, api partner.API, metadataTTL, quoteExpiry time.Duration, log logger.Logger) *Service {
	return &Service{
		store:       st,
		partner:     api,
		directory:   partner.NewMetadataCache(metadataTTL, api.TokenInfo),
		quoteExpiry: quoteExpiry,
		logger:      log,
	}
}
