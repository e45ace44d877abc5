package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/logger"
)

const (
	// DefaultPartnerEndpoint is the bridge partner's API base URL
	DefaultPartnerEndpoint = "https://core.api.allbridgecoreapi.net"

	// DefaultPartnerTimeout defines the partner HTTP timeout in seconds.
	// Generous because the partner tolerates indexing delay.
	DefaultPartnerTimeout = 10

	// DefaultMetadataTTL defines the token-info cache TTL in seconds
	DefaultMetadataTTL = 60

	// DefaultQuoteExpiry defines the quote validity window in minutes
	DefaultQuoteExpiry = 30

	// DefaultTransferTime is the transfer-time fallback in milliseconds
	// when the partner has no entry for a chain pair
	DefaultTransferTime = 180000

	// DefaultListenPort defines the port for the API and metrics server
	DefaultListenPort = "8080"
)

// GetEnvPartnerEndpoint returns the partner API base URL
func GetEnvPartnerEndpoint() (string, error) {
	endpoint := os.Getenv("PARTNER_API_ENDPOINT")
	if endpoint == "" {
		return DefaultPartnerEndpoint, nil
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return "", fmt.Errorf("invalid PARTNER_API_ENDPOINT: %v", err)
	}
	return endpoint, nil
}

// GetEnvPartnerTimeout returns the partner HTTP timeout
func GetEnvPartnerTimeout() (time.Duration, error) {
	return getEnvSeconds("PARTNER_TIMEOUT_SECONDS", DefaultPartnerTimeout)
}

// GetEnvMetadataTTL returns the token-info cache TTL
func GetEnvMetadataTTL() (time.Duration, error) {
	return getEnvSeconds("METADATA_CACHE_TTL_SECONDS", DefaultMetadataTTL)
}

// GetEnvQuoteExpiry returns the quote validity window
func GetEnvQuoteExpiry() (time.Duration, error) {
	raw := os.Getenv("QUOTE_EXPIRY_MINUTES")
	if raw == "" {
		return DefaultQuoteExpiry * time.Minute, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("invalid QUOTE_EXPIRY_MINUTES value: %s", raw)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// GetEnvListenPort returns the API/metrics listen port
func GetEnvListenPort() (string, error) {
	port := os.Getenv("LISTEN_PORT")
	if port == "" {
		return DefaultListenPort, nil
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid LISTEN_PORT value: %s", port)
	}
	return port, nil
}

// GetEnvDatabaseURL returns the Postgres DSN; empty selects the
// in-memory store.
func GetEnvDatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// GetEnvLogLevel returns the configured log level
func GetEnvLogLevel() (logger.Level, error) {
	raw := os.Getenv("LOG_LEVEL")
	switch raw {
	case "", "info":
		return logger.InfoLevel, nil
	case "debug":
		return logger.DebugLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %s", raw)
}

// GetEnvLogColoring returns whether log coloring is enabled
func GetEnvLogColoring() (bool, error) {
	raw := os.Getenv("LOG_COLORING")
	if raw == "" {
		return true, nil
	}
	coloring, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid LOG_COLORING value: %s", raw)
	}
	return coloring, nil
}

func getEnvSeconds(key string, fallback int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid %s value: %s", key, raw)
	}
	return time.Duration(seconds) * time.Second, nil
}
