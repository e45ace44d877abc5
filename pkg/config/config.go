package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/snaplink-hq/paybridge/pkg/logger"
)

// Config holds the configuration for the bridging service
type Config struct {
	PartnerEndpoint string
	PartnerTimeout  time.Duration
	MetadataTTL     time.Duration
	QuoteExpiry     time.Duration
	ListenPort      string
	DatabaseURL     string
	LoggerConfig    LoggerConfig
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	partnerEndpoint, err := GetEnvPartnerEndpoint()
	if err != nil {
		return nil, err
	}

	partnerTimeout, err := GetEnvPartnerTimeout()
	if err != nil {
		return nil, err
	}

	metadataTTL, err := GetEnvMetadataTTL()
	if err != nil {
		return nil, err
	}

	quoteExpiry, err := GetEnvQuoteExpiry()
	if err != nil {
		return nil, err
	}

	listenPort, err := GetEnvListenPort()
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	return &Config{
		PartnerEndpoint: partnerEndpoint,
		PartnerTimeout:  partnerTimeout,
		MetadataTTL:     metadataTTL,
		QuoteExpiry:     quoteExpiry,
		ListenPort:      listenPort,
		DatabaseURL:     GetEnvDatabaseURL(),
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}, nil
}
