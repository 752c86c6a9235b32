// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateSnapshot(); err != nil {
		return err
	}

	if err := c.validateGraph(); err != nil {
		return err
	}

	if err := c.validateExport(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSnapshot validates the input data source configuration
func (c *Config) validateSnapshot() error {
	if c.Snapshot.Path == "" {
		return fmt.Errorf("AFFINITAS_SNAPSHOT_PATH is required")
	}
	return nil
}

// Graph limit constants
const (
	graphMaxTopK       = 10000
	graphMaxVocabulary = 1000000
)

// validateGraph validates graph construction parameters
func (c *Config) validateGraph() error {
	validators := []func() error{
		c.validateWeights,
		c.validateTopK,
		c.validateBandwidthYears,
		c.validateSigmaKM,
		c.validateMaxVocabulary,
		c.validateMinDocFreq,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateWeights validates the channel fusion weights
func (c *Config) validateWeights() error {
	if c.Graph.Weights.Text < 0 {
		return fmt.Errorf("AFFINITAS_WEIGHT_TEXT must be non-negative")
	}
	if c.Graph.Weights.Date < 0 {
		return fmt.Errorf("AFFINITAS_WEIGHT_DATE must be non-negative")
	}
	if c.Graph.Weights.Place < 0 {
		return fmt.Errorf("AFFINITAS_WEIGHT_PLACE must be non-negative")
	}
	if c.Graph.Weights.Profile < 0 {
		return fmt.Errorf("AFFINITAS_WEIGHT_PROFILE must be non-negative")
	}

	sum := c.Graph.Weights.Text + c.Graph.Weights.Date + c.Graph.Weights.Place + c.Graph.Weights.Profile
	if sum == 0 {
		return fmt.Errorf("channel weights must not all be zero - every fused score would be zero")
	}
	return nil
}

// validateTopK validates the neighbor list size
func (c *Config) validateTopK() error {
	if c.Graph.TopK < 1 || c.Graph.TopK > graphMaxTopK {
		return fmt.Errorf("AFFINITAS_TOP_K must be between 1 and %d", graphMaxTopK)
	}
	return nil
}

// validateBandwidthYears validates the temporal decay bandwidth
func (c *Config) validateBandwidthYears() error {
	if c.Graph.BandwidthYears <= 0 {
		return fmt.Errorf("AFFINITAS_BANDWIDTH_YEARS must be positive")
	}
	return nil
}

// validateSigmaKM validates the spatial decay bandwidth
func (c *Config) validateSigmaKM() error {
	if c.Graph.SigmaKM <= 0 {
		return fmt.Errorf("AFFINITAS_SIGMA_KM must be positive")
	}
	return nil
}

// validateMaxVocabulary validates the TF-IDF vocabulary cap
func (c *Config) validateMaxVocabulary() error {
	if c.Graph.MaxVocabulary < 1 || c.Graph.MaxVocabulary > graphMaxVocabulary {
		return fmt.Errorf("AFFINITAS_MAX_VOCABULARY must be between 1 and %d", graphMaxVocabulary)
	}
	return nil
}

// validateMinDocFreq validates the minimum document frequency threshold
func (c *Config) validateMinDocFreq() error {
	if c.Graph.MinDocFreq < 1 {
		return fmt.Errorf("AFFINITAS_MIN_DOC_FREQ must be at least 1")
	}
	return nil
}

// validateExport validates output sink configuration. Individual sinks
// are disabled by setting their path empty, but disabling all of them
// would make a build run compute a graph and write it nowhere.
func (c *Config) validateExport() error {
	if c.Export.JSONPath == "" && c.Export.StorePath == "" && c.Export.DatabasePath == "" {
		return fmt.Errorf("at least one export sink is required: set AFFINITAS_JSON_PATH, AFFINITAS_STORE_PATH, or AFFINITAS_DATABASE_PATH")
	}
	return nil
}

// Server limit constants
const (
	minServerTimeout = time.Second      // Minimum 1 second request timeout
	maxServerTimeout = 10 * time.Minute // Maximum 10 minute request timeout
	maxRateLimit     = 100000           // Maximum 100K requests per minute
)

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if err := c.validateServerPort(); err != nil {
		return err
	}
	if err := c.validateServerTimeout(); err != nil {
		return err
	}
	return c.validateRateLimit()
}

// validateServerPort validates the HTTP listen port
func (c *Config) validateServerPort() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("AFFINITAS_HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validateServerTimeout validates the HTTP request timeout
func (c *Config) validateServerTimeout() error {
	if c.Server.Timeout < minServerTimeout || c.Server.Timeout > maxServerTimeout {
		return fmt.Errorf("AFFINITAS_HTTP_TIMEOUT must be between %v and %v", minServerTimeout, maxServerTimeout)
	}
	return nil
}

// validateRateLimit validates the per-client rate limit bounds
func (c *Config) validateRateLimit() error {
	if c.Server.RateLimit < 0 || c.Server.RateLimit > maxRateLimit {
		return fmt.Errorf("AFFINITAS_RATE_LIMIT must be between 0 and %d (0 disables rate limiting)", maxRateLimit)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("AFFINITAS_LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("AFFINITAS_LOG_FORMAT must be one of: json, console")
	}
	return nil
}
