// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package config

import (
	"fmt"
	"strings"
)

var (
	validFamilies   = []string{"linear", "random_forest", "gradient_boosting"}
	validStrategies = []string{"onehot/v1", "label/v1"}
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateCatalog,
		c.validateFeatures,
		c.validateTraining,
		c.validateArtifacts,
		c.validateRecommend,
		c.validateHistory,
		c.validateSecurity,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !oneOf(strings.ToLower(c.Logging.Level), validLogLevels) {
		return fmt.Errorf("LOG_LEVEL must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateCatalog validates the catalog source
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if len(c.Catalog.Encodings) == 0 {
		return fmt.Errorf("catalog encodings must not be empty")
	}
	return nil
}

// validateFeatures validates the encoding strategy
func (c *Config) validateFeatures() error {
	if !oneOf(c.Features.Strategy, validStrategies) {
		return fmt.Errorf("features strategy must be one of %s, got %q", strings.Join(validStrategies, ", "), c.Features.Strategy)
	}
	return nil
}

// validateTraining validates model selection settings
func (c *Config) validateTraining() error {
	t := &c.Training
	if len(t.Families) == 0 {
		return fmt.Errorf("training families must not be empty")
	}
	for _, f := range t.Families {
		if !oneOf(f, validFamilies) {
			return fmt.Errorf("training family must be one of %s, got %q", strings.Join(validFamilies, ", "), f)
		}
	}
	if t.TestFraction <= 0 || t.TestFraction >= 1 {
		return fmt.Errorf("training test_fraction must be in (0, 1), got %v", t.TestFraction)
	}
	if t.Folds < 2 {
		return fmt.Errorf("training folds must be >= 2, got %d", t.Folds)
	}
	if t.Workers < 0 {
		return fmt.Errorf("training workers must be non-negative, got %d", t.Workers)
	}
	if t.IntervalLevel <= 0 || t.IntervalLevel >= 1 {
		return fmt.Errorf("training interval_level must be in (0, 1), got %v", t.IntervalLevel)
	}
	if t.BaseCurrency == "" {
		return fmt.Errorf("training base_currency is required")
	}
	if t.RetrainInterval < 0 {
		return fmt.Errorf("training retrain_interval must be non-negative, got %v", t.RetrainInterval)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("training timeout must be positive, got %v", t.Timeout)
	}
	if t.ManualRate <= 0 {
		return fmt.Errorf("training manual_rate must be positive, got %v", t.ManualRate)
	}
	if t.ManualBurst < 1 {
		return fmt.Errorf("training manual_burst must be >= 1, got %d", t.ManualBurst)
	}
	if err := validateGrid("random_forest", &t.RandomForest); err != nil {
		return err
	}
	return validateGrid("gradient_boosting", &t.GradientBoosting)
}

func validateGrid(family string, g *GridConfig) error {
	for _, n := range g.NEstimators {
		if n < 1 {
			return fmt.Errorf("%s n_estimators must be positive, got %d", family, n)
		}
	}
	for _, d := range g.MaxDepth {
		if d < 0 {
			return fmt.Errorf("%s max_depth must be non-negative, got %d", family, d)
		}
	}
	for _, lr := range g.LearningRate {
		if lr <= 0 || lr > 1 {
			return fmt.Errorf("%s learning_rate must be in (0, 1], got %v", family, lr)
		}
	}
	return nil
}

// validateArtifacts validates the artifact store location
func (c *Config) validateArtifacts() error {
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("MODEL_DIR is required")
	}
	if c.Artifacts.Keep < 0 {
		return fmt.Errorf("artifacts keep must be non-negative, got %d", c.Artifacts.Keep)
	}
	return nil
}

// validateRecommend validates ranking settings
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.DefaultLimit < 1 {
		return fmt.Errorf("recommend default_limit must be positive, got %d", r.DefaultLimit)
	}
	if r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend max_limit must be >= default_limit (%d), got %d", r.DefaultLimit, r.MaxLimit)
	}
	if r.ManufacturerBonus < 0 || r.DeviceClassBonus < 0 {
		return fmt.Errorf("recommend bonuses must be non-negative")
	}
	if r.CacheEnabled && (r.CacheTTL <= 0 || r.CacheMaxEntries < 1) {
		return fmt.Errorf("recommend cache requires positive cache_ttl and cache_max_entries")
	}
	return nil
}

// validateHistory validates the history backend
func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case "memory":
	case "badger":
		if c.History.Path == "" {
			return fmt.Errorf("HISTORY_PATH is required when history backend is badger")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND must be memory or badger, got %q", c.History.Backend)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}
	if c.History.Backend == "badger" && c.History.GCInterval <= 0 {
		return fmt.Errorf("history gc_interval must be positive, got %v", c.History.GCInterval)
	}
	return nil
}

// validateSecurity validates HTTP hardening settings
func (c *Config) validateSecurity() error {
	s := &c.Security
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 || s.RateLimitReqs > 100000 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", s.RateLimitWindow)
		}
	}
	if s.MaxBodyBytes < 1024 {
		return fmt.Errorf("max_body_bytes must be at least 1024, got %d", s.MaxBodyBytes)
	}
	if c.Server.Environment == "production" {
		for _, origin := range s.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}
