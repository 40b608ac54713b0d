// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultLimit is used when a request asks for 0 results.
	// Default: 5.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the number of results of one request.
	// Default: 100.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// ManufacturerBonus is added to the score of entries from the query's
	// manufacturer.
	// Default: 0.1.
	ManufacturerBonus float64 `json:"manufacturer_bonus" koanf:"manufacturer_bonus"`

	// DeviceClassBonus is added to the score of entries of the query's
	// device class.
	// Default: 0.1.
	DeviceClassBonus float64 `json:"device_class_bonus" koanf:"device_class_bonus"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether ranked results are cached.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the maximum number of cached rankings.
	// Default: 1024.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:      5,
		MaxLimit:          100,
		ManufacturerBonus: 0.1,
		DeviceClassBonus:  0.1,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.ManufacturerBonus < 0 {
		return fmt.Errorf("manufacturer_bonus must be non-negative, got %f", c.ManufacturerBonus)
	}
	if c.DeviceClassBonus < 0 {
		return fmt.Errorf("device_class_bonus must be non-negative, got %f", c.DeviceClassBonus)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
