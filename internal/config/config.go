// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	cat, err := catalog.NewLoader(cfg.Catalog.Encodings, logger).LoadFile(cfg.Catalog.Path)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Features  FeaturesConfig  `koanf:"features"`
	Training  TrainingConfig  `koanf:"training"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	History   HistoryConfig   `koanf:"history"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CatalogConfig locates the reference catalog.
//
// Environment Variables:
//   - CATALOG_PATH: CSV file path (default: data/laptop_price.csv)
//   - CATALOG_ENCODINGS: comma-separated decoding order
type CatalogConfig struct {
	Path string `koanf:"path"`

	// Encodings are tried in order until one decodes the file.
	// Default: utf-8, latin1, cp1250, cp1252, iso-8859-1, iso-8859-2
	Encodings []string `koanf:"encodings"`
}

// FeaturesConfig selects the categorical encoding for new models.
type FeaturesConfig struct {
	// Strategy is onehot/v1 or label/v1.
	// Default: onehot/v1
	Strategy string `koanf:"strategy"`
}

// GridConfig is the hyperparameter search space of one model family.
type GridConfig struct {
	NEstimators  []int     `koanf:"n_estimators"`
	MaxDepth     []int     `koanf:"max_depth"`
	LearningRate []float64 `koanf:"learning_rate"`
}

// TrainingConfig holds model selection settings.
//
// Environment Variables:
//   - TRAINING_FAMILIES: comma-separated candidate families
//   - TRAINING_SEED, TRAINING_FOLDS, TRAINING_WORKERS, TRAINING_TEST_FRACTION
//   - TRAIN_ON_STARTUP: load or select a model at boot (default: true)
//   - RETRAIN_INTERVAL: periodic reselection, 0 disables (default: 0)
type TrainingConfig struct {
	Families      []string `koanf:"families"`
	TestFraction  float64  `koanf:"test_fraction"`
	Seed          int64    `koanf:"seed"`
	Folds         int      `koanf:"folds"`
	Workers       int      `koanf:"workers"` // 0 = use runtime.NumCPU()
	IntervalLevel float64  `koanf:"interval_level"`
	BaseCurrency  string   `koanf:"base_currency"`

	OnStartup       bool          `koanf:"on_startup"`
	RetrainInterval time.Duration `koanf:"retrain_interval"`
	Timeout         time.Duration `koanf:"timeout"`

	// ManualRate limits POST /models/train to this many runs per minute.
	ManualRate  float64 `koanf:"manual_rate"`
	ManualBurst int     `koanf:"manual_burst"`

	RandomForest     GridConfig `koanf:"random_forest"`
	GradientBoosting GridConfig `koanf:"gradient_boosting"`
}

// ArtifactsConfig locates the model artifact store.
type ArtifactsConfig struct {
	Dir string `koanf:"dir"`

	// Keep is how many versions per name survive pruning. 0 disables pruning.
	Keep int `koanf:"keep"`
}

// RecommendConfig holds similarity ranking settings.
type RecommendConfig struct {
	DefaultLimit      int           `koanf:"default_limit"`
	MaxLimit          int           `koanf:"max_limit"`
	ManufacturerBonus float64       `koanf:"manufacturer_bonus"`
	DeviceClassBonus  float64       `koanf:"device_class_bonus"`
	CacheEnabled      bool          `koanf:"cache_enabled"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries   int           `koanf:"cache_max_entries"`
}

// HistoryConfig selects the prediction history backend.
type HistoryConfig struct {
	// Backend is memory or badger.
	// Default: memory
	Backend  string `koanf:"backend"`
	Path     string `koanf:"path"`
	Capacity int    `koanf:"capacity"`

	// GCInterval is how often the badger value log is compacted.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// Load reads configuration with the following priority (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
func Load() (*Config, error) {
	return LoadWithKoanf()
}
