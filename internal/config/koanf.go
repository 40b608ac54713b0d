// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lapiprice/config.yaml",
	"/etc/lapiprice/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8473,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path:      "data/laptop_price.csv",
			Encodings: []string{"utf-8", "latin1", "cp1250", "cp1252", "iso-8859-1", "iso-8859-2"},
		},
		Features: FeaturesConfig{
			Strategy: "onehot/v1",
		},
		Training: TrainingConfig{
			Families:        []string{"linear", "random_forest", "gradient_boosting"},
			TestFraction:    0.2,
			Seed:            42,
			Folds:           5,
			Workers:         0, // 0 = use runtime.NumCPU()
			IntervalLevel:   0.95,
			BaseCurrency:    "EUR",
			OnStartup:       true,
			RetrainInterval: 0, // Disabled; the catalog is static
			Timeout:         30 * time.Minute,
			ManualRate:      2,
			ManualBurst:     1,
			RandomForest: GridConfig{
				NEstimators: []int{50, 100, 200},
				MaxDepth:    []int{0, 10, 20}, // 0 = unlimited
			},
			GradientBoosting: GridConfig{
				NEstimators:  []int{50, 100, 200},
				LearningRate: []float64{0.01, 0.1, 0.2},
			},
		},
		Artifacts: ArtifactsConfig{
			Dir:  "data/models",
			Keep: 5,
		},
		Recommend: RecommendConfig{
			DefaultLimit:      5,
			MaxLimit:          100,
			ManufacturerBonus: 0.1,
			DeviceClassBonus:  0.1,
			CacheEnabled:      true,
			CacheTTL:          10 * time.Minute,
			CacheMaxEntries:   1024,
		},
		History: HistoryConfig{
			Backend:    "memory",
			Path:       "data/history",
			Capacity:   10,
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			MaxBodyBytes:      1 << 20,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CATALOG_PATH -> catalog.path
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"catalog.encodings",
	"training.families",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog mappings
	"catalog_path":      "catalog.path",
	"catalog_encodings": "catalog.encodings",

	// Feature encoding
	"encoding_strategy": "features.strategy",

	// Training mappings
	"training_families":       "training.families",
	"training_test_fraction":  "training.test_fraction",
	"training_seed":           "training.seed",
	"training_folds":          "training.folds",
	"training_workers":        "training.workers",
	"training_interval_level": "training.interval_level",
	"base_currency":           "training.base_currency",
	"train_on_startup":        "training.on_startup",
	"retrain_interval":        "training.retrain_interval",
	"training_timeout":        "training.timeout",
	"train_rate_per_minute":   "training.manual_rate",
	"train_burst":             "training.manual_burst",

	// Artifact store mappings
	"model_dir":  "artifacts.dir",
	"model_keep": "artifacts.keep",

	// Recommendation mappings
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_max_limit":          "recommend.max_limit",
	"recommend_manufacturer_bonus": "recommend.manufacturer_bonus",
	"recommend_device_class_bonus": "recommend.device_class_bonus",
	"recommend_cache_enabled":      "recommend.cache_enabled",
	"recommend_cache_ttl":          "recommend.cache_ttl",
	"recommend_cache_max_entries":  "recommend.cache_max_entries",

	// History mappings
	"history_backend":     "history.backend",
	"history_path":        "history.path",
	"history_capacity":    "history.capacity",
	"history_gc_interval": "history.gc_interval",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - CATALOG_PATH -> catalog.path
//   - HTTP_PORT -> server.port
//   - TRAINING_FAMILIES -> training.families
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
