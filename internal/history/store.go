// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// ErrNotFound is returned by Get for an unknown entry ID.
var ErrNotFound = errors.New("history entry not found")

// DefaultCapacity is the number of entries kept when Config.Capacity is 0.
const DefaultCapacity = 10

// Entry is one served prediction.
type Entry struct {
	ID            uuid.UUID             `json:"id"`
	Timestamp     time.Time             `json:"timestamp"`
	Specification catalog.Specification `json:"specification"`
	Result        *pricing.Result       `json:"result"`
	Category      pricing.Category      `json:"category"`
}

// NewEntry builds an entry for res with a fresh ID.
//
//nolint:gocritic // spec passed by value for immutability
func NewEntry(spec catalog.Specification, res *pricing.Result) *Entry {
	e := &Entry{
		ID:            uuid.New(),
		Timestamp:     time.Now().UTC(),
		Specification: spec,
		Result:        res,
	}
	if res != nil {
		e.Category = res.Category
	}
	return e
}

// Store defines the interface for history backends.
type Store interface {
	// Append adds an entry, evicting the oldest ones beyond capacity.
	Append(ctx context.Context, entry *Entry) error

	// List returns up to limit entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Entry, error)

	// Get returns one entry. Returns ErrNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)

	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendMemory keeps history in process memory.
	BackendMemory Backend = "memory"

	// BackendBadger persists history in BadgerDB.
	BackendBadger Backend = "badger"
)

// Config selects and sizes a Store.
type Config struct {
	Backend  Backend `koanf:"backend"`
	Path     string  `koanf:"path"`
	Capacity int     `koanf:"capacity"`

	// InMemory runs BadgerDB without touching disk. Used in tests.
	InMemory bool `koanf:"in_memory"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendMemory:
	case BackendBadger:
		if c.Path == "" && !c.InMemory {
			return fmt.Errorf("history path is required for the badger backend")
		}
	default:
		return fmt.Errorf("history backend must be memory or badger, got %q", c.Backend)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("history capacity must be non-negative, got %d", c.Capacity)
	}
	return nil
}

// Open creates the Store described by cfg.
func Open(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	if cfg.Backend != BackendBadger {
		return NewMemoryStore(capacity), nil
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for history: %w", err)
	}
	store, err := NewBadgerStore(db, capacity)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.ownsDB = true
	return store, nil
}

func limitOf(n, limit int) int {
	if limit <= 0 || limit > n {
		return n
	}
	return limit
}
