// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package history

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

func entry(ram int, price float64) *Entry {
	spec := catalog.Specification{Manufacturer: "HP", Product: "ProBook", DeviceClass: "Notebook", RAM: ram}
	return NewEntry(spec, &pricing.Result{
		Price:    price,
		Currency: "EUR",
		Symbol:   "€",
		Category: pricing.Categorize(spec, price),
	})
}

func backends(t *testing.T, capacity int) map[string]Store {
	t.Helper()

	stores := map[string]Store{}
	for name, cfg := range map[string]Config{
		"memory": {Backend: BackendMemory, Capacity: capacity},
		"badger": {Backend: BackendBadger, Capacity: capacity, InMemory: true},
	} {
		s, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		stores[name] = s
	}
	return stores
}

func TestStoreNewestFirstAndCapacity(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 1; i <= 5; i++ {
				if err := s.Append(ctx, entry(i, float64(i*100))); err != nil {
					t.Fatalf("Append(%d) error = %v", i, err)
				}
			}

			n, err := s.Len(ctx)
			if err != nil || n != 3 {
				t.Fatalf("Len() = %d, %v, want 3", n, err)
			}

			list, err := s.List(ctx, 0)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			got := make([]int, len(list))
			for i, e := range list {
				got[i] = e.Specification.RAM
			}
			want := []int{5, 4, 3}
			if len(got) != len(want) {
				t.Fatalf("List() = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("List()[%d] = %d, want %d", i, got[i], want[i])
				}
			}

			if list[0].Result == nil || list[0].Result.Price != 500 {
				t.Errorf("newest result = %+v, want price 500", list[0].Result)
			}
			if list[0].Category.Name != "Budget" {
				t.Errorf("newest category = %q, want Budget", list[0].Category.Name)
			}

			limited, err := s.List(ctx, 2)
			if err != nil || len(limited) != 2 {
				t.Errorf("List(2) = %d entries, %v, want 2", len(limited), err)
			}
		})
	}
}

func TestStoreGetAndClear(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t, 10) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			e := entry(16, 900)
			if err := s.Append(ctx, e); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if err := s.Append(ctx, entry(8, 600)); err != nil {
				t.Fatalf("Append() error = %v", err)
			}

			got, err := s.Get(ctx, e.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.ID != e.ID || got.Specification.RAM != 16 {
				t.Errorf("Get() = %+v, want entry %s", got, e.ID)
			}
			if !got.Timestamp.Equal(e.Timestamp) {
				t.Errorf("Timestamp = %v, want %v", got.Timestamp, e.Timestamp)
			}

			if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
			}

			removed, err := s.Clear(ctx)
			if err != nil || removed != 2 {
				t.Errorf("Clear() = %d, %v, want 2", removed, err)
			}
			list, err := s.List(ctx, 0)
			if err != nil || len(list) != 0 {
				t.Errorf("List() after Clear = %d entries, %v, want 0", len(list), err)
			}

			if err := s.Append(ctx, entry(32, 2000)); err != nil {
				t.Fatalf("Append() after Clear error = %v", err)
			}
			if n, _ := s.Len(ctx); n != 1 {
				t.Errorf("Len() = %d, want 1", n)
			}
		})
	}
}

func TestStoreCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range backends(t, 10) {
		if err := s.Append(ctx, entry(8, 500)); !errors.Is(err, context.Canceled) {
			t.Errorf("%s Append() error = %v, want context.Canceled", name, err)
		}
		if _, err := s.List(ctx, 0); !errors.Is(err, context.Canceled) {
			t.Errorf("%s List() error = %v, want context.Canceled", name, err)
		}
	}
}

func TestBadgerStorePersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Backend: BackendBadger, Path: dir, Capacity: 4})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := s.Append(ctx, entry(i, 100)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(Config{Backend: BackendBadger, Path: dir, Capacity: 4})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if err := s.Append(ctx, entry(3, 100)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].Specification.RAM != 3 || list[2].Specification.RAM != 1 {
		t.Errorf("List() after reopen has %d entries, want [3 2 1]", len(list))
	}

	gc, ok := s.(*BadgerStore)
	if !ok {
		t.Fatalf("Open() returned %T, want *BadgerStore", s)
	}
	if err := gc.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"memory", Config{Backend: BackendMemory, Capacity: 5}, false},
		{"badger with path", Config{Backend: BackendBadger, Path: "/tmp/h"}, false},
		{"badger in memory", Config{Backend: BackendBadger, InMemory: true}, false},
		{"badger without path", Config{Backend: BackendBadger}, true},
		{"unknown backend", Config{Backend: "redis"}, true},
		{"negative capacity", Config{Capacity: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
