// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package history

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Key layout: entryKeyPrefix + 8-byte big-endian sequence number, so key
// order is insertion order.
const (
	entryKeyPrefix = "history:"
	sequenceKey    = "history_seq"
	sequenceLease  = 64
)

// BadgerStore is a Store persisted in BadgerDB.
type BadgerStore struct {
	db       *badger.DB
	seq      *badger.Sequence
	capacity int
	ownsDB   bool
}

// NewBadgerStore creates a store on an open database. The caller keeps
// ownership of db.
func NewBadgerStore(db *badger.DB, capacity int) (*BadgerStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		return nil, fmt.Errorf("get history sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq, capacity: capacity}, nil
}

func entryKey(n uint64) []byte {
	key := make([]byte, len(entryKeyPrefix)+8)
	copy(key, entryKeyPrefix)
	binary.BigEndian.PutUint64(key[len(entryKeyPrefix):], n)
	return key
}

// Append stores entry and deletes the oldest entries beyond capacity.
func (s *BadgerStore) Append(ctx context.Context, entry *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next history sequence: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(entryKey(n), data); err != nil {
			return fmt.Errorf("set history entry: %w", err)
		}

		keys := s.keys(txn, false)
		for i := 0; i < len(keys)-s.capacity; i++ {
			if err := txn.Delete(keys[i]); err != nil {
				return fmt.Errorf("evict history entry: %w", err)
			}
		}
		return nil
	})
}

// keys returns every entry key in insertion order, or newest first when
// reverse is set.
func (s *BadgerStore) keys(txn *badger.Txn, reverse bool) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(entryKeyPrefix)
	seek := prefix
	if reverse {
		seek = append(append([]byte(nil), prefix...), 0xFF)
	}

	var keys [][]byte
	for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

// scan calls fn for each entry, newest first, until fn returns false.
func (s *BadgerStore) scan(fn func(*Entry) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(entryKeyPrefix)
		seek := append(append([]byte(nil), prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("unmarshal history entry: %w", err)
			}
			if !fn(&e) {
				return nil
			}
		}
		return nil
	})
}

// List returns up to limit entries, newest first.
func (s *BadgerStore) List(ctx context.Context, limit int) ([]*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*Entry, 0)
	err := s.scan(func(e *Entry) bool {
		out = append(out, e)
		return limit <= 0 || len(out) < limit
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the entry with id.
func (s *BadgerStore) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *Entry
	err := s.scan(func(e *Entry) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Clear removes every entry.
func (s *BadgerStore) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range s.keys(txn, false) {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete history entry: %w", err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Len returns the number of entries.
func (s *BadgerStore) Len(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		count = len(s.keys(txn, false))
		return nil
	})
	return count, err
}

// RunGC rewrites value log files until badger reports nothing left to
// reclaim. ratio is the discard fraction a file needs to be rewritten.
func (s *BadgerStore) RunGC(ratio float64) error {
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run history GC: %w", err)
		}
	}
}

// Close releases the sequence and, when Open created it, the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		return fmt.Errorf("release history sequence: %w", err)
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
