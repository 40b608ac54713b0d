// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package artifact persists trained model artifacts.
//
// Each save writes a new version of a named artifact as
// {name}_v{version}.json.gz. The payload is serialized with goccy/go-json,
// checksummed with SHA-256 and gzip-compressed. Writes go to a temporary
// file that is renamed into place, so a reader never observes a partial
// artifact.
//
// The name "best" is reserved by convention for the currently selected model.
// Load with version 0 returns the latest version of a name; a name with no
// stored version yields ErrNotFound, which callers treat as "train instead".
package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lapiprice/internal/metrics"
)

// BestName is the reserved alias of the selected model.
const BestName = "best"

const fileSuffix = ".json.gz"

var (
	// ErrNotFound is returned when no artifact exists for a name or version.
	ErrNotFound = errors.New("artifact not found")

	// ErrChecksum is returned when a stored payload does not match its
	// recorded checksum.
	ErrChecksum = errors.New("artifact checksum mismatch")

	// ErrInvalidName is returned for names that cannot be used as file stems.
	ErrInvalidName = errors.New("invalid artifact name")
)

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Metadata describes one stored artifact version.
type Metadata struct {
	// Name is the artifact name, e.g. "random_forest" or "best".
	Name string `json:"name"`

	// Version increases by one on every save of the same name.
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when this version was written.
	SavedAt time.Time `json:"saved_at"`

	// TrainRows is the number of rows the model was trained on.
	TrainRows int `json:"train_rows"`

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`

	// Labels carry free-form descriptors such as family and strategy.
	Labels map[string]string `json:"labels,omitempty"`
}

// storedFile is the on-disk envelope before compression.
type storedFile struct {
	Metadata Metadata `json:"metadata"`
	Payload  []byte   `json:"payload"`
}

// Store manages artifact files in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per name
	versions map[string]int
}

// NewStore opens or creates a store at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan artifacts: %w", err)
	}
	return s, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) scan() error {
	versions, err := s.readVersions()
	if err != nil {
		return err
	}
	for name, vs := range versions {
		s.versions[name] = vs[0]
	}
	return nil
}

// readVersions returns every stored version per name, newest first.
func (s *Store) readVersions() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		name, version := parseFilename(strings.TrimSuffix(entry.Name(), fileSuffix))
		if name == "" {
			continue
		}
		out[name] = append(out[name], version)
	}
	for _, vs := range out {
		sort.Sort(sort.Reverse(sort.IntSlice(vs)))
	}
	return out, nil
}

// parseFilename splits "random_forest_v3" into ("random_forest", 3).
func parseFilename(stem string) (name string, version int) {
	i := strings.LastIndex(stem, "_v")
	if i <= 0 {
		return "", 0
	}
	v, err := strconv.Atoi(stem[i+2:])
	if err != nil || v <= 0 {
		return "", 0
	}
	return stem[:i], v
}

func (s *Store) path(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, fileSuffix))
}

// Save writes data as the next version of name and returns the stored
// metadata.
//
//nolint:gocritic // meta is copied and completed here
func (s *Store) Save(ctx context.Context, name string, data any, meta Metadata) (Metadata, error) {
	md, err := s.save(ctx, name, data, meta)
	recordOp("save", err)
	return md, err
}

//nolint:gocritic // see Save
func (s *Store) save(ctx context.Context, name string, data any, meta Metadata) (Metadata, error) {
	if !validName.MatchString(name) {
		return Metadata{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Metadata{}, fmt.Errorf("encode artifact: %w", err)
	}
	hash := sha256.Sum256(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	meta.Name = name
	meta.Version = s.versions[name] + 1
	meta.SavedAt = time.Now().UTC()
	meta.Checksum = hex.EncodeToString(hash[:])

	body, err := json.Marshal(storedFile{Metadata: meta, Payload: raw})
	if err != nil {
		return Metadata{}, fmt.Errorf("encode envelope: %w", err)
	}

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(body); err != nil {
		return Metadata{}, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return Metadata{}, fmt.Errorf("finalize compression: %w", err)
	}
	meta.SizeBytes = int64(compressed.Len())

	tmp, err := os.CreateTemp(s.baseDir, "."+name+"-*.tmp")
	if err != nil {
		return Metadata{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(compressed.Bytes()); err != nil {
		_ = tmp.Close()        //nolint:errcheck // write error takes precedence
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return Metadata{}, fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return Metadata{}, fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path(name, meta.Version)); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return Metadata{}, fmt.Errorf("publish artifact: %w", err)
	}

	s.versions[name] = meta.Version
	return meta, nil
}

// Load decodes the given version of name into target. Version 0 means the
// latest version.
func (s *Store) Load(ctx context.Context, name string, version int, target any) (*Metadata, error) {
	md, err := s.load(ctx, name, version, target)
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.RecordArtifactOp("load", "not_found")
	default:
		recordOp("load", err)
	}
	return md, err
}

func (s *Store) load(ctx context.Context, name string, version int, target any) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		latest, ok := s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		version = latest
	}

	sf, err := s.readFile(name, version)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(sf.Payload)
	if got := hex.EncodeToString(hash[:]); got != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: %s v%d", ErrChecksum, name, version)
	}
	if err := json.Unmarshal(sf.Payload, target); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &sf.Metadata, nil
}

func (s *Store) readFile(name string, version int) (*storedFile, error) {
	f, err := os.Open(s.path(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrNotFound, name, version)
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // read-only stream

	body, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var sf storedFile
	if err := json.Unmarshal(body, &sf); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &sf, nil
}

// Exists reports whether at least one version of name is stored.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.versions[name]
	return ok
}

// LatestVersion returns the latest version of name.
func (s *Store) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[name]
	return v, ok
}

// List returns metadata of the latest version of every name, sorted by name.
// Unreadable files are skipped.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.versions))
	for name := range s.versions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Metadata, 0, len(names))
	for _, name := range names {
		sf, err := s.readFile(name, s.versions[name])
		if err != nil {
			continue
		}
		out = append(out, sf.Metadata)
	}
	return out, nil
}

// Delete removes one version of name.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name, version)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s v%d", ErrNotFound, name, version)
		}
		return fmt.Errorf("delete artifact: %w", err)
	}
	recordOp("delete", nil)

	versions, err := s.readVersions()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	if vs, ok := versions[name]; ok {
		s.versions[name] = vs[0]
	} else {
		delete(s.versions, name)
	}
	return nil
}

// Prune keeps the newest keep versions of name and removes the rest.
func (s *Store) Prune(ctx context.Context, name string, keep int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.readVersions()
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}

	removed := 0
	vs := versions[name]
	for i := keep; i < len(vs); i++ {
		if err := os.Remove(s.path(name, vs[i])); err == nil {
			removed++
		}
	}
	if removed > 0 {
		recordOp("prune", nil)
	}
	return removed, nil
}

func recordOp(op string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordArtifactOp(op, status)
}
