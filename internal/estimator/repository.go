// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"fmt"

	"github.com/tomtom215/lapiprice/internal/artifact"
)

// BestName is the artifact name of the selected model.
const BestName = artifact.BestName

// Repository stores artifacts by name in an artifact.Store.
type Repository struct {
	store *artifact.Store
	keep  int
}

// NewRepository wraps store.
func NewRepository(store *artifact.Store) *Repository {
	return &Repository{store: store}
}

// SetRetention keeps only the newest keep versions of a name after each
// save. 0 disables pruning.
func (r *Repository) SetRetention(keep int) {
	if keep < 0 {
		keep = 0
	}
	r.keep = keep
}

// Store returns the underlying store.
func (r *Repository) Store() *artifact.Store { return r.store }

// Save persists a as the next version of name and records the assigned
// name and version on a.
func (r *Repository) Save(ctx context.Context, name string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	meta := artifact.Metadata{
		TrainedAt: a.TrainedAt,
		TrainRows: a.TrainRows,
		Labels: map[string]string{
			"family":   string(a.Family),
			"strategy": string(a.Strategy()),
			"params":   a.Params.String(),
		},
	}
	if a.Metrics != nil {
		meta.TrainingDurationMS = a.Metrics.DurationMS
		meta.Labels["r2"] = fmt.Sprintf("%.4f", a.Metrics.R2)
	}

	saved, err := r.store.Save(ctx, name, a, meta)
	if err != nil {
		return fmt.Errorf("persist %s: %w", name, err)
	}
	a.Name = saved.Name
	a.Version = saved.Version

	if r.keep > 0 {
		if _, err := r.store.Prune(ctx, name, r.keep); err != nil {
			return fmt.Errorf("prune %s: %w", name, err)
		}
	}
	return nil
}

// Load returns the latest artifact stored under name. A missing name yields
// an error matching artifact.ErrNotFound.
func (r *Repository) Load(ctx context.Context, name string) (*Artifact, error) {
	var a Artifact
	meta, err := r.store.Load(ctx, name, 0, &a)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	a.Name = meta.Name
	a.Version = meta.Version
	return &a, nil
}

// List returns metadata for every stored name.
func (r *Repository) List(ctx context.Context) ([]artifact.Metadata, error) {
	return r.store.List(ctx)
}
