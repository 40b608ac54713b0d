// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/features"
	"github.com/tomtom215/lapiprice/internal/metrics"
	"github.com/tomtom215/lapiprice/internal/recommend"
)

var (
	// ErrTrainingInProgress is returned when a training run is requested while
	// another one holds the lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrNoModel is returned when no model is active and none can be trained.
	ErrNoModel = errors.New("no model available")

	// ErrNoRecommender is returned by Recommend before SetRecommender.
	ErrNoRecommender = errors.New("recommendation engine not configured")
)

// Engine is the price estimation entry point. It owns the active model
// artifact and replaces it by reference after each training run.
type Engine struct {
	cfg     *Config
	catalog *catalog.Catalog
	repo    *estimator.Repository
	sel     *estimator.Selector
	logger  zerolog.Logger

	active      atomic.Pointer[estimator.Artifact]
	recommender atomic.Pointer[recommend.Engine]

	// Training state
	trainMu  sync.Mutex
	statusMu sync.RWMutex
	status   TrainingStatus

	// Lazily computed from the catalog
	splitOnce sync.Once
	splitErr  error
	trainCat  *catalog.Catalog
	testCat   *catalog.Catalog
	encoder   *features.EncoderState
}

// NewEngine creates a pricing engine over cat. repo may be nil, in which case
// trained models live only in memory.
func NewEngine(cfg *Config, cat *catalog.Catalog, repo *estimator.Repository, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	logger = logger.With().Str("component", "pricing").Logger()
	return &Engine{
		cfg:     cfg,
		catalog: cat,
		repo:    repo,
		sel:     estimator.NewSelector(cfg.searchOptions(), repo, logger),
		logger:  logger,
	}, nil
}

// SetRecommender attaches the recommendation engine used by Recommend.
func (e *Engine) SetRecommender(r *recommend.Engine) {
	e.recommender.Store(r)
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Catalog returns the reference catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Repository returns the artifact repository, or nil.
func (e *Engine) Repository() *estimator.Repository {
	return e.repo
}

// Active returns the artifact serving predictions, or nil.
func (e *Engine) Active() *estimator.Artifact {
	return e.active.Load()
}

// ActiveInfo describes the active artifact, or returns nil.
func (e *Engine) ActiveInfo() *ModelInfo {
	a := e.active.Load()
	if a == nil {
		return nil
	}
	return DescribeModel(a)
}

// Status returns a snapshot of the training status.
func (e *Engine) Status() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// Ready reports whether a model is active.
func (e *Engine) Ready() bool {
	return e.active.Load() != nil
}

// split performs the train/test split and fits the catalog encoder once.
func (e *Engine) split() error {
	e.splitOnce.Do(func() {
		train, test, err := features.Split(e.catalog, e.cfg.TestFraction, e.cfg.Seed)
		if err != nil {
			e.splitErr = &estimator.TrainingError{Err: err}
			return
		}
		enc, err := features.Fit(train, e.cfg.Strategy)
		if err != nil {
			e.splitErr = &estimator.TrainingError{Err: err}
			return
		}
		e.trainCat, e.testCat, e.encoder = train, test, enc
	})
	return e.splitErr
}

func (e *Engine) datasets() (train, test *estimator.Dataset, err error) {
	if err := e.split(); err != nil {
		return nil, nil, err
	}
	train = estimator.NewDataset(e.encoder, e.trainCat)
	test = estimator.NewDataset(e.encoder, e.testCat)
	if test.Fallbacks > 0 {
		e.logger.Debug().Int("fallbacks", test.Fallbacks).Msg("Test split has categories unseen in training")
	}
	return train, test, nil
}

// Encode transforms spec with the active model's encoder state, or with a
// state fit on the training split when no model is active.
//
//nolint:gocritic // spec passed by value for immutability
func (e *Engine) Encode(spec catalog.Specification) (*EncodeResult, error) {
	state, source := e.encoderState()
	if state == nil {
		if err := e.split(); err != nil {
			return nil, err
		}
		state, source = e.encoder, "catalog"
	}

	enc := state.Encode(spec)
	e.recordFallbacks(enc.Fallbacks)
	return &EncodeResult{
		Vector:       enc.Vector,
		FeatureNames: state.FeatureNames(),
		Fallbacks:    enc.Fallbacks,
		Strategy:     state.Strategy,
		Source:       source,
	}, nil
}

func (e *Engine) encoderState() (*features.EncoderState, string) {
	if a := e.active.Load(); a != nil {
		return a.Encoder, "model"
	}
	return nil, ""
}

// TrainOrSelect makes a model active. It loads the persisted best artifact and
// falls back to a full selection run when none is stored.
func (e *Engine) TrainOrSelect(ctx context.Context) (*estimator.Artifact, error) {
	if a := e.active.Load(); a != nil {
		return a, nil
	}

	if e.repo != nil {
		a, err := e.repo.Load(ctx, estimator.BestName)
		switch {
		case err == nil:
			if a.Strategy() != e.cfg.Strategy {
				e.logger.Warn().
					Str("artifact_strategy", string(a.Strategy())).
					Str("configured_strategy", string(e.cfg.Strategy)).
					Msg("Stored model uses a different encoding strategy; serving it with its own encoder state")
			}
			e.activate(a)
			e.logger.Info().
				Str("family", string(a.Family)).
				Int("version", a.Version).
				Msg("Loaded stored model")
			return a, nil
		case errors.Is(err, artifact.ErrNotFound):
			e.logger.Info().Msg("No stored model, running model selection")
		default:
			return nil, err
		}
	}

	sel, err := e.Select(ctx)
	if err != nil {
		if errors.Is(err, ErrTrainingInProgress) {
			if a := e.active.Load(); a != nil {
				return a, nil
			}
		}
		return nil, err
	}
	return sel.Best, nil
}

// Select runs model selection over the configured families and activates the
// winner.
func (e *Engine) Select(ctx context.Context) (*estimator.Selection, error) {
	var sel *estimator.Selection
	err := e.runTraining(ctx, "select", func(ctx context.Context) (*estimator.Artifact, error) {
		train, test, err := e.datasets()
		if err != nil {
			return nil, err
		}
		sel, err = e.sel.SelectBest(ctx, train, test, e.cfg.Families)
		if err != nil {
			return nil, err
		}
		return sel.Best, nil
	})
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// TrainFamily trains one family with params (zero fields take defaults),
// evaluates it on the test split and saves it under the family name. When
// activate is set the result also becomes the active model and is saved as
// the best alias.
//
//nolint:gocritic // Params is small and copied on purpose
func (e *Engine) TrainFamily(ctx context.Context, family estimator.Family, params estimator.Params, activate bool) (*estimator.Artifact, error) {
	if _, err := estimator.ParseFamily(string(family)); err != nil {
		return nil, err
	}

	var out *estimator.Artifact
	err := e.runTraining(ctx, string(family), func(ctx context.Context) (*estimator.Artifact, error) {
		train, test, err := e.datasets()
		if err != nil {
			return nil, err
		}
		start := time.Now()
		a, err := estimator.Train(ctx, family, params, train)
		if err != nil {
			return nil, err
		}
		scores := estimator.Evaluate(a, test)
		a.Metrics = &estimator.Evaluation{
			Family:     family,
			Params:     a.Params,
			Scores:     scores,
			TrainRows:  train.Len(),
			TestRows:   test.Len(),
			DurationMS: time.Since(start).Milliseconds(),
		}
		metrics.RecordModelScore(string(family), scores.R2, scores.RMSE)

		if e.repo != nil {
			if err := e.repo.Save(ctx, string(family), a); err != nil {
				return nil, err
			}
			if activate {
				if err := e.repo.Save(ctx, estimator.BestName, a); err != nil {
					return nil, err
				}
			}
		}
		out = a
		if !activate {
			return nil, nil
		}
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// runTraining holds the training lock around fn, maintains the status and
// activates the artifact fn returns, if any.
func (e *Engine) runTraining(ctx context.Context, kind string, fn func(context.Context) (*estimator.Artifact, error)) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	start := time.Now()
	e.statusMu.Lock()
	e.status.IsTraining = true
	e.status.Kind = kind
	e.status.LastError = ""
	e.statusMu.Unlock()

	e.logger.Info().Str("kind", kind).Msg("Starting model training")

	a, err := fn(ctx)
	duration := time.Since(start)
	metrics.RecordTraining(kind, duration, err)

	e.statusMu.Lock()
	e.status.IsTraining = false
	e.status.Runs++
	e.status.LastTrainingDurationMS = duration.Milliseconds()
	if err != nil {
		e.status.LastError = err.Error()
	} else {
		e.status.LastTrainedAt = time.Now().UTC()
	}
	e.statusMu.Unlock()

	if err != nil {
		e.logger.Error().Err(err).Str("kind", kind).Msg("Model training failed")
		return err
	}
	if a != nil {
		e.activate(a)
	}
	e.logger.Info().
		Str("kind", kind).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("Model training complete")
	return nil
}

func (e *Engine) activate(a *estimator.Artifact) {
	e.active.Store(a)
	metrics.ActiveModelVersion.Set(float64(a.Version))
}

// Predict estimates the price of spec in the base currency. When no model is
// active one is loaded or trained first.
//
//nolint:gocritic // spec passed by value for immutability
func (e *Engine) Predict(ctx context.Context, spec catalog.Specification) (*Result, error) {
	a := e.active.Load()
	if a == nil {
		var err error
		if a, err = e.TrainOrSelect(ctx); err != nil {
			return nil, err
		}
	}
	if a == nil {
		return nil, ErrNoModel
	}

	est := a.Estimate(spec)
	e.recordFallbacks(est.Fallbacks)

	cur, _ := LookupCurrency(e.cfg.BaseCurrency)
	res := &Result{
		Price:        est.Value,
		Currency:     cur.Code,
		Symbol:       cur.Symbol,
		Interval:     interval(est.Members, e.cfg.IntervalLevel),
		Category:     Categorize(spec, est.Value),
		Family:       a.Family,
		ModelVersion: a.Version,
		Strategy:     a.Strategy(),
		Fallbacks:    est.Fallbacks,
		PredictedAt:  time.Now().UTC(),
	}
	metrics.RecordPrediction(string(a.Family), res.HasInterval())
	return res, nil
}

// Recommend ranks the catalog against query and filters the result.
//
//nolint:gocritic // query passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, query catalog.Specification, limit int, criteria recommend.Criteria) ([]recommend.Recommendation, error) {
	r := e.recommender.Load()
	if r == nil {
		return nil, ErrNoRecommender
	}
	return r.Recommend(ctx, query, limit, criteria)
}

func (e *Engine) recordFallbacks(fallbacks []features.Fallback) {
	for _, f := range fallbacks {
		metrics.EncodingFallbacks.WithLabelValues(string(f.Column)).Inc()
		e.logger.Debug().
			Str("column", string(f.Column)).
			Str("value", f.Value).
			Msg("Unseen category mapped to fallback")
	}
}

// interval returns the central band covering level of the member predictions,
// or nil when there are fewer than two members.
func interval(members []float64, level float64) *Interval {
	if len(members) < 2 {
		return nil
	}
	sorted := append([]float64(nil), members...)
	sort.Float64s(sorted)

	tail := (1 - level) / 2
	return &Interval{
		Lower: percentile(sorted, tail),
		Upper: percentile(sorted, 1-tail),
		Level: level,
	}
}

// percentile interpolates linearly between closest ranks at p*(n-1), so the
// band is symmetric in rank around the median. sorted must be ascending.
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
