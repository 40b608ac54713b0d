// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// TrainResponse describes a training request outcome. Synchronous runs
// carry the resulting model; background runs only the status snapshot.
type TrainResponse struct {
	Kind     string                 `json:"kind"`
	Started  bool                   `json:"started"`
	Model    *pricing.ModelInfo     `json:"model,omitempty"`
	Training pricing.TrainingStatus `json:"training"`
}

// Train handles POST /models/train.
//
// Query parameters:
//   - family: train one family with default hyperparameters instead of
//     running model selection
//   - activate: with family, also serve the new model (default false)
//   - wait: block until training finishes (default false, returns 202)
//
// Returns 409 while another run is in progress and 429 when the manual
// training rate is exceeded.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := TrainRequest{Family: r.URL.Query().Get("family")}
	if !validateRequest(rw, &req) {
		return
	}
	activate, err := boolParam(r, "activate")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	wait, err := boolParam(r, "wait")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	if h.engine.Status().IsTraining {
		respondError(rw, r, pricing.ErrTrainingInProgress)
		return
	}
	if !h.trainLimiter.Allow() {
		rw.TooManyRequests("training rate limit exceeded, retry later")
		return
	}

	kind := "select"
	run := func(ctx context.Context) (*estimator.Artifact, error) {
		sel, err := h.engine.Select(ctx)
		if err != nil {
			return nil, err
		}
		return sel.Best, nil
	}
	if req.Family != "" {
		family, err := estimator.ParseFamily(req.Family)
		if err != nil {
			rw.BadRequest(err.Error())
			return
		}
		kind = string(family)
		run = func(ctx context.Context) (*estimator.Artifact, error) {
			return h.engine.TrainFamily(ctx, family, estimator.Params{}, activate)
		}
	}

	if wait {
		ctx, cancel := context.WithTimeout(r.Context(), h.config.TrainTimeout)
		defer cancel()
		a, err := run(ctx)
		if err != nil {
			respondError(rw, r, err)
			return
		}
		rw.Success(TrainResponse{
			Kind:     kind,
			Started:  true,
			Model:    pricing.DescribeModel(a),
			Training: h.engine.Status(),
		})
		return
	}

	h.bgWG.Add(1)
	go func() {
		defer h.bgWG.Done()
		ctx, cancel := context.WithTimeout(h.bgCtx, h.config.TrainTimeout)
		defer cancel()
		if _, err := run(ctx); err != nil {
			event := h.logger.Error()
			if errors.Is(err, pricing.ErrTrainingInProgress) || errors.Is(err, context.Canceled) {
				event = h.logger.Warn()
			}
			event.Err(err).Str("kind", kind).Msg("Background training failed")
		}
	}()

	rw.Accepted(TrainResponse{
		Kind:     kind,
		Started:  true,
		Training: h.engine.Status(),
	})
}

// TrainingStatus handles GET /models/status.
func (h *Handler) TrainingStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Status())
}

// BestModel handles GET /models/best.
// Returns metadata and held-out metrics of the model serving predictions.
func (h *Handler) BestModel(w http.ResponseWriter, r *http.Request) {
	info := h.engine.ActiveInfo()
	if info == nil {
		respondError(NewResponseWriter(w, r), r, pricing.ErrNoModel)
		return
	}
	NewResponseWriter(w, r).Success(info)
}

// ListModels handles GET /models.
// Returns the latest stored version of every artifact name.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	models := []artifact.Metadata{}
	if repo := h.engine.Repository(); repo != nil {
		list, err := repo.List(r.Context())
		if err != nil {
			respondError(rw, r, err)
			return
		}
		models = append(models, list...)
	}
	rw.List(models, len(models))
}

func boolParam(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(key + " must be a boolean")
	}
	return v, nil
}
