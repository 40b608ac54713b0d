// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package supervisor

import (
	"context"
	"fmt"
	"sync/atomic"
)

// stubService counts runs and fails its first failFirst runs.
type stubService struct {
	name      string
	failFirst int32
	runs      atomic.Int32
	exits     atomic.Int32
}

func newStubService(name string, failFirst int) *stubService {
	return &stubService{name: name, failFirst: int32(failFirst)}
}

func (s *stubService) Serve(ctx context.Context) error {
	run := s.runs.Add(1)
	defer s.exits.Add(1)
	if run <= s.failFirst {
		return fmt.Errorf("%s: run %d failed", s.name, run)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }
