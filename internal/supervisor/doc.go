// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package supervisor provides process supervision for LapiPrice using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("lapiprice")
	├── ModelSupervisor ("model-layer")
	│   ├── TrainingService (startup load/selection, optional periodic reselection)
	│   └── HistoryGCService (badger history backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff once FailureThreshold failures
accumulate within the FailureDecay window. A failure in the model layer
never restarts the HTTP server, so predictions keep flowing from the
active model while training recovers.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddModelService(services.NewTrainingService(engine, trainingCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog into the zerolog pipeline by way of logging.NewSlogHandler.
*/
package supervisor
