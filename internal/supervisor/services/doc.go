// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package services provides suture.Service wrappers for Kinograph components.

This package adapts application components to the suture v4 supervision
model, translating their native lifecycle patterns (ListenAndServe, train
loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation to the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Training Service (TrainingService):
  - Wraps recommendation engine training
  - Optional training on startup, then periodic retraining
  - Training failures are logged and retried, never fatal

# Usage Example

Creating and registering services:

	import (
	    "net/http"
	    "time"

	    "github.com/tomtom215/kinograph/internal/supervisor"
	    "github.com/tomtom215/kinograph/internal/supervisor/services"
	)

	func setupSupervisor(server *http.Server, engine *recommend.Engine) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    // HTTP server with 30s shutdown timeout
	    httpSvc := services.NewHTTPServerService(server, 30*time.Second)
	    tree.AddAPIService(httpSvc)

	    // Model training loop
	    trainSvc := services.NewTrainingService(engine, services.TrainingServiceConfig{
	        TrainOnStartup: true,
	        TrainInterval:  6 * time.Hour,
	        TrainTimeout:   10 * time.Minute,
	    }, zlog)
	    tree.AddModelService(trainSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

Note that the TrainingService deliberately swallows training errors:
a failed training run must not crash-loop the model layer, since the
engine simply keeps serving its previous model (or 503s if untrained).

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

Suture uses this for log messages:

	INFO http-server: starting
	INFO http-server: stopped
	ERROR http-server: restarting after failure

# Thread Safety

All service wrappers are safe for concurrent use:
  - State is protected by mutexes where needed
  - Context cancellation is handled atomically
  - Multiple Serve calls are not supported (undefined behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/recommend: Recommendation engine implementation
*/
package services
