// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package serve provides process supervision for Affinitas serve mode
using suture v4.

The serve command keeps two long-running concerns alive: the HTTP API
that answers neighbor queries from the Badger store, and a maintenance
ticker that garbage-collects the store's value log. This package wraps
both as suture services under a small supervisor tree with
Erlang/OTP-style restart, failure isolation, and graceful shutdown.

# Overview

	Root ("affinitas")
	├── StoreSupervisor ("store-layer")
	│   └── GCService ("badger-gc")
	└── APISupervisor ("api-layer")
	    └── HTTPService ("http-server")

The two layers count failures independently. A crash-looping GC ticker
drives only the store layer into backoff; the API keeps serving.

# Usage Example

Setup in the serve command:

	logger := logging.NewSlogLogger()
	tree, err := serve.NewTree(logger, serve.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	server := &http.Server{
	    Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
	    Handler: router.SetupChi(),
	}
	tree.AddAPIService(serve.NewHTTPService(server, 10*time.Second))
	tree.AddStoreService(serve.NewGCService(store, 5*time.Minute))

	// Blocks until ctx is canceled (SIGINT/SIGTERM).
	err = tree.Serve(ctx)

# Configuration

TreeConfig controls restart behavior, with defaults matching suture's
production values:

	config := serve.TreeConfig{
	    FailureThreshold: 5.0,              // failures before backoff
	    FailureDecay:     30.0,             // seconds for failures to decay
	    FailureBackoff:   15 * time.Second, // backoff duration
	    ShutdownTimeout:  10 * time.Second, // per-service stop timeout
	}

# Service Interface

Services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - nil: stopped cleanly, not restarted
  - error: crashed, restarted under the layer's backoff policy
  - ctx canceled: shutdown requested, return promptly

# What Is NOT Supervised

The build pipeline is a batch command, not a service; it runs once
under cmd and exits. The DuckDB run-history sink is an embedded
library written during build, so there is nothing to keep alive for
it in serve mode.

# Debugging Shutdown Issues

Services that ignore cancellation show up in the unstopped report:

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("service did not stop: %v", svc)
	}

# See Also

  - internal/export: the Badger store the GC service maintains
  - internal/api: the router served by HTTPService
  - github.com/thejerf/suture/v4: underlying supervision library
*/
package serve
