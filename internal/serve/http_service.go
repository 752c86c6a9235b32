// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches the *http.Server lifecycle methods this package
// needs, keeping the service wrapper testable with a fake.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService runs an HTTP server as a supervised service, translating
// the blocking ListenAndServe pattern into suture's context-aware Serve
// pattern: the server is started in a goroutine, and cancellation of
// the service context triggers a graceful Shutdown bounded by the
// shutdown timeout.
//
// Example:
//
//	server := &http.Server{Addr: ":8080", Handler: router.SetupChi()}
//	tree.AddAPIService(serve.NewHTTPService(server, 10*time.Second))
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPService wraps an HTTP server for supervision. shutdownTimeout
// bounds how long active connections get to drain during graceful
// shutdown; values <= 0 fall back to 10 seconds.
func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve implements suture.Service.
//
// Returns ctx.Err() after a graceful shutdown and a wrapped error when
// the server fails to start or refuses to shut down cleanly.
// http.ErrServerClosed is treated as a normal exit since Shutdown
// always produces it.
func (h *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		// The listener exited on its own: either a startup failure
		// (port in use, bad address) or an externally triggered close.
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The service context is already canceled, so shutdown gets
		// its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		// Wait for the listener goroutine to finish draining.
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture uses it to name the service in
// log messages.
func (h *HTTPService) String() string {
	return h.name
}
