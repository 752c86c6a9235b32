// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

// Package logging provides centralized zerolog-based structured logging for Affinitas.
//
// The package configures a single global zerolog logger (JSON for production,
// console for development) and exposes it three ways:
//
//   - Package-level event starters (Info, Warn, Error, ...) for code that
//     logs directly, such as the database layer.
//   - WithComponent, which derives child loggers to inject into constructors
//     (the loader, builder, and store all take one).
//   - Ctx, which stamps the HTTP request ID from the context onto every
//     event emitted inside a handler.
//
// A small slog adapter bridges zerolog to libraries that only accept
// log/slog, currently just the suture supervisor's event hook.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("snapshot", path).Msg("Loading records")
//	logging.Err(err).Msg("Build failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped.
package logging
