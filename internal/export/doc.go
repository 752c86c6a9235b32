// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package export persists completed similarity graphs.

Two sinks live here: a JSON document mapping record ids to ordered
neighbor lists, and a BadgerDB store that serve mode reads. Both
preserve full float64 precision and always carry all four score fields
of an entry, even when a channel contributed exactly zero. The
relational sink lives in internal/database.

The JSON document is written atomically (temp file, fsync, rename), so
an aborted export never leaves a partial file behind, and with sorted
keys so identical graphs produce byte-identical files.

The store keys neighbor lists as "neighbors:<id>" and manifests as
"manifest:latest" and "manifest:<run_id>". A re-export drops all
neighbor keys first and replaces them wholesale; manifests accumulate,
one per run, with latest rewritten last.
*/
package export
