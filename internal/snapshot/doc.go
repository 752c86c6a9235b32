// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package snapshot loads harvested catalog snapshots into normalized,
order-stable record tables.

Snapshots arrive as JSON arrays of heterogeneous per-record objects.
Harvesters pull from different source catalogs, so field types vary:
text fields may be strings, lists, or language-keyed maps; years may be
numbers, numeric strings, or the "Unknown Year" sentinel; coordinates
may be numbers, strings, or null. The loader flattens all of that to the
scalar shape of models.Record. Normalization is tolerant and idempotent:
a malformed field becomes empty or nil, is counted in the summary log,
and never fails the load.

Two conditions are fatal: an unreadable or unparsable snapshot file, and
a duplicate record id. Entries without any id are dropped and counted
rather than failing the load, since a record that cannot be addressed
cannot appear in the output anyway.

The position of a record in Table.Records is the matrix index used by
every similarity channel, so record order in the file is preserved
exactly.

An optional gazetteer backfills coordinates for records whose place
label matches an entry exactly. A coordinate already present on a record
is never overwritten.
*/
package snapshot
