// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides the Argus-standard SQLite connection
// pool. The telemetry SQLite sink (and any future local index) opens
// its database through this package so every connection carries the
// same pragmas.
//
// The pool wraps zombiezen.com/go/sqlite's sqlitex.Pool: callers Take
// a connection, work, and Put it back. Connections are not safe for
// concurrent use — one goroutine per borrowed connection.
//
// Pragmas applied to every connection: WAL journal mode (readers never
// block the writer), synchronous=NORMAL (survives process crash, which
// is sufficient for telemetry whose source of truth is the in-memory
// ring until flushed), busy_timeout=5000, and temp_store=MEMORY.
//
// The package is intentionally thin. Sinks write SQL and use sqlitex
// helpers directly; there is no query-builder layer.
package sqlitepool
