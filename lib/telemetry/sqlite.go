// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/argus-foundation/argus/lib/sqlitepool"
)

// sqliteSchema is the event table. One row per event; the rowid is
// the insertion order, which matches emit order within a batch.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	ts_ns    INTEGER NOT NULL,
	dev_id   INTEGER NOT NULL,
	type     INTEGER NOT NULL,
	severity INTEGER NOT NULL,
	aux      INTEGER NOT NULL,
	layer    INTEGER NOT NULL,
	role     TEXT NOT NULL DEFAULT '',
	mission  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS events_ts ON events (ts_ns);
CREATE INDEX IF NOT EXISTS events_type ON events (type);
`

// SQLiteSink stores events in a local SQLite database for structured
// queries (per-device timelines, violation counts by severity).
type SQLiteSink struct {
	pool *sqlitepool.Pool
}

// NewSQLiteSink opens (or creates) the event database at path.
func NewSQLiteSink(path string, logger *slog.Logger) (*SQLiteSink, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, sqliteSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening sqlite sink: %w", err)
	}
	return &SQLiteSink{pool: pool}, nil
}

// Write inserts the batch in a single transaction.
func (s *SQLiteSink) Write(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("telemetry: beginning insert transaction: %w", err)
	}
	defer endTransaction(&err)

	for index := range events {
		event := &events[index]
		err = sqlitex.Execute(conn,
			`INSERT INTO events (ts_ns, dev_id, type, severity, aux, layer, role, mission)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{
				Args: []any{
					int64(event.TimestampNS),
					int64(event.DeviceID),
					int64(event.Type),
					int64(event.Severity),
					int64(event.Aux),
					int64(event.Layer),
					event.Role,
					event.Mission,
				},
			})
		if err != nil {
			err = fmt.Errorf("telemetry: inserting event: %w", err)
			return err
		}
	}
	return nil
}

// Query returns events of the given type, oldest first. A zero
// eventType returns everything.
func (s *SQLiteSink) Query(ctx context.Context, eventType EventType) ([]Event, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	query := "SELECT ts_ns, dev_id, type, severity, aux, layer, role, mission FROM events"
	var args []any
	if eventType != 0 {
		query += " WHERE type = ?"
		args = append(args, int64(eventType))
	}
	query += " ORDER BY ts_ns"

	var events []Event
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			events = append(events, Event{
				TimestampNS: uint64(stmt.ColumnInt64(0)),
				DeviceID:    uint32(stmt.ColumnInt64(1)),
				Type:        EventType(stmt.ColumnInt64(2)),
				Severity:    Severity(stmt.ColumnInt64(3)),
				Aux:         uint32(stmt.ColumnInt64(4)),
				Layer:       uint32(stmt.ColumnInt64(5)),
				Role:        stmt.ColumnText(6),
				Mission:     stmt.ColumnText(7),
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: querying events: %w", err)
	}
	return events, nil
}

// Close closes the underlying pool.
func (s *SQLiteSink) Close() error {
	return s.pool.Close()
}
