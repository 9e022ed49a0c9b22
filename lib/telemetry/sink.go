// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/argus-foundation/argus/lib/clock"
	"github.com/argus-foundation/argus/lib/codec"
)

// Sink receives drained event batches. Implementations must tolerate
// empty batches and must not retain the slice after Write returns.
type Sink interface {
	Write(events []Event) error
	Close() error
}

// FileSink appends events to a file as a CBOR sequence (one CBOR map
// per event, no framing). The format is readable back with
// ReadEventFile and by any CBOR-sequence consumer.
type FileSink struct {
	file    *os.File
	encoder *codec.Encoder
}

// NewFileSink opens (or creates) the file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening sink file: %w", err)
	}
	return &FileSink{file: file, encoder: codec.NewEncoder(file)}, nil
}

// Write appends the batch.
func (s *FileSink) Write(events []Event) error {
	for index := range events {
		if err := s.encoder.Encode(&events[index]); err != nil {
			return fmt.Errorf("telemetry: encoding event: %w", err)
		}
	}
	return nil
}

// Close syncs and closes the file.
func (s *FileSink) Close() error {
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return fmt.Errorf("telemetry: syncing sink file: %w", err)
	}
	return s.file.Close()
}

// ReadEventFile decodes every event from a FileSink file.
func ReadEventFile(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening event file: %w", err)
	}
	defer file.Close()

	decoder := codec.NewDecoder(file)
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			if err == io.EOF {
				return events, nil
			}
			return nil, fmt.Errorf("telemetry: decoding event file: %w", err)
		}
		events = append(events, event)
	}
}

// Flusher periodically drains a ring into a sink.
type Flusher struct {
	// Ring is the event source. Required.
	Ring *Ring

	// Sink receives drained batches. Required.
	Sink Sink

	// Interval between drains. Defaults to 5 seconds.
	Interval time.Duration

	// Clock drives the flush ticker. Nil means the real clock.
	Clock clock.Clock

	// Logger receives flush errors. Nil means discard.
	Logger *slog.Logger
}

// Run drains the ring every Interval until ctx is cancelled, then
// performs a final drain. Sink errors are logged and the affected
// batch is lost — the flusher keeps running, because a broken sink
// must not back-pressure capture.
func (f *Flusher) Run(ctx context.Context) {
	interval := f.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	clk := f.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.flush(logger)
			return
		case <-ticker.C:
			f.flush(logger)
		}
	}
}

func (f *Flusher) flush(logger *slog.Logger) {
	events := f.Ring.Drain()
	if len(events) == 0 {
		return
	}
	if err := f.Sink.Write(events); err != nil {
		logger.Error("telemetry flush failed",
			"events_lost", len(events),
			"error", err,
		)
	}
}
