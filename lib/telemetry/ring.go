// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"sync"

	"github.com/argus-foundation/argus/lib/clock"
)

// DefaultRingCapacity holds several minutes of capture-loop events at
// typical frame rates.
const DefaultRingCapacity = 4096

// Ring is a fixed-capacity event buffer with overwrite-on-full
// semantics and a monotonically increasing emit counter. Producers
// never block: when the ring is full the oldest unread event is
// overwritten and counted as dropped.
//
// All methods are safe for concurrent use.
type Ring struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	clock    clock.Clock

	// next is the write position within events.
	next int
	// stored is the number of live events (<= capacity).
	stored int
	// emitted counts every event ever emitted.
	emitted uint64
	// dropped counts events overwritten before being drained.
	dropped uint64
	// mission tags every event emitted through this ring.
	mission string
}

// NewRing creates a ring with the given capacity (DefaultRingCapacity
// if zero or negative). The clock stamps events emitted without a
// timestamp; nil means the real clock.
func NewRing(capacity int, clk clock.Clock) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Ring{
		events:   make([]Event, capacity),
		capacity: capacity,
		clock:    clk,
	}
}

// SetMission sets the mission tag applied to subsequently emitted
// events that carry none of their own.
func (r *Ring) SetMission(mission string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mission = mission
}

// Emit records an event. A zero TimestampNS is stamped with the
// ring's clock. Never blocks; overwrites the oldest event when full.
func (r *Ring) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.TimestampNS == 0 {
		event.TimestampNS = r.clock.NowNS()
	}
	if event.Mission == "" {
		event.Mission = r.mission
	}

	r.events[r.next] = event
	r.next = (r.next + 1) % r.capacity
	if r.stored < r.capacity {
		r.stored++
	} else {
		r.dropped++
	}
	r.emitted++
}

// EmitSimple records an event with just the common fields, for hot
// paths that have no role/layer context at hand.
func (r *Ring) EmitSimple(deviceID uint32, eventType EventType, severity Severity, aux uint32) {
	r.Emit(Event{
		DeviceID: deviceID,
		Type:     eventType,
		Severity: severity,
		Aux:      aux,
	})
}

// Drain removes and returns all buffered events, oldest first. The
// returned slice is owned by the caller.
func (r *Ring) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stored == 0 {
		return nil
	}

	drained := make([]Event, r.stored)
	start := (r.next - r.stored + r.capacity) % r.capacity
	for index := 0; index < r.stored; index++ {
		drained[index] = r.events[(start+index)%r.capacity]
	}
	r.next = 0
	r.stored = 0
	return drained
}

// Stats returns the lifetime emitted and dropped counts.
func (r *Ring) Stats() (emitted, dropped uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitted, r.dropped
}

// Len returns the number of currently buffered events.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored
}
