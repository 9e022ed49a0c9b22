// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"testing"
	"time"

	"github.com/argus-foundation/argus/lib/clock"
)

func testClock() *clock.FakeClock {
	return clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestRingStampsTimestamps(t *testing.T) {
	fake := testClock()
	ring := NewRing(16, fake)

	ring.EmitSimple(1, EventFrameAcquired, SeverityInfo, 4096)
	fake.Advance(time.Second)
	ring.EmitSimple(1, EventFrameAcquired, SeverityInfo, 4096)

	events := ring.Drain()
	if len(events) != 2 {
		t.Fatalf("drained %d events, want 2", len(events))
	}
	if events[0].TimestampNS == 0 {
		t.Error("first event not stamped")
	}
	if delta := events[1].TimestampNS - events[0].TimestampNS; delta != uint64(time.Second) {
		t.Errorf("timestamp delta %d, want %d", delta, uint64(time.Second))
	}
}

func TestRingPreservesExplicitTimestamp(t *testing.T) {
	ring := NewRing(4, testClock())
	ring.Emit(Event{TimestampNS: 777, Type: EventError})

	events := ring.Drain()
	if events[0].TimestampNS != 777 {
		t.Errorf("timestamp %d, want 777", events[0].TimestampNS)
	}
}

func TestRingOverwritesOldest(t *testing.T) {
	ring := NewRing(3, testClock())
	for aux := uint32(0); aux < 5; aux++ {
		ring.EmitSimple(0, EventFrameAcquired, SeverityDebug, aux)
	}

	events := ring.Drain()
	if len(events) != 3 {
		t.Fatalf("drained %d events, want 3", len(events))
	}
	for index, event := range events {
		if want := uint32(index + 2); event.Aux != want {
			t.Errorf("event %d: aux %d, want %d", index, event.Aux, want)
		}
	}

	emitted, dropped := ring.Stats()
	if emitted != 5 {
		t.Errorf("emitted %d, want 5", emitted)
	}
	if dropped != 2 {
		t.Errorf("dropped %d, want 2", dropped)
	}
}

func TestRingDrainEmpty(t *testing.T) {
	ring := NewRing(4, testClock())
	if events := ring.Drain(); events != nil {
		t.Errorf("Drain on empty ring returned %d events", len(events))
	}
}

func TestRingMissionTag(t *testing.T) {
	ring := NewRing(4, testClock())
	ring.SetMission("perimeter-west")

	ring.EmitSimple(2, EventDeviceOpen, SeverityInfo, 0)
	ring.Emit(Event{Type: EventDeviceOpen, Mission: "override"})

	events := ring.Drain()
	if events[0].Mission != "perimeter-west" {
		t.Errorf("mission %q, want perimeter-west", events[0].Mission)
	}
	if events[1].Mission != "override" {
		t.Errorf("mission %q, want override", events[1].Mission)
	}
}

func TestPackStatePair(t *testing.T) {
	aux := PackStatePair(2, 3)
	oldState, newState := UnpackStatePair(aux)
	if oldState != 2 || newState != 3 {
		t.Errorf("round trip gave (%d, %d), want (2, 3)", oldState, newState)
	}
}
