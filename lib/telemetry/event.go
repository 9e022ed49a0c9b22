// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import "fmt"

// EventType identifies what happened. Values are wire constants —
// they appear in export chunks and the SQLite sink, so existing values
// never change meaning.
type EventType uint16

const (
	EventDeviceOpen  EventType = 0x0001
	EventDeviceClose EventType = 0x0002

	EventCaptureStart  EventType = 0x0010
	EventCaptureStop   EventType = 0x0011
	EventFrameAcquired EventType = 0x0012
	EventFrameDropped  EventType = 0x0013

	EventTempestTransition EventType = 0x0020
	EventTempestQuery      EventType = 0x0021
	EventTempestLockdown   EventType = 0x0022

	EventIrisCapture  EventType = 0x0042
	EventMetaRead     EventType = 0x0050
	EventFusedCapture EventType = 0x0051

	EventError           EventType = 0x0100
	EventPolicyViolation EventType = 0x0101
)

// String returns the event type name for logs.
func (t EventType) String() string {
	switch t {
	case EventDeviceOpen:
		return "device-open"
	case EventDeviceClose:
		return "device-close"
	case EventCaptureStart:
		return "capture-start"
	case EventCaptureStop:
		return "capture-stop"
	case EventFrameAcquired:
		return "frame-acquired"
	case EventFrameDropped:
		return "frame-dropped"
	case EventTempestTransition:
		return "tempest-transition"
	case EventTempestQuery:
		return "tempest-query"
	case EventTempestLockdown:
		return "tempest-lockdown"
	case EventIrisCapture:
		return "iris-capture"
	case EventMetaRead:
		return "meta-read"
	case EventFusedCapture:
		return "fused-capture"
	case EventError:
		return "error"
	case EventPolicyViolation:
		return "policy-violation"
	default:
		return fmt.Sprintf("unknown(0x%04x)", uint16(t))
	}
}

// Severity ranks events for sink filtering and operator triage.
type Severity uint8

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Event is one telemetry record. Events are fixed-shape: Aux carries
// event-specific data (a state pair, an error code, a byte count) so
// the record stays small enough to emit from hot capture paths without
// allocation pressure.
//
// Events never carry frame or metadata payload bytes. The audit trail
// records that capture happened, not what was captured.
type Event struct {
	// TimestampNS is when the event occurred, in Unix nanoseconds.
	// Zero means "stamp at emit time" — the ring fills it in.
	TimestampNS uint64 `cbor:"ts_ns"`

	// DeviceID identifies the originating device.
	DeviceID uint32 `cbor:"dev_id"`

	// Type says what happened.
	Type EventType `cbor:"type"`

	// Severity ranks the event.
	Severity Severity `cbor:"severity"`

	// Aux is event-specific: for tempest transitions the packed
	// (old<<16 | new) state pair, for frame events a byte count, for
	// errors a code.
	Aux uint32 `cbor:"aux"`

	// Layer is the capture layer (0-8) the device operates at.
	Layer uint32 `cbor:"layer"`

	// Role is the device role ("camera", "iris_scanner", ...).
	Role string `cbor:"role,omitempty"`

	// Mission tags the operational context the process runs under.
	Mission string `cbor:"mission,omitempty"`
}

// PackStatePair packs an (old, new) state pair into Aux form for
// tempest transition events.
func PackStatePair(oldState, newState uint8) uint32 {
	return uint32(oldState)<<16 | uint32(newState)
}

// UnpackStatePair reverses PackStatePair.
func UnpackStatePair(aux uint32) (oldState, newState uint8) {
	return uint8(aux >> 16), uint8(aux & 0xFFFF)
}
