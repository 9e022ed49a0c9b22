// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package tempest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/argus-foundation/argus/lib/telemetry"
)

// ErrNotSupported is returned by SetState when the device carries no
// TEMPEST control at all.
var ErrNotSupported = errors.New("tempest: device has no TEMPEST control")

// HardwareError wraps a failed control read or write so callers can
// distinguish hardware I/O faults from policy outcomes.
type HardwareError struct {
	// Op is "read" or "write".
	Op string

	// Err is the underlying control error.
	Err error
}

// Error implements the error interface.
func (e *HardwareError) Error() string {
	return fmt.Sprintf("tempest: control %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying control error.
func (e *HardwareError) Unwrap() error { return e.Err }

// Control is the hardware-side TEMPEST interface, implemented by the
// device I/O layer (typically a V4L2 control ioctl, not this
// repository's concern). A device without a TEMPEST control returns
// ErrNotSupported from both methods.
type Control interface {
	// ReadState reads the current hardware state.
	ReadState() (State, error)

	// WriteState sets the hardware state. Implementations may be
	// no-op stubs on devices whose shielding is externally managed;
	// the Machine audits the transition regardless.
	WriteState(State) error
}

// Machine tracks one device's TEMPEST state: the hardware control,
// a cached last-known state, and the audit trail. All methods are
// safe for concurrent use; the internal mutex makes each read or
// transition atomic with respect to the cache.
type Machine struct {
	deviceID uint32
	control  Control
	ring     *telemetry.Ring
	logger   *slog.Logger

	mu     sync.Mutex
	cached State
}

// Config holds Machine construction parameters.
type Config struct {
	// DeviceID identifies the device in telemetry events.
	DeviceID uint32

	// Control is the hardware interface. Nil means the device has no
	// TEMPEST control: State reports Disabled and SetState returns
	// ErrNotSupported.
	Control Control

	// Ring receives audit events. Required.
	Ring *telemetry.Ring

	// Logger receives transition logs. Nil means discard.
	Logger *slog.Logger

	// Initial seeds the cached state for devices whose control
	// cannot be read before first use.
	Initial State
}

// NewMachine creates a state machine for one device.
func NewMachine(cfg Config) (*Machine, error) {
	if cfg.Ring == nil {
		return nil, errors.New("tempest: Config.Ring is required")
	}
	if !cfg.Initial.Valid() {
		return nil, fmt.Errorf("tempest: invalid initial state %d", cfg.Initial)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{
		deviceID: cfg.DeviceID,
		control:  cfg.Control,
		ring:     cfg.Ring,
		logger:   logger,
		cached:   cfg.Initial,
	}, nil
}

// DeviceID returns the identifier the machine stamps on telemetry.
func (m *Machine) DeviceID() uint32 { return m.deviceID }

// State returns the device's current TEMPEST state. The hardware
// control is re-read on every call; if the read fails the last cached
// value is returned instead. Reads fail open to the cache — a flaky
// control must not wedge every status query — but capture
// authorization never relies on this fallback alone: the policy gate
// denies on Lockdown whether the value came from hardware or cache,
// and a cache seeded Lockdown stays Lockdown until a successful read
// says otherwise.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked()
}

// refreshLocked re-reads the control and updates the cache. Callers
// hold m.mu.
func (m *Machine) refreshLocked() State {
	if m.control == nil {
		return m.cached
	}

	state, err := m.control.ReadState()
	if err != nil {
		m.logger.Warn("tempest control read failed, using cached state",
			"device", m.deviceID,
			"cached", m.cached.String(),
			"error", err,
		)
		return m.cached
	}
	if !state.Valid() {
		// A control reporting garbage is treated like a failed read.
		m.logger.Warn("tempest control reported undefined state",
			"device", m.deviceID,
			"value", uint8(state),
		)
		return m.cached
	}

	m.cached = state
	m.ring.EmitSimple(m.deviceID, telemetry.EventTempestQuery, telemetry.SeverityDebug, uint32(state))
	return state
}

// SetState transitions the device to target. Every (state, target)
// pair over the four defined states is a legal transition; an
// undefined target is an error. The transition is written to the
// hardware control, the cache is updated, and an audit event carrying
// the (old, new) pair is emitted unconditionally — the audit trail is
// the security-relevant side effect, so it fires even when the
// hardware write is a no-op stub.
func (m *Machine) SetState(target State) error {
	if !target.Valid() {
		return fmt.Errorf("tempest: invalid target state %d", uint8(target))
	}
	if m.control == nil {
		return ErrNotSupported
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldState := m.refreshLocked()

	if err := m.control.WriteState(target); err != nil {
		if errors.Is(err, ErrNotSupported) {
			return ErrNotSupported
		}
		return &HardwareError{Op: "write", Err: err}
	}

	m.cached = target

	m.ring.Emit(telemetry.Event{
		DeviceID: m.deviceID,
		Type:     telemetry.EventTempestTransition,
		Severity: telemetry.SeverityCritical,
		Aux:      telemetry.PackStatePair(uint8(oldState), uint8(target)),
	})
	if target == Lockdown {
		m.ring.EmitSimple(m.deviceID, telemetry.EventTempestLockdown, telemetry.SeverityCritical, 0)
	}

	m.logger.Info("tempest state transition",
		"device", m.deviceID,
		"old", oldState.String(),
		"new", target.String(),
	)
	return nil
}
