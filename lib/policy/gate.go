// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/argus-foundation/argus/lib/tempest"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	// Deny means the action is not permitted.
	Deny Decision = iota

	// Allow means the action is permitted.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// ErrDenied is the sentinel wrapped by every policy denial.
var ErrDenied = errors.New("policy: denied")

// Check is the mandatory capture gate: Lockdown denies, every other
// state allows. Callers must invoke it with a state fetched in the
// same logical operation — never a cached value from an earlier
// query. Authorize packages that rule; use it instead of calling
// Check on a hand-carried state.
func Check(state tempest.State) Decision {
	if state == tempest.Lockdown {
		return Deny
	}
	return Allow
}

// Grant is the proof that a capture was authorized: a TEMPEST state
// snapshot taken and checked in one operation. Frame-delivery paths
// in lib/capture accept only a Grant, so calling capture without the
// check is a compile-time impossibility, and each Grant is consumed
// by exactly one delivery so a snapshot cannot gate two captures.
//
// The zero Grant is invalid and is rejected by Consume.
type Grant struct {
	state    tempest.State
	deviceID uint32
	used     *atomic.Bool
}

// State returns the TEMPEST state the grant was issued under.
func (g Grant) State() tempest.State { return g.state }

// DeviceID returns the device the grant authorizes.
func (g Grant) DeviceID() uint32 { return g.deviceID }

// Consume marks the grant used. It fails on the zero Grant and on a
// grant that already gated a delivery.
func (g Grant) Consume() error {
	if g.used == nil {
		return fmt.Errorf("%w: no authorization grant", ErrDenied)
	}
	if g.used.Swap(true) {
		return fmt.Errorf("%w: authorization grant already consumed", ErrDenied)
	}
	return nil
}

// Config holds Gate construction parameters.
type Config struct {
	// Clearance is the session clearance, read once from the
	// deployment's configuration source (environment, profile, or
	// orchestrator push — the caller's concern) and fixed for the
	// Gate's lifetime.
	Clearance Clearance

	// Threatcon is the initial threat condition. Defaults to NORMAL.
	Threatcon Threatcon

	// Logger receives policy decisions worth recording. Nil means
	// discard.
	Logger *slog.Logger
}

// Gate holds the process-wide mutable policy state: the current
// threat condition and the session clearance. It is an explicit
// object — constructed once, passed by reference — so tests can make
// one per case and the state race in capture authorization stays
// visible and testable. Safe for concurrent use.
type Gate struct {
	logger    *slog.Logger
	clearance Clearance

	mu        sync.Mutex
	threatcon Threatcon
}

// NewGate creates a policy gate.
func NewGate(cfg Config) (*Gate, error) {
	if !cfg.Threatcon.Valid() {
		return nil, fmt.Errorf("policy: invalid initial threat condition %d", uint8(cfg.Threatcon))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gate{
		logger:    logger,
		clearance: cfg.Clearance,
		threatcon: cfg.Threatcon,
	}, nil
}

// Threatcon returns the current threat condition.
func (g *Gate) Threatcon() Threatcon {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.threatcon
}

// SetThreatcon updates the threat condition. Undefined levels are
// rejected.
func (g *Gate) SetThreatcon(level Threatcon) error {
	if !level.Valid() {
		return fmt.Errorf("policy: invalid threat condition %d", uint8(level))
	}
	g.mu.Lock()
	old := g.threatcon
	g.threatcon = level
	g.mu.Unlock()

	if old != level {
		g.logger.Info("threat condition changed",
			"old", old.String(),
			"new", level.String(),
		)
	}
	return nil
}

// ApplyThreatcon drives a device's TEMPEST state to the level the
// current threat condition requires.
func (g *Gate) ApplyThreatcon(machine *tempest.Machine) error {
	target, err := TempestFor(g.Threatcon())
	if err != nil {
		return err
	}
	return machine.SetState(target)
}

// Authorize snapshots the device's TEMPEST state and performs the
// capture policy check as one operation. On Allow it returns a
// single-use Grant carrying the snapshot; on Lockdown it returns an
// error wrapping ErrDenied. This is the only supported way to gate a
// capture — the snapshot and the decision cannot be separated by a
// concurrent SetState.
func (g *Gate) Authorize(machine *tempest.Machine) (Grant, error) {
	state := machine.State()
	if Check(state) == Deny {
		return Grant{}, fmt.Errorf("%w: device %d in %s", ErrDenied, machine.DeviceID(), state)
	}
	return Grant{
		state:    state,
		deviceID: machine.DeviceID(),
		used:     new(atomic.Bool),
	}, nil
}

// CheckClearance decides whether the session may use a device role
// with data of the given classification. The requirement is the
// stricter of the role's minimum and the classification's tier; the
// session clearance must meet it. Unknown roles require Unclassified.
func (g *Gate) CheckClearance(role, classification string) Decision {
	required := ClassifyString(classification)
	if roleRequired := RoleMinimum(role); roleRequired > required {
		required = roleRequired
	}

	if g.clearance < required {
		g.logger.Info("clearance denied",
			"role", role,
			"required", required.String(),
			"held", g.clearance.String(),
		)
		return Deny
	}
	return Allow
}

// LayerCheck decides whether capture at the given layer is permitted
// under a TEMPEST state snapshot: the state must meet the layer's
// minimum. Out-of-range layers are an error, not a denial.
func (g *Gate) LayerCheck(layer uint32, state tempest.State) (Decision, error) {
	layerPolicy, err := LayerPolicyFor(layer)
	if err != nil {
		return Deny, err
	}
	if state < layerPolicy.MinTempest {
		return Deny, nil
	}
	return Allow, nil
}
