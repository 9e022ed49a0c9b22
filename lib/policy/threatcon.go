// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"

	"github.com/argus-foundation/argus/lib/tempest"
)

// Threatcon is the externally-set operational threat condition. Six
// levels, totally ordered by increasing threat.
type Threatcon uint8

const (
	ThreatconNormal Threatcon = iota
	ThreatconAlpha
	ThreatconBravo
	ThreatconCharlie
	ThreatconDelta
	ThreatconEmergency
)

// Valid reports whether t is one of the six defined levels.
func (t Threatcon) Valid() bool {
	return t <= ThreatconEmergency
}

// String returns the uppercase level name.
func (t Threatcon) String() string {
	switch t {
	case ThreatconNormal:
		return "NORMAL"
	case ThreatconAlpha:
		return "ALPHA"
	case ThreatconBravo:
		return "BRAVO"
	case ThreatconCharlie:
		return "CHARLIE"
	case ThreatconDelta:
		return "DELTA"
	case ThreatconEmergency:
		return "EMERGENCY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParseThreatcon parses an uppercase level name.
func ParseThreatcon(name string) (Threatcon, error) {
	for level := ThreatconNormal; level <= ThreatconEmergency; level++ {
		if level.String() == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("policy: unknown threat condition %q", name)
}

// threatconTempest maps each threat level to the TEMPEST state it
// requires. The mapping is total over the six levels and
// monotonically non-decreasing in restrictiveness, terminating at
// Lockdown for EMERGENCY.
var threatconTempest = [6]tempest.State{
	ThreatconNormal:    tempest.Disabled,
	ThreatconAlpha:     tempest.Low,
	ThreatconBravo:     tempest.Low,
	ThreatconCharlie:   tempest.High,
	ThreatconDelta:     tempest.High,
	ThreatconEmergency: tempest.Lockdown,
}

// TempestFor returns the TEMPEST state a threat level maps to.
// Undefined levels are an error, never a default.
func TempestFor(level Threatcon) (tempest.State, error) {
	if !level.Valid() {
		return 0, fmt.Errorf("policy: invalid threat condition %d", uint8(level))
	}
	return threatconTempest[level], nil
}
