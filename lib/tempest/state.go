// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package tempest

import "fmt"

// State is a device's TEMPEST shielding posture. States are totally
// ordered by restrictiveness; the numeric values are wire constants
// shared with the hardware control and telemetry.
type State uint8

const (
	// Disabled applies no emission shielding.
	Disabled State = 0

	// Low applies baseline shielding.
	Low State = 1

	// High applies full shielding with reduced capture performance.
	High State = 2

	// Lockdown blocks all frame delivery regardless of caller
	// identity or role.
	Lockdown State = 3
)

// Valid reports whether s is one of the four defined states.
func (s State) Valid() bool {
	return s <= Lockdown
}

// String returns the uppercase state name used in profiles and logs.
func (s State) String() string {
	switch s {
	case Disabled:
		return "DISABLED"
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	case Lockdown:
		return "LOCKDOWN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// ParseState parses an uppercase state name.
func ParseState(name string) (State, error) {
	switch name {
	case "DISABLED":
		return Disabled, nil
	case "LOW":
		return Low, nil
	case "HIGH":
		return High, nil
	case "LOCKDOWN":
		return Lockdown, nil
	default:
		return 0, fmt.Errorf("tempest: unknown state %q", name)
	}
}
