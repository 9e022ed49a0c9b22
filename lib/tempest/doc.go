// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package tempest tracks a capture device's electromagnetic-security
// (TEMPEST) state. The four states form a total order by increasing
// restrictiveness: Disabled < Low < High < Lockdown.
//
// The state machine itself forbids nothing — every transition between
// defined states is legal. Restriction is the policy gate's job
// (lib/policy); this package's job is to know the state, to keep a
// cached copy when the hardware control is unreadable, and to leave an
// audit event for every transition.
//
// There is deliberately no query-then-act helper. Callers that need a
// state for a policy decision snapshot it once, immediately before the
// decision, via Machine.State or policy.Gate.Authorize — a cached
// value from an earlier query must never gate a capture.
package tempest
