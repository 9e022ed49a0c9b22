// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy decides whether capture may proceed. It maps the
// externally-set threat condition (THREATCON) to a required TEMPEST
// state, enforces per-layer resolution and shielding floors, checks
// session clearance against device role and classification, and issues
// the capture Grant that every frame-delivery path must present.
//
// All mutable policy state — the current threat condition and the
// session clearance — lives in an explicit Gate object passed to its
// consumers, never in package globals. Tests construct one Gate per
// case and race nothing.
//
// Denials are ordinary values, not faults. A Lockdown device or an
// under-cleared session is expected operational behavior; callers
// branch on the Decision (or errors.Is(err, ErrDenied)) and move on.
// Faults — a broken hardware control, an out-of-range layer — are
// errors of other types.
package policy
