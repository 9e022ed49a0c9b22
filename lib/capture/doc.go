// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture implements policy-gated frame acquisition.
//
// A [Session] wraps one device and its TEMPEST machine. Every
// frame-delivery method ([Session.Frame], [Session.Iris],
// [Session.Fused]) takes a [policy.Grant] as its first argument, and a
// Grant can only be minted by [Session.Authorize], which snapshots the
// device's TEMPEST state and runs the capture policy check as a single
// operation. A caller therefore cannot deliver a frame from a state
// checked before a concurrent state change: the check and the delivery
// share one snapshot, and each Grant is consumed by exactly one
// delivery.
//
// Device I/O is behind the [Device] interface; the package owns
// policy enforcement and telemetry, not ioctls. Iris capture is the
// biometric path: the payload is moved into a [secret.Buffer] and the
// device-side copy is zeroed, so biometric bytes never linger on the
// ordinary heap. Fused capture pairs the captured frame with the
// closest-in-time metadata buffer via lib/fusion.
//
// Every acquisition, denial, and drop emits a telemetry event on the
// session's ring.
package capture
