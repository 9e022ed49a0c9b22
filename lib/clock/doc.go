// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that audit
// timestamps and flush intervals are deterministic under test.
//
// Production code takes a Clock instead of calling time.Now or
// time.NewTicker directly. Real() returns the standard library
// behavior; Fake(start) returns a clock that advances only when the
// test calls Advance, firing any timers that come due.
package clock
