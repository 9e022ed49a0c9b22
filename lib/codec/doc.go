// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the single CBOR configuration point for Argus.
// Telemetry sinks, forensic export chunks, and any other binary
// serialization go through this package so every producer emits the
// same deterministic encoding and no consumer imports fxamacker/cbor
// directly.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer widths, no indefinite-length items.
// Identical logical values always produce identical bytes, which is
// what makes export-chunk digests reproducible.
package codec
