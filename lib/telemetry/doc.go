// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry records security-relevant events from the capture
// plane: TEMPEST transitions, policy violations, frame acquisition,
// biometric capture. Producers emit into a fixed-size in-memory ring;
// a flusher drains the ring into a sink (CBOR file or SQLite), and
// drained batches can be sealed into forensic export chunks.
//
// The ring never blocks a producer. When it is full the oldest events
// are overwritten and counted as dropped — a capture path must not
// stall because the audit trail fell behind. TEMPEST transition events
// are the exception in spirit: they are emitted synchronously at the
// transition site precisely so a transition is recorded even when
// everything downstream is wedged.
//
// Export chunks carry a BLAKE3 digest of their canonical CBOR payload
// and a signature slot filled by a Signer. The TPM-backed signer is
// hardware-delegated and out of tree; Unsigned is the in-tree
// implementation.
package telemetry
