// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for sensitive capture
// payloads such as iris-scan frames and biometric templates.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped. Because the memory lives
// outside the Go heap, the garbage collector cannot copy or relocate
// it, guaranteeing biometric material does not persist after release.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//
// Access via [Buffer.Bytes] (slice into the mmap region, valid only
// while the buffer is open). There is deliberately no String method
// and the buffer does not implement any marshaling interface: the only
// way to move the contents onto the ordinary heap is the explicit
// [Buffer.Declassify] call, which keeps accidental export paths
// (logging, serialization, fmt verbs) from leaking frame data. After
// Close, any access panics. Close is idempotent.
//
// Depends on golang.org/x/sys/unix. Imported by lib/capture for iris
// frame delivery.
package secret
