// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package metadata defines the shared data model for captured sensor
// metadata: the format tag, the owned metadata buffer, and the payload
// union consumed by the fusion synchronizer.
//
// A Buffer is created once per captured metadata packet by the device
// I/O layer and is immutable after creation. Parsed views derived from
// a Buffer (KLV items, temperature grids) borrow its backing bytes and
// must be dropped before or together with the Buffer itself.
package metadata
