// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package fusion pairs video frames with companion metadata packets by
// timestamp. Given a frame's capture timestamp and the recently
// captured metadata buffers, Sync selects the buffer whose timestamp is
// nearest the frame's — but only when the gap is inside a bounded
// tolerance. A frame with no metadata close enough goes unpaired rather
// than paired wrongly.
//
// Sync is a pure function over timestamps. It holds no state, blocks on
// nothing, and inspects no payload bytes, so it pairs any metadata
// format (KLV, IR temperature, telemetry, timing) uniformly.
package fusion
