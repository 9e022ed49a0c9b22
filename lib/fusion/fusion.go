// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package fusion

import "github.com/argus-foundation/argus/lib/metadata"

// DefaultToleranceNS is the default pairing tolerance: 50 ms in
// nanoseconds. At 20 fps the inter-frame gap is 50 ms, so a wider
// window would let a frame claim its neighbor's metadata.
const DefaultToleranceNS uint64 = 50_000_000

// Sync pairs a frame with the nearest metadata buffer using the
// default tolerance. See SyncWithin.
func Sync(frameTimestampNS uint64, candidates []metadata.Buffer) (int, bool) {
	return SyncWithin(frameTimestampNS, candidates, DefaultToleranceNS)
}

// SyncWithin returns the index of the candidate whose TimestampNS is
// closest to frameTimestampNS, provided the gap is at most toleranceNS.
// The second return is false when no candidate qualifies: an empty
// candidate list, or a nearest candidate that is still too far away —
// nearest-but-too-far is not a match.
//
// Ties in distance resolve to the earliest-indexed candidate.
func SyncWithin(frameTimestampNS uint64, candidates []metadata.Buffer, toleranceNS uint64) (int, bool) {
	bestIndex := -1
	bestDelta := uint64(0)

	for index := range candidates {
		delta := absDelta(candidates[index].TimestampNS, frameTimestampNS)
		if bestIndex < 0 || delta < bestDelta {
			bestIndex = index
			bestDelta = delta
		}
	}

	if bestIndex < 0 || bestDelta > toleranceNS {
		return -1, false
	}
	return bestIndex, true
}

// absDelta computes |a - b| without signed conversion, safe for the
// full uint64 timestamp range.
func absDelta(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
