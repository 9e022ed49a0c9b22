// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package fusion

import (
	"testing"

	"github.com/argus-foundation/argus/lib/metadata"
)

// buffersAt builds metadata buffers with the given timestamps. The
// payload is irrelevant to pairing and left empty.
func buffersAt(timestamps ...uint64) []metadata.Buffer {
	buffers := make([]metadata.Buffer, len(timestamps))
	for index, ts := range timestamps {
		buffers[index] = metadata.Buffer{
			Format:      metadata.FormatTiming,
			TimestampNS: ts,
			Sequence:    uint32(index),
		}
	}
	return buffers
}

func TestSyncToleranceBoundary(t *testing.T) {
	const second = 1_000_000_000
	candidates := buffersAt(
		1*second,
		1*second+100_000_000,
		1*second+200_000_000,
		1*second+300_000_000,
		1*second+400_000_000,
	)

	tests := []struct {
		name      string
		frameTS   uint64
		wantIndex int
		wantMatch bool
	}{
		{"exact match", 1*second + 200_000_000, 2, true},
		{"10ms delta", 1*second + 210_000_000, 2, true},
		{"40ms delta picks nearer neighbor", 1*second + 140_000_000, 1, true},
		{"700ms exceeds tolerance", second / 2, -1, false},
		{"exactly at tolerance", 1*second + 450_000_000, 4, true},
		{"1ns past tolerance", 1*second + 450_000_001, -1, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			index, matched := Sync(test.frameTS, candidates)
			if matched != test.wantMatch || index != test.wantIndex {
				t.Errorf("Sync(%d) = (%d, %v), want (%d, %v)",
					test.frameTS, index, matched, test.wantIndex, test.wantMatch)
			}
		})
	}
}

func TestSyncEmptyCandidates(t *testing.T) {
	if index, matched := Sync(1_000_000_000, nil); matched || index != -1 {
		t.Errorf("Sync with nil candidates = (%d, %v), want (-1, false)", index, matched)
	}
	if index, matched := Sync(1_000_000_000, []metadata.Buffer{}); matched || index != -1 {
		t.Errorf("Sync with empty candidates = (%d, %v), want (-1, false)", index, matched)
	}
}

func TestSyncTieResolvesToEarliestIndex(t *testing.T) {
	// Two candidates equidistant from the frame: 10ms before and
	// 10ms after.
	candidates := buffersAt(990_000_000, 1_010_000_000)
	index, matched := Sync(1_000_000_000, candidates)
	if !matched || index != 0 {
		t.Errorf("tie: got (%d, %v), want (0, true)", index, matched)
	}
}

func TestSyncCustomTolerance(t *testing.T) {
	candidates := buffersAt(1_000_000_000)

	// 200ms gap, 250ms tolerance: match.
	if index, matched := SyncWithin(1_200_000_000, candidates, 250_000_000); !matched || index != 0 {
		t.Errorf("wide tolerance: got (%d, %v), want (0, true)", index, matched)
	}

	// Same gap, zero tolerance: only exact timestamps match.
	if _, matched := SyncWithin(1_200_000_000, candidates, 0); matched {
		t.Error("zero tolerance matched a 200ms gap")
	}
	if index, matched := SyncWithin(1_000_000_000, candidates, 0); !matched || index != 0 {
		t.Errorf("zero tolerance exact: got (%d, %v), want (0, true)", index, matched)
	}
}

func TestSyncFrameBeforeAllCandidates(t *testing.T) {
	candidates := buffersAt(5_000_000_000, 6_000_000_000)
	if _, matched := Sync(1_000_000_000, candidates); matched {
		t.Error("matched a candidate 4 seconds away")
	}
}
