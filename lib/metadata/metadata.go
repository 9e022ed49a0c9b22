// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import "fmt"

// Format identifies the payload encoding of a metadata buffer.
type Format uint8

const (
	// FormatKLV is MISB-style Key-Length-Value binary metadata
	// (ST 0601 UAS Datalink Local Set and related standards).
	FormatKLV Format = iota

	// FormatIRTemp is a raw IR radiometric sample grid awaiting
	// calibration by the radiometric decoder.
	FormatIRTemp

	// FormatTelemetry is free-form platform telemetry.
	FormatTelemetry

	// FormatTiming is a timing-reference packet carrying only its
	// timestamp. Used to discipline fusion when a sensor produces no
	// other metadata.
	FormatTiming
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatKLV:
		return "klv"
	case FormatIRTemp:
		return "ir-temp"
	case FormatTelemetry:
		return "telemetry"
	case FormatTiming:
		return "timing"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// Buffer is one captured metadata packet: the raw payload bytes plus
// the capture timestamp and driver sequence number. The fusion
// synchronizer consults only TimestampNS — the payload stays opaque
// until a format-specific decoder (lib/klv, lib/radiometric) is asked
// to interpret it.
//
// Data is owned by the Buffer. Decoded views (KLV item values) are
// sub-slices of Data and must not be retained after the capture loop
// releases the Buffer.
type Buffer struct {
	// Format tags the payload encoding.
	Format Format

	// Data is the raw packet payload as delivered by the device.
	Data []byte

	// TimestampNS is the monotonic capture timestamp in nanoseconds.
	TimestampNS uint64

	// Sequence is the driver's frame sequence number, used to detect
	// drops. It wraps independently of TimestampNS.
	Sequence uint32
}

// Len returns the payload length in bytes.
func (b *Buffer) Len() int {
	return len(b.Data)
}
