// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package klv

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by Parse for a nil or zero-length buffer.
// This is an invalid-argument condition, distinct from a malformed
// packet: the device layer never delivers empty metadata buffers, so
// an empty input means the caller lost track of a buffer, not that a
// sensor produced a bad packet.
var ErrEmptyInput = errors.New("klv: empty input buffer")

// ParseError reports malformed KLV input. It carries the byte offset
// where parsing failed so the capture loop can log the defect without
// dumping packet contents.
type ParseError struct {
	// Offset is the position in the input buffer where the defect was
	// detected.
	Offset int

	// Reason describes the defect.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("klv: parse error at offset %d: %s", e.Offset, e.Reason)
}

// minItemSize is the smallest possible KLV item: a 16-byte key plus a
// one-byte short-form length (of a zero-length value).
const minItemSize = KeySize + 1

// maxLengthOctets is the maximum number of long-form BER length octets
// accepted. Four octets encode values up to 0xFFFFFFFF; longer length
// fields describe values over 4 GB, which no metadata stream produces,
// so they are rejected as malformed rather than truncated.
const maxLengthOctets = 4

// Parse walks data from offset 0 and decodes consecutive KLV triplets.
//
// Each item is a 16-byte universal label, a BER length, and a value of
// that length. BER short form (high bit clear) encodes the length in
// the low 7 bits of a single byte. Long form (high bit set) encodes a
// count of 1-4 subsequent big-endian length octets. A count over 4, a
// length field running past the buffer, a value running past the
// buffer, or trailing bytes too short to form an item all produce a
// *ParseError — malformed input is rejected whole, never truncated to
// the items that happened to decode.
//
// Returned item values are sub-slices of data. Parse performs no copy
// and no allocation proportional to any length field; a forged length
// costs nothing before the bounds check rejects it.
func Parse(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	// Offsets are tracked as uint64 so position + length cannot wrap
	// even when a length field is near the uint32 maximum.
	bufferLen := uint64(len(data))

	var items []Item
	position := uint64(0)

	for position < bufferLen {
		if bufferLen-position < minItemSize {
			return nil, &ParseError{
				Offset: int(position),
				Reason: fmt.Sprintf("truncated item: %d trailing bytes, need at least %d", bufferLen-position, minItemSize),
			}
		}

		var item Item
		copy(item.Key[:], data[position:position+KeySize])
		position += KeySize

		length, err := decodeLength(data, &position)
		if err != nil {
			return nil, err
		}

		if uint64(length) > bufferLen-position {
			return nil, &ParseError{
				Offset: int(position),
				Reason: fmt.Sprintf("value length %d exceeds %d remaining bytes", length, bufferLen-position),
			}
		}

		item.Length = length
		item.Value = data[position : position+uint64(length)]
		position += uint64(length)

		items = append(items, item)
	}

	return items, nil
}

// decodeLength decodes a BER length field at *position, advancing
// *position past it. The caller has already guaranteed at least one
// byte remains.
func decodeLength(data []byte, position *uint64) (uint32, error) {
	bufferLen := uint64(len(data))

	first := data[*position]
	*position++

	if first&0x80 == 0 {
		// Short form: the low 7 bits are the length.
		return uint32(first), nil
	}

	// Long form: the low 7 bits count the big-endian length octets
	// that follow.
	octets := uint64(first & 0x7F)
	if octets > maxLengthOctets {
		return 0, &ParseError{
			Offset: int(*position - 1),
			Reason: fmt.Sprintf("long-form length uses %d octets, maximum is %d", octets, maxLengthOctets),
		}
	}
	if octets == 0 {
		// BER indefinite length has no meaning inside a bounded
		// metadata buffer.
		return 0, &ParseError{
			Offset: int(*position - 1),
			Reason: "long-form length with zero octets (indefinite length not supported)",
		}
	}
	if octets > bufferLen-*position {
		return 0, &ParseError{
			Offset: int(*position - 1),
			Reason: fmt.Sprintf("long-form length field truncated: need %d octets, %d remain", octets, bufferLen-*position),
		}
	}

	var length uint32
	for index := uint64(0); index < octets; index++ {
		length = length<<8 | uint32(data[*position])
		*position++
	}
	return length, nil
}
