// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package klv

import (
	"bytes"
	"encoding/hex"
)

// KeySize is the size of a SMPTE universal label in bytes.
const KeySize = 16

// Key is a 16-byte universal label (BER-OID style). Keys are compared
// by exact byte equality; no OID structure is interpreted.
type Key [KeySize]byte

// String returns the hex encoding of the key, for logs and dumps.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Well-known MISB universal labels. The tag set here is deliberately
// small: Argus routes whole local sets to consumers and only needs the
// labels it dispatches on.
var (
	// KeyUASDatalinkLS is the MISB ST 0601 UAS Datalink Local Set.
	KeyUASDatalinkLS = Key{
		0x06, 0x0E, 0x2B, 0x34, 0x02, 0x0B, 0x01, 0x01,
		0x0E, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00,
	}

	// KeySensorLatitude is the sensor geographic latitude element.
	KeySensorLatitude = Key{
		0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x02, 0x01, 0x02, 0x04, 0x02, 0x00,
	}

	// KeySensorLongitude is the sensor geographic longitude element.
	KeySensorLongitude = Key{
		0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x02, 0x01, 0x02, 0x04, 0x04, 0x00,
	}

	// KeySensorAltitude is the sensor true altitude element.
	KeySensorAltitude = Key{
		0x06, 0x0E, 0x2B, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x02, 0x01, 0x02, 0x06, 0x02, 0x00,
	}
)

// Item is one parsed KLV triplet. Value is a sub-slice of the buffer
// given to Parse — a borrowed view, not a copy. It must not be mutated
// and must not outlive the parsed buffer.
type Item struct {
	// Key is the item's 16-byte universal label.
	Key Key

	// Length is the decoded BER length. Always equal to len(Value).
	Length uint32

	// Value is the item payload, borrowed from the parse input.
	Value []byte
}

// FindItem returns the first item whose key equals key. Later items
// with the same key are shadowed — first match wins, mirroring how
// local-set receivers resolve duplicate tags. The second return is
// false when no item matches; absence is not an error.
func FindItem(items []Item, key Key) (Item, bool) {
	for _, item := range items {
		if bytes.Equal(item.Key[:], key[:]) {
			return item, true
		}
	}
	return Item{}, false
}
