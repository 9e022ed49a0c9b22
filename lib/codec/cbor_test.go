// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"io"
	"testing"
)

type sample struct {
	Name  string `cbor:"name"`
	Value uint32 `cbor:"value"`
	Data  []byte `cbor:"data,omitempty"`
}

func TestMarshalDeterministic(t *testing.T) {
	value := sample{Name: "tempest-transition", Value: 3, Data: []byte{1, 2}}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("equal values produced different encodings")
	}

	var decoded sample
	if err := Unmarshal(first, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != "tempest-transition" || decoded.Value != 3 || !bytes.Equal(decoded.Data, []byte{1, 2}) {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestStreamSequence(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for index := uint32(0); index < 3; index++ {
		if err := encoder.Encode(sample{Name: "event", Value: index}); err != nil {
			t.Fatalf("Encode %d: %v", index, err)
		}
	}

	decoder := NewDecoder(&buffer)
	var count uint32
	for {
		var decoded sample
		err := decoder.Decode(&decoded)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded.Value != count {
			t.Errorf("item %d decoded value %d", count, decoded.Value)
		}
		count++
	}
	if count != 3 {
		t.Errorf("decoded %d items, want 3", count)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	encoded, err := Marshal(map[string]any{"name": "x", "value": 7, "future": true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sample
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if decoded.Name != "x" || decoded.Value != 7 {
		t.Errorf("decoded %+v", decoded)
	}
}
