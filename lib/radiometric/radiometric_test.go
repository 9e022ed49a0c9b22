// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package radiometric

import "testing"

func TestDecodeCalibration(t *testing.T) {
	cal := Calibration{C1: 0.1, C2: 200.0}

	tests := []struct {
		raw  uint16
		want uint16
	}{
		{1000, 30000}, // 0.1*1000 + 200 = 300.0 K
		{1990, 39900}, // 0.1*1990 + 200 = 399.0 K
		{0, 20000},    // bias only: 200.0 K
	}

	for _, test := range tests {
		frame, err := Decode([]uint16{test.raw}, 1, 1, cal, 0)
		if err != nil {
			t.Fatalf("Decode(%d): %v", test.raw, err)
		}
		if got := frame.At(0, 0); got != test.want {
			t.Errorf("raw %d: got %d, want %d", test.raw, got, test.want)
		}
	}
}

func TestDecodeClampsToSensorRange(t *testing.T) {
	// c1=1, c2=0: raw values map directly to Kelvin, so 65535 is far
	// beyond the 500 K ceiling.
	frame, err := Decode([]uint16{65535}, 1, 1, Calibration{C1: 1, C2: 0}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := frame.At(0, 0); got != MaxKelvin*Scale {
		t.Errorf("above range: got %d, want %d", got, uint16(MaxKelvin*Scale))
	}

	// Negative calibration bias drives the temperature below zero.
	frame, err = Decode([]uint16{10}, 1, 1, Calibration{C1: 0.1, C2: -50}, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := frame.At(0, 0); got != 0 {
		t.Errorf("below range: got %d, want 0", got)
	}
}

func TestDecodeGrid(t *testing.T) {
	raw := []uint16{100, 200, 300, 400, 500, 600}
	frame, err := Decode(raw, 3, 2, Calibration{C1: 0.1, C2: 250}, 42)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if frame.Width != 3 || frame.Height != 2 {
		t.Errorf("dimensions %dx%d, want 3x2", frame.Width, frame.Height)
	}
	if frame.TimestampNS != 42 {
		t.Errorf("timestamp %d, want 42", frame.TimestampNS)
	}
	if frame.Emissivity != DefaultEmissivity {
		t.Errorf("emissivity %v, want %v", frame.Emissivity, DefaultEmissivity)
	}
	if frame.AmbientKelvin != DefaultAmbientKelvin {
		t.Errorf("ambient %v, want %v", frame.AmbientKelvin, DefaultAmbientKelvin)
	}

	// Row-major layout: (x=2, y=1) is the last sample.
	// 0.1*600 + 250 = 310.0 K.
	if got := frame.At(2, 1); got != 31000 {
		t.Errorf("At(2,1) = %d, want 31000", got)
	}
	if got := frame.KelvinAt(2, 1); got != 310.0 {
		t.Errorf("KelvinAt(2,1) = %v, want 310.0", got)
	}
}

func TestDecodeShapeErrors(t *testing.T) {
	if _, err := Decode([]uint16{1, 2, 3}, 2, 2, Calibration{}, 0); err == nil {
		t.Error("sample count mismatch accepted")
	}
	if _, err := Decode(nil, 0, 4, Calibration{}, 0); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := Decode(nil, 4, 0, Calibration{}, 0); err == nil {
		t.Error("zero height accepted")
	}
}
