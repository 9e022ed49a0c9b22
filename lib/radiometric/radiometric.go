// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package radiometric

import (
	"fmt"
	"math"
)

// Physical sensor range in Kelvin. Values outside this range are
// clamped — microbolometer readout outside [0, 500] K is noise or a
// calibration fault, not a measurement.
const (
	MinKelvin = 0.0
	MaxKelvin = 500.0
)

// Scale is the fixed-point scale factor of the output grid: stored
// values are Kelvin multiplied by Scale (0.01 K resolution).
const Scale = 100

// Default scene constants. Profiles may override per device.
const (
	// DefaultEmissivity suits most natural scene content.
	DefaultEmissivity = 0.95

	// DefaultAmbientKelvin is 20 °C, the reference ambient used when
	// no environmental sensor is attached.
	DefaultAmbientKelvin = 293.15
)

// Calibration holds the affine calibration constants for a sensor:
// temperature_kelvin = C1*raw + C2.
type Calibration struct {
	C1 float32
	C2 float32
}

// Frame is a decoded radiometric frame: a width×height grid of
// temperatures stored as Kelvin×Scale in uint16, row-major. The grid
// is owned by the caller that requested the decode.
type Frame struct {
	// TempMap holds width*height fixed-point temperatures, row-major.
	TempMap []uint16

	Width  uint32
	Height uint32

	// Emissivity and AmbientKelvin record the scene constants in
	// effect at decode time.
	Emissivity    float32
	AmbientKelvin float32

	// Calibration records the constants the grid was decoded with.
	Calibration Calibration

	// TimestampNS is the capture timestamp of the source samples.
	TimestampNS uint64
}

// At returns the fixed-point temperature at (x, y).
func (f *Frame) At(x, y uint32) uint16 {
	return f.TempMap[y*f.Width+x]
}

// KelvinAt returns the temperature at (x, y) in Kelvin.
func (f *Frame) KelvinAt(x, y uint32) float64 {
	return float64(f.At(x, y)) / Scale
}

// Decode converts a raw sample grid into a temperature frame. The raw
// slice must hold exactly width*height samples. Each sample is mapped
// through the affine calibration, clamped to [MinKelvin, MaxKelvin],
// and then quantized to Kelvin×Scale.
//
// Decode always succeeds on well-shaped input; the only error is a
// grid/dimension mismatch or empty input.
func Decode(raw []uint16, width, height uint32, cal Calibration, timestampNS uint64) (*Frame, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("radiometric: zero dimension %dx%d", width, height)
	}
	pixelCount := uint64(width) * uint64(height)
	if uint64(len(raw)) != pixelCount {
		return nil, fmt.Errorf("radiometric: %d samples for %dx%d grid, want %d", len(raw), width, height, pixelCount)
	}

	tempMap := make([]uint16, pixelCount)
	c1 := float64(cal.C1)
	c2 := float64(cal.C2)

	for index, sample := range raw {
		kelvin := c1*float64(sample) + c2

		// Clamp before quantizing so the scaled value stays within
		// uint16 by construction.
		if kelvin < MinKelvin {
			kelvin = MinKelvin
		}
		if kelvin > MaxKelvin {
			kelvin = MaxKelvin
		}

		tempMap[index] = uint16(math.Round(kelvin * Scale))
	}

	return &Frame{
		TempMap:       tempMap,
		Width:         width,
		Height:        height,
		Emissivity:    DefaultEmissivity,
		AmbientKelvin: DefaultAmbientKelvin,
		Calibration:   cal,
		TimestampNS:   timestampNS,
	}, nil
}
