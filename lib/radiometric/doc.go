// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package radiometric converts raw IR sensor sample grids into
// calibrated temperature maps. The conversion is a per-pixel affine
// transform (temperature = c1*raw + c2) clamped to the sensor's
// physical range and stored fixed-point at 0.01 K resolution.
//
// Clamping happens before quantization: 500 K scales to 50,000, which
// fits uint16 with margin, so a clamped value can never overflow the
// output grid regardless of calibration constants.
package radiometric
