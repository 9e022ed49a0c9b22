// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"

	"github.com/argus-foundation/argus/lib/tempest"
)

// MaxLayer is the highest defined capture layer.
const MaxLayer = 8

// LayerPolicy is the fixed per-layer record: the resolution ceiling a
// layer may capture at and the minimum TEMPEST state it requires.
// Layers 0 and 1 (hardware and drivers) permit no direct capture, so
// their ceilings are zero.
type LayerPolicy struct {
	Layer      uint32
	MaxWidth   uint32
	MaxHeight  uint32
	MinTempest tempest.State
}

// layerPolicies is the static policy table, total over layers 0-8.
var layerPolicies = [MaxLayer + 1]LayerPolicy{
	{Layer: 0, MaxWidth: 0, MaxHeight: 0, MinTempest: tempest.Disabled},
	{Layer: 1, MaxWidth: 0, MaxHeight: 0, MinTempest: tempest.Disabled},
	{Layer: 2, MaxWidth: 640, MaxHeight: 480, MinTempest: tempest.Disabled},
	{Layer: 3, MaxWidth: 1280, MaxHeight: 720, MinTempest: tempest.Disabled},
	{Layer: 4, MaxWidth: 1920, MaxHeight: 1080, MinTempest: tempest.Low},
	{Layer: 5, MaxWidth: 1920, MaxHeight: 1080, MinTempest: tempest.Low},
	{Layer: 6, MaxWidth: 1920, MaxHeight: 1080, MinTempest: tempest.Low},
	{Layer: 7, MaxWidth: 3840, MaxHeight: 2160, MinTempest: tempest.High},
	{Layer: 8, MaxWidth: 3840, MaxHeight: 2160, MinTempest: tempest.High},
}

// LayerPolicyFor returns the policy record for a layer. Layers
// outside 0-8 are an invalid-argument error — never a default record.
func LayerPolicyFor(layer uint32) (LayerPolicy, error) {
	if layer > MaxLayer {
		return LayerPolicy{}, fmt.Errorf("policy: layer %d out of range 0-%d", layer, MaxLayer)
	}
	return layerPolicies[layer], nil
}
