// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/argus-foundation/argus/lib/policy"
)

// DefaultTempestControlID is the control ID assumed when a profile
// does not name one.
const DefaultTempestControlID = 0x9a0902

// Profile describes one device's identity, security posture, and
// capture format.
type Profile struct {
	// ID is the stable device identifier, typically USB "VID:PID".
	ID     string `yaml:"id"`
	Vendor string `yaml:"vendor"`
	Model  string `yaml:"model"`

	// Role selects the minimum clearance via the policy role table.
	Role string `yaml:"role"`

	// Classification is the device's data classification string.
	Classification string `yaml:"classification"`

	// Layer is the capture layer, 0-8.
	Layer uint32 `yaml:"layer"`

	// TempestControlID is the hardware control carrying the TEMPEST
	// state.
	TempestControlID uint32 `yaml:"tempest_ctrl_id"`

	PixelFormat string `yaml:"pixel_format"`
	Width       uint32 `yaml:"width"`
	Height      uint32 `yaml:"height"`
	FPS         uint32 `yaml:"fps"`
}

// Default returns a profile with the restrictive defaults applied to
// fields a file omits: sensor layer, UNCLASSIFIED, the standard
// TEMPEST control.
func Default() Profile {
	return Profile{
		Layer:            3,
		TempestControlID: DefaultTempestControlID,
		Classification:   "UNCLASSIFIED",
	}
}

// Validate checks the profile's policy-relevant fields: the ID must be
// present, the layer must exist in the policy table, and the declared
// resolution must fit the layer's ceiling.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile: missing device id")
	}
	layerPolicy, err := policy.LayerPolicyFor(p.Layer)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.ID, err)
	}
	if p.Width > layerPolicy.MaxWidth || p.Height > layerPolicy.MaxHeight {
		return fmt.Errorf("profile %s: %dx%d exceeds layer %d ceiling %dx%d",
			p.ID, p.Width, p.Height, p.Layer, layerPolicy.MaxWidth, layerPolicy.MaxHeight)
	}
	return nil
}

// LoadFile reads and validates a single profile. Omitted fields take
// the Default values; unknown keys are an error.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return parse(data, path)
}

func parse(data []byte, path string) (Profile, error) {
	prof := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&prof); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	if err := prof.Validate(); err != nil {
		return Profile{}, err
	}
	return prof, nil
}

// Store holds loaded profiles indexed by device ID.
type Store struct {
	byID map[string]Profile
}

// LoadDir loads every .yaml file in dir into a Store. A duplicate
// device ID across files is an error — two profiles silently shadowing
// each other is exactly the kind of ambiguity a security posture file
// must not have.
func LoadDir(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	store := &Store{byID: make(map[string]Profile)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		prof, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if existing, duplicate := store.byID[prof.ID]; duplicate {
			return nil, fmt.Errorf("profile %s: device id %q already defined (vendor %s)",
				name, prof.ID, existing.Vendor)
		}
		store.byID[prof.ID] = prof
	}
	return store, nil
}

// Lookup returns the profile for a device ID.
func (s *Store) Lookup(deviceID string) (Profile, bool) {
	prof, found := s.byID[deviceID]
	return prof, found
}

// LookupOrDefault returns the profile for a device ID, or the Default
// profile (with the ID filled in) when none is registered.
func (s *Store) LookupOrDefault(deviceID string) Profile {
	if prof, found := s.byID[deviceID]; found {
		return prof
	}
	prof := Default()
	prof.ID = deviceID
	return prof
}

// Len returns the number of loaded profiles.
func (s *Store) Len() int { return len(s.byID) }

// IDs returns the registered device IDs in sorted order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
