// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

const irisProfile = `id: "046d:0893"
vendor: Lumina
model: IrisCam Pro
role: iris_scanner
classification: SECRET_BIOMETRIC
layer: 4
tempest_ctrl_id: 0x9a0903
pixel_format: GREY
width: 1280
height: 720
fps: 30
`

func TestLoadFile(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "iris.yaml", irisProfile)

	prof, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if prof.ID != "046d:0893" {
		t.Errorf("ID = %q", prof.ID)
	}
	if prof.Role != "iris_scanner" {
		t.Errorf("Role = %q", prof.Role)
	}
	if prof.Classification != "SECRET_BIOMETRIC" {
		t.Errorf("Classification = %q", prof.Classification)
	}
	if prof.Layer != 4 {
		t.Errorf("Layer = %d", prof.Layer)
	}
	if prof.TempestControlID != 0x9a0903 {
		t.Errorf("TempestControlID = %#x", prof.TempestControlID)
	}
	if prof.Width != 1280 || prof.Height != 720 || prof.FPS != 30 {
		t.Errorf("format = %dx%d@%d", prof.Width, prof.Height, prof.FPS)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "webcam.yaml", "id: \"dead:beef\"\nrole: generic_webcam\n")

	prof, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if prof.Layer != 3 {
		t.Errorf("default layer = %d, want 3", prof.Layer)
	}
	if prof.Classification != "UNCLASSIFIED" {
		t.Errorf("default classification = %q", prof.Classification)
	}
	if prof.TempestControlID != DefaultTempestControlID {
		t.Errorf("default tempest control = %#x", prof.TempestControlID)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "typo.yaml", "id: \"1:2\"\nclasification: SECRET\n")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("misspelled key accepted")
	}
}

func TestLoadFileRejectsMissingID(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "anon.yaml", "role: generic_webcam\n")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("profile without id accepted")
	}
}

func TestLoadFileRejectsBadLayer(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "bad.yaml", "id: \"1:2\"\nlayer: 12\n")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("layer 12 accepted")
	}
}

func TestLoadFileRejectsResolutionAboveCeiling(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "big.yaml",
		"id: \"1:2\"\nlayer: 2\nwidth: 1920\nheight: 1080\n")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("1080p at layer 2 accepted")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "iris.yaml", irisProfile)
	writeProfile(t, dir, "webcam.yml", "id: \"dead:beef\"\nrole: generic_webcam\n")
	writeProfile(t, dir, "notes.txt", "not a profile")

	store, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("loaded %d profiles, want 2", store.Len())
	}

	prof, found := store.Lookup("046d:0893")
	if !found {
		t.Fatal("iris profile not found")
	}
	if prof.Model != "IrisCam Pro" {
		t.Errorf("Model = %q", prof.Model)
	}

	if _, found := store.Lookup("0000:0000"); found {
		t.Error("unregistered ID found")
	}

	ids := store.IDs()
	if len(ids) != 2 || ids[0] != "046d:0893" || ids[1] != "dead:beef" {
		t.Errorf("IDs = %v", ids)
	}
}

func TestLoadDirRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a.yaml", "id: \"1:2\"\n")
	writeProfile(t, dir, "b.yaml", "id: \"1:2\"\n")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("duplicate device id accepted")
	}
}

func TestLookupOrDefault(t *testing.T) {
	store, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	prof := store.LookupOrDefault("aaaa:bbbb")
	if prof.ID != "aaaa:bbbb" {
		t.Errorf("ID = %q", prof.ID)
	}
	if prof.Layer != 3 || prof.Classification != "UNCLASSIFIED" {
		t.Errorf("defaults not applied: %+v", prof)
	}
}
