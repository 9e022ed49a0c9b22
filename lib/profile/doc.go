// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package profile loads device profiles from YAML files.
//
// A profile binds a physical device (by USB VID:PID or another stable
// identifier) to its security posture: role, classification, capture
// layer, TEMPEST control ID, and the video format it is permitted to
// run at. Profiles are the bridge between hardware discovery and the
// policy gate — a device with no profile gets the defaults, which are
// the most restrictive useful ones (sensor layer, UNCLASSIFIED, the
// standard TEMPEST control).
//
// [LoadFile] reads one profile; [LoadDir] reads every .yaml file in a
// directory into a [Store] for lookup by device ID. Unknown YAML keys
// are rejected so a typo in a security-relevant field cannot silently
// become a default.
package profile
