// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// argus-inspect is the operator tool for examining Argus data and
// policy offline.
//
// Subcommands:
//
//	klv FILE        parse a raw KLV metadata dump and print its items
//	events FILE     print a telemetry event file (--chunk for sealed exports)
//	policy          evaluate threatcon, layer, and clearance decisions
//	profiles DIR    load a profile directory and print what it binds
//
// The policy subcommand reads the session clearance from
// ARGUS_CLEARANCE, the same source capture sessions use, so an
// operator can answer "would this capture be allowed here" without a
// device attached.
package main
