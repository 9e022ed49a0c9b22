// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/argus-foundation/argus/lib/klv"
	"github.com/argus-foundation/argus/lib/policy"
	"github.com/argus-foundation/argus/lib/profile"
	"github.com/argus-foundation/argus/lib/telemetry"
	"github.com/argus-foundation/argus/lib/tempest"
	"github.com/argus-foundation/argus/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("no subcommand")
	}

	switch args[0] {
	case "--version":
		fmt.Printf("argus-inspect %s\n", version.Info())
		return nil
	case "--help", "-h", "help":
		printUsage()
		return nil
	case "klv":
		return runKLV(args[1:])
	case "events":
		return runEvents(args[1:])
	case "policy":
		return runPolicy(args[1:])
	case "profiles":
		return runProfiles(args[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `usage: argus-inspect <subcommand> [flags]

subcommands:
  klv FILE        parse a raw KLV metadata dump and print its items
  events FILE     print a telemetry event file (--chunk for sealed exports)
  policy          evaluate threatcon, layer, and clearance decisions
  profiles DIR    load a profile directory and print what it binds
`)
}

func runKLV(args []string) error {
	flagSet := pflag.NewFlagSet("klv", pflag.ContinueOnError)
	valueBytes := flagSet.Int("value-bytes", 16, "max payload bytes to print per item")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("klv: expected exactly one file argument")
	}

	data, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return err
	}

	items, err := klv.Parse(data)
	if err != nil {
		return fmt.Errorf("klv: %w", err)
	}

	fmt.Printf("%d items, %d bytes\n", len(items), len(data))
	for index, item := range items {
		preview := item.Value
		truncated := ""
		if len(preview) > *valueBytes {
			preview = preview[:*valueBytes]
			truncated = "..."
		}
		fmt.Printf("%3d  key=%s  len=%-6d  %x%s\n",
			index, item.Key, item.Length, preview, truncated)
	}
	return nil
}

func runEvents(args []string) error {
	flagSet := pflag.NewFlagSet("events", pflag.ContinueOnError)
	chunk := flagSet.Bool("chunk", false, "treat the file as a sealed export chunk")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("events: expected exactly one file argument")
	}
	path := flagSet.Arg(0)

	var events []telemetry.Event
	if *chunk {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sealed, err := telemetry.DecodeChunk(data)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		events, err = telemetry.OpenChunk(sealed)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		fmt.Printf("chunk: %d events, %s, digest %x\n",
			sealed.Count, sealed.Compression, sealed.Digest[:8])
	} else {
		var err error
		events, err = telemetry.ReadEventFile(path)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
	}

	for _, event := range events {
		fmt.Printf("%d  dev=%d  %-18s  %-8s  aux=%#x  layer=%d",
			event.TimestampNS, event.DeviceID, event.Type, event.Severity,
			event.Aux, event.Layer)
		if event.Type == telemetry.EventTempestTransition {
			old, updated := telemetry.UnpackStatePair(event.Aux)
			fmt.Printf("  (%s -> %s)", tempest.State(old), tempest.State(updated))
		}
		fmt.Println()
	}
	return nil
}

func runPolicy(args []string) error {
	flagSet := pflag.NewFlagSet("policy", pflag.ContinueOnError)
	threatconName := flagSet.String("threatcon", "NORMAL", "threat condition (NORMAL..EMERGENCY)")
	layer := flagSet.Uint32("layer", 3, "capture layer (0-8)")
	role := flagSet.String("role", "generic_webcam", "device role")
	classification := flagSet.String("classification", "UNCLASSIFIED", "data classification string")
	stateName := flagSet.String("state", "", "TEMPEST state to evaluate (default: the threatcon mapping)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	level, err := policy.ParseThreatcon(*threatconName)
	if err != nil {
		return err
	}
	state, err := policy.TempestFor(level)
	if err != nil {
		return err
	}
	if *stateName != "" {
		state, err = tempest.ParseState(*stateName)
		if err != nil {
			return err
		}
	}

	layerPolicy, err := policy.LayerPolicyFor(*layer)
	if err != nil {
		return err
	}

	clearance := policy.ClearanceFromEnv()
	gate, err := policy.NewGate(policy.Config{Clearance: clearance, Threatcon: level})
	if err != nil {
		return err
	}

	fmt.Printf("threatcon:   %s -> tempest %s\n", level, state)
	fmt.Printf("capture:     %s\n", policy.Check(state))
	fmt.Printf("layer %d:     ceiling %dx%d, min tempest %s\n",
		layerPolicy.Layer, layerPolicy.MaxWidth, layerPolicy.MaxHeight, layerPolicy.MinTempest)
	layerDecision, err := gate.LayerCheck(*layer, state)
	if err != nil {
		return err
	}
	fmt.Printf("layer check: %s\n", layerDecision)
	fmt.Printf("clearance:   held %s, role %q needs %s, classification %q is %s -> %s\n",
		clearance, *role, policy.RoleMinimum(*role),
		*classification, policy.ClassifyString(*classification),
		gate.CheckClearance(*role, *classification))
	return nil
}

func runProfiles(args []string) error {
	flagSet := pflag.NewFlagSet("profiles", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("profiles: expected exactly one directory argument")
	}

	store, err := profile.LoadDir(flagSet.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("%d profiles\n", store.Len())
	for _, id := range store.IDs() {
		prof, _ := store.Lookup(id)
		fmt.Printf("%-12s  %s %s  role=%s  class=%s  L%d  %dx%d@%d  tempest=%#x\n",
			prof.ID, prof.Vendor, prof.Model, prof.Role, prof.Classification,
			prof.Layer, prof.Width, prof.Height, prof.FPS, prof.TempestControlID)
	}
	return nil
}
