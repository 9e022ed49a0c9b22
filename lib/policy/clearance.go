// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"os"
	"strings"
)

// Clearance is a session's access level, totally ordered.
type Clearance uint8

const (
	ClearanceNone Clearance = iota
	ClearanceUnclassified
	ClearanceConfidential
	ClearanceSecret
	ClearanceTopSecret
)

// String returns the clearance name.
func (c Clearance) String() string {
	switch c {
	case ClearanceNone:
		return "NONE"
	case ClearanceUnclassified:
		return "UNCLASSIFIED"
	case ClearanceConfidential:
		return "CONFIDENTIAL"
	case ClearanceSecret:
		return "SECRET"
	case ClearanceTopSecret:
		return "TOP_SECRET"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(c))
	}
}

// ClassifyString maps a classification string to a clearance tier by
// substring containment, checked most-restrictive-first. Order
// matters: "TOP_SECRET_BIOMETRIC" contains both "TOP_SECRET" and
// "SECRET", and must resolve to the higher tier, so TopSecret is
// checked before Secret, Secret before Confidential, and so on. A
// string matching no tier maps to None.
func ClassifyString(classification string) Clearance {
	switch {
	case strings.Contains(classification, "TOP_SECRET"),
		strings.Contains(classification, "TOP SECRET"):
		return ClearanceTopSecret
	case strings.Contains(classification, "SECRET"):
		return ClearanceSecret
	case strings.Contains(classification, "CONFIDENTIAL"):
		return ClearanceConfidential
	case strings.Contains(classification, "UNCLASSIFIED"):
		return ClearanceUnclassified
	default:
		return ClearanceNone
	}
}

// ClearanceEnv is the environment variable holding the session's
// clearance string.
const ClearanceEnv = "ARGUS_CLEARANCE"

// ClearanceFromEnv reads the session clearance from ClearanceEnv. An
// unset variable means Unclassified; a set but unrecognized value
// means None. Call once at session setup and pass the result into the
// Gate — the Gate caches it for the session's lifetime.
func ClearanceFromEnv() Clearance {
	value, present := os.LookupEnv(ClearanceEnv)
	if !present {
		return ClearanceUnclassified
	}
	return ClassifyString(value)
}

// roleMinimum is the minimum clearance each known device role
// demands, independent of the data classification in play.
var roleMinimum = map[string]Clearance{
	"generic_webcam": ClearanceUnclassified,
	"ir_sensor":      ClearanceConfidential,
	"iris_scanner":   ClearanceSecret,
	"tempest_cam":    ClearanceTopSecret,
}

// RoleMinimum returns the minimum clearance required for a device
// role. Unknown roles default to Unclassified — an unrecognized role
// gets the floor, not a free pass to classified tiers.
func RoleMinimum(role string) Clearance {
	if minimum, known := roleMinimum[role]; known {
		return minimum
	}
	return ClearanceUnclassified
}
