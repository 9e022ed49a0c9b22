// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

// Package klv decodes MISB-style KLV (Key-Length-Value) binary
// metadata: a sequence of 16-byte SMPTE universal labels, each followed
// by a BER-encoded length and that many value bytes.
//
// The parser is written for untrusted input. Every length field is
// bounds-checked against the remaining buffer with 64-bit arithmetic
// before the value is accepted, so a forged length near the uint32
// maximum cannot wrap the check. Malformed input is reported as a
// *ParseError carrying the byte offset of the defect — the parser never
// truncates silently and never reads past the buffer.
//
// Parsed items borrow their value bytes from the input buffer. An Item
// is a (key, length, sub-slice) view with no allocation of its own;
// callers that need a value beyond the buffer's lifetime must copy it
// explicitly.
package klv
