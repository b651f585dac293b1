// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

// Mode selects the optional wire-format features of one encode or
// decode call. It is a plain value: every writer and reader copies it
// at construction and never observes mutation mid-pass. Encoder and
// decoder must agree on the Mode or the stream is unreadable.
//
// The zero value is the default mode: no deduplication, fixed-width
// integers as raw little-endian bytes.
type Mode struct {
	// UseDedup activates the two-pass string deduplication protocol
	// and the table-prefixed wire layout.
	UseDedup bool

	// FixedSizeUseVarint encodes fixed-width integer fields (16, 32,
	// and 64 bit) as varints — zig-zag for signed — instead of raw
	// little-endian bytes. Lengths, dedup indices, and discriminants
	// are varints regardless of this flag; 8-bit fields and floats
	// are never varints.
	FixedSizeUseVarint bool
}

// DefaultMode returns the zero Mode.
func DefaultMode() Mode {
	return Mode{}
}

// DedupMode returns a Mode with string deduplication enabled.
func DedupMode() Mode {
	return Mode{UseDedup: true}
}

// WithFixedSizeVarint returns a copy of m with the fixed-width-as-
// varint flag set to enabled.
func (m Mode) WithFixedSizeVarint(enabled bool) Mode {
	m.FixedSizeUseVarint = enabled
	return m
}
