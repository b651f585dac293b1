// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package varint implements the variable-length integer encoding used
// throughout the packwire wire format.
//
// An unsigned integer is written as a sequence of 7-bit groups, least
// significant group first. Every byte except the last has its high bit
// set as a continuation marker; the final byte's high bit is clear. The
// encoded length of a value n is ceil(bits(n)/7) bytes, with a single
// byte for n = 0. A 64-bit value therefore never exceeds [MaxLen]
// bytes, and a decoder that consumes more than that (or excess payload
// bits in the tenth byte) fails with [ErrOverflow].
//
// Signed integers are mapped to unsigned values with the zig-zag
// transform (n >= 0 → 2n, n < 0 → -2n-1) so that small negative values
// stay small on the wire. [Zigzag] and [Unzigzag] expose the transform;
// the signed Append/Write/Read functions apply it implicitly.
//
// Lengths, dedup table indices, and enum discriminants are always
// varint-encoded; fixed-width integer fields use this encoding only
// when the codec's FixedSizeUseVarint mode flag is set.
package varint
