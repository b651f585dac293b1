// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package dedup implements the string pool behind packwire's string
// deduplication.
//
// A [Table] has two lifecycle forms. The build form starts empty
// ([NewTable]) and assigns a monotonically increasing index to each
// distinct string passed to [Table.Intern]; repeated strings return
// their first-assigned index. Once fully populated it is written to the
// head of an encoded buffer with [Table.WriteTo]. The read form is
// produced by [ReadFrom], which consumes the complete wire form before
// any payload byte is touched; payload string indices are then resolved
// with [Table.Lookup].
//
// Wire form: uvarint(count), then count entries of uvarint(byte length)
// followed by the UTF-8 bytes, in index order.
//
// A Table is owned by a single encode or decode call and is not safe
// for concurrent use.
package dedup
