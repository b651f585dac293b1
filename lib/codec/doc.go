// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements packwire's compact binary encoding: a dense
// format for typed value trees with transparent string deduplication
// and configurable integer width. It trades self-description for size
// and decode speed — the byte stream carries no field names or type
// tags, so encoder and decoder must agree on the type and the [Mode].
//
// Types participate by implementing [Serializable] and
// [Deserializable] against the capability contract ([Serializer],
// [Deserializer]): one contract call per field, in declaration order.
// Code generators may emit these methods; the codec treats generated
// and hand-written implementations identically and cannot detect an
// implementation that violates the ordering rules.
//
// For buffer-oriented use:
//
//	data, err := codec.MarshalMode(value, codec.DedupMode())
//	err = codec.UnmarshalMode(data, &value, codec.DedupMode())
//
// For stream-oriented use:
//
//	err := codec.EncodeMode(w, value, mode)
//	err = codec.DecodeMode(r, &value, mode)
//
// # Wire layout
//
// A buffer is [dedup table] ++ payload, the table present only in
// dedup mode. The table is uvarint(count) then count length-prefixed
// UTF-8 entries in first-occurrence order. In the payload, a
// dedup-eligible string field is a uvarint index into the table; all
// other strings are inline uvarint(length) ++ bytes. Lengths, indices,
// and enum discriminants are always varints; fixed-width integers are
// little-endian bytes unless Mode.FixedSizeUseVarint. Skipped struct
// fields contribute zero bytes and are never visited.
//
// # Field markers
//
// The format's two per-field markers are expressed directly in a
// type's Serialize/Deserialize pair: a skipped field is simply not
// visited (it decodes to its zero value), and a no-dedup field uses
// WriteStringNoDedup/ReadStringNoDedup instead of the dedup-eligible
// calls.
//
// # Determinism
//
// Encoding in dedup mode traverses the value twice — a prescan that
// collects strings, then the write pass. Index agreement between the
// passes rests on both running the identical traversal, which the
// generic container helpers guarantee structurally (map keys are
// visited in sorted order for this reason). Serialize methods must be
// pure functions of the value and the Mode.
package codec
