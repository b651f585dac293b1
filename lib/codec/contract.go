// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

// Serializer is the write-side capability contract. Two realizations
// exist: the prescan pass, which performs no I/O and only collects
// strings into the dedup table, and the base writer, which emits
// payload bytes. A type's Serialize method must make the same calls in
// the same order against either realization — index assignment during
// deduplication depends on it.
type Serializer interface {
	// Mode returns the mode this pass was constructed with.
	Mode() Mode

	WriteBool(v bool) error
	WriteUint8(v uint8) error
	WriteUint16(v uint16) error
	WriteUint32(v uint32) error
	WriteUint64(v uint64) error
	WriteInt8(v int8) error
	WriteInt16(v int16) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	WriteFloat32(v float32) error
	WriteFloat64(v float64) error

	// WriteString writes a dedup-eligible string: an index into the
	// dedup table when the mode enables deduplication, the inline
	// length-prefixed form otherwise.
	WriteString(s string) error

	// WriteStringNoDedup writes a string in the inline form
	// regardless of mode. Use it for fields that opt out of
	// deduplication.
	WriteStringNoDedup(s string) error

	// WriteLen writes a container length prefix (always a varint).
	// Fails with ErrOverflow for negative n.
	WriteLen(n int) error

	// WriteDiscriminant writes an enum discriminant (always a
	// varint). Discriminants are the zero-based declaration order of
	// the selected variant.
	WriteDiscriminant(d uint64) error
}

// Deserializer is the read-side capability contract, realized by the
// base reader. Decoding into a caller-supplied value reuses that
// value's backing storage where the helper functions allow it.
type Deserializer interface {
	// Mode returns the mode this pass was constructed with.
	Mode() Mode

	ReadBool() (bool, error)
	ReadUint8() (uint8, error)
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
	ReadUint64() (uint64, error)
	ReadInt8() (int8, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)

	// ReadString reads a dedup-eligible string, resolving a table
	// index when the mode enables deduplication.
	ReadString() (string, error)

	// ReadStringNoDedup reads a string in the inline form regardless
	// of mode.
	ReadStringNoDedup() (string, error)

	// ReadLen reads a container length prefix.
	ReadLen() (int, error)

	// ReadDiscriminant reads an enum discriminant.
	ReadDiscriminant() (uint64, error)
}

// Serializable is implemented by types that encode themselves through
// the capability contract. Implementations visit every field in
// declaration order, once, unconditionally (skipped fields are simply
// never visited), so that the prescan and write passes traverse
// identically.
type Serializable interface {
	Serialize(s Serializer) error
}

// Deserializable is the decode side of Serializable. It is implemented
// on a pointer receiver and must read fields in the exact order
// Serialize wrote them. Skipped fields are assigned their zero value
// without reading.
type Deserializable interface {
	Deserialize(d Deserializer) error
}
