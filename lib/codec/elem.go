// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "fmt"

// Primitive enumerates the element types the contract can carry
// directly. Strings go through the dedup-eligible path; use a closure
// over WriteStringNoDedup for exempt fields.
type Primitive interface {
	bool | uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64 | string
}

// WriteElem writes a single primitive value through the contract. It
// exists so container helpers can take a named function instead of a
// hand-written closure:
//
//	codec.WriteSlice(s, values, codec.WriteElem[uint32])
func WriteElem[T Primitive](s Serializer, v T) error {
	switch value := any(v).(type) {
	case bool:
		return s.WriteBool(value)
	case uint8:
		return s.WriteUint8(value)
	case uint16:
		return s.WriteUint16(value)
	case uint32:
		return s.WriteUint32(value)
	case uint64:
		return s.WriteUint64(value)
	case int8:
		return s.WriteInt8(value)
	case int16:
		return s.WriteInt16(value)
	case int32:
		return s.WriteInt32(value)
	case int64:
		return s.WriteInt64(value)
	case float32:
		return s.WriteFloat32(value)
	case float64:
		return s.WriteFloat64(value)
	case string:
		return s.WriteString(value)
	default:
		return fmt.Errorf("unsupported element type %T", v)
	}
}

// ReadElem is the read counterpart of [WriteElem].
func ReadElem[T Primitive](d Deserializer) (T, error) {
	var zero T
	switch any(zero).(type) {
	case bool:
		v, err := d.ReadBool()
		return any(v).(T), err
	case uint8:
		v, err := d.ReadUint8()
		return any(v).(T), err
	case uint16:
		v, err := d.ReadUint16()
		return any(v).(T), err
	case uint32:
		v, err := d.ReadUint32()
		return any(v).(T), err
	case uint64:
		v, err := d.ReadUint64()
		return any(v).(T), err
	case int8:
		v, err := d.ReadInt8()
		return any(v).(T), err
	case int16:
		v, err := d.ReadInt16()
		return any(v).(T), err
	case int32:
		v, err := d.ReadInt32()
		return any(v).(T), err
	case int64:
		v, err := d.ReadInt64()
		return any(v).(T), err
	case float32:
		v, err := d.ReadFloat32()
		return any(v).(T), err
	case float64:
		v, err := d.ReadFloat64()
		return any(v).(T), err
	case string:
		v, err := d.ReadString()
		return any(v).(T), err
	default:
		return zero, fmt.Errorf("unsupported element type %T", zero)
	}
}
