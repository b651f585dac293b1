// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"cmp"
	"maps"
	"slices"
)

// The container helpers are the single generic traversal both
// Serializer realizations flow through: a Serialize method that uses
// them visits elements in the same order during the prescan and the
// write pass by construction. Map helpers sort their keys for the same
// reason — Go map iteration order differs between passes, which would
// silently desynchronize dedup index assignment (and the sort makes
// repeated encodes byte-identical as a side effect).

// maxPrealloc caps the element capacity allocated up front from a wire
// length, so a corrupted length cannot force a huge allocation before
// the stream runs dry.
const maxPrealloc = 1 << 16

// WriteOption writes an optional value: a presence flag, then the
// value itself when v is non-nil.
func WriteOption[T any](s Serializer, v *T, write func(Serializer, T) error) error {
	if err := s.WriteBool(v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return write(s, *v)
}

// ReadOption reads an optional value written by WriteOption. Absent
// values decode as nil.
func ReadOption[T any](d Deserializer, read func(Deserializer) (T, error)) (*T, error) {
	present, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := read(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteSlice writes a length prefix followed by each element in order.
func WriteSlice[T any](s Serializer, values []T, write func(Serializer, T) error) error {
	if err := s.WriteLen(len(values)); err != nil {
		return err
	}
	for _, v := range values {
		if err := write(s, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadSlice reads a sequence written by WriteSlice into a fresh slice.
func ReadSlice[T any](d Deserializer, read func(Deserializer) (T, error)) ([]T, error) {
	length, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(length, maxPrealloc))
	for i := 0; i < length; i++ {
		v, err := read(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadSliceInPlace reads a sequence into *dst, reusing its backing
// array when the capacity suffices. This is the low-churn path for
// repeated decodes into the same value.
func ReadSliceInPlace[T any](d Deserializer, dst *[]T, read func(Deserializer) (T, error)) error {
	length, err := d.ReadLen()
	if err != nil {
		return err
	}
	if cap(*dst) >= length {
		*dst = (*dst)[:0]
	} else {
		*dst = make([]T, 0, min(length, maxPrealloc))
	}
	for i := 0; i < length; i++ {
		v, err := read(d)
		if err != nil {
			return err
		}
		*dst = append(*dst, v)
	}
	return nil
}

// WriteMap writes a length prefix followed by key/value pairs in
// sorted key order.
func WriteMap[K cmp.Ordered, V any](s Serializer, m map[K]V,
	writeKey func(Serializer, K) error, writeValue func(Serializer, V) error) error {
	if err := s.WriteLen(len(m)); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := writeKey(s, key); err != nil {
			return err
		}
		if err := writeValue(s, m[key]); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap reads a map written by WriteMap into a fresh map.
func ReadMap[K comparable, V any](d Deserializer,
	readKey func(Deserializer) (K, error), readValue func(Deserializer) (V, error)) (map[K]V, error) {
	length, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, min(length, maxPrealloc))
	for i := 0; i < length; i++ {
		key, err := readKey(d)
		if err != nil {
			return nil, err
		}
		value, err := readValue(d)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// ReadMapInPlace reads a map into dst, clearing it first and reusing
// its buckets.
func ReadMapInPlace[K comparable, V any](d Deserializer, dst map[K]V,
	readKey func(Deserializer) (K, error), readValue func(Deserializer) (V, error)) error {
	length, err := d.ReadLen()
	if err != nil {
		return err
	}
	clear(dst)
	for i := 0; i < length; i++ {
		key, err := readKey(d)
		if err != nil {
			return err
		}
		value, err := readValue(d)
		if err != nil {
			return err
		}
		dst[key] = value
	}
	return nil
}

// WriteSet writes a length prefix followed by the keys only, in sorted
// order.
func WriteSet[K cmp.Ordered](s Serializer, set map[K]struct{}, writeKey func(Serializer, K) error) error {
	if err := s.WriteLen(len(set)); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(set)) {
		if err := writeKey(s, key); err != nil {
			return err
		}
	}
	return nil
}

// ReadSet reads a set written by WriteSet.
func ReadSet[K comparable](d Deserializer, readKey func(Deserializer) (K, error)) (map[K]struct{}, error) {
	length, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make(map[K]struct{}, min(length, maxPrealloc))
	for i := 0; i < length; i++ {
		key, err := readKey(d)
		if err != nil {
			return nil, err
		}
		out[key] = struct{}{}
	}
	return out, nil
}
