// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package varint

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// MaxLen is the maximum encoded length of a 64-bit value: ten 7-bit
// groups cover 70 bits, so no valid encoding is ever longer.
const MaxLen = 10

// ErrOverflow is returned when a decoded value does not fit in 64 bits,
// or when a value does not fit a required narrower width after decoding.
// Callers match it with errors.Is.
var ErrOverflow = errors.New("varint: integer overflow")

// Zigzag maps a signed integer to an unsigned one so that values of
// small magnitude encode in few bytes: n >= 0 → 2n, n < 0 → -2n-1.
func Zigzag(v int64) uint64 {
	uv := uint64(v) << 1
	if v < 0 {
		uv = ^uv
	}
	return uv
}

// Unzigzag is the inverse of [Zigzag].
func Unzigzag(uv uint64) int64 {
	v := int64(uv >> 1)
	if uv&1 != 0 {
		v = ^v
	}
	return v
}

// Len returns the encoded length of v in bytes: one 7-bit group per
// significant 7 bits, and a single byte for zero.
func Len(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// AppendUvarint appends the encoding of v to dst and returns the
// extended slice.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendVarint appends the zig-zag encoding of v to dst.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, Zigzag(v))
}

// WriteUvarint writes the encoding of v to w.
func WriteUvarint(w io.Writer, v uint64) error {
	var buf [MaxLen]byte
	encoded := AppendUvarint(buf[:0], v)
	n, err := w.Write(encoded)
	if err != nil {
		return err
	}
	if n != len(encoded) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteVarint writes the zig-zag encoding of v to w.
func WriteVarint(w io.Writer, v int64) error {
	return WriteUvarint(w, Zigzag(v))
}

// ReadUvarint decodes a varint from r. It consumes exactly the bytes of
// one encoded value. An encoding that exceeds 64 bits fails with
// [ErrOverflow]; a stream that ends mid-value fails with
// io.ErrUnexpectedEOF.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < MaxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if b < 0x80 {
			// The tenth group may only carry the top bit of a
			// 64-bit value.
			if i == MaxLen-1 && b > 1 {
				return 0, fmt.Errorf("%w: continuation past 64 bits", ErrOverflow)
			}
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, fmt.Errorf("%w: more than %d groups", ErrOverflow, MaxLen)
}

// ReadVarint decodes a zig-zag varint from r.
func ReadVarint(r io.ByteReader) (int64, error) {
	uv, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return Unzigzag(uv), nil
}
