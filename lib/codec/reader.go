// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/packwire/packwire/lib/dedup"
	"github.com/packwire/packwire/lib/varint"
)

// reader is the realization of Deserializer. In dedup mode it carries
// the read-form table, fully populated from the stream head before the
// first payload byte was consumed.
type reader struct {
	r     io.Reader
	mode  Mode
	table *dedup.Table
	buf   [8]byte
}

func newReader(r io.Reader, mode Mode, table *dedup.Table) *reader {
	return &reader{r: r, mode: mode, table: table}
}

func (r *reader) Mode() Mode { return r.mode }

func (r *reader) readFull(p []byte) error {
	_, err := io.ReadFull(r.r, p)
	return err
}

// ReadByte satisfies io.ByteReader for the varint decoder. It reads
// exactly one byte from the stream, never ahead.
func (r *reader) ReadByte() (byte, error) {
	if err := r.readFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (r *reader) ReadUint8() (uint8, error) { return r.ReadByte() }

func (r *reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// readUvarintMax decodes a varint and checks it against the width of
// the target field.
func (r *reader) readUvarintMax(max uint64) (uint64, error) {
	v, err := varint.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, fmt.Errorf("%w: value %d exceeds field width", ErrOverflow, v)
	}
	return v, nil
}

// readVarintRange decodes a zig-zag varint and checks the signed range
// of the target field.
func (r *reader) readVarintRange(min, max int64) (int64, error) {
	v, err := varint.ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: value %d exceeds field range", ErrOverflow, v)
	}
	return v, nil
}

func (r *reader) ReadUint16() (uint16, error) {
	if r.mode.FixedSizeUseVarint {
		v, err := r.readUvarintMax(math.MaxUint16)
		return uint16(v), err
	}
	if err := r.readFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

func (r *reader) ReadUint32() (uint32, error) {
	if r.mode.FixedSizeUseVarint {
		v, err := r.readUvarintMax(math.MaxUint32)
		return uint32(v), err
	}
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *reader) ReadUint64() (uint64, error) {
	if r.mode.FixedSizeUseVarint {
		return varint.ReadUvarint(r)
	}
	if err := r.readFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[:8]), nil
}

func (r *reader) ReadInt16() (int16, error) {
	if r.mode.FixedSizeUseVarint {
		v, err := r.readVarintRange(math.MinInt16, math.MaxInt16)
		return int16(v), err
	}
	if err := r.readFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(r.buf[:2])), nil
}

func (r *reader) ReadInt32() (int32, error) {
	if r.mode.FixedSizeUseVarint {
		v, err := r.readVarintRange(math.MinInt32, math.MaxInt32)
		return int32(v), err
	}
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

func (r *reader) ReadInt64() (int64, error) {
	if r.mode.FixedSizeUseVarint {
		return varint.ReadVarint(r)
	}
	if err := r.readFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(r.buf[:8])), nil
}

func (r *reader) ReadFloat32() (float32, error) {
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

func (r *reader) ReadFloat64() (float64, error) {
	if err := r.readFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(r.buf[:8])), nil
}

func (r *reader) ReadString() (string, error) {
	if r.mode.UseDedup {
		index, err := varint.ReadUvarint(r)
		if err != nil {
			return "", err
		}
		return r.table.Lookup(index)
	}
	return r.readInline()
}

func (r *reader) ReadStringNoDedup() (string, error) {
	return r.readInline()
}

func (r *reader) readInline() (string, error) {
	length, err := r.ReadLen()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	raw, err := readExact(r.r, length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// readExact reads exactly length bytes, growing the buffer in
// maxPrealloc-sized steps so a corrupted length cannot force a huge
// allocation before the stream runs dry. A short stream fails with
// io.ErrUnexpectedEOF.
func readExact(r io.Reader, length int) ([]byte, error) {
	raw := make([]byte, 0, min(length, maxPrealloc))
	for len(raw) < length {
		n := min(length-len(raw), maxPrealloc)
		raw = slices.Grow(raw, n)[:len(raw)+n]
		if _, err := io.ReadFull(r, raw[len(raw)-n:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return raw, nil
}

func (r *reader) ReadLen() (int, error) {
	v, err := r.readUvarintMax(math.MaxInt)
	return int(v), err
}

func (r *reader) ReadDiscriminant() (uint64, error) {
	return varint.ReadUvarint(r)
}
