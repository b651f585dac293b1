// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/packwire/packwire/lib/dedup"
	"github.com/packwire/packwire/lib/varint"
)

// writer is the byte-emitting realization of Serializer. In dedup mode
// it owns a fresh build-form table and re-derives the same string→index
// assignment the prescan produced: both passes run the identical
// traversal, so Intern hands out identical indices. Correctness rests
// on that determinism, not on sharing the prescan's table.
type writer struct {
	w     io.Writer
	mode  Mode
	table *dedup.Table
	buf   [8]byte
}

func newWriter(w io.Writer, mode Mode) *writer {
	wr := &writer{w: w, mode: mode}
	if mode.UseDedup {
		wr.table = dedup.NewTable()
	}
	return wr
}

func (w *writer) Mode() Mode { return w.mode }

func (w *writer) writeFull(p []byte) error {
	n, err := w.w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func (w *writer) writeByte(b byte) error {
	w.buf[0] = b
	return w.writeFull(w.buf[:1])
}

func (w *writer) WriteBool(v bool) error {
	if v {
		return w.writeByte(0xFF)
	}
	return w.writeByte(0x00)
}

func (w *writer) WriteUint8(v uint8) error { return w.writeByte(v) }
func (w *writer) WriteInt8(v int8) error   { return w.writeByte(uint8(v)) }

func (w *writer) WriteUint16(v uint16) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteUvarint(w.w, uint64(v))
	}
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	return w.writeFull(w.buf[:2])
}

func (w *writer) WriteUint32(v uint32) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteUvarint(w.w, uint64(v))
	}
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.writeFull(w.buf[:4])
}

func (w *writer) WriteUint64(v uint64) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteUvarint(w.w, v)
	}
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.writeFull(w.buf[:8])
}

func (w *writer) WriteInt16(v int16) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteVarint(w.w, int64(v))
	}
	binary.LittleEndian.PutUint16(w.buf[:2], uint16(v))
	return w.writeFull(w.buf[:2])
}

func (w *writer) WriteInt32(v int32) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteVarint(w.w, int64(v))
	}
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(v))
	return w.writeFull(w.buf[:4])
}

func (w *writer) WriteInt64(v int64) error {
	if w.mode.FixedSizeUseVarint {
		return varint.WriteVarint(w.w, v)
	}
	binary.LittleEndian.PutUint64(w.buf[:8], uint64(v))
	return w.writeFull(w.buf[:8])
}

// Floats are always raw IEEE-754 little-endian bits; the varint flag
// covers integer fields only.

func (w *writer) WriteFloat32(v float32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.writeFull(w.buf[:4])
}

func (w *writer) WriteFloat64(v float64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], math.Float64bits(v))
	return w.writeFull(w.buf[:8])
}

func (w *writer) WriteString(s string) error {
	if w.mode.UseDedup {
		return varint.WriteUvarint(w.w, uint64(w.table.Intern(s)))
	}
	return w.writeInline(s)
}

func (w *writer) WriteStringNoDedup(s string) error {
	return w.writeInline(s)
}

func (w *writer) writeInline(s string) error {
	if err := varint.WriteUvarint(w.w, uint64(len(s))); err != nil {
		return err
	}
	n, err := io.WriteString(w.w, s)
	if err != nil {
		return err
	}
	if n != len(s) {
		return io.ErrShortWrite
	}
	return nil
}

func (w *writer) WriteLen(n int) error {
	if n < 0 {
		return newNegativeLenError(n)
	}
	return varint.WriteUvarint(w.w, uint64(n))
}

func (w *writer) WriteDiscriminant(d uint64) error {
	return varint.WriteUvarint(w.w, d)
}
