// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"io"

	"github.com/packwire/packwire/lib/dedup"
)

// Marshal encodes v in the default mode and returns the buffer.
func Marshal(v Serializable) ([]byte, error) {
	return MarshalMode(v, Mode{})
}

// MarshalMode encodes v in the given mode and returns the buffer.
func MarshalMode(v Serializable, mode Mode) ([]byte, error) {
	var buffer bytes.Buffer
	if err := EncodeMode(&buffer, v, mode); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Encode writes the default-mode encoding of v to w.
func Encode(w io.Writer, v Serializable) error {
	return EncodeMode(w, v, Mode{})
}

// EncodeMode writes the encoding of v to w. In dedup mode this makes
// two full traversals of v: the prescan populates the dedup table,
// which is written to the stream head, and the write pass then emits
// the payload, re-deriving the same index assignment as it goes. In
// the default mode there is a single traversal. The stream handle is
// only borrowed: it is never closed, on any path.
func EncodeMode(w io.Writer, v Serializable, mode Mode) error {
	if mode.UseDedup {
		pre := newPrescanner(mode)
		if err := v.Serialize(pre); err != nil {
			return err
		}
		if _, err := pre.table.WriteTo(w); err != nil {
			return err
		}
	}
	return v.Serialize(newWriter(w, mode))
}

// Unmarshal decodes a default-mode buffer into v. Container fields of
// a pre-populated v reuse their backing storage where the In-Place
// helpers are used in its Deserialize method.
func Unmarshal(data []byte, v Deserializable) error {
	return UnmarshalMode(data, v, Mode{})
}

// UnmarshalMode decodes a buffer produced with the given mode into v.
func UnmarshalMode(data []byte, v Deserializable, mode Mode) error {
	return DecodeMode(bytes.NewReader(data), v, mode)
}

// Decode reads a default-mode encoding from r into v.
func Decode(r io.Reader, v Deserializable) error {
	return DecodeMode(r, v, Mode{})
}

// DecodeMode reads an encoding from r into v. In dedup mode the table
// at the stream head is fully consumed before the first payload byte.
// Exactly the bytes of one encoded value are read; the stream is never
// closed.
func DecodeMode(r io.Reader, v Deserializable, mode Mode) error {
	var table *dedup.Table
	if mode.UseDedup {
		var err error
		table, err = dedup.ReadFrom(r)
		if err != nil {
			return err
		}
	}
	return v.Deserialize(newReader(r, mode, table))
}
