// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package varint

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// uvarintVectors loads the golden value/encoding pairs from testdata.
func uvarintVectors(t *testing.T) []struct {
	Value   uint64 `yaml:"value"`
	Encoded string `yaml:"encoded"`
} {
	t.Helper()
	raw, err := os.ReadFile("testdata/uvarint.yaml")
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var fixture struct {
		Vectors []struct {
			Value   uint64 `yaml:"value"`
			Encoded string `yaml:"encoded"`
		} `yaml:"vectors"`
	}
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		t.Fatalf("parse vectors: %v", err)
	}
	if len(fixture.Vectors) == 0 {
		t.Fatal("no vectors in fixture")
	}
	return fixture.Vectors
}

func TestUvarintGoldenVectors(t *testing.T) {
	for _, vector := range uvarintVectors(t) {
		want, err := hex.DecodeString(vector.Encoded)
		if err != nil {
			t.Fatalf("bad fixture hex %q: %v", vector.Encoded, err)
		}

		got := AppendUvarint(nil, vector.Value)
		if !bytes.Equal(got, want) {
			t.Errorf("AppendUvarint(%d) = %x, want %x", vector.Value, got, want)
		}

		decoded, err := ReadUvarint(bytes.NewReader(want))
		if err != nil {
			t.Errorf("ReadUvarint(%x): %v", want, err)
		} else if decoded != vector.Value {
			t.Errorf("ReadUvarint(%x) = %d, want %d", want, decoded, vector.Value)
		}

		if got := Len(vector.Value); got != len(want) {
			t.Errorf("Len(%d) = %d, want %d", vector.Value, got, len(want))
		}
	}
}

func TestWriteReadUvarintStream(t *testing.T) {
	var buffer bytes.Buffer
	values := []uint64{0, 1, 127, 128, 1 << 20, 1<<63 - 1, 1 << 63, ^uint64(0)}
	for _, value := range values {
		if err := WriteUvarint(&buffer, value); err != nil {
			t.Fatalf("WriteUvarint(%d): %v", value, err)
		}
	}
	for _, want := range values {
		got, err := ReadUvarint(&buffer)
		if err != nil {
			t.Fatalf("ReadUvarint: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if buffer.Len() != 0 {
		t.Errorf("%d bytes left over after decoding all values", buffer.Len())
	}
}

func TestZigzag(t *testing.T) {
	cases := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{-3, 5},
		{-35, 69},
		{2147483647, 4294967294},
		{-2147483648, 4294967295},
		{1<<63 - 1, 18446744073709551614},
		{-1 << 63, 18446744073709551615},
	}
	for _, c := range cases {
		if got := Zigzag(c.signed); got != c.unsigned {
			t.Errorf("Zigzag(%d) = %d, want %d", c.signed, got, c.unsigned)
		}
		if got := Unzigzag(c.unsigned); got != c.signed {
			t.Errorf("Unzigzag(%d) = %d, want %d", c.unsigned, got, c.signed)
		}
	}
}

func TestSignedRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 64, -65, 1 << 40, -(1 << 40), 1<<63 - 1, -1 << 63}
	for _, value := range values {
		encoded := AppendVarint(nil, value)
		decoded, err := ReadVarint(bytes.NewReader(encoded))
		if err != nil {
			t.Fatalf("ReadVarint(%x): %v", encoded, err)
		}
		if decoded != value {
			t.Errorf("round trip of %d gave %d (wire %x)", value, decoded, encoded)
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	cases := []struct {
		name string
		wire string
	}{
		// Eleven continuation groups.
		{"too many groups", "ffffffffffffffffffff01"},
		// Ten groups, but the tenth carries payload above bit 63.
		{"tenth group too large", "ffffffffffffffffff02"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wire, err := hex.DecodeString(c.wire)
			if err != nil {
				t.Fatalf("bad test hex: %v", err)
			}
			_, err = ReadUvarint(bytes.NewReader(wire))
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("got %v, want ErrOverflow", err)
			}
		})
	}
}

func TestReadUvarintTruncated(t *testing.T) {
	// A continuation bit with no following byte.
	_, err := ReadUvarint(bytes.NewReader([]byte{0x80}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("mid-value EOF: got %v, want io.ErrUnexpectedEOF", err)
	}

	// An empty stream is a plain EOF: no value started.
	_, err = ReadUvarint(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Errorf("empty stream: got %v, want io.EOF", err)
	}
}

func TestLenZero(t *testing.T) {
	if got := Len(0); got != 1 {
		t.Errorf("Len(0) = %d, want 1", got)
	}
}
