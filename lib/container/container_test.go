// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 50))
	meta := map[string]string{
		"type":    "build-manifest",
		"creator": "packwire-test",
	}

	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			frame, err := Pack(payload, meta, tag)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}

			got, gotMeta, err := Unpack(frame)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Error("payload mismatch after round trip")
			}
			if !reflect.DeepEqual(gotMeta, meta) {
				t.Errorf("metadata = %v, want %v", gotMeta, meta)
			}
		})
	}
}

func TestPackIncompressibleFallsBackToNone(t *testing.T) {
	// A short high-entropy payload: neither algorithm can shrink it.
	payload := []byte{0x01, 0x9F, 0x33, 0xC2, 0x7B, 0xE4, 0x55, 0xA8}

	frame, err := Pack(payload, nil, CompressionZstd)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	info, err := Inspect(frame)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Compression != CompressionNone {
		t.Errorf("stored tag = %v, want fallback to none", info.Compression)
	}

	got, _, err := Unpack(frame)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("payload mismatch after fallback")
	}
}

func TestPackAutoPicksCompressionForText(t *testing.T) {
	payload := []byte(strings.Repeat("abcabcabc", 1000))
	frame, err := PackAuto(payload, nil)
	if err != nil {
		t.Fatalf("PackAuto: %v", err)
	}
	info, err := Inspect(frame)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Compression == CompressionNone {
		t.Error("highly repetitive payload stored uncompressed")
	}
	if info.StoredSize >= info.PayloadSize {
		t.Errorf("stored %d bytes for a %d byte payload", info.StoredSize, info.PayloadSize)
	}
}

func TestInspectReportsHeader(t *testing.T) {
	payload := []byte("inspect me")
	frame, err := Pack(payload, map[string]string{"k": "v"}, CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	info, err := Inspect(frame)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Version != Version {
		t.Errorf("Version = %d, want %d", info.Version, Version)
	}
	if info.PayloadSize != len(payload) {
		t.Errorf("PayloadSize = %d, want %d", info.PayloadSize, len(payload))
	}
	if info.Checksum != HashPayload(payload) {
		t.Error("Checksum does not match payload digest")
	}
	if info.Metadata["k"] != "v" {
		t.Errorf("Metadata = %v", info.Metadata)
	}
}

func TestUnpackRejectsCorruption(t *testing.T) {
	payload := []byte(strings.Repeat("payload ", 32))
	frame, err := Pack(payload, nil, CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	t.Run("bad magic", func(t *testing.T) {
		mangled := bytes.Clone(frame)
		mangled[0] = 'X'
		if _, _, err := Unpack(mangled); !errors.Is(err, ErrBadMagic) {
			t.Errorf("got %v, want ErrBadMagic", err)
		}
	})

	t.Run("unknown version", func(t *testing.T) {
		mangled := bytes.Clone(frame)
		mangled[4] = 99
		if _, _, err := Unpack(mangled); !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("got %v, want ErrUnsupportedVersion", err)
		}
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		mangled := bytes.Clone(frame)
		mangled[len(mangled)-1] ^= 0xFF
		if _, _, err := Unpack(mangled); !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("got %v, want ErrChecksumMismatch", err)
		}
	})

	t.Run("truncated frame", func(t *testing.T) {
		if _, _, err := Unpack(frame[:8]); err == nil {
			t.Error("truncated frame unpacked without error")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, _, err := Unpack(nil); !errors.Is(err, ErrBadMagic) {
			t.Errorf("got %v, want ErrBadMagic", err)
		}
	})
}

func TestEmptyMetadataOmitsHeaderBytes(t *testing.T) {
	withNil, err := Pack([]byte("p"), nil, CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	withEmpty, err := Pack([]byte("p"), map[string]string{}, CompressionNone)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if !bytes.Equal(withNil, withEmpty) {
		t.Errorf("nil and empty metadata frames differ: %x != %x", withNil, withEmpty)
	}

	_, meta, err := Unpack(withNil)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if meta != nil {
		t.Errorf("metadata = %v, want nil", meta)
	}
}

func TestFramesAreDeterministic(t *testing.T) {
	payload := []byte(strings.Repeat("determinism ", 64))
	meta := map[string]string{"b": "2", "a": "1", "c": "3"}

	first, err := Pack(payload, meta, CompressionZstd)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	second, err := Pack(payload, meta, CompressionZstd)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different frames")
	}
}

func TestHashPayloadIsStable(t *testing.T) {
	// The digest is a protocol constant: same input, same digest,
	// distinct from the digest of different input.
	a := HashPayload([]byte("a"))
	if a != HashPayload([]byte("a")) {
		t.Error("digest not stable across calls")
	}
	if a == HashPayload([]byte("b")) {
		t.Error("distinct inputs share a digest")
	}
	if len(a.String()) != 64 {
		t.Errorf("hex digest length %d, want 64", len(a.String()))
	}
}
