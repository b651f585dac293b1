// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/packwire/packwire/lib/varint"
)

// magic identifies a packwire container frame.
var magic = [4]byte{'p', 'k', 'w', 'c'}

// Version is the frame format version written by this package.
const Version = 1

var (
	// ErrBadMagic: the input does not start with the frame magic.
	ErrBadMagic = errors.New("container: bad magic, not a packwire frame")

	// ErrUnsupportedVersion: the frame was written by an unknown
	// format version.
	ErrUnsupportedVersion = errors.New("container: unsupported frame version")

	// ErrChecksumMismatch: the payload bytes do not match the stored
	// digest. The frame is corrupted.
	ErrChecksumMismatch = errors.New("container: payload checksum mismatch")
)

// Info describes a frame's header, as parsed by [Inspect].
type Info struct {
	// Version is the frame format version.
	Version uint8

	// Compression is the payload compression algorithm.
	Compression CompressionTag

	// Metadata is the decoded metadata map, nil when the frame
	// carries none.
	Metadata map[string]string

	// Checksum is the stored payload digest.
	Checksum Hash

	// PayloadSize is the uncompressed payload length.
	PayloadSize int

	// StoredSize is the on-frame (possibly compressed) payload
	// length.
	StoredSize int
}

// Pack frames payload with the given compression tag and metadata.
// When the payload turns out incompressible under the requested
// algorithm, the frame silently falls back to CompressionNone — the
// tag is a preference, the stored tag in the frame is authoritative.
func Pack(payload []byte, meta map[string]string, tag CompressionTag) ([]byte, error) {
	stored, err := compress(payload, tag)
	if err != nil {
		if errors.Is(err, errIncompressible) {
			stored, tag = payload, CompressionNone
		} else {
			return nil, err
		}
	}

	metaBytes, err := marshalMetadata(meta)
	if err != nil {
		return nil, fmt.Errorf("container: encode metadata: %w", err)
	}

	digest := HashPayload(payload)

	frame := make([]byte, 0, len(magic)+2+varint.Len(uint64(len(metaBytes)))+len(metaBytes)+
		len(digest)+varint.MaxLen+len(stored))
	frame = append(frame, magic[:]...)
	frame = append(frame, Version, byte(tag))
	frame = varint.AppendUvarint(frame, uint64(len(metaBytes)))
	frame = append(frame, metaBytes...)
	frame = append(frame, digest[:]...)
	frame = varint.AppendUvarint(frame, uint64(len(payload)))
	frame = append(frame, stored...)
	return frame, nil
}

// PackAuto frames payload, probing it to choose a compression
// algorithm.
func PackAuto(payload []byte, meta map[string]string) ([]byte, error) {
	return Pack(payload, meta, selectCompression(payload))
}

// Unpack verifies a frame and returns its uncompressed payload and
// metadata.
func Unpack(data []byte) ([]byte, map[string]string, error) {
	payload, _, meta, err := parse(data)
	return payload, meta, err
}

// Inspect parses a frame's header and verifies its checksum without
// returning the payload. The inspection CLI is its main caller.
func Inspect(data []byte) (*Info, error) {
	_, info, _, err := parse(data)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// parse does the full verify-and-unwrap: header fields, metadata,
// decompression, checksum.
func parse(data []byte) ([]byte, *Info, map[string]string, error) {
	r := bytes.NewReader(data)

	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, nil, nil, ErrBadMagic
	}
	if head != magic {
		return nil, nil, nil, ErrBadMagic
	}

	version, err := r.ReadByte()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: read version: %w", io.ErrUnexpectedEOF)
	}
	if version != Version {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	tagByte, err := r.ReadByte()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: read compression tag: %w", io.ErrUnexpectedEOF)
	}
	tag := CompressionTag(tagByte)

	metaLen, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: read metadata length: %w", err)
	}
	if metaLen > uint64(r.Len()) {
		return nil, nil, nil, fmt.Errorf("container: metadata length %d exceeds frame: %w",
			metaLen, io.ErrUnexpectedEOF)
	}
	metaBytes := make([]byte, metaLen)
	if _, err := io.ReadFull(r, metaBytes); err != nil {
		return nil, nil, nil, fmt.Errorf("container: read metadata: %w", err)
	}
	meta, err := unmarshalMetadata(metaBytes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: decode metadata: %w", err)
	}

	var digest Hash
	if _, err := io.ReadFull(r, digest[:]); err != nil {
		return nil, nil, nil, fmt.Errorf("container: read checksum: %w", err)
	}

	payloadLen, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: read payload length: %w", err)
	}
	if payloadLen > math.MaxInt32 {
		return nil, nil, nil, fmt.Errorf("container: payload length %d: %w", payloadLen, varint.ErrOverflow)
	}

	stored := make([]byte, r.Len())
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, nil, nil, fmt.Errorf("container: read payload: %w", err)
	}

	payload, err := decompress(stored, tag, int(payloadLen))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("container: %w", err)
	}

	if HashPayload(payload) != digest {
		return nil, nil, nil, ErrChecksumMismatch
	}

	info := &Info{
		Version:     version,
		Compression: tag,
		Metadata:    meta,
		Checksum:    digest,
		PayloadSize: int(payloadLen),
		StoredSize:  len(stored),
	}
	return payload, info, meta, nil
}
