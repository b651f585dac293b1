// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package container wraps an encoded packwire buffer in a small framed
// file format for storage and transfer: a magic number, a format
// version, an optional compression layer, an extensible metadata
// header, and an integrity checksum over the payload.
//
// Frame layout:
//
//	magic "pkwc" (4 bytes)
//	version (1 byte, currently 1)
//	compression tag (1 byte: none, lz4, zstd)
//	uvarint(metadata length) ++ CBOR metadata map (string→string)
//	payload checksum (32 bytes, keyed BLAKE3 of the uncompressed payload)
//	uvarint(uncompressed payload length)
//	payload bytes (compressed per the tag)
//
// The metadata map uses deterministic CBOR encoding (sorted keys), so
// identical payload and metadata always produce an identical frame.
// The checksum is computed over the uncompressed payload: it detects
// corruption of the stored bytes and of the decompression path alike.
//
// [Pack] frames a payload with an explicit compression choice,
// [PackAuto] probes the payload to pick one, and [Unpack] verifies and
// unwraps a frame. The payload is opaque to this package — it carries
// codec buffers in practice but any byte string frames correctly.
package container
