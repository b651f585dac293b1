// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of a frame's uncompressed payload.
type Hash [32]byte

// payloadDomainKey is the 32-byte key for BLAKE3 keyed hashing of
// payloads. Domain separation keeps payload digests distinct from any
// other BLAKE3 use of the same bytes. The value is the ASCII domain
// name zero-padded to 32 bytes: readable in hex dumps, and keyed mode
// treats it as an opaque 32-byte value either way. It is a protocol
// constant — changing it invalidates every existing frame checksum.
var payloadDomainKey = [32]byte{
	'p', 'a', 'c', 'k', 'w', 'i', 'r', 'e', '.', 'c', 'o', 'n', 't', 'a', 'i', 'n',
	'e', 'r', '.', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0,
}

// HashPayload computes the payload-domain keyed digest of data. The
// checksum stored in a frame is always computed on the uncompressed
// payload, so it stays valid across a recompression of the same data.
func HashPayload(data []byte) Hash {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("container: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)

	var digest Hash
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex form of a digest, the canonical format for
// log output and the inspection CLI.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
