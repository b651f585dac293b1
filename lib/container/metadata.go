// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder for frame metadata, configured with Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. The same metadata
// always produces identical header bytes, keeping whole frames
// reproducible.
var encMode cbor.EncMode

// decMode is the CBOR decoder for frame metadata. It accepts standard
// CBOR so frames written by future versions with richer headers still
// parse (unknown structure decodes, unexpected types fail).
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("container: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("container: CBOR decoder initialization failed: " + err.Error())
	}
}

// marshalMetadata encodes the metadata map. A nil or empty map encodes
// to nothing at all: the frame stores a zero metadata length instead
// of an empty CBOR map.
func marshalMetadata(meta map[string]string) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	return encMode.Marshal(meta)
}

// unmarshalMetadata decodes a metadata header. Zero-length input
// yields a nil map.
func unmarshalMetadata(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var meta map[string]string
	if err := decMode.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}
