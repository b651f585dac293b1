// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/packwire/packwire/lib/dedup"
	"github.com/packwire/packwire/lib/varint"
)

// The error taxonomy is shared across packages: varint and dedup own
// the sentinels for the failures they detect, and this package
// re-exports them so callers can match every codec failure with a
// single import. I/O errors from the underlying stream and custom
// errors from Serialize/Deserialize implementations propagate
// unchanged — the first error aborts the whole call, with no partial
// result.
var (
	// ErrOverflow: a decoded varint exceeds 64 bits, or a value does
	// not fit its target width (for example a length beyond the
	// addressable range).
	ErrOverflow = varint.ErrOverflow

	// ErrInvalidUTF8: string bytes on the wire do not decode as UTF-8.
	ErrInvalidUTF8 = dedup.ErrInvalidUTF8

	// ErrIndexOutOfRange: a deduplicated string index is not below the
	// table count — a corrupted buffer or an encoder/decoder mode
	// mismatch.
	ErrIndexOutOfRange = dedup.ErrIndexOutOfRange
)

// newNegativeLenError is shared by both Serializer realizations so a
// bad length fails identically during prescan and write.
func newNegativeLenError(n int) error {
	return fmt.Errorf("%w: negative length %d", ErrOverflow, n)
}
