// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package dedup

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/packwire/packwire/lib/varint"
)

// ErrIndexOutOfRange is returned by [Table.Lookup] when a payload
// index is not below the table count. It indicates a corrupted buffer
// or a mode mismatch between encoder and decoder.
var ErrIndexOutOfRange = errors.New("dedup: string index out of range")

// ErrInvalidUTF8 is returned when string bytes read from the wire do
// not form valid UTF-8.
var ErrInvalidUTF8 = errors.New("dedup: invalid UTF-8 string data")

// Table is an ordered pool of unique strings. See the package
// documentation for the build/read lifecycle.
type Table struct {
	entries []string

	// byContent maps string content to its assigned index. Only the
	// build form carries it; a table produced by ReadFrom is lookup
	// only.
	byContent map[string]int
}

// NewTable returns an empty build-form table.
func NewTable() *Table {
	return &Table{byContent: make(map[string]int)}
}

// Intern returns the index assigned to s, assigning the next free
// index (starting at 0) on first occurrence.
func (t *Table) Intern(s string) int {
	if index, ok := t.byContent[s]; ok {
		return index
	}
	index := len(t.entries)
	t.entries = append(t.entries, s)
	t.byContent[s] = index
	return index
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup resolves a payload index to its string. Fails with
// [ErrIndexOutOfRange] when index >= Len.
func (t *Table) Lookup(index uint64) (string, error) {
	if index >= uint64(len(t.entries)) {
		return "", fmt.Errorf("%w: index %d, table has %d entries",
			ErrIndexOutOfRange, index, len(t.entries))
	}
	return t.entries[index], nil
}

// WriteTo emits the table in wire form, in index order. The table must
// be fully populated first; packwire's encode path runs the complete
// prescan before calling this.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	if err := varint.WriteUvarint(counter, uint64(len(t.entries))); err != nil {
		return counter.n, fmt.Errorf("dedup: write table count: %w", err)
	}
	for index, entry := range t.entries {
		if err := varint.WriteUvarint(counter, uint64(len(entry))); err != nil {
			return counter.n, fmt.Errorf("dedup: write length of entry %d: %w", index, err)
		}
		if _, err := io.WriteString(counter, entry); err != nil {
			return counter.n, fmt.Errorf("dedup: write entry %d: %w", index, err)
		}
	}
	return counter.n, nil
}

// ReadFrom reads a complete table from r and returns it in read form.
// It consumes exactly the table's wire bytes: when r does not supply
// its own byte-granular reads, entries are read through a one-byte
// adapter so no payload byte is swallowed.
func ReadFrom(r io.Reader) (*Table, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReader{r: r}
	}

	count, err := varint.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("dedup: read table count: %w", err)
	}
	if count > math.MaxInt32 {
		return nil, fmt.Errorf("dedup: table count %d: %w", count, varint.ErrOverflow)
	}

	table := &Table{}
	for index := uint64(0); index < count; index++ {
		length, err := varint.ReadUvarint(br)
		if err != nil {
			// The count promised more entries: any EOF here is
			// mid-structure.
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("dedup: read length of entry %d: %w", index, err)
		}
		if length > math.MaxInt32 {
			return nil, fmt.Errorf("dedup: entry %d length %d: %w", index, length, varint.ErrOverflow)
		}
		raw, err := readExact(readerOf(br, r), int(length))
		if err != nil {
			return nil, fmt.Errorf("dedup: read entry %d: %w", index, err)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("entry %d: %w", index, ErrInvalidUTF8)
		}
		table.entries = append(table.entries, string(raw))
	}
	return table, nil
}

// maxPrealloc caps the bytes allocated up front from a wire-declared
// entry length; readExact grows past it only as bytes actually arrive.
const maxPrealloc = 1 << 16

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

// readerOf returns the io.Reader to use for bulk entry reads: the
// original reader when it is byte-granular itself, otherwise the
// adapter (whose position must stay consistent with the varint reads).
func readerOf(br io.ByteReader, r io.Reader) io.Reader {
	if adapter, ok := br.(*byteReader); ok {
		return adapter
	}
	return r
}

// byteReader adapts an io.Reader to io.ByteReader without buffering
// ahead, so the table read never consumes payload bytes.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(br.r, br.buf[:]); err != nil {
		return 0, err
	}
	return br.buf[0], nil
}

func (br *byteReader) Read(p []byte) (int, error) {
	return br.r.Read(p)
}

// countingWriter tracks bytes written for the io.WriterTo contract.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
