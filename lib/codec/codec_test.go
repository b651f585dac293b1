// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// The fixture types below stand in for generated Serialize/Deserialize
// implementations: one contract call per field, declaration order,
// markers expressed through the call choice.

// boxedString encodes a bare dedup-eligible string.
type boxedString string

func (s boxedString) Serialize(w Serializer) error {
	return w.WriteString(string(s))
}

func (s *boxedString) Deserialize(d Deserializer) error {
	v, err := d.ReadString()
	if err != nil {
		return err
	}
	*s = boxedString(v)
	return nil
}

// boxedBool encodes a bare boolean.
type boxedBool bool

func (b boxedBool) Serialize(w Serializer) error {
	return w.WriteBool(bool(b))
}

func (b *boxedBool) Deserialize(d Deserializer) error {
	v, err := d.ReadBool()
	if err != nil {
		return err
	}
	*b = boxedBool(v)
	return nil
}

// int16Slice encodes a sequence of 16-bit integers.
type int16Slice []int16

func (s int16Slice) Serialize(w Serializer) error {
	return WriteSlice(w, s, func(w Serializer, v int16) error { return w.WriteInt16(v) })
}

func (s *int16Slice) Deserialize(d Deserializer) error {
	return ReadSliceInPlace(d, (*[]int16)(s), func(d Deserializer) (int16, error) { return d.ReadInt16() })
}

// labeledValue is a two-field struct: a dedup-eligible name and a rank.
type labeledValue struct {
	Name string
	Rank int32
}

func (v labeledValue) Serialize(w Serializer) error {
	if err := w.WriteString(v.Name); err != nil {
		return err
	}
	return w.WriteInt32(v.Rank)
}

func (v *labeledValue) Deserialize(d Deserializer) error {
	var err error
	if v.Name, err = d.ReadString(); err != nil {
		return err
	}
	v.Rank, err = d.ReadInt32()
	return err
}

// record exercises every container shape plus the skip and no-dedup
// markers. Scratch is a skipped field: it is never visited by either
// pass and must decode to its zero value.
type record struct {
	Title    string
	Alias    string
	Comment  string // no-dedup marker: always inline
	Values   []labeledValue
	Tags     map[string][]string
	Optional *uint64
	Events   []event
	Scratch  []byte // skip marker: zero bytes on the wire
}

func (r record) Serialize(w Serializer) error {
	if err := w.WriteString(r.Title); err != nil {
		return err
	}
	if err := w.WriteString(r.Alias); err != nil {
		return err
	}
	if err := w.WriteStringNoDedup(r.Comment); err != nil {
		return err
	}
	if err := WriteSlice(w, r.Values, func(w Serializer, v labeledValue) error { return v.Serialize(w) }); err != nil {
		return err
	}
	if err := WriteMap(w, r.Tags,
		func(w Serializer, k string) error { return w.WriteString(k) },
		func(w Serializer, vs []string) error {
			return WriteSlice(w, vs, func(w Serializer, s string) error { return w.WriteString(s) })
		}); err != nil {
		return err
	}
	if err := WriteOption(w, r.Optional, func(w Serializer, v uint64) error { return w.WriteUint64(v) }); err != nil {
		return err
	}
	return WriteSlice(w, r.Events, writeEvent)
}

func (r *record) Deserialize(d Deserializer) error {
	var err error
	if r.Title, err = d.ReadString(); err != nil {
		return err
	}
	if r.Alias, err = d.ReadString(); err != nil {
		return err
	}
	if r.Comment, err = d.ReadStringNoDedup(); err != nil {
		return err
	}
	if r.Values, err = ReadSlice(d, func(d Deserializer) (labeledValue, error) {
		var v labeledValue
		err := v.Deserialize(d)
		return v, err
	}); err != nil {
		return err
	}
	if r.Tags, err = ReadMap(d,
		func(d Deserializer) (string, error) { return d.ReadString() },
		func(d Deserializer) ([]string, error) {
			return ReadSlice(d, func(d Deserializer) (string, error) { return d.ReadString() })
		}); err != nil {
		return err
	}
	if r.Optional, err = ReadOption(d, func(d Deserializer) (uint64, error) { return d.ReadUint64() }); err != nil {
		return err
	}
	if r.Events, err = ReadSlice(d, readEvent); err != nil {
		return err
	}
	// Skipped field: nothing on the wire, decodes to the zero value.
	r.Scratch = nil
	return nil
}

// event is a sum type with three variants. Discriminants are the
// zero-based declaration order: started=0, progress=1, done=2.
type event interface {
	Serializable
	discriminant() uint64
}

type eventStarted struct{}

func (eventStarted) discriminant() uint64       { return 0 }
func (eventStarted) Serialize(Serializer) error { return nil }

type eventProgress struct {
	Percent int32
	Detail  string
}

func (eventProgress) discriminant() uint64 { return 1 }

func (e eventProgress) Serialize(w Serializer) error {
	if err := w.WriteInt32(e.Percent); err != nil {
		return err
	}
	return w.WriteString(e.Detail)
}

type eventDone struct {
	Code int64
}

func (eventDone) discriminant() uint64 { return 2 }

func (e eventDone) Serialize(w Serializer) error {
	return w.WriteInt64(e.Code)
}

func writeEvent(w Serializer, e event) error {
	if err := w.WriteDiscriminant(e.discriminant()); err != nil {
		return err
	}
	return e.Serialize(w)
}

func readEvent(d Deserializer) (event, error) {
	tag, err := d.ReadDiscriminant()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return eventStarted{}, nil
	case 1:
		var e eventProgress
		if e.Percent, err = d.ReadInt32(); err != nil {
			return nil, err
		}
		if e.Detail, err = d.ReadString(); err != nil {
			return nil, err
		}
		return e, nil
	case 2:
		var e eventDone
		if e.Code, err = d.ReadInt64(); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("event: unknown discriminant %d", tag)
	}
}

func sampleRecord() record {
	optional := uint64(12415165)
	return record{
		Title:   "build-pipeline",
		Alias:   "build-pipeline",
		Comment: "build-pipeline", // same content, but exempt from dedup
		Values: []labeledValue{
			{Name: "yyyyyyyyyyyyyyyyyy", Rank: 4},
			{Name: "a", Rank: 4},
			{Name: "yyyyyyyyyyyyyyyyyy", Rank: 4},
			{Name: "ab", Rank: -4},
			{Name: "abc", Rank: 1992323},
		},
		Tags: map[string][]string{
			"a":  {"a", "b", "c"},
			"a1": {"a1", "b1", "c1"},
		},
		Optional: &optional,
		Events: []event{
			eventStarted{},
			eventProgress{Percent: 42, Detail: "linking"},
			eventDone{Code: 23456788765432},
		},
		Scratch: []byte("never serialized"),
	}
}

func allModes() map[string]Mode {
	return map[string]Mode{
		"default":            DefaultMode(),
		"dedup":              DedupMode(),
		"dedup+fixed_varint": DedupMode().WithFixedSizeVarint(true),
		"fixed_varint":       DefaultMode().WithFixedSizeVarint(true),
	}
}

func TestRecordRoundTripAllModes(t *testing.T) {
	original := sampleRecord()
	for name, mode := range allModes() {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalMode(original, mode)
			if err != nil {
				t.Fatalf("MarshalMode: %v", err)
			}

			var decoded record
			if err := UnmarshalMode(data, &decoded, mode); err != nil {
				t.Fatalf("UnmarshalMode: %v", err)
			}

			// The skipped field is not on the wire; erase it from the
			// expectation before comparing.
			want := original
			want.Scratch = nil
			if !reflect.DeepEqual(decoded, want) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", decoded, want)
			}
		})
	}
}

func TestSkippedFieldDecodesToZeroValue(t *testing.T) {
	original := sampleRecord()
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// Pre-populate the target to prove the skipped field is reset to
	// its zero value, not read from the stream or left as-is.
	decoded := record{Scratch: []byte("stale")}
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Scratch != nil {
		t.Errorf("skipped field = %q, want zero value", decoded.Scratch)
	}

	// A record with and without the skipped field set must encode to
	// identical bytes: skip contributes nothing to the stream.
	bare := original
	bare.Scratch = nil
	bareData, err := Marshal(bare)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, bareData) {
		t.Errorf("skipped field changed the encoding: %x != %x", data, bareData)
	}
}

func TestDedupSizeDominance(t *testing.T) {
	original := sampleRecord()
	plain, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	deduped, err := MarshalMode(original, DedupMode())
	if err != nil {
		t.Fatalf("MarshalMode: %v", err)
	}
	if len(deduped) >= len(plain) {
		t.Errorf("dedup encoding is %d bytes, default is %d; want strictly smaller",
			len(deduped), len(plain))
	}
}

func TestEnumDiscriminantOrder(t *testing.T) {
	variants := []struct {
		event event
		tag   byte
	}{
		{eventStarted{}, 0},
		{eventProgress{Percent: 7, Detail: "d"}, 1},
		{eventDone{Code: -9}, 2},
	}
	for _, variant := range variants {
		var buffer bytes.Buffer
		w := newWriter(&buffer, Mode{})
		if err := writeEvent(w, variant.event); err != nil {
			t.Fatalf("writeEvent: %v", err)
		}
		if buffer.Bytes()[0] != variant.tag {
			t.Errorf("%T: wire discriminant %d, want %d", variant.event, buffer.Bytes()[0], variant.tag)
		}

		decoded, err := readEvent(newReader(&buffer, Mode{}, nil))
		if err != nil {
			t.Fatalf("readEvent: %v", err)
		}
		if !reflect.DeepEqual(decoded, variant.event) {
			t.Errorf("round trip: got %+v, want %+v", decoded, variant.event)
		}
	}
}

func TestEnumUnknownDiscriminant(t *testing.T) {
	_, err := readEvent(newReader(bytes.NewReader([]byte{0x03}), Mode{}, nil))
	if err == nil || err.Error() != "event: unknown discriminant 3" {
		t.Errorf("got %v, want unknown discriminant error", err)
	}
}

func TestDedupIndexOutOfRange(t *testing.T) {
	// Hand-built buffer: a one-entry table, then a payload index of 5.
	wire := []byte{
		0x01,      // table count
		0x01, 'a', // entry 0
		0x05,      // payload: index 5, out of range
	}
	var decoded boxedString
	err := UnmarshalMode(wire, &decoded, DedupMode())
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestModeMismatchDoesNotPanic(t *testing.T) {
	// Decoding a default-mode buffer in dedup mode misreads bytes but
	// must fail (or succeed with wrong data) without panicking, and
	// out-of-range indices must surface the range error.
	data, err := Marshal(boxedString("abc"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded record
	_ = UnmarshalMode(data, &decoded, DedupMode())
}

func TestEncodeToStreamDecodeFromStream(t *testing.T) {
	original := sampleRecord()
	mode := DedupMode().WithFixedSizeVarint(true)

	var stream bytes.Buffer
	if err := EncodeMode(&stream, original, mode); err != nil {
		t.Fatalf("EncodeMode: %v", err)
	}
	trailer := []byte{0xAA, 0xBB}
	stream.Write(trailer)

	var decoded record
	if err := DecodeMode(&stream, &decoded, mode); err != nil {
		t.Fatalf("DecodeMode: %v", err)
	}

	want := original
	want.Scratch = nil
	if !reflect.DeepEqual(decoded, want) {
		t.Errorf("stream round trip mismatch:\ngot  %+v\nwant %+v", decoded, want)
	}
	// Decode must consume exactly one encoded value.
	if !bytes.Equal(stream.Bytes(), trailer) {
		t.Errorf("stream position after decode: %x left, want %x", stream.Bytes(), trailer)
	}
}

func TestRepeatedEncodesAreByteIdentical(t *testing.T) {
	original := sampleRecord()
	for name, mode := range allModes() {
		t.Run(name, func(t *testing.T) {
			first, err := MarshalMode(original, mode)
			if err != nil {
				t.Fatalf("MarshalMode: %v", err)
			}
			second, err := MarshalMode(original, mode)
			if err != nil {
				t.Fatalf("MarshalMode: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("encoding not deterministic:\n%x\n%x", first, second)
			}
		})
	}
}

func TestCustomErrorPropagatesUnchanged(t *testing.T) {
	wire := []byte{0x03} // discriminant 3 inside a one-element sequence
	d := newReader(bytes.NewReader(append([]byte{0x01}, wire...)), Mode{}, nil)
	_, err := ReadSlice(d, readEvent)
	if err == nil || err.Error() != "event: unknown discriminant 3" {
		t.Errorf("got %v, want the caller's own error, unwrapped", err)
	}
}
