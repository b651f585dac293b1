// Copyright 2026 The Packwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/packwire/packwire/lib/dedup"

// prescanner is the dry-run realization of Serializer. It replays the
// exact traversal the writer will perform but emits nothing; its only
// effect is feeding every dedup-eligible string into an owned
// build-form table. The table it accumulates is written to the stream
// head before the real pass runs.
//
// The traversal invariant: the prescan and the write pass must visit
// the same fields in the same order with the same no-dedup exemptions.
// Both passes execute the same Serialize methods under the same Mode,
// which is what makes the independently derived index assignments
// agree. A divergence would not fail loudly — it would silently decode
// wrong strings — so Serialize implementations must not branch on
// anything that differs between passes.
type prescanner struct {
	mode  Mode
	table *dedup.Table
}

func newPrescanner(mode Mode) *prescanner {
	return &prescanner{mode: mode, table: dedup.NewTable()}
}

func (p *prescanner) Mode() Mode { return p.mode }

func (p *prescanner) WriteBool(bool) error       { return nil }
func (p *prescanner) WriteUint8(uint8) error     { return nil }
func (p *prescanner) WriteUint16(uint16) error   { return nil }
func (p *prescanner) WriteUint32(uint32) error   { return nil }
func (p *prescanner) WriteUint64(uint64) error   { return nil }
func (p *prescanner) WriteInt8(int8) error       { return nil }
func (p *prescanner) WriteInt16(int16) error     { return nil }
func (p *prescanner) WriteInt32(int32) error     { return nil }
func (p *prescanner) WriteInt64(int64) error     { return nil }
func (p *prescanner) WriteFloat32(float32) error { return nil }
func (p *prescanner) WriteFloat64(float64) error { return nil }

func (p *prescanner) WriteString(s string) error {
	p.table.Intern(s)
	return nil
}

// WriteStringNoDedup is a no-op: exempt fields never enter the table.
func (p *prescanner) WriteStringNoDedup(string) error { return nil }

func (p *prescanner) WriteLen(n int) error {
	if n < 0 {
		return newNegativeLenError(n)
	}
	return nil
}

func (p *prescanner) WriteDiscriminant(uint64) error { return nil }
