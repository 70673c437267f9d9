// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// OffsT is the type used for offset and length in PField.
type OffsT uint32

// PField locates a parsed token (method, URL, header name or value, ...)
// inside a buffer the caller owns, as an offset and length pair instead of
// a copied slice. It is the storage representation Handler implementations
// are expected to use when they retain a message's raw bytes themselves
// (the engine has none of its own to hand out, see SPEC_FULL.md §5): a
// handler appends accepted bytes to its own growing buffer and snapshots
// the resulting PField when the corresponding On* event fires.
type PField struct {
	Offs OffsT
	Len  OffsT
}

// Set points the field at buf[start:end).
func (f *PField) Set(start, end int) {
	f.Offs = OffsT(start)
	f.Len = OffsT(end - start)
	if end < start {
		panic("invalid range")
	}
}

// Reset sets the field to the empty value.
func (f *PField) Reset() {
	f.Offs = 0
	f.Len = 0
}

// Empty returns true if the field has 0 length.
func (f PField) Empty() bool {
	return f.Len == 0
}

// EndOffs returns the offset right after the field's last byte.
func (f PField) EndOffs() int {
	return int(f.Offs) + int(f.Len)
}

// Get returns the byte slice in buf corresponding to the field.
func (f PField) Get(buf []byte) []byte {
	return buf[f.Offs : f.Offs+f.Len]
}
