// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a virtual position cannot be
// constructed from the given coordinates.
var ErrInvalidArgument = errors.New("bgzf: invalid argument")

// maxCoffset is the largest coffset representable in a virtual position.
const maxCoffset = 1<<48 - 1

// maxUoffset is the largest uoffset representable in a virtual position.
const maxUoffset = 1<<16 - 1

// Offset is a virtual file offset into a BGZF stream: the byte offset of
// the compressed block holding the referenced byte (coffset) packed with
// the byte offset of that byte within the block's decompressed payload
// (uoffset).
//
// Offset is total ordered by (coffset, uoffset); addition and subtraction
// are not meaningful operations on it. The zero Offset denotes the start
// of the stream.
type Offset struct {
	File  int64
	Block uint16
}

// Pack constructs an Offset from a compressed byte offset and an
// uncompressed byte offset within the block at that offset. It fails
// with ErrInvalidArgument if coffset or uoffset are out of range.
func Pack(coffset int64, uoffset uint16) (Offset, error) {
	if coffset < 0 || coffset > maxCoffset {
		return Offset{}, fmt.Errorf("%w: compressed offset %d out of range", ErrInvalidArgument, coffset)
	}
	return Offset{File: coffset, Block: uoffset}, nil
}

// Coffset returns the compressed block offset encoded in o.
func (o Offset) Coffset() int64 { return o.File }

// Uoffset returns the uncompressed payload offset encoded in o.
func (o Offset) Uoffset() uint16 { return o.Block }

// Compressed reports the raw 64-bit virtual position packing o as
// (coffset<<16)|uoffset. This matches the on-disk representation used by
// BAI, TABIX and CSI indexes.
func (o Offset) Compressed() uint64 {
	return uint64(o.File)<<16 | uint64(o.Block)
}

// FromVirtual reconstructs an Offset from a packed 64-bit virtual position.
func FromVirtual(v uint64) Offset {
	return Offset{File: int64(v >> 16), Block: uint16(v)}
}

// Compare returns -1, 0 or 1 as o is less than, equal to, or greater than
// p, ordering lexicographically by (coffset, uoffset).
func (o Offset) Compare(p Offset) int {
	switch {
	case o.File < p.File:
		return -1
	case o.File > p.File:
		return 1
	case o.Block < p.Block:
		return -1
	case o.Block > p.Block:
		return 1
	default:
		return 0
	}
}

// Less reports whether o orders before p.
func (o Offset) Less(p Offset) bool { return o.Compare(p) < 0 }

func (o Offset) String() string {
	return fmt.Sprintf("%d:%d", o.File, o.Block)
}
