// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binning implements the UCSC hierarchical binning scheme shared
// by the BAI, TABIX and CSI index formats. CSI generalizes the fixed
// minShift=14, depth=5 scheme used by BAI/TABIX to an arbitrary minimum
// shift and depth; the fixed-scheme functions here are thin wrappers
// over the generalized ones.
package binning

// NextBinShift is the number of bits of genomic coordinate consumed per
// additional level of the binning tree.
const NextBinShift = 3

// Fixed scheme parameters used by BAI and TABIX indexes.
const (
	FixedMinShift = 14
	FixedDepth    = 5
)

// BinFor returns the bin number for the smallest bin in the fixed
// (minShift=14, depth=5) scheme that fully contains the interval
// [beg,end) (zero-based, half-open).
func BinFor(beg, end int) uint32 {
	return RegionToBin(int64(beg), int64(end), FixedMinShift, FixedDepth)
}

// OverlappingBinsFor returns the bin numbers of every bin in the fixed
// (minShift=14, depth=5) scheme that may overlap [beg,end) (zero-based,
// half-open).
func OverlappingBinsFor(beg, end int) []uint32 {
	return Reg2Bins(int64(beg), int64(end), FixedMinShift, FixedDepth)
}

// RegionToBin returns the smallest bin, in a scheme with the given
// minShift and depth, that fully contains [beg,end) (zero-based,
// half-open).
func RegionToBin(beg, end int64, minShift, depth uint32) uint32 {
	end--
	s := minShift
	t := uint32(((1 << (depth * NextBinShift)) - 1) / 7)
	for level := depth; level > 0; level-- {
		offset := beg >> s
		if offset == end>>s {
			return t + uint32(offset)
		}
		s += NextBinShift
		t -= 1 << ((level - 1) * NextBinShift)
	}
	return 0
}

// Reg2Bins returns the bin numbers, in a scheme with the given minShift
// and depth, of every bin that may overlap [beg,end) (zero-based,
// half-open).
func Reg2Bins(beg, end int64, minShift, depth uint32) []uint32 {
	end--
	var list []uint32
	s := minShift + depth*NextBinShift
	for level, t := uint32(0), uint32(0); level <= depth; level++ {
		b := t + uint32(beg>>s)
		e := t + uint32(end>>s)
		for i := b; i <= e; i++ {
			list = append(list, i)
		}
		s -= NextBinShift
		t += 1 << (level * NextBinShift)
	}
	return list
}

// MetadataBinID returns the bin number of the pseudo-bin used to carry
// per-reference mapped/unmapped statistics in a scheme of the given
// depth. For the fixed BAI/TABIX scheme (depth=5) this is 37450
// (0x924a); CSI generalizes the same formula to its configured depth.
func MetadataBinID(depth uint32) uint32 {
	return uint32(((1 << ((depth + 1) * NextBinShift)) - 1) / 7 + 1)
}
