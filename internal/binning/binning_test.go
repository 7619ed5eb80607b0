// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binning

import "testing"

func TestBinForFixedScheme(t *testing.T) {
	// A single base interval always falls into the smallest bin.
	if got := BinFor(0, 1); got != 4681 {
		t.Errorf("BinFor(0, 1) = %d, want 4681", got)
	}
	// An interval spanning the whole addressable range falls into bin 0.
	if got := BinFor(0, 1<<29); got != 0 {
		t.Errorf("BinFor(0, 1<<29) = %d, want 0", got)
	}
}

func TestOverlappingBinsForIncludesBinFor(t *testing.T) {
	beg, end := 62914561-1, 62914561-1+6291456
	want := BinFor(beg, end)
	bins := OverlappingBinsFor(beg, end)
	found := false
	for _, b := range bins {
		if b == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("OverlappingBinsFor(%d, %d) = %v does not contain BinFor result %d", beg, end, bins, want)
	}
}

func TestRegionToBinMatchesFixedWrapper(t *testing.T) {
	beg, end := 1000, 5000
	if got, want := RegionToBin(int64(beg), int64(end), FixedMinShift, FixedDepth), BinFor(beg, end); got != want {
		t.Errorf("RegionToBin(fixed) = %d, want %d (BinFor)", got, want)
	}
}

func TestMetadataBinIDFixedDepth(t *testing.T) {
	if got := MetadataBinID(FixedDepth); got != 37450 {
		t.Errorf("MetadataBinID(5) = %d, want 37450", got)
	}
}

func TestReg2BinsGeneralizedDepth(t *testing.T) {
	// A generalized scheme with the fixed parameters must agree with the
	// fixed-scheme wrapper.
	beg, end := 100, 200
	got := Reg2Bins(int64(beg), int64(end), FixedMinShift, FixedDepth)
	want := OverlappingBinsFor(beg, end)
	if len(got) != len(want) {
		t.Fatalf("Reg2Bins length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Reg2Bins[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
