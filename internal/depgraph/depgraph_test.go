// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package depgraph

import (
	"math/big"
	"testing"
)

func TestBootstrapRegionUsesPreviousAndRoot(t *testing.T) {
	// For i < d, f == 1 so pos_high must be i-1 and pos_low must be 0
	// regardless of curpicker.
	for i := uint64(1); i < 8; i++ {
		curpicker := big.NewInt(int64(i) * 12345)
		hi, lo := Positions(8, i, curpicker)
		if hi != i-1 || lo != 0 {
			t.Fatalf("i=%d: got hi=%d lo=%d, want %d,0", i, hi, lo, i-1)
		}
	}
}

func TestPositionsAreInRange(t *testing.T) {
	d := uint32(8)
	for i := uint64(1); i < 5000; i++ {
		curpicker := new(big.Int).SetUint64(i*2654435761 + 1)
		hi, lo := Positions(d, i, curpicker)
		if hi >= i {
			t.Fatalf("i=%d: pos_high=%d >= i", i, hi)
		}
		if lo >= i {
			t.Fatalf("i=%d: pos_low=%d >= i", i, lo)
		}
		f := i/uint64(d) + 1
		if hi < i-f {
			t.Fatalf("i=%d: pos_high=%d below window [%d, %d)", i, hi, i-f, i)
		}
		if lo >= f {
			t.Fatalf("i=%d: pos_low=%d outside window [0, %d)", i, lo, f)
		}
	}
}
