// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package depgraph computes the k2dr dependency indices shared by the full
// producer and the quick calculator. Keeping this in one place is what
// makes "quick_calc equals produce_dag for every pos" checkable by
// construction rather than by coincidence: both callers derive
// pos_high/pos_low from the exact same code.
package depgraph

import "math/big"

// Positions returns the high-window and low-window dependency indices for
// DAG entry i under divisor d, given curpicker == init^i mod P. Both
// returned indices satisfy 0 <= pos < i for any i >= 1.
//
// f = floor(i/d) + 1 is the width of both windows. pos_high falls in the
// last f entries [i-f, i-1]; pos_low falls in the first f entries [0,
// f-1]. For i < d, f collapses to 1, so pos_high is always i-1 and pos_low
// is always 0 -- this is intentional bootstrapping behavior, not an edge
// case to special-case away.
func Positions(d uint32, i uint64, curpicker *big.Int) (posHigh, posLow uint64) {
	f := i/uint64(d) + 1
	fBig := new(big.Int).SetUint64(f)

	highMod := new(big.Int).Mod(curpicker, fBig)
	posHigh = i - f + highMod.Uint64()

	consumed := new(big.Int).Rsh(curpicker, 10)
	lowMod := new(big.Int).Mod(consumed, fBig)
	posLow = f - lowMod.Uint64() - 1

	return posHigh, posLow
}
