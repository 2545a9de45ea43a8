// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package quickcalc implements the quick calculator: regenerating a single
// DAG entry at an arbitrary index by memoized, iterative descent into its
// dependencies, without ever materializing the full DAG. This is what
// makes light verification practical.
package quickcalc

import (
	"math/big"

	"vigil.network/dagpow/dag"
	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/internal/dagerr"
	"vigil.network/dagpow/internal/depgraph"
	"vigil.network/dagpow/internal/field"
)

// KnownMap is a per-verification-call memoization cache mapping entry
// index to entry value. It must be preseeded with known[0] before the
// first Calculate call; NewKnownMap does this for you. A KnownMap's
// lifetime is exactly one verification call (or one benchmark run) and it
// must never be reused across seeds or shared as process-wide state --
// doing so would leak one seed's memoized entries into another seed's
// calculation.
type KnownMap map[uint64]field.Entry

// NewKnownMap returns a fresh, per-seed KnownMap preseeded with known[0] =
// init(seed).
func NewKnownMap(p dagparams.Params, seed []byte) KnownMap {
	h := p.Hasher()
	sum := func(data []byte) [32]byte { return [32]byte(h.Sum256(data)) }
	known := make(KnownMap, 64)
	known[0] = field.NewEntry(dag.Init(sum, seed))
	return known
}

// Result reports the outcome of one Calculate call, supplementing the bare
// entry value with a locality accounting figure: the number of entries this
// call actually had to compute (as opposed to finding already memoized in
// known).
type Result struct {
	Entry           field.Entry
	EntriesComputed int
}

// Calculate returns the entry at index pos of seed's DAG, computing and
// memoizing into known only the entries actually reachable from pos
// through the dependency rule.
//
// A naive recursive descent over dependencies is the obvious formulation,
// but it can reach call depth O(dag_size) on an adversarial pos. This
// implementation instead uses an explicit work-stack with postorder
// evaluation, which is observably identical to the recursive version: same
// known-map contents, same returned value, bounded stack depth.
func Calculate(p dagparams.Params, seed []byte, pos uint64, known KnownMap) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if pos >= uint64(p.DAGSize) {
		return Result{}, dagerr.New(dagerr.IndexOutOfRange,
			"quickcalc: pos %d out of range [0, %d)", pos, p.DAGSize)
	}
	if known == nil {
		return Result{}, dagerr.New(dagerr.IndexOutOfRange,
			"quickcalc: known map must be preseeded with known[0] via NewKnownMap")
	}
	if _, ok := known[0]; !ok {
		return Result{}, dagerr.New(dagerr.IndexOutOfRange,
			"quickcalc: known map missing known[0]; use NewKnownMap to construct it")
	}

	if e, ok := known[pos]; ok {
		return Result{Entry: e}, nil
	}

	h := p.Hasher()
	sum := func(data []byte) [32]byte { return [32]byte(h.Sum256(data)) }
	initVal := dag.Init(sum, seed)
	w := big.NewInt(int64(p.W))

	stack := []uint64{pos}
	computed := 0
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		if _, ok := known[idx]; ok {
			stack = stack[:len(stack)-1]
			continue
		}

		curpicker := field.PowMod(initVal, new(big.Int).SetUint64(idx))
		hi, lo := depgraph.Positions(p.D, idx, curpicker)

		_, hiKnown := known[hi]
		_, loKnown := known[lo]
		if hiKnown && loKnown {
			combined := field.Or(known[hi], known[lo])
			known[idx] = field.NewEntry(field.PowMod(combined.Big(), w))
			computed++
			stack = stack[:len(stack)-1]
			continue
		}
		if !hiKnown {
			stack = append(stack, hi)
		}
		if !loKnown {
			stack = append(stack, lo)
		}
	}

	return Result{Entry: known[pos], EntriesComputed: computed}, nil
}
