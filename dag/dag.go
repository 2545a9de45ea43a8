// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dag implements the DAG producer and the DAG-set manager: building
// the pseudo-random working set the miner and the fast verifier index into,
// and replacing one DAG in the set when its seed ages out.
package dag

import (
	"math/big"

	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/internal/depgraph"
	"vigil.network/dagpow/internal/field"
)

// DAG is one complete, immutable pseudo-random dataset built from a single
// seed. DAG[0] is the seed's hashed-and-squared init value; every other
// entry depends only on entries at strictly smaller indices.
type DAG struct {
	Seed    []byte
	Entries []field.Entry
}

// Entry returns the entry at index i. Callers that already validated i <
// len(d.Entries) (Set.Lookup, which backs the hashimoto fast path, does by
// construction) should index d.Entries directly instead.
func (d *DAG) Entry(i uint64) field.Entry {
	return d.Entries[i]
}

// Init computes the per-seed root value H(seed)^2 mod P. This is also
// DAG[0].
func Init(h hasherSum256, seed []byte) *big.Int {
	digest := h(seed)
	v := new(big.Int).SetBytes(digest[:])
	return field.MulMod(v, v)
}

// hasherSum256 is the minimal shape of hasher.Hasher.Sum256 this package
// needs; declared locally so dag does not have to import the chainhash
// type just to name a function signature.
type hasherSum256 func(data []byte) [32]byte

// Produce builds the full dag_size-entry DAG for seed, following the k2dr
// dependency rule. It is a pure function of params and seed: calling it
// twice with the same arguments yields byte-identical results.
func Produce(p dagparams.Params, seed []byte) (dag *DAG, err error) {
	if verr := p.Validate(); verr != nil {
		return nil, verr
	}

	defer func() {
		if r := recover(); r != nil {
			dag, err = nil, allocFailed(r)
		}
	}()

	h := p.Hasher()
	sum := func(data []byte) [32]byte {
		return [32]byte(h.Sum256(data))
	}
	initVal := Init(sum, seed)

	entries := make([]field.Entry, p.DAGSize)
	entries[0] = field.NewEntry(initVal)

	picker := big.NewInt(1)
	w := big.NewInt(int64(p.W))
	for i := uint64(1); i < uint64(p.DAGSize); i++ {
		picker = field.MulMod(picker, initVal)
		curpicker := new(big.Int).Set(picker)

		posHigh, posLow := depgraph.Positions(p.D, i, curpicker)
		combined := field.Or(entries[posHigh], entries[posLow])
		entries[i] = field.NewEntry(field.PowMod(combined.Big(), w))
	}

	return &DAG{Seed: append([]byte(nil), seed...), Entries: entries}, nil
}
