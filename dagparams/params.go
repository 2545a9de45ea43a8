// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dagparams defines the tunable parameters of the hashimoto/dagger
// proof-of-work engine and the few pure functions that depend only on
// those parameters: difficulty-target derivation and the mining harness's
// conventional per-epoch seed.
//
// Configuration serialization (reading these from a file or flag set) is
// explicitly out of scope; a Params value is always constructed directly by
// Go code, typically via Default followed by field overrides.
package dagparams

import (
	"math/big"
	"strconv"

	"vigil.network/dagpow/internal/hasher"
)

// Params are the immutable parameters of one deployment of the engine. The
// field set below is closed; there is no "free-form" extension point.
type Params struct {
	// Memory is the total working-set target in bytes across every DAG in
	// the set. Invariant: Memory == NumDAGs * DAGSize * field.EntrySize.
	Memory uint64

	// NumDAGs is the number of independent DAGs held simultaneously.
	NumDAGs uint32

	// DAGSize is the number of entries per DAG.
	DAGSize uint32

	// Lookups is the number of indirections performed per hashimoto mix.
	Lookups uint32

	// Diff is the difficulty divisor: a mix m is accepted iff m <= 2^512 /
	// Diff.
	Diff uint64

	// K is the number of dependencies per DAG entry in the generic
	// producer. The k2dr variant implemented here is hard-coded to two
	// dependencies; K is retained purely as a recognized, validated
	// configuration option that this variant accepts but never reads.
	K uint32

	// D is the dependency-range divisor for the k2dr variant. Must be >=
	// 2.
	D uint32

	// W is the exponent applied to each entry's combined dependency.
	W uint32

	// HashAlgo selects the concrete sponge backing the abstract H
	// primitive. The zero value selects hasher.AlgoBlake256.
	HashAlgo hasher.Algo
}

const entrySize = 64 // same value as field.EntrySize; the two must stay equal.

// Default returns the canonical parameter set: memory = 512 MiB, numdags =
// 128, lookups = 512, diff = 2^14, k = 2, d = 8, w = 2, which fixes
// dag_size = 65536.
func Default() Params {
	const (
		numDAGs = 128
		dagSize = 65536
	)
	return Params{
		Memory:   uint64(numDAGs) * uint64(dagSize) * uint64(entrySize),
		NumDAGs:  numDAGs,
		DAGSize:  dagSize,
		Lookups:  512,
		Diff:     1 << 14,
		K:        2,
		D:        8,
		W:        2,
		HashAlgo: hasher.AlgoBlake256,
	}
}

// Validate checks every structural invariant a Params value must satisfy
// before it can be used to build a DAG-set. It is cheap and has no side
// effects; callers should call it once before Build-ing a DAG-set.
func (p Params) Validate() error {
	switch {
	case p.Memory == 0:
		return configError(ErrConfigInvalid, "memory must be nonzero")
	case p.NumDAGs == 0:
		return configError(ErrConfigInvalid, "numdags must be nonzero")
	case p.DAGSize == 0:
		return configError(ErrConfigInvalid, "dag_size must be nonzero")
	case p.Lookups == 0:
		return configError(ErrConfigInvalid, "lookups must be nonzero")
	case p.Diff == 0:
		return configError(ErrConfigInvalid, "diff must be nonzero")
	case p.K == 0:
		return configError(ErrConfigInvalid, "k must be nonzero")
	case p.D < 2:
		return configError(ErrConfigInvalid, "d must be >= 2, got %d", p.D)
	case p.W == 0:
		return configError(ErrConfigInvalid, "w must be nonzero")
	}
	want := uint64(p.NumDAGs) * uint64(p.DAGSize) * uint64(entrySize)
	if want != p.Memory {
		return configError(ErrConfigInvalid,
			"memory (%d) != numdags * dag_size * %d (%d)", p.Memory, entrySize, want)
	}
	return nil
}

// Hasher returns the Hasher implementation selected by HashAlgo.
func (p Params) Hasher() hasher.Hasher {
	return hasher.New(p.HashAlgo)
}

// Target returns 2^512 / diff as a *big.Int. A mix m is an accepted
// proof-of-work solution iff m <= Target. The division truncates, matching
// a plain-integer reading of "m <= 2^512 / diff".
func (p Params) Target() *big.Int {
	twoTo512 := new(big.Int).Lsh(big.NewInt(1), 512)
	return twoTo512.Div(twoTo512, new(big.Int).SetUint64(p.Diff))
}

// SeedForEpoch returns the conventional decimal-ASCII seed a mining
// harness uses to turn a monotonically increasing epoch counter into an
// opaque seed: "0", "1", "2", ....
func SeedForEpoch(epoch uint64) []byte {
	return []byte(strconv.FormatUint(epoch, 10))
}
