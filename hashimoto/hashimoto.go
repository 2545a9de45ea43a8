// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashimoto implements the mixing function: turning a (header,
// nonce) pair into a 512-bit mix value through a sequence of
// lookup-dependent indirections. Hash provides the fast path
// against a fully materialized DAG-set; LightHash provides the light path
// against the quick calculator, for verifiers that never hold a full DAG.
package hashimoto

import (
	"encoding/binary"
	"math/big"

	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/internal/dagerr"
	"vigil.network/dagpow/internal/field"
	"vigil.network/dagpow/internal/hasher"
	"vigil.network/dagpow/quickcalc"
)

// DAGView is the read-only surface the fast mixing path needs from a DAG
// set. *dag.Set implements this.
type DAGView interface {
	Lookup(dagIdx, entryIdx uint32) field.Entry
}

// encodeBE64 encodes nonce as exactly 64 big-endian bytes, zero-padded on
// the left. A uint64 nonce can never overflow 64 bytes, so there is no
// truncation case to handle here.
func encodeBE64(nonce uint64) [field.EntrySize]byte {
	var buf [field.EntrySize]byte
	binary.BigEndian.PutUint64(buf[field.EntrySize-8:], nonce)
	return buf
}

// initMix computes decode_be(H(header || encode_be64(nonce)))^2, the seed
// for the hashimoto loop. Unlike DAG entries, this value is not reduced
// modulo P: it is the square of a 256-bit digest, which already fits
// comfortably under 2^512.
func initMix(h hasher.Hasher, header []byte, nonce uint64) field.Entry {
	nonceBytes := encodeBE64(nonce)
	data := make([]byte, 0, len(header)+len(nonceBytes))
	data = append(data, header...)
	data = append(data, nonceBytes[:]...)

	sum := h.Sum256(data)
	v := new(big.Int).SetBytes(sum[:])
	v.Mul(v, v)
	return field.NewEntry(v)
}

func selectIndices(mix field.Entry, numDAGs, dagSize uint32) (dagIdx, entryIdx uint32) {
	v := mix.Big()
	dagIdx = uint32(new(big.Int).Mod(v, big.NewInt(int64(numDAGs))).Uint64())
	entryIdx = uint32(new(big.Int).Mod(v, big.NewInt(int64(dagSize))).Uint64())
	return dagIdx, entryIdx
}

// Hash computes the fast-path mix: lookups iterations, each folding one
// DAG entry into the running mix by XOR. Each iteration's indices depend
// on the previous iteration's mix value, so iterations cannot be
// parallelized or speculated across; only different nonces may run
// concurrently.
func Hash(p dagparams.Params, view DAGView, header []byte, nonce uint64) field.Entry {
	h := p.Hasher()
	mix := initMix(h, header, nonce)
	for i := uint32(0); i < p.Lookups; i++ {
		dagIdx, entryIdx := selectIndices(mix, p.NumDAGs, p.DAGSize)
		mix = field.Xor(mix, view.Lookup(dagIdx, entryIdx))
	}
	return mix
}

// LightHash computes the same mix as Hash, but fetches every touched entry
// through the quick calculator instead of a materialized DAG-set. One
// KnownMap per seed is created and kept alive for the whole call, so
// repeated lookups against the same DAG within these Lookups iterations
// reuse work instead of recomputing it from scratch each time.
func LightHash(p dagparams.Params, seeds [][]byte, header []byte, nonce uint64) (field.Entry, error) {
	if err := p.Validate(); err != nil {
		return field.Entry{}, err
	}
	if uint32(len(seeds)) != p.NumDAGs {
		return field.Entry{}, dagerr.New(dagerr.SeedSetMismatch,
			"hashimoto: got %d seeds, want numdags=%d", len(seeds), p.NumDAGs)
	}

	known := make([]quickcalc.KnownMap, len(seeds))
	for i, s := range seeds {
		known[i] = quickcalc.NewKnownMap(p, s)
	}

	h := p.Hasher()
	mix := initMix(h, header, nonce)
	for i := uint32(0); i < p.Lookups; i++ {
		dagIdx, entryIdx := selectIndices(mix, p.NumDAGs, p.DAGSize)
		res, err := quickcalc.Calculate(p, seeds[dagIdx], uint64(entryIdx), known[dagIdx])
		if err != nil {
			return field.Entry{}, err
		}
		mix = field.Xor(mix, res.Entry)
	}
	return mix, nil
}
