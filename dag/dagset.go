// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dag

import (
	"context"
	"math/big"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/internal/dagerr"
	"vigil.network/dagpow/internal/field"
)

// Set owns a fixed-length vector of NumDAGs independent DAGs, paired with
// the seeds that produced them. It is safe for concurrent use: readers (the
// hashimoto fast path) take a read lock per lookup, and Update takes a
// write lock only for the instant it swaps one slot's pointer.
type Set struct {
	params dagparams.Params

	mu    sync.RWMutex
	dags  []*DAG
	seeds [][]byte
}

// NewSet returns an empty, unbuilt Set for params. Call Build before using
// it.
func NewSet(params dagparams.Params) *Set {
	return &Set{params: params}
}

// Params returns the parameters this set was constructed with.
func (s *Set) Params() dagparams.Params {
	return s.params
}

// Build produces every DAG in the set in parallel, one goroutine per slot.
// len(seeds) must equal params.NumDAGs. Build fails only on a
// ConfigInvalid, SeedSetMismatch, or AllocationFailed error, or with ctx's
// error when ctx is done before a slot's build starts; if any DAG fails to
// build, none of the set's existing DAGs (if any) are replaced.
func (s *Set) Build(ctx context.Context, seeds [][]byte) error {
	if err := s.params.Validate(); err != nil {
		return err
	}
	if uint32(len(seeds)) != s.params.NumDAGs {
		return dagerr.New(dagerr.SeedSetMismatch,
			"dag: got %d seeds, want numdags=%d", len(seeds), s.params.NumDAGs)
	}

	built := make([]*DAG, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			d, err := Produce(s.params, seed)
			if err != nil {
				return err
			}
			built[i] = d
			log.Debugf("built DAG slot %d from seed %q in %s", i, seed, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.dags = built
	s.seeds = make([][]byte, len(seeds))
	for i, seed := range seeds {
		s.seeds[i] = append([]byte(nil), seed...)
	}
	s.mu.Unlock()

	log.Infof("built %d DAGs (%d entries each)", len(seeds), s.params.DAGSize)
	return nil
}

// Update regenerates the single DAG at slot idx from new_seed and replaces
// both the seed and the DAG in place. The new DAG is built off to the side
// and swapped in under a write lock, so any concurrent reader sees either
// all of the old DAG or all of the new one, never a mix.
func (s *Set) Update(idx uint32, newSeed []byte) error {
	if idx >= s.params.NumDAGs {
		return dagerr.New(dagerr.IndexOutOfRange,
			"dag: update index %d out of range [0, %d)", idx, s.params.NumDAGs)
	}
	d, err := Produce(s.params, newSeed)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dags[idx] = d
	s.seeds[idx] = append([]byte(nil), newSeed...)
	s.mu.Unlock()

	log.Infof("updated DAG slot %d with new seed %q", idx, newSeed)
	return nil
}

// SlotForSeed returns the default slot a seed ages into: idx =
// decode_be(seed) mod numdags. Mining harnesses that want a different
// placement policy can ignore this and call Update with an explicit index
// instead.
func (s *Set) SlotForSeed(seed []byte) uint32 {
	v := new(big.Int).SetBytes(seed)
	mod := new(big.Int).Mod(v, big.NewInt(int64(s.params.NumDAGs)))
	return uint32(mod.Uint64())
}

// Lookup returns the entry at (dagIdx, entryIdx), taking a read lock for
// the duration of the access. It implements hashimoto.DAGView.
func (s *Set) Lookup(dagIdx, entryIdx uint32) field.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dags[dagIdx].Entries[entryIdx]
}

// Seed returns a copy of the seed currently backing slot idx.
func (s *Set) Seed(idx uint32) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.seeds[idx]...)
}

// DAGAt returns the DAG currently occupying slot idx. The returned pointer
// is a stable, immutable snapshot: a concurrent Update swaps in a new DAG
// rather than mutating this one's entries.
func (s *Set) DAGAt(idx uint32) *DAG {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dags[idx]
}
