// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miner implements the mining loop: enumerating nonces in parallel
// against a read-only DAG-set and returning the first one whose hashimoto
// mix falls under the difficulty target.
package miner

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/dcrd/crypto/rand"

	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/hashimoto"
	"vigil.network/dagpow/internal/field"
)

// Result is a winning (nonce, mix) pair: hashimoto.Hash(params, view,
// header, Nonce) == Mix, and Mix is at or under the difficulty target.
type Result struct {
	Nonce uint64
	Mix   field.Entry
}

// Miner searches a read-only DAGView for a nonce satisfying one header's
// difficulty predicate. A Miner is single-use per Mine call but may be
// reused for a later header once the previous call returns.
type Miner struct {
	params dagparams.Params
	view   hashimoto.DAGView

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New returns a Miner that searches view under params.
func New(params dagparams.Params, view hashimoto.DAGView) *Miner {
	return &Miner{params: params, view: view}
}

// Stop cancels any Mine call currently in progress. It is safe to call at
// any time, including when no search is running.
func (m *Miner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

// Mine enumerates nonces against header until one is found whose mix
// satisfies params.Target(), ctx is cancelled, or Stop is called. workers
// <= 0 defaults to GOMAXPROCS. Worker w starts at a CSPRNG-chosen nonce
// congruent to w modulo the worker count and advances by the worker count,
// so workers search disjoint residue classes and do not re-check each
// other's nonces (unless a worker's nonce wraps past 2^64): nonce search is
// embarrassingly parallel. Workers poll for cancellation once per nonce
// attempt, never inside the Lookups-iteration mix itself.
func (m *Miner) Mine(ctx context.Context, header []byte, workers int) (Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()
	defer cancel()

	target := m.params.Target()

	var found atomic.Bool
	var result Result
	var resultOnce sync.Once
	var attempts atomic.Uint64

	log.Infof("mining started: %d workers, diff=%d", workers, m.params.Diff)
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		stride := uint64(workers)
		nonce := rand.Uint64()
		nonce = nonce - nonce%stride + uint64(w)
		wg.Add(1)
		go func(nonce uint64) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if found.Load() {
					return
				}

				mix := hashimoto.Hash(m.params, m.view, header, nonce)
				attempts.Add(1)
				if mix.Big().Cmp(target) <= 0 {
					if found.CompareAndSwap(false, true) {
						resultOnce.Do(func() {
							result = Result{Nonce: nonce, Mix: mix}
						})
						cancel()
					}
					return
				}

				nonce += stride
			}
		}(nonce)
	}
	wg.Wait()

	if !found.Load() {
		log.Infof("mining cancelled after %d attempts in %s", attempts.Load(), time.Since(start))
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, context.Canceled
	}

	log.Infof("found nonce %d after %d attempts in %s", result.Nonce, attempts.Load(), time.Since(start))
	return result, nil
}
