// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package quickcalc

import (
	"errors"
	"testing"

	"vigil.network/dagpow/dag"
	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/internal/dagerr"
)

func reducedParams() dagparams.Params {
	return dagparams.Params{
		Memory:  1 << 20,
		NumDAGs: 4,
		DAGSize: 4096,
		Lookups: 32,
		Diff:    16,
		K:       2,
		D:       8,
		W:       2,
	}
}

// TestQuickCalcMatchesFullProducer checks that for seed "0" and every pos
// in {0, 1, 7, 8, 100, 4095}, quick_calc(pos) equals produce_dag(seed)[pos].
func TestQuickCalcMatchesFullProducer(t *testing.T) {
	p := reducedParams()
	seed := []byte("0")

	full, err := dag.Produce(p, seed)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}

	for _, pos := range []uint64{0, 1, 7, 8, 100, 4095} {
		known := NewKnownMap(p, seed)
		got, err := Calculate(p, seed, pos, known)
		if err != nil {
			t.Fatalf("Calculate(pos=%d): %v", pos, err)
		}
		if got.Entry != full.Entries[pos] {
			t.Fatalf("pos=%d: quick_calc = %x, produce_dag = %x", pos, got.Entry, full.Entries[pos])
		}
	}
}

func TestQuickCalcMatchesFullProducerForEveryIndex(t *testing.T) {
	p := reducedParams()
	p.DAGSize = 512 // keep the full-sweep test cheap
	seed := []byte("determinism")

	full, err := dag.Produce(p, seed)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}

	known := NewKnownMap(p, seed)
	for pos := uint64(0); pos < uint64(p.DAGSize); pos++ {
		got, err := Calculate(p, seed, pos, known)
		if err != nil {
			t.Fatalf("Calculate(pos=%d): %v", pos, err)
		}
		if got.Entry != full.Entries[pos] {
			t.Fatalf("pos=%d: quick_calc = %x, produce_dag = %x", pos, got.Entry, full.Entries[pos])
		}
	}
}

// TestQuickCalcLocality checks that the known-map after a single call
// contains far fewer than dag_size entries.
func TestQuickCalcLocality(t *testing.T) {
	p := reducedParams()
	seed := []byte("0")
	known := NewKnownMap(p, seed)

	if _, err := Calculate(p, seed, 4095, known); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if len(known) >= int(p.DAGSize) {
		t.Fatalf("known-map has %d entries, expected far fewer than dag_size=%d", len(known), p.DAGSize)
	}
	t.Logf("known-map materialized %d of %d entries for a single pos", len(known), p.DAGSize)
}

func TestCalculateRejectsOutOfRangePos(t *testing.T) {
	p := reducedParams()
	seed := []byte("0")
	known := NewKnownMap(p, seed)
	_, err := Calculate(p, seed, uint64(p.DAGSize), known)
	if !errors.Is(err, dagerr.IndexOutOfRange) {
		t.Fatalf("got %v, want IndexOutOfRange", err)
	}
}

func TestCalculateRequiresPreseededKnownMap(t *testing.T) {
	p := reducedParams()
	_, err := Calculate(p, []byte("0"), 10, KnownMap{})
	if !errors.Is(err, dagerr.IndexOutOfRange) {
		t.Fatalf("got %v, want an error about the missing known[0] seed", err)
	}
}

func TestCrossCallKnownMapsDoNotLeak(t *testing.T) {
	// A fresh NewKnownMap call for a different seed must not see entries
	// left behind by a previous seed's calculation.
	p := reducedParams()
	knownA := NewKnownMap(p, []byte("0"))
	if _, err := Calculate(p, []byte("0"), 100, knownA); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	knownB := NewKnownMap(p, []byte("1"))
	if len(knownB) != 1 {
		t.Fatalf("fresh known-map for a new seed has %d entries, want exactly known[0]", len(knownB))
	}
}
