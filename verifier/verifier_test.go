// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier

import (
	"context"
	"testing"
	"time"

	"vigil.network/dagpow/dag"
	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/hashimoto"
	"vigil.network/dagpow/miner"
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

func seeds(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte('0' + i)}
	}
	return out
}

func TestVerifyAcceptsAMinedNonce(t *testing.T) {
	p := reducedParams()
	ss := seeds(int(p.NumDAGs))

	set := dag.NewSet(p)
	if err := set.Build(context.Background(), ss); err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m := miner.New(p, set)
	result, err := m.Mine(ctx, []byte("verify-me"), 1)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}

	ok, err := Verify(p, ss, []byte("verify-me"), result.Nonce)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("Verify rejected a nonce the miner itself produced")
	}
}

func TestVerifyAgreesWithFastPath(t *testing.T) {
	p := reducedParams()
	ss := seeds(int(p.NumDAGs))

	set := dag.NewSet(p)
	if err := set.Build(context.Background(), ss); err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, nonce := range []uint64{0, 1, 2, 100} {
		ok, err := Verify(p, ss, []byte("agree"), nonce)
		if err != nil {
			t.Fatalf("Verify(nonce=%d): %v", nonce, err)
		}
		mix := hashimoto.Hash(p, set, []byte("agree"), nonce)
		wantOk := mix.Big().Cmp(p.Target()) <= 0
		if ok != wantOk {
			t.Fatalf("nonce=%d: Verify=%v, fast-path predicate=%v", nonce, ok, wantOk)
		}
	}
}

func TestVerifyPropagatesSeedCountMismatch(t *testing.T) {
	p := reducedParams()
	_, err := Verify(p, seeds(int(p.NumDAGs)-1), []byte("h"), 0)
	if err == nil {
		t.Fatalf("expected an error for mismatched seed count")
	}
}
