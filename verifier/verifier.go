// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verifier implements light verification: checking a claimed nonce
// without holding any full DAG, by recomputing the mix through the quick
// calculator and comparing it against the difficulty target.
package verifier

import (
	"vigil.network/dagpow/dagparams"
	"vigil.network/dagpow/hashimoto"
)

// Verify returns true iff light_hashimoto(params, seeds, header, nonce) is
// at or under params.Target(). Because the producer and quick calculator
// are both pure functions of params and seed, this is equivalent to the
// fast-path predicate against any DAG-set actually built from seeds. A
// returned false means the claim is invalid, not that an error occurred;
// the error return is reserved for structural problems (wrong seed count,
// bad params) that make the question unanswerable rather than answering it
// "no".
func Verify(p dagparams.Params, seeds [][]byte, header []byte, nonce uint64) (bool, error) {
	mix, err := hashimoto.LightHash(p, seeds, header, nonce)
	if err != nil {
		return false, err
	}
	return mix.Big().Cmp(p.Target()) <= 0, nil
}
