// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hasher wraps the 256-bit cryptographic sponge the engine treats
// as an abstract primitive: H(bytes) -> 32 bytes. The engine itself never
// depends on a concrete hash algorithm; it depends on this interface, so a
// deployment can choose which sponge to run as long as miners and
// verifiers agree.
package hasher

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/blake256"
	"lukechampine.com/blake3"
)

// Hasher computes a deterministic 256-bit digest of an arbitrary byte
// string. Implementations must be safe for concurrent use by multiple
// goroutines, since the mining loop calls Sum256 from every worker.
type Hasher interface {
	Sum256(data []byte) chainhash.Hash
}

// Algo names a concrete Hasher implementation. The zero value selects the
// default.
type Algo string

const (
	// AlgoBlake256 is the default sponge: Decred's production block hash.
	AlgoBlake256 Algo = "blake256"

	// AlgoBlake3 is an alternate sponge, offered so a deployment can swap
	// the hash primitive without touching the producer, quick calculator
	// or mixer: algorithmic identity is a deployment parameter, not
	// something baked into the engine's control flow.
	AlgoBlake3 Algo = "blake3"
)

// New returns the Hasher for the named algorithm. An empty or unrecognized
// Algo falls back to AlgoBlake256.
func New(algo Algo) Hasher {
	switch algo {
	case AlgoBlake3:
		return blake3Hasher{}
	default:
		return blake256Hasher{}
	}
}

type blake256Hasher struct{}

func (blake256Hasher) Sum256(data []byte) chainhash.Hash {
	return chainhash.Hash(blake256.Sum256(data))
}

type blake3Hasher struct{}

func (blake3Hasher) Sum256(data []byte) chainhash.Hash {
	return chainhash.Hash(blake3.Sum256(data))
}
