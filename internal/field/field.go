// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package field implements the modular arithmetic and fixed-width bitwise
// operations the DAG producer, quick calculator and hashimoto mixer are
// built on. MulMod and PowMod reduce their results into [0, P), where P is
// the fixed composite modulus used by the whole engine; an Entry can hold
// any value below 2^512, and Or and Xor do not reduce modulo P.
package field

import "math/big"

// EntrySize is the fixed width, in bytes, of every stored DAG entry.
const EntrySize = 64

// P is the modulus all producer and quick-calculator arithmetic works
// under: (2^256 - 4294968273)^2. It is deliberately composite rather than
// prime; the construction relies on the cost of modular exponentiation, not
// on any group structure, so primality is not required and must not be
// assumed by callers.
var P *big.Int

func init() {
	base := new(big.Int).Lsh(big.NewInt(1), 256)
	base.Sub(base, big.NewInt(4294968273))
	P = new(big.Int).Mul(base, base)
}

// Entry is one 512-bit DAG value, stored as a fixed-width big-endian byte
// array. Entries are immutable once constructed.
type Entry [EntrySize]byte

// ZeroEntry is the additive identity under XOR and the identity under OR
// with any entry.
var ZeroEntry Entry

// NewEntry encodes a nonnegative integer strictly less than 2^512 as a
// fixed-width, big-endian Entry. It panics if v is negative or does not fit
// in EntrySize bytes; callers are expected to only ever pass values that
// are already known to satisfy that bound (every producer output is < P <
// 2^512).
func NewEntry(v *big.Int) Entry {
	if v.Sign() < 0 {
		panic("field: NewEntry of negative value")
	}
	var e Entry
	v.FillBytes(e[:])
	return e
}

// Big decodes an Entry back into a big-endian unsigned integer.
func (e Entry) Big() *big.Int {
	return new(big.Int).SetBytes(e[:])
}

// MulMod returns (a * b) mod P.
func MulMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, P)
}

// PowMod returns base^exp mod P. exp is typically the small constant w, but
// the quick calculator also uses it with exponents as large as pos, so the
// implementation must not assume exp is small.
func PowMod(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, P)
}

// Or returns the bitwise OR of two entries. OR is used, rather than XOR,
// when the producer combines an entry's two dependencies: it biases the
// combined value toward higher Hamming weight, keeping the subsequent
// PowMod away from degenerate low inputs. Implementations that substitute
// XOR here silently change the puzzle's difficulty profile.
func Or(a, b Entry) Entry {
	var out Entry
	for i := range out {
		out[i] = a[i] | b[i]
	}
	return out
}

// Xor returns the bitwise XOR of two entries, used by the hashimoto mixer
// to fold a DAG entry into the running mix.
func Xor(a, b Entry) Entry {
	var out Entry
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
