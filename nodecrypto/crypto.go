// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodecrypto wraps the signing, hashing, and proof-of-work
// primitives the ledger and election cores depend on: Ed25519 signatures,
// BLAKE2b-256 digests, and the BLAKE2b(work||root) >= threshold PoW check.
package nodecrypto

import (
	"crypto/ed25519"
	"errors"

	"golang.org/x/crypto/blake2b"

	"github.com/repchain/repchaind/numeric"
)

// SignatureSize is the length in bytes of an Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// Signature is a detached Ed25519 signature over a block or vote hash.
type Signature [SignatureSize]byte

// PrivateKey signs blocks and votes for its corresponding Account.
type PrivateKey struct {
	seed ed25519.PrivateKey
}

// NewPrivateKeyFromSeed derives a signing key from a 32-byte seed, the way
// an opaque wallet signer would hand the block processor a signed block
// without the core ever seeing key-management semantics.
func NewPrivateKeyFromSeed(seed [32]byte) PrivateKey {
	return PrivateKey{seed: ed25519.NewKeyFromSeed(seed[:])}
}

// Account returns the public account identifier for this key.
func (k PrivateKey) Account() numeric.Account {
	pub := k.seed.Public().(ed25519.PublicKey)
	var a numeric.Account
	copy(a[:], pub)
	return a
}

// Sign produces a detached signature over msg (conventionally a block or
// vote hash).
func (k PrivateKey) Sign(msg []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(k.seed, msg))
	return sig
}

// Verify reports whether sig is a valid Ed25519 signature by account over
// msg. It never returns an error: an invalid signature is not exceptional,
// it is the expected outcome for a forged or corrupted block.
func Verify(account numeric.Account, msg []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(account[:]), msg, sig[:])
}

// ErrShortDigest is returned by Hash256 callers that misuse the digest
// size; BLAKE2b-256 is fixed at 32 bytes so this should never surface in
// practice.
var ErrShortDigest = errors.New("nodecrypto: blake2b-256 digest size mismatch")

// Hash256 computes the BLAKE2b-256 digest of the concatenation of parts,
// the canonical block- and vote-hashing primitive (spec.md section 3).
func Hash256(parts ...[]byte) numeric.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for a bad key, and we pass none.
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out numeric.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// WorkDigest computes the 8-byte little-endian prefix of
// BLAKE2b(work || root), interpreted as the value compared against a work
// threshold.
func WorkDigest(work numeric.Work, root numeric.Hash) uint64 {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic(err)
	}
	wb := work.Bytes()
	h.Write(wb[:])
	h.Write(root[:])
	sum := h.Sum(nil)
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(sum[i]) << (8 * uint(i))
	}
	return v
}

// ValidateWork reports whether work meets threshold for root: the digest,
// read as a little-endian uint64, must be >= threshold.
func ValidateWork(work numeric.Work, root numeric.Hash, threshold uint64) bool {
	return WorkDigest(work, root) >= threshold
}
