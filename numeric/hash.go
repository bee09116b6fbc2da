// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package numeric defines the fixed-width identifiers and amounts shared
// across the ledger: 32-byte accounts and block hashes, and 128-bit
// saturating balances.
package numeric

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// HashSize is the size, in bytes, of a block hash or account identifier.
const HashSize = chainhash.HashSize

// Hash is a 32-byte BLAKE2b digest. BlockHash and Account are both plain
// Hash values; the type alias keeps their hex/short-string encoding and
// zero-value semantics identical while letting call sites read as intent.
type Hash = chainhash.Hash

// BlockHash identifies a block by the BLAKE2b-256 digest of its field
// region (see blocks.Hash).
type BlockHash = Hash

// Account identifies an account by its raw Ed25519 public key. Nano-style
// account chains have no separate address hash step: the account
// identifier *is* the public key.
type Account = Hash

// ZeroHash is the all-zero hash, used as the sentinel "no previous block"
// root and the zero link of a change block.
var ZeroHash Hash

// NewHashFromBytes copies b (must be HashSize long) into a new Hash.
func NewHashFromBytes(b []byte) (Hash, error) {
	h, err := chainhash.NewHash(b)
	if err != nil {
		return Hash{}, err
	}
	return *h, nil
}

// IsZero reports whether h is the all-zero sentinel hash.
func IsZero(h Hash) bool {
	return h == ZeroHash
}

// ShortString returns an 8-character base58 prefix of h, suitable for log
// lines where the full hex digest would be noise. Distinct from h.String()
// (canonical hex), grounded on the teacher's practice of a terse log-only
// rendering separate from the wire/storage encoding.
func ShortString(h Hash) string {
	enc := shortBase58(h[:])
	if len(enc) > 8 {
		enc = enc[:8]
	}
	return enc
}
