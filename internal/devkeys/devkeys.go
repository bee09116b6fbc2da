// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package devkeys deterministically derives the well-known keypairs a
// test or simulation network needs (genesis account, epoch signers,
// fixture accounts for integration tests) from a single seed, the way
// hdkeychain/v3's example derives a wallet's whole address tree from one
// master key. This is not a wallet: it has no notion of balances,
// accounts-in-the-ledger-sense, or signing requests, only "derive me the
// Nth deterministic keypair".
package devkeys

import (
	"github.com/decred/dcrd/chaincfg/v3"
	"github.com/decred/dcrd/hdkeychain/v3"

	"github.com/repchain/repchaind/nodecrypto"
)

// hardened offsets each purpose into its own hardened-derivation subtree
// so, e.g., genesis and epoch-signer keys can never collide even if a
// caller asks for the same index under a different purpose.
const (
	purposeGenesis uint32 = hdkeychain.HardenedKeyStart + iota
	purposeEpochSigner
	purposeFixture
)

// Tree derives deterministic keypairs from a single seed. It wraps
// hdkeychain/v3's BIP32 derivation purely as a seed expander: each child
// extended key's serialized EC private key bytes become the 32-byte seed
// fed to nodecrypto.NewPrivateKeyFromSeed, since the ledger itself signs
// with Ed25519, not secp256k1.
type Tree struct {
	master *hdkeychain.ExtendedKey
}

// New builds a Tree from a raw seed (32 to 64 bytes, see
// hdkeychain.GenerateSeed for the recommended length).
func New(seed []byte) (*Tree, error) {
	master, err := hdkeychain.NewMaster(seed, chaincfg.MainNetParams())
	if err != nil {
		return nil, err
	}
	return &Tree{master: master}, nil
}

// GenesisKey derives the network's genesis account keypair: m/genesis'.
func (t *Tree) GenesisKey() (nodecrypto.PrivateKey, error) {
	return t.derive(purposeGenesis, 0)
}

// EpochSignerKey derives the keypair authorized to sign the upgrade to
// epoch: m/epochSigner'/epoch.
func (t *Tree) EpochSignerKey(epoch uint32) (nodecrypto.PrivateKey, error) {
	return t.derive(purposeEpochSigner, epoch)
}

// FixtureKey derives the index'th deterministic test-fixture keypair:
// m/fixture'/index, used by integration tests that need many distinct,
// reproducible accounts without hand-rolling a fixed list of seeds.
func (t *Tree) FixtureKey(index uint32) (nodecrypto.PrivateKey, error) {
	return t.derive(purposeFixture, index)
}

func (t *Tree) derive(purpose, index uint32) (nodecrypto.PrivateKey, error) {
	purposeKey, err := t.master.Child(purpose)
	if err != nil {
		return nodecrypto.PrivateKey{}, err
	}
	child, err := purposeKey.Child(index)
	if err != nil {
		return nodecrypto.PrivateKey{}, err
	}
	ecKey, err := child.ECPrivKey()
	if err != nil {
		return nodecrypto.PrivateKey{}, err
	}
	var seed [32]byte
	copy(seed[:], ecKey.Serialize())
	return nodecrypto.NewPrivateKeyFromSeed(seed), nil
}
