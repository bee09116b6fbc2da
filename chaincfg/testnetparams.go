// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/repchain/repchaind/numeric"
)

// TestNetParams returns network parameters for the public test network:
// same rules as mainnet, lower work thresholds, a shorter election
// lifetime and vote-spacing cooldown, and its own genesis and epoch-signer
// variables, which, like mainnet's, are left at their zero values.
func TestNetParams() *Params {
	p := MainNetParams()
	p.Name = "testnet"
	p.GenesisBlockHash = testnetGenesisHash
	p.GenesisAccount = testnetGenesisAccount
	p.EpochSigners = map[uint8]numeric.Account{1: testnetEpochSigner}
	p.WorkThresholdSend = 0xfffffe0000000000
	p.WorkThresholdReceive = 0xffffff0000000000
	p.ElectionLifetime = 2 * time.Minute
	p.VoteSpacingCooldown = 50 * time.Millisecond
	return p
}

var (
	testnetGenesisHash    numeric.Hash
	testnetGenesisAccount numeric.Account
	testnetEpochSigner    numeric.Account
)
