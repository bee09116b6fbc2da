// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/repchain/repchaind/numeric"
)

// SimNetParams returns network parameters for simulation networks used in
// multi-node integration tests: negligible PoW difficulty and short
// cooldowns so a whole election/cementing cycle runs in milliseconds.
func SimNetParams() *Params {
	p := MainNetParams()
	p.Name = "simnet"
	p.GenesisBlockHash = simnetGenesisHash
	p.GenesisAccount = simnetGenesisAccount
	p.EpochSigners = map[uint8]numeric.Account{1: simnetEpochSigner}
	p.WorkThresholdSend = 0
	p.WorkThresholdReceive = 0
	p.ElectionLifetime = 2 * time.Second
	p.VoteSpacingCooldown = time.Millisecond
	p.OnlineWeightSampleInterval = 50 * time.Millisecond
	p.OnlineWeightWindow = 8
	p.UnboundedCutoff = 256
	return p
}

var (
	simnetGenesisHash    numeric.Hash
	simnetGenesisAccount numeric.Account
	simnetEpochSigner    numeric.Account
)
