// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/repchain/repchaind/numeric"
)

// RegNetParams returns network parameters for the single-node regression
// test network. Its purpose, like the teacher's, is unit and RPC-server
// tests rather than multi-node integration: zero PoW, a single priority
// bucket, and near-zero cooldowns so an election/cementing cycle runs
// deterministically inside a test process without real wall-clock waits.
// As with the teacher, values here are subject to change without notice.
func RegNetParams() *Params {
	p := MainNetParams()
	p.Name = "regnet"
	p.GenesisBlockHash = regnetGenesisHash
	p.GenesisAccount = regnetGenesisAccount
	p.EpochSigners = map[uint8]numeric.Account{1: regnetEpochSigner}
	p.WorkThresholdSend = 0
	p.WorkThresholdReceive = 0
	p.BucketCount = 1
	p.OnlineWeightMinimum = numeric.NewAmount(1)
	p.OnlineWeightSampleInterval = time.Millisecond
	p.OnlineWeightWindow = 4
	p.ElectionLifetime = 200 * time.Millisecond
	p.VoteSpacingCooldown = 0
	p.PeerPullTimeout = time.Second
	p.UnboundedCutoff = 32
	p.BoundedBatchMinSize = 1
	p.BoundedBatchMaxSize = 256
	return p
}

var (
	regnetGenesisHash    numeric.Hash
	regnetGenesisAccount numeric.Account
	regnetEpochSigner    numeric.Account
)
