// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/repchain/repchaind/numeric"
)

// MainNetParams returns the network parameters for the main repchain
// network.
func MainNetParams() *Params {
	return &Params{
		Name:                       "mainnet",
		GenesisBlockHash:           mainnetGenesisHash,
		GenesisAccount:             mainnetGenesisAccount,
		EpochSigners:               map[uint8]numeric.Account{1: mainnetEpochSigner},
		EpochLink:                  mainnetEpochLink,
		WorkThresholdSend:          0xffffffc000000000,
		WorkThresholdReceive:       0xfffffff800000000,
		ReceiveThresholdEpoch:      2,
		BucketCount:                62,
		QuorumPercent:              67,
		OnlineWeightMinimum:        numeric.NewAmount(60_000_000),
		OnlineWeightSampleInterval: 5 * time.Minute,
		OnlineWeightWindow:         288, // 24h of 5-minute samples
		ElectionLifetime:           5 * time.Minute,
		VoteSpacingCooldown:        150 * time.Millisecond,
		PeerPullTimeout:            15 * time.Second,
		UnboundedCutoff:            16384,
		BoundedBatchMinSize:        16,
		BoundedBatchMaxSize:        65536,
	}
}

// The mainnet genesis hash, genesis account and epoch signer are left at
// their zero values as placeholders; a real
// deployment would bake in its actual, never-reused genesis account and
// epoch signer. See internal/devkeys for how test/dev networks derive
// these deterministically instead of hardcoding them.
var (
	mainnetGenesisHash    numeric.Hash
	mainnetGenesisAccount numeric.Account
	mainnetEpochSigner    numeric.Account
	mainnetEpochLink      = numeric.Hash{0xce, 0x33, 0x64, 0xde, 0x8b, 0x00, 0x5d, 0x1d} // "epoch" sentinel link, never a valid send/source hash
)
