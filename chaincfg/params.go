// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/repchain/repchaind/numeric"
)

// Params holds every network-wide constant the ledger validator, election
// core, and bootstrap puller need. Unlike the teacher's Params (which
// carries PoW-difficulty-retarget and stake-ticket fields with no
// analogue here), this is written fresh for the account-chain/
// representative-voting domain; only its role as a single "active
// network" value passed around the node is grounded on the teacher.
type Params struct {
	// Name identifies the network ("mainnet", "testnet", "simnet", "regnet").
	Name string

	// GenesisBlockHash is the hash of the network's genesis open block,
	// owning the entire initial supply.
	GenesisBlockHash numeric.Hash

	// GenesisAccount is the account that owns the genesis block.
	GenesisAccount numeric.Account

	// EpochSigners maps an epoch number to the account authorized to
	// sign the epoch-upgrade block that raises the ledger to it. Epoch
	// 0 is the network's starting epoch and has no signer entry.
	EpochSigners map[uint8]numeric.Account

	// EpochLink is the sentinel link value (distinct from any real
	// account or send hash) that marks a state block as an epoch
	// upgrade rather than an ordinary change/send/receive.
	EpochLink numeric.Hash

	// WorkThresholdSend is the minimum PoW threshold for send-class
	// blocks (legacy Send, State-as-send, Change, Open).
	WorkThresholdSend uint64

	// WorkThresholdReceive is the minimum PoW threshold for
	// receive-class blocks once the account's epoch is >= 2 (spec.md
	// section 4.1 rule 2: "receive threshold != send threshold in
	// post-epoch-2 rules"). Below epoch 2, receive blocks use
	// WorkThresholdSend.
	WorkThresholdReceive uint64

	// ReceiveThresholdEpoch is the minimum epoch at which
	// WorkThresholdReceive applies to receive-class blocks.
	ReceiveThresholdEpoch uint8

	// BucketCount is the number of priority buckets elections are
	// partitioned into (spec.md section 4.5).
	BucketCount int

	// QuorumPercent is the percentage (0-100] of trended online weight
	// that forms the confirmation delta (spec.md section 4.4).
	QuorumPercent uint8

	// OnlineWeightMinimum is the floor under the trended weight used
	// when computing delta, so quorum cannot collapse to near zero
	// during a weight outage.
	OnlineWeightMinimum numeric.Amount

	// OnlineWeightSampleInterval is how often the online-reps tracker
	// samples online weight into its rolling window.
	OnlineWeightSampleInterval time.Duration

	// OnlineWeightWindow is how many samples the rolling window holds.
	OnlineWeightWindow int

	// ElectionLifetime is how long an election may remain unconfirmed
	// before it expires (spec.md section 4.5).
	ElectionLifetime time.Duration

	// VoteSpacingCooldown is the minimum wall-clock gap between two
	// votes from the same representative for different successors of
	// the same root (spec.md section 4.5 / section 8 invariant 6).
	VoteSpacingCooldown time.Duration

	// PeerPullTimeout bounds a single bootstrap pull request.
	PeerPullTimeout time.Duration

	// UnboundedCutoff is the uncemented-backlog size under which the
	// cementer's automatic mode selects the unbounded strategy (spec.md
	// section 4.6).
	UnboundedCutoff uint64

	// BoundedBatchMaxSize is the fixed number of blocks one Cement call
	// cements for an account more than UnboundedCutoff blocks behind.
	// BoundedBatchMinSize is not read by the cementer; no batch size is
	// adapted at run time.
	BoundedBatchMinSize uint64
	BoundedBatchMaxSize uint64
}
