// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// perBucketCap bounds how many candidates a single priority bucket
// holds before it starts evicting its lowest-balance entry.
const perBucketCap = 256

// Scheduler feeds confirmed-but-superseded account heads into priority
// buckets and, on demand, activates the best candidate (spec.md section
// 4.5: "activates an account when its most recent block is confirmed
// and successor candidates exist"). An "optimistic" pass separately
// looks for accounts whose confirmed height trails their chain head by
// more than optimisticGap, opening elections for them even without a
// fresh block arrival, so a long-stalled account doesn't wait on new
// traffic to make progress.
type Scheduler struct {
	buckets      *Buckets
	active       *Active
	optimisticGap uint64
}

// NewScheduler builds a scheduler with one bucket per
// params.BucketCount.
func NewScheduler(params *chaincfg.Params, active *Active) *Scheduler {
	return &Scheduler{
		buckets:       NewBuckets(params.BucketCount, perBucketCap),
		active:        active,
		optimisticGap: 4096,
	}
}

// Submit queues a candidate successor for scheduling once its
// predecessor is confirmed. balance is the sending account's balance at
// the time of the block, the bucket key (spec.md section 4.5).
func (s *Scheduler) Submit(root numeric.Hash, winner blocks.Block, balance numeric.Amount) {
	s.buckets.Push(Candidate{Root: root, Winner: winner, Balance: balance})
}

// RunOnce pops the single best-priority candidate and activates an
// election for it, if any is queued.
func (s *Scheduler) RunOnce() (*Election, bool) {
	c, ok := s.buckets.PopBest()
	if !ok {
		return nil, false
	}
	return s.active.Activate(c.Root, c.Winner), true
}

// Optimistic scans the store for accounts whose confirmed height trails
// their chain head by more than optimisticGap, and activates an election
// for each such head directly, bypassing the bucket queue (spec.md
// section 4.5: "may preemptively open elections for accounts with large
// gaps between confirmed height and chain head").
func (s *Scheduler) Optimistic(txn store.ReadTx) {
	txn.Frontiers().ForEach(func(account numeric.Account, head numeric.Hash) bool {
		info, ok := txn.Accounts().Get(account)
		if !ok {
			return true
		}
		ch, _ := txn.ConfirmationHeights().Get(account)
		if info.BlockCount <= ch.Height+s.optimisticGap {
			return true
		}
		stored, ok := txn.Blocks().Get(head)
		if !ok {
			return true
		}
		root := stored.Block.Root()
		s.active.Activate(root, stored.Block)
		return true
	})
}
