// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reps tracks representative voting weight, the rolling online-
// weight sample window used to compute election quorum, and the
// account-to-channel registration used to route targeted vote requests
// (spec.md section 4.4 and section 3's representative registration).
package reps

import (
	"sync"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

// WeightTracker maintains weight(R) = Σ balance(A) over every account A
// with representative = R (spec.md section 8 invariant 4). It implements
// ledger.Observer so the ledger's write path feeds it deltas directly
// instead of a separate pass over the account table.
type WeightTracker struct {
	mu      sync.RWMutex
	weights map[numeric.Account]numeric.Amount
}

// NewWeightTracker returns an empty tracker. A node seeds it by replaying
// every AccountInfo in the store at start-up before accepting new blocks.
func NewWeightTracker() *WeightTracker {
	return &WeightTracker{weights: make(map[numeric.Account]numeric.Amount)}
}

// Weight returns the current total weight delegated to account, or zero
// if it has none.
func (t *WeightTracker) Weight(account numeric.Account) numeric.Amount {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.weights[account]
}

// Seed sets account's weight directly, for populating the tracker from a
// full account-table scan at start-up.
func (t *WeightTracker) Seed(account numeric.Account, weight numeric.Amount) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if weight.IsZero() {
		delete(t.weights, account)
		return
	}
	t.weights[account] = weight
}

// BlockAdded is part of ledger.Observer; WeightTracker has nothing to do
// on it, weight changes arrive through RepresentativeWeightChanged.
func (t *WeightTracker) BlockAdded(blocks.Block, bool) {}

// RepresentativeWeightChanged is part of ledger.Observer. It moves
// oldBalance off oldRep and newBalance onto newRep; when oldRep ==
// newRep this nets out to a single balance delta, the common case of an
// ordinary send or receive that doesn't also change representative.
func (t *WeightTracker) RepresentativeWeightChanged(oldRep, newRep numeric.Account, oldBalance, newBalance numeric.Amount) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !numeric.IsZero(oldRep) {
		t.subtract(oldRep, oldBalance)
	}
	if !numeric.IsZero(newRep) {
		t.add(newRep, newBalance)
	}
}

func (t *WeightTracker) add(rep numeric.Account, amt numeric.Amount) {
	t.weights[rep] = t.weights[rep].Add(amt)
}

func (t *WeightTracker) subtract(rep numeric.Account, amt numeric.Amount) {
	remaining := t.weights[rep].Sub(amt)
	if remaining.IsZero() {
		delete(t.weights, rep)
		return
	}
	t.weights[rep] = remaining
}

// Total sums every tracked representative's weight; used by tests to
// assert the weight-identity invariant against a fresh ledger scan.
func (t *WeightTracker) Total() numeric.Amount {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := numeric.Zero
	for _, w := range t.weights {
		total = total.Add(w)
	}
	return total
}
