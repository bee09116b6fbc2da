// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"sync"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/reps"
	"github.com/repchain/repchaind/wire"
)

// ConfirmedObserver receives a root's winning block once its election
// reaches the confirmation rule, so the cementer can advance the
// account's confirmation height (spec.md section 4.6).
type ConfirmedObserver interface {
	ElectionConfirmed(root numeric.Hash, winner blocks.Block)
}

// Active is the mutex-guarded set of elections currently open (spec.md
// section 5: "The active-elections set is guarded by a single mutex;
// election objects inside are mutated only while holding it"). It
// implements blockprocessor.ElectionOpener so the block processor can
// open a fork election directly on Fork outcomes.
type Active struct {
	mu       sync.Mutex
	byRoot   map[numeric.Hash]*Election
	params   *chaincfg.Params
	weights  *reps.WeightTracker
	online   *reps.OnlineTracker
	guard    *FinalVoteGuard
	observer ConfirmedObserver
	now      func() time.Time
}

// NewActive builds an empty active-election set.
func NewActive(params *chaincfg.Params, weights *reps.WeightTracker, online *reps.OnlineTracker, observer ConfirmedObserver) *Active {
	return &Active{
		byRoot:   make(map[numeric.Hash]*Election),
		params:   params,
		weights:  weights,
		online:   online,
		guard:    NewFinalVoteGuard(),
		observer: observer,
		now:      time.Now,
	}
}

// OpenFork opens an election for root between the existing winner and a
// new contender, or folds contender into an already-open election for
// the same root (spec.md section 4.2: "if the account has no active
// election, one is opened ... with both contenders").
func (a *Active) OpenFork(root numeric.Hash, winner, contender blocks.Block) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if e, ok := a.byRoot[root]; ok {
		e.AddContender(contender)
		return
	}
	e := New(root, winner, a.now(), a.params.ElectionLifetime, a.params.VoteSpacingCooldown)
	e.AddContender(contender)
	a.byRoot[root] = e
	log.Infof("opened fork election for root %s between %s and %s", root, winner.Hash(), contender.Hash())
}

// Activate opens a fresh single-candidate election for root, used by the
// scheduler when an account's successor block arrives with no
// competition (the common case, spec.md section 4.5: "activates an
// account when its most recent block is confirmed and successor
// candidates exist").
func (a *Active) Activate(root numeric.Hash, winner blocks.Block) *Election {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.byRoot[root]; ok {
		return e
	}
	e := New(root, winner, a.now(), a.params.ElectionLifetime, a.params.VoteSpacingCooldown)
	a.byRoot[root] = e
	return e
}

// Get returns the open election for root, if any.
func (a *Active) Get(root numeric.Hash) (*Election, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.byRoot[root]
	return e, ok
}

// Vote applies an incoming confirm_ack to the election of every root the
// vote touches. rootsByHash maps each hash the vote names to its
// election root (the caller resolves it from the hash's stored block);
// hashes with no entry, or whose root has no open election, are skipped,
// and a root is visited once even if the vote names several of its
// hashes.
func (a *Active) Vote(vote *wire.Vote, rootsByHash map[numeric.Hash]numeric.Hash) {
	weight := a.weights.Weight(vote.Account)
	if weight.IsZero() {
		return
	}
	now := a.now()
	a.online.Observe(vote.Account, now)

	a.mu.Lock()
	defer a.mu.Unlock()
	seenRoots := make(map[numeric.Hash]bool)
	for _, hash := range vote.Hashes {
		root, ok := rootsByHash[hash]
		if !ok || seenRoots[root] {
			continue
		}
		seenRoots[root] = true
		e, ok := a.byRoot[root]
		if !ok {
			continue
		}
		e.ApplyVote(vote.Account, vote, weight, now)
		if winner, confirmed := e.ConfirmationReached(a.online.Delta()); confirmed {
			delete(a.byRoot, root)
			log.Infof("election for root %s confirmed, winner %s", root, winner)
			if a.observer != nil {
				if block, ok := findContender(e, winner); ok {
					a.observer.ElectionConfirmed(root, block)
				}
			}
		}
	}
}

func findContender(e *Election, hash numeric.Hash) (blocks.Block, bool) {
	for _, b := range e.Contenders() {
		if b.Hash() == hash {
			return b, true
		}
	}
	return nil, false
}

// Tick advances every open election's lifecycle, removing any that
// expired (spec.md section 4.5: "expired: wall-clock deadline exceeded
// without confirmation; removed; may be recreated later").
func (a *Active) Tick() {
	now := a.now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for root, e := range a.byRoot {
		if e.Tick(now) == Expired {
			delete(a.byRoot, root)
			log.Debugf("election for root %s expired without confirmation", root)
		}
	}
}

// CanFinalize reports whether this node may cast a final vote for root
// naming winner, recording the binding if so (spec.md section 4.5:
// final-vote guard).
func (a *Active) CanFinalize(root, winner numeric.Hash) bool {
	return a.guard.Allow(root, winner)
}

// Count returns the number of currently open elections.
func (a *Active) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.byRoot)
}
