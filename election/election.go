// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package election implements the election and vote core of spec.md
// section 4.5: priority-bucketed scheduling, an active-election set with
// per-account vote spacing, weighted tally, and the confirmation rule.
package election

import (
	"sync"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/wire"
)

// State is an election's position in its lifecycle (spec.md section 4.5).
type State uint8

const (
	// Passive elections exist but don't yet broadcast or solicit votes.
	Passive State = iota
	// Active elections broadcast confirm_req and accept incoming votes.
	Active
	// Confirmed is terminal: a candidate reached the confirmation rule.
	Confirmed
	// Expired is terminal: the election's lifetime elapsed unconfirmed.
	Expired
)

func (s State) String() string {
	switch s {
	case Passive:
		return "passive"
	case Active:
		return "active"
	case Confirmed:
		return "confirmed"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// passiveUpgradeDelay is how long an election sits passive before it
// starts broadcasting votes, giving a just-arrived fork a brief window
// to pick up a second local contender before the network starts voting
// on a single candidate.
const passiveUpgradeDelay = 200 * time.Millisecond

// Election tracks one root's competing successor candidates, the votes
// cast toward them, and the election's own lifecycle (spec.md section
// 4.5). Root is the same (account, previous) pair used as a block's PoW
// root: spec.md section 3 defines an election's identity as exactly
// that pair.
type Election struct {
	mu sync.Mutex

	root      numeric.Hash
	createdAt time.Time
	lifetime  time.Duration

	state      State
	contenders map[numeric.Hash]blocks.Block
	tally      *tally
	lastVote   map[numeric.Account]voteRecord
	spacing    time.Duration

	confirmedHash numeric.Hash
}

type voteRecord struct {
	at     time.Time
	hash   numeric.Hash
	weight numeric.Amount
}

// New opens a passive election for root with an initial winning
// contender.
func New(root numeric.Hash, winner blocks.Block, now time.Time, lifetime, spacing time.Duration) *Election {
	e := &Election{
		root:       root,
		createdAt:  now,
		lifetime:   lifetime,
		state:      Passive,
		contenders: make(map[numeric.Hash]blocks.Block),
		tally:      newTally(),
		lastVote:   make(map[numeric.Account]voteRecord),
		spacing:    spacing,
	}
	e.contenders[winner.Hash()] = winner
	return e
}

// Root returns the election's (account, previous) identity.
func (e *Election) Root() numeric.Hash { return e.root }

// State returns the election's current lifecycle state.
func (e *Election) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// AddContender registers a new competing block for this root, a no-op if
// its hash is already known. Returns true if it was newly added.
func (e *Election) AddContender(block blocks.Block) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Confirmed || e.state == Expired {
		return false
	}
	hash := block.Hash()
	if _, ok := e.contenders[hash]; ok {
		return false
	}
	e.contenders[hash] = block
	return true
}

// Contenders returns every candidate block currently competing for root.
func (e *Election) Contenders() []blocks.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]blocks.Block, 0, len(e.contenders))
	for _, b := range e.contenders {
		out = append(out, b)
	}
	return out
}

// Tick upgrades a passive election to active once passiveUpgradeDelay
// has elapsed, and expires an active election past its lifetime without
// confirmation (spec.md section 4.5 lifecycle). A passive election
// already past its lifetime is upgraded and expired in the same tick.
func (e *Election) Tick(now time.Time) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Passive && now.Sub(e.createdAt) >= passiveUpgradeDelay {
		e.state = Active
	}
	if e.state == Active && now.Sub(e.createdAt) >= e.lifetime {
		e.state = Expired
	}
	return e.state
}

// ApplyVote folds one representative's vote into the tally, honoring
// per-account vote spacing (spec.md section 4.5: "at most one vote per
// root within a cooldown window") and replay dedup (a vote naming the
// same hash as the account's last counted vote is a no-op rather than a
// re-count, whatever its timestamp). The vote counts toward the first of
// its hashes that is a contender here, or its first hash if none is, and
// a voter's new vote replaces its earlier one in the tally. weight is
// the voter's current representative weight; callers look this up via
// the weight tracker before calling in, keeping tally arithmetic free of
// any dependency on reps.WeightTracker's locking.
func (e *Election) ApplyVote(account numeric.Account, vote *wire.Vote, weight numeric.Amount, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Confirmed || e.state == Expired {
		return false
	}
	if len(vote.Hashes) == 0 {
		return false
	}
	target := vote.Hashes[0]
	for _, h := range vote.Hashes {
		if _, ok := e.contenders[h]; ok {
			target = h
			break
		}
	}

	if prev, voted := e.lastVote[account]; voted {
		if prev.hash == target {
			return false // exact replay
		}
		if !vote.IsFinal() && now.Sub(prev.at) < e.spacing {
			return false // spaced out
		}
		// Only the latest vote per voter counts: withdraw the earlier one.
		if sum, ok := e.tally.sums[prev.hash]; ok {
			sum.Sub(sum, amountToUint256(prev.weight))
		}
	}

	e.lastVote[account] = voteRecord{at: now, hash: target, weight: weight}
	e.tally.add(target, weight)
	return true
}

// ConfirmationReached applies the confirmation rule of spec.md section
// 4.5 against delta: tally >= delta (quorum), or tally >= delta/2 AND
// tally - runnerUp >= delta/2 (majority margin shortcut). On success it
// flips the election to Confirmed and records the winning hash.
func (e *Election) ConfirmationReached(delta numeric.Amount) (numeric.Hash, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Confirmed || e.state == Expired {
		return e.confirmedHash, e.state == Confirmed
	}

	winner, winnerSum, runnerUp := e.tally.best()
	if winnerSum.IsZero() {
		return numeric.Hash{}, false
	}

	deltaWide := amountToUint256(delta)
	half := halfOf(deltaWide)

	quorum := winnerSum.Cmp(deltaWide) >= 0
	margin := false
	if winnerSum.Cmp(half) >= 0 {
		diff := subUint256(winnerSum, runnerUp)
		margin = diff.Cmp(half) >= 0
	}
	if !quorum && !margin {
		return numeric.Hash{}, false
	}

	e.state = Confirmed
	e.confirmedHash = winner
	return winner, true
}

// Winner returns the current leading candidate by tally, without
// requiring confirmation, for callers that want the best-known successor
// even mid-election.
func (e *Election) Winner() (blocks.Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	winner, winnerSum, _ := e.tally.best()
	if winnerSum.IsZero() {
		return nil, false
	}
	block, ok := e.contenders[winner]
	return block, ok
}
