// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"testing"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/reps"
	"github.com/repchain/repchaind/wire"
)

func activeTestParams() *chaincfg.Params {
	return &chaincfg.Params{
		BucketCount:         4,
		ElectionLifetime:    time.Minute,
		VoteSpacingCooldown: 0,
		OnlineWeightWindow:  8,
		QuorumPercent:       67,
		OnlineWeightMinimum: numeric.NewAmount(1),
	}
}

type recordingConfirmedObserver struct {
	roots   []numeric.Hash
	winners []blocks.Block
}

func (o *recordingConfirmedObserver) ElectionConfirmed(root numeric.Hash, winner blocks.Block) {
	o.roots = append(o.roots, root)
	o.winners = append(o.winners, winner)
}

func TestActiveOpenForkCreatesElectionWithBothContenders(t *testing.T) {
	a := NewActive(activeTestParams(), reps.NewWeightTracker(), reps.NewOnlineTracker(activeTestParams()), nil)
	root := numeric.Hash{0x01}
	winner := dummyBlock(t, 0x50)
	contender := dummyBlock(t, 0x51)

	a.OpenFork(root, winner, contender)

	e, ok := a.Get(root)
	if !ok {
		t.Fatal("expected OpenFork to create an election for the root")
	}
	if len(e.Contenders()) != 2 {
		t.Fatalf("Contenders() len = %d, want 2", len(e.Contenders()))
	}
}

func TestActiveOpenForkFoldsIntoExistingElection(t *testing.T) {
	a := NewActive(activeTestParams(), reps.NewWeightTracker(), reps.NewOnlineTracker(activeTestParams()), nil)
	root := numeric.Hash{0x02}
	winner := dummyBlock(t, 0x52)
	first := dummyBlock(t, 0x53)
	second := dummyBlock(t, 0x54)

	a.OpenFork(root, winner, first)
	a.OpenFork(root, winner, second)

	if a.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (second OpenFork should fold into the first election)", a.Count())
	}
	e, _ := a.Get(root)
	if len(e.Contenders()) != 3 {
		t.Fatalf("Contenders() len = %d, want 3", len(e.Contenders()))
	}
}

func TestActiveActivateReturnsSameElectionForSameRoot(t *testing.T) {
	a := NewActive(activeTestParams(), reps.NewWeightTracker(), reps.NewOnlineTracker(activeTestParams()), nil)
	root := numeric.Hash{0x03}
	winner := dummyBlock(t, 0x55)

	e1 := a.Activate(root, winner)
	e2 := a.Activate(root, dummyBlock(t, 0x56))
	if e1 != e2 {
		t.Fatal("expected a second Activate on the same root to return the existing election")
	}
}

func TestActiveVoteConfirmsElectionAndNotifiesObserver(t *testing.T) {
	weights := reps.NewWeightTracker()
	voter := numeric.Account{0x60}
	weights.Seed(voter, numeric.NewAmount(1000))

	online := reps.NewOnlineTracker(activeTestParams())
	observer := &recordingConfirmedObserver{}
	a := NewActive(activeTestParams(), weights, online, observer)
	a.now = func() time.Time { return time.Unix(100, 0) }

	root := numeric.Hash{0x04}
	winner := dummyBlock(t, 0x57)
	a.Activate(root, winner)

	vote := &wire.Vote{Account: voter, Timestamp: 1, Hashes: []numeric.Hash{winner.Hash()}}
	a.Vote(vote, map[numeric.Hash]numeric.Hash{winner.Hash(): root})

	if _, ok := a.Get(root); ok {
		t.Fatal("expected the election to be removed from the active set once confirmed")
	}
	if len(observer.roots) != 1 || observer.roots[0] != root {
		t.Fatalf("observer roots = %v, want [%v]", observer.roots, root)
	}
	if observer.winners[0].Hash() != winner.Hash() {
		t.Fatalf("observer winner = %v, want %v", observer.winners[0].Hash(), winner.Hash())
	}
}

func TestActiveVoteIgnoresZeroWeightAccount(t *testing.T) {
	weights := reps.NewWeightTracker() // no seeded weight for the voter
	online := reps.NewOnlineTracker(activeTestParams())
	a := NewActive(activeTestParams(), weights, online, nil)

	root := numeric.Hash{0x05}
	winner := dummyBlock(t, 0x58)
	a.Activate(root, winner)

	vote := &wire.Vote{Account: numeric.Account{0x61}, Timestamp: 1, Hashes: []numeric.Hash{winner.Hash()}}
	a.Vote(vote, map[numeric.Hash]numeric.Hash{winner.Hash(): root})

	e, _ := a.Get(root)
	if _, ok := e.Winner(); ok {
		t.Fatal("expected a zero-weight voter's vote to never reach the election's tally")
	}
}

func TestActiveTickExpiresElection(t *testing.T) {
	params := activeTestParams()
	params.ElectionLifetime = time.Minute
	a := NewActive(params, reps.NewWeightTracker(), reps.NewOnlineTracker(params), nil)
	start := time.Unix(0, 0)
	a.now = func() time.Time { return start }

	root := numeric.Hash{0x06}
	a.Activate(root, dummyBlock(t, 0x59))
	a.Tick() // still within lifetime, a no-op

	if _, ok := a.Get(root); !ok {
		t.Fatal("expected the election to still be open before its lifetime elapses")
	}

	a.now = func() time.Time { return start.Add(2 * time.Minute) }
	a.Tick()
	if _, ok := a.Get(root); ok {
		t.Fatal("expected the election to be removed once its lifetime elapses")
	}
}

func TestActiveCanFinalizeEnforcesFinalVoteGuard(t *testing.T) {
	a := NewActive(activeTestParams(), reps.NewWeightTracker(), reps.NewOnlineTracker(activeTestParams()), nil)
	root := numeric.Hash{0x07}
	winnerA := numeric.Hash{0x08}
	winnerB := numeric.Hash{0x09}

	if !a.CanFinalize(root, winnerA) {
		t.Fatal("expected the first final-vote binding to be allowed")
	}
	if a.CanFinalize(root, winnerB) {
		t.Fatal("expected a conflicting final-vote binding for the same root to be rejected")
	}
}
