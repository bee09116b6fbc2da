// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockprocessor

import (
	"testing"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/ledger"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/store/memstore"
	"github.com/repchain/repchaind/unchecked"
)

func testKey(t *testing.T, b byte) nodecrypto.PrivateKey {
	t.Helper()
	var seed [32]byte
	seed[0] = b
	return nodecrypto.NewPrivateKeyFromSeed(seed)
}

func testParams() *chaincfg.Params {
	return &chaincfg.Params{
		WorkThresholdSend:    0,
		WorkThresholdReceive: 0,
		EpochLink:            numeric.Hash{0xEE},
		EpochSigners:         map[uint8]numeric.Account{},
	}
}

type recordingOpener struct {
	calls int
	root  numeric.Hash
}

func (o *recordingOpener) OpenFork(root numeric.Hash, winner, contender blocks.Block) {
	o.calls++
	o.root = root
}

func newTestProcessor(t *testing.T, opener ElectionOpener) (*Processor, store.Store) {
	t.Helper()
	st := memstore.New()
	p := New(st, testParams(), unchecked.New(64), ledger.NopObserver{}, opener)
	p.Start()
	t.Cleanup(p.Stop)
	return p, st
}

// openBlock builds a genuine account-opening receive: the balance must
// come from a pending entry seeded into st under sendHash, since a state
// block with both a zero Link and a zero previous classifies as Change,
// not Open.
func openBlock(t *testing.T, st store.Store, key nodecrypto.PrivateKey, sendHash numeric.Hash, balance numeric.Amount) *blocks.StateBlock {
	t.Helper()
	wtxn, err := st.BeginWrite()
	if err != nil {
		t.Fatal(err)
	}
	wtxn.PendingRW().Put(store.PendingKey{Destination: key.Account(), SendHash: sendHash}, store.PendingInfo{Source: numeric.Account{0x8C}, Amount: balance})
	if err := wtxn.Commit(); err != nil {
		t.Fatal(err)
	}
	return blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.ZeroHash).
		Representative(key.Account()).
		Balance(balance).
		Link(sendHash).
		Build(key)
}

func TestAddBlockingReturnsProgressForValidOpen(t *testing.T) {
	p, st := newTestProcessor(t, &recordingOpener{})
	key := testKey(t, 0x01)
	blk := openBlock(t, st, key, numeric.Hash{0x71}, numeric.NewAmount(1000))

	outcome := p.AddBlocking(blk, SourceLive)
	if outcome != ledger.Progress {
		t.Fatalf("outcome = %v, want Progress", outcome)
	}

	rtxn, err := st.BeginRead()
	if err != nil {
		t.Fatal(err)
	}
	defer rtxn.Discard()
	if _, ok := rtxn.Blocks().Get(blk.Hash()); !ok {
		t.Fatal("expected the block to be committed to the store")
	}
}

func TestAddBlockingBuffersGapInUnchecked(t *testing.T) {
	p, _ := newTestProcessor(t, &recordingOpener{})
	key := testKey(t, 0x02)

	orphan := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.Hash{0xAB}).
		Representative(key.Account()).
		Balance(numeric.NewAmount(500)).
		Link(numeric.ZeroHash).
		Build(key)

	outcome := p.AddBlocking(orphan, SourceLive)
	if !outcome.IsGap() {
		t.Fatalf("outcome = %v, want a gap outcome", outcome)
	}
	if p.unchecked.Len() != 1 {
		t.Fatalf("unchecked.Len() = %d, want 1", p.unchecked.Len())
	}
}

// TestResolvingDependencyDrainsUncheckedAndReprocesses checks the
// unchecked-buffer handoff: once a block's missing previous arrives and
// commits, the dependent block queued behind it is automatically
// resubmitted and eventually committed too.
func TestResolvingDependencyDrainsUncheckedAndReprocesses(t *testing.T) {
	p, st := newTestProcessor(t, &recordingOpener{})
	key := testKey(t, 0x03)
	open := openBlock(t, st, key, numeric.Hash{0x72}, numeric.NewAmount(1000))

	dest := numeric.Account{0x44}
	send := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()).
		Representative(key.Account()).
		Balance(numeric.NewAmount(400)).
		Link(dest).
		Build(key)

	// Submit the dependent block first: it gaps on open.Hash().
	gapOutcome := p.AddBlocking(send, SourceLive)
	if !gapOutcome.IsGap() {
		t.Fatalf("send outcome = %v, want a gap outcome before its previous exists", gapOutcome)
	}

	// Now submit the dependency; its commit should drain and resubmit
	// the queued send, eventually landing it in the store too.
	openOutcome := p.AddBlocking(open, SourceLive)
	if openOutcome != ledger.Progress {
		t.Fatalf("open outcome = %v, want Progress", openOutcome)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rtxn, err := st.BeginRead()
		if err != nil {
			t.Fatal(err)
		}
		_, ok := rtxn.Blocks().Get(send.Hash())
		rtxn.Discard()
		if ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("expected the drained send block to eventually commit")
}

func TestAddDropsUnderBackpressureForBootstrapSource(t *testing.T) {
	st := memstore.New()
	// No Start(): the writer never drains, so the queue fills up.
	p := New(st, testParams(), unchecked.New(64), ledger.NopObserver{}, &recordingOpener{}, WithQueueBound(1))

	key := testKey(t, 0x04)
	first := openBlock(t, st, key, numeric.Hash{0x73}, numeric.NewAmount(1000))
	if !p.Add(first, SourceBootstrap, "") {
		t.Fatal("expected the first bootstrap item to be accepted under the queue bound")
	}

	second := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(first.Hash()).
		Representative(key.Account()).
		Balance(numeric.NewAmount(900)).
		Link(numeric.Account{0x55}).
		Build(key)
	if p.Add(second, SourceBootstrap, "") {
		t.Fatal("expected the second bootstrap item to be dropped once the queue is at its bound")
	}
}

func TestAddNeverDropsLocalSource(t *testing.T) {
	st := memstore.New()
	p := New(st, testParams(), unchecked.New(64), ledger.NopObserver{}, &recordingOpener{}, WithQueueBound(1))

	key := testKey(t, 0x05)
	for i := 0; i < 3; i++ {
		blk := openBlock(t, st, key, numeric.Hash{byte(0x74 + i)}, numeric.NewAmount(uint64(1000+i)))
		if !p.Add(blk, SourceLocal, "") {
			t.Fatalf("expected local source item %d to never be dropped under backpressure", i)
		}
	}
}

func TestForkOutcomeInvokesElectionOpener(t *testing.T) {
	opener := &recordingOpener{}
	p, st := newTestProcessor(t, opener)
	key := testKey(t, 0x06)
	open := openBlock(t, st, key, numeric.Hash{0x75}, numeric.NewAmount(1000))
	if outcome := p.AddBlocking(open, SourceLive); outcome != ledger.Progress {
		t.Fatalf("open outcome = %v, want Progress", outcome)
	}

	send := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()).
		Representative(key.Account()).
		Balance(numeric.NewAmount(400)).
		Link(numeric.Account{0x77}).
		Build(key)
	if outcome := p.AddBlocking(send, SourceLive); outcome != ledger.Progress {
		t.Fatalf("send outcome = %v, want Progress", outcome)
	}

	fork := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()). // same root as send: a fork
		Representative(key.Account()).
		Balance(numeric.NewAmount(300)).
		Link(numeric.Account{0x88}).
		Build(key)

	outcome := p.AddBlocking(fork, SourceLive)
	if outcome != ledger.Fork {
		t.Fatalf("fork outcome = %v, want Fork", outcome)
	}

	deadline := time.Now().Add(2 * time.Second)
	for opener.calls == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if opener.calls == 0 {
		t.Fatal("expected OpenFork to be invoked for the conflicting contender")
	}
	if opener.root != open.Hash() {
		t.Fatalf("OpenFork root = %v, want %v", opener.root, open.Hash())
	}
}
