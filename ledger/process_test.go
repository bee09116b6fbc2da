// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/store/memstore"
)

type recordingObserver struct {
	blockAdded  []blocks.Block
	weightCalls []struct {
		oldRep, newRep         numeric.Account
		oldBalance, newBalance numeric.Amount
	}
}

func (o *recordingObserver) BlockAdded(b blocks.Block, isEpoch bool) {
	o.blockAdded = append(o.blockAdded, b)
}

func (o *recordingObserver) RepresentativeWeightChanged(oldRep, newRep numeric.Account, oldBalance, newBalance numeric.Amount) {
	o.weightCalls = append(o.weightCalls, struct {
		oldRep, newRep         numeric.Account
		oldBalance, newBalance numeric.Amount
	}{oldRep, newRep, oldBalance, newBalance})
}

func TestProcessRejectsNonProgressDecision(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginWrite()
	key := testKey(t, 0x20)
	blk := openAccount(t, key, numeric.NewAmount(1000))

	err := Process(txn, blk, Decision{Outcome: Fork}, time.Unix(0, 0), NopObserver{})
	if err == nil {
		t.Fatal("expected Process to reject a non-Progress decision")
	}
	if _, ok := err.(*IntegrityError); !ok {
		t.Fatalf("error type = %T, want *IntegrityError", err)
	}
}

func TestProcessOpenWritesAccountAndFrontier(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginWrite()
	key := testKey(t, 0x21)
	account := key.Account()
	sendHash := numeric.Hash{0x79}
	txn.PendingRW().Put(store.PendingKey{Destination: account, SendHash: sendHash}, store.PendingInfo{Source: numeric.Account{0x89}, Amount: numeric.NewAmount(1000)})

	blk := blocks.Builder{}.State().
		Account(account).
		Previous(numeric.ZeroHash).
		Representative(account).
		Balance(numeric.NewAmount(1000)).
		Link(sendHash).
		Build(key)

	d := Validate(txn, testParams(), blk)
	if d.Outcome != Progress {
		t.Fatalf("Validate: Outcome = %v, want Progress", d.Outcome)
	}

	obs := &recordingObserver{}
	now := time.Unix(12345, 0)
	if err := Process(txn, blk, d, now, obs); err != nil {
		t.Fatal(err)
	}

	info, ok := txn.Accounts().Get(key.Account())
	if !ok {
		t.Fatal("expected an account record after processing the open block")
	}
	if info.Head != blk.Hash() || info.Open != blk.Hash() {
		t.Fatalf("info = %+v, want Head == Open == %v", info, blk.Hash())
	}
	if info.BlockCount != 1 {
		t.Fatalf("BlockCount = %d, want 1", info.BlockCount)
	}
	if info.Modified != now.Unix() {
		t.Fatalf("Modified = %d, want %d", info.Modified, now.Unix())
	}

	frontier, ok := txn.Frontiers().Get(key.Account())
	if !ok || frontier != blk.Hash() {
		t.Fatalf("frontier = %v, %v, want %v, true", frontier, ok, blk.Hash())
	}

	if len(obs.blockAdded) != 1 {
		t.Fatalf("BlockAdded called %d times, want 1", len(obs.blockAdded))
	}
	if len(obs.weightCalls) != 1 {
		t.Fatalf("RepresentativeWeightChanged called %d times, want 1", len(obs.weightCalls))
	}
	wc := obs.weightCalls[0]
	if !numeric.IsZero(wc.oldRep) || !wc.oldBalance.IsZero() {
		t.Fatalf("opening weight call should report a zero old rep/balance, got %+v", wc)
	}
	if wc.newRep != key.Account() || wc.newBalance.Cmp(numeric.NewAmount(1000)) != 0 {
		t.Fatalf("opening weight call new rep/balance = %v/%v, want %v/1000", wc.newRep, wc.newBalance, key.Account())
	}
}

func TestProcessSendCreatesPendingAndSetsSuccessor(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginWrite()
	key := testKey(t, 0x22)
	account := key.Account()
	openSendHash := numeric.Hash{0x7A}
	txn.PendingRW().Put(store.PendingKey{Destination: account, SendHash: openSendHash}, store.PendingInfo{Source: numeric.Account{0x8A}, Amount: numeric.NewAmount(1000)})
	open := blocks.Builder{}.State().
		Account(account).
		Previous(numeric.ZeroHash).
		Representative(account).
		Balance(numeric.NewAmount(1000)).
		Link(openSendHash).
		Build(key)
	openDecision := Validate(txn, testParams(), open)
	if openDecision.Outcome != Progress {
		t.Fatalf("Validate(open): Outcome = %v, want Progress", openDecision.Outcome)
	}
	if err := Process(txn, open, openDecision, time.Unix(1, 0), NopObserver{}); err != nil {
		t.Fatal(err)
	}

	dest := numeric.Account{0x77}
	send := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()).
		Representative(key.Account()).
		Balance(numeric.NewAmount(400)).
		Link(dest).
		Build(key)

	sendDecision := Validate(txn, testParams(), send)
	if sendDecision.Outcome != Progress {
		t.Fatalf("Validate: Outcome = %v, want Progress", sendDecision.Outcome)
	}
	if err := Process(txn, send, sendDecision, time.Unix(2, 0), NopObserver{}); err != nil {
		t.Fatal(err)
	}

	pendingKey := store.PendingKey{Destination: dest, SendHash: send.Hash()}
	pending, ok := txn.Pending().Get(pendingKey)
	if !ok {
		t.Fatal("expected a pending entry for the send's destination")
	}
	if pending.Amount.Cmp(numeric.NewAmount(600)) != 0 {
		t.Fatalf("pending amount = %v, want 600", pending.Amount)
	}

	openStored, ok := txn.Blocks().Get(open.Hash())
	if !ok {
		t.Fatal("expected the open block to remain in the store")
	}
	if openStored.Sideband.Successor != send.Hash() {
		t.Fatalf("open's successor = %v, want %v", openStored.Sideband.Successor, send.Hash())
	}

	info, _ := txn.Accounts().Get(key.Account())
	if info.Head != send.Hash() {
		t.Fatalf("account head = %v, want %v", info.Head, send.Hash())
	}
	if info.BlockCount != 2 {
		t.Fatalf("BlockCount = %d, want 2", info.BlockCount)
	}
}

func TestProcessReceiveDeletesPendingAndRecordsReceivedBy(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginWrite()
	receiverKey := testKey(t, 0x23)
	receiver := receiverKey.Account()
	sourceAccount := numeric.Account{0x33}
	sendHash := numeric.Hash{0x44}

	openSendHash := numeric.Hash{0x7B}
	txn.PendingRW().Put(store.PendingKey{Destination: receiver, SendHash: openSendHash}, store.PendingInfo{Source: numeric.Account{0x8B}, Amount: numeric.NewAmount(100)})
	open := blocks.Builder{}.State().
		Account(receiver).
		Previous(numeric.ZeroHash).
		Representative(receiver).
		Balance(numeric.NewAmount(100)).
		Link(openSendHash).
		Build(receiverKey)
	openDecision := Validate(txn, testParams(), open)
	if openDecision.Outcome != Progress {
		t.Fatalf("Validate(open): Outcome = %v, want Progress", openDecision.Outcome)
	}
	if err := Process(txn, open, openDecision, time.Unix(1, 0), NopObserver{}); err != nil {
		t.Fatal(err)
	}
	txn.PendingRW().Put(store.PendingKey{Destination: receiver, SendHash: sendHash}, store.PendingInfo{Source: sourceAccount, Amount: numeric.NewAmount(250)})

	receive := blocks.Builder{}.State().
		Account(receiver).
		Previous(open.Hash()).
		Representative(receiver).
		Balance(numeric.NewAmount(350)).
		Link(sendHash).
		Build(receiverKey)

	d := Validate(txn, testParams(), receive)
	if d.Outcome != Progress {
		t.Fatalf("Validate: Outcome = %v, want Progress", d.Outcome)
	}
	if err := Process(txn, receive, d, time.Unix(2, 0), NopObserver{}); err != nil {
		t.Fatal(err)
	}

	if _, ok := txn.Pending().Get(store.PendingKey{Destination: receiver, SendHash: sendHash}); ok {
		t.Fatal("expected the pending entry to be deleted once received")
	}
	receivedBy, ok := txn.ReceivedBy().Get(sendHash)
	if !ok || receivedBy != receive.Hash() {
		t.Fatalf("ReceivedBy(%v) = %v, %v, want %v, true", sendHash, receivedBy, ok, receive.Hash())
	}
}
