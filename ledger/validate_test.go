// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/ledger/sideband"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/store/memstore"
)

func testKey(t *testing.T, b byte) nodecrypto.PrivateKey {
	t.Helper()
	var seed [32]byte
	seed[0] = b
	return nodecrypto.NewPrivateKeyFromSeed(seed)
}

// testParams returns network parameters with work checking disabled (so
// tests never need to mine real proof-of-work) and an EpochLink sentinel
// distinct from any ordinary test block's zero Link field.
func testParams() *chaincfg.Params {
	return &chaincfg.Params{
		WorkThresholdSend:     0,
		WorkThresholdReceive:  0,
		ReceiveThresholdEpoch: 0,
		EpochLink:             numeric.Hash{0xEE},
		EpochSigners:          map[uint8]numeric.Account{},
	}
}

func openAccount(t *testing.T, key nodecrypto.PrivateKey, balance numeric.Amount) *blocks.StateBlock {
	t.Helper()
	account := key.Account()
	return blocks.Builder{}.State().
		Account(account).
		Previous(numeric.ZeroHash).
		Representative(account).
		Balance(balance).
		Link(numeric.ZeroHash).
		Build(key)
}

// TestValidateOpenBlockIsProgress validates a genuine account-opening
// receive: previous zero, balance funded entirely by a pending send (a
// state block with a zero Link and a zero previous classifies as Change,
// not Open, so an opening block must carry a real, non-zero source link
// to be classified SubtypeOpen and exercise the receive-side rules).
func TestValidateOpenBlockIsProgress(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x01)
	account := key.Account()
	sendHash := numeric.Hash{0x77}

	wtxn, _ := st.BeginWrite()
	wtxn.PendingRW().Put(store.PendingKey{Destination: account, SendHash: sendHash}, store.PendingInfo{Source: numeric.Account{0x88}, Amount: numeric.NewAmount(1000)})
	wtxn.Commit()

	txn, _ := st.BeginRead()
	blk := blocks.Builder{}.State().
		Account(account).
		Previous(numeric.ZeroHash).
		Representative(account).
		Balance(numeric.NewAmount(1000)).
		Link(sendHash).
		Build(key)

	d := Validate(txn, testParams(), blk)
	if d.Outcome != Progress {
		t.Fatalf("Outcome = %v, want Progress", d.Outcome)
	}
	if d.Account != account {
		t.Fatalf("Account = %v, want %v", d.Account, account)
	}
	if !d.IsOpen {
		t.Fatal("expected IsOpen to be true for a zero-previous block")
	}
	if d.Subtype != blocks.SubtypeOpen {
		t.Fatalf("Subtype = %v, want SubtypeOpen", d.Subtype)
	}
}

func TestValidateRejectsAlreadyKnownBlock(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x02)
	blk := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.BlocksRW().Put(blk.Hash(), store.StoredBlock{Block: blk, Sideband: sideband.Sideband{Height: 1}})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	d := Validate(rtxn, testParams(), blk)
	if d.Outcome != Old {
		t.Fatalf("Outcome = %v, want Old", d.Outcome)
	}
}

func TestValidateRejectsBadSignature(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginRead()
	key := testKey(t, 0x03)
	other := testKey(t, 0x04)

	blk := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.ZeroHash).
		Representative(key.Account()).
		Balance(numeric.NewAmount(1000)).
		Link(numeric.ZeroHash).
		Build(other) // signed by the wrong key

	d := Validate(txn, testParams(), blk)
	if d.Outcome != BadSignature {
		t.Fatalf("Outcome = %v, want BadSignature", d.Outcome)
	}
}

func TestValidateRejectsReopenOfExistingAccount(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x05)
	first := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.AccountsRW().Put(key.Account(), store.AccountInfo{Head: first.Hash(), Open: first.Hash(), BlockCount: 1})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	second := openAccount(t, key, numeric.NewAmount(1000))
	d := Validate(rtxn, testParams(), second)
	if d.Outcome != Opened {
		t.Fatalf("Outcome = %v, want Opened", d.Outcome)
	}
}

func TestValidateGapPreviousWhenPreviousUnknown(t *testing.T) {
	st := memstore.New()
	txn, _ := st.BeginRead()
	key := testKey(t, 0x06)

	blk := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.Hash{0xAB}).
		Representative(key.Account()).
		Balance(numeric.NewAmount(900)).
		Link(numeric.Account{0x77}).
		Build(key)

	d := Validate(txn, testParams(), blk)
	if d.Outcome != GapPrevious {
		t.Fatalf("Outcome = %v, want GapPrevious", d.Outcome)
	}
	if !d.Outcome.IsGap() {
		t.Fatal("GapPrevious should report IsGap() true")
	}
}

func TestValidateDetectsForkOnStaleHead(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x07)
	open := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: key.Account()}})
	// The account's real head has already advanced past open.
	otherHead := numeric.Hash{0x01}
	wtxn.AccountsRW().Put(key.Account(), store.AccountInfo{Head: otherHead, Open: open.Hash(), Balance: numeric.NewAmount(1000), BlockCount: 2})
	wtxn.BlocksRW().Put(otherHead, store.StoredBlock{
		Block:    fakeLinkedBlock{hash: otherHead, account: key.Account()},
		Sideband: sideband.Sideband{Height: 2, Account: key.Account()},
	})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	fork := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()). // stale: real head has moved on
		Representative(key.Account()).
		Balance(numeric.NewAmount(500)).
		Link(numeric.Account{0x99}).
		Build(key)

	d := Validate(rtxn, testParams(), fork)
	if d.Outcome != Fork {
		t.Fatalf("Outcome = %v, want Fork", d.Outcome)
	}
}

// TestValidateLegacySendRequiresStrictBalanceDecrease exercises rule 5's
// send-side BalanceMismatch branch, which only a legacy Send block can
// reach: a state block with a non-decreasing balance is simply
// classified Receive by ClassifyAgainst before rule 5 ever runs.
func TestValidateLegacySendRequiresStrictBalanceDecrease(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x08)
	open := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: key.Account()}})
	wtxn.AccountsRW().Put(key.Account(), store.AccountInfo{Head: open.Hash(), Open: open.Hash(), Representative: key.Account(), Balance: numeric.NewAmount(1000), BlockCount: 1})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	notDecreasing := blocks.Builder{}.Send().
		Previous(open.Hash()).
		Destination(numeric.Account{0x55}).
		Balance(numeric.NewAmount(1000)). // unchanged, not a valid send
		Build(key)

	d := Validate(rtxn, testParams(), notDecreasing)
	if d.Outcome != BalanceMismatch {
		t.Fatalf("Outcome = %v, want BalanceMismatch", d.Outcome)
	}
}

func TestValidateSendProducesPendingEntry(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x09)
	open := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: key.Account()}})
	wtxn.AccountsRW().Put(key.Account(), store.AccountInfo{Head: open.Hash(), Open: open.Hash(), Representative: key.Account(), Balance: numeric.NewAmount(1000), BlockCount: 1})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	dest := numeric.Account{0x55}
	send := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()).
		Representative(key.Account()).
		Balance(numeric.NewAmount(400)).
		Link(dest).
		Build(key)

	d := Validate(rtxn, testParams(), send)
	if d.Outcome != Progress {
		t.Fatalf("Outcome = %v, want Progress", d.Outcome)
	}
	if d.Subtype != blocks.SubtypeSend {
		t.Fatalf("Subtype = %v, want SubtypeSend", d.Subtype)
	}
	if d.PendingInfo.Amount.Cmp(numeric.NewAmount(600)) != 0 {
		t.Fatalf("pending amount = %v, want 600", d.PendingInfo.Amount)
	}
	if d.PendingKey.Destination != dest {
		t.Fatalf("pending destination = %v, want %v", d.PendingKey.Destination, dest)
	}
}

func TestValidateReceiveRequiresPendingEntry(t *testing.T) {
	st := memstore.New()
	receiverKey := testKey(t, 0x0B)
	receiver := receiverKey.Account()

	wtxn, _ := st.BeginWrite()
	open := openAccount(t, receiverKey, numeric.NewAmount(100))
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: receiver}})
	wtxn.AccountsRW().Put(receiver, store.AccountInfo{Head: open.Hash(), Open: open.Hash(), Representative: receiver, Balance: numeric.NewAmount(100), BlockCount: 1})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	sendHash := numeric.Hash{0x44}
	receive := blocks.Builder{}.State().
		Account(receiver).
		Previous(open.Hash()).
		Representative(receiver).
		Balance(numeric.NewAmount(600)). // no matching pending entry exists
		Link(sendHash).
		Build(receiverKey)

	d := Validate(rtxn, testParams(), receive)
	if d.Outcome != GapSource {
		t.Fatalf("Outcome = %v, want GapSource", d.Outcome)
	}
}

func TestValidateReceiveAppliesPendingAmount(t *testing.T) {
	st := memstore.New()
	receiverKey := testKey(t, 0x0C)
	receiver := receiverKey.Account()
	sourceAccount := numeric.Account{0x33}
	sendHash := numeric.Hash{0x44}

	wtxn, _ := st.BeginWrite()
	open := openAccount(t, receiverKey, numeric.NewAmount(100))
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: receiver}})
	wtxn.AccountsRW().Put(receiver, store.AccountInfo{Head: open.Hash(), Open: open.Hash(), Representative: receiver, Balance: numeric.NewAmount(100), BlockCount: 1})
	wtxn.PendingRW().Put(store.PendingKey{Destination: receiver, SendHash: sendHash}, store.PendingInfo{Source: sourceAccount, Amount: numeric.NewAmount(250)})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	receive := blocks.Builder{}.State().
		Account(receiver).
		Previous(open.Hash()).
		Representative(receiver).
		Balance(numeric.NewAmount(350)). // 100 + 250
		Link(sendHash).
		Build(receiverKey)

	d := Validate(rtxn, testParams(), receive)
	if d.Outcome != Progress {
		t.Fatalf("Outcome = %v, want Progress", d.Outcome)
	}
	if d.Subtype != blocks.SubtypeReceive {
		t.Fatalf("Subtype = %v, want SubtypeReceive", d.Subtype)
	}
	if d.NewBalance.Cmp(numeric.NewAmount(350)) != 0 {
		t.Fatalf("NewBalance = %v, want 350", d.NewBalance)
	}
}

func TestValidateChangeRequiresUnchangedBalance(t *testing.T) {
	st := memstore.New()
	key := testKey(t, 0x0D)
	open := openAccount(t, key, numeric.NewAmount(1000))

	wtxn, _ := st.BeginWrite()
	wtxn.BlocksRW().Put(open.Hash(), store.StoredBlock{Block: open, Sideband: sideband.Sideband{Height: 1, Account: key.Account()}})
	wtxn.AccountsRW().Put(key.Account(), store.AccountInfo{Head: open.Hash(), Open: open.Hash(), Representative: key.Account(), Balance: numeric.NewAmount(1000), BlockCount: 1})
	wtxn.Commit()

	rtxn, _ := st.BeginRead()
	newRep := numeric.Account{0x66}
	change := blocks.Builder{}.State().
		Account(key.Account()).
		Previous(open.Hash()).
		Representative(newRep).
		Balance(numeric.NewAmount(1000)).
		Link(numeric.ZeroHash).
		Build(key)

	d := Validate(rtxn, testParams(), change)
	if d.Outcome != Progress {
		t.Fatalf("Outcome = %v, want Progress", d.Outcome)
	}
	if d.Subtype != blocks.SubtypeChange {
		t.Fatalf("Subtype = %v, want SubtypeChange", d.Subtype)
	}
	if d.NewRepresentative != newRep {
		t.Fatalf("NewRepresentative = %v, want %v", d.NewRepresentative, newRep)
	}
}

// fakeLinkedBlock is a minimal blocks.Block standing in for a StoredBlock
// whose only role is satisfying the "previous block's account must match"
// check; state-block-specific classification is never exercised on it.
type fakeLinkedBlock struct {
	hash    numeric.Hash
	account numeric.Account
}

func (f fakeLinkedBlock) Type() blocks.Type              { return blocks.TypeState }
func (f fakeLinkedBlock) Hash() numeric.Hash              { return f.hash }
func (f fakeLinkedBlock) Root() numeric.Hash              { return numeric.Hash{} }
func (f fakeLinkedBlock) Previous() numeric.Hash          { return numeric.Hash{} }
func (f fakeLinkedBlock) Account() numeric.Account        { return f.account }
func (f fakeLinkedBlock) Representative() numeric.Account { return numeric.Account{} }
func (f fakeLinkedBlock) Balance() numeric.Amount         { return numeric.Zero }
func (f fakeLinkedBlock) Link() numeric.Hash              { return numeric.Hash{} }
func (f fakeLinkedBlock) Signature() nodecrypto.Signature { return nodecrypto.Signature{} }
func (f fakeLinkedBlock) Work() numeric.Work              { return numeric.Work(0) }
func (f fakeLinkedBlock) Serialize() []byte               { return f.hash[:] }
