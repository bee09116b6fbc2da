// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/ledger/sideband"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// Observer receives the hooks spec.md section 6 lists for the ledger's
// write path. A node registers exactly one at start-up; nothing in
// Process's hot path blocks on it.
type Observer interface {
	// BlockAdded fires after commit, once per processed block.
	BlockAdded(block blocks.Block, isEpoch bool)

	// RepresentativeWeightChanged fires once per processed block with
	// the representative and balance the account carried immediately
	// before and after, so a weight tracker never has to re-derive a
	// delta from two separate AccountInfo reads (spec.md section 4.1:
	// "update representative weight deltas"). oldRep is the zero
	// account and oldBalance is zero when the block opens the account.
	RepresentativeWeightChanged(oldRep, newRep numeric.Account, oldBalance, newBalance numeric.Amount)
}

// NopObserver implements Observer with no-ops, for callers (tests, the
// rollback engine's own writes) that don't need notification.
type NopObserver struct{}

func (NopObserver) BlockAdded(blocks.Block, bool) {}
func (NopObserver) RepresentativeWeightChanged(numeric.Account, numeric.Account, numeric.Amount, numeric.Amount) {
}

// Process applies a Progress decision to txn: it assigns sideband,
// updates the account record, maintains the pending table, and resolves
// the block's account field for legacy variants so later readers of the
// block table never need to re-derive it. Callers must only invoke
// Process after Validate returned Progress against the same txn state;
// Process trusts the Decision and does not re-validate.
//
// now is injected (rather than time.Now()) so tests can produce
// deterministic sidebands and so a single batch commit stamps every
// block in it with the same wall-clock instant, matching the teacher's
// practice of threading a clock through anything that touches on-disk
// timestamps.
func Process(txn store.WriteTx, block blocks.Block, d Decision, now time.Time, obs Observer) error {
	if d.Outcome != Progress {
		return &IntegrityError{Reason: "Process called with a non-Progress decision"}
	}

	if resolver, ok := block.(blocks.ResolvableAccount); ok {
		resolver.SetResolvedAccount(d.Account)
	}

	height := uint64(1)
	if !d.IsOpen {
		height = d.PrevInfo.BlockCount + 1
	}

	sb := sideband.Sideband{
		Height:     height,
		Timestamp:  now.Unix(),
		Epoch:      d.NewEpoch,
		Account:        d.Account,
		Balance:        d.NewBalance,
		Representative: d.NewRepresentative,
		IsSend:     d.Subtype == blocks.SubtypeSend,
		IsReceive:  d.Subtype == blocks.SubtypeReceive || d.Subtype == blocks.SubtypeOpen,
		IsEpoch:    d.Subtype == blocks.SubtypeEpoch,
		Successor:  numeric.ZeroHash,
	}

	blocksRW := txn.BlocksRW()
	blocksRW.Put(block.Hash(), store.StoredBlock{Block: block, Sideband: sb})

	if !d.IsOpen {
		prevStored, ok := blocksRW.Get(d.PrevInfo.Head)
		if !ok {
			return &IntegrityError{Reason: "account head block missing from store during process"}
		}
		prevStored.Sideband.Successor = block.Hash()
		blocksRW.Put(d.PrevInfo.Head, prevStored)
	}

	accountsRW := txn.AccountsRW()
	info := store.AccountInfo{
		Head:           block.Hash(),
		Representative: d.NewRepresentative,
		Balance:        d.NewBalance,
		Modified:       now.Unix(),
		BlockCount:     height,
		Epoch:          d.NewEpoch,
	}
	if d.IsOpen {
		info.Open = block.Hash()
	} else {
		info.Open = d.PrevInfo.Open
	}
	accountsRW.Put(d.Account, info)

	txn.FrontiersRW().Put(d.Account, block.Hash())

	pendingRW := txn.PendingRW()
	switch d.Subtype {
	case blocks.SubtypeSend:
		pendingRW.Put(d.PendingKey, d.PendingInfo)
	case blocks.SubtypeReceive, blocks.SubtypeOpen:
		pendingRW.Delete(d.PendingKey)
		txn.ReceivedByRW().Put(d.PendingKey.SendHash, block.Hash())
	}

	if obs != nil {
		oldRep, oldBalance := numeric.Account{}, numeric.Zero
		if !d.IsOpen {
			oldRep, oldBalance = d.PrevInfo.Representative, d.PrevInfo.Balance
		}
		obs.RepresentativeWeightChanged(oldRep, d.NewRepresentative, oldBalance, d.NewBalance)
		obs.BlockAdded(block, d.Subtype == blocks.SubtypeEpoch)
	}
	return nil
}
