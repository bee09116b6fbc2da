// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rollback implements roll_back(hash) (spec.md section 4.3): walk
// an account's chain from its head down to a target block, undoing each
// block in between, recursing into any destination account that already
// received a send along the way. The planner/applier split below mirrors
// the reference implementation's performer: Plan decides WHAT undoing one
// block requires without touching the store; Apply carries it out inside
// a caller-supplied write transaction.
package rollback

import (
	"fmt"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/ledger"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// Step is the planner's verdict for undoing one block: either a local
// undo (Instructions non-nil) or a request to roll back a downstream
// dependent first (spec.md section 4.3: RollBackBlock vs
// RequestDependencyRollback).
type Step struct {
	Instructions *Instructions
	Dependent    numeric.Hash // valid when Instructions is nil
}

// Instructions is everything Apply needs to undo a single block: the
// account's AccountInfo as it was immediately before the block, and the
// pending-table edit the block's effect must be reversed with.
type Instructions struct {
	Block        blocks.Block
	Account      numeric.Account
	RestoredInfo store.AccountInfo
	HadAccount   bool // false if undoing this block also un-opens the account

	PendingKey      store.PendingKey
	ReinsertPending *store.PendingInfo // set when undoing a receive/open (the pending entry it consumed comes back)
	DeletePending   bool               // set when undoing a send (the pending entry it made goes away)
	ReceivedBySend  numeric.Hash       // set alongside ReinsertPending: the send whose ReceivedBy entry must be cleared

	OldRepresentative numeric.Account
	OldBalance        numeric.Amount
	NewRepresentative numeric.Account
	NewBalance        numeric.Amount
}

// Plan determines how to undo the current head of hash's account,
// without mutating anything. Callers walk from an account's head down to
// their target hash, calling Plan once per block walked (spec.md section
// 4.3 step 1-2).
func Plan(txn store.ReadTx, hash numeric.Hash) (Step, error) {
	stored, ok := txn.Blocks().Get(hash)
	if !ok {
		return Step{}, fmt.Errorf("rollback: block %s not found", numeric.ShortString(hash))
	}
	block := stored.Block
	sb := stored.Sideband

	if !numeric.IsZero(sb.Successor) {
		return Step{}, fmt.Errorf("rollback: %s is not its account's head", numeric.ShortString(hash))
	}

	// A send whose pending entry has already been received elsewhere
	// can't be undone on its own: its pending entry no longer exists to
	// delete, and the destination account's balance already reflects
	// money this rollback is about to take back. Undo the receiver
	// first (spec.md section 4.3: RequestDependencyRollback).
	if sb.IsSend {
		if receiver, received := txn.ReceivedBy().Get(hash); received {
			return Step{Dependent: receiver}, nil
		}
	}

	account := sb.Account
	info, hasAccount := txn.Accounts().Get(account)
	if !hasAccount || info.Head != hash {
		return Step{}, fmt.Errorf("rollback: %s is not the stored head for its account", numeric.ShortString(hash))
	}

	isOpen := numeric.IsZero(block.Previous())
	var restored store.AccountInfo
	if !isOpen {
		prevStored, ok := txn.Blocks().Get(block.Previous())
		if !ok {
			return Step{}, fmt.Errorf("rollback: predecessor %s missing", numeric.ShortString(block.Previous()))
		}
		prevSb := prevStored.Sideband
		restored = store.AccountInfo{
			Head:           block.Previous(),
			Open:           info.Open,
			Representative: prevSb.Representative,
			Balance:        prevSb.Balance,
			Modified:       prevSb.Timestamp,
			BlockCount:     prevSb.Height,
			Epoch:          prevSb.Epoch,
		}
	}

	instr := &Instructions{
		Block:             block,
		Account:           account,
		RestoredInfo:      restored,
		HadAccount:        !isOpen,
		OldRepresentative: info.Representative,
		OldBalance:        info.Balance,
		NewRepresentative: restored.Representative,
		NewBalance:        restored.Balance,
	}

	switch {
	case sb.IsSend:
		// The pending entry this send created is simply removed; nobody
		// has received it (checked above).
		instr.PendingKey = store.PendingKey{Destination: block.Link(), SendHash: hash}
		instr.DeletePending = true

	case sb.IsReceive:
		sourceHash := block.Link()
		sourceStored, ok := txn.Blocks().Get(sourceHash)
		if !ok {
			return Step{}, fmt.Errorf("rollback: source block %s missing", numeric.ShortString(sourceHash))
		}
		amount := info.Balance.Sub(restored.Balance)
		pending := store.PendingInfo{
			Source: sourceStored.Sideband.Account,
			Amount: amount,
			Epoch:  sourceStored.Sideband.Epoch,
		}
		instr.PendingKey = store.PendingKey{Destination: account, SendHash: sourceHash}
		instr.ReinsertPending = &pending
		instr.ReceivedBySend = sourceHash
	}

	return Step{Instructions: instr}, nil
}

// Apply carries out instr against txn: it restores (or removes) the
// account record, reverses the pending-table edit the block made, drops
// the block from the block table, and clears the new head's successor
// link. Callers are responsible for calling it bottom-up, i.e. only
// after any Dependent a prior Plan call named has itself been rolled
// back.
func Apply(txn store.WriteTx, instr *Instructions, obs ledger.Observer) error {
	blocksRW := txn.BlocksRW()
	blocksRW.Delete(instr.Block.Hash())

	if instr.HadAccount {
		prevStored, ok := blocksRW.Get(instr.RestoredInfo.Head)
		if !ok {
			return &ledger.IntegrityError{Reason: "rollback: predecessor block missing from store"}
		}
		prevStored.Sideband.Successor = numeric.ZeroHash
		blocksRW.Put(instr.RestoredInfo.Head, prevStored)

		txn.AccountsRW().Put(instr.Account, instr.RestoredInfo)
		txn.FrontiersRW().Put(instr.Account, instr.RestoredInfo.Head)
	} else {
		txn.AccountsRW().Delete(instr.Account)
		txn.FrontiersRW().Delete(instr.Account)
	}

	pendingRW := txn.PendingRW()
	switch {
	case instr.DeletePending:
		pendingRW.Delete(instr.PendingKey)
	case instr.ReinsertPending != nil:
		pendingRW.Put(instr.PendingKey, *instr.ReinsertPending)
		txn.ReceivedByRW().Delete(instr.ReceivedBySend)
	}

	if obs != nil {
		obs.RepresentativeWeightChanged(instr.OldRepresentative, instr.NewRepresentative, instr.OldBalance, instr.NewBalance)
	}
	return nil
}

// RollBack undoes account's chain from its current head down to and
// including hash, recursing into any dependent account a send's already-
// received pending entry requires first. It returns every block it
// undid, ordered from first-undone to last, so a caller (the block
// processor's forced-block path) can resubmit any block whose removal
// was purely collateral (spec.md section 4.3: "Output is the ordered
// list of undone blocks").
func RollBack(txn store.WriteTx, hash numeric.Hash, obs ledger.Observer) ([]blocks.Block, error) {
	var undone []blocks.Block
	stored, ok := txn.Blocks().Get(hash)
	if !ok {
		return nil, fmt.Errorf("rollback: block %s not found", numeric.ShortString(hash))
	}
	account := stored.Sideband.Account

	for {
		info, ok := txn.Accounts().Get(account)
		if !ok {
			return undone, fmt.Errorf("rollback: account for %s no longer present", numeric.ShortString(hash))
		}
		head := info.Head

		step, err := Plan(txn, head)
		if err != nil {
			return undone, err
		}
		if step.Instructions == nil {
			depBlocks, err := RollBack(txn, step.Dependent, obs)
			if err != nil {
				return undone, err
			}
			undone = append(undone, depBlocks...)
			continue
		}

		if err := Apply(txn, step.Instructions, obs); err != nil {
			return undone, err
		}
		undone = append(undone, step.Instructions.Block)

		if head == hash {
			return undone, nil
		}
	}
}
