// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// Decision is everything validate establishes about a Progress block
// beyond the bare Outcome, so Process never re-derives a fact the
// validator already paid the store lookups for.
type Decision struct {
	Outcome Outcome

	Account numeric.Account
	Subtype blocks.Subtype
	IsOpen  bool
	IsEpoch bool

	PrevInfo store.AccountInfo // zero value when IsOpen

	PendingKey  store.PendingKey  // valid when Subtype is receive/open
	PendingInfo store.PendingInfo

	NewBalance        numeric.Amount
	NewRepresentative numeric.Account
	NewEpoch          uint8
}

// Validate runs the seven ordered rules of the ledger validator against a
// single candidate block (spec.md section 4.1), short-circuiting at the
// first failing rule. It never mutates txn; Process applies a Progress
// decision to a write transaction.
func Validate(txn store.ReadTx, p *chaincfg.Params, block blocks.Block) Decision {
	if txn.Blocks().Exists(block.Hash()) {
		return Decision{Outcome: Old}
	}

	account, epochBlock, outcome := resolveAccount(txn, p, block)
	if outcome != Progress {
		return Decision{Outcome: outcome}
	}

	prevInfo, hasAccount := txn.Accounts().Get(account)

	// Rule 1: signature. An epoch block is signed by the epoch signer
	// configured for the epoch it raises the account to, not by the
	// account's own key; resolveAccount has already picked the right
	// verifying key's account out for that case.
	sigAccount := account
	if epochBlock {
		nextEpoch := uint8(1)
		if hasAccount {
			nextEpoch = prevInfo.Epoch + 1
		}
		signer, ok := p.EpochSigners[nextEpoch]
		if !ok {
			return Decision{Outcome: Invalid}
		}
		sigAccount = signer
	}
	if !nodecrypto.Verify(sigAccount, block.Hash()[:], block.Signature()) {
		return Decision{Outcome: BadSignature}
	}

	// Rule 3: previous/fork/open resolution.
	isOpen := numeric.IsZero(block.Previous())
	if isOpen {
		if hasAccount {
			return Decision{Outcome: Opened}
		}
	} else {
		prevBlock, exists := txn.Blocks().Get(block.Previous())
		if !exists {
			return Decision{Outcome: GapPrevious}
		}
		if prevBlock.Block.Account() != account {
			return Decision{Outcome: Invalid}
		}
		if !hasAccount || block.Previous() != prevInfo.Head {
			return Decision{Outcome: Fork}
		}
	}
	if epochBlock && isOpen {
		// An epoch block raises an existing account's epoch; it can
		// never also be that account's first block.
		return Decision{Outcome: Invalid}
	}

	priorBalance := numeric.Zero
	priorRepresentative := numeric.Account{}
	priorEpoch := uint8(0)
	if hasAccount {
		priorBalance = prevInfo.Balance
		priorRepresentative = prevInfo.Representative
		priorEpoch = prevInfo.Epoch
	}

	subtype := classify(block, isOpen, epochBlock, priorBalance)

	// Rule 2: work threshold. Receive-class blocks (receive and open)
	// use WorkThresholdReceive once the account has reached
	// ReceiveThresholdEpoch; everything else (send, change, epoch) uses
	// the send threshold.
	threshold := p.WorkThresholdSend
	if (subtype == blocks.SubtypeReceive || subtype == blocks.SubtypeOpen) && priorEpoch >= p.ReceiveThresholdEpoch {
		threshold = p.WorkThresholdReceive
	}
	if !nodecrypto.ValidateWork(block.Work(), block.Root(), threshold) {
		return Decision{Outcome: InsufficientWork}
	}

	d := Decision{
		Account:           account,
		Subtype:           subtype,
		IsOpen:            isOpen,
		IsEpoch:           epochBlock,
		PrevInfo:          prevInfo,
		NewRepresentative: priorRepresentative,
		NewEpoch:          priorEpoch,
	}

	switch subtype {
	case blocks.SubtypeReceive, blocks.SubtypeOpen:
		// Rule 4: the referenced source must be an unreceived pending
		// send to this account, and its epoch must not be ahead of
		// ours (an epoch-upgrade block must land before pending raised
		// under a newer epoch can be received).
		key := store.PendingKey{Destination: account, SendHash: block.Link()}
		pending, ok := txn.Pending().Get(key)
		if !ok {
			return Decision{Outcome: GapSource}
		}
		if pending.Epoch > priorEpoch {
			return Decision{Outcome: GapEpochOpenPending}
		}

		// Rule 5: receive/open must strictly increase by exactly the
		// pending amount.
		newBalance := priorBalance.Add(pending.Amount)
		if block.Type() == blocks.TypeState && block.Balance() != newBalance {
			return Decision{Outcome: BalanceMismatch}
		}

		// Rule 6: state blocks may change representative freely;
		// legacy receive/open keep whatever representative the chain
		// already carries (open names the initial one).
		rep := priorRepresentative
		if block.Type() == blocks.TypeState || subtype == blocks.SubtypeOpen {
			rep = block.Representative()
		}

		d.PendingKey = key
		d.PendingInfo = pending
		d.NewBalance = newBalance
		d.NewRepresentative = rep
		d.Outcome = Progress
		return d

	case blocks.SubtypeSend:
		if numeric.IsZero(block.Link()) {
			return Decision{Outcome: Negative}
		}
		// Rule 5: send must strictly decrease balance.
		if block.Balance().Cmp(priorBalance) >= 0 {
			return Decision{Outcome: BalanceMismatch}
		}
		d.PendingKey = store.PendingKey{Destination: block.Link(), SendHash: block.Hash()}
		d.PendingInfo = store.PendingInfo{
			Source: account,
			Amount: priorBalance.Sub(block.Balance()),
			Epoch:  priorEpoch,
		}
		d.NewBalance = block.Balance()
		// Rule 6: legacy send must preserve the current representative;
		// state-as-send may change it freely.
		if block.Type() == blocks.TypeState {
			d.NewRepresentative = block.Representative()
		}
		d.Outcome = Progress
		return d

	case blocks.SubtypeChange:
		// Rule 5: change must keep balance unchanged.
		if block.Type() == blocks.TypeState && block.Balance() != priorBalance {
			return Decision{Outcome: BalanceMismatch}
		}
		d.NewBalance = priorBalance
		// Rule 6: change (legacy or state) sets the new representative.
		d.NewRepresentative = block.Representative()
		d.Outcome = Progress
		return d

	case blocks.SubtypeEpoch:
		// Rule 7: epoch blocks are representative- and balance-
		// preserving; they only raise the account's epoch.
		if block.Balance() != priorBalance {
			return Decision{Outcome: BalanceMismatch}
		}
		if block.Representative() != priorRepresentative {
			return Decision{Outcome: RepresentativeMismatch}
		}
		d.NewBalance = priorBalance
		d.NewEpoch = priorEpoch + 1
		d.Outcome = Progress
		return d
	}

	return Decision{Outcome: Invalid}
}

// resolveAccount determines which account a block belongs to and whether
// it is an epoch-upgrade block, per rule 1's "resolved from previous-
// block account for legacy types" clause. Legacy Send/Receive/Change
// carry no account field of their own; their account is only known once
// their previous block is found.
func resolveAccount(txn store.ReadTx, p *chaincfg.Params, block blocks.Block) (numeric.Account, bool, Outcome) {
	if blocks.HasAccountField(block.Type()) {
		epochBlock := block.Type() == blocks.TypeState && block.Link() == p.EpochLink
		return block.Account(), epochBlock, Progress
	}
	if numeric.IsZero(block.Previous()) {
		// Only Open (handled above) may have a zero previous; a legacy
		// Send/Receive/Change with a zero previous can never be
		// resolved to an account and is malformed.
		return numeric.Account{}, false, Invalid
	}
	prevBlock, exists := txn.Blocks().Get(block.Previous())
	if !exists {
		return numeric.Account{}, false, GapPrevious
	}
	return prevBlock.Block.Account(), false, Progress
}

// classify determines the block's operational subtype, mirroring
// StateBlock.ClassifyAgainst for legacy variants that don't carry a Link
// field to classify themselves.
func classify(block blocks.Block, isOpen, epochBlock bool, priorBalance numeric.Amount) blocks.Subtype {
	if epochBlock {
		return blocks.SubtypeEpoch
	}
	switch block.Type() {
	case blocks.TypeOpen:
		return blocks.SubtypeOpen
	case blocks.TypeSend:
		return blocks.SubtypeSend
	case blocks.TypeReceive:
		return blocks.SubtypeReceive
	case blocks.TypeChange:
		return blocks.SubtypeChange
	case blocks.TypeState:
		sb := block.(*blocks.StateBlock)
		return sb.ClassifyAgainst(priorBalance, false)
	default:
		if isOpen {
			return blocks.SubtypeOpen
		}
		return blocks.SubtypeChange
	}
}
