// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// StateBlock subsumes all four legacy operations via its Link field: a
// zero link is a change, a link naming a destination account whose
// balance strictly decreases is a send, and any other link is a receive
// or (when Previous is zero) an open.
type StateBlock struct {
	account        numeric.Account
	previous       numeric.Hash
	representative numeric.Account
	balance        numeric.Amount
	link           numeric.Hash
	signature      nodecrypto.Signature
	work           numeric.Work
	hash           numeric.Hash
}

func (b *StateBlock) Type() Type                     { return TypeState }
func (b *StateBlock) Hash() numeric.Hash              { return b.hash }
func (b *StateBlock) Account() numeric.Account        { return b.account }
func (b *StateBlock) Previous() numeric.Hash          { return b.previous }
func (b *StateBlock) Representative() numeric.Account { return b.representative }
func (b *StateBlock) Balance() numeric.Amount         { return b.balance }
func (b *StateBlock) Link() numeric.Hash              { return b.link }
func (b *StateBlock) Signature() nodecrypto.Signature { return b.signature }
func (b *StateBlock) Work() numeric.Work              { return b.work }

// Root returns Previous if set, else Account, matching every other
// variant's root semantics (spec.md section 3).
func (b *StateBlock) Root() numeric.Hash {
	if !numeric.IsZero(b.previous) {
		return b.previous
	}
	return b.account
}

// Subtype classifies a state block's link for logging and sideband
// purposes. It is a classification of intent, not a validity judgement:
// the ledger validator is the sole authority on whether the block is
// actually legal.
type Subtype uint8

const (
	SubtypeChange Subtype = iota
	SubtypeSend
	SubtypeReceive
	SubtypeOpen
	SubtypeEpoch
)

// ClassifyAgainst determines the subtype of a state block given the
// account's balance prior to this block (zero if this is an open) and
// whether the link is the configured epoch sentinel.
func (b *StateBlock) ClassifyAgainst(previousBalance numeric.Amount, isEpochLink bool) Subtype {
	if isEpochLink {
		return SubtypeEpoch
	}
	if numeric.IsZero(b.link) {
		return SubtypeChange
	}
	if numeric.IsZero(b.previous) {
		return SubtypeOpen
	}
	if b.balance.Cmp(previousBalance) < 0 {
		return SubtypeSend
	}
	return SubtypeReceive
}

func (b *StateBlock) region() []byte {
	bal := b.balance.Bytes()
	return fieldRegion(TypeState, b.account[:], b.previous[:], b.representative[:], bal[:], b.link[:])
}

func (b *StateBlock) Serialize() []byte {
	return appendSigWork(b.region(), b.signature, b.work)
}
