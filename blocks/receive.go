// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// ReceiveBlock increases its account's balance by the amount of a pending
// send it names by hash.
type ReceiveBlock struct {
	previous     numeric.Hash
	source       numeric.Hash
	signature    nodecrypto.Signature
	work         numeric.Work
	hash         numeric.Hash
	resolvedAcct numeric.Account
}

func (b *ReceiveBlock) Type() Type                     { return TypeReceive }
func (b *ReceiveBlock) Hash() numeric.Hash              { return b.hash }
func (b *ReceiveBlock) Root() numeric.Hash              { return b.previous }
func (b *ReceiveBlock) Previous() numeric.Hash          { return b.previous }
func (b *ReceiveBlock) Account() numeric.Account        { return b.resolvedAcct }
func (b *ReceiveBlock) Representative() numeric.Account { return numeric.Account{} }
func (b *ReceiveBlock) Balance() numeric.Amount         { return numeric.Zero }
func (b *ReceiveBlock) Link() numeric.Hash              { return b.source }
func (b *ReceiveBlock) Signature() nodecrypto.Signature { return b.signature }
func (b *ReceiveBlock) Work() numeric.Work              { return b.work }

// Source returns the hash of the pending send this block receives.
func (b *ReceiveBlock) Source() numeric.Hash { return b.source }

// SetResolvedAccount records the account this block belongs to, as
// resolved by the ledger validator from the previous block's account.
func (b *ReceiveBlock) SetResolvedAccount(a numeric.Account) { b.resolvedAcct = a }

func (b *ReceiveBlock) region() []byte {
	return fieldRegion(TypeReceive, b.previous[:], b.source[:])
}

func (b *ReceiveBlock) Serialize() []byte {
	return appendSigWork(b.region(), b.signature, b.work)
}
