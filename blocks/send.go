// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// SendBlock decreases its account's balance and creates a pending entry
// for the destination account. Its own account is not carried on the
// block; the validator resolves it from the chain it extends.
type SendBlock struct {
	previous     numeric.Hash
	destination  numeric.Account
	balance      numeric.Amount
	signature    nodecrypto.Signature
	work         numeric.Work
	hash         numeric.Hash
	resolvedAcct numeric.Account
}

func (b *SendBlock) Type() Type                     { return TypeSend }
func (b *SendBlock) Hash() numeric.Hash              { return b.hash }
func (b *SendBlock) Root() numeric.Hash              { return b.previous }
func (b *SendBlock) Previous() numeric.Hash          { return b.previous }
func (b *SendBlock) Account() numeric.Account        { return b.resolvedAcct }
func (b *SendBlock) Representative() numeric.Account { return numeric.Account{} }
func (b *SendBlock) Balance() numeric.Amount         { return b.balance }
func (b *SendBlock) Link() numeric.Hash              { return b.destination }
func (b *SendBlock) Signature() nodecrypto.Signature { return b.signature }
func (b *SendBlock) Work() numeric.Work              { return b.work }

// Destination returns the account the pending entry is created for.
func (b *SendBlock) Destination() numeric.Account { return b.destination }

// SetResolvedAccount records the account this block belongs to, as
// resolved by the ledger validator from the previous block's account.
// Legacy blocks carry no account field of their own.
func (b *SendBlock) SetResolvedAccount(a numeric.Account) { b.resolvedAcct = a }

func (b *SendBlock) region() []byte {
	bal := b.balance.Bytes()
	return fieldRegion(TypeSend, b.previous[:], b.destination[:], bal[:])
}

func (b *SendBlock) Serialize() []byte {
	return appendSigWork(b.region(), b.signature, b.work)
}
