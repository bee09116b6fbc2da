// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// ChangeBlock changes its account's representative without moving any
// balance.
type ChangeBlock struct {
	previous       numeric.Hash
	representative numeric.Account
	signature      nodecrypto.Signature
	work           numeric.Work
	hash           numeric.Hash
	resolvedAcct   numeric.Account
}

func (b *ChangeBlock) Type() Type                     { return TypeChange }
func (b *ChangeBlock) Hash() numeric.Hash              { return b.hash }
func (b *ChangeBlock) Root() numeric.Hash              { return b.previous }
func (b *ChangeBlock) Previous() numeric.Hash          { return b.previous }
func (b *ChangeBlock) Account() numeric.Account        { return b.resolvedAcct }
func (b *ChangeBlock) Representative() numeric.Account { return b.representative }
func (b *ChangeBlock) Balance() numeric.Amount         { return numeric.Zero }
func (b *ChangeBlock) Link() numeric.Hash              { return numeric.ZeroHash }
func (b *ChangeBlock) Signature() nodecrypto.Signature { return b.signature }
func (b *ChangeBlock) Work() numeric.Work              { return b.work }

// SetResolvedAccount records the account this block belongs to, as
// resolved by the ledger validator from the previous block's account.
func (b *ChangeBlock) SetResolvedAccount(a numeric.Account) { b.resolvedAcct = a }

func (b *ChangeBlock) region() []byte {
	return fieldRegion(TypeChange, b.previous[:], b.representative[:])
}

func (b *ChangeBlock) Serialize() []byte {
	return appendSigWork(b.region(), b.signature, b.work)
}
