// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// OpenBlock is the first block of an account chain: it receives a send
// and names the account's initial representative.
type OpenBlock struct {
	source         numeric.Hash
	representative numeric.Account
	account        numeric.Account
	signature      nodecrypto.Signature
	work           numeric.Work
	hash           numeric.Hash
}

func (b *OpenBlock) Type() Type                            { return TypeOpen }
func (b *OpenBlock) Hash() numeric.Hash                     { return b.hash }
func (b *OpenBlock) Root() numeric.Hash                     { return b.account }
func (b *OpenBlock) Previous() numeric.Hash                 { return numeric.ZeroHash }
func (b *OpenBlock) Account() numeric.Account               { return b.account }
func (b *OpenBlock) Representative() numeric.Account        { return b.representative }
func (b *OpenBlock) Balance() numeric.Amount                { return numeric.Zero }
func (b *OpenBlock) Link() numeric.Hash                     { return b.source }
func (b *OpenBlock) Signature() nodecrypto.Signature         { return b.signature }
func (b *OpenBlock) Work() numeric.Work                     { return b.work }

// Source returns the hash of the send block this open block receives.
func (b *OpenBlock) Source() numeric.Hash { return b.source }

func (b *OpenBlock) region() []byte {
	return fieldRegion(TypeOpen, b.source[:], b.representative[:], b.account[:])
}

func (b *OpenBlock) Serialize() []byte {
	return appendSigWork(b.region(), b.signature, b.work)
}
