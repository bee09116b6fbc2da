// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// Builder is the facade over the five per-variant builders, mirroring the
// reference implementation's BlockBuilder: Open(), Send(), Receive(),
// Change(), State() each start a fluent builder whose Build signs and
// hashes the result.
type Builder struct{}

// Open starts building an open block.
func (Builder) Open() *OpenBuilder { return &OpenBuilder{} }

// Send starts building a legacy send block.
func (Builder) Send() *SendBuilder { return &SendBuilder{} }

// Receive starts building a legacy receive block.
func (Builder) Receive() *ReceiveBuilder { return &ReceiveBuilder{} }

// Change starts building a legacy change block.
func (Builder) Change() *ChangeBuilder { return &ChangeBuilder{} }

// State starts building a state block.
func (Builder) State() *StateBuilder { return &StateBuilder{} }

// OpenBuilder builds an OpenBlock.
type OpenBuilder struct {
	b OpenBlock
}

func (ob *OpenBuilder) Source(h numeric.Hash) *OpenBuilder {
	ob.b.source = h
	return ob
}
func (ob *OpenBuilder) Representative(a numeric.Account) *OpenBuilder {
	ob.b.representative = a
	return ob
}
func (ob *OpenBuilder) Account(a numeric.Account) *OpenBuilder {
	ob.b.account = a
	return ob
}
func (ob *OpenBuilder) Work(w numeric.Work) *OpenBuilder {
	ob.b.work = w
	return ob
}

// Build signs the block with key and returns the completed OpenBlock.
func (ob *OpenBuilder) Build(key nodecrypto.PrivateKey) *OpenBlock {
	ob.b.hash = hashRegion(ob.b.region())
	ob.b.signature = key.Sign(ob.b.hash[:])
	blk := ob.b
	return &blk
}

// SendBuilder builds a SendBlock.
type SendBuilder struct {
	b SendBlock
}

func (sb *SendBuilder) Previous(h numeric.Hash) *SendBuilder {
	sb.b.previous = h
	return sb
}
func (sb *SendBuilder) Destination(a numeric.Account) *SendBuilder {
	sb.b.destination = a
	return sb
}
func (sb *SendBuilder) Balance(amt numeric.Amount) *SendBuilder {
	sb.b.balance = amt
	return sb
}
func (sb *SendBuilder) Work(w numeric.Work) *SendBuilder {
	sb.b.work = w
	return sb
}

func (sb *SendBuilder) Build(key nodecrypto.PrivateKey) *SendBlock {
	sb.b.resolvedAcct = key.Account()
	sb.b.hash = hashRegion(sb.b.region())
	sb.b.signature = key.Sign(sb.b.hash[:])
	blk := sb.b
	return &blk
}

// ReceiveBuilder builds a ReceiveBlock.
type ReceiveBuilder struct {
	b ReceiveBlock
}

func (rb *ReceiveBuilder) Previous(h numeric.Hash) *ReceiveBuilder {
	rb.b.previous = h
	return rb
}
func (rb *ReceiveBuilder) Source(h numeric.Hash) *ReceiveBuilder {
	rb.b.source = h
	return rb
}
func (rb *ReceiveBuilder) Work(w numeric.Work) *ReceiveBuilder {
	rb.b.work = w
	return rb
}

func (rb *ReceiveBuilder) Build(key nodecrypto.PrivateKey) *ReceiveBlock {
	rb.b.resolvedAcct = key.Account()
	rb.b.hash = hashRegion(rb.b.region())
	rb.b.signature = key.Sign(rb.b.hash[:])
	blk := rb.b
	return &blk
}

// ChangeBuilder builds a ChangeBlock.
type ChangeBuilder struct {
	b ChangeBlock
}

func (cb *ChangeBuilder) Previous(h numeric.Hash) *ChangeBuilder {
	cb.b.previous = h
	return cb
}
func (cb *ChangeBuilder) Representative(a numeric.Account) *ChangeBuilder {
	cb.b.representative = a
	return cb
}
func (cb *ChangeBuilder) Work(w numeric.Work) *ChangeBuilder {
	cb.b.work = w
	return cb
}

func (cb *ChangeBuilder) Build(key nodecrypto.PrivateKey) *ChangeBlock {
	cb.b.resolvedAcct = key.Account()
	cb.b.hash = hashRegion(cb.b.region())
	cb.b.signature = key.Sign(cb.b.hash[:])
	blk := cb.b
	return &blk
}

// StateBuilder builds a StateBlock.
type StateBuilder struct {
	b StateBlock
}

func (tb *StateBuilder) Account(a numeric.Account) *StateBuilder {
	tb.b.account = a
	return tb
}
func (tb *StateBuilder) Previous(h numeric.Hash) *StateBuilder {
	tb.b.previous = h
	return tb
}
func (tb *StateBuilder) Representative(a numeric.Account) *StateBuilder {
	tb.b.representative = a
	return tb
}
func (tb *StateBuilder) Balance(amt numeric.Amount) *StateBuilder {
	tb.b.balance = amt
	return tb
}
func (tb *StateBuilder) Link(h numeric.Hash) *StateBuilder {
	tb.b.link = h
	return tb
}
func (tb *StateBuilder) Work(w numeric.Work) *StateBuilder {
	tb.b.work = w
	return tb
}

func (tb *StateBuilder) Build(key nodecrypto.PrivateKey) *StateBlock {
	tb.b.hash = hashRegion(tb.b.region())
	tb.b.signature = key.Sign(tb.b.hash[:])
	blk := tb.b
	return &blk
}
