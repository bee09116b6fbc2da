// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blocks defines the five block variants of an account chain
// (open, send, receive, change, state) behind a common capability
// interface, plus their canonical serialization and hashing. Legality
// rules live in the ledger validator, not here: a Block only knows how to
// identify and serialize itself.
package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// Type identifies a block variant.
type Type uint8

const (
	// TypeInvalid is the zero value and never a legal on-disk block type.
	TypeInvalid Type = iota
	TypeOpen
	TypeSend
	TypeReceive
	TypeChange
	TypeState
)

// String renders the block type for logs and error messages.
func (t Type) String() string {
	switch t {
	case TypeOpen:
		return "open"
	case TypeSend:
		return "send"
	case TypeReceive:
		return "receive"
	case TypeChange:
		return "change"
	case TypeState:
		return "state"
	default:
		return "invalid"
	}
}

// Block is the capability set every variant implements. Hash, Root, and
// Serialize are pure functions of the block's own fields; Account is
// sometimes only resolvable from context (legacy send/receive/change
// blocks carry no account field of their own and must be resolved from
// the block they extend), which is why those variants implement
// ResolvableAccount so the resolved account can be attached later.
type Block interface {
	// Type reports which of the five variants this is.
	Type() Type

	// Hash returns the BLAKE2b-256 digest over the canonical field
	// region, excluding Signature and Work.
	Hash() numeric.Hash

	// Root returns Previous() if it is non-zero, else Account(). Used as
	// the PoW root and the election root's second component.
	Root() numeric.Hash

	// Previous returns the hash of the block this one extends, or the
	// zero hash for an open block.
	Previous() numeric.Hash

	// Account returns the account this block belongs to. For legacy
	// blocks other than Open, this is only known once resolved against
	// the chain (see ResolvableAccount); Open and State blocks carry it
	// directly.
	Account() numeric.Account

	// Representative returns the representative this block names, or
	// the zero account if the block type cannot change it.
	Representative() numeric.Account

	// Balance returns the account's balance immediately after this
	// block, if the variant carries an absolute balance (Send, State),
	// or the zero amount otherwise (the validator recomputes Receive/
	// Open/Change balances from the previous block and the pending
	// entry).
	Balance() numeric.Amount

	// Link returns the state block's link field: a source hash if this
	// is a receive/open-equivalent, a destination account if this is a
	// send-equivalent, or the zero hash for a change-equivalent. Legacy
	// blocks map their own field onto it: Open and Receive return their
	// source, Send its destination, and Change the zero hash.
	Link() numeric.Hash

	// Signature returns the detached Ed25519 signature over Hash().
	Signature() nodecrypto.Signature

	// Work returns the block's proof-of-work nonce.
	Work() numeric.Work

	// Serialize returns the canonical on-disk/wire encoding: a type
	// byte, then fields in declared order, then signature and work
	// appended.
	Serialize() []byte
}

// HasAccountField reports whether the variant carries its account
// directly (Open, State) as opposed to needing chain resolution (Send,
// Receive, Change).
func HasAccountField(t Type) bool {
	return t == TypeOpen || t == TypeState
}
