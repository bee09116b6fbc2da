// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sideband defines the derived per-block metadata attached on
// write (spec.md section 3): height in its chain, timestamp, block-type
// details, and the successor link. Sideband is never user-supplied; it is
// recomputed by the ledger on process and on rollback.
//
// Account and Balance supplement the fields spec.md section 3 names
// explicitly, grounded on the reference implementation's own block
// sideband (which caches both): without them, undoing a legacy receive,
// open, or change block would need to re-walk the whole chain to recover
// the account's balance immediately before that block, since only State
// blocks carry balance inline. Caching it here keeps rollback and the
// cementer O(1) per block the way the rest of the ledger already is.
package sideband

import "github.com/repchain/repchaind/numeric"

// Sideband is attached to a block the moment it is written to the block
// table.
type Sideband struct {
	// Height is the block's position in its account chain, 1-based
	// (the open block has height 1).
	Height uint64

	// Timestamp is the unix-seconds time the block was processed.
	Timestamp int64

	// Epoch is the account's epoch as of this block.
	Epoch uint8

	// Account is the account this block belongs to, cached so callers
	// resolving a block from the store never need to re-walk its chain
	// to learn the account of a legacy Send/Receive/Change block.
	Account numeric.Account

	// Balance is the account's balance immediately after this block.
	Balance numeric.Amount

	// Representative is the account's representative immediately after
	// this block, cached for the same reason as Balance: legacy
	// Send/Receive blocks carry no representative field of their own.
	Representative numeric.Account

	// IsSend reports whether this block is a send (legacy Send, or a
	// State block whose link decreases the balance).
	IsSend bool

	// IsReceive reports whether this block is a receive or open.
	IsReceive bool

	// IsEpoch reports whether this is an epoch-upgrade block.
	IsEpoch bool

	// Successor is the hash of the block that extends this one, or the
	// zero hash if this is still the account's head. Backfilled onto
	// the previous block when a new block is processed, and cleared on
	// rollback of the successor.
	Successor numeric.Hash
}
