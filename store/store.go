// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store defines the abstract transactional key/value store the
// ledger core is built against (spec.md section 6). It is deliberately
// thin: the real on-disk engine (an LMDB-style environment, per-table
// cursors) is an external collaborator. This package only states the
// contract, plus two implementations for use without a production store:
// store/memstore (in-memory, used by unit tests) and
// store/leveldbstore (goleveldb-backed, used by integration tests and the
// reference node binary).
package store

import (
	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/ledger/sideband"
	"github.com/repchain/repchaind/numeric"
)

// AccountInfo is the per-account record described in spec.md section 3.
type AccountInfo struct {
	Head           numeric.Hash
	Open           numeric.Hash
	Representative numeric.Account
	Balance        numeric.Amount
	Modified       int64 // unix seconds
	BlockCount     uint64
	Epoch          uint8
}

// PendingKey identifies an unreceived send: the destination account and
// the hash of the send block that created the entry.
type PendingKey struct {
	Destination numeric.Account
	SendHash    numeric.Hash
}

// PendingInfo is the value stored for a PendingKey (spec.md section 3).
type PendingInfo struct {
	Source numeric.Account
	Amount numeric.Amount
	Epoch  uint8
}

// ConfirmationHeight is the per-account cementation record (spec.md
// section 3): the height and frontier hash of the highest cemented block.
type ConfirmationHeight struct {
	Height uint64
	Frontier numeric.Hash
}

// StoredBlock pairs a block with the sideband metadata computed for it at
// process time.
type StoredBlock struct {
	Block    blocks.Block
	Sideband sideband.Sideband
}

// Store opens read and write transactions against the underlying engine.
// Exactly one write transaction may be open at a time (spec.md section 5);
// any number of read transactions may run concurrently against a
// consistent snapshot.
type Store interface {
	// BeginRead opens a read-only snapshot transaction.
	BeginRead() (ReadTx, error)

	// BeginWrite opens the single write transaction, blocking until any
	// prior write transaction has committed or rolled back.
	BeginWrite() (WriteTx, error)

	// CopyDB writes a consistent whole-environment byte copy to path,
	// for bootstrap snapshots (spec.md section 6).
	CopyDB(path string) error

	// Close releases the underlying engine.
	Close() error
}

// ReadTx is a read-only snapshot over every table.
type ReadTx interface {
	// Accounts returns the account table accessor.
	Accounts() AccountsReader
	// Blocks returns the block table accessor.
	Blocks() BlocksReader
	// Pending returns the pending table accessor.
	Pending() PendingReader
	// Pruned returns the pruned-block-hash set accessor.
	Pruned() PrunedReader
	// ConfirmationHeights returns the confirmation-height table accessor.
	ConfirmationHeights() ConfirmationHeightsReader
	// Frontiers returns the frontier (account -> head hash) accessor.
	Frontiers() FrontiersReader
	// ReceivedBy returns the send-hash -> receiving-block-hash accessor.
	ReceivedBy() ReceivedByReader

	// Discard releases the transaction's resources without committing
	// (a no-op for a read transaction beyond bookkeeping).
	Discard()
}

// WriteTx extends ReadTx with mutating accessors and explicit commit.
type WriteTx interface {
	ReadTx

	AccountsRW() AccountsReadWriter
	BlocksRW() BlocksReadWriter
	PendingRW() PendingReadWriter
	PrunedRW() PrunedReadWriter
	ConfirmationHeightsRW() ConfirmationHeightsReadWriter
	FrontiersRW() FrontiersReadWriter
	ReceivedByRW() ReceivedByReadWriter

	// Commit finalizes the transaction. After Commit, the transaction
	// must not be used again.
	Commit() error

	// Rollback discards all writes made in this transaction.
	Rollback() error
}

// AccountsReader reads the accounts table.
type AccountsReader interface {
	Get(account numeric.Account) (AccountInfo, bool)
	Exists(account numeric.Account) bool
}

// AccountsReadWriter adds mutation to AccountsReader.
type AccountsReadWriter interface {
	AccountsReader
	Put(account numeric.Account, info AccountInfo)
	Delete(account numeric.Account)
}

// BlocksReader reads the blocks table.
type BlocksReader interface {
	Get(hash numeric.Hash) (StoredBlock, bool)
	Exists(hash numeric.Hash) bool
}

// BlocksReadWriter adds mutation to BlocksReader.
type BlocksReadWriter interface {
	BlocksReader
	Put(hash numeric.Hash, sb StoredBlock)
	Delete(hash numeric.Hash)
}

// PendingReader reads the pending table.
type PendingReader interface {
	Get(key PendingKey) (PendingInfo, bool)
	// ForAccount iterates pending entries for a destination account in
	// key order, calling fn until it returns false.
	ForAccount(account numeric.Account, fn func(PendingKey, PendingInfo) bool)
}

// PendingReadWriter adds mutation to PendingReader.
type PendingReadWriter interface {
	PendingReader
	Put(key PendingKey, info PendingInfo)
	Delete(key PendingKey)
}

// PrunedReader reads the pruned-hash set.
type PrunedReader interface {
	Exists(hash numeric.Hash) bool
}

// PrunedReadWriter adds mutation to PrunedReader.
type PrunedReadWriter interface {
	PrunedReader
	Put(hash numeric.Hash)
	Delete(hash numeric.Hash)
}

// ConfirmationHeightsReader reads the confirmation-height table.
type ConfirmationHeightsReader interface {
	Get(account numeric.Account) (ConfirmationHeight, bool)
}

// ConfirmationHeightsReadWriter adds mutation to ConfirmationHeightsReader.
type ConfirmationHeightsReadWriter interface {
	ConfirmationHeightsReader
	Put(account numeric.Account, ch ConfirmationHeight)
}

// FrontiersReader reads the frontier table (account -> head hash), used by
// the bootstrap puller to discover gaps.
type FrontiersReader interface {
	Get(account numeric.Account) (numeric.Hash, bool)
	ForEach(fn func(numeric.Account, numeric.Hash) bool)
}

// FrontiersReadWriter adds mutation to FrontiersReader.
type FrontiersReadWriter interface {
	FrontiersReader
	Put(account numeric.Account, head numeric.Hash)
	Delete(account numeric.Account)
}

// ReceivedByReader reads the reverse index from a send block's hash to
// the hash of the block that received it, if any. The ledger has no
// other way to locate that block once its pending entry is consumed, and
// roll_back needs exactly this to recurse into a dependent account
// before it can undo a send that has already been received elsewhere
// (spec.md section 4.3: "RequestDependencyRollback").
type ReceivedByReader interface {
	Get(sendHash numeric.Hash) (numeric.Hash, bool)
}

// ReceivedByReadWriter adds mutation to ReceivedByReader.
type ReceivedByReadWriter interface {
	ReceivedByReader
	Put(sendHash, receiverHash numeric.Hash)
	Delete(sendHash numeric.Hash)
}
