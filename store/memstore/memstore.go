// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package memstore is an in-memory store.Store, used by ledger, election,
// and cementer unit tests so they never depend on a real disk engine.
// Only one write transaction may be open at a time, matching the
// single-writer invariant of spec.md section 5; a second BeginWrite
// fails with an error instead of blocking. Reads snapshot the current map state by
// shallow-copying it under the same mutex, which is cheap enough for test
// fixture sizes and keeps ReadTx genuinely isolated from concurrent
// writes.
package memstore

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// MemStore is a store.Store backed by plain Go maps.
type MemStore struct {
	mu sync.Mutex

	accounts   map[numeric.Account]store.AccountInfo
	blocksTbl  map[numeric.Hash]store.StoredBlock
	pending    map[store.PendingKey]store.PendingInfo
	pruned     map[numeric.Hash]struct{}
	confirmed  map[numeric.Account]store.ConfirmationHeight
	frontiers  map[numeric.Account]numeric.Hash
	receivedBy map[numeric.Hash]numeric.Hash

	writeHeld bool
}

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{
		accounts:   make(map[numeric.Account]store.AccountInfo),
		blocksTbl:  make(map[numeric.Hash]store.StoredBlock),
		pending:    make(map[store.PendingKey]store.PendingInfo),
		pruned:     make(map[numeric.Hash]struct{}),
		confirmed:  make(map[numeric.Account]store.ConfirmationHeight),
		frontiers:  make(map[numeric.Account]numeric.Hash),
		receivedBy: make(map[numeric.Hash]numeric.Hash),
	}
}

func cloneAccounts(m map[numeric.Account]store.AccountInfo) map[numeric.Account]store.AccountInfo {
	out := make(map[numeric.Account]store.AccountInfo, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBlocks(m map[numeric.Hash]store.StoredBlock) map[numeric.Hash]store.StoredBlock {
	out := make(map[numeric.Hash]store.StoredBlock, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePending(m map[store.PendingKey]store.PendingInfo) map[store.PendingKey]store.PendingInfo {
	out := make(map[store.PendingKey]store.PendingInfo, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePruned(m map[numeric.Hash]struct{}) map[numeric.Hash]struct{} {
	out := make(map[numeric.Hash]struct{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneConfirmed(m map[numeric.Account]store.ConfirmationHeight) map[numeric.Account]store.ConfirmationHeight {
	out := make(map[numeric.Account]store.ConfirmationHeight, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFrontiers(m map[numeric.Account]numeric.Hash) map[numeric.Account]numeric.Hash {
	out := make(map[numeric.Account]numeric.Hash, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneReceivedBy(m map[numeric.Hash]numeric.Hash) map[numeric.Hash]numeric.Hash {
	out := make(map[numeric.Hash]numeric.Hash, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// BeginRead returns a snapshot of every table as of now.
func (s *MemStore) BeginRead() (store.ReadTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &tx{
		accounts:   cloneAccounts(s.accounts),
		blocksTbl:  cloneBlocks(s.blocksTbl),
		pending:    clonePending(s.pending),
		pruned:     clonePruned(s.pruned),
		confirmed:  cloneConfirmed(s.confirmed),
		frontiers:  cloneFrontiers(s.frontiers),
		receivedBy: cloneReceivedBy(s.receivedBy),
	}, nil
}

// BeginWrite acquires the single write slot and returns a transaction
// that mutates the live store on Commit. Unlike the blocking behaviour
// store.Store describes, it returns an error at once if another write
// transaction is still open.
func (s *MemStore) BeginWrite() (store.WriteTx, error) {
	s.mu.Lock()
	if s.writeHeld {
		s.mu.Unlock()
		return nil, fmt.Errorf("memstore: a write transaction is already open")
	}
	s.writeHeld = true
	snapshot := &tx{
		accounts:   cloneAccounts(s.accounts),
		blocksTbl:  cloneBlocks(s.blocksTbl),
		pending:    clonePending(s.pending),
		pruned:     clonePruned(s.pruned),
		confirmed:  cloneConfirmed(s.confirmed),
		frontiers:  cloneFrontiers(s.frontiers),
		receivedBy: cloneReceivedBy(s.receivedBy),
		parent:     s,
	}
	s.mu.Unlock()
	return snapshot, nil
}

// CopyDB writes nothing for the in-memory store; it exists only to
// satisfy store.Store for tests that exercise the bootstrap snapshot
// path without a real engine.
func (s *MemStore) CopyDB(path string) error { return nil }

// Close is a no-op for MemStore.
func (s *MemStore) Close() error { return nil }

type tx struct {
	accounts   map[numeric.Account]store.AccountInfo
	blocksTbl  map[numeric.Hash]store.StoredBlock
	pending    map[store.PendingKey]store.PendingInfo
	pruned     map[numeric.Hash]struct{}
	confirmed  map[numeric.Account]store.ConfirmationHeight
	frontiers  map[numeric.Account]numeric.Hash
	receivedBy map[numeric.Hash]numeric.Hash

	parent *MemStore // nil for read transactions
}

func (t *tx) Accounts() store.AccountsReader                         { return accountsView{t} }
func (t *tx) Blocks() store.BlocksReader                              { return blocksView{t} }
func (t *tx) Pending() store.PendingReader                            { return pendingView{t} }
func (t *tx) Pruned() store.PrunedReader                              { return prunedView{t} }
func (t *tx) ConfirmationHeights() store.ConfirmationHeightsReader     { return confHeightView{t} }
func (t *tx) Frontiers() store.FrontiersReader                        { return frontiersView{t} }
func (t *tx) ReceivedBy() store.ReceivedByReader                      { return receivedByView{t} }

func (t *tx) AccountsRW() store.AccountsReadWriter                     { return accountsView{t} }
func (t *tx) BlocksRW() store.BlocksReadWriter                          { return blocksView{t} }
func (t *tx) PendingRW() store.PendingReadWriter                       { return pendingView{t} }
func (t *tx) PrunedRW() store.PrunedReadWriter                          { return prunedView{t} }
func (t *tx) ConfirmationHeightsRW() store.ConfirmationHeightsReadWriter { return confHeightView{t} }
func (t *tx) FrontiersRW() store.FrontiersReadWriter                    { return frontiersView{t} }
func (t *tx) ReceivedByRW() store.ReceivedByReadWriter                 { return receivedByView{t} }

func (t *tx) Discard() {}

func (t *tx) Commit() error {
	if t.parent == nil {
		return fmt.Errorf("memstore: Commit called on a read transaction")
	}
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.accounts = t.accounts
	t.parent.blocksTbl = t.blocksTbl
	t.parent.pending = t.pending
	t.parent.pruned = t.pruned
	t.parent.confirmed = t.confirmed
	t.parent.frontiers = t.frontiers
	t.parent.receivedBy = t.receivedBy
	t.parent.writeHeld = false
	return nil
}

func (t *tx) Rollback() error {
	if t.parent == nil {
		return fmt.Errorf("memstore: Rollback called on a read transaction")
	}
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.writeHeld = false
	return nil
}

type accountsView struct{ t *tx }

func (v accountsView) Get(a numeric.Account) (store.AccountInfo, bool) { info, ok := v.t.accounts[a]; return info, ok }
func (v accountsView) Exists(a numeric.Account) bool                   { _, ok := v.t.accounts[a]; return ok }
func (v accountsView) Put(a numeric.Account, info store.AccountInfo)   { v.t.accounts[a] = info }
func (v accountsView) Delete(a numeric.Account)                        { delete(v.t.accounts, a) }

type blocksView struct{ t *tx }

func (v blocksView) Get(h numeric.Hash) (store.StoredBlock, bool) { b, ok := v.t.blocksTbl[h]; return b, ok }
func (v blocksView) Exists(h numeric.Hash) bool                   { _, ok := v.t.blocksTbl[h]; return ok }
func (v blocksView) Put(h numeric.Hash, sb store.StoredBlock)     { v.t.blocksTbl[h] = sb }
func (v blocksView) Delete(h numeric.Hash)                        { delete(v.t.blocksTbl, h) }

type pendingView struct{ t *tx }

func (v pendingView) Get(k store.PendingKey) (store.PendingInfo, bool) { p, ok := v.t.pending[k]; return p, ok }
func (v pendingView) Put(k store.PendingKey, p store.PendingInfo)      { v.t.pending[k] = p }
func (v pendingView) Delete(k store.PendingKey)                        { delete(v.t.pending, k) }
func (v pendingView) ForAccount(account numeric.Account, fn func(store.PendingKey, store.PendingInfo) bool) {
	var keys []store.PendingKey
	for k := range v.t.pending {
		if k.Destination == account {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].SendHash[:], keys[j].SendHash[:]) < 0
	})
	for _, k := range keys {
		if !fn(k, v.t.pending[k]) {
			return
		}
	}
}

type prunedView struct{ t *tx }

func (v prunedView) Exists(h numeric.Hash) bool { _, ok := v.t.pruned[h]; return ok }
func (v prunedView) Put(h numeric.Hash)         { v.t.pruned[h] = struct{}{} }
func (v prunedView) Delete(h numeric.Hash)      { delete(v.t.pruned, h) }

type confHeightView struct{ t *tx }

func (v confHeightView) Get(a numeric.Account) (store.ConfirmationHeight, bool) {
	ch, ok := v.t.confirmed[a]
	return ch, ok
}
func (v confHeightView) Put(a numeric.Account, ch store.ConfirmationHeight) { v.t.confirmed[a] = ch }

type frontiersView struct{ t *tx }

func (v frontiersView) Get(a numeric.Account) (numeric.Hash, bool) { h, ok := v.t.frontiers[a]; return h, ok }
func (v frontiersView) Put(a numeric.Account, h numeric.Hash)      { v.t.frontiers[a] = h }
func (v frontiersView) Delete(a numeric.Account)                  { delete(v.t.frontiers, a) }
func (v frontiersView) ForEach(fn func(numeric.Account, numeric.Hash) bool) {
	for a, h := range v.t.frontiers {
		if !fn(a, h) {
			return
		}
	}
}

type receivedByView struct{ t *tx }

func (v receivedByView) Get(sendHash numeric.Hash) (numeric.Hash, bool) {
	h, ok := v.t.receivedBy[sendHash]
	return h, ok
}
func (v receivedByView) Put(sendHash, receiverHash numeric.Hash) { v.t.receivedBy[sendHash] = receiverHash }
func (v receivedByView) Delete(sendHash numeric.Hash)            { delete(v.t.receivedBy, sendHash) }
