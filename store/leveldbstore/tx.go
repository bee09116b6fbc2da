// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldbstore

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

type readTx struct {
	snap *leveldb.Snapshot
}

func (t *readTx) Accounts() store.AccountsReader                     { return accountsView{snap: t.snap} }
func (t *readTx) Blocks() store.BlocksReader                         { return blocksView{snap: t.snap} }
func (t *readTx) Pending() store.PendingReader                       { return pendingView{snap: t.snap} }
func (t *readTx) Pruned() store.PrunedReader                         { return prunedView{snap: t.snap} }
func (t *readTx) ConfirmationHeights() store.ConfirmationHeightsReader { return confView{snap: t.snap} }
func (t *readTx) Frontiers() store.FrontiersReader                   { return frontierView{snap: t.snap} }
func (t *readTx) ReceivedBy() store.ReceivedByReader                 { return receivedByView{snap: t.snap} }

func (t *readTx) Discard() { t.snap.Release() }

type writeTx struct {
	readTx
	db     *leveldb.DB
	batch  *leveldb.Batch
	unlock func()
}

func (t *writeTx) AccountsRW() store.AccountsReadWriter { return accountsView{snap: t.snap, batch: t.batch} }
func (t *writeTx) BlocksRW() store.BlocksReadWriter     { return blocksView{snap: t.snap, batch: t.batch} }
func (t *writeTx) PendingRW() store.PendingReadWriter   { return pendingView{snap: t.snap, batch: t.batch} }
func (t *writeTx) PrunedRW() store.PrunedReadWriter     { return prunedView{snap: t.snap, batch: t.batch} }
func (t *writeTx) ConfirmationHeightsRW() store.ConfirmationHeightsReadWriter {
	return confView{snap: t.snap, batch: t.batch}
}
func (t *writeTx) FrontiersRW() store.FrontiersReadWriter { return frontierView{snap: t.snap, batch: t.batch} }
func (t *writeTx) ReceivedByRW() store.ReceivedByReadWriter {
	return receivedByView{snap: t.snap, batch: t.batch}
}

func (t *writeTx) Commit() error {
	defer t.unlock()
	defer t.snap.Release()
	if err := t.db.Write(t.batch, nil); err != nil {
		return wrapIntegrity("commit", err)
	}
	return nil
}

func (t *writeTx) Rollback() error {
	defer t.unlock()
	defer t.snap.Release()
	return nil
}

// Each *view wraps a read snapshot plus, when non-nil, a batch it stages
// writes into. Reads always go against the snapshot taken at the start of
// the transaction: a write transaction does not see its own uncommitted
// puts, the same as the teacher's cursor semantics within one write txn
// operating off a stable view.

type accountsView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v accountsView) Get(a numeric.Account) (store.AccountInfo, bool) {
	b, err := v.snap.Get(accountKey(a), nil)
	if err != nil {
		return store.AccountInfo{}, false
	}
	info, err := decodeAccountInfo(b)
	if err != nil {
		return store.AccountInfo{}, false
	}
	return info, true
}
func (v accountsView) Exists(a numeric.Account) bool {
	_, ok := v.Get(a)
	return ok
}
func (v accountsView) Put(a numeric.Account, info store.AccountInfo) {
	v.batch.Put(accountKey(a), encodeAccountInfo(info))
}
func (v accountsView) Delete(a numeric.Account) {
	v.batch.Delete(accountKey(a))
}

type blocksView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v blocksView) Get(h numeric.Hash) (store.StoredBlock, bool) {
	b, err := v.snap.Get(blockKey(h), nil)
	if err != nil {
		return store.StoredBlock{}, false
	}
	sb, err := decodeStoredBlock(b)
	if err != nil {
		return store.StoredBlock{}, false
	}
	return sb, true
}
func (v blocksView) Exists(h numeric.Hash) bool {
	_, ok := v.Get(h)
	return ok
}
func (v blocksView) Put(h numeric.Hash, sb store.StoredBlock) {
	v.batch.Put(blockKey(h), encodeStoredBlock(sb))
}
func (v blocksView) Delete(h numeric.Hash) {
	v.batch.Delete(blockKey(h))
}

type pendingView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v pendingView) Get(k store.PendingKey) (store.PendingInfo, bool) {
	b, err := v.snap.Get(pendingKeyBytes(k), nil)
	if err != nil {
		return store.PendingInfo{}, false
	}
	info, err := decodePendingInfo(b)
	if err != nil {
		return store.PendingInfo{}, false
	}
	return info, true
}
func (v pendingView) Put(k store.PendingKey, info store.PendingInfo) {
	v.batch.Put(pendingKeyBytes(k), encodePendingInfo(info))
}
func (v pendingView) Delete(k store.PendingKey) {
	v.batch.Delete(pendingKeyBytes(k))
}
func (v pendingView) ForAccount(account numeric.Account, fn func(store.PendingKey, store.PendingInfo) bool) {
	prefix := append([]byte{prefixPending}, account[:]...)
	it := v.snap.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		key := bytes.Clone(it.Key())
		val := bytes.Clone(it.Value())
		info, err := decodePendingInfo(val)
		if err != nil {
			continue
		}
		if !fn(decodePendingKey(key), info) {
			return
		}
	}
}

type prunedView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v prunedView) Exists(h numeric.Hash) bool {
	ok, _ := v.snap.Has(prunedKey(h), nil)
	return ok
}
func (v prunedView) Put(h numeric.Hash)    { v.batch.Put(prunedKey(h), []byte{1}) }
func (v prunedView) Delete(h numeric.Hash) { v.batch.Delete(prunedKey(h)) }

type confView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v confView) Get(a numeric.Account) (store.ConfirmationHeight, bool) {
	b, err := v.snap.Get(confirmedKey(a), nil)
	if err != nil {
		return store.ConfirmationHeight{}, false
	}
	ch, err := decodeConfirmationHeight(b)
	if err != nil {
		return store.ConfirmationHeight{}, false
	}
	return ch, true
}
func (v confView) Put(a numeric.Account, ch store.ConfirmationHeight) {
	v.batch.Put(confirmedKey(a), encodeConfirmationHeight(ch))
}

type frontierView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v frontierView) Get(a numeric.Account) (numeric.Hash, bool) {
	b, err := v.snap.Get(frontierKey(a), nil)
	if err != nil {
		return numeric.Hash{}, false
	}
	h, err := numeric.NewHashFromBytes(b)
	if err != nil {
		return numeric.Hash{}, false
	}
	return h, true
}
func (v frontierView) Put(a numeric.Account, h numeric.Hash) {
	v.batch.Put(frontierKey(a), h[:])
}
func (v frontierView) Delete(a numeric.Account) {
	v.batch.Delete(frontierKey(a))
}
func (v frontierView) ForEach(fn func(numeric.Account, numeric.Hash) bool) {
	it := v.snap.NewIterator(util.BytesPrefix([]byte{prefixFrontier}), nil)
	defer it.Release()
	for it.Next() {
		var a numeric.Account
		copy(a[:], it.Key()[1:])
		h, err := numeric.NewHashFromBytes(it.Value())
		if err != nil {
			continue
		}
		if !fn(a, h) {
			return
		}
	}
}

type receivedByView struct {
	snap  *leveldb.Snapshot
	batch *leveldb.Batch
}

func (v receivedByView) Get(sendHash numeric.Hash) (numeric.Hash, bool) {
	b, err := v.snap.Get(receivedByKey(sendHash), nil)
	if err != nil {
		return numeric.Hash{}, false
	}
	h, err := numeric.NewHashFromBytes(b)
	if err != nil {
		return numeric.Hash{}, false
	}
	return h, true
}
func (v receivedByView) Put(sendHash, receiverHash numeric.Hash) {
	v.batch.Put(receivedByKey(sendHash), receiverHash[:])
}
func (v receivedByView) Delete(sendHash numeric.Hash) {
	v.batch.Delete(receivedByKey(sendHash))
}
