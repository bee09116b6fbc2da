// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldbstore is a store.Store backed by goleveldb, standing in
// for the LMDB-style environment spec.md section 6 describes. Read
// transactions are goleveldb snapshots; exactly one write transaction may
// be open at a time, enforced with a mutex, matching the single-writer
// invariant of spec.md section 5.
package leveldbstore

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	dberr "github.com/decred/dcrd/database/v3"

	"github.com/repchain/repchaind/store"
)

// Store is a goleveldb-backed store.Store.
type Store struct {
	db       *leveldb.DB
	writeMu  sync.Mutex
	path     string
}

// Open opens (creating if necessary) a leveldb environment at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, wrapIntegrity("open", err)
	}
	return &Store{db: db, path: path}, nil
}

func wrapIntegrity(op string, err error) error {
	return dberr.Error{
		ErrorCode:   dberr.ErrDbNotOpen,
		Description: fmt.Sprintf("leveldbstore: %s: %v", op, err),
		Err:         err,
	}
}

// BeginRead opens a goleveldb snapshot.
func (s *Store) BeginRead() (store.ReadTx, error) {
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, wrapIntegrity("snapshot", err)
	}
	return &readTx{snap: snap}, nil
}

// BeginWrite blocks until the single write slot is free, then returns a
// transaction staging changes in a goleveldb Batch.
func (s *Store) BeginWrite() (store.WriteTx, error) {
	s.writeMu.Lock()
	snap, err := s.db.GetSnapshot()
	if err != nil {
		s.writeMu.Unlock()
		return nil, wrapIntegrity("snapshot", err)
	}
	return &writeTx{
		readTx: readTx{snap: snap},
		db:     s.db,
		batch:  new(leveldb.Batch),
		unlock: s.writeMu.Unlock,
	}, nil
}

// CopyDB writes a consistent copy of every key to a fresh environment at
// path, for bootstrap snapshot distribution (spec.md section 6).
func (s *Store) CopyDB(path string) error {
	dst, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return wrapIntegrity("copy-open", err)
	}
	defer dst.Close()

	snap, err := s.db.GetSnapshot()
	if err != nil {
		return wrapIntegrity("copy-snapshot", err)
	}
	defer snap.Release()

	it := snap.NewIterator(nil, nil)
	defer it.Release()
	batch := new(leveldb.Batch)
	const flushEvery = 4096
	n := 0
	for it.Next() {
		batch.Put(it.Key(), it.Value())
		n++
		if n%flushEvery == 0 {
			if err := dst.Write(batch, nil); err != nil {
				return wrapIntegrity("copy-write", err)
			}
			batch = new(leveldb.Batch)
		}
	}
	if err := it.Error(); err != nil {
		return wrapIntegrity("copy-iterate", err)
	}
	if batch.Len() > 0 {
		if err := dst.Write(batch, nil); err != nil {
			return wrapIntegrity("copy-write", err)
		}
	}
	return nil
}

// Close releases the underlying leveldb handle.
func (s *Store) Close() error {
	return s.db.Close()
}
