// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cementing

import (
	"sync"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// defaultMaxRequestsPerCommit bounds how many confirmed-root requests one
// write transaction processes before committing, mirroring
// blockprocessor's own per-commit batch bound so neither thread holds the
// single write transaction for an unbounded stretch (spec.md section 5).
const defaultMaxRequestsPerCommit = 64

type request struct {
	account numeric.Account
	hash    numeric.Hash
}

// Thread is the single-writer cementation loop: it receives confirmed
// (account, block) pairs and advances confirmation heights for them,
// grounded on the reference implementation's own dedicated cementation
// thread (rust/node/src/cementing's CementationThread) and, for the
// queue/goroutine mechanics themselves, on blockprocessor.Processor's
// bounded-batch writer loop in this same module.
type Thread struct {
	st store.Store
	c  *Cementer

	mu      sync.Mutex
	cond    *sync.Cond
	pending []request

	stopping bool
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewThread builds a Thread. Call Start to launch its goroutine.
func NewThread(st store.Store, c *Cementer) *Thread {
	t := &Thread{st: st, c: c, stop: make(chan struct{})}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Start launches the background writer goroutine.
func (t *Thread) Start() {
	t.wg.Add(1)
	go t.run()
}

// Stop signals the writer to drain and exit, then waits for it.
func (t *Thread) Stop() {
	t.mu.Lock()
	t.stopping = true
	t.cond.Broadcast()
	t.mu.Unlock()
	close(t.stop)
	t.wg.Wait()
}

// ElectionConfirmed satisfies election.ConfirmedObserver: it queues the
// confirmed root's account and winning block for cementation. root is
// unused beyond identifying the account, since confirmation height tracks
// per-account chains, not per-root.
func (t *Thread) ElectionConfirmed(_ numeric.Hash, winner blocks.Block) {
	t.Submit(winner.Account(), winner.Hash())
}

// Submit enqueues a request to cement account's chain up to hash.
func (t *Thread) Submit(account numeric.Account, hash numeric.Hash) {
	t.mu.Lock()
	t.pending = append(t.pending, request{account: account, hash: hash})
	t.cond.Signal()
	t.mu.Unlock()
}

func (t *Thread) run() {
	defer t.wg.Done()
	for {
		batch := t.nextBatch()
		if batch == nil {
			return
		}
		t.processBatch(batch)
	}
}

func (t *Thread) nextBatch() []request {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.pending) == 0 && !t.stopping {
		t.cond.Wait()
	}
	if len(t.pending) == 0 && t.stopping {
		return nil
	}
	n := len(t.pending)
	if n > defaultMaxRequestsPerCommit {
		n = defaultMaxRequestsPerCommit
	}
	batch := t.pending[:n]
	t.pending = t.pending[n:]
	return batch
}

func (t *Thread) processBatch(batch []request) {
	txn, err := t.st.BeginWrite()
	if err != nil {
		log.Errorf("cementing: failed to open write transaction: %v", err)
		return
	}

	var redo []request
	for _, r := range batch {
		done, _, err := t.c.Cement(txn, r.account, r.hash)
		if err != nil {
			log.Warnf("cementing: %v", err)
			continue
		}
		if !done {
			redo = append(redo, r)
		}
	}

	if err := txn.Commit(); err != nil {
		log.Errorf("cementing: commit failed: %v", err)
		return
	}

	if len(redo) > 0 {
		t.mu.Lock()
		t.pending = append(redo, t.pending...)
		t.mu.Unlock()
	}
}
