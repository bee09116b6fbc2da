// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unchecked implements the bounded buffer of blocks whose
// previous or source hash hasn't arrived yet (spec.md section 4.8):
// keyed by the missing hash, drained when it does, evicted FIFO by
// insertion time when the buffer is over capacity.
package unchecked

import (
	"container/list"
	"sync"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

// Entry is one buffered block awaiting a dependency, plus the bookkeeping
// needed to evict it in insertion order (spec.md section 3: UncheckedEntry).
type Entry struct {
	Dependency numeric.Hash
	Block      blocks.Block
	Inserted   time.Time
}

// Buffer is the previous_hash -> [blocks] map described in spec.md
// section 4.8. It is safe for concurrent use; the block processor writer
// is its only user in the module.
type Buffer struct {
	mu       sync.Mutex
	byDep    map[numeric.Hash][]*list.Element
	order    *list.List // list.Element.Value is *Entry, oldest at Front
	capacity int
}

// New returns an empty buffer bounded at capacity entries.
func New(capacity int) *Buffer {
	return &Buffer{
		byDep:    make(map[numeric.Hash][]*list.Element),
		order:    list.New(),
		capacity: capacity,
	}
}

// Len reports how many entries are currently buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.order.Len()
}

// Insert buffers block under dependency (its missing previous or source
// hash), evicting the oldest entry first if the buffer is at capacity.
// Insert never blocks the caller on I/O; eviction is a pure in-memory
// operation.
func (b *Buffer) Insert(dependency numeric.Hash, block blocks.Block, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.order.Len() >= b.capacity && b.capacity > 0 {
		b.evictOldestLocked()
	}

	entry := &Entry{Dependency: dependency, Block: block, Inserted: now}
	elem := b.order.PushBack(entry)
	b.byDep[dependency] = append(b.byDep[dependency], elem)
}

// Drain removes and returns every block buffered under dependency, for
// re-enqueuing to the block processor now that dependency has arrived
// (spec.md section 4.8: "On successful ledger insertion of hash H,
// trigger a drain of buffer[H]").
func (b *Buffer) Drain(dependency numeric.Hash) []blocks.Block {
	b.mu.Lock()
	defer b.mu.Unlock()

	elems := b.byDep[dependency]
	if len(elems) == 0 {
		return nil
	}
	delete(b.byDep, dependency)

	out := make([]blocks.Block, 0, len(elems))
	for _, elem := range elems {
		entry := elem.Value.(*Entry)
		out = append(out, entry.Block)
		b.order.Remove(elem)
	}
	return out
}

// evictOldestLocked removes the single oldest entry in insertion order.
// Callers must hold b.mu.
func (b *Buffer) evictOldestLocked() {
	front := b.order.Front()
	if front == nil {
		return
	}
	entry := front.Value.(*Entry)
	b.order.Remove(front)

	elems := b.byDep[entry.Dependency]
	for i, elem := range elems {
		if elem == front {
			elems = append(elems[:i], elems[i+1:]...)
			break
		}
	}
	if len(elems) == 0 {
		delete(b.byDep, entry.Dependency)
	} else {
		b.byDep[entry.Dependency] = elems
	}
}
