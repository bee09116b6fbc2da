// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"math/bits"
	"sort"
	"sync"

	"github.com/jrick/bitset"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

// Candidate is one pending election root waiting for a scheduler slot.
type Candidate struct {
	Root    numeric.Hash
	Winner  blocks.Block
	Balance numeric.Amount
}

// Buckets partitions pending candidates by log2 of the sending account's
// balance at block time (spec.md section 4.5), so a flood of dust
// transactions from low-balance accounts can never crowd out a high-
// weight account's election out of the scheduler. Each bucket keeps its
// candidates in descending-balance order and is itself bounded so a
// single bucket can't grow without limit.
type Buckets struct {
	mu       sync.Mutex
	buckets  [][]Candidate
	occupied bitset.Bitset
	perBucketCap int
}

// NewBuckets returns n empty buckets, each holding at most perBucketCap
// candidates.
func NewBuckets(n, perBucketCap int) *Buckets {
	return &Buckets{
		buckets:      make([][]Candidate, n),
		occupied:     bitset.New(n),
		perBucketCap: perBucketCap,
	}
}

// indexFor maps a balance to its bucket index: the balance's bit length
// (0 to 128, floor(log2(balance))+1 for a nonzero balance) scaled
// proportionally onto the configured bucket count, so even the network's
// maximum supply lands in the top bucket rather than overflowing it.
func (b *Buckets) indexFor(balance numeric.Amount) int {
	n := len(b.buckets)
	bit := 0
	switch {
	case balance.Hi != 0:
		bit = 64 + bits.Len64(balance.Hi)
	case balance.Lo != 0:
		bit = bits.Len64(balance.Lo)
	}
	idx := bit * n / 129
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Push inserts (or replaces, by root) a candidate into its balance
// bucket, evicting the lowest-balance candidate if the bucket is full
// and the new one outranks it.
func (b *Buckets) Push(c Candidate) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexFor(c.Balance)
	list := b.buckets[idx]
	for i, existing := range list {
		if existing.Root == c.Root {
			list[i] = c
			return true
		}
	}
	if len(list) >= b.perBucketCap {
		worst := 0
		for i := 1; i < len(list); i++ {
			if list[i].Balance.Cmp(list[worst].Balance) < 0 {
				worst = i
			}
		}
		if c.Balance.Cmp(list[worst].Balance) <= 0 {
			return false
		}
		list[worst] = c
	} else {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Balance.Cmp(list[j].Balance) > 0 })
	b.buckets[idx] = list
	b.occupied.Set(idx)
	return true
}

// PopBest removes and returns the best candidate from the highest non-
// empty bucket. Buckets are served in strict priority order: a lower
// bucket is served only when every higher bucket is empty.
func (b *Buckets) PopBest() (Candidate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.buckets) - 1; i >= 0; i-- {
		if !b.occupied.Get(i) {
			continue
		}
		list := b.buckets[i]
		if len(list) == 0 {
			b.occupied.Unset(i)
			continue
		}
		best := list[0]
		b.buckets[i] = list[1:]
		if len(b.buckets[i]) == 0 {
			b.occupied.Unset(i)
		}
		return best, true
	}
	return Candidate{}, false
}
