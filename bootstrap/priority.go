// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bootstrap implements the frontier/bulk-pull state machine and
// the ascending, priority-ordered blocking-set puller (spec.md section
// 4.7).
package bootstrap

import (
	"sort"
	"sync"

	"github.com/repchain/repchaind/numeric"
)

// blockingEntry is one account stuck behind a missing dependency,
// grounded on the reference implementation's own BlockingEntry (spec.md
// section 5: "ascending bootstrap prioritizes accounts blocked in the
// unchecked buffer, ordered by the priority of their dependent
// transactions").
type blockingEntry struct {
	account    numeric.Account
	dependency numeric.Hash
	priority   float64
}

// blockingSet is an ordered-by-priority set of blocked accounts, ported
// from rust/node/src/bootstrap/ascending/ordered_blocking.rs's
// OrderedBlocking: a BTreeMap-of-account plus a priority index there
// becomes a map plus a sorted slice here, since Go's stdlib has no
// ordered map and the set stays small enough that a linear re-sort on
// pop is cheap relative to a bootstrap pull's own network latency.
type blockingSet struct {
	mu      sync.Mutex
	byAcct  map[numeric.Account]blockingEntry
}

func newBlockingSet() *blockingSet {
	return &blockingSet{byAcct: make(map[numeric.Account]blockingEntry)}
}

// insert adds account as blocked on dependency with the given priority.
// Returns false if account is already blocked.
func (s *blockingSet) insert(account numeric.Account, dependency numeric.Hash, priority float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byAcct[account]; ok {
		return false
	}
	s.byAcct[account] = blockingEntry{account: account, dependency: dependency, priority: priority}
	return true
}

// remove unblocks account, called once its dependency is satisfied.
func (s *blockingSet) remove(account numeric.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byAcct, account)
}

// contains reports whether account is currently blocked.
func (s *blockingSet) contains(account numeric.Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byAcct[account]
	return ok
}

// len reports how many accounts are currently blocked.
func (s *blockingSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byAcct)
}

// popLowestPriority removes and returns the lowest-priority blocked
// entry, the one the reference implementation serves next (lower
// priority accounts are starved of attention otherwise; servicing the
// lowest first keeps the whole set converging instead of repeatedly
// re-trying the same well-connected accounts).
func (s *blockingSet) popLowestPriority() (blockingEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.byAcct) == 0 {
		return blockingEntry{}, false
	}
	entries := make([]blockingEntry, 0, len(s.byAcct))
	for _, e := range s.byAcct {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].priority < entries[j].priority })
	best := entries[0]
	delete(s.byAcct, best.account)
	return best, true
}
