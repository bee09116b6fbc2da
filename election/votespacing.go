// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"sync"

	"github.com/decred/dcrd/container/apbf"

	"github.com/repchain/repchaind/numeric"
)

// finalVoteGuardGenerations and finalVoteGuardGenSize size the age-
// partitioned filter kept alongside the exact final-vote map. The filter
// only remembers recently added roots; the map is never pruned and is
// consulted whether or not the filter still holds a root.
const (
	finalVoteGuardGenerations = 4
	finalVoteGuardGenSize     = 4096
	finalVoteGuardFalsePosRate = 0.001
)

// FinalVoteGuard prevents this node from ever emitting two different
// final votes for the same root (spec.md section 4.5: "once this node
// has emitted a final vote for a root with a given winner, it will not
// emit a different final vote for the same root"). The exact binding
// lives in a map, which alone decides whether a root is already bound.
type FinalVoteGuard struct {
	mu     sync.Mutex
	seen   *apbf.Filter
	winner map[numeric.Hash]numeric.Hash
}

// NewFinalVoteGuard returns an empty guard.
func NewFinalVoteGuard() *FinalVoteGuard {
	return &FinalVoteGuard{
		seen:   apbf.NewFilter(finalVoteGuardGenerations, finalVoteGuardGenSize, finalVoteGuardFalsePosRate),
		winner: make(map[numeric.Hash]numeric.Hash),
	}
}

// Allow reports whether this node may cast a final vote for root naming
// winner, and records the binding if so. A second call for the same root
// naming a different winner is refused; naming the same winner again is
// allowed (idempotent rebroadcast).
func (g *FinalVoteGuard) Allow(root, winner numeric.Hash) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.seen.Contains(root[:]) {
		g.seen.Add(root[:])
		// The filter may have aged the root out; the map still binds it.
		if existing, ok := g.winner[root]; ok {
			return existing == winner
		}
		g.winner[root] = winner
		return true
	}
	existing, ok := g.winner[root]
	if !ok {
		// Filter claimed membership but the exact map disagrees: a false
		// positive from a different root. Treat as unseen.
		g.winner[root] = winner
		return true
	}
	return existing == winner
}
