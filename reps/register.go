// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reps

import (
	"sync"

	"github.com/repchain/repchaind/numeric"
)

// Channel is the minimal capability the register needs from a peer
// connection: something stable enough to detect "the same representative
// reconnected on a different channel" without the register depending on
// the transport package.
type Channel interface {
	// ID identifies the underlying connection, stable for its lifetime.
	ID() string
}

// Register maps representative account to the channel it was last
// observed voting on (spec.md section 3: representative registration),
// used to route targeted confirm_req messages directly at known
// representatives instead of broadcasting.
type Register struct {
	mu       sync.RWMutex
	channels map[numeric.Account]Channel
}

// NewRegister returns an empty register.
func NewRegister() *Register {
	return &Register{channels: make(map[numeric.Account]Channel)}
}

// Observe records that account was last seen voting on ch, replacing any
// previously registered channel for the same account (spec.md section 3:
// "replaced when the same account appears on a different channel").
func (r *Register) Observe(account numeric.Account, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[account] = ch
}

// Channel returns the channel last registered for account, if any.
func (r *Register) Channel(account numeric.Account) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[account]
	return ch, ok
}

// Forget removes account's registration. Nothing in the module calls it
// outside tests.
func (r *Register) Forget(account numeric.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, account)
}

// ForEach iterates every registered (account, channel) pair, calling fn
// until it returns false, in no particular order. Nothing in the module
// calls it outside tests.
func (r *Register) ForEach(fn func(numeric.Account, Channel) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for account, ch := range r.channels {
		if !fn(account, ch) {
			return
		}
	}
}
