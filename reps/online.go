// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reps

import (
	"sort"
	"sync"
	"time"

	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/numeric"
)

// OnlineTracker maintains seen(account) = last_seen_time from vote
// arrivals and, on a sample tick, appends the instantaneous online weight
// to a bounded rolling window (spec.md section 4.4). The trended value
// the window produces is the confirmation quorum's basis.
type OnlineTracker struct {
	mu   sync.Mutex
	seen map[numeric.Account]time.Time

	window    []numeric.Amount
	maxWindow int
	quorumPct uint8
	minimum   numeric.Amount

	lastOnline time.Time
	recency    time.Duration
}

// NewOnlineTracker builds a tracker for the given network parameters.
// recency bounds how long ago a vote may have arrived for its account to
// still count as online; the teacher's practice is to key this off twice
// the sample interval so a single missed tick doesn't flap an account
// offline.
func NewOnlineTracker(p *chaincfg.Params) *OnlineTracker {
	return &OnlineTracker{
		seen:      make(map[numeric.Account]time.Time),
		maxWindow: p.OnlineWeightWindow,
		quorumPct: p.QuorumPercent,
		minimum:   p.OnlineWeightMinimum,
		recency:   2 * p.OnlineWeightSampleInterval,
	}
}

// Observe records that account was seen (cast a vote) at t, replacing any
// earlier timestamp.
func (t *OnlineTracker) Observe(account numeric.Account, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[account] = at
}

// Sample computes the current online weight (Σ weightOf(a) over accounts
// seen within the recency window of now) and appends it to the rolling
// window, evicting the oldest sample if the window is full. weightOf is
// the representative weight tracker's Weight method; accepting it as a
// parameter rather than embedding a *WeightTracker keeps the two
// trackers independently testable.
func (t *OnlineTracker) Sample(now time.Time, weightOf func(numeric.Account) numeric.Amount) numeric.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()

	online := numeric.Zero
	for account, at := range t.seen {
		if now.Sub(at) > t.recency {
			delete(t.seen, account)
			continue
		}
		online = online.Add(weightOf(account))
	}

	t.window = append(t.window, online)
	if len(t.window) > t.maxWindow {
		t.window = t.window[len(t.window)-t.maxWindow:]
	}
	t.lastOnline = now
	return online
}

// Online returns the most recent sample.
func (t *OnlineTracker) Online() numeric.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.window) == 0 {
		return numeric.Zero
	}
	return t.window[len(t.window)-1]
}

// Trended returns the median of the rolling window, the smoothed weight
// figure the quorum delta is based on rather than the noisier
// instantaneous sample.
func (t *OnlineTracker) Trended() numeric.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return median(t.window)
}

// Delta returns max(trended, configured minimum) x quorum percentage,
// the confirmation threshold elections compare tallies against (spec.md
// section 4.4).
func (t *OnlineTracker) Delta() numeric.Amount {
	trended := t.Trended()
	if trended.Cmp(t.minimum) < 0 {
		trended = t.minimum
	}
	return percentOf(trended, t.quorumPct)
}

func median(samples []numeric.Amount) numeric.Amount {
	if len(samples) == 0 {
		return numeric.Zero
	}
	sorted := make([]numeric.Amount, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	// Even count: average the two middle samples. Amount has no divide
	// primitive, so halve via a bit shift on the wider representation
	// rather than pulling in math/big for a log-only statistic.
	lo, hi := sorted[mid-1], sorted[mid]
	sum := lo.Add(hi)
	return numeric.Amount{Hi: sum.Hi >> 1, Lo: (sum.Lo >> 1) | (sum.Hi&1)<<63}
}

// percentOf returns amt * pct / 100, computed limb by limb in integer
// arithmetic. The remainder of the high limb's division is dropped, a
// loss far below a single unit of the underlying currency, acceptable
// for a threshold rather than an accounting figure.
func percentOf(amt numeric.Amount, pct uint8) numeric.Amount {
	if pct >= 100 {
		return amt
	}
	lo := (amt.Lo / 100) * uint64(pct)
	rem := (amt.Lo % 100) * uint64(pct) / 100
	hi := (amt.Hi / 100) * uint64(pct)
	return numeric.Amount{Hi: hi, Lo: lo + rem}
}
