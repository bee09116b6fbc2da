// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"github.com/decred/dcrd/math/uint256"

	"github.com/repchain/repchaind/numeric"
)

// tally accumulates, per candidate hash, the weight of the latest vote
// cast by each voter naming it (spec.md section 4.5: "sum of weight of
// voter over latest vote per voter that names this hash"). Accumulation
// widens to 256 bits rather than running through numeric.Amount's own
// saturating 128-bit Add: a tally sums across every known representative
// at once, and a wide accumulator means a pathological rep set can never
// silently clamp a candidate's sum to MaxAmount mid-count the way
// repeated 128-bit saturating adds could.
type tally struct {
	sums map[numeric.Hash]*uint256.Uint256
}

func newTally() *tally {
	return &tally{sums: make(map[numeric.Hash]*uint256.Uint256)}
}

func (t *tally) add(hash numeric.Hash, weight numeric.Amount) {
	w := amountToUint256(weight)
	sum, ok := t.sums[hash]
	if !ok {
		t.sums[hash] = w
		return
	}
	sum.Add(sum, w)
}

// best returns the candidate hash with the largest tally and the runner-
// up's sum, both zero-value when the tally is empty. Ties keep whichever
// candidate was encountered first during iteration, an arbitrary but
// stable-enough tie-break since a genuine tie at the confirmation
// threshold is vanishingly unlikely with real voting weight.
func (t *tally) best() (winner numeric.Hash, winnerSum, runnerUp *uint256.Uint256) {
	winnerSum = new(uint256.Uint256)
	runnerUp = new(uint256.Uint256)
	for hash, sum := range t.sums {
		if sum.Cmp(winnerSum) > 0 {
			winner, runnerUp, winnerSum = hash, winnerSum, sum
		} else if sum.Cmp(runnerUp) > 0 {
			runnerUp = sum
		}
	}
	return winner, winnerSum, runnerUp
}

func (t *tally) sumOf(hash numeric.Hash) *uint256.Uint256 {
	if sum, ok := t.sums[hash]; ok {
		return sum
	}
	return new(uint256.Uint256)
}

func amountToUint256(a numeric.Amount) *uint256.Uint256 {
	z := new(uint256.Uint256).SetUint64(a.Hi)
	z.Lsh(z, 64)
	z.Or(z, new(uint256.Uint256).SetUint64(a.Lo))
	return z
}

// halfOf returns x/2 via a right shift, used to evaluate the majority-
// margin shortcut's delta/2 thresholds without a division primitive.
func halfOf(x *uint256.Uint256) *uint256.Uint256 {
	return new(uint256.Uint256).Rsh(x, 1)
}

func subUint256(a, b *uint256.Uint256) *uint256.Uint256 {
	return new(uint256.Uint256).Sub(a, b)
}
