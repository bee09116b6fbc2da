// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"testing"

	"github.com/repchain/repchaind/numeric"
)

func TestTallyBestTracksHighestSum(t *testing.T) {
	tl := newTally()
	a := numeric.Hash{0x01}
	b := numeric.Hash{0x02}

	tl.add(a, numeric.NewAmount(100))
	tl.add(b, numeric.NewAmount(400))
	tl.add(a, numeric.NewAmount(50))

	winner, winnerSum, runnerUp := tl.best()
	if winner != b {
		t.Fatalf("winner = %v, want %v", winner, b)
	}
	if winnerSum.Cmp(amountToUint256(numeric.NewAmount(400))) != 0 {
		t.Fatalf("winnerSum = %v, want 400", winnerSum)
	}
	if runnerUp.Cmp(amountToUint256(numeric.NewAmount(150))) != 0 {
		t.Fatalf("runnerUp = %v, want 150", runnerUp)
	}
}

func TestTallyEmptyReportsZeroSums(t *testing.T) {
	tl := newTally()
	_, winnerSum, runnerUp := tl.best()
	if !winnerSum.IsZero() || !runnerUp.IsZero() {
		t.Fatalf("empty tally best() = %v, %v, want both zero", winnerSum, runnerUp)
	}
}

func TestTallySumOfUnknownHashIsZero(t *testing.T) {
	tl := newTally()
	tl.add(numeric.Hash{0x03}, numeric.NewAmount(10))
	if sum := tl.sumOf(numeric.Hash{0x04}); !sum.IsZero() {
		t.Fatalf("sumOf(unknown) = %v, want zero", sum)
	}
}

func TestHalfOfRoundsDown(t *testing.T) {
	x := amountToUint256(numeric.NewAmount(7))
	half := halfOf(x)
	if half.Cmp(amountToUint256(numeric.NewAmount(3))) != 0 {
		t.Fatalf("halfOf(7) = %v, want 3", half)
	}
}
