// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"testing"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

func electionTestKey(t *testing.T, b byte) nodecrypto.PrivateKey {
	t.Helper()
	var seed [32]byte
	seed[0] = b
	return nodecrypto.NewPrivateKeyFromSeed(seed)
}

func dummyBlock(t *testing.T, b byte) blocks.Block {
	t.Helper()
	key := electionTestKey(t, b)
	return blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.ZeroHash).
		Representative(key.Account()).
		Balance(numeric.NewAmount(1)).
		Link(numeric.Hash{b}).
		Build(key)
}

func TestBucketsPopBestOrdersHighestBalanceFirstWithinABucket(t *testing.T) {
	b := NewBuckets(1, 16)
	low := Candidate{Root: numeric.Hash{0x01}, Winner: dummyBlock(t, 0x01), Balance: numeric.NewAmount(10)}
	high := Candidate{Root: numeric.Hash{0x02}, Winner: dummyBlock(t, 0x02), Balance: numeric.NewAmount(1000)}

	b.Push(low)
	b.Push(high)

	first, ok := b.PopBest()
	if !ok || first.Root != high.Root {
		t.Fatalf("PopBest() = %+v, %v, want the higher-balance candidate first", first, ok)
	}
	second, ok := b.PopBest()
	if !ok || second.Root != low.Root {
		t.Fatalf("second PopBest() = %+v, %v, want the lower-balance candidate", second, ok)
	}
}

func TestBucketsPopBestPrefersHigherBucketAcrossBuckets(t *testing.T) {
	b := NewBuckets(4, 16)
	small := Candidate{Root: numeric.Hash{0x03}, Winner: dummyBlock(t, 0x03), Balance: numeric.NewAmount(1)}
	huge := Candidate{Root: numeric.Hash{0x04}, Winner: dummyBlock(t, 0x04), Balance: numeric.Amount{Hi: 1 << 40}}

	b.Push(small)
	b.Push(huge)

	first, ok := b.PopBest()
	if !ok || first.Root != huge.Root {
		t.Fatalf("PopBest() = %+v, %v, want the candidate in the higher-balance bucket first", first, ok)
	}
}

func TestBucketsPushReplacesExistingRootInPlace(t *testing.T) {
	b := NewBuckets(1, 16)
	root := numeric.Hash{0x05}
	b.Push(Candidate{Root: root, Winner: dummyBlock(t, 0x05), Balance: numeric.NewAmount(5)})
	b.Push(Candidate{Root: root, Winner: dummyBlock(t, 0x06), Balance: numeric.NewAmount(500)})

	c, ok := b.PopBest()
	if !ok {
		t.Fatal("expected one candidate after replacing by root")
	}
	if c.Balance.Cmp(numeric.NewAmount(500)) != 0 {
		t.Fatalf("Balance = %v, want the replaced value 500", c.Balance)
	}
	if _, ok := b.PopBest(); ok {
		t.Fatal("expected only a single candidate to remain after the replace")
	}
}

func TestBucketsPushEvictsWorstWhenBucketFull(t *testing.T) {
	b := NewBuckets(1, 2)
	b.Push(Candidate{Root: numeric.Hash{0x07}, Winner: dummyBlock(t, 0x07), Balance: numeric.NewAmount(10)})
	b.Push(Candidate{Root: numeric.Hash{0x08}, Winner: dummyBlock(t, 0x08), Balance: numeric.NewAmount(20)})

	ok := b.Push(Candidate{Root: numeric.Hash{0x09}, Winner: dummyBlock(t, 0x09), Balance: numeric.NewAmount(5)})
	if ok {
		t.Fatal("expected a worse-than-worst candidate to be rejected when the bucket is full")
	}

	ok = b.Push(Candidate{Root: numeric.Hash{0x0A}, Winner: dummyBlock(t, 0x0A), Balance: numeric.NewAmount(30)})
	if !ok {
		t.Fatal("expected a better-than-worst candidate to evict the current worst")
	}

	first, _ := b.PopBest()
	second, _ := b.PopBest()
	if first.Balance.Cmp(numeric.NewAmount(30)) != 0 || second.Balance.Cmp(numeric.NewAmount(20)) != 0 {
		t.Fatalf("pop order = [%v, %v], want [30, 20]", first.Balance, second.Balance)
	}
	if _, ok := b.PopBest(); ok {
		t.Fatal("expected only two candidates to survive the cap")
	}
}

func TestBucketsPopBestOnEmptyReportsFalse(t *testing.T) {
	b := NewBuckets(4, 16)
	if _, ok := b.PopBest(); ok {
		t.Fatal("expected PopBest on an empty bucket set to report false")
	}
}
