// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "testing"

func TestMainNetParamsSanity(t *testing.T) {
	p := MainNetParams()
	if p.Name != "mainnet" {
		t.Fatalf("Name = %q, want mainnet", p.Name)
	}
	if p.QuorumPercent == 0 || p.QuorumPercent > 100 {
		t.Fatalf("QuorumPercent = %d, want in (0, 100]", p.QuorumPercent)
	}
	if p.BucketCount <= 0 {
		t.Fatalf("BucketCount = %d, want positive", p.BucketCount)
	}
	if p.WorkThresholdReceive <= p.WorkThresholdSend {
		t.Fatalf("WorkThresholdReceive = %#x, want a stricter (higher) threshold than WorkThresholdSend = %#x",
			p.WorkThresholdReceive, p.WorkThresholdSend)
	}
	if p.BoundedBatchMinSize >= p.BoundedBatchMaxSize {
		t.Fatalf("BoundedBatchMinSize = %d, want less than BoundedBatchMaxSize = %d",
			p.BoundedBatchMinSize, p.BoundedBatchMaxSize)
	}
	if _, ok := p.EpochSigners[1]; !ok {
		t.Fatal("expected an epoch-1 signer to be configured")
	}
}

func TestRegNetParamsDerivesFromMainNetButDisablesWork(t *testing.T) {
	p := RegNetParams()
	if p.Name != "regnet" {
		t.Fatalf("Name = %q, want regnet", p.Name)
	}
	if p.WorkThresholdSend != 0 || p.WorkThresholdReceive != 0 {
		t.Fatal("expected regnet to run with proof-of-work disabled")
	}
	if p.BucketCount != 1 {
		t.Fatalf("BucketCount = %d, want 1 for single-node determinism", p.BucketCount)
	}
	main := MainNetParams()
	if p.ReceiveThresholdEpoch != main.ReceiveThresholdEpoch {
		t.Fatalf("ReceiveThresholdEpoch = %d, want it to inherit mainnet's %d", p.ReceiveThresholdEpoch, main.ReceiveThresholdEpoch)
	}
}

func TestSimNetParamsDerivesFromMainNetWithShortCooldowns(t *testing.T) {
	p := SimNetParams()
	if p.Name != "simnet" {
		t.Fatalf("Name = %q, want simnet", p.Name)
	}
	main := MainNetParams()
	if p.ElectionLifetime >= main.ElectionLifetime {
		t.Fatalf("ElectionLifetime = %v, want shorter than mainnet's %v", p.ElectionLifetime, main.ElectionLifetime)
	}
	if p.VoteSpacingCooldown >= main.VoteSpacingCooldown {
		t.Fatalf("VoteSpacingCooldown = %v, want shorter than mainnet's %v", p.VoteSpacingCooldown, main.VoteSpacingCooldown)
	}
}

func TestTestNetParamsDerivesFromMainNetWithShorterLifetime(t *testing.T) {
	p := TestNetParams()
	main := MainNetParams()
	if p.Name != "testnet" {
		t.Fatalf("Name = %q, want testnet", p.Name)
	}
	if p.QuorumPercent != main.QuorumPercent {
		t.Fatalf("QuorumPercent = %d, want it to inherit mainnet's %d", p.QuorumPercent, main.QuorumPercent)
	}
	if p.ElectionLifetime >= main.ElectionLifetime {
		t.Fatalf("ElectionLifetime = %v, want shorter than mainnet's %v for faster test iteration", p.ElectionLifetime, main.ElectionLifetime)
	}
}

func TestEveryNetworkSharesTheEpochLinkSentinel(t *testing.T) {
	nets := []*Params{MainNetParams(), RegNetParams(), SimNetParams(), TestNetParams()}
	for _, p := range nets {
		if p.EpochLink != nets[0].EpochLink {
			t.Fatalf("%s EpochLink diverges from mainnet's; all networks are expected to share the sentinel since it is never a valid account or hash", p.Name)
		}
	}
}

func TestParamsAreIndependentCopies(t *testing.T) {
	a := MainNetParams()
	b := MainNetParams()
	a.BucketCount = 999
	if b.BucketCount == 999 {
		t.Fatal("expected each *Params call to return an independent value, not a shared pointer")
	}
}
