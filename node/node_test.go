// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"testing"
	"time"

	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/store/memstore"
)

type closeTrackingStore struct {
	store.Store
	closed bool
}

func (s *closeTrackingStore) Close() error {
	s.closed = true
	return s.Store.Close()
}

func testParams() *chaincfg.Params {
	p := chaincfg.RegNetParams()
	p.ElectionLifetime = 50 * time.Millisecond
	return p
}

func TestNewWiresEverySubsystem(t *testing.T) {
	st := memstore.New()
	n := New(st, testParams())

	switch {
	case n.Weights == nil:
		t.Fatal("expected Weights to be wired")
	case n.Online == nil:
		t.Fatal("expected Online to be wired")
	case n.Reps == nil:
		t.Fatal("expected Reps to be wired")
	case n.Unchecked == nil:
		t.Fatal("expected Unchecked to be wired")
	case n.Active == nil:
		t.Fatal("expected Active to be wired")
	case n.Scheduler == nil:
		t.Fatal("expected Scheduler to be wired")
	case n.Cementer == nil:
		t.Fatal("expected Cementer to be wired")
	case n.cementThread == nil:
		t.Fatal("expected the internal cement thread to be wired")
	case n.Processor == nil:
		t.Fatal("expected Processor to be wired")
	case n.Bootstrap == nil:
		t.Fatal("expected Bootstrap to be wired")
	}
}

func TestStartStopRunsCleanlyWithoutLeakingGoroutines(t *testing.T) {
	st := memstore.New()
	n := New(st, testParams())

	n.Start()
	time.Sleep(10 * time.Millisecond) // let a few ticker cycles fire harmlessly
	done := make(chan struct{})
	go func() {
		n.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return; expected its ticker goroutines to drain promptly")
	}
}

func TestStopClosesTheStore(t *testing.T) {
	st := &closeTrackingStore{Store: memstore.New()}
	n := New(st, testParams())

	n.Start()
	n.Stop()

	if !st.closed {
		t.Fatal("expected Stop to close the underlying store")
	}
}
