// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node wires every core subsystem together into one running
// process: the store, the block processor, the election core, the
// cementer, the representative trackers, and the bootstrap coordinator,
// following the start/stop order spec.md section 5 mandates ("stop
// accepting new network sessions, stop the block processor, stop the
// cementer, close the store").
package node

import (
	"sync"
	"time"

	"github.com/repchain/repchaind/blockprocessor"
	"github.com/repchain/repchaind/bootstrap"
	"github.com/repchain/repchaind/cementing"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/election"
	"github.com/repchain/repchaind/reps"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/unchecked"
)

const (
	electionTickInterval   = 250 * time.Millisecond
	schedulerTickInterval  = 500 * time.Millisecond
	optimisticTickInterval = 30 * time.Second
	onlineSampleInterval   = 15 * time.Second
	unheldQueueBound       = 4096
)

// Node owns every long-lived subsystem and drives their lifecycle.
// Construct one with New, call Start, and call Stop exactly once before
// discarding it.
type Node struct {
	Store  store.Store
	Params *chaincfg.Params

	Weights *reps.WeightTracker
	Online  *reps.OnlineTracker
	Reps    *reps.Register

	Unchecked *unchecked.Buffer

	Active    *election.Active
	Scheduler *election.Scheduler

	Cementer     *cementing.Cementer
	cementThread *cementing.Thread

	Processor *blockprocessor.Processor

	Bootstrap *bootstrap.Coordinator

	tickers []*time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New constructs every subsystem and wires their observer hooks
// together, but starts nothing: call Start to begin the cementer
// thread, the block processor thread, and the periodic maintenance
// goroutines.
func New(st store.Store, params *chaincfg.Params) *Node {
	n := &Node{
		Store:  st,
		Params: params,
		stop:   make(chan struct{}),
	}

	n.Weights = reps.NewWeightTracker()
	n.Online = reps.NewOnlineTracker(params)
	n.Reps = reps.NewRegister()

	n.Unchecked = unchecked.New(unheldQueueBound)

	n.Cementer = cementing.New(params, nil)
	n.cementThread = cementing.NewThread(st, n.Cementer)

	// The cement thread doubles as the election core's confirmed
	// observer: its ElectionConfirmed method is exactly the hook
	// election.ConfirmedObserver names, so a confirmed winner reaches
	// the cementer with no further glue.
	n.Active = election.NewActive(params, n.Weights, n.Online, n.cementThread)
	n.Scheduler = election.NewScheduler(params, n.Active)

	// The block processor's observer fans a Process call's two hooks
	// out to the weight tracker (and, later, anything else a running
	// node wants notified); its ElectionOpener is the active set
	// itself, which already implements OpenFork.
	n.Processor = blockprocessor.New(st, params, n.Unchecked, n.Weights, n.Active)

	n.Bootstrap = bootstrap.New(st, params, n.Processor)

	return n
}

// Start begins the cementer thread, the block processor thread, and the
// periodic maintenance goroutines (election ticking, scheduler runs,
// optimistic scheduling, online-weight sampling). It does not start
// accepting network connections; that is a caller concern layered on
// top of Bootstrap and Processor.
func (n *Node) Start() {
	n.cementThread.Start()
	n.Processor.Start()

	n.startTicker(electionTickInterval, n.Active.Tick)
	n.startTicker(schedulerTickInterval, func() { n.Scheduler.RunOnce() })
	n.startTicker(optimisticTickInterval, n.runOptimistic)
	n.startTicker(onlineSampleInterval, n.sampleOnline)
}

func (n *Node) startTicker(d time.Duration, fn func()) {
	t := time.NewTicker(d)
	n.tickers = append(n.tickers, t)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for {
			select {
			case <-t.C:
				fn()
			case <-n.stop:
				return
			}
		}
	}()
}

func (n *Node) runOptimistic() {
	txn, err := n.Store.BeginRead()
	if err != nil {
		log.Warnf("optimistic scheduling: %v", err)
		return
	}
	defer txn.Discard()
	n.Scheduler.Optimistic(txn)
}

func (n *Node) sampleOnline() {
	n.Online.Sample(time.Now(), n.Weights.Weight)
}

// Stop shuts every subsystem down in the order spec.md section 5
// requires: stop accepting new network sessions is the caller's
// responsibility (done before calling Stop); from here, the block
// processor is stopped and drained first, then the cementer, then the
// store is closed.
func (n *Node) Stop() {
	for _, t := range n.tickers {
		t.Stop()
	}
	close(n.stop)
	n.wg.Wait()

	n.Processor.Stop()
	n.cementThread.Stop()

	if err := n.Store.Close(); err != nil {
		log.Errorf("closing store: %v", err)
	}
}
