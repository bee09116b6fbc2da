// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bootstrap

import (
	"sync"
	"time"

	"github.com/repchain/repchaind/blockprocessor"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/ledger"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/wire"
)

// defaultWindowSize bounds how many pulls one peer may have outstanding
// at once (spec.md section 4.7: "a sliding window of in-flight pulls").
const defaultWindowSize = 16

// defaultPullCount is the block count requested per bulk_pull when the
// coordinator has no better estimate of how far behind an account is.
const defaultPullCount = 128

// maxFailuresBeforeDrop disconnects a peer once this many of its pulls
// have timed out or otherwise failed without being reissued successfully
// elsewhere (spec.md section 4.7: "on timeout the peer is penalized").
const maxFailuresBeforeDrop = 4

// Coordinator runs the frontier/bulk-pull state machine across every
// connected bootstrap peer and the ascending, priority-ordered blocking-
// set puller (spec.md section 4.7).
type Coordinator struct {
	st     store.Store
	params *chaincfg.Params
	proc   *blockprocessor.Processor
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	blocking *blockingSet
	nextID   uint64
}

// New builds a Coordinator. proc is the block processor bootstrap blocks
// are fed into, tagged SourceBootstrap.
func New(st store.Store, params *chaincfg.Params, proc *blockprocessor.Processor) *Coordinator {
	return &Coordinator{
		st:       st,
		params:   params,
		proc:     proc,
		now:      time.Now,
		sessions: make(map[string]*session),
		blocking: newBlockingSet(),
	}
}

// AddPeer registers a newly connected bootstrap peer and kicks off its
// frontier request, transitioning it Idle -> FrontierReq.
func (c *Coordinator) AddPeer(p PeerConn) error {
	c.mu.Lock()
	c.sessions[p.Addr()] = &session{peer: p, state: FrontierReq}
	c.mu.Unlock()

	log.Debugf("bootstrap: requesting frontiers from %s", p.Addr())
	return p.SendFrontierReq(&wire.MsgFrontierReq{Count: 0})
}

// RemovePeer drops a disconnected peer's session.
func (c *Coordinator) RemovePeer(p PeerConn) {
	c.mu.Lock()
	delete(c.sessions, p.Addr())
	c.mu.Unlock()
}

// HandleFrontierResponse compares a peer's reported frontiers against the
// local store and schedules a bulk_pull for each account that is missing
// locally or whose local head doesn't match the peer's, up to the peer's
// pull window; accounts reached once the window is full are not
// scheduled.
func (c *Coordinator) HandleFrontierResponse(p PeerConn, msg *wire.MsgFrontierResponse) error {
	c.mu.Lock()
	sess, ok := c.sessions[p.Addr()]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	sess.state = PullAccounts

	txn, err := c.st.BeginRead()
	if err != nil {
		return err
	}
	defer txn.Discard()

	for _, pair := range msg.Frontiers {
		info, exists := txn.Accounts().Get(pair.Account)
		if exists && info.Head == pair.Frontier {
			continue
		}
		known := numeric.ZeroHash
		if exists {
			known = info.Head
		}
		if err := c.schedulePull(sess, pair.Frontier, known); err != nil {
			return err
		}
	}
	sess.state = BulkPullBlocks
	return nil
}

func (c *Coordinator) schedulePull(sess *session, start, end numeric.Hash) error {
	c.mu.Lock()
	if sess.inFlight >= defaultWindowSize {
		c.mu.Unlock()
		return nil
	}
	sess.inFlight++
	c.mu.Unlock()

	return sess.peer.SendBulkPull(&wire.MsgBulkPull{
		Start: start,
		End:   end,
		Count: defaultPullCount,
	})
}

// HandleBulkPullResponse feeds every pulled block to the block processor
// tagged bootstrap, in the ascending-friendly oldest-to-newest order the
// response already carries. A gap blocks the owning account and queues an
// ascending pull for the missing dependency (spec.md section 4.7: "on
// GapPrevious the missing hash is queued back").
func (c *Coordinator) HandleBulkPullResponse(p PeerConn, msg *wire.MsgBulkPullResponse) error {
	c.mu.Lock()
	sess, ok := c.sessions[p.Addr()]
	if ok && sess.inFlight > 0 {
		sess.inFlight--
	}
	c.mu.Unlock()
	if !ok {
		return nil
	}

	for _, block := range msg.Blocks {
		outcome := c.proc.AddBlocking(block, blockprocessor.SourceBootstrap)
		switch {
		case outcome.IsGap():
			dep := block.Previous()
			if outcome == ledger.GapSource || outcome == ledger.GapEpochOpenPending {
				dep = block.Link()
			}
			priority := 1.0 / float64(1+sess.failures)
			if c.blocking.insert(block.Account(), dep, priority) {
				log.Debugf("bootstrap: account %s blocked on %s", block.Account(), numeric.ShortString(dep))
			}
		case outcome == ledger.Progress:
			c.blocking.remove(block.Account())
		}
	}
	return nil
}

// RunAscending pops the lowest-priority blocked account and asks peer to
// resolve its dependency directly, rather than waiting for another
// frontier/bulk_pull cycle to stumble onto it (spec.md section 4.7's
// ascending pull, supplemented per SPEC_FULL.md section 5 to order by
// priority rather than FIFO).
func (c *Coordinator) RunAscending(p PeerConn) (bool, error) {
	entry, ok := c.blocking.popLowestPriority()
	if !ok {
		return false, nil
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.mu.Unlock()

	err := p.SendAscPullReq(&wire.MsgAscPullReq{
		ID:     id,
		Kind:   wire.AscPullBlocking,
		Target: entry.dependency,
		Count:  defaultPullCount,
	})
	return true, err
}

// HandleAscPullAck feeds the resolved dependency chain to the block
// processor the same way a bulk_pull response is, re-blocking the
// account if the peer still couldn't complete it.
func (c *Coordinator) HandleAscPullAck(msg *wire.MsgAscPullAck) error {
	for _, block := range msg.Blocks {
		outcome := c.proc.AddBlocking(block, blockprocessor.SourceBootstrap)
		if outcome.IsGap() {
			c.blocking.insert(block.Account(), block.Previous(), 1.0)
		} else if outcome == ledger.Progress {
			c.blocking.remove(block.Account())
		}
	}
	return nil
}

// Penalize records a failed or timed-out pull against peer, disconnecting
// it once it crosses maxFailuresBeforeDrop (spec.md section 4.7: "on
// timeout the peer is penalized and the pull re-issued elsewhere").
func (c *Coordinator) Penalize(p PeerConn) {
	c.mu.Lock()
	sess, ok := c.sessions[p.Addr()]
	if !ok {
		c.mu.Unlock()
		return
	}
	sess.failures++
	drop := sess.failures >= maxFailuresBeforeDrop
	if sess.inFlight > 0 {
		sess.inFlight--
	}
	c.mu.Unlock()

	if drop {
		log.Warnf("bootstrap: dropping peer %s after repeated pull failures", p.Addr())
		p.Disconnect()
	}
}

// BlockedAccounts reports how many accounts are currently stuck behind a
// missing dependency, for diagnostics.
func (c *Coordinator) BlockedAccounts() int {
	return c.blocking.len()
}
