// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockprocessor

import (
	"sync"
	"time"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/ledger"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/rollback"
	"github.com/repchain/repchaind/store"
	"github.com/repchain/repchaind/unchecked"
)

// defaultQueueBound is the per-source queue capacity used when the
// caller doesn't override it via Options.
const defaultQueueBound = 4096

// defaultMaxBatch and defaultMaxSlice bound one writer iteration: it
// commits after whichever limit it hits first, yielding the write lock
// back to readers (spec.md section 4.2 and section 5).
const (
	defaultMaxBatch = 256
	defaultMaxSlice = 20 * time.Millisecond
)

// ElectionOpener is the narrow capability the processor needs from the
// election core: open (or no-op if one already exists) a fork election
// between the current winner and a newly-arrived contender for the same
// root (spec.md section 4.2: "On Fork: if the account has no active
// election, one is opened for the existing head's root with both
// contenders").
type ElectionOpener interface {
	OpenFork(root numeric.Hash, winner, contender blocks.Block)
}

// item is one queued unit of work.
type item struct {
	block   blocks.Block
	source  Source
	channel string // origin-channel identifier, empty for local/forced/replay
	done    chan Outcome
}

// Outcome mirrors ledger.Outcome for callers that only need the
// processor's public result type; kept distinct so blockprocessor's
// public API doesn't force every caller to import ledger just for the
// enum.
type Outcome = ledger.Outcome

// Processor is the single-writer block processor of spec.md section 4.2.
type Processor struct {
	st        store.Store
	params    *chaincfg.Params
	unchecked *unchecked.Buffer
	obs       ledger.Observer
	opener    ElectionOpener
	now       func() time.Time

	maxBatch int
	maxSlice time.Duration
	bound    int

	mu       sync.Mutex
	cond     *sync.Cond
	forced   []*item
	queues   map[Source][]*item
	stopping bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Processor at construction.
type Option func(*Processor)

// WithClock overrides the processor's notion of "now", for deterministic
// sideband timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithQueueBound overrides the per-source queue capacity.
func WithQueueBound(n int) Option {
	return func(p *Processor) { p.bound = n }
}

// New builds a Processor. It does not start its writer goroutine; call
// Start.
func New(st store.Store, params *chaincfg.Params, buf *unchecked.Buffer, obs ledger.Observer, opener ElectionOpener, opts ...Option) *Processor {
	p := &Processor{
		st:        st,
		params:    params,
		unchecked: buf,
		obs:       obs,
		opener:    opener,
		now:       time.Now,
		maxBatch:  defaultMaxBatch,
		maxSlice:  defaultMaxSlice,
		bound:     defaultQueueBound,
		queues:    make(map[Source][]*item),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Start launches the background writer thread (spec.md section 5: "The
// block processor writer runs in a dedicated thread").
func (p *Processor) Start() {
	p.wg.Add(1)
	go p.run()
}

// Stop signals the writer to drain its current queues and exit, then
// waits for it to do so (spec.md section 5 shutdown ordering).
func (p *Processor) Stop() {
	p.mu.Lock()
	p.stopping = true
	p.cond.Broadcast()
	p.mu.Unlock()
	close(p.stop)
	p.wg.Wait()
}

// Add enqueues block for processing, returning false if it was dropped
// under backpressure (spec.md section 4.2: "drops on full queue except
// for local and forced").
func (p *Processor) Add(block blocks.Block, source Source, channel string) bool {
	it := &item{block: block, source: source, channel: channel}
	return p.enqueue(it)
}

// AddBlocking enqueues block and parks the caller until the writer has
// processed it, returning the validator's outcome.
func (p *Processor) AddBlocking(block blocks.Block, source Source) Outcome {
	it := &item{block: block, source: source, done: make(chan Outcome, 1)}
	if !p.enqueue(it) {
		return ledger.Invalid
	}
	return <-it.done
}

func (p *Processor) enqueue(it *item) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if it.source == SourceForced {
		p.forced = append(p.forced, it)
		p.cond.Signal()
		return true
	}

	q := p.queues[it.source]
	if len(q) >= p.bound && it.source.dropsUnderBackpressure() {
		return false
	}
	p.queues[it.source] = append(q, it)
	p.cond.Signal()
	return true
}

// nextBatch pulls up to maxBatch items, forced queue first, then live
// before bootstrap (spec.md section 4.2: "live traffic is throttled
// before bootstrap" means live is serviced ahead of bootstrap, not that
// bootstrap starves; both queues are bounded so the latter still drains).
func (p *Processor) nextBatch() []*item {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.forced) == 0 && allEmpty(p.queues) && !p.stopping {
		p.cond.Wait()
	}
	if p.stopping && len(p.forced) == 0 && allEmpty(p.queues) {
		return nil
	}

	var batch []*item
	batch = append(batch, p.forced...)
	p.forced = nil

	order := []Source{SourceLocal, SourceLive, SourceUnchecked, SourceReplay, SourceBootstrap}
	for _, src := range order {
		for len(batch) < p.maxBatch && len(p.queues[src]) > 0 {
			batch = append(batch, p.queues[src][0])
			p.queues[src] = p.queues[src][1:]
		}
		if len(batch) >= p.maxBatch {
			break
		}
	}
	return batch
}

func allEmpty(queues map[Source][]*item) bool {
	for _, q := range queues {
		if len(q) > 0 {
			return false
		}
	}
	return true
}

// run is the writer loop: it pulls a bounded batch, commits it in one
// write transaction, and publishes outcomes, yielding before maxSlice
// elapses so readers are never starved (spec.md section 5).
func (p *Processor) run() {
	defer p.wg.Done()
	for {
		batch := p.nextBatch()
		if batch == nil {
			return
		}
		p.commitBatch(batch)
	}
}

func (p *Processor) commitBatch(batch []*item) {
	deadline := p.now().Add(p.maxSlice)
	txn, err := p.st.BeginWrite()
	if err != nil {
		for _, it := range batch {
			p.reply(it, ledger.Invalid)
		}
		return
	}

	var (
		resolved  []numeric.Hash
		committed int
		handled   []*item
		outcomes  []Outcome
	)
	for i, it := range batch {
		if it.source == SourceForced {
			p.rollBackHeadForForced(txn, it.block)
		}

		d := ledger.Validate(txn, p.params, it.block)
		switch {
		case d.Outcome == ledger.Progress:
			if err := ledger.Process(txn, it.block, d, p.now(), p.obs); err != nil {
				d.Outcome = ledger.Invalid
				break
			}
			resolved = append(resolved, it.block.Hash())
			committed++

		case d.Outcome.IsGap():
			dep := it.block.Previous()
			if d.Outcome == ledger.GapSource || d.Outcome == ledger.GapEpochOpenPending {
				dep = it.block.Link()
			}
			p.unchecked.Insert(dep, it.block, p.now())

		case d.Outcome == ledger.Fork:
			// The block already occupying this root's successor slot is the
			// current winner the contender competes with.
			if prev, ok := txn.Blocks().Get(it.block.Previous()); ok {
				if existing, ok := txn.Blocks().Get(prev.Sideband.Successor); ok {
					log.Infof("fork detected at root %s: contender %s", it.block.Root(), it.block.Hash())
					p.opener.OpenFork(it.block.Root(), existing.Block, it.block)
				}
			}
		}
		handled = append(handled, it)
		outcomes = append(outcomes, d.Outcome)

		if p.now().After(deadline) {
			// Items past the time slice go back to the front of their
			// queues for the next iteration rather than being dropped.
			p.mu.Lock()
			for j := len(batch) - 1; j > i; j-- {
				rest := batch[j]
				if rest.source == SourceForced {
					p.forced = append([]*item{rest}, p.forced...)
				} else {
					p.queues[rest.source] = append([]*item{rest}, p.queues[rest.source]...)
				}
			}
			p.mu.Unlock()
			break
		}
	}

	// Waiters are answered only once the batch's fate is settled, so an
	// AddBlocking caller that sees Progress can read the block back.
	if committed == 0 {
		txn.Rollback()
	} else if err := txn.Commit(); err != nil {
		log.Errorf("commit of %d blocks failed: %v", committed, err)
		for i := range outcomes {
			outcomes[i] = ledger.Invalid
		}
		resolved = nil
	} else {
		log.Debugf("committed %d of %d queued blocks", committed, len(handled))
	}
	for i, it := range handled {
		p.reply(it, outcomes[i])
	}
	for _, hash := range resolved {
		for _, dep := range p.unchecked.Drain(hash) {
			p.Add(dep, SourceUnchecked, "")
		}
	}
}

// rollBackHeadForForced undoes the account's current head before a
// forced block is applied (spec.md section 4.2: "forced blocks trigger
// rollback of the current head of their account before application").
func (p *Processor) rollBackHeadForForced(txn store.WriteTx, block blocks.Block) {
	account := block.Account()
	info, ok := txn.Accounts().Get(account)
	if !ok || info.Head == block.Hash() {
		return
	}
	rollback.RollBack(txn, info.Head, p.obs)
}

func (p *Processor) reply(it *item, o Outcome) {
	if it.done != nil {
		it.done <- o
	}
}
