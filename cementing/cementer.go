// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cementing

import (
	"fmt"

	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// Cemented receives the count of blocks newly cemented by one Cement call,
// including any cross-account dependencies it pulled in (spec.md section
// 4.6: "blocks_cemented(count) fires once per cementation pass").
type Cemented interface {
	BlocksCemented(count int)
}

// Cementer advances confirmation heights to match confirmed blocks,
// cementing a receive's source account first whenever it hasn't already
// caught up (spec.md section 4.6: "a block may not be cemented ahead of
// any block it depends on").
//
// A single account's own backlog is the only thing subject to the
// bounded/unbounded batch-size switch (spec.md section 4.6's automatic
// mode): once an account is more than UnboundedCutoff blocks behind its
// target, one call cements only up to BoundedBatchMaxSize of them and
// reports done=false so the caller commits and re-invokes. Dependency
// chains pulled in along the way are cemented in full regardless, since
// in practice they are short compared to a stalled primary account's own
// backlog, and splitting them across calls would mean tracking partial
// progress through an arbitrarily deep dependency tree for no real memory
// savings.
type Cementer struct {
	params *chaincfg.Params
	obs    Cemented
	cache  *blockCache
}

// New builds a Cementer.
func New(params *chaincfg.Params, obs Cemented) *Cementer {
	return &Cementer{params: params, obs: obs, cache: newBlockCache(defaultBlockCacheCapacity)}
}

// Cement advances account's confirmation height up to and including hash,
// cementing dependency accounts first as needed. It reports how many
// blocks it cemented (across this account and any dependencies) and
// whether account's own target height was fully reached; when done is
// false, the caller should commit txn and call Cement again with the same
// arguments to continue.
func (c *Cementer) Cement(txn store.WriteTx, account numeric.Account, hash numeric.Hash) (done bool, cemented int, err error) {
	target, ok := txn.Blocks().Get(hash)
	if !ok {
		return false, 0, fmt.Errorf("cementing: block %s not found", numeric.ShortString(hash))
	}
	if target.Sideband.Account != account {
		return false, 0, fmt.Errorf("cementing: block %s does not belong to account", numeric.ShortString(hash))
	}

	ch, _ := txn.ConfirmationHeights().Get(account)
	if ch.Height >= target.Sideband.Height {
		return true, 0, nil
	}

	chain, err := c.collectChain(txn, hash, ch.Height)
	if err != nil {
		return false, 0, err
	}

	limit := len(chain)
	bounded := uint64(len(chain)) > c.params.UnboundedCutoff
	if bounded && uint64(limit) > c.params.BoundedBatchMaxSize {
		limit = int(c.params.BoundedBatchMaxSize)
		if limit < 1 {
			limit = 1
		}
	}

	total := 0
	var newFrontier numeric.Hash
	for i := 0; i < limit; i++ {
		block := chain[i]
		if block.Sideband.IsReceive {
			n, err := c.cementDependency(txn, block.Block.Link())
			if err != nil {
				return false, total, err
			}
			total += n
		}
		newFrontier = block.Block.Hash()
		total++
	}

	txn.ConfirmationHeightsRW().Put(account, store.ConfirmationHeight{
		Height:   chain[limit-1].Sideband.Height,
		Frontier: newFrontier,
	})

	if c.obs != nil && total > 0 {
		c.obs.BlocksCemented(total)
	}
	log.Debugf("cemented %d blocks for account %s (height %d -> %d)",
		total, account, ch.Height, chain[limit-1].Sideband.Height)

	return limit == len(chain), total, nil
}

// cementDependency fully cements sourceSendHash's account up to and
// including that send, without the bounded/unbounded cap (see the
// Cementer doc comment).
func (c *Cementer) cementDependency(txn store.WriteTx, sourceSendHash numeric.Hash) (int, error) {
	source, ok := txn.Blocks().Get(sourceSendHash)
	if !ok {
		return 0, fmt.Errorf("cementing: source send %s not found", numeric.ShortString(sourceSendHash))
	}
	account := source.Sideband.Account

	ch, _ := txn.ConfirmationHeights().Get(account)
	if ch.Height >= source.Sideband.Height {
		return 0, nil
	}

	chain, err := c.collectChain(txn, sourceSendHash, ch.Height)
	if err != nil {
		return 0, err
	}

	total := 0
	var newFrontier numeric.Hash
	for _, block := range chain {
		if block.Sideband.IsReceive {
			n, err := c.cementDependency(txn, block.Block.Link())
			if err != nil {
				return total, err
			}
			total += n
		}
		newFrontier = block.Block.Hash()
		total++
	}

	txn.ConfirmationHeightsRW().Put(account, store.ConfirmationHeight{
		Height:   source.Sideband.Height,
		Frontier: newFrontier,
	})
	return total, nil
}

// collectChain walks backward from hash to the block immediately above
// belowHeight, returning the run in ascending height order.
func (c *Cementer) collectChain(txn store.ReadTx, hash numeric.Hash, belowHeight uint64) ([]store.StoredBlock, error) {
	var reversed []store.StoredBlock
	cur := hash
	for {
		stored, ok := c.cache.get(txn, cur)
		if !ok {
			return nil, fmt.Errorf("cementing: block %s not found", numeric.ShortString(cur))
		}
		if stored.Sideband.Height <= belowHeight {
			break
		}
		reversed = append(reversed, stored)
		if stored.Sideband.Height == belowHeight+1 {
			break
		}
		cur = stored.Block.Previous()
		if numeric.IsZero(cur) {
			break
		}
	}
	chain := make([]store.StoredBlock, len(reversed))
	for i, b := range reversed {
		chain[len(reversed)-1-i] = b
	}
	return chain, nil
}
