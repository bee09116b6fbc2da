// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

func TestMsgBulkPullRoundTrip(t *testing.T) {
	msg := &MsgBulkPull{Start: numeric.Hash{0x01}, End: numeric.Hash{0x02}, Count: 42}
	var out MsgBulkPull

	roundTrip(t, msg, &out)

	if out.Start != msg.Start || out.End != msg.End || out.Count != msg.Count {
		t.Fatalf("decoded = %+v, want %+v", out, msg)
	}
}

func TestMsgBulkPullResponseRoundTrip(t *testing.T) {
	blk := testBlock(t, 0x03)
	msg := &MsgBulkPullResponse{Blocks: []blocks.Block{blk}}
	var out MsgBulkPullResponse

	roundTrip(t, msg, &out)

	if len(out.Blocks) != 1 || out.Blocks[0].Hash() != blk.Hash() {
		t.Fatalf("decoded Blocks = %v, want one block with hash %v", out.Blocks, blk.Hash())
	}
}

func TestMsgBulkPullResponseBtcEncodeRejectsTooManyBlocks(t *testing.T) {
	blk := testBlock(t, 0x04)
	blocksSlice := make([]blocks.Block, MaxBlocksPerPull+1)
	for i := range blocksSlice {
		blocksSlice[i] = blk
	}
	msg := &MsgBulkPullResponse{Blocks: blocksSlice}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, testPver); err == nil {
		t.Fatal("expected BtcEncode to reject more than MaxBlocksPerPull blocks")
	}
}
