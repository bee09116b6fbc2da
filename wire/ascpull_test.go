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

func TestMsgAscPullReqRoundTrip(t *testing.T) {
	msg := &MsgAscPullReq{
		ID:     0x0102030405060708,
		Kind:   AscPullBlocking,
		Target: numeric.Hash{0x01},
		Start:  numeric.Hash{0x02},
		Count:  7,
	}
	var out MsgAscPullReq

	roundTrip(t, msg, &out)

	if out != *msg {
		t.Fatalf("decoded = %+v, want %+v", out, *msg)
	}
}

func TestMsgAscPullAckRoundTrip(t *testing.T) {
	blk := testBlock(t, 0x05)
	msg := &MsgAscPullAck{ID: 99, Blocks: []blocks.Block{blk}, Complete: true}
	var out MsgAscPullAck

	roundTrip(t, msg, &out)

	if out.ID != msg.ID || !out.Complete {
		t.Fatalf("decoded ID/Complete = %d/%v, want %d/true", out.ID, out.Complete, msg.ID)
	}
	if len(out.Blocks) != 1 || out.Blocks[0].Hash() != blk.Hash() {
		t.Fatalf("decoded Blocks = %v, want one block with hash %v", out.Blocks, blk.Hash())
	}
}

func TestMsgAscPullAckBtcEncodeRejectsTooManyBlocks(t *testing.T) {
	blk := testBlock(t, 0x06)
	blocksSlice := make([]blocks.Block, MaxBlocksPerPull+1)
	for i := range blocksSlice {
		blocksSlice[i] = blk
	}
	msg := &MsgAscPullAck{Blocks: blocksSlice}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, testPver); err == nil {
		t.Fatal("expected BtcEncode to reject more than MaxBlocksPerPull blocks")
	}
}
