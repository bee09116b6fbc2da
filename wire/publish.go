// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/blocks"
)

// MsgPublish gossips a single block to peers (spec.md section 6:
// publish(block)). Receiving a MsgPublish is exactly equivalent to
// feeding the block into the block processor's live source.
type MsgPublish struct {
	Block blocks.Block
}

// NewMsgPublish returns a publish message wrapping block.
func NewMsgPublish(block blocks.Block) *MsgPublish {
	return &MsgPublish{Block: block}
}

// BtcDecode decodes r into the receiver.
func (msg *MsgPublish) BtcDecode(r io.Reader, pver uint32) error {
	raw, err := dcrwire.ReadVarBytes(r, pver, MaxBlockEncodingSize, "publish block")
	if err != nil {
		return err
	}
	block, err := blocks.Decode(raw)
	if err != nil {
		return messageError("MsgPublish.BtcDecode", err.Error())
	}
	msg.Block = block
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgPublish) BtcEncode(w io.Writer, pver uint32) error {
	raw := msg.Block.Serialize()
	if len(raw) > MaxBlockEncodingSize {
		return messageError("MsgPublish.BtcEncode", "block encoding too large")
	}
	return dcrwire.WriteVarBytes(w, pver, raw)
}

// Command returns the protocol command string for the message.
func (msg *MsgPublish) Command() string {
	return CmdPublish
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgPublish) MaxPayloadLength(pver uint32) uint32 {
	return uint32(dcrwire.VarIntSerializeSize(MaxBlockEncodingSize)) + MaxBlockEncodingSize
}
