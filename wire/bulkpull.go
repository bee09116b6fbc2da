// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

// MsgBulkPull requests a run of blocks from a peer's copy of one
// account's chain (spec.md section 6: bulk_pull(start, end, count)).
// Start is the chain head to walk backward from; End, if non-zero, stops
// the walk early; Count caps the response regardless of End.
type MsgBulkPull struct {
	Start numeric.Hash
	End   numeric.Hash
	Count uint32
}

// BtcDecode decodes r into the receiver.
func (msg *MsgBulkPull) BtcDecode(r io.Reader, pver uint32) error {
	if err := readHash(r, &msg.Start); err != nil {
		return err
	}
	if err := readHash(r, &msg.End); err != nil {
		return err
	}
	count, err := dcrwire.ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	msg.Count = uint32(count)
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgBulkPull) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeHash(w, msg.Start); err != nil {
		return err
	}
	if err := writeHash(w, msg.End); err != nil {
		return err
	}
	return dcrwire.WriteVarInt(w, pver, uint64(msg.Count))
}

// Command returns the protocol command string for the message.
func (msg *MsgBulkPull) Command() string {
	return CmdBulkPull
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgBulkPull) MaxPayloadLength(pver uint32) uint32 {
	return uint32(2*numeric.HashSize) + uint32(dcrwire.VarIntSerializeSize(MaxBlocksPerPull))
}

// MsgBulkPullResponse streams the blocks a MsgBulkPull asked for, oldest
// to newest so the receiving block processor can apply them in chain
// order without buffering a reorder step.
type MsgBulkPullResponse struct {
	Blocks []blocks.Block
}

// BtcDecode decodes r into the receiver.
func (msg *MsgBulkPullResponse) BtcDecode(r io.Reader, pver uint32) error {
	count, err := dcrwire.ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > MaxBlocksPerPull {
		return messageError("MsgBulkPullResponse.BtcDecode", "too many blocks")
	}
	out := make([]blocks.Block, count)
	for i := range out {
		raw, err := dcrwire.ReadVarBytes(r, pver, MaxBlockEncodingSize, "bulk pull block")
		if err != nil {
			return err
		}
		b, err := blocks.Decode(raw)
		if err != nil {
			return messageError("MsgBulkPullResponse.BtcDecode", err.Error())
		}
		out[i] = b
	}
	msg.Blocks = out
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgBulkPullResponse) BtcEncode(w io.Writer, pver uint32) error {
	if len(msg.Blocks) > MaxBlocksPerPull {
		return messageError("MsgBulkPullResponse.BtcEncode", "too many blocks")
	}
	if err := dcrwire.WriteVarInt(w, pver, uint64(len(msg.Blocks))); err != nil {
		return err
	}
	for _, b := range msg.Blocks {
		if err := dcrwire.WriteVarBytes(w, pver, b.Serialize()); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgBulkPullResponse) Command() string {
	return CmdBulkPull
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgBulkPullResponse) MaxPayloadLength(pver uint32) uint32 {
	perBlock := uint32(dcrwire.VarIntSerializeSize(MaxBlockEncodingSize)) + MaxBlockEncodingSize
	return uint32(dcrwire.VarIntSerializeSize(MaxBlocksPerPull)) + MaxBlocksPerPull*perBlock
}
