// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/numeric"
)

// AscPullType distinguishes the two shapes an ascending-bootstrap pull
// can take: walking a single account's chain forward, or asking for the
// blocks that unblock a specific entry in the unchecked buffer's
// blocking set.
type AscPullType uint8

const (
	// AscPullAccount walks Target's chain forward from Start.
	AscPullAccount AscPullType = iota
	// AscPullBlocking resolves the dependency named by Target directly.
	AscPullBlocking
)

// MsgAscPullReq requests the next run of blocks in ascending (oldest-
// first) order, either by walking an account forward from a known hash
// or by asking for a specific blocking dependency (spec.md section 6:
// asc_pull_req/ack). Ascending order lets the receiver apply blocks as
// they arrive instead of buffering a whole reversed chain.
type MsgAscPullReq struct {
	ID     uint64
	Kind   AscPullType
	Target numeric.Hash
	Start  numeric.Hash
	Count  uint16
}

// BtcDecode decodes r into the receiver.
func (msg *MsgAscPullReq) BtcDecode(r io.Reader, pver uint32) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	msg.ID = binary.BigEndian.Uint64(buf[:])
	var kindBuf [1]byte
	if _, err := io.ReadFull(r, kindBuf[:]); err != nil {
		return err
	}
	msg.Kind = AscPullType(kindBuf[0])
	if err := readHash(r, &msg.Target); err != nil {
		return err
	}
	if err := readHash(r, &msg.Start); err != nil {
		return err
	}
	var countBuf [2]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return err
	}
	msg.Count = binary.BigEndian.Uint16(countBuf[:])
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgAscPullReq) BtcEncode(w io.Writer, pver uint32) error {
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], msg.ID)
	if _, err := w.Write(idBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(msg.Kind)}); err != nil {
		return err
	}
	if err := writeHash(w, msg.Target); err != nil {
		return err
	}
	if err := writeHash(w, msg.Start); err != nil {
		return err
	}
	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], msg.Count)
	_, err := w.Write(countBuf[:])
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgAscPullReq) Command() string {
	return CmdAscPullReq
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgAscPullReq) MaxPayloadLength(pver uint32) uint32 {
	return 8 + 1 + uint32(2*numeric.HashSize) + 2
}

// MsgAscPullAck answers a MsgAscPullReq with the same ID and a run of
// blocks in ascending order. Complete reports whether Blocks reaches the
// chain tip (Account pulls) or resolves the named dependency (Blocking
// pulls); the puller keeps re-requesting from the new frontier until
// Complete is true.
type MsgAscPullAck struct {
	ID       uint64
	Blocks   []blocks.Block
	Complete bool
}

// BtcDecode decodes r into the receiver.
func (msg *MsgAscPullAck) BtcDecode(r io.Reader, pver uint32) error {
	var idBuf [8]byte
	if _, err := io.ReadFull(r, idBuf[:]); err != nil {
		return err
	}
	msg.ID = binary.BigEndian.Uint64(idBuf[:])
	count, err := dcrwire.ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > MaxBlocksPerPull {
		return messageError("MsgAscPullAck.BtcDecode", "too many blocks")
	}
	out := make([]blocks.Block, count)
	for i := range out {
		raw, err := dcrwire.ReadVarBytes(r, pver, MaxBlockEncodingSize, "asc pull block")
		if err != nil {
			return err
		}
		b, err := blocks.Decode(raw)
		if err != nil {
			return messageError("MsgAscPullAck.BtcDecode", err.Error())
		}
		out[i] = b
	}
	msg.Blocks = out
	var completeBuf [1]byte
	if _, err := io.ReadFull(r, completeBuf[:]); err != nil {
		return err
	}
	msg.Complete = completeBuf[0] != 0
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgAscPullAck) BtcEncode(w io.Writer, pver uint32) error {
	if len(msg.Blocks) > MaxBlocksPerPull {
		return messageError("MsgAscPullAck.BtcEncode", "too many blocks")
	}
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], msg.ID)
	if _, err := w.Write(idBuf[:]); err != nil {
		return err
	}
	if err := dcrwire.WriteVarInt(w, pver, uint64(len(msg.Blocks))); err != nil {
		return err
	}
	for _, b := range msg.Blocks {
		if err := dcrwire.WriteVarBytes(w, pver, b.Serialize()); err != nil {
			return err
		}
	}
	complete := byte(0)
	if msg.Complete {
		complete = 1
	}
	_, err := w.Write([]byte{complete})
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgAscPullAck) Command() string {
	return CmdAscPullAck
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgAscPullAck) MaxPayloadLength(pver uint32) uint32 {
	perBlock := uint32(dcrwire.VarIntSerializeSize(MaxBlockEncodingSize)) + MaxBlockEncodingSize
	return 8 + uint32(dcrwire.VarIntSerializeSize(MaxBlocksPerPull)) + MaxBlocksPerPull*perBlock + 1
}
