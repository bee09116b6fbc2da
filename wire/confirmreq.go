// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/numeric"
)

// MsgConfirmReq solicits a vote from a peer representative for one or
// more block hashes (spec.md section 6: confirm_req(hashes)). A
// representative that recognizes a hash as its own active election's
// winner replies with a MsgConfirmAck.
type MsgConfirmReq struct {
	Hashes []numeric.Hash
}

// NewMsgConfirmReq returns a confirm_req for hashes.
func NewMsgConfirmReq(hashes []numeric.Hash) *MsgConfirmReq {
	return &MsgConfirmReq{Hashes: hashes}
}

// BtcDecode decodes r into the receiver.
func (msg *MsgConfirmReq) BtcDecode(r io.Reader, pver uint32) error {
	hashes, err := readHashList(r, pver, MaxHashesPerMessage)
	if err != nil {
		return err
	}
	msg.Hashes = hashes
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgConfirmReq) BtcEncode(w io.Writer, pver uint32) error {
	if len(msg.Hashes) > MaxHashesPerMessage {
		return messageError("MsgConfirmReq.BtcEncode", "too many hashes")
	}
	return writeHashList(w, pver, msg.Hashes)
}

// Command returns the protocol command string for the message.
func (msg *MsgConfirmReq) Command() string {
	return CmdConfirmReq
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgConfirmReq) MaxPayloadLength(pver uint32) uint32 {
	return uint32(dcrwire.VarIntSerializeSize(MaxHashesPerMessage)) +
		MaxHashesPerMessage*numeric.HashSize
}
