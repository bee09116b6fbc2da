// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// FinalTimestamp marks a vote as final: a representative that casts a
// final vote for a root may never vote for a different successor of that
// root again (spec.md section 4.5 final-vote guard).
const FinalTimestamp = ^uint64(0)

// Vote is a single representative's signed endorsement of up to
// MaxHashesPerMessage block hashes, which may belong to different
// election roots (spec.md
// section 6: vote = account, signature, timestamp-and-duration,
// hashes[1..=12]).
type Vote struct {
	Account   numeric.Account
	Signature nodecrypto.Signature
	Timestamp uint64
	Duration  uint8
	Hashes    []numeric.Hash
}

// IsFinal reports whether this vote is a final vote.
func (v *Vote) IsFinal() bool {
	return v.Timestamp == FinalTimestamp
}

// HashingBytes returns the byte sequence the representative actually
// signs: timestamp, duration, then each hash in order. The account is
// implicit (it IS the signer) and so is excluded, matching the teacher's
// practice of never including the signer's own identity inside the
// signed region.
func (v *Vote) HashingBytes() []byte {
	buf := make([]byte, 9+len(v.Hashes)*numeric.HashSize)
	binary.BigEndian.PutUint64(buf[0:8], v.Timestamp)
	buf[8] = v.Duration
	off := 9
	for _, h := range v.Hashes {
		copy(buf[off:off+numeric.HashSize], h[:])
		off += numeric.HashSize
	}
	return buf
}

// MsgConfirmAck carries a single Vote (spec.md section 6: confirm_ack(vote)).
type MsgConfirmAck struct {
	Vote Vote
}

// NewMsgConfirmAck returns a confirm_ack wrapping vote.
func NewMsgConfirmAck(vote Vote) *MsgConfirmAck {
	return &MsgConfirmAck{Vote: vote}
}

// BtcDecode decodes r into the receiver.
func (msg *MsgConfirmAck) BtcDecode(r io.Reader, pver uint32) error {
	var v Vote
	if err := readHash(r, &v.Account); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, v.Signature[:]); err != nil {
		return err
	}
	var tsBuf [8]byte
	if _, err := io.ReadFull(r, tsBuf[:]); err != nil {
		return err
	}
	v.Timestamp = binary.BigEndian.Uint64(tsBuf[:])
	var durBuf [1]byte
	if _, err := io.ReadFull(r, durBuf[:]); err != nil {
		return err
	}
	v.Duration = durBuf[0]
	hashes, err := readHashList(r, pver, MaxHashesPerMessage)
	if err != nil {
		return err
	}
	v.Hashes = hashes
	msg.Vote = v
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgConfirmAck) BtcEncode(w io.Writer, pver uint32) error {
	v := msg.Vote
	if len(v.Hashes) == 0 || len(v.Hashes) > MaxHashesPerMessage {
		return messageError("MsgConfirmAck.BtcEncode", "hash count out of range")
	}
	if err := writeHash(w, v.Account); err != nil {
		return err
	}
	if _, err := w.Write(v.Signature[:]); err != nil {
		return err
	}
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], v.Timestamp)
	if _, err := w.Write(tsBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{v.Duration}); err != nil {
		return err
	}
	return writeHashList(w, pver, v.Hashes)
}

// Command returns the protocol command string for the message.
func (msg *MsgConfirmAck) Command() string {
	return CmdConfirmAck
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgConfirmAck) MaxPayloadLength(pver uint32) uint32 {
	return uint32(numeric.HashSize) + nodecrypto.SignatureSize + 8 + 1 +
		uint32(dcrwire.VarIntSerializeSize(MaxHashesPerMessage)) +
		MaxHashesPerMessage*uint32(numeric.HashSize)
}
