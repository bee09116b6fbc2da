// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/repchain/repchaind/numeric"
)

// MsgFrontierReq asks a peer for the (account, head-hash) frontier of
// every account it holds whose frontier was modified within Age of now,
// starting from StartAccount (spec.md section 6: frontier_req(start_
// account, age, count)). Age is expressed as a count of seconds; zero
// means "no age filter".
type MsgFrontierReq struct {
	StartAccount numeric.Account
	AgeSeconds   uint32
	Count        uint32
}

// BtcDecode decodes r into the receiver.
func (msg *MsgFrontierReq) BtcDecode(r io.Reader, pver uint32) error {
	if err := readHash(r, &msg.StartAccount); err != nil {
		return err
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	msg.AgeSeconds = binary.BigEndian.Uint32(buf[0:4])
	msg.Count = binary.BigEndian.Uint32(buf[4:8])
	return nil
}

// BtcEncode encodes the receiver to w.
func (msg *MsgFrontierReq) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeHash(w, msg.StartAccount); err != nil {
		return err
	}
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], msg.AgeSeconds)
	binary.BigEndian.PutUint32(buf[4:8], msg.Count)
	_, err := w.Write(buf[:])
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgFrontierReq) Command() string {
	return CmdFrontier
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgFrontierReq) MaxPayloadLength(pver uint32) uint32 {
	return uint32(numeric.HashSize) + 8
}

// FrontierPair is one (account, frontier hash) entry in a frontier_req
// response.
type FrontierPair struct {
	Account  numeric.Account
	Frontier numeric.Hash
}

// MsgFrontierResponse streams frontier pairs in account order, terminated
// by a pair of two zero hashes the way the teacher's headers/inv response
// messages signal end-of-stream with a sentinel rather than a separate
// control message.
type MsgFrontierResponse struct {
	Frontiers []FrontierPair
}

// BtcDecode decodes r into the receiver, reading pairs until it sees the
// all-zero sentinel pair or hits max.
func (msg *MsgFrontierResponse) BtcDecode(r io.Reader, pver uint32) error {
	const max = 65536
	var out []FrontierPair
	for {
		if len(out) > max {
			return messageError("MsgFrontierResponse.BtcDecode", "too many frontiers")
		}
		var pair FrontierPair
		if err := readHash(r, &pair.Account); err != nil {
			return err
		}
		if err := readHash(r, &pair.Frontier); err != nil {
			return err
		}
		if numeric.IsZero(pair.Account) && numeric.IsZero(pair.Frontier) {
			break
		}
		out = append(out, pair)
	}
	msg.Frontiers = out
	return nil
}

// BtcEncode encodes the receiver to w, followed by the all-zero sentinel
// pair.
func (msg *MsgFrontierResponse) BtcEncode(w io.Writer, pver uint32) error {
	for _, pair := range msg.Frontiers {
		if err := writeHash(w, pair.Account); err != nil {
			return err
		}
		if err := writeHash(w, pair.Frontier); err != nil {
			return err
		}
	}
	if err := writeHash(w, numeric.ZeroHash); err != nil {
		return err
	}
	return writeHash(w, numeric.ZeroHash)
}

// Command returns the protocol command string for the message.
func (msg *MsgFrontierResponse) Command() string {
	return CmdFrontier
}

// MaxPayloadLength returns the maximum encoded length the receiver may
// produce.
func (msg *MsgFrontierResponse) MaxPayloadLength(pver uint32) uint32 {
	const max = 65536
	return uint32(max+1) * uint32(2*numeric.HashSize)
}
