// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire defines the peer-to-peer message shapes referenced by the
// core (spec.md section 6): block gossip, vote solicitation and
// broadcast, and the two bootstrap pull protocols. Layout mirrors the
// teacher's wire.Message idiom (BtcEncode/BtcDecode/Command/
// MaxPayloadLength) but the shapes themselves belong to this domain.
package wire

import (
	"fmt"
	"io"

	dcrwire "github.com/decred/dcrd/wire"
	"github.com/repchain/repchaind/numeric"
)

// Command strings identify a message's concrete type on the wire,
// independent of Go's type system, the same role CmdVersion/CmdBlock
// etc. play in the teacher's package.
const (
	CmdPublish    = "publish"
	CmdConfirmReq = "confirmreq"
	CmdConfirmAck = "confirmack"
	CmdBulkPull   = "bulkpull"
	CmdFrontier   = "frontierreq"
	CmdAscPullReq = "ascpullreq"
	CmdAscPullAck = "ascpullack"
)

// MaxHashesPerMessage bounds confirm_req/confirm_ack hash lists
// so a decoder never allocates an attacker-controlled amount of memory
// before validating anything (spec.md section 6 vote shape: hashes[1..12]).
const MaxHashesPerMessage = 12

// MaxBlocksPerPull bounds how many blocks a single bulk_pull/asc_pull_ack
// response may carry.
const MaxBlocksPerPull = 1024

// MaxBlockEncodingSize bounds a single serialized block: the largest
// variant (State) is type(1) + account(32) + previous(32) +
// representative(32) + balance(16) + link(32) + signature(64) + work(8)
// = 217 bytes; rounded up to leave headroom without a protocol bump.
const MaxBlockEncodingSize = 256

// Message is the interface every shape in this package implements,
// mirroring the teacher's wire.Message.
type Message interface {
	// BtcDecode decodes r into the receiver using this package's wire
	// encoding. Named BtcDecode (not Decode) to match the teacher's
	// Message interface verbatim, not because anything bitcoin-ish is
	// involved.
	BtcDecode(r io.Reader, pver uint32) error

	// BtcEncode encodes the receiver to w.
	BtcEncode(w io.Writer, pver uint32) error

	// Command returns the protocol command string for the message.
	Command() string

	// MaxPayloadLength returns the maximum encoded length the receiver
	// may produce, used by the peer transport to size its read buffer
	// before a single byte of the payload arrives.
	MaxPayloadLength(pver uint32) uint32
}

// messageError formats a decode/encode failure the way the teacher's
// package-level messageError helper does: op name, then detail.
func messageError(op, desc string) error {
	return fmt.Errorf("wire: %s: %s", op, desc)
}

// writeHash writes a fixed 32-byte hash verbatim; hashes have no varint
// length prefix since their size is fixed by the protocol.
func writeHash(w io.Writer, h numeric.Hash) error {
	_, err := w.Write(h[:])
	return err
}

// readHash reads a fixed 32-byte hash.
func readHash(r io.Reader, h *numeric.Hash) error {
	_, err := io.ReadFull(r, h[:])
	return err
}

// writeHashList writes a varint count followed by that many fixed hashes.
func writeHashList(w io.Writer, pver uint32, hashes []numeric.Hash) error {
	if err := dcrwire.WriteVarInt(w, pver, uint64(len(hashes))); err != nil {
		return err
	}
	for _, h := range hashes {
		if err := writeHash(w, h); err != nil {
			return err
		}
	}
	return nil
}

// readHashList reads a varint count followed by that many fixed hashes,
// rejecting a count above max before allocating.
func readHashList(r io.Reader, pver uint32, max uint64) ([]numeric.Hash, error) {
	count, err := dcrwire.ReadVarInt(r, pver)
	if err != nil {
		return nil, err
	}
	if count > max {
		return nil, messageError("readHashList",
			fmt.Sprintf("count %d exceeds max %d", count, max))
	}
	hashes := make([]numeric.Hash, count)
	for i := range hashes {
		if err := readHash(r, &hashes[i]); err != nil {
			return nil, err
		}
	}
	return hashes, nil
}
