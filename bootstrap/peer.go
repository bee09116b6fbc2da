// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bootstrap

import (
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/wire"
)

// State is a bootstrap peer connection's position in the pull state
// machine (spec.md section 4.7).
type State int

const (
	Idle State = iota
	FrontierReq
	PullAccounts
	BulkPullBlocks
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FrontierReq:
		return "frontier-req"
	case PullAccounts:
		return "pull-accounts"
	case BulkPullBlocks:
		return "bulk-pull-blocks"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// PeerConn is the narrow capability the coordinator needs from a
// connected peer: send a request message and identify itself for
// scheduling and penalization. The actual transport (dial, handshake,
// message framing) lies outside this package, and no implementation of
// it exists in this module; this package only drives the
// request/response protocol against the interface.
type PeerConn interface {
	SendFrontierReq(*wire.MsgFrontierReq) error
	SendBulkPull(*wire.MsgBulkPull) error
	SendAscPullReq(*wire.MsgAscPullReq) error
	Addr() string
	Disconnect()
}

// session tracks one peer's progress through the pull state machine.
type session struct {
	peer  PeerConn
	state State

	// nextAccount is the frontier cursor for a PullAccounts peer: the
	// next start_account to request in the following frontier_req.
	nextAccount numeric.Account

	// inFlight counts pulls this peer currently has outstanding, bounded
	// by the coordinator's pull window (spec.md section 4.7: "a sliding
	// window of in-flight pulls").
	inFlight int

	failures int
}
