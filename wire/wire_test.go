// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

const testPver = 1

func testKey(t *testing.T, b byte) nodecrypto.PrivateKey {
	t.Helper()
	var seed [32]byte
	seed[0] = b
	return nodecrypto.NewPrivateKeyFromSeed(seed)
}

func testBlock(t *testing.T, b byte) blocks.Block {
	t.Helper()
	key := testKey(t, b)
	return blocks.Builder{}.State().
		Account(key.Account()).
		Previous(numeric.ZeroHash).
		Representative(key.Account()).
		Balance(numeric.NewAmount(1)).
		Link(numeric.Hash{b}).
		Build(key)
}

func roundTrip(t *testing.T, msg, out Message) {
	t.Helper()
	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, testPver); err != nil {
		t.Fatalf("BtcEncode: %v", err)
	}
	if err := out.BtcDecode(&buf, testPver); err != nil {
		t.Fatalf("BtcDecode: %v", err)
	}
}
