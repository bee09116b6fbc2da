// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"encoding/binary"
	"fmt"

	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// Decode parses the canonical Serialize() encoding of any variant back
// into a typed Block. The block's Hash is recomputed from the parsed
// field region rather than trusted from the wire, matching the "Hash is
// deterministic" invariant: a corrupted encoding simply hashes to
// something else, which the caller (the block table, or the validator's
// signature check) will reject.
func Decode(data []byte) (Block, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("blocks: empty encoding")
	}
	t := Type(data[0])
	body := data[1:]
	switch t {
	case TypeOpen:
		return decodeOpen(body)
	case TypeSend:
		return decodeSend(body)
	case TypeReceive:
		return decodeReceive(body)
	case TypeChange:
		return decodeChange(body)
	case TypeState:
		return decodeState(body)
	default:
		return nil, fmt.Errorf("blocks: unknown type byte %d", data[0])
	}
}

func splitTail(body []byte, fieldLen int) (fields []byte, sig nodecrypto.Signature, work numeric.Work, err error) {
	want := fieldLen + nodecrypto.SignatureSize + 8
	if len(body) != want {
		return nil, sig, 0, fmt.Errorf("blocks: bad encoding length %d, want %d", len(body), want)
	}
	fields = body[:fieldLen]
	copy(sig[:], body[fieldLen:fieldLen+nodecrypto.SignatureSize])
	work = numeric.Work(binary.LittleEndian.Uint64(body[fieldLen+nodecrypto.SignatureSize:]))
	return fields, sig, work, nil
}

func decodeOpen(body []byte) (*OpenBlock, error) {
	fields, sig, work, err := splitTail(body, 32*3)
	if err != nil {
		return nil, err
	}
	var b OpenBlock
	copy(b.source[:], fields[0:32])
	copy(b.representative[:], fields[32:64])
	copy(b.account[:], fields[64:96])
	b.signature = sig
	b.work = work
	b.hash = hashRegion(fieldRegion(TypeOpen, b.source[:], b.representative[:], b.account[:]))
	return &b, nil
}

func decodeSend(body []byte) (*SendBlock, error) {
	fields, sig, work, err := splitTail(body, 32+32+16)
	if err != nil {
		return nil, err
	}
	var b SendBlock
	copy(b.previous[:], fields[0:32])
	copy(b.destination[:], fields[32:64])
	b.balance = numeric.AmountFromBytes(fields[64:80])
	b.signature = sig
	b.work = work
	bal := b.balance.Bytes()
	b.hash = hashRegion(fieldRegion(TypeSend, b.previous[:], b.destination[:], bal[:]))
	return &b, nil
}

func decodeReceive(body []byte) (*ReceiveBlock, error) {
	fields, sig, work, err := splitTail(body, 32*2)
	if err != nil {
		return nil, err
	}
	var b ReceiveBlock
	copy(b.previous[:], fields[0:32])
	copy(b.source[:], fields[32:64])
	b.signature = sig
	b.work = work
	b.hash = hashRegion(fieldRegion(TypeReceive, b.previous[:], b.source[:]))
	return &b, nil
}

func decodeChange(body []byte) (*ChangeBlock, error) {
	fields, sig, work, err := splitTail(body, 32*2)
	if err != nil {
		return nil, err
	}
	var b ChangeBlock
	copy(b.previous[:], fields[0:32])
	copy(b.representative[:], fields[32:64])
	b.signature = sig
	b.work = work
	b.hash = hashRegion(fieldRegion(TypeChange, b.previous[:], b.representative[:]))
	return &b, nil
}

func decodeState(body []byte) (*StateBlock, error) {
	fields, sig, work, err := splitTail(body, 32+32+32+16+32)
	if err != nil {
		return nil, err
	}
	var b StateBlock
	copy(b.account[:], fields[0:32])
	copy(b.previous[:], fields[32:64])
	copy(b.representative[:], fields[64:96])
	b.balance = numeric.AmountFromBytes(fields[96:112])
	copy(b.link[:], fields[112:144])
	b.signature = sig
	b.work = work
	bal := b.balance.Bytes()
	b.hash = hashRegion(fieldRegion(TypeState, b.account[:], b.previous[:], b.representative[:], bal[:], b.link[:]))
	return &b, nil
}

// SetResolvedAccount is implemented by the three legacy variants that do
// not carry their account field directly, so the ledger can attach the
// account resolved from the chain during decode/validate.
type ResolvableAccount interface {
	SetResolvedAccount(numeric.Account)
}
