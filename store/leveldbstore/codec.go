// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldbstore

import (
	"encoding/binary"
	"fmt"

	"github.com/repchain/repchaind/blocks"
	"github.com/repchain/repchaind/ledger/sideband"
	"github.com/repchain/repchaind/numeric"
	"github.com/repchain/repchaind/store"
)

// Table key prefixes. A single flat keyspace (one leveldb.DB) stands in
// for the teacher's per-table buckets (spec.md section 6 describes tables
// "keyed by the entity's canonical bytes"); the prefix byte plays the role
// a separate bucket/database would in an LMDB-style environment.
const (
	prefixAccount   byte = 'A'
	prefixBlock     byte = 'B'
	prefixPending   byte = 'P'
	prefixPruned    byte = 'R'
	prefixConfirmed byte = 'C'
	prefixFrontier  byte = 'F'
	prefixReceivedBy byte = 'V'
)

func accountKey(a numeric.Account) []byte { return append([]byte{prefixAccount}, a[:]...) }
func blockKey(h numeric.Hash) []byte      { return append([]byte{prefixBlock}, h[:]...) }
func prunedKey(h numeric.Hash) []byte     { return append([]byte{prefixPruned}, h[:]...) }
func confirmedKey(a numeric.Account) []byte { return append([]byte{prefixConfirmed}, a[:]...) }
func frontierKey(a numeric.Account) []byte  { return append([]byte{prefixFrontier}, a[:]...) }
func receivedByKey(h numeric.Hash) []byte   { return append([]byte{prefixReceivedBy}, h[:]...) }

func pendingKeyBytes(k store.PendingKey) []byte {
	out := make([]byte, 0, 65)
	out = append(out, prefixPending)
	out = append(out, k.Destination[:]...)
	out = append(out, k.SendHash[:]...)
	return out
}

func decodePendingKey(b []byte) store.PendingKey {
	var k store.PendingKey
	copy(k.Destination[:], b[1:33])
	copy(k.SendHash[:], b[33:65])
	return k
}

func encodeAccountInfo(info store.AccountInfo) []byte {
	out := make([]byte, 0, 32+32+32+16+8+8+1)
	out = append(out, info.Head[:]...)
	out = append(out, info.Open[:]...)
	out = append(out, info.Representative[:]...)
	bal := info.Balance.Bytes()
	out = append(out, bal[:]...)
	var modified [8]byte
	binary.BigEndian.PutUint64(modified[:], uint64(info.Modified))
	out = append(out, modified[:]...)
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], info.BlockCount)
	out = append(out, count[:]...)
	out = append(out, info.Epoch)
	return out
}

func decodeAccountInfo(b []byte) (store.AccountInfo, error) {
	if len(b) != 32+32+32+16+8+8+1 {
		return store.AccountInfo{}, fmt.Errorf("leveldbstore: bad account info length %d", len(b))
	}
	var info store.AccountInfo
	copy(info.Head[:], b[0:32])
	copy(info.Open[:], b[32:64])
	copy(info.Representative[:], b[64:96])
	info.Balance = numeric.AmountFromBytes(b[96:112])
	info.Modified = int64(binary.BigEndian.Uint64(b[112:120]))
	info.BlockCount = binary.BigEndian.Uint64(b[120:128])
	info.Epoch = b[128]
	return info, nil
}

func encodePendingInfo(info store.PendingInfo) []byte {
	out := make([]byte, 0, 32+16+1)
	out = append(out, info.Source[:]...)
	amt := info.Amount.Bytes()
	out = append(out, amt[:]...)
	out = append(out, info.Epoch)
	return out
}

func decodePendingInfo(b []byte) (store.PendingInfo, error) {
	if len(b) != 32+16+1 {
		return store.PendingInfo{}, fmt.Errorf("leveldbstore: bad pending info length %d", len(b))
	}
	var info store.PendingInfo
	copy(info.Source[:], b[0:32])
	info.Amount = numeric.AmountFromBytes(b[32:48])
	info.Epoch = b[48]
	return info, nil
}

func encodeConfirmationHeight(ch store.ConfirmationHeight) []byte {
	out := make([]byte, 8+32)
	binary.BigEndian.PutUint64(out[:8], ch.Height)
	copy(out[8:], ch.Frontier[:])
	return out
}

func decodeConfirmationHeight(b []byte) (store.ConfirmationHeight, error) {
	if len(b) != 8+32 {
		return store.ConfirmationHeight{}, fmt.Errorf("leveldbstore: bad confirmation height length %d", len(b))
	}
	var ch store.ConfirmationHeight
	ch.Height = binary.BigEndian.Uint64(b[:8])
	copy(ch.Frontier[:], b[8:])
	return ch, nil
}

// sideband encoding: height(8) timestamp(8) epoch(1) flags(1) successor(32)
// account(32) balance(16) representative(32)
const sidebandLen = 8 + 8 + 1 + 1 + 32 + 32 + 16 + 32

func encodeSideband(sb sideband.Sideband) []byte {
	out := make([]byte, sidebandLen)
	binary.BigEndian.PutUint64(out[0:8], sb.Height)
	binary.BigEndian.PutUint64(out[8:16], uint64(sb.Timestamp))
	out[16] = sb.Epoch
	var flags byte
	if sb.IsSend {
		flags |= 1
	}
	if sb.IsReceive {
		flags |= 2
	}
	if sb.IsEpoch {
		flags |= 4
	}
	out[17] = flags
	copy(out[18:50], sb.Successor[:])
	copy(out[50:82], sb.Account[:])
	bal := sb.Balance.Bytes()
	copy(out[82:98], bal[:])
	copy(out[98:130], sb.Representative[:])
	return out
}

func decodeSideband(b []byte) sideband.Sideband {
	var sb sideband.Sideband
	sb.Height = binary.BigEndian.Uint64(b[0:8])
	sb.Timestamp = int64(binary.BigEndian.Uint64(b[8:16]))
	sb.Epoch = b[16]
	flags := b[17]
	sb.IsSend = flags&1 != 0
	sb.IsReceive = flags&2 != 0
	sb.IsEpoch = flags&4 != 0
	copy(sb.Successor[:], b[18:50])
	copy(sb.Account[:], b[50:82])
	sb.Balance = numeric.AmountFromBytes(b[82:98])
	copy(sb.Representative[:], b[98:130])
	return sb
}

// encodeStoredBlock lays out [sideband][resolved account][block.Serialize()].
// The resolved account is redundant for Open/State (which carry it inline)
// but lets legacy Send/Receive/Change round-trip without re-resolving
// against the chain on every load.
func encodeStoredBlock(sb store.StoredBlock) []byte {
	sideb := encodeSideband(sb.Sideband)
	acct := sb.Block.Account()
	raw := sb.Block.Serialize()
	out := make([]byte, 0, len(sideb)+32+len(raw))
	out = append(out, sideb...)
	out = append(out, acct[:]...)
	out = append(out, raw...)
	return out
}

func decodeStoredBlock(b []byte) (store.StoredBlock, error) {
	if len(b) < sidebandLen+32 {
		return store.StoredBlock{}, fmt.Errorf("leveldbstore: short stored block encoding")
	}
	sb := decodeSideband(b[:sidebandLen])
	var acct numeric.Account
	copy(acct[:], b[sidebandLen:sidebandLen+32])
	blk, err := blocks.Decode(b[sidebandLen+32:])
	if err != nil {
		return store.StoredBlock{}, err
	}
	if ra, ok := blk.(blocks.ResolvableAccount); ok {
		ra.SetResolvedAccount(acct)
	}
	return store.StoredBlock{Block: blk, Sideband: sb}, nil
}
