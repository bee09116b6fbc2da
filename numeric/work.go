// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package numeric

import "encoding/binary"

// Work is a 64-bit proof-of-work nonce. It is valid for a given root when
// BLAKE2b(work || root) interpreted as a little-endian uint64 is >= the
// applicable difficulty threshold (see nodecrypto.ValidateWork).
type Work uint64

// Bytes renders the work value as 8 little-endian bytes, matching how it is
// fed into the BLAKE2b digest (least-significant byte first, the way the
// reference implementation this spec was distilled from hashes it).
func (w Work) Bytes() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(w))
	return b
}
