// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/repchain/repchaind/nodecrypto"
	"github.com/repchain/repchaind/numeric"
)

// fieldRegion concatenates the type byte and variant-specific fields that
// are hashed and that precede the signature/work in the canonical
// encoding. Signature and work are appended separately by each variant's
// Serialize, since they are not part of the hashed region.
func fieldRegion(t Type, fields ...[]byte) []byte {
	out := make([]byte, 0, 1+32*len(fields))
	out = append(out, byte(t))
	for _, f := range fields {
		out = append(out, f...)
	}
	return out
}

func appendSigWork(region []byte, sig nodecrypto.Signature, work numeric.Work) []byte {
	wb := work.Bytes()
	out := make([]byte, 0, len(region)+len(sig)+len(wb))
	out = append(out, region...)
	out = append(out, sig[:]...)
	out = append(out, wb[:]...)
	return out
}

func hashRegion(region []byte) numeric.Hash {
	return nodecrypto.Hash256(region)
}
