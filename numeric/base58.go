// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package numeric

import (
	excbase58 "github.com/EXCCoin/base58"
)

// shortBase58 renders b using the classic base58 alphabet. Used only for
// human-scannable log output; canonical encodings (hex, account address
// encoding) never go through this path.
func shortBase58(b []byte) string {
	return excbase58.Encode(b)
}
