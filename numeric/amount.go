// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package numeric

import (
	"encoding/binary"
	"math/big"
)

// Amount is a 128-bit unsigned balance. Arithmetic saturates at zero and at
// MaxAmount rather than wrapping, matching the ledger's "Negative" outcome
// being reserved for rule violations, not integer underflow.
type Amount struct {
	Hi uint64
	Lo uint64
}

// MaxAmount is the largest representable Amount, 2^128 - 1.
var MaxAmount = Amount{Hi: ^uint64(0), Lo: ^uint64(0)}

// Zero is the additive identity.
var Zero = Amount{}

// NewAmount builds an Amount from a uint64, useful in tests and genesis
// setup where values fit in 64 bits.
func NewAmount(v uint64) Amount {
	return Amount{Lo: v}
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.Hi < b.Hi:
		return -1
	case a.Hi > b.Hi:
		return 1
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether a is the zero amount.
func (a Amount) IsZero() bool {
	return a.Hi == 0 && a.Lo == 0
}

// Add returns a+b, saturating at MaxAmount on overflow.
func (a Amount) Add(b Amount) Amount {
	lo, carry := bitsAdd64(a.Lo, b.Lo)
	hi1, c1 := bitsAdd64(a.Hi, b.Hi)
	hi2, c2 := bitsAdd64(hi1, carry)
	if c1 != 0 || c2 != 0 {
		return MaxAmount
	}
	return Amount{Hi: hi2, Lo: lo}
}

// Sub returns a-b, saturating at Zero on underflow.
func (a Amount) Sub(b Amount) Amount {
	if a.Cmp(b) < 0 {
		return Zero
	}
	lo, borrow := bitsSub64(a.Lo, b.Lo)
	hi, borrow2 := bitsSub64(a.Hi, b.Hi+borrow)
	if borrow2 != 0 {
		return Zero
	}
	return Amount{Hi: hi, Lo: lo}
}

func bitsAdd64(x, y uint64) (sum, carry uint64) {
	sum = x + y
	if sum < x {
		carry = 1
	}
	return sum, carry
}

func bitsSub64(x, y uint64) (diff, borrow uint64) {
	diff = x - y
	if y > x {
		borrow = 1
	}
	return diff, borrow
}

// Bytes renders a as 16 big-endian bytes, the canonical on-disk and wire
// encoding (spec.md section 6: "big-endian for amounts").
func (a Amount) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], a.Hi)
	binary.BigEndian.PutUint64(b[8:16], a.Lo)
	return b
}

// AmountFromBytes parses the canonical 16-byte big-endian encoding.
func AmountFromBytes(b []byte) Amount {
	var a Amount
	a.Hi = binary.BigEndian.Uint64(b[0:8])
	a.Lo = binary.BigEndian.Uint64(b[8:16])
	return a
}

// String renders the amount in decimal, for logs and diagnostics only; it
// is never used for on-disk or wire encoding.
func (a Amount) String() string {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(a.Hi), 64)
	v.Or(v, new(big.Int).SetUint64(a.Lo))
	return v.String()
}
