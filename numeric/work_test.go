// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package numeric

import "testing"

func TestWorkBytesIsLittleEndian(t *testing.T) {
	w := Work(1)
	b := w.Bytes()
	if b[0] != 1 {
		t.Fatalf("Bytes()[0] = %d, want 1 for a little-endian encoding of 1", b[0])
	}
	for i := 1; i < 8; i++ {
		if b[i] != 0 {
			t.Fatalf("Bytes()[%d] = %d, want 0", i, b[i])
		}
	}
}

func TestWorkBytesRoundTripsViaShifts(t *testing.T) {
	w := Work(0x0102030405060708)
	b := w.Bytes()
	var got uint64
	for i := 7; i >= 0; i-- {
		got = got<<8 | uint64(b[i])
	}
	if Work(got) != w {
		t.Fatalf("reassembled work = %#x, want %#x", got, uint64(w))
	}
}
