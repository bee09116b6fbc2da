// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import "testing"

func TestTypeString(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{TypeInvalid, "invalid"},
		{TypeOpen, "open"},
		{TypeSend, "send"},
		{TypeReceive, "receive"},
		{TypeChange, "change"},
		{TypeState, "state"},
		{Type(200), "invalid"},
	}
	for _, c := range cases {
		if got := c.typ.String(); got != c.want {
			t.Fatalf("Type(%d).String() = %q, want %q", c.typ, got, c.want)
		}
	}
}

func TestHasAccountField(t *testing.T) {
	cases := []struct {
		typ  Type
		want bool
	}{
		{TypeOpen, true},
		{TypeState, true},
		{TypeSend, false},
		{TypeReceive, false},
		{TypeChange, false},
	}
	for _, c := range cases {
		if got := HasAccountField(c.typ); got != c.want {
			t.Fatalf("HasAccountField(%v) = %v, want %v", c.typ, got, c.want)
		}
	}
}
