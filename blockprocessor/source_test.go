// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockprocessor

import "testing"

func TestSourceString(t *testing.T) {
	cases := []struct {
		s    Source
		want string
	}{
		{SourceLive, "live"},
		{SourceBootstrap, "bootstrap"},
		{SourceUnchecked, "unchecked"},
		{SourceLocal, "local"},
		{SourceForced, "forced"},
		{SourceReplay, "replay"},
		{Source(200), "unknown"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Errorf("Source(%d).String() = %q, want %q", c.s, got, c.want)
		}
	}
}

func TestDropsUnderBackpressure(t *testing.T) {
	cases := []struct {
		s    Source
		want bool
	}{
		{SourceLive, true},
		{SourceBootstrap, true},
		{SourceUnchecked, true},
		{SourceReplay, true},
		{SourceLocal, false},
		{SourceForced, false},
	}
	for _, c := range cases {
		if got := c.s.dropsUnderBackpressure(); got != c.want {
			t.Errorf("%v.dropsUnderBackpressure() = %v, want %v", c.s, got, c.want)
		}
	}
}
