// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockprocessor

import "github.com/decred/slog"

// log is the package-level logger used by this package. It defaults to
// disabled so tests and other non-node callers don't need to configure
// one; node wiring calls UseLogger with a real backend logger.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}
