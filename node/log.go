// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the package-wide logger used by Node's own lifecycle
// messages. Subsystems it wires (blockprocessor, election, cementing,
// bootstrap) keep their own independent loggers; call their UseLogger
// functions separately.
func UseLogger(logger slog.Logger) {
	log = logger
}
