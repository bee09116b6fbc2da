// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/repchain/repchaind/internal/config"
)

// runGenerateConfig backs `repchaind generate-config [path]`: it writes
// a fresh repchaind.conf populated with built-in defaults, so a new
// deployment starts from a documented file instead of an empty one.
func runGenerateConfig(args []string) error {
	path := "repchaind.conf"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("generate-config: %w", err)
	}
	fmt.Printf("wrote default configuration to %s\n", path)
	return nil
}
