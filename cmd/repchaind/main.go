// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command repchaind runs the node: it loads configuration, opens the
// store, wires up node.Node, and blocks until an interrupt signal asks
// it to shut down cleanly. Grounded on the standard dcrd-family main.go
// shape (os.Exit wrapping a mainImpl that returns an error, a buffered
// interrupt channel from signal.Notify), the same ecosystem convention
// internal/config and internal/nodelog already follow.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mainImpl() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "generate-config":
			return runGenerateConfig(os.Args[2:])
		case "snapshot":
			return runSnapshot(os.Args[2:])
		}
	}
	return runNode(os.Args[1:])
}
