// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/repchain/repchaind/store/leveldbstore"
)

// runSnapshot backs `repchaind snapshot <datadir> <destination>`: it
// opens the store read-only-in-effect (CopyDB never mutates it) and
// writes a consistent whole-environment copy, for operators who want a
// point-in-time backup without stopping the node's own data directory.
func runSnapshot(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: repchaind snapshot <datadir> <destination>")
	}
	dataDir, dest := args[0], args[1]

	st, err := leveldbstore.Open(dataDir)
	if err != nil {
		return fmt.Errorf("snapshot: opening %s: %w", dataDir, err)
	}
	defer st.Close()

	if err := st.CopyDB(dest); err != nil {
		return fmt.Errorf("snapshot: copying to %s: %w", dest, err)
	}
	fmt.Printf("wrote snapshot to %s\n", dest)
	return nil
}
