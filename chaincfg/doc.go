// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters consumed by the ledger,
// election, and bootstrap cores: the genesis block, the epoch-upgrade
// signer key, proof-of-work difficulty thresholds, and the election/
// cementer tuning constants (bucket count, quorum percentage, cooldowns).
//
// Four standard networks are defined: main, test, sim, and reg (regression
// test). Each has its own genesis variables (left at their zero values in
// every network) and its own set of tuning constants so integration tests
// can run elections and cementing on a much smaller time scale than
// mainnet.
//
//	var params = chaincfg.MainNetParams()
//	if *simnet {
//	        params = chaincfg.SimNetParams()
//	}
package chaincfg
