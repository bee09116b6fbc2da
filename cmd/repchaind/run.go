// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/repchain/repchaind/chaincfg"
	"github.com/repchain/repchaind/internal/config"
	"github.com/repchain/repchaind/internal/nodelog"
	"github.com/repchain/repchaind/node"
	"github.com/repchain/repchaind/store/leveldbstore"

	"github.com/repchain/repchaind/blockprocessor"
	"github.com/repchain/repchaind/bootstrap"
	"github.com/repchain/repchaind/cementing"
	"github.com/repchain/repchaind/election"
)

func runNode(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if err := nodelog.InitLogRotator(cfg.LogFile()); err != nil {
		return fmt.Errorf("initializing log rotator: %w", err)
	}
	defer nodelog.Close()
	nodelog.SetLogLevels(cfg.DebugLevel)

	node.UseLogger(nodelog.Logger("SRVR"))
	blockprocessor.UseLogger(nodelog.Logger("PROC"))
	election.UseLogger(nodelog.Logger("ELCT"))
	cementing.UseLogger(nodelog.Logger("CMNT"))
	bootstrap.UseLogger(nodelog.Logger("BOOT"))

	params, err := netParams(cfg.Network)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	st, err := leveldbstore.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	n := node.New(st, params)
	n.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	nodelog.Logger("SRVR").Info("received interrupt, shutting down")

	n.Stop()
	return nil
}

func netParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet", "":
		return chaincfg.MainNetParams(), nil
	case "testnet":
		return chaincfg.TestNetParams(), nil
	case "simnet":
		return chaincfg.SimNetParams(), nil
	case "regnet":
		return chaincfg.RegNetParams(), nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}
