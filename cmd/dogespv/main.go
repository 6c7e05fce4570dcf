// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dogesuite/doged/blockchain"
	"github.com/dogesuite/doged/headersdb"
	"github.com/dogesuite/doged/peer"
	"github.com/dogesuite/doged/spv"
)

// version is the release string reported by --version.
const version = "0.1.0"

// Exit codes returned by the process.
const (
	exitSuccess   = 0
	exitBadArgs   = 1
	exitIOError   = 2
	exitConsensus = 3
	exitNetwork   = 4
)

func main() {
	os.Exit(realMain())
}

// realMain is the real entry point.  It is factored out so deferred cleanup
// runs before the exit code is delivered.
func realMain() int {
	cfg, params, dial, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	}

	if err := initLogRotator(cfg.logPath()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	defer logRotator.Close()
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	}

	dspvLog.Infof("dogespv %s starting on %s", version, params.Name)

	db := headersdb.New(params, cfg.HeadersMemOnly)
	client := spv.New(&spv.Config{
		ChainParams:          params,
		DB:                   db,
		MaxNodes:             cfg.MaxNodes,
		UserAgentName:        "dogespv",
		UserAgentVersion:     version,
		Dial:                 dial,
		UseCheckpoints:       !cfg.NoCheckpoints,
		FullSync:             cfg.FullSync,
		OldestItemOfInterest: cfg.oldestItemTime(),
		HeaderConnected: func(index *headersdb.BlockIndex) {
			if index.Height%10000 == 0 {
				dspvLog.Infof("Synced to height %d (%v)", index.Height,
					index.Header.Timestamp)
			}
		},
		SyncCompleted: func() {
			dspvLog.Infof("Header sync completed")
		},
	})

	if !cfg.HeadersMemOnly {
		if err := client.Load(cfg.dbPath()); err != nil {
			dspvLog.Errorf("Failed to load headers database: %v", err)
			if errors.Is(err, headersdb.ErrCorruptDatabase) {
				dspvLog.Errorf("Delete %s to resync from scratch",
					cfg.dbPath())
			}
			return exitIOError
		}
	} else {
		if err := client.Load(""); err != nil {
			dspvLog.Errorf("Failed to initialize headers database: %v", err)
			return exitIOError
		}
	}

	client.DiscoverPeers(cfg.Connect)

	// Run until interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := client.Run(ctx); err != nil {
		var ruleErr blockchain.RuleError
		switch {
		case errors.As(err, &ruleErr):
			dspvLog.Errorf("Consensus failure: %v", err)
			return exitConsensus
		case errors.Is(err, headersdb.ErrCorruptDatabase):
			dspvLog.Errorf("Database failure: %v", err)
			return exitIOError
		case errors.Is(err, peer.ErrHandshakeTimeout),
			errors.Is(err, peer.ErrIdleTimeout):
			dspvLog.Errorf("Network failure: %v", err)
			return exitNetwork
		default:
			dspvLog.Errorf("Client failure: %v", err)
			return exitNetwork
		}
	}

	dspvLog.Infof("dogespv shut down cleanly")
	return exitSuccess
}
