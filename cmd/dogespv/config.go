// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/decred/go-socks/socks"
	flags "github.com/jessevdk/go-flags"

	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/peer"
)

const (
	defaultLogFilename = "dogespv.log"
	defaultDbFilename  = "headers.db"
	defaultDebugLevel  = "info"
	defaultMaxNodes    = 8
)

// config defines the configuration options for dogespv.
//
// See loadConfig for details on the configuration load process.
type config struct {
	Chain          string   `long:"chain" description:"Chain to sync {main, test, regtest}" default:"main"`
	DataDir        string   `short:"b" long:"datadir" description:"Directory to store the headers database and logs"`
	HeadersMemOnly bool     `long:"headersmemonly" description:"Do not persist the header chain to disk"`
	NoCheckpoints  bool     `long:"nocheckpoints" description:"Sync from genesis instead of bootstrapping from a hard-coded checkpoint"`
	FullSync       bool     `long:"fullsync" description:"Download full blocks, not just headers, for transaction scanning"`
	MaxNodes       int      `long:"maxnodes" description:"Target number of peer connections" default:"8"`
	OldestItem     int64    `long:"oldestitem" description:"Unix timestamp of the oldest item of interest for full sync"`
	Connect        []string `long:"connect" description:"Connect only to the specified peers at startup"`
	Proxy          string   `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser      string   `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass      string   `long:"proxypass" default-mask:"-" description:"Password for proxy server"`
	DebugLevel     string   `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
	ShowVersion    bool     `short:"V" long:"version" description:"Display version information and exit"`
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, *chaincfg.Params, peer.DialFunc, error) {
	cfg := config{
		MaxNodes:   defaultMaxNodes,
		DebugLevel: defaultDebugLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(exitSuccess)
		}
		return nil, nil, nil, err
	}

	if cfg.ShowVersion {
		fmt.Printf("dogespv version %s\n", version)
		os.Exit(exitSuccess)
	}

	var params *chaincfg.Params
	switch cfg.Chain {
	case "main", "mainnet":
		params = &chaincfg.MainNetParams
	case "test", "testnet", "testnet3":
		params = &chaincfg.TestNet3Params
	case "regtest", "regnet":
		params = &chaincfg.RegNetParams
	default:
		return nil, nil, nil, fmt.Errorf("unknown chain %q", cfg.Chain)
	}

	if cfg.MaxNodes < 1 || cfg.MaxNodes > peer.MaxNodes {
		return nil, nil, nil, fmt.Errorf("maxnodes must be between 1 and %d",
			peer.MaxNodes)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(".", "dogespv-data", params.Name)
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, nil, err
	}

	// Setup dial function depending on the specified options.  The default
	// is to use the standard net dialer; a proxy routes everything through
	// SOCKS5 the same way.
	var dial peer.DialFunc
	if cfg.Proxy != "" {
		proxy := &socks.Proxy{
			Addr:     cfg.Proxy,
			Username: cfg.ProxyUser,
			Password: cfg.ProxyPass,
		}
		dial = func(network, addr string) (net.Conn, error) {
			return proxy.Dial(network, addr)
		}
	}

	return &cfg, params, dial, nil
}

// oldestItemTime converts the configured unix timestamp, defaulting to the
// present when unset so a plain --fullsync only scans new blocks.
func (cfg *config) oldestItemTime() time.Time {
	if cfg.OldestItem == 0 {
		return time.Now()
	}
	return time.Unix(cfg.OldestItem, 0)
}

// dbPath returns the path of the headers database file.
func (cfg *config) dbPath() string {
	return filepath.Join(cfg.DataDir, defaultDbFilename)
}

// logPath returns the path of the rotated log file.
func (cfg *config) logPath() string {
	return filepath.Join(cfg.DataDir, defaultLogFilename)
}
