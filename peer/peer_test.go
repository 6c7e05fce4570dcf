// Copyright (c) 2016-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dogesuite/doged/chaincfg"
)

// TestSeedFromDNS exercises DNS seeding with a fixed resolver.
func TestSeedFromDNS(t *testing.T) {
	lookup := func(host string) ([]net.IP, error) {
		switch host {
		case "seed.dogecoin.com":
			return []net.IP{
				net.ParseIP("10.0.0.1"),
				net.ParseIP("10.0.0.2"),
			}, nil
		case "seed.multidoge.org":
			return nil, errors.New("no such host")
		default:
			return []net.IP{net.ParseIP("10.0.0.3")}, nil
		}
	}

	addrs := SeedFromDNS(&chaincfg.MainNetParams, lookup)
	if len(addrs) < 3 {
		t.Fatalf("SeedFromDNS returned %d addresses, want at least 3",
			len(addrs))
	}
	for _, addr := range addrs {
		_, port, err := net.SplitHostPort(addr)
		if err != nil {
			t.Fatalf("bad seeded address %q: %v", addr, err)
		}
		if port != chaincfg.MainNetParams.DefaultPort {
			t.Fatalf("seeded address %q has wrong port", addr)
		}
	}
}

// TestGroupAddressPool exercises deduplication and failure-based retirement
// of pool addresses.
func TestGroupAddressPool(t *testing.T) {
	g := NewGroup(&Config{Params: &chaincfg.RegNetParams}, 2)

	g.AddAddresses("10.0.0.1:18444", "10.0.0.1:18444", "10.0.0.2:18444")
	if len(g.addrs) != 2 {
		t.Fatalf("pool has %d addresses, want 2", len(g.addrs))
	}

	// Retire an address by charging it with failures.
	g.failures["10.0.0.1:18444"] = maxFailures
	addr, ok := g.nextAddr()
	if !ok || addr != "10.0.0.2:18444" {
		t.Fatalf("nextAddr returned %q (%v), want 10.0.0.2:18444", addr, ok)
	}

	// The pool is now dry.
	if _, ok := g.nextAddr(); ok {
		t.Fatalf("nextAddr succeeded on a dry pool")
	}
}

// TestPeerTimeouts exercises the deadline scan state machine without real
// sockets.
func TestPeerTimeouts(t *testing.T) {
	events := make(chan Event, 8)
	p := newPeer("10.0.0.1:22556", &Config{
		Params: &chaincfg.MainNetParams,
	}, events)

	now := time.Now()

	// A peer stuck in the handshake trips the handshake deadline.
	p.setState(StateHandshakeSent)
	p.stateSince = now.Add(-HandshakeTimeout - time.Second)
	if err := p.CheckTimeouts(now); err != ErrHandshakeTimeout {
		t.Fatalf("handshake deadline: got %v, want %v", err,
			ErrHandshakeTimeout)
	}

	// A ready but idle peer gets a ping probe.
	p.setState(StateReady)
	p.lastRecv = now.Add(-IdleTimeout - time.Second)
	if err := p.CheckTimeouts(now); err != nil {
		t.Fatalf("idle probe: %v", err)
	}
	if !p.pingPending {
		t.Fatalf("idle peer was not pinged")
	}

	// An unanswered ping trips the ping deadline.
	p.pingSent = now.Add(-PingTimeout - time.Second)
	if err := p.CheckTimeouts(now); err != ErrIdleTimeout {
		t.Fatalf("ping deadline: got %v, want %v", err, ErrIdleTimeout)
	}

	// A stalled headers request trips the request deadline.
	p.pingPending = false
	p.lastRecv = now
	p.HeadersRequestedAt = now.Add(-HeadersRequestTimeout - time.Second)
	if err := p.CheckTimeouts(now); err != ErrStalledRequest {
		t.Fatalf("request deadline: got %v, want %v", err,
			ErrStalledRequest)
	}
}

// TestStateString ensures every state prints a name.
func TestStateString(t *testing.T) {
	states := []State{StateIdle, StateConnecting, StateHandshakeSent,
		StateHandshakeComplete, StateReady, StateClosed}
	for _, s := range states {
		if s.String() == "unknown" {
			t.Errorf("state %d has no name", int(s))
		}
	}
}
