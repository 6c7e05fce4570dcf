// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"

	"github.com/dogesuite/doged/wire"
)

const (
	// DefaultMaxNodes is the connection target used when the caller does
	// not specify one.
	DefaultMaxNodes = 8

	// MaxNodes is the upper bound on the connection target.
	MaxNodes = 128

	// maxFailures is the number of dial or protocol failures after which
	// an address is no longer retried.
	maxFailures = 3

	// eventBufferSize bounds the group event channel.  It is sized for
	// several peers delivering full header batches concurrently.
	eventBufferSize = 256
)

// Group is a pool of outbound peers with a target size.  All methods must
// be called from the single goroutine draining Events; only the dial, read,
// and write loops of the individual peers run concurrently.
type Group struct {
	cfg      *Config
	maxNodes int

	addrs    []string
	addrSeen map[string]struct{}
	failures map[string]int

	peers  map[*Peer]struct{}
	events chan Event
	closed bool
}

// NewGroup returns an empty peer group.  A maxNodes above MaxNodes is
// clamped to MaxNodes; a value below 1 selects DefaultMaxNodes.
func NewGroup(cfg *Config, maxNodes int) *Group {
	if maxNodes < 1 {
		maxNodes = DefaultMaxNodes
	}
	if maxNodes > MaxNodes {
		maxNodes = MaxNodes
	}
	return &Group{
		cfg:      cfg,
		maxNodes: maxNodes,
		addrSeen: make(map[string]struct{}),
		failures: make(map[string]int),
		peers:    make(map[*Peer]struct{}),
		events:   make(chan Event, eventBufferSize),
	}
}

// Events returns the channel every peer event is delivered on.  The caller
// owns draining it.
func (g *Group) Events() <-chan Event {
	return g.events
}

// AddAddresses feeds addresses into the connection pool.  Duplicates are
// ignored.
func (g *Group) AddAddresses(addrs ...string) {
	for _, addr := range addrs {
		if _, ok := g.addrSeen[addr]; ok {
			continue
		}
		g.addrSeen[addr] = struct{}{}
		g.addrs = append(g.addrs, addr)
	}
}

// Discover fills the address pool.  When addrs is non-empty it is used
// verbatim, otherwise the DNS seeds of the active network are resolved.
func (g *Group) Discover(addrs []string) {
	if len(addrs) > 0 {
		g.AddAddresses(addrs...)
		return
	}
	seeded := SeedFromDNS(g.cfg.Params, nil)
	log.Infof("Discovered %d peer addresses from DNS seeds", len(seeded))
	g.AddAddresses(seeded...)
}

// NumPeers returns the number of live peers, connecting ones included.
func (g *Group) NumPeers() int {
	return len(g.peers)
}

// ReadyPeers returns the peers that completed the handshake.
func (g *Group) ReadyPeers() []*Peer {
	ready := make([]*Peer, 0, len(g.peers))
	for p := range g.peers {
		if p.Ready() {
			ready = append(ready, p)
		}
	}
	return ready
}

// ConnectNext opens outbound connections until the group reaches its target
// size or the address pool runs dry.
func (g *Group) ConnectNext() {
	if g.closed {
		return
	}
	for len(g.peers) < g.maxNodes {
		addr, ok := g.nextAddr()
		if !ok {
			return
		}
		p := newPeer(addr, g.cfg, g.events)
		p.setState(StateConnecting)
		g.peers[p] = struct{}{}
		log.Debugf("Connecting to %s", addr)
		go p.connect()
	}
}

// nextAddr pops the next usable address from the pool.
func (g *Group) nextAddr() (string, bool) {
	for len(g.addrs) > 0 {
		addr := g.addrs[0]
		g.addrs = g.addrs[1:]
		if g.failures[addr] >= maxFailures {
			continue
		}
		inUse := false
		for p := range g.peers {
			if p.addr == addr {
				inUse = true
				break
			}
		}
		if inUse {
			continue
		}
		return addr, true
	}
	return "", false
}

// Broadcast queues the message on every ready peer matching the predicate.
// A nil predicate matches all ready peers.  The number of receivers is
// returned.
func (g *Group) Broadcast(msg wire.Message, predicate func(*Peer) bool) int {
	n := 0
	for p := range g.peers {
		if !p.Ready() {
			continue
		}
		if predicate != nil && !predicate(p) {
			continue
		}
		p.QueueMessage(msg)
		n++
	}
	return n
}

// Disconnect closes the peer, charges the address with a failure when reason
// is non-nil, removes the peer from the pool, and backfills the connection
// target.  The caller
// must have re-queued any in-flight work first.
func (g *Group) Disconnect(p *Peer, reason error) {
	if _, ok := g.peers[p]; !ok {
		return
	}
	if reason != nil {
		log.Infof("Dropping peer %s: %v", p.addr, reason)
		g.failures[p.addr]++
	} else {
		log.Debugf("Closing peer %s", p.addr)
	}
	p.Close()
	delete(g.peers, p)
	g.ConnectNext()
}

// CheckTimeouts runs the per-peer deadline scan and drops every peer that
// violated one.
func (g *Group) CheckTimeouts(now time.Time) {
	for p := range g.peers {
		if err := p.CheckTimeouts(now); err != nil {
			g.Disconnect(p, err)
		}
	}
}

// Shutdown closes every peer and stops backfilling.  Events already in
// flight remain readable until the channel drains.
func (g *Group) Shutdown() {
	g.closed = true
	for p := range g.peers {
		p.Close()
		delete(g.peers, p)
	}
}
