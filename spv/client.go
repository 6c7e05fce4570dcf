// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spv

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/headersdb"
	"github.com/dogesuite/doged/peer"
	"github.com/dogesuite/doged/wire"
)

// State is the bitmask of sync phases the client is currently in.
type State uint32

const (
	// StateHeaderSync is set while the local header chain lags behind the
	// best height any ready peer advertised.
	StateHeaderSync State = 1 << 0

	// StateFullBlockSync is set when blocks newer than the oldest item of
	// interest are downloaded in full for transaction filtering.
	StateFullBlockSync State = 1 << 1
)

const (
	// headersRequestInterval is the minimum time between getheaders
	// requests while header syncing.
	headersRequestInterval = 30 * time.Second

	// stateCheckInterval is the cadence of the sync state re-evaluation.
	stateCheckInterval = 5 * time.Second

	// maxBlocksInFlightPerPeer bounds the number of outstanding block
	// requests per peer.
	maxBlocksInFlightPerPeer = 16

	// misbehaviourThreshold is the score at which a peer is dropped.
	misbehaviourThreshold = 100
)

// Config holds the callers knobs and callbacks for a Client.
//
// All callbacks are invoked on the loop goroutine and must not block; a slow
// callback stalls all peers.  Panics inside callbacks are the caller's
// responsibility.
type Config struct {
	// ChainParams identifies the network to sync.
	ChainParams *chaincfg.Params

	// DB is the headers database.  When nil, an in-memory database is
	// created.
	DB headersdb.DB

	// MaxNodes is the connection target for the peer group.  Values above
	// peer.MaxNodes are clamped to it; values below 1 select
	// peer.DefaultMaxNodes.
	MaxNodes int

	// UserAgentName and UserAgentVersion identify this client on the
	// network.
	UserAgentName    string
	UserAgentVersion string

	// Dial optionally overrides the dialer used for outbound connections,
	// e.g. to route through a SOCKS proxy.
	Dial peer.DialFunc

	// UseCheckpoints bootstraps a fresh database from the most recent
	// hard-coded checkpoint instead of syncing from genesis.
	UseCheckpoints bool

	// FullSync requests full blocks, not just headers, for everything
	// newer than OldestItemOfInterest.
	FullSync bool

	// OldestItemOfInterest is the earliest timestamp transactions are
	// relevant for.  Only meaningful with FullSync.
	OldestItemOfInterest time.Time

	// HeaderConnected is invoked for every header newly connected to the
	// chain.
	HeaderConnected func(index *headersdb.BlockIndex)

	// SyncCompleted is invoked once when header sync first completes.
	SyncCompleted func()

	// HeaderMessageProcessed is invoked after each processed headers
	// message with the peer it came from and the current tip.  Returning
	// false stops the client.
	HeaderMessageProcessed func(p *peer.Peer, tip *headersdb.BlockIndex) bool

	// SyncTransaction is invoked for every transaction of every full block
	// downloaded, in block order.  pos is the 0-based position of the
	// transaction within its block.  Relevance filtering is entirely the
	// callback's policy.
	SyncTransaction func(tx *wire.MsgTx, pos int, index *headersdb.BlockIndex)
}

// Client is a simplified payment verification client: it maintains a header
// chain from a group of peers and optionally fetches full blocks for
// transaction filtering.  The client is single-threaded; everything runs on
// the goroutine that called Run.
type Client struct {
	cfg    Config
	params *chaincfg.Params
	db     headersdb.DB
	group  *peer.Group

	state               State
	lastHeadersRequest  time.Time
	lastStateCheck      time.Time
	calledSyncCompleted bool

	pendingBlocks  []chainhash.Hash
	inFlightBlocks map[chainhash.Hash]*peer.Peer

	stopping bool
}

// New returns a client for the given configuration.
func New(cfg *Config) *Client {
	db := cfg.DB
	if db == nil {
		db = headersdb.New(cfg.ChainParams, true)
	}

	group := peer.NewGroup(&peer.Config{
		Params:           cfg.ChainParams,
		UserAgentName:    cfg.UserAgentName,
		UserAgentVersion: cfg.UserAgentVersion,
		Dial:             cfg.Dial,
	}, cfg.MaxNodes)

	c := &Client{
		cfg:            *cfg,
		params:         cfg.ChainParams,
		db:             db,
		group:          group,
		state:          StateHeaderSync,
		inFlightBlocks: make(map[chainhash.Hash]*peer.Peer),
	}
	if cfg.FullSync {
		c.state |= StateFullBlockSync
	}
	return c
}

// DB returns the headers database owned by the client.  It must only be
// accessed from the loop goroutine or while the client is not running.
func (c *Client) DB() headersdb.DB {
	return c.db
}

// State returns the current sync state bitmask.
func (c *Client) State() State {
	return c.state
}

// Load opens the headers database file, replays it, and applies the
// checkpoint bootstrap for fresh databases when enabled.
func (c *Client) Load(path string) error {
	if err := c.db.Load(path); err != nil {
		return err
	}

	// Bootstrap from the most recent checkpoint when the database is still
	// at genesis.  No checkpoint is applied when FullSync is set, whatever
	// OldestItemOfInterest is, since checkpoints carry no timestamp to
	// compare it with.
	if c.cfg.UseCheckpoints && !c.db.HasCheckpointStart() &&
		c.db.ChainTip().Height == 0 {

		if cp := c.params.LatestCheckpoint(); cp != nil && !c.cfg.FullSync {
			if err := c.db.SetCheckpointStart(*cp.Hash, cp.Height); err != nil {
				return err
			}
		}
	}
	return nil
}

// DiscoverPeers fills the peer group's address pool.  When addrs is empty,
// the network's DNS seeds are resolved.
func (c *Client) DiscoverPeers(addrs []string) {
	c.group.Discover(addrs)
}

// Run drives the client until the context is cancelled or a callback stops
// it.  It opens connections, performs the sync, and dispatches callbacks.
// All peer I/O multiplexes onto this goroutine; there is no shared mutable
// state across threads.
func (c *Client) Run(ctx context.Context) error {
	c.group.ConnectNext()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		// The quit flag is checked at the top of each tick so callbacks can
		// stop the loop deterministically.
		if c.stopping {
			c.shutdown()
			return nil
		}

		select {
		case <-ctx.Done():
			c.shutdown()
			return nil

		case ev := <-c.group.Events():
			c.handleEvent(ev)

		case now := <-ticker.C:
			c.tick(now)
		}
	}
}

// Stop flags the client to shut down at the next loop iteration.  It is safe
// to call from callbacks.
func (c *Client) Stop() {
	c.stopping = true
}

// shutdown closes all peers and the database file.
func (c *Client) shutdown() {
	c.group.Shutdown()

	// Drain events already queued by the peer loops so their goroutines
	// can exit.
	for {
		select {
		case <-c.group.Events():
			continue
		default:
		}
		break
	}

	if err := c.db.Close(); err != nil {
		log.Errorf("Failed to close headers database: %v", err)
	}
	log.Infof("SPV client stopped")
}

// tick runs the periodic maintenance: timeout scans, sync state checks,
// header requests, block fetching, and connection backfill.
func (c *Client) tick(now time.Time) {
	c.group.CheckTimeouts(now)

	if now.Sub(c.lastStateCheck) > stateCheckInterval {
		c.checkState()
		c.lastStateCheck = now
	}

	if c.state&StateHeaderSync != 0 &&
		now.Sub(c.lastHeadersRequest) > headersRequestInterval {
		c.RequestHeaders()
	}

	if c.state&StateFullBlockSync != 0 {
		c.fetchBlocks()
	}

	c.group.ConnectNext()
}

// checkState re-evaluates the header sync flag against the best height any
// ready peer advertised.
func (c *Client) checkState() {
	tip := c.db.ChainTip()
	for _, p := range c.group.ReadyPeers() {
		if p.StartHeight() > tip.Height {
			c.state |= StateHeaderSync
			return
		}
	}
}

// handleEvent processes one peer event: a completed dial, a failure, or a
// message.  Messages are processed to completion in arrival order.
func (c *Client) handleEvent(ev peer.Event) {
	switch {
	case ev.Err != nil:
		c.releaseInFlight(ev.Peer)
		c.group.Disconnect(ev.Peer, ev.Err)

	case ev.Connected:
		if err := ev.Peer.OnConnected(); err != nil {
			c.group.Disconnect(ev.Peer, err)
		}

	case ev.Msg != nil:
		wasReady := ev.Peer.Ready()
		handled, err := ev.Peer.HandleMessage(ev.Msg)
		if err != nil {
			c.releaseInFlight(ev.Peer)
			c.group.Disconnect(ev.Peer, err)
			return
		}
		if handled {
			if !wasReady && ev.Peer.Ready() {
				// Grow the address pool and kick off header sync as soon
				// as the first peer is usable.
				ev.Peer.QueueMessage(wire.NewMsgGetAddr())
				if c.state&StateHeaderSync != 0 {
					c.RequestHeaders()
				}
			}
			return
		}
		c.dispatch(ev.Peer, ev.Msg)
	}
}

// dispatch routes a protocol message that the peer itself did not consume.
func (c *Client) dispatch(p *peer.Peer, msg wire.Message) {
	switch m := msg.(type) {
	case *wire.MsgHeaders:
		c.onHeaders(p, m)

	case *wire.MsgBlock:
		c.onBlock(p, m)

	case *wire.MsgInv:
		c.onInv(p, m)

	case *wire.MsgAddr:
		for _, na := range m.AddrList {
			if na.IP == nil {
				continue
			}
			c.group.AddAddresses(net.JoinHostPort(na.IP.String(),
				strconv.Itoa(int(na.Port))))
		}

	case *wire.MsgReject:
		log.Warnf("Peer %s rejected %s: %s (%s)", p.Addr(), m.Cmd, m.Reason,
			m.Code)

	default:
		log.Tracef("Ignoring %s from %s", msg.Command(), p.Addr())
	}
}

// RequestHeaders sends a getheaders request to one ready peer that has no
// request outstanding.  The request carries a locator for the current main
// chain so the peer can find the fork point.
func (c *Client) RequestHeaders() bool {
	var target *peer.Peer
	for _, p := range c.group.ReadyPeers() {
		if p.HeadersRequestedAt.IsZero() {
			target = p
			break
		}
	}
	if target == nil {
		return false
	}

	c.requestHeadersFromPeer(target)
	return true
}

// requestHeadersFromPeer issues the getheaders message to the given peer.
func (c *Client) requestHeadersFromPeer(p *peer.Peer) {
	msg := wire.NewMsgGetHeaders()
	msg.ProtocolVersion = p.Protocol()
	for _, hash := range c.db.BlockLocator() {
		if err := msg.AddBlockLocatorHash(hash); err != nil {
			break
		}
	}

	p.QueueMessage(msg)
	now := time.Now()
	p.HeadersRequestedAt = now
	c.lastHeadersRequest = now
	log.Debugf("Requested headers from %s above height %d", p.Addr(),
		c.db.ChainTip().Height)
}

// onHeaders connects a batch of headers delivered by a peer.  The first
// failure to connect closes the peer.  A short batch completes header sync;
// a full batch triggers an immediate follow-up request to the same peer.
func (c *Client) onHeaders(p *peer.Peer, msg *wire.MsgHeaders) {
	p.HeadersRequestedAt = time.Time{}

	for _, hdr := range msg.Headers {
		hash := hdr.BlockHash()
		known := c.db.Find(&hash) != nil

		index, _, err := c.db.ConnectHeader(hdr, false)
		if err != nil {
			// A peer serving headers that do not connect or fail
			// validation is not worth keeping.
			log.Infof("Header %v from %s failed to connect: %v", hash,
				p.Addr(), err)
			p.AddMisbehaviour(misbehaviourThreshold)
			c.releaseInFlight(p)
			c.group.Disconnect(p, err)
			break
		}
		if known {
			continue
		}

		if c.cfg.HeaderConnected != nil {
			c.cfg.HeaderConnected(index)
		}

		// Queue the block for download when its transactions are new
		// enough to matter.
		if c.state&StateFullBlockSync != 0 &&
			!index.Header.Timestamp.Before(c.cfg.OldestItemOfInterest) {
			c.pendingBlocks = append(c.pendingBlocks, index.Hash)
		}
	}

	if c.cfg.HeaderMessageProcessed != nil {
		if !c.cfg.HeaderMessageProcessed(p, c.db.ChainTip()) {
			c.Stop()
			return
		}
	}

	if len(msg.Headers) < wire.MaxBlockHeadersPerMsg {
		// The peer has nothing further; header sync is complete.
		if c.state&StateHeaderSync != 0 {
			c.state &^= StateHeaderSync
			log.Infof("Header sync complete at height %d",
				c.db.ChainTip().Height)
			if !c.calledSyncCompleted {
				c.calledSyncCompleted = true
				if c.cfg.SyncCompleted != nil {
					c.cfg.SyncCompleted()
				}
			}
		}
		return
	}

	// Full batch; the peer likely has more.
	if p.Ready() {
		c.requestHeadersFromPeer(p)
	}
}

// onInv requests announced blocks when full block sync is active.
func (c *Client) onInv(p *peer.Peer, msg *wire.MsgInv) {
	if c.state&StateFullBlockSync == 0 {
		return
	}
	for _, iv := range msg.InvList {
		if iv.Type != wire.InvTypeBlock {
			continue
		}
		if c.db.Find(&iv.Hash) != nil {
			continue
		}
		// An unknown announced block means headers moved on; ask for them.
		c.RequestHeaders()
	}
}

// onBlock feeds every transaction of a delivered block to the
// SyncTransaction callback in block order.
func (c *Client) onBlock(p *peer.Peer, msg *wire.MsgBlock) {
	hash := msg.BlockHash()
	if owner, ok := c.inFlightBlocks[hash]; ok && owner == p {
		delete(c.inFlightBlocks, hash)
		if p.BlocksInFlight > 0 {
			p.BlocksInFlight--
		}
	}

	index := c.db.Find(&hash)
	if index == nil {
		log.Debugf("Ignoring block %v with no connected header", hash)
		return
	}

	if c.cfg.SyncTransaction != nil {
		for pos, tx := range msg.Transactions {
			c.cfg.SyncTransaction(tx, pos, index)
		}
	}
}

// fetchBlocks distributes pending block downloads over the ready peers.
func (c *Client) fetchBlocks() {
	if len(c.pendingBlocks) == 0 {
		return
	}

	ready := c.group.ReadyPeers()
	if len(ready) == 0 {
		return
	}

	remaining := c.pendingBlocks[:0]
	for _, hash := range c.pendingBlocks {
		if _, ok := c.inFlightBlocks[hash]; ok {
			continue
		}

		var target *peer.Peer
		for _, p := range ready {
			if p.BlocksInFlight < maxBlocksInFlightPerPeer {
				target = p
				break
			}
		}
		if target == nil {
			remaining = append(remaining, hash)
			continue
		}

		gd := wire.NewMsgGetData()
		hashCopy := hash
		_ = gd.AddInvVect(wire.NewInvVect(wire.InvTypeBlock, &hashCopy))
		target.QueueMessage(gd)
		target.BlocksInFlight++
		c.inFlightBlocks[hashCopy] = target
	}
	c.pendingBlocks = remaining
}

// releaseInFlight returns the work assigned to a failing peer to the
// pending queue so another peer picks it up.
func (c *Client) releaseInFlight(p *peer.Peer) {
	for hash, owner := range c.inFlightBlocks {
		if owner == p {
			delete(c.inFlightBlocks, hash)
			c.pendingBlocks = append(c.pendingBlocks, hash)
		}
	}
	if !p.HeadersRequestedAt.IsZero() {
		p.HeadersRequestedAt = time.Time{}
		// Allow the next tick to re-issue the request elsewhere.
		c.lastHeadersRequest = time.Time{}
	}
}
