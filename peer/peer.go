// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"errors"
	"net"
	"time"

	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/wire"
)

const (
	// outputBufferSize is the number of elements the output channels use.
	outputBufferSize = 50

	// ConnectTimeout is the duration an outbound TCP connect may take.
	ConnectTimeout = 10 * time.Second

	// HandshakeTimeout is the duration the version/verack exchange may
	// take once the TCP connection is up.
	HandshakeTimeout = 10 * time.Second

	// IdleTimeout is the duration of inactivity before a ping probe is
	// sent to a ready peer.
	IdleTimeout = 60 * time.Second

	// PingTimeout is the duration to wait for a matching pong before a
	// peer is considered dead.
	PingTimeout = 30 * time.Second

	// HeadersRequestTimeout is the duration a getheaders request may stay
	// unanswered before the request is abandoned and the peer dropped.
	HeadersRequestTimeout = 5 * time.Minute
)

var (
	// ErrHandshakeTimeout describes an error in which the peer did not
	// complete the version handshake in time.
	ErrHandshakeTimeout = errors.New("protocol handshake timeout")

	// ErrIdleTimeout describes an error in which the peer failed to answer
	// a keep-alive probe in time.
	ErrIdleTimeout = errors.New("peer idle timeout")

	// ErrStalledRequest describes an error in which the peer sat on an
	// in-flight request for too long.
	ErrStalledRequest = errors.New("peer stalled on in-flight request")

	// ErrPeerClosed describes an error in which a message was queued on a
	// peer that is already shut down.
	ErrPeerClosed = errors.New("peer is closed")
)

// State is the lifecycle state of a peer connection.
type State int

// The states a peer progresses through.  A peer never moves backwards except
// to StateClosed.
const (
	StateIdle State = iota
	StateConnecting
	StateHandshakeSent
	StateHandshakeComplete
	StateReady
	StateClosed
)

// String returns the state in human-readable form.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateHandshakeSent:
		return "handshake-sent"
	case StateHandshakeComplete:
		return "handshake-complete"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Event is delivered on the group channel for everything that happens on a
// peer: a completed dial, a decoded message, or a failure.  All fields other
// than Peer are optional.
type Event struct {
	// Peer is the peer the event happened on.
	Peer *Peer

	// Msg is the decoded message, nil for connection lifecycle events.
	Msg wire.Message

	// Err is set when the peer failed and must be dropped.
	Err error

	// Connected reports a completed outbound dial.
	Connected bool
}

// DialFunc establishes outbound TCP connections.  It matches the shape of
// net.Dial so a SOCKS proxy dialer can be substituted.
type DialFunc func(network, addr string) (net.Conn, error)

// Config holds the options shared by all peers of a group.
type Config struct {
	// Params identifies the network the peers belong to.
	Params *chaincfg.Params

	// UserAgentName and UserAgentVersion identify this client in version
	// messages.
	UserAgentName    string
	UserAgentVersion string

	// Dial establishes outbound TCP connections.  Defaults to
	// net.DialTimeout with ConnectTimeout.  A SOCKS proxy dialer may be
	// installed here.
	Dial DialFunc
}

// dial returns the configured dialer or the default one.
func (cfg *Config) dial(addr string) (net.Conn, error) {
	if cfg.Dial != nil {
		return cfg.Dial("tcp", addr)
	}
	return net.DialTimeout("tcp", addr, ConnectTimeout)
}

// Peer represents one outbound connection to a dogecoin node.  All exported
// state is owned by the goroutine running the group event loop; the read and
// write loops only move raw messages.
type Peer struct {
	addr string
	cfg  *Config
	conn net.Conn

	state        State
	versionNonce uint64
	protocol     uint32
	services     wire.ServiceFlag
	startHeight  int32
	userAgent    string

	stateSince  time.Time
	lastRecv    time.Time
	pingNonce   uint64
	pingPending bool
	pingSent    time.Time

	// HeadersRequestedAt is the time of the in-flight getheaders request,
	// or the zero time when none is outstanding.  It is maintained by the
	// sync engine.
	HeadersRequestedAt time.Time

	// BlocksInFlight is the number of requested but undelivered blocks.
	// It is maintained by the sync engine.
	BlocksInFlight int

	misbehaviour int

	sendQueue chan wire.Message
	quit      chan struct{}
	events    chan<- Event
}

// newPeer returns a peer in the idle state.
func newPeer(addr string, cfg *Config, events chan<- Event) *Peer {
	return &Peer{
		addr:      addr,
		cfg:       cfg,
		state:     StateIdle,
		sendQueue: make(chan wire.Message, outputBufferSize),
		quit:      make(chan struct{}),
		events:    events,
	}
}

// Addr returns the dial address of the peer.
func (p *Peer) Addr() string {
	return p.addr
}

// State returns the lifecycle state of the peer.
func (p *Peer) State() State {
	return p.state
}

// Ready returns whether the handshake completed and the peer accepts
// requests.
func (p *Peer) Ready() bool {
	return p.state == StateReady
}

// Protocol returns the negotiated protocol version.
func (p *Peer) Protocol() uint32 {
	return p.protocol
}

// StartHeight returns the best height the peer advertised during the
// handshake.
func (p *Peer) StartHeight() int32 {
	return p.startHeight
}

// AddMisbehaviour raises the misbehaviour score of the peer and returns the
// new score.
func (p *Peer) AddMisbehaviour(points int) int {
	p.misbehaviour += points
	return p.misbehaviour
}

// connect dials the peer.  It runs on its own goroutine and reports the
// outcome on the event channel.
func (p *Peer) connect() {
	conn, err := p.cfg.dial(p.addr)
	if err != nil {
		select {
		case p.events <- Event{Peer: p, Err: err}:
		case <-p.quit:
		}
		return
	}

	select {
	case <-p.quit:
		conn.Close()
		return
	default:
	}

	p.conn = conn
	select {
	case p.events <- Event{Peer: p, Connected: true}:
	case <-p.quit:
		conn.Close()
	}
}

// OnConnected starts the read and write loops and opens the handshake by
// sending our version message.  It must be called on the event loop
// goroutine when the dial event arrives.
func (p *Peer) OnConnected() error {
	nonce, err := wire.RandomUint64()
	if err != nil {
		return err
	}
	p.versionNonce = nonce
	p.protocol = wire.ProtocolVersion

	verMsg, err := wire.NewMsgVersionFromConn(p.conn, nonce, 0)
	if err != nil {
		return err
	}
	if err := verMsg.AddUserAgent(p.cfg.UserAgentName,
		p.cfg.UserAgentVersion); err != nil {
		return err
	}

	go p.readLoop()
	go p.writeLoop()

	p.setState(StateHandshakeSent)
	p.QueueMessage(verMsg)
	log.Debugf("Sent version to %s", p.addr)
	return nil
}

// setState transitions the peer and stamps the transition time.
func (p *Peer) setState(state State) {
	p.state = state
	p.stateSince = time.Now()
}

// HandleMessage consumes the protocol level messages a peer answers by
// itself: the handshake and the keep-alive.  It returns true when the
// message was consumed and must not be dispatched further.  It must be
// called on the event loop goroutine.
func (p *Peer) HandleMessage(msg wire.Message) (bool, error) {
	p.lastRecv = time.Now()

	switch m := msg.(type) {
	case *wire.MsgVersion:
		if p.state != StateHandshakeSent {
			return true, errors.New("duplicate version message")
		}
		if m.Nonce == p.versionNonce {
			return true, errors.New("connected to self")
		}
		if uint32(m.ProtocolVersion) < p.protocol {
			p.protocol = uint32(m.ProtocolVersion)
		}
		p.services = m.Services
		p.startHeight = m.LastBlock
		p.userAgent = m.UserAgent
		p.setState(StateHandshakeComplete)
		p.QueueMessage(wire.NewMsgVerAck())
		return true, nil

	case *wire.MsgVerAck:
		if p.state != StateHandshakeComplete {
			return true, errors.New("verack before version")
		}
		p.setState(StateReady)
		log.Infof("Peer %s ready (%s, protocol %d, height %d)", p.addr,
			p.userAgent, p.protocol, p.startHeight)
		return true, nil

	case *wire.MsgPing:
		if p.protocol > wire.BIP0031Version {
			p.QueueMessage(wire.NewMsgPong(m.Nonce))
		}
		return true, nil

	case *wire.MsgPong:
		if p.pingPending && m.Nonce == p.pingNonce {
			p.pingPending = false
		}
		return true, nil
	}

	return false, nil
}

// CheckTimeouts enforces the handshake, keep-alive, and in-flight request
// deadlines.  A non-nil error means the peer must be dropped with that
// reason.  It must be called on the event loop goroutine.
func (p *Peer) CheckTimeouts(now time.Time) error {
	switch p.state {
	case StateHandshakeSent, StateHandshakeComplete:
		if now.Sub(p.stateSince) > HandshakeTimeout {
			return ErrHandshakeTimeout
		}

	case StateReady:
		if p.pingPending {
			if now.Sub(p.pingSent) > PingTimeout {
				return ErrIdleTimeout
			}
		} else if now.Sub(p.lastRecv) > IdleTimeout {
			nonce, err := wire.RandomUint64()
			if err != nil {
				return err
			}
			p.pingNonce = nonce
			p.pingPending = true
			p.pingSent = now
			p.QueueMessage(wire.NewMsgPing(nonce))
		}

		if !p.HeadersRequestedAt.IsZero() &&
			now.Sub(p.HeadersRequestedAt) > HeadersRequestTimeout {
			return ErrStalledRequest
		}
	}
	return nil
}

// QueueMessage enqueues a message for delivery to the remote peer.  The
// message is dropped when the peer is shutting down or the queue is full; a
// peer that cannot drain its queue will shortly fail a timeout anyway.
func (p *Peer) QueueMessage(msg wire.Message) {
	select {
	case p.sendQueue <- msg:
	case <-p.quit:
	default:
		log.Warnf("Send queue for %s full; dropping %s", p.addr,
			msg.Command())
	}
}

// Close tears the connection down.  It is idempotent.  Pending in-flight
// work must be re-queued by the owner before calling Close.
func (p *Peer) Close() {
	if p.state == StateClosed {
		return
	}
	p.setState(StateClosed)
	close(p.quit)
	if p.conn != nil {
		p.conn.Close()
	}
}

// readLoop decodes messages off the wire and forwards them to the event
// channel.  Framing errors (bad magic, bad checksum, oversized payloads)
// surface here and terminate the connection.
func (p *Peer) readLoop() {
	for {
		_, msg, _, err := wire.ReadMessage(p.conn, p.protocol,
			p.cfg.Params.Net)
		if err != nil {
			// Unknown commands are tolerated for forward compatibility;
			// everything else is a protocol error or a dead connection.
			if errors.Is(err, wire.ErrUnknownMessage) {
				log.Debugf("Ignoring message from %s: %v", p.addr, err)
				continue
			}
			select {
			case p.events <- Event{Peer: p, Err: err}:
			case <-p.quit:
			}
			return
		}

		select {
		case p.events <- Event{Peer: p, Msg: msg}:
		case <-p.quit:
			return
		}
	}
}

// writeLoop serializes queued messages onto the wire.
func (p *Peer) writeLoop() {
	for {
		select {
		case msg := <-p.sendQueue:
			_, err := wire.WriteMessage(p.conn, msg, p.protocol,
				p.cfg.Params.Net)
			if err != nil {
				select {
				case p.events <- Event{Peer: p, Err: err}:
				case <-p.quit:
				}
				return
			}

		case <-p.quit:
			return
		}
	}
}
