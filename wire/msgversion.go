// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// MaxUserAgentLen is the maximum allowed length for the user agent field in a
// version message (MsgVersion).
const MaxUserAgentLen = 256

// DefaultUserAgent for wire in the stack.
const DefaultUserAgent = "/doged:0.1.0/"

// MsgVersion implements the Message interface and represents a dogecoin
// version message.  It is used for a peer to advertise itself as soon as an
// outbound connection is made.  The remote peer then uses this information
// along with its own to negotiate.  The remote peer must then respond with a
// version message of its own containing the negotiated values followed by a
// verack message (MsgVerAck).
type MsgVersion struct {
	// Version of the protocol the node is using.
	ProtocolVersion int32

	// Bitfield which identifies the enabled services.
	Services ServiceFlag

	// Time the message was generated.  This is encoded as an int64 on the
	// wire.
	Timestamp time.Time

	// Address of the remote peer.
	AddrYou NetAddress

	// Address of the local peer.
	AddrMe NetAddress

	// Unique value associated with the message that is used to detect self
	// connections.
	Nonce uint64

	// The user agent that generated the message.  This is a encoded as a
	// varString on the wire.  This has a max length of MaxUserAgentLen.
	UserAgent string

	// Last block seen by the generator of the version message.
	LastBlock int32

	// Don't announce transactions to peer.
	DisableRelayTx bool
}

// HasService returns whether the specified service is supported by the peer
// that generated the message.
func (msg *MsgVersion) HasService(service ServiceFlag) bool {
	return msg.Services&service == service
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  The version message is special in that the protocol version
// hasn't been negotiated yet.  As a result, the pver field is ignored and
// any fields which are added in new versions are optional.
func (msg *MsgVersion) DogeDecode(r io.Reader, pver uint32) error {
	buf, ok := r.(*bytes.Buffer)
	if !ok {
		return fmt.Errorf("MsgVersion.DogeDecode reader is not a " +
			"*bytes.Buffer")
	}

	var sec int64
	if err := readElements(buf, &msg.ProtocolVersion, &msg.Services,
		&sec); err != nil {
		return err
	}
	msg.Timestamp = time.Unix(sec, 0)

	if err := readNetAddress(buf, pver, &msg.AddrYou, false); err != nil {
		return err
	}

	// Protocol versions >= 106 added a from address, nonce, and user agent
	// field and they are only considered present if there are bytes
	// remaining in the message.
	if buf.Len() > 0 {
		if err := readNetAddress(buf, pver, &msg.AddrMe, false); err != nil {
			return err
		}
	}
	if buf.Len() > 0 {
		if err := readElement(buf, &msg.Nonce); err != nil {
			return err
		}
	}
	if buf.Len() > 0 {
		userAgent, err := ReadVarString(buf, pver)
		if err != nil {
			return err
		}
		if err := validateUserAgent(userAgent); err != nil {
			return err
		}
		msg.UserAgent = userAgent
	}

	// Protocol versions >= 209 added a last known block field.  It is only
	// considered present if there are bytes remaining in the message.
	if buf.Len() > 0 {
		if err := readElement(buf, &msg.LastBlock); err != nil {
			return err
		}
	}

	// There was no relay transactions field before BIP0037Version, but
	// the default behavior for the relay field is true.
	msg.DisableRelayTx = false
	if buf.Len() > 0 {
		var relayTx bool
		_ = readElement(buf, &relayTx)
		msg.DisableRelayTx = !relayTx
	}

	return nil
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
func (msg *MsgVersion) DogeEncode(w io.Writer, pver uint32) error {
	if err := validateUserAgent(msg.UserAgent); err != nil {
		return err
	}

	if err := writeElements(w, msg.ProtocolVersion, msg.Services,
		msg.Timestamp.Unix()); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &msg.AddrYou, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &msg.AddrMe, false); err != nil {
		return err
	}
	if err := writeElement(w, msg.Nonce); err != nil {
		return err
	}
	if err := WriteVarString(w, pver, msg.UserAgent); err != nil {
		return err
	}
	if err := writeElement(w, msg.LastBlock); err != nil {
		return err
	}
	return writeElement(w, !msg.DisableRelayTx)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgVersion) Command() string {
	return CmdVersion
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgVersion) MaxPayloadLength(pver uint32) uint32 {
	// Protocol version 4 bytes + services 8 bytes + timestamp 8 bytes +
	// remote and local net addresses + nonce 8 bytes + length of user
	// agent (varInt) + max allowed useragent length + last block 4 bytes +
	// relay transactions flag 1 byte.
	return 33 + (maxNetAddressPayload(pver) * 2) + MaxVarIntPayload +
		MaxUserAgentLen
}

// validateUserAgent checks userAgent length against MaxUserAgentLen.
func validateUserAgent(userAgent string) error {
	if len(userAgent) > MaxUserAgentLen {
		return messageError("MsgVersion", fmt.Sprintf(
			"user agent too long [len %v, max %v]", len(userAgent),
			MaxUserAgentLen))
	}
	return nil
}

// AddUserAgent adds a user agent to the user agent string for the version
// message.  The version string is not defined to any strict format, although
// it is recommended to use the form "major.minor.revision" e.g. "2.6.41".
func (msg *MsgVersion) AddUserAgent(name string, version string,
	comments ...string) error {

	newUserAgent := fmt.Sprintf("%s:%s", name, version)
	if len(comments) != 0 {
		newUserAgent = fmt.Sprintf("%s(%s)", newUserAgent,
			strings.Join(comments, "; "))
	}
	newUserAgent = fmt.Sprintf("%s%s/", msg.UserAgent, newUserAgent)
	if err := validateUserAgent(newUserAgent); err != nil {
		return err
	}
	msg.UserAgent = newUserAgent
	return nil
}

// NewMsgVersion returns a new dogecoin version message that conforms to the
// Message interface using the passed parameters and defaults for the
// remaining fields.
func NewMsgVersion(me, you *NetAddress, nonce uint64, lastBlock int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: int32(ProtocolVersion),
		Services:        0,
		Timestamp:       time.Unix(time.Now().Unix(), 0),
		AddrYou:         *you,
		AddrMe:          *me,
		Nonce:           nonce,
		UserAgent:       DefaultUserAgent,
		LastBlock:       lastBlock,
		DisableRelayTx:  false,
	}
}

// NewMsgVersionFromConn is a convenience function that extracts the remote
// and local address from conn and returns a new dogecoin version message that
// conforms to the Message interface.
func NewMsgVersionFromConn(conn net.Conn, nonce uint64, lastBlock int32) (*MsgVersion, error) {
	lna, err := newNetAddressFromConnAddr(conn.LocalAddr())
	if err != nil {
		return nil, err
	}
	rna, err := newNetAddressFromConnAddr(conn.RemoteAddr())
	if err != nil {
		return nil, err
	}
	return NewMsgVersion(lna, rna, nonce, lastBlock), nil
}

// newNetAddressFromConnAddr maps a net.Addr to a NetAddress.  Non-TCP
// addresses (in-memory pipes, proxied connections) yield a zero address,
// which the protocol tolerates.
func newNetAddressFromConnAddr(addr net.Addr) (*NetAddress, error) {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return NewNetAddress(tcpAddr, 0), nil
	}
	return &NetAddress{Timestamp: time.Unix(time.Now().Unix(), 0)}, nil
}
