// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MsgPing implements the Message interface and represents a dogecoin ping
// message.
//
// For versions BIP0031Version and earlier, it is used primarily to confirm
// that a connection is still valid.  A transmission error is typically
// interpreted as a closed connection and that the peer should be removed.
// For versions AFTER BIP0031Version it contains an identifier which can be
// returned in the pong message to determine network timing.
type MsgPing struct {
	// Unique value associated with message that is used to identify
	// specific ping message.
	Nonce uint64
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgPing) DogeDecode(r io.Reader, pver uint32) error {
	// There was no nonce for BIP0031Version and earlier.
	if pver > BIP0031Version {
		return readElement(r, &msg.Nonce)
	}
	return nil
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgPing) DogeEncode(w io.Writer, pver uint32) error {
	if pver > BIP0031Version {
		return writeElement(w, msg.Nonce)
	}
	return nil
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgPing) Command() string {
	return CmdPing
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgPing) MaxPayloadLength(pver uint32) uint32 {
	if pver > BIP0031Version {
		// Nonce 8 bytes.
		return 8
	}
	return 0
}

// NewMsgPing returns a new dogecoin ping message that conforms to the Message
// interface.
func NewMsgPing(nonce uint64) *MsgPing {
	return &MsgPing{Nonce: nonce}
}
