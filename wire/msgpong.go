// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MsgPong implements the Message interface and represents a dogecoin pong
// message which is used primarily to confirm that a connection is still valid
// in response to a dogecoin ping message (MsgPing).
//
// This message was not added until protocol versions AFTER BIP0031Version.
type MsgPong struct {
	// Unique value associated with message that is used to identify
	// specific ping message.
	Nonce uint64
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgPong) DogeDecode(r io.Reader, pver uint32) error {
	if pver <= BIP0031Version {
		return messageError("MsgPong.DogeDecode",
			"pong message invalid for protocol version")
	}
	return readElement(r, &msg.Nonce)
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgPong) DogeEncode(w io.Writer, pver uint32) error {
	if pver <= BIP0031Version {
		return messageError("MsgPong.DogeEncode",
			"pong message invalid for protocol version")
	}
	return writeElement(w, msg.Nonce)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgPong) Command() string {
	return CmdPong
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgPong) MaxPayloadLength(pver uint32) uint32 {
	if pver > BIP0031Version {
		// Nonce 8 bytes.
		return 8
	}
	return 0
}

// NewMsgPong returns a new dogecoin pong message that conforms to the Message
// interface.
func NewMsgPong(nonce uint64) *MsgPong {
	return &MsgPong{Nonce: nonce}
}
