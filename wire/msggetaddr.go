// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MsgGetAddr implements the Message interface and represents a dogecoin
// getaddr message.  It is used to request a list of known active peers on the
// network from a peer to help identify potential nodes.
//
// This message has no payload.
type MsgGetAddr struct{}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgGetAddr) DogeDecode(r io.Reader, pver uint32) error {
	return nil
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgGetAddr) DogeEncode(w io.Writer, pver uint32) error {
	return nil
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgGetAddr) Command() string {
	return CmdGetAddr
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgGetAddr) MaxPayloadLength(pver uint32) uint32 {
	return 0
}

// NewMsgGetAddr returns a new dogecoin getaddr message that conforms to the
// Message interface.
func NewMsgGetAddr() *MsgGetAddr {
	return &MsgGetAddr{}
}
