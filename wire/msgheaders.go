// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MaxBlockHeadersPerMsg is the maximum number of block headers that can be in
// a single dogecoin headers message.
const MaxBlockHeadersPerMsg = 2000

// MsgHeaders implements the Message interface and represents a dogecoin
// headers message.  It is used to deliver block header information in
// response to a getheaders message (MsgGetHeaders).  The maximum number of
// block headers per message is currently 2000.  See MsgGetHeaders for details
// on requesting the headers.
//
// Unlike bitcoin, dogecoin headers carry their auxiliary proof of work on the
// wire whenever the header version flags one, so each entry is an
// AuxBlockHeader rather than a bare header.
type MsgHeaders struct {
	Headers []*AuxBlockHeader
}

// AddBlockHeader adds a new block header to the message.
func (msg *MsgHeaders) AddBlockHeader(bh *AuxBlockHeader) error {
	if len(msg.Headers)+1 > MaxBlockHeadersPerMsg {
		return messageError("MsgHeaders.AddBlockHeader", fmt.Sprintf(
			"too many block headers in message [max %v]",
			MaxBlockHeadersPerMsg))
	}
	msg.Headers = append(msg.Headers, bh)
	return nil
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgHeaders) DogeDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	// Limit to max block headers per message.
	if count > MaxBlockHeadersPerMsg {
		return messageError("MsgHeaders.DogeDecode", fmt.Sprintf(
			"too many block headers for message [count %v, max %v]",
			count, MaxBlockHeadersPerMsg))
	}

	msg.Headers = make([]*AuxBlockHeader, 0, count)
	for i := uint64(0); i < count; i++ {
		bh := AuxBlockHeader{}
		if err := bh.DogeDecode(r, pver); err != nil {
			return err
		}

		txCount, err := ReadVarInt(r, pver)
		if err != nil {
			return err
		}

		// Ensure the transaction count is zero for headers.
		if txCount > 0 {
			return messageError("MsgHeaders.DogeDecode", fmt.Sprintf(
				"block headers may not contain transactions [count %v]",
				txCount))
		}

		msg.Headers = append(msg.Headers, &bh)
	}

	return nil
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgHeaders) DogeEncode(w io.Writer, pver uint32) error {
	// Limit to max block headers per message.
	count := len(msg.Headers)
	if count > MaxBlockHeadersPerMsg {
		return messageError("MsgHeaders.DogeEncode", fmt.Sprintf(
			"too many block headers for message [count %v, max %v]",
			count, MaxBlockHeadersPerMsg))
	}

	if err := WriteVarInt(w, pver, uint64(count)); err != nil {
		return err
	}
	for _, bh := range msg.Headers {
		if err := bh.DogeEncode(w, pver); err != nil {
			return err
		}

		// The wire protocol encoding always includes a 0 for the number of
		// transactions on header messages.
		if err := WriteVarInt(w, pver, 0); err != nil {
			return err
		}
	}

	return nil
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgHeaders) Command() string {
	return CmdHeaders
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgHeaders) MaxPayloadLength(pver uint32) uint32 {
	// Headers carrying an auxiliary proof of work have no fixed size, so
	// the only effective bound is the overall message payload cap.
	return MaxMessagePayload
}

// NewMsgHeaders returns a new dogecoin headers message that conforms to the
// Message interface.
func NewMsgHeaders() *MsgHeaders {
	return &MsgHeaders{
		Headers: make([]*AuxBlockHeader, 0, MaxBlockHeadersPerMsg),
	}
}
