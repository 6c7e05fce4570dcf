// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dogesuite/doged/chaincfg/chainhash"
)

// ErrUnknownMessage is returned by ReadMessage when a message with an
// unrecognized command is read.  The payload has been consumed, so the
// stream remains usable and the caller may simply ignore the message.
var ErrUnknownMessage = errors.New("received unknown message")

// MessageHeaderSize is the number of bytes in a dogecoin message header.
// Dogecoin network (magic) 4 bytes + command 12 bytes + payload length 4
// bytes + checksum 4 bytes.
const MessageHeaderSize = 24

// CommandSize is the fixed size of all commands in the common dogecoin
// message header.  Shorter commands must be zero padded.
const CommandSize = 12

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = (1024 * 1024 * 32) // 32MB

// Commands used in dogecoin message headers which describe the type of
// message.
const (
	CmdVersion    = "version"
	CmdVerAck     = "verack"
	CmdGetAddr    = "getaddr"
	CmdAddr       = "addr"
	CmdGetHeaders = "getheaders"
	CmdHeaders    = "headers"
	CmdGetData    = "getdata"
	CmdBlock      = "block"
	CmdInv        = "inv"
	CmdPing       = "ping"
	CmdPong       = "pong"
	CmdTx         = "tx"
	CmdReject     = "reject"
)

// Message is an interface that describes a dogecoin message.  A type that
// implements Message has complete control over the representation of its data
// and may therefore contain additional or fewer fields than those which
// are used directly in the protocol encoded message.
type Message interface {
	DogeDecode(io.Reader, uint32) error
	DogeEncode(io.Writer, uint32) error
	Command() string
	MaxPayloadLength(uint32) uint32
}

// makeEmptyMessage creates a message of the appropriate concrete type based
// on the command.
func makeEmptyMessage(command string) (Message, error) {
	var msg Message
	switch command {
	case CmdVersion:
		msg = &MsgVersion{}

	case CmdVerAck:
		msg = &MsgVerAck{}

	case CmdGetAddr:
		msg = &MsgGetAddr{}

	case CmdAddr:
		msg = &MsgAddr{}

	case CmdGetHeaders:
		msg = &MsgGetHeaders{}

	case CmdHeaders:
		msg = &MsgHeaders{}

	case CmdGetData:
		msg = &MsgGetData{}

	case CmdBlock:
		msg = &MsgBlock{}

	case CmdInv:
		msg = &MsgInv{}

	case CmdPing:
		msg = &MsgPing{}

	case CmdPong:
		msg = &MsgPong{}

	case CmdTx:
		msg = &MsgTx{}

	case CmdReject:
		msg = &MsgReject{}

	default:
		return nil, messageError("makeEmptyMessage",
			fmt.Sprintf("unhandled command [%s]", command))
	}
	return msg, nil
}

// messageHeader defines the header structure for all dogecoin protocol
// messages.
type messageHeader struct {
	magic    DogeNet // 4 bytes
	command  string  // 12 bytes
	length   uint32  // 4 bytes
	checksum [4]byte // 4 bytes
}

// readMessageHeader reads a dogecoin message header from r.
func readMessageHeader(r io.Reader) (int, *messageHeader, error) {
	// Since readElement requires known sizes, read the header into a byte
	// buffer first.
	var headerBytes [MessageHeaderSize]byte
	n, err := io.ReadFull(r, headerBytes[:])
	if err != nil {
		return n, nil, err
	}
	hr := bytes.NewReader(headerBytes[:])

	hdr := messageHeader{}
	var command [CommandSize]byte
	_ = readElement(hr, &hdr.magic)
	_, _ = io.ReadFull(hr, command[:])
	_ = readElement(hr, &hdr.length)
	_, _ = io.ReadFull(hr, hdr.checksum[:])

	// Strip trailing zeros from command string.
	hdr.command = string(bytes.TrimRight(command[:], "\x00"))

	return n, &hdr, nil
}

// discardInput reads n bytes from reader r in chunks and discards the read
// bytes.  This is used to skip payloads when various errors occur and helps
// prevent rogue nodes from causing massive memory allocation through forging
// header length.
func discardInput(r io.Reader, n uint32) {
	maxSize := uint32(10 * 1024) // 10k at a time
	numReads := n / maxSize
	bytesRemaining := n % maxSize
	if n > 0 {
		buf := make([]byte, maxSize)
		for i := uint32(0); i < numReads; i++ {
			_, _ = io.ReadFull(r, buf)
		}
	}
	if bytesRemaining > 0 {
		buf := make([]byte, bytesRemaining)
		_, _ = io.ReadFull(r, buf)
	}
}

// WriteMessage writes a dogecoin Message to w including the necessary header
// information and returns the number of bytes written.
func WriteMessage(w io.Writer, msg Message, pver uint32, dogenet DogeNet) (int, error) {
	totalBytes := 0

	// Enforce max command size.
	var command [CommandSize]byte
	cmd := msg.Command()
	if len(cmd) > CommandSize {
		return totalBytes, messageError("WriteMessage", fmt.Sprintf(
			"command [%s] is too long [max %v]", cmd, CommandSize))
	}
	copy(command[:], cmd)

	// Encode the message payload.
	var bw bytes.Buffer
	err := msg.DogeEncode(&bw, pver)
	if err != nil {
		return totalBytes, err
	}
	payload := bw.Bytes()
	lenp := len(payload)

	// Enforce maximum overall message payload.
	if lenp > MaxMessagePayload {
		return totalBytes, messageError("WriteMessage", fmt.Sprintf(
			"message payload is too large - encoded %d bytes, but "+
				"maximum message payload is %d bytes", lenp,
			MaxMessagePayload))
	}

	// Enforce maximum message payload based on the message type.
	mpl := msg.MaxPayloadLength(pver)
	if uint32(lenp) > mpl {
		return totalBytes, messageError("WriteMessage", fmt.Sprintf(
			"message payload is too large - encoded %d bytes, but "+
				"maximum message payload size for messages of type [%s] "+
				"is %d", lenp, cmd, mpl))
	}

	// Create header for the message.
	hdr := messageHeader{}
	hdr.magic = dogenet
	hdr.command = cmd
	hdr.length = uint32(lenp)
	copy(hdr.checksum[:], chainhash.DoubleHashB(payload)[0:4])

	// Encode the header for the message.  This is done to a buffer rather
	// than directly to the writer since writeElements doesn't return the
	// number of bytes written.
	hw := bytes.NewBuffer(make([]byte, 0, MessageHeaderSize))
	_ = writeElement(hw, hdr.magic)
	_, _ = hw.Write(command[:])
	_ = writeElement(hw, hdr.length)
	_, _ = hw.Write(hdr.checksum[:])

	// Write the head first.
	n, err := w.Write(hw.Bytes())
	totalBytes += n
	if err != nil {
		return totalBytes, err
	}

	// Only write the payload if there is one, e.g., verack messages don't
	// have one.
	if len(payload) > 0 {
		n, err = w.Write(payload)
		totalBytes += n
	}

	return totalBytes, err
}

// ReadMessage reads, validates, and parses the next dogecoin Message from r
// for the provided protocol version and dogecoin network.  It returns the
// number of bytes read in addition to the parsed Message and raw bytes for
// the payload.
func ReadMessage(r io.Reader, pver uint32, dogenet DogeNet) (int, Message, []byte, error) {
	totalBytes := 0
	n, hdr, err := readMessageHeader(r)
	totalBytes += n
	if err != nil {
		return totalBytes, nil, nil, err
	}

	// Enforce maximum message payload.
	if hdr.length > MaxMessagePayload {
		return totalBytes, nil, nil, messageError("ReadMessage", fmt.Sprintf(
			"message payload is too large - header indicates %d bytes, "+
				"but max message payload is %d bytes.", hdr.length,
			MaxMessagePayload))
	}

	// Check for messages from the wrong dogecoin network.
	if hdr.magic != dogenet {
		discardInput(r, hdr.length)
		return totalBytes, nil, nil, messageError("ReadMessage",
			fmt.Sprintf("message from other network [%v]", hdr.magic))
	}

	// Check for malformed commands.
	command := hdr.command
	if !utf8.ValidString(command) {
		discardInput(r, hdr.length)
		return totalBytes, nil, nil, messageError("ReadMessage",
			fmt.Sprintf("invalid command %v", []byte(command)))
	}

	// Create struct of appropriate message type based on the command.
	msg, err := makeEmptyMessage(command)
	if err != nil {
		discardInput(r, hdr.length)
		return totalBytes, nil, nil, fmt.Errorf("%w [%v]",
			ErrUnknownMessage, command)
	}

	// Check for maximum length based on the message type.
	mpl := msg.MaxPayloadLength(pver)
	if hdr.length > mpl {
		discardInput(r, hdr.length)
		return totalBytes, nil, nil, messageError("ReadMessage",
			fmt.Sprintf("payload exceeds max length - header indicates "+
				"%v bytes, but max payload size for messages of type [%v] "+
				"is %v.", hdr.length, command, mpl))
	}

	// Read payload.
	payload := make([]byte, hdr.length)
	n, err = io.ReadFull(r, payload)
	totalBytes += n
	if err != nil {
		return totalBytes, nil, nil, err
	}

	// Test checksum.
	checksum := chainhash.DoubleHashB(payload)[0:4]
	if !bytes.Equal(checksum, hdr.checksum[:]) {
		return totalBytes, nil, nil, messageError("ReadMessage",
			fmt.Sprintf("payload checksum failed - header indicates %v, "+
				"but actual checksum is %v.", hdr.checksum, checksum))
	}

	// Unmarshal message.
	pr := bytes.NewBuffer(payload)
	err = msg.DogeDecode(pr, pver)
	if err != nil {
		return totalBytes, nil, nil, err
	}

	return totalBytes, msg, payload, nil
}
