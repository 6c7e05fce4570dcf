// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// TestMessageRoundTrip tests the ReadMessage and WriteMessage API with the
// messages the sync engine exchanges.
func TestMessageRoundTrip(t *testing.T) {
	addrYou := &NetAddress{
		Timestamp: time.Unix(0x495fab29, 0),
		Services:  SFNodeNetwork,
		IP:        net.ParseIP("192.168.0.1"),
		Port:      22556,
	}
	addrMe := &NetAddress{
		Timestamp: time.Unix(0x495fab29, 0),
		Services:  SFNodeNetwork,
		IP:        net.ParseIP("127.0.0.1"),
		Port:      22556,
	}
	msgVersion := NewMsgVersion(addrMe, addrYou, 0x1234, 371337)

	msgHeaders := NewMsgHeaders()
	if err := msgHeaders.AddBlockHeader(&AuxBlockHeader{
		Header: BlockHeader{
			Version:   2,
			Timestamp: time.Unix(0x495fab29, 0),
			Bits:      0x1e0ffff0,
			Nonce:     99943,
		},
	}); err != nil {
		t.Fatalf("AddBlockHeader: %v", err)
	}

	msgGetHeaders := NewMsgGetHeaders()
	locatorHeader := BlockHeader{Version: 1}
	hash := locatorHeader.BlockHash()
	if err := msgGetHeaders.AddBlockLocatorHash(&hash); err != nil {
		t.Fatalf("AddBlockLocatorHash: %v", err)
	}

	msgInv := NewMsgInv()
	if err := msgInv.AddInvVect(NewInvVect(InvTypeBlock, &hash)); err != nil {
		t.Fatalf("AddInvVect: %v", err)
	}

	tests := []Message{
		msgVersion,
		NewMsgVerAck(),
		NewMsgGetAddr(),
		NewMsgPing(0xdeadbeef),
		NewMsgPong(0xdeadbeef),
		msgGetHeaders,
		msgHeaders,
		msgInv,
		NewMsgReject("block", RejectInvalid, "invalid"),
	}

	for i, msg := range tests {
		var buf bytes.Buffer
		_, err := WriteMessage(&buf, msg, ProtocolVersion, MainNet)
		if err != nil {
			t.Errorf("WriteMessage #%d (%s): %v", i, msg.Command(), err)
			continue
		}

		_, decoded, _, err := ReadMessage(bytes.NewReader(buf.Bytes()),
			ProtocolVersion, MainNet)
		if err != nil {
			t.Errorf("ReadMessage #%d (%s): %v", i, msg.Command(), err)
			continue
		}
		if decoded.Command() != msg.Command() {
			t.Errorf("ReadMessage #%d: command %s, want %s", i,
				decoded.Command(), msg.Command())
		}
	}
}

// TestMessageWrongNetwork ensures messages from another network are
// rejected.
func TestMessageWrongNetwork(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, NewMsgPing(1), ProtocolVersion,
		TestNet3); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	_, _, _, err := ReadMessage(bytes.NewReader(buf.Bytes()),
		ProtocolVersion, MainNet)
	if _, ok := err.(*MessageError); !ok {
		t.Fatalf("expected MessageError for wrong network, got %v", err)
	}
}

// TestMessageChecksumMismatch ensures a corrupted payload is rejected.
func TestMessageChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteMessage(&buf, NewMsgPing(1), ProtocolVersion,
		MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	// Flip a byte in the payload.
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff

	_, _, _, err := ReadMessage(bytes.NewReader(raw), ProtocolVersion,
		MainNet)
	if _, ok := err.(*MessageError); !ok {
		t.Fatalf("expected MessageError for bad checksum, got %v", err)
	}
}

// TestMessageUnknownCommand ensures unknown commands consume their payload
// and surface ErrUnknownMessage so the stream stays usable.
func TestMessageUnknownCommand(t *testing.T) {
	// Hand-roll a frame with an unknown command and an empty payload.
	var buf bytes.Buffer
	_ = writeElement(&buf, MainNet)
	var command [CommandSize]byte
	copy(command[:], "bogus")
	buf.Write(command[:])
	_ = writeElement(&buf, uint32(0))
	var emptyChecksum = [4]byte{0x5d, 0xf6, 0xe0, 0xe2} // sha256d("")[0:4]
	buf.Write(emptyChecksum[:])

	// Follow it with a valid ping so the reader can resynchronize.
	if _, err := WriteMessage(&buf, NewMsgPing(7), ProtocolVersion,
		MainNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	_, _, _, err := ReadMessage(r, ProtocolVersion, MainNet)
	if !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("expected ErrUnknownMessage, got %v", err)
	}

	_, msg, _, err := ReadMessage(r, ProtocolVersion, MainNet)
	if err != nil {
		t.Fatalf("ReadMessage after unknown command: %v", err)
	}
	ping, ok := msg.(*MsgPing)
	if !ok || ping.Nonce != 7 {
		t.Fatalf("stream out of sync after unknown command: %v",
			spew.Sdump(msg))
	}
}

// TestMsgTxRoundTrip tests the transaction serialization round trip.
func TestMsgTxRoundTrip(t *testing.T) {
	tx := NewMsgTx()
	tx.AddTxIn(NewTxIn(&OutPoint{Index: 0xffffffff},
		[]byte{0x04, 0xff, 0xff, 0x00, 0x1d, 0x01, 0x04}))
	tx.AddTxOut(NewTxOut(88*100000000, []byte{0x51}))
	tx.LockTime = 0

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if buf.Len() != tx.SerializeSize() {
		t.Errorf("SerializeSize: got %d, want %d", tx.SerializeSize(),
			buf.Len())
	}

	var decoded MsgTx
	if err := decoded.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(&decoded, tx) {
		t.Errorf("round trip mismatch - got %v, want %v",
			spew.Sdump(&decoded), spew.Sdump(tx))
	}
	if decoded.TxHash() != tx.TxHash() {
		t.Errorf("TxHash changed across round trip")
	}
}
