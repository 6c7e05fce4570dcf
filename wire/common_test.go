// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

// TestVarIntWire tests wire encode and decode for variable length integers.
func TestVarIntWire(t *testing.T) {
	tests := []struct {
		in  uint64 // Value to encode
		buf []byte // Wire encoding
	}{
		// Single byte
		{0, []byte{0x00}},
		// Max single byte
		{0xfc, []byte{0xfc}},
		// Min 2-byte
		{0xfd, []byte{0xfd, 0x0fd, 0x00}},
		// Max 2-byte
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		// Min 4-byte
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		// Max 4-byte
		{0xffffffff, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		// Min 8-byte
		{
			0x100000000,
			[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
		// Max 8-byte
		{
			0xffffffffffffffff,
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		},
	}

	for i, test := range tests {
		// Encode to wire format.
		var buf bytes.Buffer
		err := WriteVarInt(&buf, ProtocolVersion, test.in)
		if err != nil {
			t.Errorf("WriteVarInt #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("WriteVarInt #%d\n got: %x want: %x", i,
				buf.Bytes(), test.buf)
			continue
		}

		// Decode from wire format.
		rbuf := bytes.NewReader(test.buf)
		val, err := ReadVarInt(rbuf, ProtocolVersion)
		if err != nil {
			t.Errorf("ReadVarInt #%d error %v", i, err)
			continue
		}
		if val != test.in {
			t.Errorf("ReadVarInt #%d\n got: %d want: %d", i, val, test.in)
			continue
		}

		if got := VarIntSerializeSize(test.in); got != len(test.buf) {
			t.Errorf("VarIntSerializeSize #%d\n got: %d want: %d", i, got,
				len(test.buf))
		}
	}
}

// TestVarIntNonCanonical ensures variable length integers that are not
// encoded canonically return an error.
func TestVarIntNonCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"0 encoded with 3 bytes", []byte{0xfd, 0x00, 0x00}},
		{"max single-byte encoded with 3 bytes", []byte{0xfd, 0xfc, 0x00}},
		{"0 encoded with 5 bytes", []byte{0xfe, 0x00, 0x00, 0x00, 0x00}},
		{
			"max three-byte encoded with 5 bytes",
			[]byte{0xfe, 0xff, 0xff, 0x00, 0x00},
		},
		{
			"0 encoded with 9 bytes",
			[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			"max five-byte encoded with 9 bytes",
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, test := range tests {
		rbuf := bytes.NewReader(test.in)
		val, err := ReadVarInt(rbuf, ProtocolVersion)
		if _, ok := err.(*MessageError); !ok {
			t.Errorf("%s: unexpected error %v (value %d)", test.name, err,
				val)
		}
	}
}

// TestVarStringWire tests wire encode and decode for variable length
// strings.
func TestVarStringWire(t *testing.T) {
	str256 := string(bytes.Repeat([]byte{'t'}, 256))

	tests := []struct {
		in  string
		buf []byte
	}{
		{"", []byte{0x00}},
		{"Test", append([]byte{0x04}, []byte("Test")...)},
		{str256, append([]byte{0xfd, 0x00, 0x01}, []byte(str256)...)},
	}

	for i, test := range tests {
		var buf bytes.Buffer
		if err := WriteVarString(&buf, ProtocolVersion, test.in); err != nil {
			t.Errorf("WriteVarString #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("WriteVarString #%d\n got: %x want: %x", i,
				buf.Bytes(), test.buf)
			continue
		}

		val, err := ReadVarString(bytes.NewReader(test.buf), ProtocolVersion)
		if err != nil {
			t.Errorf("ReadVarString #%d error %v", i, err)
			continue
		}
		if val != test.in {
			t.Errorf("ReadVarString #%d\n got: %s want: %s", i, val, test.in)
		}
	}
}

// TestRandomUint64 exercises the random nonce source.
func TestRandomUint64(t *testing.T) {
	// A tiny value would indicate a broken random source; with 64 bits of
	// entropy the chance of 5 consecutive values below 2^56 is negligible.
	tries := 0
	for ; tries < 5; tries++ {
		nonce, err := RandomUint64()
		if err != nil {
			t.Fatalf("RandomUint64: %v", err)
		}
		if nonce > 1<<56 {
			break
		}
	}
	if tries == 5 {
		t.Fatalf("RandomUint64 returned 5 suspiciously small values")
	}
}
