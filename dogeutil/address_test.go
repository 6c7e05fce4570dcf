// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeutil

import (
	"strings"
	"testing"

	"github.com/dogesuite/doged/chaincfg"
)

// TestAddressFromWIFVector pins the well-known WIF to P2PKH derivation
// vector for the main network.
func TestAddressFromWIFVector(t *testing.T) {
	const wifStr = "QWCcckTzUBiY1g3GFixihAscwHAKXeXY76v7Gcxhp3HUEAcBv33i"
	const wantAddr = "D8mQ2sKYpLbFCQLhGeHCPBmkLJRi6kRoSg"

	wif, err := DecodeWIF(wifStr)
	if err != nil {
		t.Fatalf("DecodeWIF: %v", err)
	}
	if !wif.IsForNet(&chaincfg.MainNetParams) {
		t.Fatalf("vector WIF is not a mainnet key")
	}
	if !wif.CompressPubKey {
		t.Fatalf("vector WIF is not compressed")
	}

	addr, err := NewAddressPubKeyHashFromKey(wif.SerializePubKey(),
		&chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHashFromKey: %v", err)
	}
	if addr.EncodeAddress() != wantAddr {
		t.Fatalf("derived address %s, want %s", addr.EncodeAddress(),
			wantAddr)
	}

	// Freshly derived mainnet addresses always lead with D.
	if !strings.HasPrefix(addr.EncodeAddress(), "D") {
		t.Fatalf("mainnet P2PKH does not start with D")
	}
}

// TestDecodeAddress exercises decoding and network detection of the
// supported address types.
func TestDecodeAddress(t *testing.T) {
	pkHash := Hash160([]byte("test pubkey"))

	p2pkh, err := NewAddressPubKeyHash(pkHash, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHash: %v", err)
	}
	p2sh, err := NewAddressScriptHash([]byte{0x51}, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressScriptHash: %v", err)
	}
	p2wpkh, err := NewAddressWitnessPubKeyHash(pkHash,
		&chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressWitnessPubKeyHash: %v", err)
	}

	tests := []struct {
		addr Address
	}{
		{p2pkh},
		{p2sh},
		{p2wpkh},
	}

	for _, test := range tests {
		encoded := test.addr.EncodeAddress()
		decoded, err := DecodeAddress(encoded, &chaincfg.MainNetParams)
		if err != nil {
			t.Errorf("DecodeAddress(%s): %v", encoded, err)
			continue
		}
		if decoded.EncodeAddress() != encoded {
			t.Errorf("decode round trip: got %s, want %s",
				decoded.EncodeAddress(), encoded)
		}
		if !decoded.IsForNet(&chaincfg.MainNetParams) {
			t.Errorf("decoded address %s not recognized as mainnet",
				encoded)
		}
	}
}

// TestDecodeAddressErrors ensures corrupted and foreign addresses are
// rejected with the appropriate errors.
func TestDecodeAddressErrors(t *testing.T) {
	pkHash := Hash160([]byte("test pubkey"))
	addr, err := NewAddressPubKeyHash(pkHash, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHash: %v", err)
	}
	valid := addr.EncodeAddress()

	// Corrupt a character; the Base58Check checksum must catch it.
	corrupted := []byte(valid)
	if corrupted[10] != '2' {
		corrupted[10] = '2'
	} else {
		corrupted[10] = '3'
	}
	if _, err := DecodeAddress(string(corrupted),
		&chaincfg.MainNetParams); err != ErrChecksumMismatch {
		t.Errorf("corrupted address: got %v, want %v", err,
			ErrChecksumMismatch)
	}

	// A bitcoin address carries a prefix no dogecoin network claims.
	btcAddr := CheckEncode(pkHash, 0x00)
	if _, err := VerifyAddress(btcAddr); err != chaincfg.ErrUnknownAddressPrefix {
		t.Errorf("foreign prefix: got %v, want %v", err,
			chaincfg.ErrUnknownAddressPrefix)
	}
}

// TestVerifyAddress exercises the structural address verification.
func TestVerifyAddress(t *testing.T) {
	pkHash := Hash160([]byte("another pubkey"))

	tests := []struct {
		net *chaincfg.Params
	}{
		{&chaincfg.MainNetParams},
		{&chaincfg.TestNet3Params},
	}

	for _, test := range tests {
		addr, err := NewAddressPubKeyHash(pkHash, test.net)
		if err != nil {
			t.Fatalf("NewAddressPubKeyHash: %v", err)
		}
		params, err := VerifyAddress(addr.EncodeAddress())
		if err != nil {
			t.Errorf("VerifyAddress(%s): %v", addr.EncodeAddress(), err)
			continue
		}
		if params != test.net {
			t.Errorf("VerifyAddress(%s): resolved to %s, want %s",
				addr.EncodeAddress(), params.Name, test.net.Name)
		}
	}
}

// TestBase58CheckRoundTrip exercises CheckEncode and CheckDecode.
func TestBase58CheckRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0xff}
	encoded := CheckEncode(payload, 0x1e)

	decoded, version, err := CheckDecode(encoded)
	if err != nil {
		t.Fatalf("CheckDecode: %v", err)
	}
	if version != 0x1e {
		t.Errorf("version: got %#02x, want 0x1e", version)
	}
	if string(decoded) != string(payload) {
		t.Errorf("payload: got %x, want %x", decoded, payload)
	}

	if _, _, err := CheckDecode("1A"); err != ErrInvalidFormat {
		t.Errorf("short input: got %v, want %v", err, ErrInvalidFormat)
	}
}
