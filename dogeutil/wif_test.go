// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/dogesuite/doged/chaincfg"
)

// TestEncodeDecodeWIF exercises the WIF round trip invariant on every
// network.
func TestEncodeDecodeWIF(t *testing.T) {
	// The one-valued secret keeps the test vector stable.
	var secret [32]byte
	secret[31] = 0x01
	priv := secp256k1.PrivKeyFromBytes(secret[:])

	tests := []struct {
		net        *chaincfg.Params
		compress   bool
		wantPrefix string
	}{
		{&chaincfg.MainNetParams, true, "Q"},
		{&chaincfg.MainNetParams, false, "6"},
		{&chaincfg.TestNet3Params, true, "c"},
	}

	for _, test := range tests {
		wif, err := NewWIF(priv, test.net, test.compress)
		if err != nil {
			t.Fatalf("NewWIF: %v", err)
		}

		encoded := wif.String()
		if !strings.HasPrefix(encoded, test.wantPrefix) {
			t.Errorf("WIF %s does not begin with %q", encoded,
				test.wantPrefix)
		}

		decoded, err := DecodeWIF(encoded)
		if err != nil {
			t.Fatalf("DecodeWIF(%s): %v", encoded, err)
		}
		if decoded.String() != encoded {
			t.Errorf("round trip: got %s, want %s", decoded.String(),
				encoded)
		}
		if !bytes.Equal(decoded.PrivKey.Serialize(), priv.Serialize()) {
			t.Errorf("round trip did not preserve the secret")
		}
		if decoded.CompressPubKey != test.compress {
			t.Errorf("round trip did not preserve the compression flag")
		}
		if !decoded.IsForNet(test.net) {
			t.Errorf("round trip did not preserve the network")
		}
	}
}

// TestDecodeWIFErrors ensures malformed WIF strings are rejected with the
// appropriate error.
func TestDecodeWIFErrors(t *testing.T) {
	priv := secp256k1.PrivKeyFromBytes([]byte{0x02})
	wif, err := NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		t.Fatalf("NewWIF: %v", err)
	}
	valid := wif.String()

	// Corrupt one character in the middle; the checksum must catch it.
	corrupted := []byte(valid)
	if corrupted[10] != '2' {
		corrupted[10] = '2'
	} else {
		corrupted[10] = '3'
	}
	if _, err := DecodeWIF(string(corrupted)); err != ErrChecksumMismatch {
		t.Errorf("corrupted WIF: got %v, want %v", err, ErrChecksumMismatch)
	}

	// Truncations are malformed before the checksum matters.
	if _, err := DecodeWIF(valid[:10]); err != ErrMalformedPrivateKey {
		t.Errorf("truncated WIF: got %v, want %v", err,
			ErrMalformedPrivateKey)
	}
}

// TestWIFKeypairVerify exercises the pair-check between a decoded secret and
// its public key.
func TestWIFKeypairVerify(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	wif, err := NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		t.Fatalf("NewWIF: %v", err)
	}

	decoded, err := DecodeWIF(wif.String())
	if err != nil {
		t.Fatalf("DecodeWIF: %v", err)
	}
	if !decoded.VerifyKeypair(priv.PubKey().SerializeCompressed()) {
		t.Errorf("keypair verification failed for matching keys")
	}

	other, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	if decoded.VerifyKeypair(other.PubKey().SerializeCompressed()) {
		t.Errorf("keypair verification accepted a foreign public key")
	}
}
