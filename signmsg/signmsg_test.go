// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signmsg

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/dogeutil"
)

// vectorWIF is the mainnet key used by the cross-package derivation vector.
const vectorWIF = "QWCcckTzUBiY1g3GFixihAscwHAKXeXY76v7Gcxhp3HUEAcBv33i"

// vectorAddr is the P2PKH address of vectorWIF.
const vectorAddr = "D8mQ2sKYpLbFCQLhGeHCPBmkLJRi6kRoSg"

// TestSignVerify signs a message and verifies it against the signer's
// address, then ensures verification fails for a different message and for
// a different address.
func TestSignVerify(t *testing.T) {
	wif, err := dogeutil.DecodeWIF(vectorWIF)
	if err != nil {
		t.Fatalf("DecodeWIF: %v", err)
	}
	params := &chaincfg.MainNetParams

	const message = "Hello World!"
	sig := SignMessage(wif.PrivKey, message, wif.CompressPubKey)

	if err := VerifyMessage(vectorAddr, sig, message, params); err != nil {
		t.Fatalf("VerifyMessage rejected a valid signature: %v", err)
	}

	// The same signature over a different message recovers a different key
	// and therefore a different address.
	if err := VerifyMessage(vectorAddr, sig, "This is a new test message",
		params); err == nil {
		t.Fatalf("VerifyMessage accepted a signature over another message")
	}

	// A different address cannot match.
	other, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	otherAddr, err := dogeutil.NewAddressPubKeyHashFromKey(
		other.PubKey().SerializeCompressed(), params)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHashFromKey: %v", err)
	}
	err = VerifyMessage(otherAddr.EncodeAddress(), sig, message, params)
	if err != ErrAddressMismatch {
		t.Fatalf("foreign address: got %v, want %v", err,
			ErrAddressMismatch)
	}
}

// TestSignVerifyUncompressed ensures the compression flag carried in the
// recovery header byte round trips.
func TestSignVerifyUncompressed(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	params := &chaincfg.MainNetParams

	addr, err := dogeutil.NewAddressPubKeyHashFromKey(
		priv.PubKey().SerializeUncompressed(), params)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHashFromKey: %v", err)
	}

	const message = "such verification"
	sig := SignMessage(priv, message, false)
	if err := VerifyMessage(addr.EncodeAddress(), sig, message,
		params); err != nil {
		t.Fatalf("VerifyMessage rejected uncompressed signature: %v", err)
	}
}

// TestVerifyInvalidSignature ensures undecodable signatures fail cleanly.
func TestVerifyInvalidSignature(t *testing.T) {
	params := &chaincfg.MainNetParams
	err := VerifyMessage(vectorAddr, "not base64!!", "msg", params)
	if err != ErrInvalidSignature {
		t.Fatalf("invalid base64: got %v, want %v", err,
			ErrInvalidSignature)
	}

	// Valid base64, invalid compact signature length.
	err = VerifyMessage(vectorAddr, "AAAA", "msg", params)
	if err != ErrRecoveryFailed {
		t.Fatalf("short signature: got %v, want %v", err, ErrRecoveryFailed)
	}
}

// TestMessageDigestPrefix ensures the digest commits to the dogecoin
// message prefix and the message length.
func TestMessageDigestPrefix(t *testing.T) {
	d1 := MessageDigest("a")
	d2 := MessageDigest("b")
	if d1 == d2 {
		t.Fatalf("distinct messages share a digest")
	}

	// The digest covers the length var-int, so a message that happens to
	// embed another must not collide.
	d3 := MessageDigest("aa")
	if d1 == d3 {
		t.Fatalf("prefix messages share a digest")
	}
}
