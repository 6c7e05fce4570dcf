// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/dogesuite/doged/chaincfg"
)

// testVecSeed is the BIP32 test vector 1 master seed, also used by the
// BIP44 derivation tests.
var testVecSeed, _ = hex.DecodeString("000102030405060708090a0b0c0d0e0f")

// TestNewMaster ensures master key generation is deterministic and enforces
// the seed length bounds.
func TestNewMaster(t *testing.T) {
	net := &chaincfg.MainNetParams

	k1, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	k2, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	if k1.String() != k2.String() {
		t.Fatalf("NewMaster is not deterministic")
	}
	if !k1.IsPrivate() {
		t.Fatalf("master key is not private")
	}
	if k1.Depth() != 0 || k1.ParentFingerprint() != 0 {
		t.Fatalf("master key has non-root depth or fingerprint")
	}

	// Mainnet extended private keys are serialized with the dgpv prefix.
	if !strings.HasPrefix(k1.String(), "dgpv") {
		t.Errorf("mainnet xprv %s does not start with dgpv", k1.String())
	}
	if !strings.HasPrefix(k1.Neuter().String(), "dgub") {
		t.Errorf("mainnet xpub does not start with dgub")
	}

	// Seed length bounds.
	if _, err := NewMaster(make([]byte, MinSeedBytes-1), net); err != ErrInvalidSeedLen {
		t.Errorf("short seed: got %v, want %v", err, ErrInvalidSeedLen)
	}
	if _, err := NewMaster(make([]byte, MaxSeedBytes+1), net); err != ErrInvalidSeedLen {
		t.Errorf("long seed: got %v, want %v", err, ErrInvalidSeedLen)
	}
}

// TestChildDerivation ensures private and public derivation stay in
// agreement: neuter-then-derive equals derive-then-neuter for non-hardened
// children.
func TestChildDerivation(t *testing.T) {
	net := &chaincfg.MainNetParams
	master, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	for _, i := range []uint32{0, 1, 2, 1000} {
		privChild, err := master.Child(i)
		if err != nil {
			t.Fatalf("Child(%d): %v", i, err)
		}
		pubChild, err := master.Neuter().Child(i)
		if err != nil {
			t.Fatalf("Neuter().Child(%d): %v", i, err)
		}

		if !bytes.Equal(privChild.SerializedPubKey(),
			pubChild.SerializedPubKey()) {
			t.Fatalf("child %d: private and public derivation disagree", i)
		}
		if privChild.Neuter().String() != pubChild.String() {
			t.Fatalf("child %d: serialized extended pubkeys disagree", i)
		}
		if privChild.Depth() != 1 || privChild.ChildIndex() != i {
			t.Fatalf("child %d: wrong depth or index", i)
		}
	}
}

// TestHardenedDerivation ensures hardened children require the private key.
func TestHardenedDerivation(t *testing.T) {
	net := &chaincfg.MainNetParams
	master, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	hardened, err := master.Child(HardenedKeyStart)
	if err != nil {
		t.Fatalf("hardened Child: %v", err)
	}
	if !hardened.IsPrivate() {
		t.Fatalf("hardened child of private key is not private")
	}

	_, err = master.Neuter().Child(HardenedKeyStart)
	if err != ErrDeriveHardFromPublic {
		t.Fatalf("hardened from public: got %v, want %v", err,
			ErrDeriveHardFromPublic)
	}
}

// TestSerializationRoundTrip ensures extended keys survive the string
// round trip on each network.
func TestSerializationRoundTrip(t *testing.T) {
	for _, net := range []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNet3Params,
	} {
		master, err := NewMaster(testVecSeed, net)
		if err != nil {
			t.Fatalf("NewMaster: %v", err)
		}
		child, err := master.Child(HardenedKeyStart + 5)
		if err != nil {
			t.Fatalf("Child: %v", err)
		}

		for _, key := range []*ExtendedKey{master, child, child.Neuter()} {
			encoded := key.String()
			decoded, err := NewKeyFromString(encoded, net)
			if err != nil {
				t.Fatalf("NewKeyFromString(%s): %v", encoded, err)
			}
			if decoded.String() != encoded {
				t.Fatalf("round trip: got %s, want %s", decoded.String(),
					encoded)
			}
			if decoded.IsPrivate() != key.IsPrivate() {
				t.Fatalf("round trip changed key privacy")
			}
		}
	}

	// A mainnet key must not parse with testnet parameters.
	master, _ := NewMaster(testVecSeed, &chaincfg.MainNetParams)
	if _, err := NewKeyFromString(master.String(),
		&chaincfg.TestNet3Params); err != ErrWrongNetwork {
		t.Fatalf("wrong network: got %v, want %v", err, ErrWrongNetwork)
	}

	// Checksum corruption must be detected.
	encoded := []byte(master.String())
	encoded[len(encoded)-1] ^= 0x01
	if _, err := NewKeyFromString(string(encoded),
		&chaincfg.MainNetParams); err != ErrBadChecksum &&
		err != ErrInvalidKeyLen {
		t.Fatalf("corrupted key: got %v", err)
	}
}

// TestZero ensures zeroing wipes the key material.
func TestZero(t *testing.T) {
	master, err := NewMaster(testVecSeed, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	master.Zero()
	if master.IsPrivate() {
		t.Errorf("zeroed key still claims to be private")
	}
	if master.String() != "zeroed extended key" {
		t.Errorf("zeroed key still serializes")
	}
	if _, err := master.ECPrivKey(); err == nil {
		t.Errorf("zeroed key still yields a private key")
	}
}

// TestGenerateSeed ensures seed generation respects the length bounds.
func TestGenerateSeed(t *testing.T) {
	for _, length := range []uint8{MinSeedBytes, RecommendedSeedLen, MaxSeedBytes} {
		seed, err := GenerateSeed(length)
		if err != nil {
			t.Fatalf("GenerateSeed(%d): %v", length, err)
		}
		if len(seed) != int(length) {
			t.Fatalf("GenerateSeed(%d): got %d bytes", length, len(seed))
		}
	}
	if _, err := GenerateSeed(MinSeedBytes - 1); err != ErrInvalidSeedLen {
		t.Fatalf("short seed length accepted")
	}
}
