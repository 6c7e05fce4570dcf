// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dogesuite/doged/chaincfg"
)

// TestParsePath exercises the derivation path parser.
func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		indices []uint32
		wantErr bool
	}{
		{"m", []uint32{}, false},
		{"m/0", []uint32{0}, false},
		{"m/0'", []uint32{HardenedKeyStart}, false},
		{"m/0h", []uint32{HardenedKeyStart}, false},
		{"44'/3'/0'", []uint32{
			HardenedKeyStart + 44,
			HardenedKeyStart + 3,
			HardenedKeyStart,
		}, false},
		{"m/44'/3'/0'/0/0", []uint32{
			HardenedKeyStart + 44,
			HardenedKeyStart + 3,
			HardenedKeyStart,
			0,
			0,
		}, false},
		{"", nil, true},
		{"m//0", nil, true},
		{"m/x", nil, true},
		{"m/2147483648", nil, true}, // index beyond the hardened marker
		{"m/" + strings.Repeat("0/", 200), nil, true}, // over MaxPathLen
	}

	for _, test := range tests {
		indices, err := ParsePath(test.path)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParsePath(%q) succeeded: %v", test.path, indices)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePath(%q): %v", test.path, err)
			continue
		}
		if len(indices) != len(test.indices) {
			t.Errorf("ParsePath(%q): got %v, want %v", test.path, indices,
				test.indices)
			continue
		}
		for i := range indices {
			if indices[i] != test.indices[i] {
				t.Errorf("ParsePath(%q): got %v, want %v", test.path,
					indices, test.indices)
				break
			}
		}
	}
}

// TestDeriveBIP44Key ensures the structured derivation helpers agree with
// the string path derivation and are deterministic.
func TestDeriveBIP44Key(t *testing.T) {
	net := &chaincfg.MainNetParams
	master, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	leaf, err := DeriveBIP44Key(master, net, 0, ExternalBranch, 0)
	if err != nil {
		t.Fatalf("DeriveBIP44Key: %v", err)
	}

	// Deriving the same path twice from a fresh master yields the same
	// public key.
	master2, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	byPath, err := DerivePath(master2, "m/44'/3'/0'/0/0")
	if err != nil {
		t.Fatalf("DerivePath: %v", err)
	}
	if !bytes.Equal(leaf.SerializedPubKey(), byPath.SerializedPubKey()) {
		t.Fatalf("structured and string derivation disagree")
	}

	// The leaf sits at depth 5 below the root.
	if leaf.Depth() != 5 {
		t.Fatalf("leaf depth %d, want 5", leaf.Depth())
	}

	// Account-level derivation stops at depth 3.
	master3, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	account, err := DeriveBIP44AccountKey(master3, net, 0)
	if err != nil {
		t.Fatalf("DeriveBIP44AccountKey: %v", err)
	}
	if account.Depth() != 3 {
		t.Fatalf("account depth %d, want 3", account.Depth())
	}

	// External branch addresses below the account key match the full
	// derivation.
	branch, err := account.Child(ExternalBranch)
	if err != nil {
		t.Fatalf("Child: %v", err)
	}
	index0, err := branch.Child(0)
	if err != nil {
		t.Fatalf("Child: %v", err)
	}
	if !bytes.Equal(index0.SerializedPubKey(), leaf.SerializedPubKey()) {
		t.Fatalf("account-level derivation disagrees with leaf derivation")
	}
}

// TestDeriveBIP44KeyErrors exercises the argument validation.
func TestDeriveBIP44KeyErrors(t *testing.T) {
	net := &chaincfg.MainNetParams
	master, err := NewMaster(testVecSeed, net)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	if _, err := DeriveBIP44Key(master, net, 0, 2, 0); err != ErrInvalidBranch {
		t.Errorf("invalid branch: got %v, want %v", err, ErrInvalidBranch)
	}

	// Hardened steps cannot be taken from a neutered master.
	if _, err := DeriveBIP44AccountKey(master.Neuter(), net,
		0); err != ErrDeriveHardFromPublic {
		t.Errorf("public master: got %v, want %v", err,
			ErrDeriveHardFromPublic)
	}
}

// TestBIP44DeterministicVector ensures deriving the path m/44'/3'/0'/0/0
// twice from the standard test seed yields the same compressed public key.
// The key is not compared against a stored value.
func TestBIP44DeterministicVector(t *testing.T) {
	net := &chaincfg.MainNetParams

	derive := func() []byte {
		master, err := NewMaster(testVecSeed, net)
		if err != nil {
			t.Fatalf("NewMaster: %v", err)
		}
		leaf, err := DerivePath(master, "m/44'/3'/0'/0/0")
		if err != nil {
			t.Fatalf("DerivePath: %v", err)
		}
		return leaf.SerializedPubKey()
	}

	first := derive()
	second := derive()
	if !bytes.Equal(first, second) {
		t.Fatalf("derivation is not deterministic")
	}
	if len(first) != 33 || (first[0] != 0x02 && first[0] != 0x03) {
		t.Fatalf("leaf public key is not a compressed point: %x", first)
	}
}
