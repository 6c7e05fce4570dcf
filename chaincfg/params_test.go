// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/dogesuite/doged/wire"
)

// TestParamsForNet ensures network magic lookups resolve to the expected
// parameter sets.
func TestParamsForNet(t *testing.T) {
	tests := []struct {
		net  wire.DogeNet
		want *Params
	}{
		{wire.MainNet, &MainNetParams},
		{wire.TestNet3, &TestNet3Params},
		{wire.RegNet, &RegNetParams},
		{wire.DogeNet(0x12345678), nil},
	}

	for _, test := range tests {
		if got := ParamsForNet(test.net); got != test.want {
			t.Errorf("ParamsForNet(%v): got %v, want %v", test.net, got,
				test.want)
		}
	}
}

// TestParamsForAddressPrefix ensures the chain-from-prefix mapping covers
// the registered networks and rejects unknown bytes.
func TestParamsForAddressPrefix(t *testing.T) {
	tests := []struct {
		prefix byte
		want   *Params
		err    error
	}{
		{0x1e, &MainNetParams, nil}, // mainnet P2PKH ('D')
		{0x16, &MainNetParams, nil}, // mainnet P2SH
		{0x9e, &MainNetParams, nil}, // mainnet WIF
		{0x71, &TestNet3Params, nil},
		{0xc4, &TestNet3Params, nil},
		{0xf1, &TestNet3Params, nil},
		{0x6f, &RegNetParams, nil},
		{0x42, nil, ErrUnknownAddressPrefix},
		{0x00, nil, ErrUnknownAddressPrefix}, // bitcoin P2PKH is foreign here
	}

	for _, test := range tests {
		got, err := ParamsForAddressPrefix(test.prefix)
		if err != test.err {
			t.Errorf("prefix %#02x: error %v, want %v", test.prefix, err,
				test.err)
			continue
		}
		if got != test.want {
			t.Errorf("prefix %#02x: got %v, want %v", test.prefix, got,
				test.want)
		}
	}
}

// TestRequiredConstants spot-checks the consensus constants the rest of the
// stack depends on.
func TestRequiredConstants(t *testing.T) {
	if MainNetParams.Net != wire.DogeNet(0xc0c0c0c0) {
		t.Errorf("mainnet magic: got %08x", uint32(MainNetParams.Net))
	}
	if TestNet3Params.Net != wire.DogeNet(0xdcb7c1fc) {
		t.Errorf("testnet magic: got %08x", uint32(TestNet3Params.Net))
	}
	if RegNetParams.Net != wire.DogeNet(0xdab5bffa) {
		t.Errorf("regnet magic: got %08x", uint32(RegNetParams.Net))
	}

	if MainNetParams.DefaultPort != "22556" ||
		TestNet3Params.DefaultPort != "44556" ||
		RegNetParams.DefaultPort != "18444" {
		t.Errorf("unexpected default port")
	}

	if MainNetParams.AuxPowChainID != 0x62 {
		t.Errorf("auxpow chain id: got %#x", MainNetParams.AuxPowChainID)
	}
	if !MainNetParams.StrictChainID || RegNetParams.StrictChainID {
		t.Errorf("unexpected strict chain id flags")
	}

	if MainNetParams.HDCoinType != 3 || TestNet3Params.HDCoinType != 1 {
		t.Errorf("unexpected BIP44 coin types")
	}
}

// TestGenesisBlock ensures the hard-coded genesis hashes match the hash of
// the serialized genesis headers.
func TestGenesisBlock(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
	}{
		{"mainnet", &MainNetParams},
		{"testnet3", &TestNet3Params},
		{"regnet", &RegNetParams},
	}

	for _, test := range tests {
		hash := test.params.GenesisBlock.Header.BlockHash()
		if hash != *test.params.GenesisHash {
			t.Errorf("%s: genesis hash %v does not match the hard-coded "+
				"hash %v", test.name, hash, test.params.GenesisHash)
		}
	}
}

// TestLatestCheckpoint ensures the checkpoint accessor returns the newest
// entry.
func TestLatestCheckpoint(t *testing.T) {
	cp := MainNetParams.LatestCheckpoint()
	if cp == nil {
		t.Fatalf("mainnet has no checkpoints")
	}
	for _, other := range MainNetParams.Checkpoints {
		if other.Height > cp.Height {
			t.Fatalf("LatestCheckpoint skipped height %d", other.Height)
		}
	}
	if RegNetParams.LatestCheckpoint() != nil {
		t.Fatalf("regnet should have no checkpoints")
	}
}
