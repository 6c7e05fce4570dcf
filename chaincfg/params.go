// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"errors"
	"time"

	"github.com/decred/dcrd/math/uint256"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

var (
	// ErrUnknownAddressPrefix describes an error where an address cannot be
	// mapped to a known network because its leading version byte is not
	// registered for any of them.
	ErrUnknownAddressPrefix = errors.New("unknown address prefix")
)

// Checkpoint identifies a known good point in the block chain.  Using
// checkpoints allows the headers database to bootstrap from a trusted recent
// block without validating history all the way back to genesis.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering by service
	// flags (wire.ServiceFlag).
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a dogecoin network by its parameters.  These parameters may
// be used by dogecoin applications to differentiate networks as well as
// addresses and keys for one network from those intended for use on another
// network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.DogeNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *uint256.Uint256

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// AuxPowChainID is the merge-mining chain id reserved for this chain in
	// the upper bits of the block version.
	AuxPowChainID int32

	// StrictChainID, when set, rejects merge-mined blocks whose version
	// does not carry AuxPowChainID.
	StrictChainID bool

	// AllowAuxPow indicates whether headers on this network may carry an
	// auxiliary proof of work on the wire.
	AllowAuxPow bool

	// MinimumChainWork is the amount of cumulative work assigned to the
	// bottom of a chain bootstrapped from a checkpoint.  This is intended
	// to be updated periodically with new releases.
	MinimumChainWork *uint256.Uint256

	// TargetTimePerBlock defines the desired amount of time to generate
	// each block.
	TargetTimePerBlock time.Duration

	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint

	// Address encoding magics.
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key

	// Human-readable part for Bech32 encoded segwit addresses.
	Bech32HRPSegwit string

	// BIP32 hierarchical deterministic extended key magics.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType uint32
}

// MainNetParams defines the network parameters for the main dogecoin
// network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "22556",
	DNSSeeds: []DNSSeed{
		{"seed.dogecoin.com", true},
		{"seed.multidoge.org", true},
		{"seed2.multidoge.org", true},
		{"seed.doger.dogecoin.com", false},
	},

	// Chain parameters
	GenesisBlock:       &genesisBlock,
	GenesisHash:        genesisHash,
	PowLimit:           hexToUint256("00000fffff000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:       0x1e0fffff,
	AuxPowChainID:      0x0062,
	StrictChainID:      true,
	AllowAuxPow:        true,
	MinimumChainWork:   hexToUint256("000000000000000000000000000000000000000000000c8b9e8a4b1d7f23a100"),
	TargetTimePerBlock: time.Minute,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{
		{104679, newHashFromStr("35eb87ae90d44b98898fec8c39577b76cb1eb08e1261cfc10706c8ce9a1d01cf")},
		{145000, newHashFromStr("cc47cae70d7c5c92828d3214a266331dde59087d4a39071fa76ddfff9b7bde72")},
		{371337, newHashFromStr("60323982f9c5ff1b5a954eac9dc1269352835f47c2c5222691d80f0d50dcf053")},
		{1000000, newHashFromStr("6aae55bea74235f0c80bd066349d4440c31f2d0f27d54265ecd484d8c1d11b47")},
	},

	// Address encoding magics
	PubKeyHashAddrID: 0x1e, // starts with D
	ScriptHashAddrID: 0x16, // starts with 9 or A
	PrivateKeyID:     0x9e, // starts with 6 (uncompressed) or Q (compressed)

	// Human-readable part for Bech32 encoded segwit addresses.
	Bech32HRPSegwit: "doge",

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x02, 0xfa, 0xc3, 0x98}, // starts with dgpv
	HDPublicKeyID:  [4]byte{0x02, 0xfa, 0xca, 0xfd}, // starts with dgub

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType: 3,
}

// TestNet3Params defines the network parameters for the test dogecoin
// network (version 3).
var TestNet3Params = Params{
	Name:        "testnet3",
	Net:         wire.TestNet3,
	DefaultPort: "44556",
	DNSSeeds: []DNSSeed{
		{"testseed.jrn.me.uk", false},
	},

	// Chain parameters
	GenesisBlock:       &testNet3GenesisBlock,
	GenesisHash:        testNet3GenesisHash,
	PowLimit:           hexToUint256("00000fffff000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:       0x1e0fffff,
	AuxPowChainID:      0x0062,
	StrictChainID:      true,
	AllowAuxPow:        true,
	MinimumChainWork:   hexToUint256("000000000000000000000000000000000000000000000000000f2b6e2a3c1d00"),
	TargetTimePerBlock: time.Minute,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{
		{483173, newHashFromStr("a804201ca0aceb7e937ef7a3c613a9b7589245b10cc095148c4ce4965b0b73b5")},
		{591117, newHashFromStr("5f6b93b2c28cedf32467d900369b8be6700f0649388a7dbfd3ebd4a01b1ffad8")},
	},

	// Address encoding magics
	PubKeyHashAddrID: 0x71, // starts with n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xf1, // starts with 9 (uncompressed) or c (compressed)

	// Human-readable part for Bech32 encoded segwit addresses.
	Bech32HRPSegwit: "tdge",

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType: 1,
}

// RegNetParams defines the network parameters for the regression test
// dogecoin network.
var RegNetParams = Params{
	Name:        "regtest",
	Net:         wire.RegNet,
	DefaultPort: "18444",
	DNSSeeds:    []DNSSeed{},

	// Chain parameters
	GenesisBlock:       &regTestGenesisBlock,
	GenesisHash:        regTestGenesisHash,
	PowLimit:           hexToUint256("7fffff0000000000000000000000000000000000000000000000000000000000"),
	PowLimitBits:       0x207fffff,
	AuxPowChainID:      0x0062,
	StrictChainID:      false,
	AllowAuxPow:        true,
	MinimumChainWork:   new(uint256.Uint256),
	TargetTimePerBlock: time.Minute,

	Checkpoints: nil,

	// Address encoding magics
	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xef,

	// Human-readable part for Bech32 encoded segwit addresses.
	Bech32HRPSegwit: "dcrt",

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType: 1,
}

// registeredNets holds the networks recognized by the prefix and magic
// lookups, ordered so that mainnet wins ambiguous prefixes.
var registeredNets = []*Params{&MainNetParams, &TestNet3Params, &RegNetParams}

// ParamsForNet returns the network parameters identified by the given
// network magic, or nil when the magic is not registered.
func ParamsForNet(net wire.DogeNet) *Params {
	for _, params := range registeredNets {
		if params.Net == net {
			return params
		}
	}
	return nil
}

// ParamsForAddressPrefix inspects the leading version byte of a Base58Check
// decoded address and returns the parameters of the network it belongs to.
// ErrUnknownAddressPrefix is returned when no registered network claims the
// prefix.
func ParamsForAddressPrefix(prefix byte) (*Params, error) {
	for _, params := range registeredNets {
		switch prefix {
		case params.PubKeyHashAddrID, params.ScriptHashAddrID,
			params.PrivateKeyID:
			return params, nil
		}
	}
	return nil, ErrUnknownAddressPrefix
}

// IsBech32SegwitPrefix returns whether the prefix is a known prefix for
// segwit addresses on any registered network.  The prefix is checked against
// the human-readable parts with a separator appended.
func IsBech32SegwitPrefix(prefix string) bool {
	for _, params := range registeredNets {
		if prefix == params.Bech32HRPSegwit+"1" {
			return true
		}
	}
	return false
}

// LatestCheckpoint returns the most recent checkpoint for the network, or
// nil when the network has none.
func (p *Params) LatestCheckpoint() *Checkpoint {
	if len(p.Checkpoints) == 0 {
		return nil
	}
	return &p.Checkpoints[len(p.Checkpoints)-1]
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in
// that it panics on an error since it will only (and must only) be called
// with hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// hexToUint256 converts the passed big-endian hex string into a uint256.  It
// only differs from the one available in the uint256 package in that it
// panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, values.
func hexToUint256(hexStr string) *uint256.Uint256 {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		panic("invalid hex in source file: " + hexStr)
	}
	return new(uint256.Uint256).SetByteSlice(b)
}
