// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/dogesuite/doged/chaincfg"
)

var (
	// ErrUnknownAddressType describes an error where an address cannot be
	// decoded as a specific address type due to the string encoding
	// beginning with an unidentified byte or prefix.
	ErrUnknownAddressType = errors.New("unknown address type")
)

// minAddressPayload is the smallest number of payload bytes a Base58Check
// encoded address may carry.
const minAddressPayload = ripemd160Size

// ripemd160Size is the size in bytes of a ripemd160 hash.
const ripemd160Size = 20

// Address is an interface type for any type of destination a transaction
// output may spend to.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	String() string

	// EncodeAddress returns the string encoding of the payment address
	// associated with the Address value.
	EncodeAddress() string

	// ScriptAddress returns the raw bytes of the address to be used when
	// inserting the address into a txout's script.
	ScriptAddress() []byte

	// IsForNet returns whether or not the address is associated with the
	// passed dogecoin network.
	IsForNet(*chaincfg.Params) bool
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	hash  [ripemd160Size]byte
	netID byte
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash.  pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, net *chaincfg.Params) (*AddressPubKeyHash, error) {
	if len(pkHash) != ripemd160Size {
		return nil, errors.New("pkHash must be 20 bytes")
	}
	addr := &AddressPubKeyHash{netID: net.PubKeyHashAddrID}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// NewAddressPubKeyHashFromKey derives the pay-to-pubkey-hash address of the
// provided serialized public key.
func NewAddressPubKeyHashFromKey(serializedPubKey []byte, net *chaincfg.Params) (*AddressPubKeyHash, error) {
	return NewAddressPubKeyHash(Hash160(serializedPubKey), net)
}

// EncodeAddress returns the string encoding of a pay-to-pubkey-hash address.
// Part of the Address interface.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay to
// a pubkey hash.  Part of the Address interface.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-pubkey-hash address is
// associated with the passed dogecoin network.
func (a *AddressPubKeyHash) IsForNet(net *chaincfg.Params) bool {
	return a.netID == net.PubKeyHashAddrID
}

// String returns a human-readable string for the pay-to-pubkey-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type
// can be used as a fmt.Stringer.
func (a *AddressPubKeyHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the pubkey hash.  This can be
// useful when an array is more appropriate than a slice (for example, when
// used as map keys).
func (a *AddressPubKeyHash) Hash160() *[ripemd160Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	hash  [ripemd160Size]byte
	netID byte
}

// NewAddressScriptHash returns a new AddressScriptHash for the provided
// redemption script.
func NewAddressScriptHash(serializedScript []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	return NewAddressScriptHashFromHash(Hash160(serializedScript), net)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash.  scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	if len(scriptHash) != ripemd160Size {
		return nil, errors.New("scriptHash must be 20 bytes")
	}
	addr := &AddressScriptHash{netID: net.ScriptHashAddrID}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-script-hash address.
// Part of the Address interface.
func (a *AddressScriptHash) EncodeAddress() string {
	return CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay to
// a script hash.  Part of the Address interface.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-script-hash address is
// associated with the passed dogecoin network.
func (a *AddressScriptHash) IsForNet(net *chaincfg.Params) bool {
	return a.netID == net.ScriptHashAddrID
}

// String returns a human-readable string for the pay-to-script-hash address.
func (a *AddressScriptHash) String() string {
	return a.EncodeAddress()
}

// AddressWitnessPubKeyHash is an Address for a pay-to-witness-pubkey-hash
// (P2WPKH) output, encoded with bech32 using the chain's human-readable
// part.
type AddressWitnessPubKeyHash struct {
	hrp            string
	witnessVersion byte
	witnessProgram [ripemd160Size]byte
}

// NewAddressWitnessPubKeyHash returns a new AddressWitnessPubKeyHash.
// witnessProg must be 20 bytes.
func NewAddressWitnessPubKeyHash(witnessProg []byte, net *chaincfg.Params) (*AddressWitnessPubKeyHash, error) {
	if len(witnessProg) != ripemd160Size {
		return nil, errors.New("witness program must be 20 bytes for p2wpkh")
	}
	addr := &AddressWitnessPubKeyHash{
		hrp:            strings.ToLower(net.Bech32HRPSegwit),
		witnessVersion: 0x00,
	}
	copy(addr.witnessProgram[:], witnessProg)
	return addr, nil
}

// EncodeAddress returns the bech32 string encoding of an
// AddressWitnessPubKeyHash.  Part of the Address interface.
func (a *AddressWitnessPubKeyHash) EncodeAddress() string {
	str, err := encodeSegWitAddress(a.hrp, a.witnessVersion,
		a.witnessProgram[:])
	if err != nil {
		return ""
	}
	return str
}

// ScriptAddress returns the witness program bytes.  Part of the Address
// interface.
func (a *AddressWitnessPubKeyHash) ScriptAddress() []byte {
	return a.witnessProgram[:]
}

// IsForNet returns whether or not the witness address is associated with the
// passed dogecoin network.
func (a *AddressWitnessPubKeyHash) IsForNet(net *chaincfg.Params) bool {
	return a.hrp == net.Bech32HRPSegwit
}

// String returns a human-readable string for the witness address.
func (a *AddressWitnessPubKeyHash) String() string {
	return a.EncodeAddress()
}

// encodeSegWitAddress creates a bech32 encoded address string representation
// from witness version and witness program.
func encodeSegWitAddress(hrp string, witnessVersion byte, witnessProgram []byte) (string, error) {
	// Group the address bytes into 5 bit groups, as this is what is used to
	// encode each character in the address string.
	converted, err := bech32.ConvertBits(witnessProgram, 8, 5, true)
	if err != nil {
		return "", err
	}

	// Concatenate the witness version and program, and encode the resulting
	// bytes using bech32 encoding.
	combined := make([]byte, len(converted)+1)
	combined[0] = witnessVersion
	copy(combined[1:], converted)
	return bech32.Encode(hrp, combined)
}

// decodeSegWitAddress parses a bech32 encoded segwit address string and
// returns the witness version and witness program byte representation.
func decodeSegWitAddress(address string) (byte, []byte, error) {
	// Decode the bech32 encoded address.
	_, data, err := bech32.Decode(address)
	if err != nil {
		return 0, nil, err
	}

	// The first byte of the decoded address is the witness version, it must
	// exist.
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("no witness version")
	}

	// ...and be <= 16.
	version := data[0]
	if version > 16 {
		return 0, nil, fmt.Errorf("invalid witness version: %v", version)
	}

	// The remaining characters of the address returned are grouped into
	// words of 5 bits.  In order to restore the original witness program
	// bytes, we'll need to regroup into 8 bit words.
	regrouped, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, err
	}

	// The regrouped data must be between 2 and 40 bytes.
	if len(regrouped) < 2 || len(regrouped) > 40 {
		return 0, nil, fmt.Errorf("invalid data length")
	}

	// For witness version 0, address MUST be exactly 20 or 32 bytes.
	if version == 0 && len(regrouped) != 20 && len(regrouped) != 32 {
		return 0, nil, fmt.Errorf("invalid data length for witness "+
			"version 0: %v", len(regrouped))
	}

	return version, regrouped, nil
}

// DecodeAddress decodes the string encoding of an address and returns the
// Address if addr is a valid encoding for a known address type on the
// network identified by its prefix.
func DecodeAddress(addr string, defaultNet *chaincfg.Params) (Address, error) {
	// Bech32 encoded segwit addresses start with a human-readable part
	// (hrp) followed by '1'.
	oneIndex := strings.LastIndexByte(addr, '1')
	if oneIndex > 1 {
		prefix := addr[:oneIndex+1]
		if chaincfg.IsBech32SegwitPrefix(strings.ToLower(prefix)) {
			witnessVer, witnessProg, err := decodeSegWitAddress(addr)
			if err != nil {
				return nil, err
			}
			hrp := strings.ToLower(prefix[:len(prefix)-1])
			if witnessVer != 0 || len(witnessProg) != ripemd160Size {
				return nil, ErrUnknownAddressType
			}
			addr := &AddressWitnessPubKeyHash{
				hrp:            hrp,
				witnessVersion: witnessVer,
			}
			copy(addr.witnessProgram[:], witnessProg)
			return addr, nil
		}
	}

	// Everything else is Base58Check with a single version byte.
	decoded, netID, err := CheckDecode(addr)
	if err != nil {
		if err == ErrChecksumMismatch {
			return nil, ErrChecksumMismatch
		}
		return nil, ErrUnknownAddressType
	}
	if len(decoded) != ripemd160Size {
		return nil, errors.New("decoded address is of unknown size")
	}

	params, err := chaincfg.ParamsForAddressPrefix(netID)
	if err != nil {
		return nil, err
	}
	switch netID {
	case params.PubKeyHashAddrID:
		return NewAddressPubKeyHash(decoded, params)
	case params.ScriptHashAddrID:
		return NewAddressScriptHashFromHash(decoded, params)
	}
	return nil, ErrUnknownAddressType
}

// VerifyAddress performs the cheap structural checks on a Base58Check
// encoded address: the checksum must match, the payload must be at least a
// ripemd160 hash, and the leading version byte must belong to a registered
// network.  The network the prefix maps to is returned.
//
// Note this deliberately involves no public key material; it validates
// encoding, not ownership.
func VerifyAddress(addr string) (*chaincfg.Params, error) {
	decoded, netID, err := CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(decoded) < minAddressPayload {
		return nil, ErrInvalidFormat
	}
	return chaincfg.ParamsForAddressPrefix(netID)
}
