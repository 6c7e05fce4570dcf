// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/EXCCoin/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
)

var (
	// ErrMalformedPrivateKey describes an error where a WIF-encoded private
	// key cannot be decoded due to being improperly formatted.  This may
	// occur if the byte length is incorrect or an unexpected magic number
	// was encountered.
	ErrMalformedPrivateKey = errors.New("malformed private key")
)

const (
	// privKeyBytesLen is the size of a private key in bytes.
	privKeyBytesLen = 32

	// cksumBytesLen is the size of the checksum in bytes.
	cksumBytesLen = 4

	// compressMagic is the magic byte appended to the serialized private
	// key of a WIF whose address was created from the compressed public
	// key.
	compressMagic byte = 0x01
)

// ErrWrongWIFNetwork describes an error in which the provided WIF is not for
// the expected network.
type ErrWrongWIFNetwork byte

// Error implements the error interface.
func (e ErrWrongWIFNetwork) Error() string {
	return fmt.Sprintf("WIF is not for the network identified by %#02x",
		byte(e))
}

// WIF contains the individual components described by the Wallet Import
// Format (WIF).  A WIF string is typically used to represent a private key
// and its associated address in a way that may be easily copied and imported
// into or exported from wallet software.  WIF strings may be decoded into
// this structure by calling DecodeWIF or created with a user-provided
// private key by calling NewWIF.
type WIF struct {
	// PrivKey is the private key being imported or exported.
	PrivKey *secp256k1.PrivateKey

	// CompressPubKey specifies whether the address controlled by the
	// imported or exported private key was created by hashing a compressed
	// (33-byte) serialized public key, rather than an uncompressed
	// (65-byte) one.
	CompressPubKey bool

	// netID is the network identifier byte used when WIF encoding the
	// private key.
	netID byte
}

// NewWIF creates a new WIF structure to export an address and its private
// key as a string encoded in the Wallet Import Format.  The compress
// argument specifies whether the address intended to be imported or exported
// was created by serializing the public key compressed rather than
// uncompressed.
func NewWIF(privKey *secp256k1.PrivateKey, net *chaincfg.Params, compress bool) (*WIF, error) {
	if net == nil {
		return nil, errors.New("no network")
	}
	return &WIF{privKey, compress, net.PrivateKeyID}, nil
}

// IsForNet returns whether or not the decoded WIF structure is associated
// with the passed dogecoin network.
func (w *WIF) IsForNet(net *chaincfg.Params) bool {
	return w.netID == net.PrivateKeyID
}

// DecodeWIF creates a new WIF structure by decoding the string encoding of
// the import format.
//
// The WIF string must be a base58-encoded string of the following byte
// sequence:
//
//   - 1 byte to identify the network; DecodeWIF does not check it against
//     the registered networks, IsForNet reports whether it matches one
//   - 32 bytes of a binary-encoded, big-endian, zero-padded private key
//   - Optional 1 byte (equal to 0x01) if the address being imported or
//     exported was created by taking the RIPEMD160 after SHA256 hash of a
//     serialized compressed (33-byte) public key
//   - 4 bytes of checksum, must equal the first four bytes of the double
//     SHA256 of every byte before the checksum in this sequence
//
// If the base58-decoded byte sequence does not match this, DecodeWIF will
// return a non-nil error.  ErrMalformedPrivateKey is returned when the WIF
// is of an impossible length.  ErrChecksumMismatch is returned if the
// expected WIF checksum does not match the calculated checksum.
func DecodeWIF(wif string) (*WIF, error) {
	decoded := base58.Decode(wif)
	decodedLen := len(decoded)

	var compress bool

	// Length of base58 decoded WIF must be 32 bytes + an optional 1 byte
	// (0x01) if compressed, plus 1 byte for netID + 4 bytes of checksum.
	switch decodedLen {
	case 1 + privKeyBytesLen + 1 + cksumBytesLen:
		if decoded[33] != compressMagic {
			return nil, ErrMalformedPrivateKey
		}
		compress = true
	case 1 + privKeyBytesLen + cksumBytesLen:
		compress = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	// Checksum is first four bytes of double SHA256 of the identifier byte
	// and privKey.  Verify this matches the final 4 bytes of the decoded
	// private key.
	var tosum []byte
	if compress {
		tosum = decoded[:1+privKeyBytesLen+1]
	} else {
		tosum = decoded[:1+privKeyBytesLen]
	}
	cksum := chainhash.DoubleHashB(tosum)[:cksumBytesLen]
	if !bytes.Equal(cksum, decoded[decodedLen-cksumBytesLen:]) {
		return nil, ErrChecksumMismatch
	}

	netID := decoded[0]
	privKeyBytes := decoded[1 : 1+privKeyBytesLen]
	privKey := secp256k1.PrivKeyFromBytes(privKeyBytes)
	return &WIF{privKey, compress, netID}, nil
}

// String creates the Wallet Import Format string encoding of a WIF
// structure.  See DecodeWIF for a detailed breakdown of the format and
// requirements of a valid WIF string.
func (w *WIF) String() string {
	// Precalculate size.  Maximum number of bytes before base58 encoding
	// is one byte for the network, 32 bytes of private key, possibly one
	// extra byte if the pubkey is to be compressed, and finally four bytes
	// of checksum.
	encodeLen := 1 + privKeyBytesLen + cksumBytesLen
	if w.CompressPubKey {
		encodeLen++
	}

	a := make([]byte, 0, encodeLen)
	a = append(a, w.netID)
	a = append(a, w.PrivKey.Serialize()...)
	if w.CompressPubKey {
		a = append(a, compressMagic)
	}

	cksum := chainhash.DoubleHashB(a)
	a = append(a, cksum[:cksumBytesLen]...)
	return base58.Encode(a)
}

// SerializePubKey serializes the associated public key of the imported or
// exported private key in either a compressed or uncompressed format.  The
// serialization format chosen depends on the value of w.CompressPubKey.
func (w *WIF) SerializePubKey() []byte {
	pk := w.PrivKey.PubKey()
	if w.CompressPubKey {
		return pk.SerializeCompressed()
	}
	return pk.SerializeUncompressed()
}

// Zero wipes the private key material held by the WIF.  The WIF must not be
// used afterwards.
func (w *WIF) Zero() {
	if w.PrivKey != nil {
		w.PrivKey.Zero()
	}
}

// VerifyKeypair pair-checks that the private key held by the WIF derives the
// provided serialized public key.
func (w *WIF) VerifyKeypair(serializedPubKey []byte) bool {
	return bytes.Equal(w.SerializePubKey(), serializedPubKey)
}
