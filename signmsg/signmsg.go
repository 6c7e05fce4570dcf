// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signmsg

import (
	"bytes"
	"encoding/base64"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/dogeutil"
	"github.com/dogesuite/doged/wire"
)

// messageSignatureHeader is the prefix every signed message digest commits
// to.  The leading 0x19 byte is the var-int length of the remaining text.
const messageSignatureHeader = "\x19Dogecoin Signed Message:\n"

var (
	// ErrInvalidSignature describes an error where a signature string is
	// not valid base64 or has an impossible length.
	ErrInvalidSignature = errors.New("invalid signature encoding")

	// ErrRecoveryFailed describes an error where no public key could be
	// recovered from a signature and digest pair.
	ErrRecoveryFailed = errors.New("public key recovery failed")

	// ErrAddressMismatch describes an error where the key recovered from a
	// signature does not hash to the expected address.
	ErrAddressMismatch = errors.New("signature is not from the given address")
)

// MessageDigest returns the double sha256 digest that is signed for the
// given message.  The digest commits to the message signature header and the
// var-int encoded message length so signatures cannot be reinterpreted as
// transaction signatures or signatures over other messages.
func MessageDigest(message string) chainhash.Hash {
	var buf bytes.Buffer
	buf.WriteString(messageSignatureHeader)
	// Writes to a bytes.Buffer cannot fail.
	_ = wire.WriteVarInt(&buf, 0, uint64(len(message)))
	buf.WriteString(message)
	return chainhash.DoubleHashH(buf.Bytes())
}

// SignMessage signs the message with the provided private key and returns
// the base64 encoding of the 65-byte compact recoverable signature.  The
// signature commits to whether the signing address was derived from the
// compressed serialization of the public key.
func SignMessage(privKey *secp256k1.PrivateKey, message string, compressed bool) string {
	digest := MessageDigest(message)
	sig := ecdsa.SignCompact(privKey, digest[:], compressed)
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifyMessage recovers the public key from the provided base64 compact
// signature and digest of the message, derives the pay-to-pubkey-hash
// address of the recovered key, and compares it to the provided address.
//
// ErrInvalidSignature is returned for undecodable signatures,
// ErrRecoveryFailed when no key can be recovered, and ErrAddressMismatch
// when the recovered key does not belong to addr.
func VerifyMessage(addr string, signature string, message string, net *chaincfg.Params) error {
	// Decode the provided signature.
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	// Recover the public key committed to by the signature.
	digest := MessageDigest(message)
	pubKey, wasCompressed, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return ErrRecoveryFailed
	}

	// Reconstruct the address from the recovered public key using the same
	// serialization the signer committed to.
	var serializedPK []byte
	if wasCompressed {
		serializedPK = pubKey.SerializeCompressed()
	} else {
		serializedPK = pubKey.SerializeUncompressed()
	}
	recovered, err := dogeutil.NewAddressPubKeyHashFromKey(serializedPK, net)
	if err != nil {
		return ErrRecoveryFailed
	}

	if recovered.EncodeAddress() != addr {
		return ErrAddressMismatch
	}
	return nil
}
