// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeutil

import (
	"errors"

	"github.com/EXCCoin/base58"
	"github.com/dogesuite/doged/chaincfg/chainhash"
)

var (
	// ErrChecksumMismatch describes an error where decoding failed due to a
	// bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidFormat describes an error where decoding failed due to
	// invalid version or payload length.
	ErrInvalidFormat = errors.New("invalid format: version and/or checksum bytes missing")
)

// checksumLen is the number of bytes of the double sha256 checksum appended
// to Base58Check payloads.
const checksumLen = 4

// checksum returns the first four bytes of the double sha256 of the input.
func checksum(input []byte) (cksum [checksumLen]byte) {
	copy(cksum[:], chainhash.DoubleHashB(input))
	return
}

// CheckEncode prepends a version byte and appends a four byte checksum.
func CheckEncode(input []byte, version byte) string {
	b := make([]byte, 0, 1+len(input)+checksumLen)
	b = append(b, version)
	b = append(b, input...)
	cksum := checksum(b)
	b = append(b, cksum[:]...)
	return base58.Encode(b)
}

// CheckDecode decodes a string that was encoded with CheckEncode and verifies
// the checksum.
func CheckDecode(input string) (result []byte, version byte, err error) {
	decoded := base58.Decode(input)
	if len(decoded) < 1+checksumLen {
		return nil, 0, ErrInvalidFormat
	}
	version = decoded[0]
	var cksum [checksumLen]byte
	copy(cksum[:], decoded[len(decoded)-checksumLen:])
	if checksum(decoded[:len(decoded)-checksumLen]) != cksum {
		return nil, 0, ErrChecksumMismatch
	}
	payload := decoded[1 : len(decoded)-checksumLen]
	result = append(result, payload...)
	return result, version, nil
}
