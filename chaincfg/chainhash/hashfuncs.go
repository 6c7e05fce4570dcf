// Copyright (c) 2015 The Decred developers
// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/scrypt"
)

// Scrypt parameters for the dogecoin proof of work digest.  The header being
// hashed doubles as the salt.
const (
	scryptN    = 1024
	scryptR    = 1
	scryptP    = 1
	scryptKLen = 32
)

// HashB calculates hash(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates hash(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB calculates hash(hash(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates hash(hash(b)) and returns the resulting bytes as a
// Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashRaw calculates hash(hash(w)) where w is the resulting bytes from
// the given serialize function and returns the resulting bytes as a Hash.
func DoubleHashRaw(serialize func(w io.Writer) error) Hash {
	h := sha256.New()
	if err := serialize(h); err != nil {
		// The only way this can fail is from the serialize func erroring,
		// which only happens with a broken Writer.  sha256.New never fails.
		panic(err)
	}
	first := h.Sum(nil)
	return Hash(sha256.Sum256(first))
}

// ScryptHashB calculates the scrypt digest of b using b itself as the salt and
// returns the resulting bytes.  This is the digest dogecoin compares against
// the proof of work target.
func ScryptHashB(b []byte) []byte {
	digest, err := scrypt.Key(b, b, scryptN, scryptR, scryptP, scryptKLen)
	if err != nil {
		// The parameters are compile-time constants that satisfy the scrypt
		// requirements, so this can't fail.
		panic(err)
	}
	return digest
}

// ScryptHashH calculates the scrypt digest of b using b itself as the salt and
// returns the resulting bytes as a Hash.
func ScryptHashH(b []byte) Hash {
	var hash Hash
	copy(hash[:], ScryptHashB(b))
	return hash
}

// ScryptRaw calculates the scrypt digest of the resulting bytes from the given
// serialize function and returns them as a Hash.
func ScryptRaw(serialize func(w io.Writer) error) Hash {
	var buf bytes.Buffer
	if err := serialize(&buf); err != nil {
		panic(err)
	}
	return ScryptHashH(buf.Bytes())
}
