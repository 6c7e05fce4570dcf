// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides abstracted hash functionality.
//
// This package provides a generic hash type and the hash functions dogecoin
// consensus depends on: sha256, the double sha256 used for block and
// transaction identifiers, and the scrypt digest used for proof of work.
package chainhash
