// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signmsg implements the bitcoin-compatible recoverable signature
// scheme over dogecoin-prefixed message digests.  A signature produced by
// SignMessage proves control of the private key behind a
// pay-to-pubkey-hash address without revealing the public key in advance.
package signmsg
