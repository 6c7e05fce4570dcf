// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dogeutil provides dogecoin-specific convenience functions and
// types: Base58Check encoding, the standard address types, and the Wallet
// Import Format for private keys.
package dogeutil
