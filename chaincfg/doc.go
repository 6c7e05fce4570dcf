// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main dogecoin network, which is intended for the
// transfer of monetary value, there also exists the following standard
// networks:
//
//   - testnet (version 3)
//   - regression test
//
// These networks are incompatible with each other (each sharing a different
// genesis block) and software should handle errors where input intended for
// one network is used on an application instance running on a different
// network.
//
// For library packages, chaincfg provides the ability to lookup chain
// parameters by network magic or by address prefix.
//
// For main packages, a (typically global) var may be assigned the address of
// one of the standard Params.  This way, a package-level variable selected by
// configuration provides the chain parameters everywhere they are needed.
package chaincfg
