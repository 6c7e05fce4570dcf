// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// References:
//   [BIP44]: BIP0044 - Multi-Account Hierarchy for Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0044.mediawiki

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dogesuite/doged/chaincfg"
)

const (
	// Bip44Purpose is the purpose field of a BIP44 derivation path:
	// m / 44' / coin' / account' / change / index.
	Bip44Purpose = 44

	// ExternalBranch is the child number to use when performing BIP44
	// style hierarchical deterministic key derivation for the external
	// branch.
	ExternalBranch uint32 = 0

	// InternalBranch is the child number to use when performing BIP44
	// style hierarchical deterministic key derivation for the internal
	// branch.
	InternalBranch uint32 = 1

	// MaxAddressIndex is the highest address index allowed on a BIP44
	// branch.
	MaxAddressIndex = HardenedKeyStart - 1

	// MaxPathLen is the maximum number of characters accepted in a
	// derivation path string.
	MaxPathLen = 255
)

var (
	// ErrInvalidPath describes an error in which a derivation path string
	// is malformed or exceeds MaxPathLen.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrInvalidBranch describes an error in which the change field of a
	// BIP44 path is neither the external nor the internal branch.
	ErrInvalidBranch = errors.New("branch must be external (0) or internal (1)")
)

// DeriveBIP44AccountKey derives the account-level extended key
// m/44'/coin'/account' from the provided master key.  The coin type is taken
// from the network parameters.
func DeriveBIP44AccountKey(master *ExtendedKey, net *chaincfg.Params,
	account uint32) (*ExtendedKey, error) {

	purpose, err := master.Child(Bip44Purpose + HardenedKeyStart)
	if err != nil {
		return nil, err
	}
	defer purpose.Zero()

	coinType, err := purpose.Child(net.HDCoinType + HardenedKeyStart)
	if err != nil {
		return nil, err
	}
	defer coinType.Zero()

	return coinType.Child(account + HardenedKeyStart)
}

// DeriveBIP44Key derives the leaf extended key
// m/44'/coin'/account'/change/index from the provided master key.  The
// change field selects the external (0) or internal (1) branch.
func DeriveBIP44Key(master *ExtendedKey, net *chaincfg.Params, account,
	change, index uint32) (*ExtendedKey, error) {

	if change != ExternalBranch && change != InternalBranch {
		return nil, ErrInvalidBranch
	}
	if index > MaxAddressIndex {
		return nil, ErrInvalidPath
	}

	acctKey, err := DeriveBIP44AccountKey(master, net, account)
	if err != nil {
		return nil, err
	}
	defer acctKey.Zero()

	branchKey, err := acctKey.Child(change)
	if err != nil {
		return nil, err
	}
	defer branchKey.Zero()

	return branchKey.Child(index)
}

// DerivePath derives the extended key at the given path string from the
// provided key.  Paths take the usual form "m/44'/3'/0'/0/0"; an apostrophe
// or the letter h marks a hardened index.  Deriving a hardened child of a
// public extended key fails with ErrDeriveHardFromPublic.
//
// Path strings are bounded at MaxPathLen characters.
func DerivePath(key *ExtendedKey, path string) (*ExtendedKey, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	derived := key
	for _, index := range indices {
		child, err := derived.Child(index)
		// Intermediate keys are discarded as soon as the next level has
		// been derived.
		if derived != key {
			derived.Zero()
		}
		if err != nil {
			return nil, err
		}
		derived = child
	}
	return derived, nil
}

// ParsePath parses a derivation path string into its child indices.  The
// optional leading "m" refers to the key the path is applied to and yields
// no index.
func ParsePath(path string) ([]uint32, error) {
	if len(path) > MaxPathLen {
		return nil, ErrInvalidPath
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(path, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}

	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, ErrInvalidPath
		}

		hardened := false
		switch part[len(part)-1] {
		case '\'', 'h', 'H':
			hardened = true
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || index >= HardenedKeyStart {
			return nil, ErrInvalidPath
		}
		if hardened {
			index += HardenedKeyStart
		}
		indices = append(indices, uint32(index))
	}
	return indices, nil
}
