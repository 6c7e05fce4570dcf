// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

// AuxPowExpectedIndex chooses the slot in the aux chain merkle tree a chain
// must occupy for a given coinbase nonce.  The slot is pseudo-random but
// fixed for a size/nonce/chain combination, which prevents the same work
// from being used twice for the same chain while reducing the chance that
// two chains clash for the same slot.
//
// The computation deliberately runs modulo 2^32; h is bounded by the maximum
// merkle branch length, so 32 bits are enough.
func AuxPowExpectedIndex(nonce uint32, chainID int32, h uint) uint32 {
	rand := nonce
	rand = rand*1103515245 + 12345
	rand += uint32(chainID)
	rand = rand*1103515245 + 12345

	return rand % (1 << h)
}

// reverseHash returns a byte-reversed copy of the provided hash.
func reverseHash(hash chainhash.Hash) (rev chainhash.Hash) {
	for i := 0; i < chainhash.HashSize; i++ {
		rev[i] = hash[chainhash.HashSize-1-i]
	}
	return rev
}

// CheckAuxPow verifies that the auxiliary proof of work attached to the
// given header proves the header was merge-mined into a valid parent chain
// block.  The rules enforced are:
//
//  1. When the chain demands a strict chain id, the header must carry it.
//  2. The parent block must not be from the aux chain itself.
//  3. Both merkle branches must not exceed the maximum length.
//  4. The coinbase transaction must be proven to be part of the parent
//     block's transaction tree.
//  5. The parent coinbase script must commit to the aux chain merkle root
//     with exactly one merged mining tag directly preceding it.
//  6. The aux chain merkle index must match the slot derived from the
//     committed nonce and the chain id.
//  7. The scrypt digest of the parent header must meet the target encoded in
//     the aux header's difficulty bits.
func CheckAuxPow(header *wire.AuxBlockHeader, params *chaincfg.Params) error {
	ap := header.AuxPow
	if ap == nil {
		return ruleError(ErrAuxPowMerkleMismatch, "header has no auxpow")
	}

	// The chain id encoded in the version must match the one reserved for
	// this chain on networks that enforce it.
	chainID := header.Header.ChainID()
	if params.StrictChainID && chainID != params.AuxPowChainID {
		str := fmt.Sprintf("aux header has chain id %d, want %d", chainID,
			params.AuxPowChainID)
		return ruleError(ErrAuxPowWrongChainID, str)
	}

	// Disallow a parent block claiming to be from the aux chain itself
	// since that would allow trivial self merge-mining.
	if ap.ParentHeader.ChainID() == chainID {
		str := fmt.Sprintf("aux parent block has our chain id %d", chainID)
		return ruleError(ErrAuxPowWrongChainID, str)
	}

	// The codec enforces the branch cap on decode, but inputs built in
	// memory must be bounded here as well.
	if len(ap.CoinbaseBranch.Hashes) > wire.MaxMerkleBranchLength ||
		len(ap.ChainBranch.Hashes) > wire.MaxMerkleBranchLength {
		return ruleError(ErrAuxPowBranchTooLong, "merkle branch is too long")
	}

	// The coinbase must be the first transaction of the parent block.
	if ap.CoinbaseBranch.SideMask != 0 {
		return ruleError(ErrAuxPowIndexMismatch, "auxpow is not a generate")
	}

	// Ensure the coinbase transaction is included in the parent block.
	coinbaseHash := ap.CoinbaseTx.TxHash()
	root := CheckMerkleBranch(coinbaseHash, ap.CoinbaseBranch.Hashes,
		ap.CoinbaseBranch.SideMask)
	if root != ap.ParentHeader.MerkleRoot {
		str := "parent block merkle tree does not include auxpow coinbase"
		return ruleError(ErrAuxPowMerkleMismatch, str)
	}

	// Fold this block's hash through the aux chain branch to find the root
	// the parent coinbase must commit to.  The script carries it
	// byte-reversed.
	blockHash := header.Header.BlockHash()
	chainRoot := CheckMerkleBranch(blockHash, ap.ChainBranch.Hashes,
		ap.ChainBranch.SideMask)
	revChainRoot := reverseHash(chainRoot)

	if len(ap.CoinbaseTx.TxIn) == 0 {
		return ruleError(ErrAuxPowMagicMissing, "aux parent coinbase has no inputs")
	}
	script := ap.CoinbaseTx.TxIn[0].SignatureScript

	rootPos := bytes.Index(script, revChainRoot[:])
	if rootPos < 0 {
		str := fmt.Sprintf("aux chain merkle root %s not found in parent "+
			"coinbase script", chainRoot)
		return ruleError(ErrAuxPowMagicMissing, str)
	}

	tagPos := bytes.Index(script, wire.MergedMiningTag)
	if tagPos < 0 {
		return ruleError(ErrAuxPowMagicMissing,
			"merged mining tag missing from parent coinbase script")
	}

	// The tag may appear only once; a second occurrence would let miners
	// commit to more than one aux chain root.
	if bytes.Index(script[tagPos+1:], wire.MergedMiningTag) >= 0 {
		return ruleError(ErrAuxPowMagicMissing,
			"multiple merged mining tags in parent coinbase script")
	}

	// The tag must directly precede the committed root.
	if tagPos+len(wire.MergedMiningTag) != rootPos {
		return ruleError(ErrAuxPowMagicMissing,
			"merged mining tag is not directly before the aux chain root")
	}

	// The committed root is followed by the aux tree size and a nonce.
	paramsPos := rootPos + chainhash.HashSize
	if len(script)-paramsPos < 8 {
		return ruleError(ErrAuxPowMagicMissing,
			"parent coinbase script has no room for aux tree size and nonce")
	}

	branchLen := uint(len(ap.ChainBranch.Hashes))
	size := binary.LittleEndian.Uint32(script[paramsPos : paramsPos+4])
	if size != 1<<branchLen {
		str := fmt.Sprintf("aux tree size %d does not match branch length %d",
			size, branchLen)
		return ruleError(ErrAuxPowIndexMismatch, str)
	}

	nonce := binary.LittleEndian.Uint32(script[paramsPos+4 : paramsPos+8])
	expected := AuxPowExpectedIndex(nonce, chainID, branchLen)
	if ap.ChainBranch.SideMask != expected {
		str := fmt.Sprintf("aux merkle index %d does not match expected "+
			"slot %d", ap.ChainBranch.SideMask, expected)
		return ruleError(ErrAuxPowIndexMismatch, str)
	}

	// Finally the parent header must carry the work the aux header claims.
	parentPowHash := ap.ParentHeader.PowHash()
	return CheckProofOfWork(&parentPowHash, header.Header.Bits, params.PowLimit)
}

// HeaderPowHash returns the proof of work digest the given header must be
// judged by: the scrypt digest of the parent header for merge-mined headers
// and of the header itself otherwise.
func HeaderPowHash(header *wire.AuxBlockHeader) chainhash.Hash {
	if header.AuxPow != nil {
		return header.AuxPow.ParentHeader.PowHash()
	}
	return header.Header.PowHash()
}
