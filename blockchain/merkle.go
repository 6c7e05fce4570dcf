// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/dogesuite/doged/chaincfg/chainhash"
)

// CheckMerkleBranch folds the component hash through the provided merkle
// branch and returns the resulting root.  The index carries the position of
// the component in the tree: at each level, when the low bit is set the
// branch hash is concatenated in front of the running hash, otherwise behind
// it, the pair is double hashed, and the index shifts right.
//
// An empty branch returns the component hash unchanged.
func CheckMerkleBranch(hash chainhash.Hash, branch []chainhash.Hash, index uint32) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	for i := range branch {
		if index&1 != 0 {
			copy(buf[:chainhash.HashSize], branch[i][:])
			copy(buf[chainhash.HashSize:], hash[:])
		} else {
			copy(buf[:chainhash.HashSize], hash[:])
			copy(buf[chainhash.HashSize:], branch[i][:])
		}
		hash = chainhash.DoubleHashH(buf[:])
		index >>= 1
	}
	return hash
}
