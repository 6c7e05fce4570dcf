// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headersdb

import (
	"errors"

	"github.com/decred/dcrd/math/uint256"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

var (
	// ErrOrphanHeader describes an error in which a header cannot be
	// connected because its parent is not part of the index.
	ErrOrphanHeader = errors.New("header's parent is unknown")

	// ErrCorruptDatabase describes an error in which the persisted header
	// chain failed an integrity check while loading.  Deleting the
	// persistence file recovers at the cost of a fresh sync.
	ErrCorruptDatabase = errors.New("corrupt headers database")

	// ErrDisconnectBottom describes an error in which the caller attempted
	// to disconnect the bottom of the chain.
	ErrDisconnectBottom = errors.New("cannot disconnect the chain bottom")
)

// BlockIndex is a node in the header tree.  Nodes reference their parent but
// never their children; the database owns every node in a map keyed by hash.
type BlockIndex struct {
	// Hash is the double sha256 identifier of the header.
	Hash chainhash.Hash

	// Header is the plain 80 byte header.  Any auxiliary proof of work is
	// validated on connect and not retained.
	Header wire.BlockHeader

	// Height is the number of blocks between the header and the genesis
	// block.
	Height int32

	// Parent is the index entry the header builds on.  It is nil only for
	// the genesis block or an explicit checkpoint bottom.
	Parent *BlockIndex

	// ChainWork is the total cumulative work in the chain ending with this
	// header.
	ChainWork uint256.Uint256
}

// DB is the capability set of a headers database.  The file-backed and
// memory-only variants are selected at construction.
type DB interface {
	// Load replays the persisted header chain from the given file and
	// prepares it for appending.  Memory-only databases ignore it.
	Load(path string) error

	// Close releases the persistence file, if any.
	Close() error

	// ConnectHeader validates the given header against the index and
	// appends it to the header tree.  The returned flag reports whether
	// the header is part of the tree after the call, which includes
	// headers that were already known.
	ConnectHeader(header *wire.AuxBlockHeader, loadPhase bool) (*BlockIndex, bool, error)

	// DisconnectTip unlinks the current tip and returns it.  The parent
	// becomes the new tip.
	DisconnectTip() (*BlockIndex, error)

	// Find returns the index entry for the given hash, or nil.
	Find(hash *chainhash.Hash) *BlockIndex

	// ChainTip returns the entry with the most cumulative work.
	ChainTip() *BlockIndex

	// ChainBottom returns the genesis entry or the checkpoint bottom.
	ChainBottom() *BlockIndex

	// BlockLocator returns a sparse locator for the current main chain.
	BlockLocator() []*chainhash.Hash

	// HasCheckpointStart reports whether the chain bottom is a checkpoint
	// rather than the genesis block.
	HasCheckpointStart() bool

	// SetCheckpointStart replaces the chain bottom with a trusted
	// checkpoint so syncing can skip historical headers.
	SetCheckpointStart(hash chainhash.Hash, height int32) error
}
