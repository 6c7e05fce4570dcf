// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/dogesuite/doged/chaincfg/chainhash"
)

// MaxBlockHeaderPayload is the maximum number of bytes a block header can be.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock and MerkleRoot hashes.
const MaxBlockHeaderPayload = 16 + (chainhash.HashSize * 2)

// blockHeaderLen is the constant serialized length of a block header, not
// counting any auxiliary proof of work that may follow it.
const blockHeaderLen = 80

const (
	// VersionAuxPow is the bit set in the block version to signal that the
	// header is followed by an auxiliary proof of work.
	VersionAuxPow = 1 << 8

	// VersionChainStart is the first version with a chain id encoded in the
	// upper bits.  Versions below it carry no chain id and are legacy
	// pre-fork headers.
	VersionChainStart = 2 << 16
)

// BlockHeader defines information about a block and is used in the dogecoin
// block (MsgBlock) and headers (MsgHeaders) messages.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	// The upper 16 bits encode the merge-mining chain id and bit 8 flags an
	// attached auxiliary proof of work.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// ChainID returns the merge-mining chain id encoded in the upper 16 bits of
// the block version.
func (h *BlockHeader) ChainID() int32 {
	return h.Version >> 16
}

// IsAuxPow returns whether the version flags an attached auxiliary proof of
// work.
func (h *BlockHeader) IsAuxPow() bool {
	return h.Version&VersionAuxPow != 0
}

// IsLegacy returns whether the version predates the auxpow fork versioning
// scheme.
func (h *BlockHeader) IsLegacy() bool {
	return h.Version < VersionChainStart || h.ChainID() == 0
}

// BlockHash computes the block identifier hash for the given block header.
// The identifier hash is always the double sha256 of the plain 80 byte
// header, regardless of any attached auxiliary proof of work.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashRaw(func(w io.Writer) error {
		return writeBlockHeader(w, 0, h)
	})
}

// PowHash computes the scrypt proof of work digest of the block header.  For
// merge-mined blocks the digest that must meet the target is that of the
// parent header, not this one; see blockchain.CheckAuxPow.
func (h *BlockHeader) PowHash() chainhash.Hash {
	return chainhash.ScryptRaw(func(w io.Writer) error {
		return writeBlockHeader(w, 0, h)
	})
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.  See
// Deserialize for decoding block headers stored to disk, such as in a
// database, as opposed to decoding block headers from the wire.
func (h *BlockHeader) DogeDecode(r io.Reader, pver uint32) error {
	return readBlockHeader(r, pver, h)
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.  See Serialize for
// encoding block headers to be stored to disk, such as in a database, as
// opposed to encoding block headers for the wire.
func (h *BlockHeader) DogeEncode(w io.Writer, pver uint32) error {
	return writeBlockHeader(w, pver, h)
}

// Deserialize decodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format.  As
	// a result, make use of readBlockHeader.
	return readBlockHeader(r, 0, h)
}

// Serialize encodes a block header from the receiver to w using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Serialize(w io.Writer) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format.  As
	// a result, make use of writeBlockHeader.
	return writeBlockHeader(w, 0, h)
}

// Bytes returns the serialized 80 byte form of the block header.
func (h *BlockHeader) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(blockHeaderLen)
	// Serializing to a bytes.Buffer cannot fail.
	_ = writeBlockHeader(&buf, 0, h)
	return buf.Bytes()
}

// NewBlockHeader returns a new BlockHeader using the provided version,
// previous block hash, merkle root hash, difficulty bits, and nonce with the
// timestamp truncated to one second precision.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash,
	bits uint32, nonce uint32) *BlockHeader {

	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// readBlockHeader reads a dogecoin block header from r.
func readBlockHeader(r io.Reader, pver uint32, bh *BlockHeader) error {
	var buf [4]byte

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Version = int32(littleEndian.Uint32(buf[:]))

	if _, err := io.ReadFull(r, bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, bh.MerkleRoot[:]); err != nil {
		return err
	}

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Timestamp = time.Unix(int64(littleEndian.Uint32(buf[:])), 0)

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Bits = littleEndian.Uint32(buf[:])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Nonce = littleEndian.Uint32(buf[:])

	return nil
}

// writeBlockHeader writes a dogecoin block header to w.
func writeBlockHeader(w io.Writer, pver uint32, bh *BlockHeader) error {
	var buf [4]byte

	littleEndian.PutUint32(buf[:], uint32(bh.Version))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if _, err := w.Write(bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(bh.MerkleRoot[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], uint32(bh.Timestamp.Unix()))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], bh.Bits)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], bh.Nonce)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	return nil
}
