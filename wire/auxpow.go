// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/dogesuite/doged/chaincfg/chainhash"
)

// MaxMerkleBranchLength is the maximum number of hashes allowed in the
// coinbase and chain merkle branches of an auxiliary proof of work.
const MaxMerkleBranchLength = 30

// MergedMiningTag is the magic byte sequence that precedes the chain merkle
// root inside the parent chain coinbase signature script.
var MergedMiningTag = []byte{0xfa, 0xbe, 'm', 'm'}

// MerkleBranch describes a path through a merkle tree.  SideMask carries the
// position of the proven leaf; bit i selects the side the i-th branch hash is
// folded in on.
type MerkleBranch struct {
	Hashes   []chainhash.Hash
	SideMask uint32
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.
func (mb *MerkleBranch) DogeDecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > MaxMerkleBranchLength {
		return messageError("MerkleBranch.DogeDecode", fmt.Sprintf(
			"merkle branch is too long [count %d, max %d]", count,
			MaxMerkleBranchLength))
	}

	mb.Hashes = make([]chainhash.Hash, count)
	for i := uint64(0); i < count; i++ {
		if err := readElement(r, &mb.Hashes[i]); err != nil {
			return err
		}
	}
	return readElement(r, &mb.SideMask)
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
func (mb *MerkleBranch) DogeEncode(w io.Writer, pver uint32) error {
	if err := WriteVarInt(w, pver, uint64(len(mb.Hashes))); err != nil {
		return err
	}
	for i := range mb.Hashes {
		if err := writeElement(w, &mb.Hashes[i]); err != nil {
			return err
		}
	}
	return writeElement(w, mb.SideMask)
}

// SerializeSize returns the number of bytes it would take to serialize the
// merkle branch.
func (mb *MerkleBranch) SerializeSize() int {
	return VarIntSerializeSize(uint64(len(mb.Hashes))) +
		chainhash.HashSize*len(mb.Hashes) + 4
}

// AuxPow holds the auxiliary proof of work that ties a merge-mined block to
// the parent chain block that carried the work.  It follows the 80 byte
// header on the wire whenever the header version flags it.
type AuxPow struct {
	// CoinbaseTx is the parent chain coinbase transaction committing to the
	// aux chain merkle root.
	CoinbaseTx MsgTx

	// ParentHash is the hash of the parent block.  It is carried on the wire
	// but never trusted; validation recomputes everything it needs from the
	// parent header.
	ParentHash chainhash.Hash

	// CoinbaseBranch proves the coinbase transaction is part of the parent
	// block's transaction merkle tree.
	CoinbaseBranch MerkleBranch

	// ChainBranch proves this chain's block hash is part of the aux chain
	// merkle tree committed to in the coinbase.
	ChainBranch MerkleBranch

	// ParentHeader is the header of the parent chain block whose scrypt
	// digest satisfies this block's target.
	ParentHeader BlockHeader
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.
func (ap *AuxPow) DogeDecode(r io.Reader, pver uint32) error {
	if err := ap.CoinbaseTx.DogeDecode(r, pver); err != nil {
		return err
	}
	if err := readElement(r, &ap.ParentHash); err != nil {
		return err
	}
	if err := ap.CoinbaseBranch.DogeDecode(r, pver); err != nil {
		return err
	}
	if err := ap.ChainBranch.DogeDecode(r, pver); err != nil {
		return err
	}
	return readBlockHeader(r, pver, &ap.ParentHeader)
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
func (ap *AuxPow) DogeEncode(w io.Writer, pver uint32) error {
	if err := ap.CoinbaseTx.DogeEncode(w, pver); err != nil {
		return err
	}
	if err := writeElement(w, &ap.ParentHash); err != nil {
		return err
	}
	if err := ap.CoinbaseBranch.DogeEncode(w, pver); err != nil {
		return err
	}
	if err := ap.ChainBranch.DogeEncode(w, pver); err != nil {
		return err
	}
	return writeBlockHeader(w, pver, &ap.ParentHeader)
}

// Deserialize decodes an auxiliary proof of work from r.
func (ap *AuxPow) Deserialize(r io.Reader) error {
	return ap.DogeDecode(r, 0)
}

// Serialize encodes the auxiliary proof of work to w.
func (ap *AuxPow) Serialize(w io.Writer) error {
	return ap.DogeEncode(w, 0)
}

// SerializeSize returns the number of bytes it would take to serialize the
// auxiliary proof of work.
func (ap *AuxPow) SerializeSize() int {
	return ap.CoinbaseTx.SerializeSize() + chainhash.HashSize +
		ap.CoinbaseBranch.SerializeSize() + ap.ChainBranch.SerializeSize() +
		blockHeaderLen
}

// AuxBlockHeader bundles a block header with the auxiliary proof of work
// that accompanies it on the wire when the header version flags one.  AuxPow
// is nil for plain headers.
type AuxBlockHeader struct {
	Header BlockHeader
	AuxPow *AuxPow
}

// BlockHash returns the identifier hash of the wrapped header.
func (h *AuxBlockHeader) BlockHash() chainhash.Hash {
	return h.Header.BlockHash()
}

// DogeDecode decodes a header and, when the decoded version flags it, the
// trailing auxiliary proof of work from r.
func (h *AuxBlockHeader) DogeDecode(r io.Reader, pver uint32) error {
	if err := readBlockHeader(r, pver, &h.Header); err != nil {
		return err
	}
	h.AuxPow = nil
	if h.Header.IsAuxPow() {
		h.AuxPow = new(AuxPow)
		if err := h.AuxPow.DogeDecode(r, pver); err != nil {
			return err
		}
	}
	return nil
}

// DogeEncode encodes the header and any attached auxiliary proof of work to
// w.  It is an error for the version flag and the AuxPow field to disagree.
func (h *AuxBlockHeader) DogeEncode(w io.Writer, pver uint32) error {
	if h.Header.IsAuxPow() != (h.AuxPow != nil) {
		return messageError("AuxBlockHeader.DogeEncode",
			"header auxpow version flag disagrees with attached auxpow")
	}
	if err := writeBlockHeader(w, pver, &h.Header); err != nil {
		return err
	}
	if h.AuxPow != nil {
		return h.AuxPow.DogeEncode(w, pver)
	}
	return nil
}

// Deserialize decodes a header with optional auxpow from r.
func (h *AuxBlockHeader) Deserialize(r io.Reader) error {
	return h.DogeDecode(r, 0)
}

// Serialize encodes the header with optional auxpow to w.
func (h *AuxBlockHeader) Serialize(w io.Writer) error {
	return h.DogeEncode(w, 0)
}
