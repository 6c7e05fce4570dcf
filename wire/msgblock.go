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

// maxTxPerBlock is the maximum number of transactions that could possibly fit
// into a block.
const maxTxPerBlock = (MaxMessagePayload / 60) + 1

// MsgBlock implements the Message interface and represents a dogecoin block
// message.  It is used to deliver block and transaction information in
// response to a getdata message (MsgGetData) for a given block hash.
//
// Merge-mined blocks carry their auxiliary proof of work between the header
// and the transaction list.
type MsgBlock struct {
	Header       BlockHeader
	AuxPow       *AuxPow
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, defaultTransactionAlloc)
}

// DogeDecode decodes r using the dogecoin protocol encoding into the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgBlock) DogeDecode(r io.Reader, pver uint32) error {
	if err := readBlockHeader(r, pver, &msg.Header); err != nil {
		return err
	}

	msg.AuxPow = nil
	if msg.Header.IsAuxPow() {
		msg.AuxPow = new(AuxPow)
		if err := msg.AuxPow.DogeDecode(r, pver); err != nil {
			return err
		}
	}

	txCount, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	// Prevent more transactions than could possibly fit into a block.  It
	// would be possible to cause memory exhaustion and panics without a
	// sane upper bound on this count.
	if txCount > maxTxPerBlock {
		return messageError("MsgBlock.DogeDecode", fmt.Sprintf(
			"too many transactions to fit into a block [count %d, max %d]",
			txCount, maxTxPerBlock))
	}

	msg.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := MsgTx{}
		if err := tx.DogeDecode(r, pver); err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, &tx)
	}

	return nil
}

// DogeEncode encodes the receiver to w using the dogecoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgBlock) DogeEncode(w io.Writer, pver uint32) error {
	if msg.Header.IsAuxPow() != (msg.AuxPow != nil) {
		return messageError("MsgBlock.DogeEncode",
			"header auxpow version flag disagrees with attached auxpow")
	}

	if err := writeBlockHeader(w, pver, &msg.Header); err != nil {
		return err
	}
	if msg.AuxPow != nil {
		if err := msg.AuxPow.DogeEncode(w, pver); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, pver, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.DogeEncode(w, pver); err != nil {
			return err
		}
	}

	return nil
}

// Deserialize decodes a block from r into the receiver using a format that is
// suitable for long-term storage such as a database.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	return msg.DogeDecode(r, 0)
}

// Serialize encodes the block to w using a format that is suitable for
// long-term storage such as a database.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	return msg.DogeEncode(w, 0)
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// TxHashes returns a slice of hashes of all of transactions in this block.
func (msg *MsgBlock) TxHashes() []chainhash.Hash {
	hashList := make([]chainhash.Hash, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		hashList = append(hashList, tx.TxHash())
	}
	return hashList
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgBlock) Command() string {
	return CmdBlock
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgBlock) MaxPayloadLength(pver uint32) uint32 {
	return MaxMessagePayload
}

// NewMsgBlock returns a new dogecoin block message that conforms to the
// Message interface using the provided block header.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, defaultTransactionAlloc),
	}
}

// defaultTransactionAlloc is the default size used for the backing array for
// transactions.
const defaultTransactionAlloc = 2048
