// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

// genesisCoinbaseTx is the coinbase transaction for the genesis blocks for
// the main network, test network (version 3), and regression test network.
// The coinbase input script pushes the "Nintondo" timestamp message.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: []byte{
				0x04, 0xff, 0xff, 0x00, 0x1d, 0x01, 0x04, 0x08, /* |........| */
				0x4e, 0x69, 0x6e, 0x74, 0x6f, 0x6e, 0x64, 0x6f, /* |Nintondo| */
			},
			Sequence: 0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value: 88 * 100000000,
			PkScript: []byte{
				0x41, /* OP_DATA_65 */
				0x04, 0x01, 0x84, 0x71, 0x0f, 0xa6, 0x89, 0xad,
				0x50, 0x23, 0x69, 0x0c, 0x80, 0xf3, 0xa4, 0x9c,
				0x8f, 0x13, 0xf8, 0xd4, 0x5b, 0x8c, 0x85, 0x7f,
				0xbc, 0xbc, 0x8b, 0xc4, 0xa8, 0xe4, 0xd3, 0xeb,
				0x4b, 0x10, 0xf4, 0xd4, 0x60, 0x4f, 0xa0, 0x8d,
				0xce, 0x60, 0x1a, 0xaf, 0x0f, 0x47, 0x02, 0x16,
				0xfe, 0x1b, 0x51, 0x85, 0x0b, 0x4a, 0xcf, 0x21,
				0xb1, 0x79, 0xc4, 0x50, 0x70, 0xac, 0x7b, 0x03,
				0xa9, /* 65-byte uncompressed pubkey */
				0xac, /* OP_CHECKSIG */
			},
		},
	},
	LockTime: 0,
}

// genesisMerkleRoot is the hash of the first transaction in the genesis
// block for the main network.  It is shared by all three networks since they
// use the same genesis coinbase.
var genesisMerkleRoot = newHashFromStr("5b2a3f53f605d62c53e62932dac6925e3d74afa5a4b459745c36d42d0ed26a69")

// genesisBlock defines the genesis block of the block chain which serves as
// the public transaction ledger for the main network.
var genesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // All zero.
		MerkleRoot: *genesisMerkleRoot,
		Timestamp:  time.Unix(1386325540, 0), // 6 Dec 2013 10:25:40 UTC
		Bits:       0x1e0ffff0,
		Nonce:      99943,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// genesisHash is the hash of the first block in the block chain for the main
// network (genesis block).
var genesisHash = newHashFromStr("1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691")

// testNet3GenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the test network (version 3).
var testNet3GenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // All zero.
		MerkleRoot: *genesisMerkleRoot,
		Timestamp:  time.Unix(1391503289, 0), // 4 Feb 2014 08:41:29 UTC
		Bits:       0x1e0ffff0,
		Nonce:      997879,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// testNet3GenesisHash is the hash of the first block in the block chain for
// the test network (version 3).
var testNet3GenesisHash = newHashFromStr("bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e")

// regTestGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the regression test network.
var regTestGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // All zero.
		MerkleRoot: *genesisMerkleRoot,
		Timestamp:  time.Unix(1296688602, 0), // 2 Feb 2011 23:16:42 UTC
		Bits:       0x207fffff,
		Nonce:      2,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// regTestGenesisHash is the hash of the first block in the block chain for
// the regression test network.
var regTestGenesisHash = newHashFromStr("3d2160a3b5dc4a9d62e7e66a295f70313ac808440ef7400d6c0772171ce973a5")
