// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headersdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/decred/dcrd/math/uint256"
	"github.com/stretchr/testify/require"

	"github.com/dogesuite/doged/blockchain"
	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

// mineHeader builds a regtest header on top of the given parent and grinds
// the nonce until the scrypt digest meets the regtest limit.  The timestamp
// seed keeps sibling chains distinct.
func mineHeader(t *testing.T, params *chaincfg.Params, parent chainhash.Hash,
	timestamp int64) *wire.AuxBlockHeader {

	t.Helper()
	header := &wire.AuxBlockHeader{
		Header: wire.BlockHeader{
			Version:   2,
			PrevBlock: parent,
			Timestamp: time.Unix(timestamp, 0),
			Bits:      params.PowLimitBits,
		},
	}
	for {
		powHash := header.Header.PowHash()
		if blockchain.CheckProofOfWork(&powHash, header.Header.Bits,
			params.PowLimit) == nil {
			return header
		}
		header.Header.Nonce++
	}
}

// mineChain mines n headers in a row starting on top of parent.
func mineChain(t *testing.T, params *chaincfg.Params, parent chainhash.Hash,
	n int, timestampSeed int64) []*wire.AuxBlockHeader {

	t.Helper()
	headers := make([]*wire.AuxBlockHeader, 0, n)
	for i := 0; i < n; i++ {
		header := mineHeader(t, params, parent, timestampSeed+int64(i))
		headers = append(headers, header)
		parent = header.BlockHash()
	}
	return headers
}

// TestConnectHeaders connects a mined chain and verifies heights, chainwork
// accumulation, and the locator shape.
func TestConnectHeaders(t *testing.T) {
	params := &chaincfg.RegNetParams
	db := New(params, true)

	genesis := db.ChainTip()
	require.Equal(t, int32(0), genesis.Height)
	require.Equal(t, genesis, db.ChainBottom())

	const n = 12
	headers := mineChain(t, params, genesis.Hash, n, 1000)
	for i, header := range headers {
		index, connected, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
		require.True(t, connected)
		require.Equal(t, int32(i+1), index.Height)
	}

	tip := db.ChainTip()
	require.Equal(t, int32(n), tip.Height)

	// Chainwork must be the genesis work plus n per-header work values.
	perHeader := blockchain.CalcWork(params.PowLimitBits)
	expected := new(uint256.Uint256).Set(&genesis.ChainWork)
	for i := 0; i < n; i++ {
		expected.Add(&perHeader)
	}
	require.True(t, expected.Eq(&tip.ChainWork), "chainwork mismatch")

	// The locator leads with the tip and terminates with the bottom.
	locator := db.BlockLocator()
	require.NotEmpty(t, locator)
	require.Equal(t, tip.Hash, *locator[0])
	require.Equal(t, db.ChainBottom().Hash, *locator[len(locator)-1])

	// Reconnecting a known header reports it as already connected.
	index, connected, err := db.ConnectHeader(headers[3], false)
	require.NoError(t, err)
	require.True(t, connected)
	require.Equal(t, int32(4), index.Height)
	require.Equal(t, int32(n), db.ChainTip().Height)
}

// TestConnectOrphan ensures headers with unknown parents are rejected.
func TestConnectOrphan(t *testing.T) {
	params := &chaincfg.RegNetParams
	db := New(params, true)

	orphan := mineHeader(t, params, chainhash.Hash{0xde, 0xad}, 5000)
	index, connected, err := db.ConnectHeader(orphan, false)
	require.ErrorIs(t, err, ErrOrphanHeader)
	require.False(t, connected)
	require.Nil(t, index)
}

// TestReorg builds two forks sharing a common prefix and verifies the
// heavier fork wins, ties preserve the current tip, and disconnecting
// rewinds to the common ancestor.
func TestReorg(t *testing.T) {
	params := &chaincfg.RegNetParams
	db := New(params, true)
	genesis := db.ChainTip()

	// Shared prefix of 5 headers.
	shared := mineChain(t, params, genesis.Hash, 5, 1000)
	for _, header := range shared {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
	}
	ancestor := db.ChainTip()
	require.Equal(t, int32(5), ancestor.Height)

	// Chain A: 5 more headers on the shared prefix (total height 10).
	chainA := mineChain(t, params, ancestor.Hash, 5, 2000)
	for _, header := range chainA {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
	}
	tipA := db.ChainTip()
	require.Equal(t, int32(10), tipA.Height)

	// Chain B: 6 headers on the shared prefix (total height 11).  The
	// first 5 tie chain A's work and must not displace the tip.
	chainB := mineChain(t, params, ancestor.Hash, 6, 3000)
	for i, header := range chainB {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
		if i < 5 {
			require.Equal(t, tipA, db.ChainTip(),
				"tie broke the current tip")
		}
	}

	// The sixth header of chain B has strictly more work and wins.
	tipB := db.ChainTip()
	require.Equal(t, int32(11), tipB.Height)
	require.Equal(t, chainB[5].BlockHash(), tipB.Hash)

	// Disconnecting six times reverts to the common ancestor.
	for i := 0; i < 6; i++ {
		_, err := db.DisconnectTip()
		require.NoError(t, err)
	}
	require.Equal(t, ancestor, db.ChainTip())
}

// TestDisconnectBottom ensures the chain bottom cannot be disconnected.
func TestDisconnectBottom(t *testing.T) {
	db := New(&chaincfg.RegNetParams, true)
	_, err := db.DisconnectTip()
	require.ErrorIs(t, err, ErrDisconnectBottom)
}

// TestPersistence connects headers with a backing file, reloads the file
// into a fresh database, and verifies the chain state matches.
func TestPersistence(t *testing.T) {
	params := &chaincfg.RegNetParams
	path := filepath.Join(t.TempDir(), "headers.db")

	db := New(params, false)
	require.NoError(t, db.Load(path))

	headers := mineChain(t, params, db.ChainTip().Hash, 8, 1000)
	for _, header := range headers {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
	}
	tipHash := db.ChainTip().Hash
	require.NoError(t, db.Close())

	// Reload into a fresh database.
	reloaded := New(params, false)
	require.NoError(t, reloaded.Load(path))
	require.Equal(t, int32(8), reloaded.ChainTip().Height)
	require.Equal(t, tipHash, reloaded.ChainTip().Hash)
	require.NoError(t, reloaded.Close())
}

// TestPersistenceTruncatesOnDisconnect ensures disconnecting the tip
// removes its record from the file.
func TestPersistenceTruncatesOnDisconnect(t *testing.T) {
	params := &chaincfg.RegNetParams
	path := filepath.Join(t.TempDir(), "headers.db")

	db := New(params, false)
	require.NoError(t, db.Load(path))

	headers := mineChain(t, params, db.ChainTip().Hash, 3, 1000)
	for _, header := range headers {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
	}
	_, err := db.DisconnectTip()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reloaded := New(params, false)
	require.NoError(t, reloaded.Load(path))
	require.Equal(t, int32(2), reloaded.ChainTip().Height)
	require.NoError(t, reloaded.Close())
}

// TestCorruptDatabase ensures a tampered record fails the reload.
func TestCorruptDatabase(t *testing.T) {
	params := &chaincfg.RegNetParams
	path := filepath.Join(t.TempDir(), "headers.db")

	db := New(params, false)
	require.NoError(t, db.Load(path))
	headers := mineChain(t, params, db.ChainTip().Hash, 2, 1000)
	for _, header := range headers {
		_, _, err := db.ConnectHeader(header, false)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	// Flip a byte inside the first record's header bytes.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[fileHeaderSize+chainhash.HashSize+10] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0600))

	reloaded := New(params, false)
	err = reloaded.Load(path)
	require.ErrorIs(t, err, ErrCorruptDatabase)
	require.NoError(t, reloaded.Close())
}

// TestCheckpointStart ensures checkpoint bootstrap replaces the chain
// bottom and seeds the minimum chain work.
func TestCheckpointStart(t *testing.T) {
	params := &chaincfg.MainNetParams
	db := New(params, true)
	require.False(t, db.HasCheckpointStart())

	cp := params.LatestCheckpoint()
	require.NotNil(t, cp)
	require.NoError(t, db.SetCheckpointStart(*cp.Hash, cp.Height))

	require.True(t, db.HasCheckpointStart())
	require.Equal(t, cp.Height, db.ChainTip().Height)
	require.Equal(t, *cp.Hash, db.ChainBottom().Hash)
	require.True(t, db.ChainTip().ChainWork.Eq(params.MinimumChainWork))

	// The locator of a checkpoint-only chain is just the checkpoint.
	locator := db.BlockLocator()
	require.Len(t, locator, 1)
	require.Equal(t, *cp.Hash, *locator[0])
}
