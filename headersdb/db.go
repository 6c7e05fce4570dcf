// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headersdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrd/math/uint256"
	"github.com/dogesuite/doged/blockchain"
	"github.com/dogesuite/doged/chaincfg"
	"github.com/dogesuite/doged/chaincfg/chainhash"
	"github.com/dogesuite/doged/wire"
)

const (
	// fileMagic identifies a headers database file.
	fileMagic uint32 = 0xa8b0fb61

	// fileVersion is the current version of the headers database file
	// format.
	fileVersion uint32 = 1

	// fileHeaderSize is the size of the fixed file header: file magic,
	// file version, and network magic.
	fileHeaderSize = 12

	// recordSize is the size of one serialized index record: hash, plain
	// header, height, and chainwork.
	recordSize = chainhash.HashSize + 80 + 4 + chainhash.HashSize
)

// HeadersDB is an in-memory index of block headers keyed by hash with
// optional append-only file persistence.  It is owned by a single goroutine
// and is not safe for concurrent access.
type HeadersDB struct {
	params *chaincfg.Params
	index  map[chainhash.Hash]*BlockIndex
	tip    *BlockIndex
	bottom *BlockIndex

	file          *os.File
	memOnly       bool
	hasCheckpoint bool
}

var _ DB = (*HeadersDB)(nil)

// New returns a headers database for the given network seeded with the
// genesis block.  When memOnly is set, Load becomes a no-op and nothing is
// ever written to disk.
func New(params *chaincfg.Params, memOnly bool) *HeadersDB {
	db := &HeadersDB{
		params:  params,
		index:   make(map[chainhash.Hash]*BlockIndex),
		memOnly: memOnly,
	}

	genesis := &BlockIndex{
		Hash:      *params.GenesisHash,
		Header:    params.GenesisBlock.Header,
		Height:    0,
		Parent:    nil,
		ChainWork: blockchain.CalcWork(params.GenesisBlock.Header.Bits),
	}
	db.index[genesis.Hash] = genesis
	db.tip = genesis
	db.bottom = genesis
	return db
}

// ChainTip returns the entry with the most cumulative work.
func (db *HeadersDB) ChainTip() *BlockIndex {
	return db.tip
}

// ChainBottom returns the genesis entry or the checkpoint bottom.
func (db *HeadersDB) ChainBottom() *BlockIndex {
	return db.bottom
}

// Find returns the index entry for the given hash, or nil when the hash is
// unknown.
func (db *HeadersDB) Find(hash *chainhash.Hash) *BlockIndex {
	return db.index[*hash]
}

// HasCheckpointStart reports whether the chain bottom is a checkpoint rather
// than the genesis block.
func (db *HeadersDB) HasCheckpointStart() bool {
	return db.hasCheckpoint
}

// SetCheckpointStart replaces the chain bottom with a trusted checkpoint.
// The checkpoint entry has no parent and its chainwork is seeded from the
// network's minimum known chain work, which keeps cumulative work
// comparisons against pre-checkpoint forks honest.
func (db *HeadersDB) SetCheckpointStart(hash chainhash.Hash, height int32) error {
	cp := &BlockIndex{
		Hash:      hash,
		Height:    height,
		Parent:    nil,
		ChainWork: *db.params.MinimumChainWork,
	}
	db.index[cp.Hash] = cp
	db.tip = cp
	db.bottom = cp
	db.hasCheckpoint = true

	log.Infof("Bootstrapping headers from checkpoint %v (height %d)", hash,
		height)
	return nil
}

// Close releases the persistence file, if any.
func (db *HeadersDB) Close() error {
	if db.file == nil {
		return nil
	}
	err := db.file.Close()
	db.file = nil
	return err
}

// Load replays the persisted header chain from the given file and keeps the
// file open for appending.  A missing file is created.  A trailing partial
// record, the result of an interrupted append, is discarded by truncation.
// Any deeper inconsistency fails with ErrCorruptDatabase; deleting the file
// recovers at the cost of a fresh sync.
func (db *HeadersDB) Load(path string) error {
	if db.memOnly {
		return nil
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	db.file = file

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	// Fresh file: write the file header and we're done.
	if stat.Size() == 0 {
		return db.writeFileHeader()
	}

	if err := db.checkFileHeader(); err != nil {
		return err
	}

	// Replay all complete records.
	payload := stat.Size() - fileHeaderSize
	numRecords := payload / recordSize
	if payload%recordSize != 0 {
		log.Warnf("Headers database has a partial trailing record; truncating")
		if err := file.Truncate(fileHeaderSize + numRecords*recordSize); err != nil {
			return err
		}
	}

	var buf [recordSize]byte
	for i := int64(0); i < numRecords; i++ {
		if _, err := io.ReadFull(file, buf[:]); err != nil {
			return err
		}
		if err := db.loadRecord(buf[:]); err != nil {
			return err
		}
	}

	// Leave the file positioned at the end for appending.
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	log.Infof("Loaded %d headers, tip %v (height %d)", numRecords,
		db.tip.Hash, db.tip.Height)
	return nil
}

// writeFileHeader writes the fixed file header to a fresh database file.
func (db *HeadersDB) writeFileHeader() error {
	var hdr [fileHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], fileMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], fileVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(db.params.Net))
	if _, err := db.file.Write(hdr[:]); err != nil {
		return err
	}
	return db.file.Sync()
}

// checkFileHeader verifies the fixed file header of an existing database
// file and leaves the read offset at the first record.
func (db *HeadersDB) checkFileHeader() error {
	var hdr [fileHeaderSize]byte
	if _, err := db.file.ReadAt(hdr[:], 0); err != nil {
		return fmt.Errorf("%w: short file header", ErrCorruptDatabase)
	}
	if binary.LittleEndian.Uint32(hdr[0:4]) != fileMagic {
		return fmt.Errorf("%w: bad file magic", ErrCorruptDatabase)
	}
	if binary.LittleEndian.Uint32(hdr[4:8]) != fileVersion {
		return fmt.Errorf("%w: unsupported file version", ErrCorruptDatabase)
	}
	if binary.LittleEndian.Uint32(hdr[8:12]) != uint32(db.params.Net) {
		return fmt.Errorf("%w: file belongs to another network",
			ErrCorruptDatabase)
	}
	_, err := db.file.Seek(fileHeaderSize, io.SeekStart)
	return err
}

// loadRecord reconstructs one index entry from its serialized form.  The
// parent must already be present, the stored hash must match the header, and
// the stored chainwork must be consistent with the parent.
func (db *HeadersDB) loadRecord(buf []byte) error {
	var hash chainhash.Hash
	copy(hash[:], buf[:chainhash.HashSize])

	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(buf[chainhash.HashSize : chainhash.HashSize+80])); err != nil {
		return fmt.Errorf("%w: undecodable header", ErrCorruptDatabase)
	}

	height := int32(binary.LittleEndian.Uint32(buf[chainhash.HashSize+80 : chainhash.HashSize+84]))

	var workBuf [32]byte
	copy(workBuf[:], buf[chainhash.HashSize+84:])
	var chainWork uint256.Uint256
	chainWork.SetBytes(&workBuf)

	// Headers already present (the genesis block, or a checkpoint written
	// by an earlier run) are accepted as-is.
	if _, ok := db.index[hash]; ok {
		return nil
	}

	// Verify the stored hash actually identifies the stored header.
	if got := header.BlockHash(); got != hash {
		return fmt.Errorf("%w: record hash %v does not match header hash %v",
			ErrCorruptDatabase, hash, got)
	}

	parent, ok := db.index[header.PrevBlock]
	if !ok {
		return fmt.Errorf("%w: out of order record %v", ErrCorruptDatabase,
			hash)
	}
	if height != parent.Height+1 {
		return fmt.Errorf("%w: record %v has height %d, parent has %d",
			ErrCorruptDatabase, hash, height, parent.Height)
	}

	// Chainwork must be the parent's plus the work encoded in the header
	// bits.
	work := blockchain.CalcWork(header.Bits)
	expected := new(uint256.Uint256).Set(&parent.ChainWork).Add(&work)
	if !expected.Eq(&chainWork) {
		return fmt.Errorf("%w: record %v has inconsistent chainwork",
			ErrCorruptDatabase, hash)
	}

	entry := &BlockIndex{
		Hash:      hash,
		Header:    header,
		Height:    height,
		Parent:    parent,
		ChainWork: chainWork,
	}
	db.index[hash] = entry
	if entry.ChainWork.Gt(&db.tip.ChainWork) {
		db.tip = entry
	}
	return nil
}

// ConnectHeader validates the given header and appends it to the header
// tree.  Headers that are already present are reported as connected without
// revalidation.  An unknown parent fails with ErrOrphanHeader.  Proof of
// work (and the auxiliary proof of work for merge-mined headers) is enforced
// except while replaying already-validated records during Load.
//
// When the new entry has strictly more cumulative work than the current tip,
// the tip moves and, outside the load phase, the entry is appended to the
// persistence file.  A tie keeps the current tip.
func (db *HeadersDB) ConnectHeader(header *wire.AuxBlockHeader, loadPhase bool) (*BlockIndex, bool, error) {
	hash := header.BlockHash()
	if existing, ok := db.index[hash]; ok {
		return existing, true, nil
	}

	parent, ok := db.index[header.Header.PrevBlock]
	if !ok {
		return nil, false, ErrOrphanHeader
	}

	if !loadPhase {
		if err := db.checkHeaderPow(header); err != nil {
			return nil, false, err
		}
	}

	work := blockchain.CalcWork(header.Header.Bits)
	entry := &BlockIndex{
		Hash:   hash,
		Header: header.Header,
		Height: parent.Height + 1,
		Parent: parent,
	}
	entry.ChainWork.Set(&parent.ChainWork).Add(&work)
	db.index[hash] = entry

	if entry.ChainWork.Gt(&db.tip.ChainWork) {
		if db.tip.Parent != entry.Parent && db.tip != entry.Parent {
			log.Debugf("Chain reorganization to %v (height %d)", hash,
				entry.Height)
		}
		db.tip = entry
		if !loadPhase {
			if err := db.appendRecord(entry); err != nil {
				return nil, false, err
			}
		}
	}

	return entry, true, nil
}

// checkHeaderPow enforces the proof of work rules for a header about to be
// connected.
func (db *HeadersDB) checkHeaderPow(header *wire.AuxBlockHeader) error {
	if header.Header.IsAuxPow() {
		if !db.params.AllowAuxPow {
			return fmt.Errorf("unexpected auxpow header on network %s",
				db.params.Name)
		}
		return blockchain.CheckAuxPow(header, db.params)
	}

	powHash := header.Header.PowHash()
	return blockchain.CheckProofOfWork(&powHash, header.Header.Bits,
		db.params.PowLimit)
}

// DisconnectTip unlinks the current tip, makes its parent the new tip, and
// shortens the persistence file by one record.
func (db *HeadersDB) DisconnectTip() (*BlockIndex, error) {
	if db.tip == db.bottom || db.tip.Parent == nil {
		return nil, ErrDisconnectBottom
	}

	removed := db.tip
	delete(db.index, removed.Hash)
	db.tip = removed.Parent

	if db.file != nil {
		stat, err := db.file.Stat()
		if err != nil {
			return nil, err
		}
		if stat.Size() >= fileHeaderSize+recordSize {
			if err := db.file.Truncate(stat.Size() - recordSize); err != nil {
				return nil, err
			}
			if _, err := db.file.Seek(0, io.SeekEnd); err != nil {
				return nil, err
			}
		}
	}

	log.Debugf("Disconnected header %v (height %d)", removed.Hash,
		removed.Height)
	return removed, nil
}

// appendRecord serializes one index entry to the persistence file and
// flushes it.
func (db *HeadersDB) appendRecord(entry *BlockIndex) error {
	if db.file == nil {
		return nil
	}

	var buf [recordSize]byte
	copy(buf[:chainhash.HashSize], entry.Hash[:])

	var hdrBuf bytes.Buffer
	hdrBuf.Grow(80)
	_ = entry.Header.Serialize(&hdrBuf)
	copy(buf[chainhash.HashSize:chainhash.HashSize+80], hdrBuf.Bytes())

	binary.LittleEndian.PutUint32(buf[chainhash.HashSize+80:chainhash.HashSize+84],
		uint32(entry.Height))

	work := entry.ChainWork.Bytes()
	copy(buf[chainhash.HashSize+84:], work[:])

	if _, err := db.file.Write(buf[:]); err != nil {
		return err
	}
	return db.file.Sync()
}

// BlockLocator returns a sparse locator describing the current main chain:
// the tip, the next 10 headers stepping back one at a time, then doubling
// the stride, always terminating with the chain bottom.
func (db *HeadersDB) BlockLocator() []*chainhash.Hash {
	locator := make([]*chainhash.Hash, 0, 32)
	node := db.tip
	step := int32(1)
	for node != nil {
		locator = append(locator, &node.Hash)
		if node == db.bottom {
			break
		}

		// Walk back step parents, clamping at the bottom.
		for i := int32(0); i < step && node != db.bottom; i++ {
			if node.Parent == nil {
				break
			}
			node = node.Parent
		}
		if len(locator) > 10 {
			step *= 2
		}
	}
	return locator
}
