// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2023-2024 The doged developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/decred/dcrd/math/uint256"
	"github.com/dogesuite/doged/chaincfg/chainhash"
)

// DiffBitsToUint256 converts the compact representation used to encode
// difficulty targets to an unsigned 256-bit integer.  The representation is
// similar to IEEE754 floating point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa.  They are broken out as follows:
//
//  1. the most significant 8 bits represent the unsigned base 256 exponent
//  2. zero-based bit 23 (the 24th bit) represents the sign bit
//  3. the least significant 23 bits represent the mantissa
//
// The formula to calculate N is:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// Note that this encoding is capable of representing negative numbers as well
// as numbers much larger than the maximum value of an unsigned 256-bit
// integer.  However, it is only used to encode unsigned 256-bit integers, so
// the additional flags to determine if the encoded value was negative and/or
// overflows are returned as well.
func DiffBitsToUint256(bits uint32) (n uint256.Uint256, isNegative bool, isOverflow bool) {
	// Extract the mantissa, sign bit, and exponent.
	mantissa := bits & 0x007fffff
	isSignBitSet := bits&0x00800000 != 0
	exponent := bits >> 24

	// Treat the exponent as the number of bytes and shift the mantissa
	// right or left accordingly.  This is equivalent to:
	// n = mantissa * 256^(exponent-3)
	if exponent <= 3 {
		n.SetUint64(uint64(mantissa >> (8 * (3 - exponent))))
	} else {
		n.SetUint64(uint64(mantissa))
		n.Lsh(8 * (exponent - 3))
	}

	// The value is negative when the sign bit is set and the value is
	// nonzero.
	isNegative = isSignBitSet && !n.IsZero()

	// The value overflows a uint256 when the shifted mantissa would exceed
	// 32 bytes.
	isOverflow = mantissa != 0 && ((exponent > 34) ||
		(mantissa > 0xff && exponent > 33) ||
		(mantissa > 0xffff && exponent > 32))
	return n, isNegative, isOverflow
}

// Uint256ToDiffBits converts a uint256 to a compact representation using an
// unsigned 32-bit integer.  It inverts DiffBitsToUint256 for all non-negative
// non-overflowing values.
func Uint256ToDiffBits(n *uint256.Uint256) uint32 {
	if n.IsZero() {
		return 0
	}

	// Shift the value and decompose it into an exponent denoting the number
	// of bytes and a mantissa with the sign bit clear.
	exponent := (uint32(n.BitLen()) + 7) / 8
	var mantissa uint32
	if exponent <= 3 {
		mantissa = n.Uint32() << (8 * (3 - exponent))
	} else {
		shifted := new(uint256.Uint256).Set(n).Rsh(8 * (exponent - 3))
		mantissa = shifted.Uint32()
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23 bits, so divide the number by 256
	// and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	// Pack the exponent and mantissa into the compact representation.
	return exponent<<24 | mantissa
}

// CalcWork calculates a work value from difficulty bits.  Dogecoin increases
// the difficulty for generating a block by decreasing the value which the
// generated hash must be less than.  This difficulty target is stored in each
// block header using a compact representation.
//
// The main chain is selected by choosing the chain that has the most proof of
// work (highest difficulty).  Since a lower target difficulty value equates
// to higher actual difficulty, the work value which will be accumulated must
// be the inverse of the difficulty.  Also, in order to avoid potential
// division by zero and really small floating point numbers, the result adds
// 1 to the denominator and multiplies the numerator by 2^256.
func CalcWork(bits uint32) uint256.Uint256 {
	// Return a work value of zero if the passed difficulty bits represent a
	// negative number, zero, or a number that overflows a uint256.  Note
	// this should not happen in practice with valid blocks, but an invalid
	// block could trigger it.
	target, isNegative, isOverflow := DiffBitsToUint256(bits)
	if isNegative || isOverflow || target.IsZero() {
		return uint256.Uint256{}
	}

	// The goal is to calculate 2^256 / (target + 1), where target is less
	// than 2^256.  However, a uint256 can't represent 2^256, so the
	// following equivalence is used instead:
	//
	//	2^256 / (target+1) == ~target / (target+1) + 1
	divisor := new(uint256.Uint256).Set(&target).AddUint64(1)
	return *target.Not().Div(divisor).AddUint64(1)
}

// HashToUint256 converts the provided hash to an unsigned 256-bit integer
// that can be used to perform math comparisons.  Hashes are stored in
// little-endian byte order while the integer type is big-endian, so the bytes
// are reversed during the conversion.
func HashToUint256(hash *chainhash.Hash) uint256.Uint256 {
	var buf [32]byte
	for i := 0; i < chainhash.HashSize; i++ {
		buf[i] = hash[chainhash.HashSize-1-i]
	}
	var n uint256.Uint256
	n.SetBytes(&buf)
	return n
}

// CheckProofOfWorkRange ensures the provided difficulty bits are in the valid
// range per the provided proof of work limit.
func CheckProofOfWorkRange(bits uint32, powLimit *uint256.Uint256) error {
	// The target difficulty must be larger than zero and not overflow and
	// must not be negative since a negative target difficulty is invalid.
	target, isNegative, isOverflow := DiffBitsToUint256(bits)
	if isNegative {
		str := fmt.Sprintf("target difficulty bits %08x is a negative value",
			bits)
		return ruleError(ErrUnexpectedDifficulty, str)
	}
	if isOverflow {
		str := fmt.Sprintf("target difficulty bits %08x is higher than the "+
			"max limit %x", bits, powLimit)
		return ruleError(ErrUnexpectedDifficulty, str)
	}
	if target.IsZero() {
		str := fmt.Sprintf("target difficulty bits %08x is zero", bits)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must not exceed the maximum allowed.
	if target.Gt(powLimit) {
		str := fmt.Sprintf("target difficulty of %x is higher than max of %x",
			target, powLimit)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	return nil
}

// CheckProofOfWork ensures the provided proof of work hash is less than the
// target difficulty represented by given difficulty bits and that the
// difficulty itself is in the valid range per the provided proof of work
// limit.
//
// For legacy headers the hash is the scrypt digest of the header itself; for
// merge-mined headers it is the scrypt digest of the parent chain header.
func CheckProofOfWork(powHash *chainhash.Hash, bits uint32, powLimit *uint256.Uint256) error {
	if err := CheckProofOfWorkRange(bits, powLimit); err != nil {
		return err
	}

	// The proof of work hash must be less than the claimed target.
	target, _, _ := DiffBitsToUint256(bits)
	hashNum := HashToUint256(powHash)
	if hashNum.Gt(&target) {
		str := fmt.Sprintf("proof of work hash %064x is higher than expected "+
			"max of %064x", hashNum, target)
		return ruleError(ErrHighHash, str)
	}

	return nil
}
