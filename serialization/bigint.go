// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"math/big"
)

// BigIntToBytes - minimal little endian two's complement form
//
// zero is a single 0x00 byte; a positive number whose top bit would
// be set gets an extra 0x00 so it is not read back as negative
func BigIntToBytes(n *big.Int) []byte {
	if nil == n || 0 == n.Sign() {
		return []byte{0x00}
	}

	if n.Sign() > 0 {
		magnitude := n.Bytes() // big endian
		if magnitude[0]&0x80 != 0 {
			magnitude = append([]byte{0x00}, magnitude...)
		}
		return reverse(magnitude)
	}

	// negative: two's complement over the smallest width that keeps the
	// sign bit set
	width := (n.BitLen() + 8) / 8
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(width*8))
	value := new(big.Int).Add(modulus, n)
	buffer := value.Bytes()
	for len(buffer) < width {
		buffer = append([]byte{0xff}, buffer...)
	}

	// strip redundant 0xff bytes
	for len(buffer) > 1 && 0xff == buffer[0] && buffer[1]&0x80 != 0 {
		buffer = buffer[1:]
	}
	return reverse(buffer)
}

// BigIntFromBytes - inverse of BigIntToBytes
//
// an empty buffer is zero
func BigIntFromBytes(buffer []byte) *big.Int {
	if 0 == len(buffer) {
		return new(big.Int)
	}

	bigEndian := reverse(buffer)
	n := new(big.Int).SetBytes(bigEndian)
	if bigEndian[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(len(buffer)*8))
		n.Sub(n, modulus)
	}
	return n
}

// Uint64ToBytes - big integer form of an unsigned value
func Uint64ToBytes(n uint64) []byte {
	return BigIntToBytes(new(big.Int).SetUint64(n))
}

// reversed copy of a byte slice
func reverse(b []byte) []byte {
	result := make([]byte, len(b))
	for i, v := range b {
		result[len(b)-1-i] = v
	}
	return result
}
