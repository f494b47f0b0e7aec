// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"

	"github.com/bitmark-inc/chainstate/fault"
)

// VarIntMaximumBytes - maximum possible number of bytes in a varint
const VarIntMaximumBytes = 9

// ToVarInt - convert a 64 bit unsigned integer to a compact size varint
//
// Structure of the result:
//
//	value < 0xfd          1 byte:  value
//	value ≤ 0xffff        3 bytes: 0xfd ++ uint16 (little endian)
//	value ≤ 0xffffffff    5 bytes: 0xfe ++ uint32 (little endian)
//	otherwise             9 bytes: 0xff ++ uint64 (little endian)
func ToVarInt(value uint64) []byte {
	switch {
	case value < 0xfd:
		return []byte{byte(value)}
	case value <= 0xffff:
		result := make([]byte, 3)
		result[0] = 0xfd
		binary.LittleEndian.PutUint16(result[1:], uint16(value))
		return result
	case value <= 0xffffffff:
		result := make([]byte, 5)
		result[0] = 0xfe
		binary.LittleEndian.PutUint32(result[1:], uint32(value))
		return result
	default:
		result := make([]byte, 9)
		result[0] = 0xff
		binary.LittleEndian.PutUint64(result[1:], value)
		return result
	}
}

// FromVarInt - convert a compact size varint to a uint64
//
// also return the number of bytes used as second value
// returns an error if the buffer is truncated or the value was not
// written in its shortest form
func FromVarInt(buffer []byte) (uint64, int, error) {
	if 0 == len(buffer) {
		return 0, 0, fault.ErrTruncatedRecord
	}

	var value uint64
	var count int
	var minimum uint64

	switch buffer[0] {
	case 0xfd:
		count = 3
		minimum = 0xfd
	case 0xfe:
		count = 5
		minimum = 0x10000
	case 0xff:
		count = 9
		minimum = 0x100000000
	default:
		return uint64(buffer[0]), 1, nil
	}

	if len(buffer) < count {
		return 0, 0, fault.ErrTruncatedRecord
	}

	switch count {
	case 3:
		value = uint64(binary.LittleEndian.Uint16(buffer[1:3]))
	case 5:
		value = uint64(binary.LittleEndian.Uint32(buffer[1:5]))
	default:
		value = binary.LittleEndian.Uint64(buffer[1:9])
	}

	if value < minimum {
		return 0, 0, fault.ErrBadVarInt
	}
	return value, count, nil
}
