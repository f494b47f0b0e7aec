// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"
	"math/big"
	"unicode/utf8"

	"github.com/bitmark-inc/chainstate/fault"
)

// Reader - decode a binary record
//
// the first failure is remembered; every later read returns a zero
// value so a sequence of reads can be checked once with Err()
type Reader struct {
	buffer []byte
	offset int
	err    error
}

// NewReader - read from a buffer
//
// the buffer is not copied
func NewReader(buffer []byte) *Reader {
	return &Reader{
		buffer: buffer,
	}
}

// Err - first error encountered
func (r *Reader) Err() error {
	return r.err
}

// Remaining - count of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.offset
}

// Fail - record an error found by a caller while decoding
func (r *Reader) Fail(err error) {
	if nil == r.err {
		r.err = err
	}
}

// ReadBytes - exactly n raw bytes, copied
func (r *Reader) ReadBytes(n int) []byte {
	if nil != r.err {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = fault.ErrTruncatedRecord
		return nil
	}
	result := make([]byte, n)
	copy(result, r.buffer[r.offset:r.offset+n])
	r.offset += n
	return result
}

// ReadUint8 - single byte
func (r *Reader) ReadUint8() byte {
	b := r.ReadBytes(1)
	if nil != r.err {
		return 0
	}
	return b[0]
}

// ReadVarInt - compact size integer
func (r *Reader) ReadVarInt() uint64 {
	if nil != r.err {
		return 0
	}
	value, n, err := FromVarInt(r.buffer[r.offset:])
	if nil != err {
		r.err = err
		return 0
	}
	r.offset += n
	return value
}

// ReadVarBytes - length prefixed bytes
func (r *Reader) ReadVarBytes() []byte {
	n := r.ReadVarInt()
	if nil != r.err {
		return nil
	}
	if n > uint64(r.Remaining()) {
		r.err = fault.ErrTruncatedRecord
		return nil
	}
	return r.ReadBytes(int(n))
}

// ReadVarString - length prefixed UTF-8 string
func (r *Reader) ReadVarString() string {
	b := r.ReadVarBytes()
	if nil != r.err {
		return ""
	}
	if !utf8.Valid(b) {
		r.err = fault.ErrInvalidString
		return ""
	}
	return string(b)
}

// ReadUint32 - little endian
func (r *Reader) ReadUint32() uint32 {
	b := r.ReadBytes(4)
	if nil != r.err {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadInt32 - little endian two's complement
func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

// ReadBigInt - length prefixed two's complement
func (r *Reader) ReadBigInt() *big.Int {
	b := r.ReadVarBytes()
	if nil != r.err {
		return new(big.Int)
	}
	return BigIntFromBytes(b)
}
