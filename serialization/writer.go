// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"encoding/binary"
	"math/big"
)

// Writer - accumulate a binary record
//
// writes to the underlying buffer cannot fail, so no method returns
// an error
type Writer struct {
	buffer bytes.Buffer
}

// NewWriter - create an empty writer
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes - the record written so far
func (w *Writer) Bytes() []byte {
	return w.buffer.Bytes()
}

// Len - number of bytes written so far
func (w *Writer) Len() int {
	return w.buffer.Len()
}

// WriteUint8 - a single byte
func (w *Writer) WriteUint8(b byte) {
	w.buffer.WriteByte(b)
}

// WriteBytes - raw bytes without any length prefix
func (w *Writer) WriteBytes(b []byte) {
	w.buffer.Write(b)
}

// WriteVarInt - compact size integer
func (w *Writer) WriteVarInt(value uint64) {
	w.buffer.Write(ToVarInt(value))
}

// WriteVarBytes - length prefixed bytes
func (w *Writer) WriteVarBytes(b []byte) {
	w.WriteVarInt(uint64(len(b)))
	w.buffer.Write(b)
}

// WriteVarString - length prefixed UTF-8 string
func (w *Writer) WriteVarString(s string) {
	w.WriteVarInt(uint64(len(s)))
	w.buffer.WriteString(s)
}

// WriteUint32 - little endian
func (w *Writer) WriteUint32(value uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	w.buffer.Write(b[:])
}

// WriteInt32 - little endian two's complement
func (w *Writer) WriteInt32(value int32) {
	w.WriteUint32(uint32(value))
}

// WriteBigInt - length prefixed two's complement
func (w *Writer) WriteBigInt(n *big.Int) {
	w.WriteVarBytes(BigIntToBytes(n))
}
