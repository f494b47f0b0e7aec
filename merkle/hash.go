// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/chainstate/fault"
)

// number of bytes in the hash
const HashLength = sha256.Size

// Hash - a SHA-256 digest
//
// stored as the raw digest bytes
// represented as byte-reversed hex value for print
// represented as stored-order hex text for JSON encoding
type Hash [HashLength]byte

// NullHash - the padding leaf: all zero bytes
var NullHash Hash

// NewHash - digest of a byte slice
func NewHash(record []byte) Hash {
	return sha256.Sum256(record)
}

// Combine - parent of two nodes: SHA256(left ∥ right)
func Combine(left Hash, right Hash) Hash {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])

	var result Hash
	copy(result[:], h.Sum(nil))
	return result
}

// HashFromBytes - validate and convert a byte slice to a hash
func HashFromBytes(buffer []byte) (Hash, error) {
	var h Hash
	if HashLength != len(buffer) {
		return h, fault.ErrInvalidHashLength
	}
	copy(h[:], buffer)
	return h, nil
}

// IsNull - true for the padding hash
func (h Hash) IsNull() bool {
	return NullHash == h
}

// Bytes - copy of the hash as a slice
func (h Hash) Bytes() []byte {
	return append([]byte{}, h[:]...)
}

// return a reversed byte order copy of a hash
func reversed(h Hash) []byte {
	result := make([]byte, HashLength)
	for i := 0; i < HashLength; i += 1 {
		result[i] = h[HashLength-1-i]
	}
	return result
}

// convert a hash to reversed hex string for use by the fmt package (for %s)
func (h Hash) String() string {
	return hex.EncodeToString(reversed(h))
}

// convert a hash to reversed hex string for use by the fmt package (for %#v)
func (h Hash) GoString() string {
	return "<SHA256:" + hex.EncodeToString(reversed(h)) + ">"
}

// convert a reversed hex representation to a hash for use by the format package scan routines
func (h *Hash) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		switch {
		case c >= '0' && c <= '9':
			return true
		case c >= 'A' && c <= 'F':
			return true
		case c >= 'a' && c <= 'f':
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(HashLength) {
		return fault.ErrInvalidHashLength
	}

	buffer := make([]byte, HashLength)
	if _, err := hex.Decode(buffer, token); nil != err {
		return err
	}
	for i, v := range buffer {
		h[HashLength-1-i] = v
	}
	return nil
}

// Hex - stored order hex, the form used by text marshalling and logs
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// MarshalText - stored order hex text
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText - stored order hex text to a hash
func (h *Hash) UnmarshalText(s []byte) error {
	if HashLength != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidHashLength
	}
	buffer := make([]byte, HashLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	copy(h[:], buffer)
	return nil
}
