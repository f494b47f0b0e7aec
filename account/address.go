// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/util"
)

// miscellaneous constants
const (
	AddressLength = ed25519.PublicKeySize

	checksumLength = 4

	// leading byte of the text form
	publicKeyCode = 0x01
)

// Address - an ed25519 public key
type Address [AddressLength]byte

// AddressFromBytes - validate and convert a raw public key
func AddressFromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], buffer)
	return a, nil
}

// AddressFromBase58 - decode the text form of an address
func AddressFromBase58(s string) (Address, error) {
	var a Address

	decoded := util.FromBase58(s)
	if 0 == len(decoded) {
		return a, fault.ErrInvalidAddress
	}
	if publicKeyCode != decoded[0] {
		return a, fault.ErrNotPublicKey
	}
	if 1+AddressLength+checksumLength != len(decoded) {
		return a, fault.ErrInvalidKeyLength
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ErrChecksumMismatch
	}

	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// Bytes - copy of the raw public key
func (a Address) Bytes() []byte {
	return append([]byte{}, a[:]...)
}

// PublicKey - the address as an ed25519 key
func (a Address) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(a.Bytes())
}

// base58 encoding of the key with code and checksum
func (a Address) String() string {
	buffer := append([]byte{publicKeyCode}, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<Address:" + a.String() + ">"
}

// MarshalText - the base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - decode the base58 JSON form
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
