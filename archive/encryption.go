// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/serialization"
	"github.com/bitmark-inc/chainstate/util"
)

// Mode - tag byte of an encryption in the archive record
type Mode byte

// the encryption modes
const (
	ModeNone    Mode = 0
	ModePrivate Mode = 1
	ModeShared  Mode = 2
)

// String - the mode label
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePrivate:
		return "private"
	case ModeShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Encryption - how the name and blocks of an archive are protected
//
// the set of implementations is closed: NoEncryption,
// *PrivateEncryption and *SharedEncryption
type Encryption interface {
	Mode() Mode
	Label() string

	// EncryptName returns base58 ciphertext of the name
	EncryptName(name string, keys *account.KeyPair) (string, error)
	DecryptName(encrypted string, keys *account.KeyPair) (string, error)

	EncryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error)
	DecryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error)

	// BlockOverhead is the bytes encryption adds to each block
	BlockOverhead() int

	// key material suitable for display, nothing secret
	keyMaterial() map[string]string

	serializeFields(w *serialization.Writer)
	equal(Encryption) bool
}

// None
// ----

// NoEncryption - content stored as given
type NoEncryption struct{}

// Mode - ModeNone
func (NoEncryption) Mode() Mode { return ModeNone }

// Label - "none"
func (NoEncryption) Label() string { return ModeNone.String() }

// EncryptName - the name unchanged
func (NoEncryption) EncryptName(name string, _ *account.KeyPair) (string, error) {
	return name, nil
}

// DecryptName - the name unchanged
func (NoEncryption) DecryptName(encrypted string, _ *account.KeyPair) (string, error) {
	return encrypted, nil
}

// EncryptBlock - copy of the data
func (NoEncryption) EncryptBlock(data []byte, _ uint64, _ *account.KeyPair) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// DecryptBlock - copy of the data
func (NoEncryption) DecryptBlock(data []byte, _ uint64, _ *account.KeyPair) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// BlockOverhead - zero
func (NoEncryption) BlockOverhead() int { return 0 }

func (NoEncryption) keyMaterial() map[string]string { return nil }

func (NoEncryption) serializeFields(*serialization.Writer) {}

func (NoEncryption) equal(other Encryption) bool {
	_, ok := other.(NoEncryption)
	return ok
}

// Private
// -------

// PrivateEncryption - only the bound address can encrypt or decrypt
type PrivateEncryption struct {
	Address   account.Address
	NameIV    [NonceSize]byte
	ContentIV [NonceSize]byte
}

// NewPrivateEncryption - bind to an address with fresh random IVs
func NewPrivateEncryption(address account.Address) (*PrivateEncryption, error) {
	e := &PrivateEncryption{
		Address: address,
	}
	if _, err := rand.Read(e.NameIV[:]); nil != err {
		return nil, err
	}
	if _, err := rand.Read(e.ContentIV[:]); nil != err {
		return nil, err
	}
	return e, nil
}

// Mode - ModePrivate
func (e *PrivateEncryption) Mode() Mode { return ModePrivate }

// Label - "private"
func (e *PrivateEncryption) Label() string { return ModePrivate.String() }

// the symmetric key of the bound key pair
func (e *PrivateEncryption) key(keys *account.KeyPair) ([]byte, error) {
	if nil == keys || keys.Address() != e.Address {
		return nil, fault.ErrNotAuthorised
	}
	key := make([]byte, KeySize)
	if err := deriveKeys(keys.Seed(), e.Address[:], privateInfo, key); nil != err {
		return nil, err
	}
	return key, nil
}

// EncryptName - base58 ciphertext of the name
func (e *PrivateEncryption) EncryptName(name string, keys *account.KeyPair) (string, error) {
	key, err := e.key(keys)
	if nil != err {
		return "", err
	}
	ciphertext, err := seal(key, e.NameIV[:], []byte(name))
	if nil != err {
		return "", err
	}
	return util.ToBase58(ciphertext), nil
}

// DecryptName - inverse of EncryptName
func (e *PrivateEncryption) DecryptName(encrypted string, keys *account.KeyPair) (string, error) {
	key, err := e.key(keys)
	if nil != err {
		return "", err
	}
	return decryptText(encrypted, func(ciphertext []byte) ([]byte, error) {
		return open(key, e.NameIV[:], ciphertext)
	})
}

// EncryptBlock - ciphertext of one block
func (e *PrivateEncryption) EncryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error) {
	key, err := e.key(keys)
	if nil != err {
		return nil, err
	}
	return seal(key, blockNonce(e.ContentIV, index), data)
}

// DecryptBlock - plaintext of one block
func (e *PrivateEncryption) DecryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error) {
	key, err := e.key(keys)
	if nil != err {
		return nil, err
	}
	return open(key, blockNonce(e.ContentIV, index), data)
}

// BlockOverhead - the authentication tag
func (e *PrivateEncryption) BlockOverhead() int { return Overhead }

func (e *PrivateEncryption) keyMaterial() map[string]string {
	return map[string]string{
		"address":   e.Address.String(),
		"nameIV":    hex.EncodeToString(e.NameIV[:]),
		"contentIV": hex.EncodeToString(e.ContentIV[:]),
	}
}

func (e *PrivateEncryption) serializeFields(w *serialization.Writer) {
	w.WriteBytes(e.Address[:])
	w.WriteBytes(e.NameIV[:])
	w.WriteBytes(e.ContentIV[:])
}

func (e *PrivateEncryption) equal(other Encryption) bool {
	o, ok := other.(*PrivateEncryption)
	return ok && *e == *o
}

// Shared
// ------

// SharedEncryption - either party can encrypt or decrypt with a key
// agreed between the two addresses
type SharedEncryption struct {
	Source      account.Address
	Destination account.Address
}

// NewSharedEncryption - bind to a pair of addresses
func NewSharedEncryption(source account.Address, destination account.Address) *SharedEncryption {
	return &SharedEncryption{
		Source:      source,
		Destination: destination,
	}
}

// Mode - ModeShared
func (e *SharedEncryption) Mode() Mode { return ModeShared }

// Label - "shared"
func (e *SharedEncryption) Label() string { return ModeShared.String() }

// agree the key with the other party
//
// the key is the same for every archive between the two addresses, so
// each name and block carries its own random nonce
func (e *SharedEncryption) key(keys *account.KeyPair) ([]byte, error) {
	if nil == keys {
		return nil, fault.ErrNotAuthorised
	}

	var peer account.Address
	switch keys.Address() {
	case e.Source:
		peer = e.Destination
	case e.Destination:
		peer = e.Source
	default:
		return nil, fault.ErrNotAuthorised
	}

	secret, err := account.SharedSecret(keys, peer)
	if nil != err {
		return nil, err
	}

	salt := append(e.Source.Bytes(), e.Destination.Bytes()...)
	key := make([]byte, KeySize)
	if err := deriveKeys(secret, salt, sharedInfo, key); nil != err {
		return nil, err
	}
	return key, nil
}

// EncryptName - base58 of nonce and ciphertext of the name
func (e *SharedEncryption) EncryptName(name string, keys *account.KeyPair) (string, error) {
	key, err := e.key(keys)
	if nil != err {
		return "", err
	}
	ciphertext, err := sealRandom(key, []byte(name), sharedNameLabel)
	if nil != err {
		return "", err
	}
	return util.ToBase58(ciphertext), nil
}

// DecryptName - inverse of EncryptName
func (e *SharedEncryption) DecryptName(encrypted string, keys *account.KeyPair) (string, error) {
	key, err := e.key(keys)
	if nil != err {
		return "", err
	}
	return decryptText(encrypted, func(ciphertext []byte) ([]byte, error) {
		return openRandom(key, ciphertext, sharedNameLabel)
	})
}

// EncryptBlock - nonce and ciphertext of one block
func (e *SharedEncryption) EncryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error) {
	key, err := e.key(keys)
	if nil != err {
		return nil, err
	}
	return sealRandom(key, data, blockLabel(index))
}

// DecryptBlock - plaintext of one block
func (e *SharedEncryption) DecryptBlock(data []byte, index uint64, keys *account.KeyPair) ([]byte, error) {
	key, err := e.key(keys)
	if nil != err {
		return nil, err
	}
	return openRandom(key, data, blockLabel(index))
}

// BlockOverhead - the nonce and the authentication tag
func (e *SharedEncryption) BlockOverhead() int { return NonceSizeX + Overhead }

func (e *SharedEncryption) keyMaterial() map[string]string {
	return map[string]string{
		"source":      e.Source.String(),
		"destination": e.Destination.String(),
	}
}

func (e *SharedEncryption) serializeFields(w *serialization.Writer) {
	w.WriteBytes(e.Source[:])
	w.WriteBytes(e.Destination[:])
}

func (e *SharedEncryption) equal(other Encryption) bool {
	o, ok := other.(*SharedEncryption)
	return ok && *e == *o
}

// decode base58 text and decrypt it as a string
func decryptText(encrypted string, decrypt func([]byte) ([]byte, error)) (string, error) {
	ciphertext := util.FromBase58(encrypted)
	if 0 == len(ciphertext) {
		return "", fault.ErrDecryptionFailed
	}
	plaintext, err := decrypt(ciphertext)
	if nil != err {
		return "", err
	}
	return string(plaintext), nil
}

// serialization
// -------------

func writeEncryption(w *serialization.Writer, e Encryption) {
	w.WriteUint8(byte(e.Mode()))
	e.serializeFields(w)
}

func readAddress(r *serialization.Reader) account.Address {
	var a account.Address
	copy(a[:], r.ReadBytes(account.AddressLength))
	return a
}

func readEncryption(r *serialization.Reader) Encryption {
	mode := Mode(r.ReadUint8())
	if nil != r.Err() {
		return nil
	}

	switch mode {
	case ModeNone:
		return NoEncryption{}

	case ModePrivate:
		e := &PrivateEncryption{
			Address: readAddress(r),
		}
		copy(e.NameIV[:], r.ReadBytes(NonceSize))
		copy(e.ContentIV[:], r.ReadBytes(NonceSize))
		return e

	case ModeShared:
		source := readAddress(r)
		destination := readAddress(r)
		return NewSharedEncryption(source, destination)

	default:
		r.Fail(fault.ErrInvalidEncryptionMode)
		return nil
	}
}

// ParseMode - mode from its label
func ParseMode(label string) (Mode, error) {
	for _, m := range []Mode{ModeNone, ModePrivate, ModeShared} {
		if m.String() == label {
			return m, nil
		}
	}
	return ModeNone, fault.ErrInvalidEncryptionMode
}
