// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/chainstate/fault"
)

// SeedLength - bytes of private seed
const SeedLength = ed25519.SeedSize

// KeyPair - an ed25519 private key and its address
type KeyPair struct {
	privateKey ed25519.PrivateKey
	address    Address
}

// NewKeyPair - key pair from a random seed
func NewKeyPair() (*KeyPair, error) {
	seed := make([]byte, SeedLength)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return KeyPairFromSeed(seed)
}

// KeyPairFromSeed - deterministic key pair from a 32 byte seed
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if SeedLength != len(seed) {
		return nil, fault.ErrInvalidSeedLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)

	kp := &KeyPair{
		privateKey: privateKey,
	}
	copy(kp.address[:], privateKey.Public().(ed25519.PublicKey))
	return kp, nil
}

// KeyPairFromHexSeed - key pair from a hex encoded seed
func KeyPairFromHexSeed(s string) (*KeyPair, error) {
	seed, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidSeedLength
	}
	return KeyPairFromSeed(seed)
}

// Address - the public key of the pair
func (kp *KeyPair) Address() Address {
	return kp.address
}

// PrivateKey - the full ed25519 private key
func (kp *KeyPair) PrivateKey() ed25519.PrivateKey {
	return append(ed25519.PrivateKey{}, kp.privateKey...)
}

// Seed - the private seed
func (kp *KeyPair) Seed() []byte {
	return kp.privateKey.Seed()
}

// Sign - ed25519 signature of a message
func (kp *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(kp.privateKey, message)
}

// Verify - check an ed25519 signature made by an address
func Verify(a Address, message []byte, signature []byte) bool {
	if ed25519.SignatureSize != len(signature) {
		return false
	}
	return ed25519.Verify(a.PublicKey(), message, signature)
}

// the X25519 scalar of the pair: the ed25519 secret scalar before
// clamping, which X25519 applies itself
func (kp *KeyPair) scalar() []byte {
	digest := sha512.Sum512(kp.privateKey.Seed())
	return digest[:32]
}
