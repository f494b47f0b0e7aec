// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"github.com/bitmark-inc/chainstate/fault"
)

// SharedSecretLength - bytes of an agreed secret
const SharedSecretLength = curve25519.PointSize

// SharedSecret - X25519 agreement between a key pair and another address
//
// both parties obtain the same value:
//
//	SharedSecret(a, b.Address()) == SharedSecret(b, a.Address())
func SharedSecret(kp *KeyPair, peer Address) ([]byte, error) {
	point, err := montgomery(peer)
	if nil != err {
		return nil, err
	}
	secret, err := curve25519.X25519(kp.scalar(), point)
	if nil != err {
		// low order point
		return nil, fault.ErrNotPublicKey
	}
	return secret, nil
}

// convert an ed25519 public key to its X25519 form
func montgomery(a Address) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(a[:])
	if nil != err {
		return nil, fault.ErrNotPublicKey
	}
	return p.BytesMontgomery(), nil
}
