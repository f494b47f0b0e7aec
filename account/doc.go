// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 addresses and key pairs
//
// An address is the 32 byte ed25519 public key.  Its text form is
// base58 of:
//
//	0x01 ∥ public key ∥ first 4 bytes of SHA3-256(0x01 ∥ public key)
//
// Key pairs can also agree a shared secret with another address by
// X25519 over the Montgomery form of the two keys.
package account
