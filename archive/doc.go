// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package archive - chunked content addressed by its merkle root
//
// An archive is created either from complete content, or declared from
// its merkle tree with every block missing and then filled block by
// block; each block is checked against its leaf before it is accepted.
//
// Record layout:
//
//	[merkle tree]
//	[varstring name]
//	[varint size]
//	[uint32 time]
//	[1 byte mode][mode fields]
//	[varint owner count][owner count × 32 byte address]
//	[varint missing count][missing count × int32 index]
//
// Encrypted content is stored as ciphertext: each plaintext chunk of
// PlainChunkSize(encryption) bytes becomes one block of at most
// merkle.ChunkSize bytes, so block i of the stored content decrypts to
// chunk i. Shared blocks and names carry their own random nonce.
package archive
