// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/merkle"
)

// EncryptContent - the stored form of complete plaintext
//
// without encryption the content is returned unchanged; otherwise each
// PlainChunkSize(e) piece becomes one block so that block boundaries of
// the result line up with merkle chunks
func EncryptContent(e Encryption, content []byte, keys *account.KeyPair) ([]byte, error) {
	if ModeNone == e.Mode() {
		return content, nil
	}

	size := PlainChunkSize(e)
	count := chunks(len(content), size)
	result := make([]byte, 0, len(content)+count*e.BlockOverhead())
	for i := 0; i < count; i += 1 {
		block, err := e.EncryptBlock(piece(content, i, size), uint64(i), keys)
		if nil != err {
			return nil, err
		}
		result = append(result, block...)
	}
	return result, nil
}

// DecryptContent - plaintext of complete stored content
func DecryptContent(e Encryption, stored []byte, keys *account.KeyPair) ([]byte, error) {
	if ModeNone == e.Mode() {
		return stored, nil
	}

	count := chunks(len(stored), merkle.ChunkSize)
	result := make([]byte, 0, len(stored))
	for i := 0; i < count; i += 1 {
		plain, err := e.DecryptBlock(piece(stored, i, merkle.ChunkSize), uint64(i), keys)
		if nil != err {
			return nil, err
		}
		result = append(result, plain...)
	}
	return result, nil
}

// number of pieces of a given size, never less than one
func chunks(length int, size int) int {
	if 0 == length {
		return 1
	}
	return (length + size - 1) / size
}

func piece(content []byte, i int, size int) []byte {
	start := i * size
	if start >= len(content) {
		return []byte{}
	}
	end := start + size
	if end > len(content) {
		end = len(content)
	}
	return content[start:end]
}
