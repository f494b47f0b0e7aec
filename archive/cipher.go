// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/merkle"
)

// sizes of the cipher parameters
const (
	KeySize    = chacha20poly1305.KeySize
	NonceSize  = chacha20poly1305.NonceSize
	NonceSizeX = chacha20poly1305.NonceSizeX
	Overhead   = chacha20poly1305.Overhead
)

// PlainChunkSize - plaintext bytes that encrypt to exactly one block
func PlainChunkSize(e Encryption) int {
	return merkle.ChunkSize - e.BlockOverhead()
}

// key derivation labels
var (
	privateInfo = []byte("archive-private")
	sharedInfo  = []byte("archive-shared")

	sharedNameLabel = []byte("name")
)

// fill each output slice in turn from HKDF-SHA256
func deriveKeys(secret []byte, salt []byte, info []byte, outputs ...[]byte) error {
	r := hkdf.New(sha256.New, secret, salt, info)
	for _, out := range outputs {
		if _, err := io.ReadFull(r, out); nil != err {
			return err
		}
	}
	return nil
}

// nonce for one block: the base with the block index xor'ed into its
// last eight bytes, big endian
func blockNonce(base [NonceSize]byte, index uint64) []byte {
	nonce := base
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], index)
	for i := 0; i < 8; i += 1 {
		nonce[NonceSize-8+i] ^= counter[i]
	}
	return nonce[:]
}

func seal(key []byte, nonce []byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if nil != err {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// nothing is returned unless the ciphertext authenticates
func open(key []byte, nonce []byte, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if nil != err {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if nil != err {
		return nil, fault.ErrDecryptionFailed
	}
	return plaintext, nil
}

// random nonce ∥ XChaCha20-Poly1305 ciphertext
func sealRandom(key []byte, plaintext []byte, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if nil != err {
		return nil, err
	}
	nonce := make([]byte, NonceSizeX, NonceSizeX+len(plaintext)+Overhead)
	if _, err := rand.Read(nonce); nil != err {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, additional), nil
}

func openRandom(key []byte, stored []byte, additional []byte) ([]byte, error) {
	if len(stored) < NonceSizeX+Overhead {
		return nil, fault.ErrDecryptionFailed
	}
	aead, err := chacha20poly1305.NewX(key)
	if nil != err {
		return nil, err
	}
	plaintext, err := aead.Open(nil, stored[:NonceSizeX], stored[NonceSizeX:], additional)
	if nil != err {
		return nil, fault.ErrDecryptionFailed
	}
	return plaintext, nil
}

// associated data binding a block ciphertext to its position
func blockLabel(index uint64) []byte {
	label := make([]byte, 8)
	binary.BigEndian.PutUint64(label, index)
	return label
}
