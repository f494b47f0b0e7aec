// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainstate/collection"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/storage"
)

func TestUint64Codec(t *testing.T) {
	tests := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x00}},
		{600000, []byte{0xc0, 0x27, 0x09}},
	}

	for i, item := range tests {
		b, err := collection.Uint64.Encode(item.value)
		if nil != err {
			t.Fatalf("%d: encode error: %s", i, err)
		}
		if !bytes.Equal(item.encoded, b) {
			t.Errorf("%d: expected: %x  actual: %x", i, item.encoded, b)
		}
		v, err := collection.Uint64.Decode(b)
		if nil != err {
			t.Fatalf("%d: decode error: %s", i, err)
		}
		if item.value != v {
			t.Errorf("%d: expected: %d  actual: %d", i, item.value, v)
		}
	}

	// negative numbers are not unsigned values
	_, err := collection.Uint64.Decode([]byte{0xff})
	assert.Equal(t, fault.ErrValueTooLarge, err, "negative decoded")
}

func TestBigIntCodec(t *testing.T) {
	n := big.NewInt(-129)
	b, err := collection.BigInt.Encode(n)
	assert.Nil(t, err, "encode")
	assert.Equal(t, []byte{0x7f, 0xff}, b, "encoding")

	m, err := collection.BigInt.Decode(b)
	assert.Nil(t, err, "decode")
	assert.Equal(t, 0, n.Cmp(m), "round trip")
}

func TestInvalidEncodings(t *testing.T) {
	_, err := collection.Bool.Decode([]byte{0x02})
	assert.Equal(t, fault.ErrInvalidEncoding, err, "bool")

	_, err = collection.String.Decode([]byte{0xff, 0xfe})
	assert.Equal(t, fault.ErrInvalidString, err, "string")

	_, err = collection.HashCodec.Decode([]byte{0x01, 0x02})
	assert.Equal(t, fault.ErrInvalidHashLength, err, "hash")

	_, err = collection.AddressCodec.Decode([]byte{0x01, 0x02})
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "address")
}

func TestHashKeyedMap(t *testing.T) {
	m := collection.NewMap(storage.NewMemoryBackend(), []byte("h"), collection.HashCodec, collection.Bytes)

	h := merkle.NewHash([]byte("content"))
	_ = m.Set(h, []byte("data"))

	v, err := m.Find(h)
	assert.Nil(t, err, "find")
	assert.Equal(t, []byte("data"), v, "value")

	_, err = m.Find(merkle.NullHash)
	assert.Equal(t, fault.ErrKeyNotFound, err, "absent hash")
}
