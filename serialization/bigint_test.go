// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/bitmark-inc/chainstate/serialization"
)

var bigIntTests = []struct {
	value   int64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x00}},
	{255, []byte{0xff, 0x00}},
	{256, []byte{0x00, 0x01}},
	{-1, []byte{0xff}},
	{-128, []byte{0x80}},
	{-129, []byte{0x7f, 0xff}},
	{-256, []byte{0x00, 0xff}},
	{-32768, []byte{0x00, 0x80}},
	{600000, []byte{0xc0, 0x27, 0x09}},
}

func TestBigIntToBytes(t *testing.T) {
	for i, item := range bigIntTests {
		result := serialization.BigIntToBytes(big.NewInt(item.value))
		if !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: BigIntToBytes(%d) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestBigIntFromBytes(t *testing.T) {
	for i, item := range bigIntTests {
		result := serialization.BigIntFromBytes(item.encoded)
		if 0 != result.Cmp(big.NewInt(item.value)) {
			t.Errorf("%d: BigIntFromBytes(%x) -> %s  expected: %d", i, item.encoded, result, item.value)
		}
	}
}

func TestUint64ToBytes(t *testing.T) {
	if b := serialization.Uint64ToBytes(0xffffffffffffffff); !bytes.Equal(b, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}) {
		t.Errorf("Uint64ToBytes(max) -> %x", b)
	}
}
