// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"github.com/bitmark-inc/chainstate/serialization"
	"github.com/bitmark-inc/chainstate/storage"
)

var (
	countSuffix = []byte("{count}")
	indexOpen   = []byte("<")
	indexClose  = []byte(">")
)

// join key fragments into a fresh slice
func join(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func countKey(base []byte) []byte {
	return join(base, countSuffix)
}

func indexKey(base []byte, index uint64) []byte {
	return join(base, indexOpen, serialization.Uint64ToBytes(index), indexClose)
}

// read a count cell, absent is zero
func readCount(ctx storage.Context, base []byte) (uint64, error) {
	buffer, err := ctx.Get(countKey(base))
	if nil != err {
		return 0, err
	}
	if nil == buffer {
		return 0, nil
	}
	return Uint64.Decode(buffer)
}

// write a count cell, zero removes it
func writeCount(ctx storage.Context, base []byte, count uint64) error {
	if 0 == count {
		return ctx.Delete(countKey(base))
	}
	return ctx.Put(countKey(base), serialization.Uint64ToBytes(count))
}
