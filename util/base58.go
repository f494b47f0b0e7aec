// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - bitcoin alphabet base58 of a byte slice
func ToBase58(buffer []byte) string {
	return base58.Encode(buffer)
}

// FromBase58 - decode base58 text, an empty slice on any error
func FromBase58(s string) []byte {
	buffer, err := base58.Decode(s)
	if nil != err {
		return []byte{}
	}
	return buffer
}
