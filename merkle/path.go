// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/chainstate/fault"
)

// Path - sibling hashes from a leaf up to, not including, the root
//
// for leaf 2 of a four leaf tree the path is [H(3), H(4)]
func (t *Tree) Path(index uint64) ([]Hash, error) {
	if index >= t.maxDepthLeafCount {
		return nil, fault.ErrBlockIndexOutOfRange
	}

	path := []Hash{}
	offset := uint64(0)
	j := index
	for width := t.maxDepthLeafCount; width > 1; width /= 2 {
		path = append(path, t.nodes[offset+(j^1)])
		offset += width
		j /= 2
	}
	return path, nil
}

// VerifyPath - true if the leaf at index combined along path gives root
func VerifyPath(root Hash, leaf Hash, index uint64, path []Hash) bool {
	if len(path) < 64 && index>>uint(len(path)) != 0 {
		return false
	}
	h := leaf
	for _, sibling := range path {
		if 0 == index&1 {
			h = Combine(h, sibling)
		} else {
			h = Combine(sibling, h)
		}
		index >>= 1
	}
	return h == root
}
