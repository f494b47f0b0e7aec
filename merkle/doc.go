// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - SHA-256 binary merkle tree over fixed size chunks
//
// The tree is one dense array: the leaves (padded with the null hash to
// a power of two), then each level above, with the root last.
//
//	content of 3 chunks:
//
//	           6
//	        /     \
//	      4         5
//	     / \       / \
//	    0   1     2   3 = null
package merkle
