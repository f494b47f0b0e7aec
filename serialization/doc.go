// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package serialization - deterministic binary encoding of chain state
//
// Every persisted structure is written field by field in a fixed order
// so that independent nodes produce byte-identical records.
//
// Notes:
// 1. varint    = compact size integer (see ToVarInt)
// 2. varstring = varint byte count ++ UTF-8 bytes
// 3. varbytes  = varint byte count ++ bytes
// 4. uint32    = little endian (4 bytes)
// 5. int32     = little endian two's complement (4 bytes)
// 6. bigint    = varbytes of minimal little endian two's complement
package serialization
