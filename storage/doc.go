// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - byte oriented key/value state storage
//
// Every backend implements Context: has/get/put/delete/clear over raw
// byte keys.  A missing key is not an error: Get returns nil.
//
// Backends:
//
//	MemoryBackend   - map in memory, for tests and light nodes
//	DiskBackend     - LevelDB or Badger engine with an in-memory
//	                  write-through mirror of every key read or written
//
// Overlays (also Contexts):
//
//	ChangeSet       - buffers writes over a base context; Execute applies
//	                  them, Undo restores the values seen on first touch,
//	                  dropping the change set without Execute discards them
//	Prefixed        - a partition of a context: prefix ++ key
//
// Notes:
//
//  1. ++  = concatenation of byte data
//  2. only one writer is expected per base context; change sets opened
//     over the same base do not see each other's pending writes
//  3. disk errors are returned to the caller and never retried
package storage
