// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each error belongs to a class (exists, invalid, not found, process,
// range, integrity, authorisation) so callers can decide how to react
// to a whole family of errors, e.g. contract execution turns any range
// error into a failed call instead of stopping the node.
package fault
