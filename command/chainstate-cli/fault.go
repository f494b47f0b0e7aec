// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/chainstate/fault"
)

// command line errors - keep in alphabetic order
const (
	ErrMissingArgument = fault.InvalidError("missing argument")
	ErrMissingPeer     = fault.InvalidError("shared encryption needs a peer address")
	ErrRequiredFlag    = fault.InvalidError("required flag is empty")
	ErrSeedRequired    = fault.InvalidError("seed required to decrypt")
)
