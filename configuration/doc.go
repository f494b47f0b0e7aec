// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the Lua configuration of the chainstate
// tools
//
// the file is an ordinary Lua chunk that returns a table, so the usual
// library functions (os.getenv, string handling, reading other files)
// can be used to compute settings.  The global arg[0] holds the name of
// the configuration file.
package configuration
