// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// flags shared by several commands
var (
	hashFlag = cli.StringFlag{
		Name:  "hash, H",
		Value: "",
		Usage: "*archive `HASH`",
	}
	indexFlag = cli.Uint64Flag{
		Name:  "index, i",
		Value: 0,
		Usage: " block `INDEX`",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed, s",
		Value: "",
		Usage: " seed `HEX` to decrypt with",
	}
	addressFlag = cli.StringFlag{
		Name:  "address, a",
		Value: "",
		Usage: "*owner `ADDRESS`",
	}
	kvFlags = []cli.Flag{
		cli.BoolFlag{
			Name:  "hex, x",
			Usage: " keys and values are hex",
		},
	}
)
