// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/account"
)

type generateResult struct {
	Seed    string          `json:"seed"`
	Address account.Address `json:"address"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	kp, err := account.NewKeyPair()
	if nil != err {
		return err
	}

	return printJson(m.w, generateResult{
		Seed:    hex.EncodeToString(kp.Seed()),
		Address: kp.Address(),
	})
}
