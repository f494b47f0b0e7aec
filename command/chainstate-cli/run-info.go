// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/merkle"
)

type listResult struct {
	Count  uint64        `json:"count"`
	Hashes []merkle.Hash `json:"hashes"`
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	_, a, err := findArchive(c)
	if nil != err {
		return err
	}
	return printJson(m.w, a.Info())
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	r := archive.NewRegistry(m.ctx)
	hashes, err := r.Hashes()
	if nil != err {
		return err
	}
	return printJson(m.w, listResult{
		Count:  uint64(len(hashes)),
		Hashes: hashes,
	})
}
