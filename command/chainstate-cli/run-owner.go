// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/storage"
)

type ownerResult struct {
	Hash    merkle.Hash       `json:"hash"`
	Deleted bool              `json:"deleted"`
	Owners  []account.Address `json:"owners"`
}

func runAddOwner(c *cli.Context) error {
	return changeOwner(c, (*archive.Registry).AddOwner)
}

func runRemoveOwner(c *cli.Context) error {
	return changeOwner(c, (*archive.Registry).RemoveOwner)
}

func changeOwner(c *cli.Context, change func(*archive.Registry, merkle.Hash, account.Address) error) error {

	m := c.App.Metadata["config"].(*metadata)

	hash, err := checkHash(c)
	if nil != err {
		return err
	}
	address, err := checkAddress(c, "address")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "archive: %s  owner: %s\n", hash.Hex(), address)
	}

	err = update(m, func(ctx storage.Context) error {
		return change(archive.NewRegistry(ctx), hash, address)
	})
	if nil != err {
		return err
	}

	result := ownerResult{
		Hash:   hash,
		Owners: []account.Address{},
	}
	r := archive.NewRegistry(m.ctx)
	found, err := r.Exists(hash)
	if nil != err {
		return err
	}
	if !found {
		result.Deleted = true
		return printJson(m.w, result)
	}
	a, err := r.Find(hash)
	if nil != err {
		return err
	}
	result.Owners = a.Owners()
	return printJson(m.w, result)
}
