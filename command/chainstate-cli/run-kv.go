// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
)

type kvResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkBytes(c, 0)
	if nil != err {
		return err
	}

	value, err := m.ctx.Get(key)
	if nil != err {
		return err
	}
	if nil == value {
		return fmt.Errorf("key: %x: %w", key, fault.ErrKeyNotFound)
	}

	result := kvResult{
		Key:   hex.EncodeToString(key),
		Value: hex.EncodeToString(value),
	}
	if !c.Bool("hex") {
		result.Key = string(key)
		result.Value = string(value)
	}
	return printJson(m.w, result)
}

func runPut(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkBytes(c, 0)
	if nil != err {
		return err
	}
	value, err := checkBytes(c, 1)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "put: %x → %x\n", key, value)
	}
	return update(m, func(ctx storage.Context) error {
		return ctx.Put(key, value)
	})
}

func runDelete(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkBytes(c, 0)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "delete: %x\n", key)
	}
	return update(m, func(ctx storage.Context) error {
		return ctx.Delete(key)
	})
}
