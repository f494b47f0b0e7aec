// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/storage"
	"github.com/bitmark-inc/chainstate/util"
)

type blockResult struct {
	Hash      merkle.Hash `json:"hash"`
	Index     uint64      `json:"index"`
	Decrypted bool        `json:"decrypted"`
	Block     string      `json:"block"`
}

type writeBlockResult struct {
	Hash         merkle.Hash `json:"hash"`
	Index        uint64      `json:"index"`
	MissingCount int         `json:"missingCount"`
}

func runWriteBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	hash, err := checkHash(c)
	if nil != err {
		return err
	}
	blockHex, err := checkRequired(c, "block")
	if nil != err {
		return err
	}
	index := c.Uint64("index")

	if m.verbose {
		fmt.Fprintf(m.e, "archive: %s  block: %d  bytes: %d\n", hash.Hex(), index, len(blockHex)/2)
	}

	err = update(m, func(ctx storage.Context) error {
		return archive.NewRegistry(ctx).WriteBlockHex(hash, index, blockHex)
	})
	if nil != err {
		return err
	}

	a, err := archive.NewRegistry(m.ctx).Find(hash)
	if nil != err {
		return err
	}
	return printJson(m.w, writeBlockResult{
		Hash:         hash,
		Index:        index,
		MissingCount: len(a.MissingBlocks()),
	})
}

func runReadBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	r, a, err := findArchive(c)
	if nil != err {
		return err
	}
	keys, err := optionalKeys(c)
	if nil != err {
		return err
	}
	index := c.Uint64("index")

	block, err := r.ReadBlock(a, index)
	if nil != err {
		return err
	}

	result := blockResult{
		Hash:  a.Hash(),
		Index: index,
	}
	if nil != keys && archive.ModeNone != a.Encryption().Mode() {
		block, err = a.Encryption().DecryptBlock(block, index, keys)
		if nil != err {
			return err
		}
		result.Decrypted = true
	}
	result.Block = hex.EncodeToString(block)

	return printJson(m.w, result)
}

// write the whole content of an archive
func runRead(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	r, a, err := findArchive(c)
	if nil != err {
		return err
	}
	output, err := checkRequired(c, "output")
	if nil != err {
		return err
	}
	if util.EnsureFileExists(output) {
		return fmt.Errorf("not overwriting existing file: %q", output)
	}
	keys, err := optionalKeys(c)
	if nil != err {
		return err
	}

	encryption := a.Encryption()
	if nil == keys && archive.ModeNone != encryption.Mode() {
		return ErrSeedRequired
	}

	stored, err := r.ReadContent(a)
	if nil != err {
		return err
	}
	content, err := archive.DecryptContent(encryption, stored, keys)
	if nil != err {
		return err
	}
	name, err := encryption.DecryptName(a.Name(), keys)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "archive: %q  size: %d  output: %q\n", name, len(content), output)
	}
	return os.WriteFile(output, content, 0600)
}
