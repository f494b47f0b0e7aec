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

	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/serialization"
)

type treeResult struct {
	Root       merkle.Hash `json:"root"`
	Size       uint64      `json:"size"`
	BlockCount uint64      `json:"blockCount"`
	Record     string      `json:"record"`
}

// the record is the input of declare
func runTree(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkRequired(c, "file")
	if nil != err {
		return err
	}
	content, err := os.ReadFile(fileName)
	if nil != err {
		return err
	}

	tree := merkle.NewTree(content)
	if m.verbose {
		fmt.Fprintf(m.e, "file: %q  leaves: %d\n", fileName, tree.MaxDepthLeafCount())
	}

	return printJson(m.w, treeResult{
		Root:       tree.Root(),
		Size:       uint64(len(content)),
		BlockCount: merkle.ChunkCount(uint64(len(content))),
		Record:     hex.EncodeToString(serialization.Serialize(tree)),
	})
}
