// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/serialization"
	"github.com/bitmark-inc/chainstate/storage"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkRequired(c, "file")
	if nil != err {
		return err
	}
	keys, err := checkKeys(c)
	if nil != err {
		return err
	}
	encryption, err := checkEncryption(c, keys)
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		name = filepath.Base(fileName)
	}

	content, err := os.ReadFile(fileName)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "file: %q  size: %d\n", fileName, len(content))
		fmt.Fprintf(m.e, "owner: %s\n", keys.Address())
		fmt.Fprintf(m.e, "encryption: %s\n", encryption.Label())
	}

	// stored content and name are ciphertext when encrypted
	stored, err := archive.EncryptContent(encryption, content, keys)
	if nil != err {
		return err
	}
	storedName, err := encryption.EncryptName(name, keys)
	if nil != err {
		return err
	}

	var a *archive.Archive
	err = update(m, func(ctx storage.Context) error {
		var err error
		a, err = archive.NewRegistry(ctx).Create(stored, storedName, checkTime(c), encryption, keys.Address())
		return err
	})
	if nil != err {
		return err
	}
	return printJson(m.w, a.Info())
}

func runDeclare(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	record, err := checkRequired(c, "tree")
	if nil != err {
		return err
	}
	buffer, err := hex.DecodeString(record)
	if nil != err {
		return err
	}
	tree := &merkle.Tree{}
	if err := serialization.Unserialize(buffer, tree); nil != err {
		return err
	}

	name, err := checkRequired(c, "name")
	if nil != err {
		return err
	}
	owner, err := checkAddress(c, "owner")
	if nil != err {
		return err
	}
	size := c.Uint64("size")

	if m.verbose {
		fmt.Fprintf(m.e, "root: %s  size: %d\n", tree.Root().Hex(), size)
	}

	var a *archive.Archive
	err = update(m, func(ctx storage.Context) error {
		var err error
		a, err = archive.NewRegistry(ctx).Declare(tree, name, size, checkTime(c), archive.NoEncryption{}, owner)
		return err
	})
	if nil != err {
		return err
	}
	return printJson(m.w, a.Info())
}

// encryption selected by the flags, bound to the key pair
func checkEncryption(c *cli.Context, keys *account.KeyPair) (archive.Encryption, error) {
	mode, err := archive.ParseMode(c.String("encryption"))
	if nil != err {
		return nil, err
	}

	switch mode {
	case archive.ModePrivate:
		return archive.NewPrivateEncryption(keys.Address())

	case archive.ModeShared:
		if "" == c.String("peer") {
			return nil, ErrMissingPeer
		}
		peer, err := checkAddress(c, "peer")
		if nil != err {
			return nil, err
		}
		return archive.NewSharedEncryption(keys.Address(), peer), nil

	default:
		return archive.NoEncryption{}, nil
	}
}

// time flag, or now
func checkTime(c *cli.Context) uint32 {
	if t := c.Uint64("time"); 0 != t {
		return uint32(t)
	}
	return uint32(time.Now().Unix())
}
