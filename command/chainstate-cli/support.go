// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/storage"
)

// a required string flag
func checkRequired(c *cli.Context, name string) (string, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return "", fmt.Errorf("--%s: %w", name, ErrRequiredFlag)
	}
	return s, nil
}

// an archive hash in stored order hex, as displayed by info
func checkHash(c *cli.Context) (merkle.Hash, error) {
	var hash merkle.Hash
	s, err := checkRequired(c, "hash")
	if nil != err {
		return hash, err
	}
	err = hash.UnmarshalText([]byte(s))
	return hash, err
}

func checkAddress(c *cli.Context, name string) (account.Address, error) {
	s, err := checkRequired(c, name)
	if nil != err {
		return account.Address{}, err
	}
	return account.AddressFromBase58(s)
}

// key pair from a required seed flag
func checkKeys(c *cli.Context) (*account.KeyPair, error) {
	s, err := checkRequired(c, "seed")
	if nil != err {
		return nil, err
	}
	return account.KeyPairFromHexSeed(s)
}

// key pair from an optional seed flag, nil if absent
func optionalKeys(c *cli.Context) (*account.KeyPair, error) {
	if "" == strings.TrimSpace(c.String("seed")) {
		return nil, nil
	}
	return checkKeys(c)
}

// key or value argument, as text or hex
func checkBytes(c *cli.Context, n int) ([]byte, error) {
	s := c.Args().Get(n)
	if "" == s {
		return nil, ErrMissingArgument
	}
	if c.Bool("hex") {
		return hex.DecodeString(s)
	}
	return []byte(s), nil
}

// run an operation over a change set, writing to the database only if
// it succeeds
func update(m *metadata, fn func(ctx storage.Context) error) error {
	cs := storage.NewChangeSet(m.ctx)
	if err := fn(cs); nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "keys changed: %d\n", len(cs.Keys()))
	}
	return cs.Execute()
}

// find an archive for a read-only command
func findArchive(c *cli.Context) (*archive.Registry, *archive.Archive, error) {
	m := c.App.Metadata["config"].(*metadata)

	hash, err := checkHash(c)
	if nil != err {
		return nil, nil, err
	}
	r := archive.NewRegistry(m.ctx)
	a, err := r.Find(hash)
	if nil != err {
		return nil, nil, err
	}
	return r, a, nil
}
