// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/archive"
	"github.com/bitmark-inc/chainstate/storage"
)

func TestUpdate(t *testing.T) {
	base := storage.NewMemoryBackend()
	var e bytes.Buffer
	m := &metadata{
		ctx:     storage.NewPrefixed(base, []byte("p.")),
		verbose: true,
		e:       &e,
	}

	err := update(m, func(ctx storage.Context) error {
		return ctx.Put([]byte("k"), []byte("v"))
	})
	assert.Nil(t, err, "update")

	value, _ := base.Get([]byte("p.k"))
	assert.Equal(t, []byte("v"), value, "committed under partition")
	assert.Equal(t, "keys changed: 1\n", e.String(), "verbose output")

	failure := errors.New("failed")
	err = update(m, func(ctx storage.Context) error {
		_ = ctx.Put([]byte("x"), []byte("y"))
		return failure
	})
	assert.Equal(t, failure, err, "error returned")

	found, _ := base.Has([]byte("p.x"))
	assert.False(t, found, "failed update leaves nothing")
}

// context carrying only the given command flags
func testContext(t *testing.T, flags []cli.Flag, arguments ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	if err := set.Parse(arguments); nil != err {
		t.Fatalf("parse error: %s", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestCheckEncryption(t *testing.T) {
	flags := []cli.Flag{
		cli.StringFlag{Name: "encryption", Value: "none"},
		cli.StringFlag{Name: "peer"},
		cli.StringFlag{Name: "seed"},
	}
	seed := "0101010101010101010101010101010101010101010101010101010101010101"
	peerSeed := "0202020202020202020202020202020202020202020202020202020202020202"

	c := testContext(t, flags, "--seed", peerSeed)
	peerKeys, err := checkKeys(c)
	if nil != err {
		t.Fatalf("peer keys error: %s", err)
	}
	peer := peerKeys.Address().String()

	tests := []struct {
		arguments []string
		mode      archive.Mode
		err       error
	}{
		{[]string{"--seed", seed}, archive.ModeNone, nil},
		{[]string{"--seed", seed, "--encryption", "private"}, archive.ModePrivate, nil},
		{[]string{"--seed", seed, "--encryption", "shared", "--peer", peer}, archive.ModeShared, nil},
		{[]string{"--seed", seed, "--encryption", "shared"}, archive.ModeNone, ErrMissingPeer},
	}

	for i, item := range tests {
		c := testContext(t, flags, item.arguments...)
		keys, err := checkKeys(c)
		if nil != err {
			t.Fatalf("%d: keys error: %s", i, err)
		}
		e, err := checkEncryption(c, keys)
		if item.err != err {
			t.Errorf("%d: error: %v  expected: %v", i, err, item.err)
			continue
		}
		if nil == err && item.mode != e.Mode() {
			t.Errorf("%d: mode: %s  expected: %s", i, e.Mode(), item.mode)
		}
	}

	c = testContext(t, flags, "--seed", seed, "--encryption", "secret")
	keys, _ := checkKeys(c)
	_, err = checkEncryption(c, keys)
	assert.NotNil(t, err, "unknown mode")

	c = testContext(t, flags)
	_, err = checkKeys(c)
	assert.ErrorIs(t, err, ErrRequiredFlag, "missing seed")
}
