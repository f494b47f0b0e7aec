// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/chainstate/configuration"
	"github.com/bitmark-inc/chainstate/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	db      *storage.DiskBackend
	ctx     storage.Context
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that do not modify the database
var readOnlyCommands = map[string]bool{
	"get":        true,
	"info":       true,
	"list":       true,
	"read-block": true,
	"read":       true,
}

// commands that need neither configuration nor database
var standaloneCommands = map[string]bool{
	"":         true,
	"version":  true,
	"help":     true,
	"h":        true,
	"generate": true,
	"tree":     true,
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "chainstate-cli"
	app.Usage = "inspect and modify a chainstate database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "chainstate.conf",
			Usage: " Lua configuration `FILE`",
		},
	}

	app.Commands = commands()

	// read the configuration and open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		m := &metadata{
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		if standaloneCommands[command] {
			return nil
		}

		m.file = c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", m.file)
		}

		config, err := configuration.GetConfiguration(m.file)
		if nil != err {
			return err
		}
		m.config = config

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}

		// "kv get" is read only too
		readOnly := readOnlyCommands[command]
		if "kv" == command {
			readOnly = readOnlyCommands[c.Args().Get(1)]
		}

		if verbose {
			fmt.Fprintf(e, "database: %s  read only: %t\n", config.Database.Path(), readOnly)
		}
		db, err := storage.Open(config.Database, readOnly)
		if nil != err {
			logger.Finalise()
			return err
		}
		m.db = db
		m.ctx = storage.NewPrefixed(db, []byte(config.Partition))

		return nil
	}

	// release the database
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.db {
			return nil
		}
		if m.verbose {
			printJson(m.e, m.db.Stats())
		}
		err := m.db.Close()
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

// the command table, shared with the tests
func commands() []cli.Command {
	return []cli.Command{
		{
			Name:  "kv",
			Usage: "raw key/value access inside the configured partition",
			Subcommands: []cli.Command{
				{
					Name:      "get",
					Usage:     "print the value of a key",
					ArgsUsage: "KEY",
					Flags:     kvFlags,
					Action:    runGet,
				},
				{
					Name:      "put",
					Usage:     "set the value of a key",
					ArgsUsage: "KEY VALUE",
					Flags:     kvFlags,
					Action:    runPut,
				},
				{
					Name:      "delete",
					Usage:     "remove a key",
					ArgsUsage: "KEY",
					Flags:     kvFlags,
					Action:    runDelete,
				},
			},
		},
		{
			Name:      "generate",
			Usage:     "generate a new key pair",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "tree",
			Usage:     "compute the merkle tree of a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*content `FILE`",
				},
			},
			Action: runTree,
		},
		{
			Name:      "create",
			Usage:     "store an archive from a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*content `FILE`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: " archive `NAME` [base name of file]",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "*owner seed `HEX`",
				},
				cli.StringFlag{
					Name:  "encryption, e",
					Value: "none",
					Usage: " encryption `MODE` [none|private|shared]",
				},
				cli.StringFlag{
					Name:  "peer, p",
					Value: "",
					Usage: " shared encryption destination `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "time, t",
					Value: 0,
					Usage: " creation `SECONDS` [now]",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "declare",
			Usage:     "declare an archive by its merkle tree, blocks are written later",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "tree, r",
					Value: "",
					Usage: "*merkle tree record `HEX`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*archive `NAME`",
				},
				cli.Uint64Flag{
					Name:  "size, z",
					Value: 0,
					Usage: "*content size `BYTES`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "time, t",
					Value: 0,
					Usage: " creation `SECONDS` [now]",
				},
			},
			Action: runDeclare,
		},
		{
			Name:      "info",
			Usage:     "display an archive",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hashFlag},
			Action:    runInfo,
		},
		{
			Name:   "list",
			Usage:  "list archive hashes",
			Action: runList,
		},
		{
			Name:      "write-block",
			Usage:     "fill in a missing block",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				indexFlag,
				cli.StringFlag{
					Name:  "block, b",
					Value: "",
					Usage: "*block content `HEX`",
				},
			},
			Action: runWriteBlock,
		},
		{
			Name:      "read-block",
			Usage:     "display one block",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				indexFlag,
				seedFlag,
			},
			Action: runReadBlock,
		},
		{
			Name:      "read",
			Usage:     "write the content of a complete archive to a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				seedFlag,
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: "*output `FILE`",
				},
			},
			Action: runRead,
		},
		{
			Name:  "owner",
			Usage: "change the owners of an archive",
			Subcommands: []cli.Command{
				{
					Name:   "add",
					Usage:  "add an owner",
					Flags:  []cli.Flag{hashFlag, addressFlag},
					Action: runAddOwner,
				},
				{
					Name:   "remove",
					Usage:  "remove an owner, the last owner deletes the archive",
					Flags:  []cli.Flag{hashFlag, addressFlag},
					Action: runRemoveOwner,
				},
			},
		},
		{
			Name:  "version",
			Usage: "display chainstate-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}
}
