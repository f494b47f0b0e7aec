// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1  = "\033[1;36m"
	keyColour2  = "\033[1;31m"
	valColour1  = "\033[1;33m"
	valColour2  = "\033[1;34m"
	delColour1  = "\033[1;35m"
	delColour2  = "\033[0;35m"
	delColour3  = "\033[0;31m"
	delColour4  = "\033[1;35m"
	nodelColour = "\033[1;32m"
	endColour   = "\033[0m"
)

// stops a visit once enough records are collected
var errEnough = errors.New("enough records")

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "delete", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "engine", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'e'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["file"]) || len(arguments) > 1 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--count=N] [--engine=leveldb|badger] [--ascii] [--colour] [--delete] --file=DIRECTORY [hex-key-prefix]", program)
	}

	colour := len(options["colour"]) > 0
	ascii := len(options["ascii"]) > 0
	delete := len(options["delete"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	engine := storage.EngineLevelDB
	if len(options["engine"]) > 0 {
		engine = options["engine"][0]
	}

	directory := options["file"][0]
	if verbose {
		fmt.Printf("read %s database: %q\n", engine, directory)
	}

	prefix := []byte{}
	if 1 == len(arguments) {
		prefix, err = hex.DecodeString(arguments[0])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "chainstate-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// start of main processing
	db, err := open(engine, directory, !delete)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	data, err := collect(db, prefix, count)
	if nil != err {
		exitwithstatus.Message("%s: error on Visit: %s", program, err)
	}

	ck1 := ""
	ck2 := ""
	cv1 := ""
	cv2 := ""
	cd1 := ""
	cd2 := ""
	cd3 := ""
	cd4 := ""
	cn := ""
	ce := ""
	if colour {
		ck1 = keyColour1
		ck2 = keyColour2
		cv1 = valColour1
		cv2 = valColour2
		cd1 = delColour1
		cd2 = delColour2
		cd3 = delColour3
		cd4 = delColour4
		cn = nodelColour
		ce = endColour
	}

	for i, e := range data {
		fmt.Printf("%d: %sKey: %s%x%s\n", i, ck1, ck2, e.Key, ce)
		if ascii {
			prefix := fmt.Sprintf("%d: %sVal: %s", i, cv1, cv2)
			suffix := ce
			hexDump(prefix, suffix, e.Value)

		} else {
			fmt.Printf("%d: %sVal: %s%x%s\n", i, cv1, cv2, e.Value, ce)
		}
		if !delete {
			continue
		}

	delete_loop:
		for {
			fmt.Printf("%d: %sDelete Key: %s%x%s ? [yNq]: ", i, cd1, cd2, e.Key, ce)

			buffer := make([]byte, 100)
			n, err := os.Stdin.Read(buffer)
			if nil != err {
				exitwithstatus.Message("%s: error on Stdin.Read: %s", program, err)
			}

			response := strings.TrimSpace(string(buffer[:n]))
			switch strings.ToLower(response) {

			case "y", "yes":
				if err := db.Delete(e.Key); nil != err {
					exitwithstatus.Message("%s: delete error: %s", program, err)
				}
				fmt.Printf("%d: %s***DELETED: %s%x%s\n", i, cd3, cd4, e.Key, ce)
				break delete_loop

			case "", "n", "no":
				fmt.Printf("%d: %sRetain Key: %s%x%s\n", i, cn, ck2, e.Key, ce)
				break delete_loop

			case "q", "quit", "e", "exit", "x":
				fmt.Printf("Terminated\n")
				return

			default:
				fmt.Printf("Please answer yes or no\n")
			}
		}
	}
}

func open(engine string, directory string, readOnly bool) (*storage.DiskBackend, error) {
	switch engine {
	case storage.EngineLevelDB:
		return storage.OpenLevelDB(directory, readOnly)
	case storage.EngineBadger:
		return storage.OpenBadger(directory, readOnly)
	default:
		return nil, fmt.Errorf("engine: %q: %w", engine, fault.ErrInvalidDatabaseEngine)
	}
}

// up to count records with the prefix, in key order
func collect(v storage.Visitor, prefix []byte, count int) ([]storage.Element, error) {
	data := make([]storage.Element, 0, count)
	err := v.Visit(prefix, func(key []byte, value []byte) error {
		data = append(data, storage.Element{
			Key:   append([]byte{}, key...),
			Value: append([]byte{}, value...),
		})
		if len(data) >= count {
			return errEnough
		}
		return nil
	})
	if nil != err && !errors.Is(err, errEnough) {
		return nil, err
	}
	return data, nil
}

// dump hex data on stdout
func hexDump(prefix string, suffix string, data []byte) {
	address := 0
	const bytesPerLine = 32
	for i := 0; i < len(data); i += bytesPerLine {
		fmt.Printf("%s%04x  ", prefix, address)
		address += bytesPerLine
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				fmt.Printf(" ")
			}
			if i+j < len(data) {
				fmt.Printf("%02x ", data[i+j])
			} else {
				fmt.Printf("   ")
			}
		}
		fmt.Printf(" |")
		for j := 0; j < bytesPerLine && i+j < len(data); j += 1 {
			c := data[i+j]
			if c < 32 || c >= 127 {
				c = '.'
			}
			fmt.Printf("%c", c)
		}
		fmt.Printf("|%s\n", suffix)
	}
}
