// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
	"github.com/bitmark-inc/chainstate/util"
)

// defaults, directories are relative to the data directory
const (
	defaultDataDirectory = "" // must be set, "." is the directory of the configuration file

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "chainstate"
	defaultDatabaseEngine    = storage.EngineLevelDB

	defaultPartition = "state."

	defaultLogDirectory = "log"
	defaultLogFile      = "chainstate.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - settings shared by the chainstate tools
type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	Database      storage.Configuration `gluamapper:"database" json:"database"`
	Partition     string                `gluamapper:"partition" json:"partition"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, default and check a configuration file
//
// relative paths are resolved against the data directory and the
// database and log directories are created if needed
func GetConfiguration(configurationFileName string) (*Configuration, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Database: storage.Configuration{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
			Engine:    defaultDatabaseEngine,
		},
		Partition: defaultPartition,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("path: %q: %w", options.DataDirectory, fault.ErrInvalidDataDirectory)
	case ".":
		options.DataDirectory = filepath.Clean(dataDirectory)
	default:
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q: %w", options.DataDirectory, fault.ErrInvalidDataDirectory)
	}

	switch options.Database.Engine {
	case storage.EngineLevelDB, storage.EngineBadger:
	default:
		return nil, fmt.Errorf("engine: %q: %w", options.Database.Engine, fault.ErrInvalidDatabaseEngine)
	}

	if "" != options.Database.CacheExpiry {
		if d, err := time.ParseDuration(options.Database.CacheExpiry); nil != err || d < 0 {
			return nil, fmt.Errorf("cache expiry: %q: %w", options.Database.CacheExpiry, fault.ErrInvalidConfiguration)
		}
	}

	// plain names, the directory is supplied separately
	for _, name := range []string{options.Database.Name, options.Logging.File} {
		if "" == name || "." != filepath.Dir(name) {
			return nil, fmt.Errorf("file: %q: %w", name, fault.ErrInvalidFileName)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		directory, err := util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
		*d = directory
	}

	return options, nil
}
