// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/chainstate/fault"
)

// database engines
const (
	EngineLevelDB = "leveldb"
	EngineBadger  = "badger"
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Configuration - disk database settings
type Configuration struct {
	Directory   string `gluamapper:"directory" json:"directory"`
	Name        string `gluamapper:"name" json:"name"`
	Engine      string `gluamapper:"engine" json:"engine"`
	CacheExpiry string `gluamapper:"cache_expiry" json:"cache_expiry"`
}

// Path - the database directory: Directory/Name.<engine>
func (c Configuration) Path() string {
	return filepath.Join(c.Directory, c.Name+"."+c.Engine)
}

// Open - open the disk database selected by the configuration
func Open(cfg Configuration, readOnly bool) (*DiskBackend, error) {
	expiry := time.Duration(0)
	if "" != cfg.CacheExpiry {
		d, err := time.ParseDuration(cfg.CacheExpiry)
		if nil != err || d < 0 {
			return nil, fault.ErrInvalidConfiguration
		}
		expiry = d
	}

	return OpenWithCache(cfg.Engine, cfg.Path(), readOnly, newCache(expiry))
}

// OpenLevelDB - open a LevelDB database directory with a non-expiring cache
func OpenLevelDB(directory string, readOnly bool) (*DiskBackend, error) {
	return OpenWithCache(EngineLevelDB, directory, readOnly, newCache(0))
}

// OpenBadger - open a Badger database directory with a non-expiring cache
func OpenBadger(directory string, readOnly bool) (*DiskBackend, error) {
	return OpenWithCache(EngineBadger, directory, readOnly, newCache(0))
}

// OpenWithCache - open a database engine with a caller supplied cache
func OpenWithCache(engineName string, directory string, readOnly bool, c Cache) (*DiskBackend, error) {
	var e engine
	var err error
	switch engineName {
	case EngineLevelDB:
		e, err = openLevelDB(directory, readOnly)
	case EngineBadger:
		e, err = openBadger(directory, readOnly)
	default:
		return nil, fault.ErrInvalidDatabaseEngine
	}
	if nil != err {
		return nil, err
	}
	return newDiskBackend(e, c), nil
}
