// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/chainstate/fault"
)

// the on-disk store underneath a DiskBackend
type engine interface {
	get(key []byte) ([]byte, bool, error)
	has(key []byte) (bool, error)
	put(key []byte, value []byte) error
	remove(key []byte) error
	write(operations []operation) error
	clear() error
	visit(prefix []byte, fn func(key []byte, value []byte) error) error
	name() string
	close() error
}

type levelDBEngine struct {
	db *leveldb.DB
}

func openLevelDB(directory string, readOnly bool) (*levelDBEngine, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}
	return &levelDBEngine{
		db: db,
	}, nil
}

func (e *levelDBEngine) name() string {
	return EngineLevelDB
}

func (e *levelDBEngine) get(key []byte) ([]byte, bool, error) {
	value, err := e.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	if nil == value {
		value = []byte{}
	}
	return value, true, nil
}

func (e *levelDBEngine) has(key []byte) (bool, error) {
	return e.db.Has(key, nil)
}

func (e *levelDBEngine) put(key []byte, value []byte) error {
	return e.db.Put(key, value, nil)
}

func (e *levelDBEngine) remove(key []byte) error {
	return e.db.Delete(key, nil)
}

func (e *levelDBEngine) write(operations []operation) error {
	batch := new(leveldb.Batch)
	for _, o := range operations {
		switch o.op {
		case dbPut:
			batch.Put(o.key, o.value)
		case dbDelete:
			batch.Delete(o.key)
		}
	}
	return e.db.Write(batch, nil)
}

// every key deleted in one batch
func (e *levelDBEngine) clear() error {
	batch := new(leveldb.Batch)
	iter := e.db.NewIterator(nil, nil)
	for iter.Next() {
		batch.Delete(copyBytes(iter.Key()))
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return err
	}
	if 0 == batch.Len() {
		return nil
	}
	return e.db.Write(batch, nil)
}

func (e *levelDBEngine) visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	var r *ldb_util.Range
	if 0 != len(prefix) {
		r = ldb_util.BytesPrefix(prefix)
	}

	iter := e.db.NewIterator(r, nil)
	defer iter.Release()

	for iter.Next() {
		// iterator buffers are reused on Next
		if err := fn(copyBytes(iter.Key()), copyBytes(iter.Value())); nil != err {
			return err
		}
	}
	return iter.Error()
}

func (e *levelDBEngine) close() error {
	return e.db.Close()
}

// replaces the engine of a closed backend
type closedEngine struct{}

func (closedEngine) name() string                     { return "closed" }
func (closedEngine) get([]byte) ([]byte, bool, error) { return nil, false, fault.ErrDatabaseClosed }
func (closedEngine) has([]byte) (bool, error)         { return false, fault.ErrDatabaseClosed }
func (closedEngine) put([]byte, []byte) error         { return fault.ErrDatabaseClosed }
func (closedEngine) remove([]byte) error              { return fault.ErrDatabaseClosed }
func (closedEngine) write([]operation) error          { return fault.ErrDatabaseClosed }
func (closedEngine) clear() error                     { return fault.ErrDatabaseClosed }
func (closedEngine) close() error                     { return nil }
func (closedEngine) visit([]byte, func([]byte, []byte) error) error {
	return fault.ErrDatabaseClosed
}
