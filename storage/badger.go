// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/bitmark-inc/chainstate/fault"
)

// values at least this long go to the value log and only a pointer
// counts against the transaction size, so a batch of archive blocks
// fits in one transaction
const badgerValueThreshold = 1 << 12

type badgerEngine struct {
	db *badger.DB
}

func openBadger(directory string, readOnly bool) (*badgerEngine, error) {
	opts := badger.DefaultOptions(directory).
		WithLogger(nil).
		WithReadOnly(readOnly).
		WithValueThreshold(badgerValueThreshold)

	db, err := badger.Open(opts)
	if nil != err {
		return nil, err
	}
	return &badgerEngine{
		db: db,
	}, nil
}

func (e *badgerEngine) name() string {
	return EngineBadger
}

// badger cannot store an empty key
func checkKey(key []byte) error {
	if 0 == len(key) {
		return fault.ErrEmptyKey
	}
	return nil
}

func (e *badgerEngine) get(key []byte) ([]byte, bool, error) {
	if err := checkKey(key); nil != err {
		return nil, false, err
	}
	var value []byte
	found := false
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if nil != err {
			return err
		}
		value, err = item.ValueCopy(nil)
		if nil != err {
			return err
		}
		found = true
		return nil
	})
	if nil != err {
		return nil, false, err
	}
	if found && nil == value {
		value = []byte{}
	}
	return value, found, nil
}

func (e *badgerEngine) has(key []byte) (bool, error) {
	_, found, err := e.get(key)
	return found, err
}

func (e *badgerEngine) put(key []byte, value []byte) error {
	if err := checkKey(key); nil != err {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (e *badgerEngine) remove(key []byte) error {
	if err := checkKey(key); nil != err {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// a single transaction so the group is all-or-nothing
func (e *badgerEngine) write(operations []operation) error {
	err := e.db.Update(func(txn *badger.Txn) error {
		for _, o := range operations {
			err := checkKey(o.key)
			if nil != err {
				return err
			}
			switch o.op {
			case dbPut:
				err = txn.Set(o.key, o.value)
			case dbDelete:
				err = txn.Delete(o.key)
			}
			if nil != err {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrTxnTooBig) {
		return fmt.Errorf("%d operations: %w", len(operations), fault.ErrBatchTooLarge)
	}
	return err
}

func (e *badgerEngine) clear() error {
	return e.db.DropAll()
}

func (e *badgerEngine) visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	elements := []Element{}
	err := e.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if nil != err {
				return err
			}
			elements = append(elements, Element{
				Key:   item.KeyCopy(nil),
				Value: value,
			})
		}
		return nil
	})
	if nil != err {
		return err
	}

	// callbacks run outside the read transaction so they may write
	for _, e := range elements {
		if err := fn(e.Key, e.Value); nil != err {
			return err
		}
	}
	return nil
}

func (e *badgerEngine) close() error {
	return e.db.Close()
}
