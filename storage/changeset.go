// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"
	"sync"

	"github.com/bitmark-inc/chainstate/fault"
)

// one touched key
//
// old is captured from the base on the first touch and never changes
type entry struct {
	oldValue  []byte
	oldExists bool
	newValue  []byte
	newExists bool
}

// ChangeSet - speculative overlay on a base context
//
// writes are held in memory until Execute applies them to the base;
// dropping the change set discards them
type ChangeSet struct {
	sync.Mutex
	base    Context
	entries map[string]*entry
}

// NewChangeSet - create an empty overlay of base
func NewChangeSet(base Context) *ChangeSet {
	return &ChangeSet{
		base:    base,
		entries: make(map[string]*entry),
	}
}

// Base - the context this change set will write to
func (c *ChangeSet) Base() Context {
	return c.base
}

// Has - check if a key exists as seen through the overlay
func (c *ChangeSet) Has(key []byte) (bool, error) {
	c.Lock()
	defer c.Unlock()

	if e, ok := c.entries[string(key)]; ok {
		return e.newExists, nil
	}
	return c.base.Has(key)
}

// Get - value as seen through the overlay, nil if absent
func (c *ChangeSet) Get(key []byte) ([]byte, error) {
	c.Lock()
	defer c.Unlock()

	if e, ok := c.entries[string(key)]; ok {
		if !e.newExists {
			return nil, nil
		}
		return copyBytes(e.newValue), nil
	}
	return c.base.Get(key)
}

// Put - stage a new value
func (c *ChangeSet) Put(key []byte, value []byte) error {
	c.Lock()
	defer c.Unlock()

	if nil == value {
		value = []byte{}
	}
	e, err := c.touch(key)
	if nil != err {
		return err
	}
	e.newValue = copyBytes(value)
	e.newExists = true
	return nil
}

// Delete - stage a removal
func (c *ChangeSet) Delete(key []byte) error {
	c.Lock()
	defer c.Unlock()

	e, err := c.touch(key)
	if nil != err {
		return err
	}
	e.newValue = nil
	e.newExists = false
	return nil
}

// Clear - stage removal of every key of the base and of the overlay
//
// the base must be able to enumerate its keys
func (c *ChangeSet) Clear() error {
	c.Lock()
	defer c.Unlock()

	v, ok := c.base.(Visitor)
	if !ok {
		return fault.ErrEnumerationUnsupported
	}

	keys := [][]byte{}
	err := v.Visit(nil, func(key []byte, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return err
	}
	for k := range c.entries {
		keys = append(keys, []byte(k))
	}

	for _, key := range keys {
		e, err := c.touch(key)
		if nil != err {
			return err
		}
		e.newValue = nil
		e.newExists = false
	}
	return nil
}

// Visit - keys with the prefix as seen through the overlay, in ascending order
func (c *ChangeSet) Visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	v, ok := c.base.(Visitor)
	if !ok {
		return fault.ErrEnumerationUnsupported
	}

	merged := make(map[string][]byte)
	err := v.Visit(prefix, func(key []byte, value []byte) error {
		merged[string(key)] = value
		return nil
	})
	if nil != err {
		return err
	}

	c.Lock()
	for k, e := range c.entries {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if e.newExists {
			merged[k] = copyBytes(e.newValue)
		} else {
			delete(merged, k)
		}
	}
	c.Unlock()

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), merged[k]); nil != err {
			return err
		}
	}
	return nil
}

// Any - true if at least one key was touched
func (c *ChangeSet) Any() bool {
	c.Lock()
	defer c.Unlock()

	return 0 != len(c.entries)
}

// Keys - touched keys in ascending order
func (c *ChangeSet) Keys() [][]byte {
	c.Lock()
	defer c.Unlock()

	return c.sortedKeys()
}

// Execute - apply every staged write to the base
//
// a batch-capable base receives all writes in a single batch
func (c *ChangeSet) Execute() error {
	c.Lock()
	defer c.Unlock()

	return c.apply(func(e *entry) ([]byte, bool) {
		return e.newValue, e.newExists
	})
}

// Undo - restore every touched key of the base to its value before the
// first touch
func (c *ChangeSet) Undo() error {
	c.Lock()
	defer c.Unlock()

	return c.apply(func(e *entry) ([]byte, bool) {
		return e.oldValue, e.oldExists
	})
}

// record the base state of a key on its first touch
//
// must be called with the lock held
func (c *ChangeSet) touch(key []byte) (*entry, error) {
	k := string(key)
	if e, ok := c.entries[k]; ok {
		return e, nil
	}

	value, err := c.base.Get(key)
	if nil != err {
		return nil, err
	}
	exists := nil != value
	if !exists {
		// Get cannot tell an absent key from an empty value in every backend
		exists, err = c.base.Has(key)
		if nil != err {
			return nil, err
		}
		if exists {
			value = []byte{}
		}
	}

	e := &entry{
		oldValue:  value,
		oldExists: exists,
	}
	c.entries[k] = e
	return e, nil
}

func (c *ChangeSet) sortedKeys() [][]byte {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([][]byte, len(keys))
	for i, k := range keys {
		result[i] = []byte(k)
	}
	return result
}

// must be called with the lock held
func (c *ChangeSet) apply(state func(*entry) ([]byte, bool)) error {
	keys := c.sortedKeys()

	if batch := newBatch(c.base); nil != batch {
		for _, key := range keys {
			value, exists := state(c.entries[string(key)])
			if exists {
				batch.Put(key, value)
			} else {
				batch.Delete(key)
			}
		}
		return batch.Write()
	}

	for _, key := range keys {
		value, exists := state(c.entries[string(key)])
		var err error
		if exists {
			err = c.base.Put(key, value)
		} else {
			err = c.base.Delete(key)
		}
		if nil != err {
			return err
		}
	}
	return nil
}
