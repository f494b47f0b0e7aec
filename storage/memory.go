// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"
	"sync"
)

// MemoryBackend - keys held in a map, nothing is persisted
type MemoryBackend struct {
	sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend - create an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string][]byte),
	}
}

// Has - check if a key exists
func (m *MemoryBackend) Has(key []byte) (bool, error) {
	m.RLock()
	defer m.RUnlock()

	_, ok := m.data[string(key)]
	return ok, nil
}

// Get - copy of the value, nil if absent
func (m *MemoryBackend) Get(key []byte) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if value, ok := m.data[string(key)]; ok {
		return copyBytes(value), nil
	}
	return nil, nil
}

// Put - store a copy of the value
func (m *MemoryBackend) Put(key []byte, value []byte) error {
	m.Lock()
	defer m.Unlock()

	m.put(key, value)
	return nil
}

// Delete - remove a key
func (m *MemoryBackend) Delete(key []byte) error {
	m.Lock()
	defer m.Unlock()

	delete(m.data, string(key))
	return nil
}

// Clear - remove all keys
func (m *MemoryBackend) Clear() error {
	m.Lock()
	defer m.Unlock()

	m.data = make(map[string][]byte)
	return nil
}

// Len - number of keys
func (m *MemoryBackend) Len() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.data)
}

// Visit - keys with the prefix in ascending order
//
// the callback runs on a snapshot so it may modify the backend
func (m *MemoryBackend) Visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	m.RLock()
	elements := make([]Element, 0, len(m.data))
	for k, v := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			elements = append(elements, Element{
				Key:   []byte(k),
				Value: copyBytes(v),
			})
		}
	}
	m.RUnlock()

	sort.Slice(elements, func(i, j int) bool {
		return bytes.Compare(elements[i].Key, elements[j].Key) < 0
	})

	for _, e := range elements {
		if err := fn(e.Key, e.Value); nil != err {
			return err
		}
	}
	return nil
}

// NewBatch - writes applied under a single lock
func (m *MemoryBackend) NewBatch() Batch {
	return &memoryBatch{
		backend: m,
	}
}

func (m *MemoryBackend) put(key []byte, value []byte) {
	if nil == value {
		value = []byte{}
	}
	m.data[string(key)] = copyBytes(value)
}

type memoryBatch struct {
	backend    *MemoryBackend
	operations []operation
}

func (b *memoryBatch) Put(key []byte, value []byte) {
	b.operations = append(b.operations, operation{op: dbPut, key: copyBytes(key), value: copyBytes(value)})
}

func (b *memoryBatch) Delete(key []byte) {
	b.operations = append(b.operations, operation{op: dbDelete, key: copyBytes(key)})
}

func (b *memoryBatch) Write() error {
	b.backend.Lock()
	defer b.backend.Unlock()

	for _, o := range b.operations {
		switch o.op {
		case dbPut:
			b.backend.put(o.key, o.value)
		case dbDelete:
			delete(b.backend.data, string(o.key))
		}
	}
	b.operations = nil
	return nil
}
