// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"
)

// DiskBackend - persistent key/value store with an in-memory mirror
//
// reads are served from the cache when possible, writes go to disk
// first and the cache only after the disk accepted them
type DiskBackend struct {
	sync.RWMutex
	log    *logger.L
	engine engine
	cache  Cache
	hits   uint64
	misses uint64
}

// CacheStats - counters of the read cache
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

func newDiskBackend(e engine, c Cache) *DiskBackend {
	d := &DiskBackend{
		log:    logger.New("storage"),
		engine: e,
		cache:  c,
	}
	d.log.Infof("opened %s database", e.name())
	return d
}

// Engine - name of the underlying database engine
func (d *DiskBackend) Engine() string {
	return d.engine.name()
}

// Has - check if a key exists
func (d *DiskBackend) Has(key []byte) (bool, error) {
	d.RLock()
	defer d.RUnlock()

	if _, ok := d.cache.Get(string(key)); ok {
		atomic.AddUint64(&d.hits, 1)
		return true, nil
	}
	atomic.AddUint64(&d.misses, 1)
	return d.engine.has(key)
}

// Get - value of a key, nil if absent
func (d *DiskBackend) Get(key []byte) ([]byte, error) {
	d.RLock()
	defer d.RUnlock()

	if value, ok := d.cache.Get(string(key)); ok {
		atomic.AddUint64(&d.hits, 1)
		return copyBytes(value), nil
	}
	atomic.AddUint64(&d.misses, 1)

	value, found, err := d.engine.get(key)
	if nil != err {
		return nil, fmt.Errorf("%s get: %w", d.engine.name(), err)
	}
	if !found {
		return nil, nil
	}
	d.cache.Set(string(key), copyBytes(value))
	return value, nil
}

// Put - write to disk then to the cache
func (d *DiskBackend) Put(key []byte, value []byte) error {
	d.Lock()
	defer d.Unlock()

	if nil == value {
		value = []byte{}
	}
	if err := d.engine.put(key, value); nil != err {
		return fmt.Errorf("%s put: %w", d.engine.name(), err)
	}
	d.cache.Set(string(key), copyBytes(value))
	return nil
}

// Delete - remove from disk then evict from the cache
func (d *DiskBackend) Delete(key []byte) error {
	d.Lock()
	defer d.Unlock()

	if err := d.engine.remove(key); nil != err {
		return fmt.Errorf("%s delete: %w", d.engine.name(), err)
	}
	d.cache.Delete(string(key))
	return nil
}

// Clear - delete every key and flush the cache
func (d *DiskBackend) Clear() error {
	d.Lock()
	defer d.Unlock()

	// cache is flushed even on failure, it may no longer mirror the disk
	defer d.cache.Clear()

	if err := d.engine.clear(); nil != err {
		return fmt.Errorf("%s clear: %w", d.engine.name(), err)
	}
	d.log.Info("cleared")
	return nil
}

// Visit - keys with the prefix in ascending order, read from disk
func (d *DiskBackend) Visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	d.RLock()
	e := d.engine
	d.RUnlock()

	return e.visit(prefix, fn)
}

// NewBatch - writes committed to disk in one operation
func (d *DiskBackend) NewBatch() Batch {
	return &diskBatch{
		backend: d,
	}
}

// Stats - cache hit and miss counts since opening
func (d *DiskBackend) Stats() CacheStats {
	return CacheStats{
		Hits:   atomic.LoadUint64(&d.hits),
		Misses: atomic.LoadUint64(&d.misses),
	}
}

// Close - release the database
func (d *DiskBackend) Close() error {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.engine.(closedEngine); ok {
		return nil
	}
	err := d.engine.close()
	d.cache.Clear()
	if nil != err {
		d.log.Errorf("close %s database: error: %s", d.engine.name(), err)
	} else {
		d.log.Infof("closed %s database", d.engine.name())
	}
	d.engine = closedEngine{}
	return err
}

func (d *DiskBackend) write(operations []operation) error {
	d.Lock()
	defer d.Unlock()

	if err := d.engine.write(operations); nil != err {
		return fmt.Errorf("%s batch: %w", d.engine.name(), err)
	}
	for _, o := range operations {
		switch o.op {
		case dbPut:
			d.cache.Set(string(o.key), copyBytes(o.value))
		case dbDelete:
			d.cache.Delete(string(o.key))
		}
	}
	return nil
}

type diskBatch struct {
	backend    *DiskBackend
	operations []operation
}

func (b *diskBatch) Put(key []byte, value []byte) {
	if nil == value {
		value = []byte{}
	}
	b.operations = append(b.operations, operation{op: dbPut, key: copyBytes(key), value: copyBytes(value)})
}

func (b *diskBatch) Delete(key []byte) {
	b.operations = append(b.operations, operation{op: dbDelete, key: copyBytes(key)})
}

func (b *diskBatch) Write() error {
	if 0 == len(b.operations) {
		return nil
	}
	err := b.backend.write(b.operations)
	if nil == err {
		b.operations = nil
	}
	return err
}
