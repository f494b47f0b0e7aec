// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/chainstate/fault"
)

// Prefixed - a partition of a context: every key is stored with a
// fixed prefix prepended
type Prefixed struct {
	prefix []byte
	ctx    Context
}

// NewPrefixed - partition ctx by prefix
func NewPrefixed(ctx Context, prefix []byte) *Prefixed {
	return &Prefixed{
		prefix: copyBytes(prefix),
		ctx:    ctx,
	}
}

// Prefix - the partition prefix
func (p *Prefixed) Prefix() []byte {
	return copyBytes(p.prefix)
}

// prepend the prefix onto the key
func (p *Prefixed) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, len(p.prefix), len(p.prefix)+len(key))
	copy(prefixedKey, p.prefix)
	return append(prefixedKey, key...)
}

// Has - check if a key exists in the partition
func (p *Prefixed) Has(key []byte) (bool, error) {
	return p.ctx.Has(p.prefixKey(key))
}

// Get - value of a key in the partition
func (p *Prefixed) Get(key []byte) ([]byte, error) {
	return p.ctx.Get(p.prefixKey(key))
}

// Put - store a key/value in the partition
func (p *Prefixed) Put(key []byte, value []byte) error {
	return p.ctx.Put(p.prefixKey(key), value)
}

// Delete - remove a key from the partition
func (p *Prefixed) Delete(key []byte) error {
	return p.ctx.Delete(p.prefixKey(key))
}

// Clear - remove only the keys of the partition
func (p *Prefixed) Clear() error {
	v, ok := p.ctx.(Visitor)
	if !ok {
		return fault.ErrEnumerationUnsupported
	}
	keys := [][]byte{}
	err := v.Visit(p.prefix, func(key []byte, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return err
	}

	if batch := newBatch(p.ctx); nil != batch {
		for _, key := range keys {
			batch.Delete(key)
		}
		return batch.Write()
	}
	for _, key := range keys {
		if err := p.ctx.Delete(key); nil != err {
			return err
		}
	}
	return nil
}

// Visit - keys of the partition with the partition prefix removed
func (p *Prefixed) Visit(prefix []byte, fn func(key []byte, value []byte) error) error {
	v, ok := p.ctx.(Visitor)
	if !ok {
		return fault.ErrEnumerationUnsupported
	}
	n := len(p.prefix)
	return v.Visit(p.prefixKey(prefix), func(key []byte, value []byte) error {
		return fn(key[n:], value)
	})
}

// NewBatch - a batch of the underlying context with prefixed keys
//
// returns nil if the underlying context cannot batch
func (p *Prefixed) NewBatch() Batch {
	batch := newBatch(p.ctx)
	if nil == batch {
		return nil
	}
	return &prefixedBatch{
		partition: p,
		batch:     batch,
	}
}

type prefixedBatch struct {
	partition *Prefixed
	batch     Batch
}

func (b *prefixedBatch) Put(key []byte, value []byte) {
	b.batch.Put(b.partition.prefixKey(key), value)
}

func (b *prefixedBatch) Delete(key []byte) {
	b.batch.Delete(b.partition.prefixKey(key))
}

func (b *prefixedBatch) Write() error {
	return b.batch.Write()
}
