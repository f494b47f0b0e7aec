// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

//go:generate mockgen -destination=mocks/context.go -package=mocks github.com/bitmark-inc/chainstate/storage Context

// Context - the key/value contract every backend and overlay implements
type Context interface {
	// Has reports whether the key is present
	Has(key []byte) (bool, error)

	// Get returns the value of a key, nil if the key is absent
	Get(key []byte) ([]byte, error)

	// Put stores a value, replacing any previous one
	Put(key []byte, value []byte) error

	// Delete removes a key, absent keys are ignored
	Delete(key []byte) error

	// Clear removes every key
	Clear() error
}

// Batcher - a context that can apply a group of writes atomically
//
// NewBatch may return nil when a wrapper's underlying context cannot batch
type Batcher interface {
	NewBatch() Batch
}

// Batch - pending writes, nothing is visible until Write succeeds
type Batch interface {
	Put(key []byte, value []byte)
	Delete(key []byte)
	Write() error
}

// a batch of ctx, nil if it cannot batch
func newBatch(ctx Context) Batch {
	if b, ok := ctx.(Batcher); ok {
		return b.NewBatch()
	}
	return nil
}

// Visitor - a context that can enumerate its keys in ascending order
//
// the callback receives copies it may keep; returning an error stops
// the enumeration and that error is returned
type Visitor interface {
	Visit(prefix []byte, fn func(key []byte, value []byte) error) error
}

// a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Elements - collect every key/value under a prefix
func Elements(v Visitor, prefix []byte) ([]Element, error) {
	result := []Element{}
	err := v.Visit(prefix, func(key []byte, value []byte) error {
		result = append(result, Element{
			Key:   key,
			Value: value,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// dbOperation - kind of a pending write
type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

// operation - one pending write
type operation struct {
	op    dbOperation
	key   []byte
	value []byte
}

func copyBytes(b []byte) []byte {
	if nil == b {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
