// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
)

// Map - associative store
//
// only the number of keys is recorded, enumeration needs the caller to
// supply the candidate keys
type Map[K any, V any] struct {
	baseKey []byte
	ctx     storage.Context
	keys    Codec[K]
	values  Codec[V]
}

// NewMap - bind a map to a base key of a context
func NewMap[K any, V any](ctx storage.Context, baseKey []byte, keys Codec[K], values Codec[V]) Map[K, V] {
	return Map[K, V]{
		baseKey: append([]byte{}, baseKey...),
		ctx:     ctx,
		keys:    keys,
		values:  values,
	}
}

// BaseKey - the key prefix of the map
func (m Map[K, V]) BaseKey() []byte {
	return append([]byte{}, m.baseKey...)
}

// Count - number of keys
func (m Map[K, V]) Count() (uint64, error) {
	return readCount(m.ctx, m.baseKey)
}

// Set - store a value, counting the key if it is new
func (m Map[K, V]) Set(key K, value V) error {
	k, err := m.elementKey(key)
	if nil != err {
		return err
	}
	buffer, err := m.values.Encode(value)
	if nil != err {
		return err
	}
	found, err := m.ctx.Has(k)
	if nil != err {
		return err
	}
	if err := m.ctx.Put(k, buffer); nil != err {
		return err
	}
	if found {
		return nil
	}
	count, err := m.Count()
	if nil != err {
		return err
	}
	return writeCount(m.ctx, m.baseKey, count+1)
}

// Get - value of a key
//
// an absent key gives the zero value; for a nested handle type it gives a
// handle scoped under the element key so the child can be filled in
func (m Map[K, V]) Get(key K) (V, error) {
	var zero V

	k, err := m.elementKey(key)
	if nil != err {
		return zero, err
	}
	buffer, err := m.ctx.Get(k)
	if nil != err {
		return zero, err
	}
	if nil == buffer {
		if nc, ok := m.values.(NestedCodec[V]); ok {
			return nc.Bind(m.ctx, k), nil
		}
		return zero, nil
	}
	return decodeCell(m.values, m.ctx, buffer)
}

// Find - value of a key, fault.ErrKeyNotFound if absent
func (m Map[K, V]) Find(key K) (V, error) {
	var zero V

	k, err := m.elementKey(key)
	if nil != err {
		return zero, err
	}
	buffer, err := m.ctx.Get(k)
	if nil != err {
		return zero, err
	}
	if nil == buffer {
		return zero, fault.ErrKeyNotFound
	}
	return decodeCell(m.values, m.ctx, buffer)
}

// ContainsKey - check if a key is present
func (m Map[K, V]) ContainsKey(key K) (bool, error) {
	k, err := m.elementKey(key)
	if nil != err {
		return false, err
	}
	return m.ctx.Has(k)
}

// Remove - delete a key, reports if it was present
func (m Map[K, V]) Remove(key K) (bool, error) {
	k, err := m.elementKey(key)
	if nil != err {
		return false, err
	}
	found, err := m.ctx.Has(k)
	if nil != err || !found {
		return false, err
	}
	if err := m.ctx.Delete(k); nil != err {
		return false, err
	}
	count, err := m.Count()
	if nil != err {
		return false, err
	}
	if 0 == count {
		return true, nil
	}
	return true, writeCount(m.ctx, m.baseKey, count-1)
}

// Values - values of those candidate keys that are present, in
// candidate order
func (m Map[K, V]) Values(candidates ...K) ([]V, error) {
	result := make([]V, 0, len(candidates))
	for _, key := range candidates {
		k, err := m.elementKey(key)
		if nil != err {
			return nil, err
		}
		buffer, err := m.ctx.Get(k)
		if nil != err {
			return nil, err
		}
		if nil == buffer {
			continue
		}
		value, err := decodeCell(m.values, m.ctx, buffer)
		if nil != err {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func (m Map[K, V]) elementKey(key K) ([]byte, error) {
	encoded, err := m.keys.Encode(key)
	if nil != err {
		return nil, err
	}
	return join(m.baseKey, encoded), nil
}
