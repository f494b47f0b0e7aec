// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"bytes"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
)

// List - dense zero-indexed sequence
//
// deleting an element moves the last element into its slot, so indices
// are not stable across deletes
type List[T any] struct {
	baseKey []byte
	ctx     storage.Context
	codec   Codec[T]
}

// NewList - bind a list to a base key of a context
func NewList[T any](ctx storage.Context, baseKey []byte, codec Codec[T]) List[T] {
	return List[T]{
		baseKey: append([]byte{}, baseKey...),
		ctx:     ctx,
		codec:   codec,
	}
}

// BaseKey - the key prefix of the list
func (l List[T]) BaseKey() []byte {
	return append([]byte{}, l.baseKey...)
}

// Count - number of elements
func (l List[T]) Count() (uint64, error) {
	return readCount(l.ctx, l.baseKey)
}

// Add - append an element
func (l List[T]) Add(item T) error {
	count, err := l.Count()
	if nil != err {
		return err
	}
	buffer, err := l.codec.Encode(item)
	if nil != err {
		return err
	}
	if err := l.ctx.Put(indexKey(l.baseKey, count), buffer); nil != err {
		return err
	}
	return writeCount(l.ctx, l.baseKey, count+1)
}

// Get - element at an index
func (l List[T]) Get(index uint64) (T, error) {
	var zero T

	count, err := l.Count()
	if nil != err {
		return zero, err
	}
	if index >= count {
		return zero, fault.ErrIndexOutOfRange
	}
	return l.get(index)
}

// Replace - overwrite the element at an index
func (l List[T]) Replace(index uint64, item T) error {
	count, err := l.Count()
	if nil != err {
		return err
	}
	if index >= count {
		return fault.ErrIndexOutOfRange
	}
	buffer, err := l.codec.Encode(item)
	if nil != err {
		return err
	}
	return l.ctx.Put(indexKey(l.baseKey, index), buffer)
}

// Delete - remove the element at an index, the last element takes its
// place
func (l List[T]) Delete(index uint64) error {
	count, err := l.Count()
	if nil != err {
		return err
	}
	if index >= count {
		return fault.ErrIndexOutOfRange
	}

	last := count - 1
	if index != last {
		buffer, err := l.ctx.Get(indexKey(l.baseKey, last))
		if nil != err {
			return err
		}
		if nil == buffer {
			return fault.ErrKeyNotFound
		}
		if err := l.ctx.Put(indexKey(l.baseKey, index), buffer); nil != err {
			return err
		}
	}
	if err := l.ctx.Delete(indexKey(l.baseKey, last)); nil != err {
		return err
	}
	return writeCount(l.ctx, l.baseKey, last)
}

// Range - elements min..max inclusive, in index order
func (l List[T]) Range(min uint64, max uint64) ([]T, error) {
	if min > max {
		return nil, fault.ErrInvalidRange
	}
	count, err := l.Count()
	if nil != err {
		return nil, err
	}
	if max >= count {
		return nil, fault.ErrIndexOutOfRange
	}

	result := make([]T, 0, max-min+1)
	for i := min; i <= max; i += 1 {
		item, err := l.get(i)
		if nil != err {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// All - every element in index order
func (l List[T]) All() ([]T, error) {
	count, err := l.Count()
	if nil != err {
		return nil, err
	}
	if 0 == count {
		return []T{}, nil
	}
	return l.Range(0, count-1)
}

// IndexOf - index of the first element with the same encoding as item
func (l List[T]) IndexOf(item T) (uint64, bool, error) {
	target, err := l.codec.Encode(item)
	if nil != err {
		return 0, false, err
	}
	count, err := l.Count()
	if nil != err {
		return 0, false, err
	}
	for i := uint64(0); i < count; i += 1 {
		buffer, err := l.ctx.Get(indexKey(l.baseKey, i))
		if nil != err {
			return 0, false, err
		}
		if bytes.Equal(target, buffer) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Contains - check if an element is present
func (l List[T]) Contains(item T) (bool, error) {
	_, found, err := l.IndexOf(item)
	return found, err
}

// Remove - delete the first matching element, reports if one was found
func (l List[T]) Remove(item T) (bool, error) {
	index, found, err := l.IndexOf(item)
	if nil != err || !found {
		return false, err
	}
	return true, l.Delete(index)
}

// Clear - delete every element and the count
func (l List[T]) Clear() error {
	count, err := l.Count()
	if nil != err {
		return err
	}
	for i := uint64(0); i < count; i += 1 {
		if err := l.ctx.Delete(indexKey(l.baseKey, i)); nil != err {
			return err
		}
	}
	return writeCount(l.ctx, l.baseKey, 0)
}

func (l List[T]) get(index uint64) (T, error) {
	var zero T

	buffer, err := l.ctx.Get(indexKey(l.baseKey, index))
	if nil != err {
		return zero, err
	}
	if nil == buffer {
		// count says the slot is occupied
		return zero, fault.ErrKeyNotFound
	}
	return decodeCell(l.codec, l.ctx, buffer)
}
