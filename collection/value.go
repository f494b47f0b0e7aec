// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"github.com/bitmark-inc/chainstate/storage"
)

// Value - a single slot at the base key
type Value[T any] struct {
	baseKey []byte
	ctx     storage.Context
	codec   Codec[T]
}

// NewValue - bind a slot to a key of a context
func NewValue[T any](ctx storage.Context, baseKey []byte, codec Codec[T]) Value[T] {
	return Value[T]{
		baseKey: append([]byte{}, baseKey...),
		ctx:     ctx,
		codec:   codec,
	}
}

// BaseKey - the key of the slot
func (v Value[T]) BaseKey() []byte {
	return append([]byte{}, v.baseKey...)
}

// Set - store a value
func (v Value[T]) Set(item T) error {
	buffer, err := v.codec.Encode(item)
	if nil != err {
		return err
	}
	return v.ctx.Put(v.baseKey, buffer)
}

// Get - the stored value, zero value if empty
func (v Value[T]) Get() (T, error) {
	var zero T

	buffer, err := v.ctx.Get(v.baseKey)
	if nil != err {
		return zero, err
	}
	if nil == buffer {
		return zero, nil
	}
	return decodeCell(v.codec, v.ctx, buffer)
}

// HasValue - check if the slot is filled
func (v Value[T]) HasValue() (bool, error) {
	return v.ctx.Has(v.baseKey)
}

// Clear - empty the slot
func (v Value[T]) Clear() error {
	return v.ctx.Delete(v.baseKey)
}
