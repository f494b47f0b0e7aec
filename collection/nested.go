// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"github.com/bitmark-inc/chainstate/storage"
)

var (
	_ NestedCodec[List[[]byte]]        = listCodec[[]byte]{}
	_ NestedCodec[Map[[]byte, []byte]] = mapCodec[[]byte, []byte]{}
	_ NestedCodec[Value[[]byte]]       = valueCodec[[]byte]{}
)

// ListOf - codec for a list stored inside another collection
//
// the nested codecs also implement NestedCodec
func ListOf[T any](elements Codec[T]) Codec[List[T]] {
	return listCodec[T]{elements: elements}
}

type listCodec[T any] struct {
	elements Codec[T]
}

func (c listCodec[T]) Encode(l List[T]) ([]byte, error) {
	return l.BaseKey(), nil
}

// Decode gives an unbound handle, collections call Bind instead
func (c listCodec[T]) Decode(b []byte) (List[T], error) {
	return NewList[T](nil, b, c.elements), nil
}

func (c listCodec[T]) Bind(ctx storage.Context, baseKey []byte) List[T] {
	return NewList[T](ctx, baseKey, c.elements)
}

// MapOf - codec for a map stored inside another collection
func MapOf[K any, V any](keys Codec[K], values Codec[V]) Codec[Map[K, V]] {
	return mapCodec[K, V]{keys: keys, values: values}
}

type mapCodec[K any, V any] struct {
	keys   Codec[K]
	values Codec[V]
}

func (c mapCodec[K, V]) Encode(m Map[K, V]) ([]byte, error) {
	return m.BaseKey(), nil
}

func (c mapCodec[K, V]) Decode(b []byte) (Map[K, V], error) {
	return NewMap[K, V](nil, b, c.keys, c.values), nil
}

func (c mapCodec[K, V]) Bind(ctx storage.Context, baseKey []byte) Map[K, V] {
	return NewMap[K, V](ctx, baseKey, c.keys, c.values)
}

// ValueOf - codec for a slot stored inside another collection
func ValueOf[T any](codec Codec[T]) Codec[Value[T]] {
	return valueCodec[T]{codec: codec}
}

type valueCodec[T any] struct {
	codec Codec[T]
}

func (c valueCodec[T]) Encode(v Value[T]) ([]byte, error) {
	return v.BaseKey(), nil
}

func (c valueCodec[T]) Decode(b []byte) (Value[T], error) {
	return NewValue[T](nil, b, c.codec), nil
}

func (c valueCodec[T]) Bind(ctx storage.Context, baseKey []byte) Value[T] {
	return NewValue[T](ctx, baseKey, c.codec)
}
