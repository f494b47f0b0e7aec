// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendPutGetDelete(t *testing.T) {
	for name, ctx := range backends(t) {
		key := []byte("key-one")

		value, err := ctx.Get(key)
		assert.Nil(t, err, name)
		assert.Nil(t, value, name+": value of absent key")

		found, err := ctx.Has(key)
		assert.Nil(t, err, name)
		assert.False(t, found, name)

		err = ctx.Put(key, []byte("first"))
		assert.Nil(t, err, name)

		err = ctx.Put(key, []byte("second"))
		assert.Nil(t, err, name)

		value, err = ctx.Get(key)
		assert.Nil(t, err, name)
		assert.Equal(t, []byte("second"), value, name)

		found, err = ctx.Has(key)
		assert.Nil(t, err, name)
		assert.True(t, found, name)

		err = ctx.Delete(key)
		assert.Nil(t, err, name)

		value, err = ctx.Get(key)
		assert.Nil(t, err, name)
		assert.Nil(t, value, name+": value after delete")

		// deleting an absent key is not an error
		err = ctx.Delete(key)
		assert.Nil(t, err, name)
	}
}

func TestBackendEmptyValue(t *testing.T) {
	for name, ctx := range backends(t) {
		key := []byte("empty")

		err := ctx.Put(key, []byte{})
		assert.Nil(t, err, name)

		found, err := ctx.Has(key)
		assert.Nil(t, err, name)
		assert.True(t, found, name)

		value, err := ctx.Get(key)
		assert.Nil(t, err, name)
		assert.NotNil(t, value, name+": empty value must not read as absent")
		assert.Equal(t, 0, len(value), name)
	}
}

func TestBackendClear(t *testing.T) {
	for name, ctx := range backends(t) {
		for _, k := range []string{"a", "b", "c"} {
			err := ctx.Put([]byte(k), []byte(k+k))
			assert.Nil(t, err, name)
		}

		err := ctx.Clear()
		assert.Nil(t, err, name)

		for _, k := range []string{"a", "b", "c"} {
			found, err := ctx.Has([]byte(k))
			assert.Nil(t, err, name)
			assert.False(t, found, name+": key after clear: "+k)
		}
	}
}

func TestBackendVisitOrder(t *testing.T) {
	for name, ctx := range backends(t) {
		for _, k := range []string{"p/3", "q/1", "p/1", "p/2", "o/9"} {
			err := ctx.Put([]byte(k), []byte("v"+k))
			assert.Nil(t, err, name)
		}

		elements, err := Elements(ctx.(Visitor), []byte("p/"))
		assert.Nil(t, err, name)

		keys := []string{}
		for _, e := range elements {
			keys = append(keys, string(e.Key))
			assert.Equal(t, "v"+string(e.Key), string(e.Value), name)
		}
		assert.Equal(t, []string{"p/1", "p/2", "p/3"}, keys, name)
	}
}

func TestBackendBatch(t *testing.T) {
	for name, ctx := range backends(t) {
		err := ctx.Put([]byte("gone"), []byte("x"))
		assert.Nil(t, err, name)

		batch := ctx.(Batcher).NewBatch()
		batch.Put([]byte("one"), []byte("1"))
		batch.Put([]byte("two"), []byte("2"))
		batch.Delete([]byte("gone"))

		// nothing visible before Write
		found, err := ctx.Has([]byte("one"))
		assert.Nil(t, err, name)
		assert.False(t, found, name)

		err = batch.Write()
		assert.Nil(t, err, name)

		assert.Equal(t, map[string]string{"one": "1", "two": "2"}, contents(t, ctx.(Visitor)), name)
	}
}

func TestMemoryCopies(t *testing.T) {
	m := NewMemoryBackend()

	value := []byte("abc")
	_ = m.Put([]byte("k"), value)
	value[0] = 'X'

	stored, _ := m.Get([]byte("k"))
	assert.Equal(t, []byte("abc"), stored, "put did not copy")

	stored[1] = 'Y'
	again, _ := m.Get([]byte("k"))
	assert.Equal(t, []byte("abc"), again, "get did not copy")

	assert.Equal(t, 1, m.Len(), "wrong length")
}

func TestMemoryVisitMayWrite(t *testing.T) {
	m := NewMemoryBackend()
	_ = m.Put([]byte("a"), []byte("1"))
	_ = m.Put([]byte("b"), []byte("2"))

	err := m.Visit(nil, func(key []byte, _ []byte) error {
		return m.Delete(key)
	})
	assert.Nil(t, err, "visit")
	assert.Equal(t, 0, m.Len(), "keys remain")
}
