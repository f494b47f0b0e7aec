// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainstate/collection"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage"
)

func TestListAddRange(t *testing.T) {
	ctx := storage.NewMemoryBackend()
	l := collection.NewList(ctx, []byte("numbers"), collection.Uint64)

	const n = 25
	for i := uint64(0); i < n; i += 1 {
		err := l.Add(i * i)
		if nil != err {
			t.Fatalf("%d: add error: %s", i, err)
		}
	}

	count, err := l.Count()
	assert.Nil(t, err, "count")
	assert.Equal(t, uint64(n), count, "wrong count")

	items, err := l.Range(0, n-1)
	assert.Nil(t, err, "range")
	for i, v := range items {
		if uint64(i*i) != v {
			t.Errorf("%d: expected: %d  actual: %d", i, i*i, v)
		}
	}

	items, err = l.Range(3, 5)
	assert.Nil(t, err, "range")
	assert.Equal(t, []uint64{9, 16, 25}, items, "partial range")

	_, err = l.Range(5, 3)
	assert.Equal(t, fault.ErrInvalidRange, err, "min > max")
	assert.True(t, fault.IsErrRange(err), "not a range error")

	_, err = l.Range(0, n)
	assert.Equal(t, fault.ErrIndexOutOfRange, err, "past the end")

	_, err = l.Get(n)
	assert.Equal(t, fault.ErrIndexOutOfRange, err, "get past the end")
}

func TestListDeleteSwapsLast(t *testing.T) {
	ctx := storage.NewMemoryBackend()
	l := collection.NewList(ctx, []byte("l"), collection.Uint64)

	for _, v := range []uint64{10, 20, 30} {
		_ = l.Add(v)
	}

	err := l.Delete(0)
	assert.Nil(t, err, "delete")

	items, err := l.All()
	assert.Nil(t, err, "all")
	assert.Equal(t, []uint64{30, 20}, items, "wrong order after delete")

	count, _ := l.Count()
	assert.Equal(t, uint64(2), count, "wrong count")

	// deleting the last slot needs no swap
	err = l.Delete(1)
	assert.Nil(t, err, "delete last")
	items, _ = l.All()
	assert.Equal(t, []uint64{30}, items, "after deleting last")

	err = l.Delete(1)
	assert.Equal(t, fault.ErrIndexOutOfRange, err, "delete past the end")

	// no cell is left beyond the count
	_ = l.Delete(0)
	assert.Equal(t, 0, ctx.Len(), "cells remain in an empty list")
}

func TestListDeleteProperty(t *testing.T) {
	for n := uint64(2); n < 8; n += 1 {
		for i := uint64(0); i < n-1; i += 1 {
			l := collection.NewList(storage.NewMemoryBackend(), []byte("p"), collection.Uint64)
			for v := uint64(0); v < n; v += 1 {
				_ = l.Add(100 + v)
			}

			if err := l.Delete(i); nil != err {
				t.Fatalf("n: %d  i: %d  delete error: %s", n, i, err)
			}
			count, _ := l.Count()
			if n-1 != count {
				t.Errorf("n: %d  i: %d  count: %d", n, i, count)
			}
			v, _ := l.Get(i)
			if 100+n-1 != v {
				t.Errorf("n: %d  i: %d  expected last element at index, actual: %d", n, i, v)
			}
		}
	}
}

func TestListSearch(t *testing.T) {
	l := collection.NewList(storage.NewMemoryBackend(), []byte("names"), collection.String)

	for _, s := range []string{"alpha", "beta", "gamma", "beta"} {
		_ = l.Add(s)
	}

	index, found, err := l.IndexOf("beta")
	assert.Nil(t, err, "index of")
	assert.True(t, found, "beta not found")
	assert.Equal(t, uint64(1), index, "first match")

	ok, err := l.Contains("delta")
	assert.Nil(t, err, "contains")
	assert.False(t, ok, "delta found")

	removed, err := l.Remove("beta")
	assert.Nil(t, err, "remove")
	assert.True(t, removed, "beta not removed")

	items, _ := l.All()
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, items, "after remove")

	removed, err = l.Remove("delta")
	assert.Nil(t, err, "remove absent")
	assert.False(t, removed, "absent item removed")

	err = l.Replace(2, "omega")
	assert.Nil(t, err, "replace")
	v, _ := l.Get(2)
	assert.Equal(t, "omega", v, "replaced value")

	err = l.Replace(3, "nothing")
	assert.Equal(t, fault.ErrIndexOutOfRange, err, "replace past the end")

	err = l.Clear()
	assert.Nil(t, err, "clear")
	items, _ = l.All()
	assert.Equal(t, []string{}, items, "after clear")
}

func TestListOverChangeSet(t *testing.T) {
	base := storage.NewMemoryBackend()
	committed := collection.NewList(base, []byte("l"), collection.Uint64)
	_ = committed.Add(1)

	cs := storage.NewChangeSet(base)
	l := collection.NewList(cs, []byte("l"), collection.Uint64)
	_ = l.Add(2)
	_ = l.Add(3)

	items, _ := committed.All()
	assert.Equal(t, []uint64{1}, items, "base changed before execute")

	items, _ = l.All()
	assert.Equal(t, []uint64{1, 2, 3}, items, "overlay view")

	assert.Nil(t, cs.Execute(), "execute")
	items, _ = committed.All()
	assert.Equal(t, []uint64{1, 2, 3}, items, "after execute")
}
