// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/storage/mocks"
)

func TestDiskReopen(t *testing.T) {
	for _, engineName := range []string{EngineLevelDB, EngineBadger} {
		cfg := Configuration{
			Directory: t.TempDir(),
			Name:      "test",
			Engine:    engineName,
		}

		d, err := Open(cfg, ReadWrite)
		if nil != err {
			t.Fatalf("%s: open error: %s", engineName, err)
		}
		assert.Equal(t, engineName, d.Engine(), "wrong engine")

		err = d.Put([]byte("persist"), []byte("me"))
		assert.Nil(t, err, engineName)

		err = d.Close()
		assert.Nil(t, err, engineName)

		// closed backend rejects access, second close is harmless
		_, err = d.Get([]byte("persist"))
		assert.Equal(t, fault.ErrDatabaseClosed, errors.Unwrap(err), engineName)
		assert.Nil(t, d.Close(), engineName)

		d, err = Open(cfg, ReadOnly)
		if nil != err {
			t.Fatalf("%s: reopen error: %s", engineName, err)
		}

		value, err := d.Get([]byte("persist"))
		assert.Nil(t, err, engineName)
		assert.Equal(t, []byte("me"), value, engineName)

		_ = d.Close()
	}
}

func TestDiskOpenInvalid(t *testing.T) {
	_, err := Open(Configuration{Directory: t.TempDir(), Name: "x", Engine: "bolt"}, ReadWrite)
	assert.Equal(t, fault.ErrInvalidDatabaseEngine, err, "unknown engine")

	_, err = Open(Configuration{Directory: t.TempDir(), Name: "x", Engine: EngineLevelDB, CacheExpiry: "soon"}, ReadWrite)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "bad expiry")
}

func TestDiskCacheStats(t *testing.T) {
	d, err := OpenLevelDB(t.TempDir(), ReadWrite)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer d.Close()

	_, _ = d.Get([]byte("absent"))
	assert.Equal(t, CacheStats{Hits: 0, Misses: 1}, d.Stats(), "after miss")

	_ = d.Put([]byte("k"), []byte("v"))
	_, _ = d.Get([]byte("k"))
	_, _ = d.Has([]byte("k"))
	assert.Equal(t, CacheStats{Hits: 2, Misses: 1}, d.Stats(), "after put")
}

func TestDiskWriteThroughCache(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockCache(ctl)

	d, err := OpenWithCache(EngineLevelDB, t.TempDir(), ReadWrite, c)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}

	gomock.InOrder(
		c.EXPECT().Set("k", []byte("v")).Times(1),
		c.EXPECT().Get("k").Return(nil, false).Times(1),
		c.EXPECT().Set("k", []byte("v")).Times(1),
		c.EXPECT().Get("k").Return([]byte("v"), true).Times(1),
		c.EXPECT().Delete("k").Times(1),
		c.EXPECT().Set("a", []byte("1")).Times(1),
		c.EXPECT().Delete("b").Times(1),
		c.EXPECT().Clear().Times(1),
	)

	err = d.Put([]byte("k"), []byte("v"))
	assert.Nil(t, err, "put")

	// cache misses so the disk is read and the cache refilled
	value, err := d.Get([]byte("k"))
	assert.Nil(t, err, "get")
	assert.Equal(t, []byte("v"), value, "get from disk")

	value, err = d.Get([]byte("k"))
	assert.Nil(t, err, "get")
	assert.Equal(t, []byte("v"), value, "get from cache")

	err = d.Delete([]byte("k"))
	assert.Nil(t, err, "delete")

	batch := d.NewBatch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Delete([]byte("b"))
	err = batch.Write()
	assert.Nil(t, err, "batch")

	err = d.Close()
	assert.Nil(t, err, "close")
}

func TestBadgerEmptyKey(t *testing.T) {
	d, err := Open(Configuration{
		Directory: t.TempDir(),
		Name:      "empty",
		Engine:    EngineBadger,
	}, ReadWrite)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer d.Close()

	assert.ErrorIs(t, d.Put([]byte{}, []byte("v")), fault.ErrEmptyKey, "empty put")
	assert.ErrorIs(t, d.Delete(nil), fault.ErrEmptyKey, "empty delete")

	batch := d.NewBatch()
	batch.Put([]byte("k"), []byte("v"))
	batch.Put([]byte{}, []byte("v"))
	assert.ErrorIs(t, batch.Write(), fault.ErrEmptyKey, "empty batch write")

	value, err := d.Get([]byte("k"))
	assert.Nil(t, err, "get error")
	assert.Nil(t, value, "partial batch committed")
}

func TestBadgerLargeBatch(t *testing.T) {
	d, err := OpenBadger(t.TempDir(), ReadWrite)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer d.Close()

	// 80 blocks of 256 KiB, larger than one default memtable transaction
	const count = 80
	value := make([]byte, 1<<18)
	for i := range value {
		value[i] = byte(i)
	}

	cs := NewChangeSet(d)
	for i := 0; i < count; i += 1 {
		if err := cs.Put([]byte{'b', byte(i)}, value); nil != err {
			t.Fatalf("%d: put error: %s", i, err)
		}
	}
	if err := cs.Execute(); nil != err {
		t.Fatalf("execute error: %s", err)
	}

	for i := 0; i < count; i += 1 {
		v, err := d.Get([]byte{'b', byte(i)})
		if nil != err {
			t.Fatalf("%d: get error: %s", i, err)
		}
		if len(v) != len(value) {
			t.Errorf("%d: length: %d  expected: %d", i, len(v), len(value))
		}
	}

	err = d.Clear()
	assert.Nil(t, err, "clear")
	assert.Equal(t, map[string]string{}, contents(t, d), "empty after clear")

	found, err := d.Has([]byte{'b', 0})
	assert.Nil(t, err, "has")
	assert.False(t, found, "cache flushed")
}
