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

type step struct {
	del   bool
	key   string
	value string
}

var testSteps = []step{
	{key: "a", value: "1"},
	{key: "b", value: "2"},
	{del: true, key: "c"},
	{key: "a", value: "3"},
	{key: "d", value: ""},
	{del: true, key: "b"},
	{key: "e", value: "5"},
	{del: true, key: "nothing"},
}

func seed(t *testing.T, ctx Context) {
	for _, kv := range [][2]string{{"a", "0"}, {"b", "old"}, {"c", "gone"}, {"z", "keep"}} {
		if err := ctx.Put([]byte(kv[0]), []byte(kv[1])); nil != err {
			t.Fatalf("seed: error: %s", err)
		}
	}
}

func run(t *testing.T, ctx Context, steps []step) {
	for i, s := range steps {
		var err error
		if s.del {
			err = ctx.Delete([]byte(s.key))
		} else {
			err = ctx.Put([]byte(s.key), []byte(s.value))
		}
		if nil != err {
			t.Fatalf("%d: error: %s", i, err)
		}
	}
}

func TestChangeSetExecuteMatchesDirect(t *testing.T) {
	for name, ctx := range backends(t) {
		direct := NewMemoryBackend()
		seed(t, direct)
		run(t, direct, testSteps)

		seed(t, ctx)
		before := contents(t, ctx.(Visitor))

		cs := NewChangeSet(ctx)
		run(t, cs, testSteps)

		// base untouched until Execute
		assert.Equal(t, before, contents(t, ctx.(Visitor)), name+": base modified early")

		// the overlay already shows the final state
		assert.Equal(t, contents(t, direct), contents(t, cs), name+": overlay view")

		err := cs.Execute()
		assert.Nil(t, err, name)
		assert.Equal(t, contents(t, direct), contents(t, ctx.(Visitor)), name+": after execute")
	}
}

func TestChangeSetUndo(t *testing.T) {
	for name, ctx := range backends(t) {
		seed(t, ctx)
		before := contents(t, ctx.(Visitor))

		cs := NewChangeSet(ctx)
		run(t, cs, testSteps)

		err := cs.Execute()
		assert.Nil(t, err, name)
		assert.NotEqual(t, before, contents(t, ctx.(Visitor)), name+": execute did nothing")

		err = cs.Undo()
		assert.Nil(t, err, name)
		assert.Equal(t, before, contents(t, ctx.(Visitor)), name+": after undo")
	}
}

func TestChangeSetReadThrough(t *testing.T) {
	base := NewMemoryBackend()
	seed(t, base)

	cs := NewChangeSet(base)
	assert.False(t, cs.Any(), "fresh change set has entries")

	value, err := cs.Get([]byte("z"))
	assert.Nil(t, err, "get")
	assert.Equal(t, []byte("keep"), value, "read through")
	assert.False(t, cs.Any(), "a read touched a key")

	_ = cs.Delete([]byte("z"))
	found, err := cs.Has([]byte("z"))
	assert.Nil(t, err, "has")
	assert.False(t, found, "deleted key visible")

	value, err = cs.Get([]byte("z"))
	assert.Nil(t, err, "get")
	assert.Nil(t, value, "deleted key has value")

	_ = cs.Put([]byte("new"), []byte("x"))
	assert.True(t, cs.Any(), "no entries after writes")
	assert.Equal(t, [][]byte{[]byte("new"), []byte("z")}, cs.Keys(), "wrong keys")

	// dropping the change set leaves the base as it was
	found, _ = base.Has([]byte("z"))
	assert.True(t, found, "base changed")
	found, _ = base.Has([]byte("new"))
	assert.False(t, found, "base changed")
}

func TestChangeSetOldValueCapturedOnce(t *testing.T) {
	base := NewMemoryBackend()
	_ = base.Put([]byte("k"), []byte("original"))

	cs := NewChangeSet(base)
	_ = cs.Put([]byte("k"), []byte("one"))
	_ = cs.Put([]byte("k"), []byte("two"))
	_ = cs.Delete([]byte("k"))
	_ = cs.Put([]byte("k"), []byte("three"))

	assert.Nil(t, cs.Execute(), "execute")
	v, _ := base.Get([]byte("k"))
	assert.Equal(t, []byte("three"), v, "after execute")

	assert.Nil(t, cs.Undo(), "undo")
	v, _ = base.Get([]byte("k"))
	assert.Equal(t, []byte("original"), v, "after undo")
}

func TestChangeSetClear(t *testing.T) {
	base := NewMemoryBackend()
	seed(t, base)

	cs := NewChangeSet(base)
	_ = cs.Put([]byte("staged"), []byte("s"))

	err := cs.Clear()
	assert.Nil(t, err, "clear")
	assert.Equal(t, map[string]string{}, contents(t, cs), "overlay after clear")
	assert.Equal(t, 4, base.Len(), "base cleared early")

	assert.Nil(t, cs.Execute(), "execute")
	assert.Equal(t, 0, base.Len(), "base after execute")
}

func TestChangeSetClearNeedsEnumeration(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	base := mocks.NewMockContext(ctl)

	cs := NewChangeSet(base)
	err := cs.Clear()
	assert.Equal(t, fault.ErrEnumerationUnsupported, err, "wrong error")
}

func TestChangeSetUnbatchedBase(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	base := mocks.NewMockContext(ctl)
	base.EXPECT().Get([]byte("b")).Return([]byte("old"), nil).Times(1)
	base.EXPECT().Get([]byte("a")).Return(nil, nil).Times(1)
	base.EXPECT().Has([]byte("a")).Return(false, nil).Times(1)

	cs := NewChangeSet(base)
	_ = cs.Delete([]byte("b"))
	_ = cs.Put([]byte("a"), []byte("new"))

	// applied key by key in ascending order
	gomock.InOrder(
		base.EXPECT().Put([]byte("a"), []byte("new")).Return(nil).Times(1),
		base.EXPECT().Delete([]byte("b")).Return(nil).Times(1),
	)
	assert.Nil(t, cs.Execute(), "execute")
}

func TestChangeSetBaseError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("disk on fire")

	base := mocks.NewMockContext(ctl)
	base.EXPECT().Get([]byte("k")).Return(nil, failure).Times(1)

	cs := NewChangeSet(base)
	err := cs.Put([]byte("k"), []byte("v"))
	assert.Equal(t, failure, err, "base error not returned")
	assert.False(t, cs.Any(), "failed put recorded")
}

func TestChangeSetNested(t *testing.T) {
	base := NewMemoryBackend()
	seed(t, base)

	outer := NewChangeSet(base)
	_ = outer.Put([]byte("a"), []byte("outer"))

	inner := NewChangeSet(outer)
	_ = inner.Put([]byte("a"), []byte("inner"))
	_ = inner.Delete([]byte("z"))

	v, _ := outer.Get([]byte("a"))
	assert.Equal(t, []byte("outer"), v, "inner leaked")

	assert.Nil(t, inner.Execute(), "inner execute")
	v, _ = outer.Get([]byte("a"))
	assert.Equal(t, []byte("inner"), v, "inner not applied to outer")

	v, _ = base.Get([]byte("a"))
	assert.Equal(t, []byte("0"), v, "base changed before outer execute")

	assert.Nil(t, outer.Execute(), "outer execute")
	assert.Equal(t, map[string]string{"a": "inner", "b": "old", "c": "gone"}, contents(t, base), "final")
}
