// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainstate/storage/mocks"
)

func TestPrefixed(t *testing.T) {
	base := NewMemoryBackend()
	_ = base.Put([]byte("other"), []byte("untouched"))

	p := NewPrefixed(base, []byte("P:"))
	assert.Equal(t, []byte("P:"), p.Prefix(), "wrong prefix")

	_ = p.Put([]byte("x"), []byte("1"))
	_ = p.Put([]byte("y"), []byte("2"))

	v, _ := base.Get([]byte("P:x"))
	assert.Equal(t, []byte("1"), v, "stored without prefix")

	v, _ = p.Get([]byte("y"))
	assert.Equal(t, []byte("2"), v, "partition read")

	assert.Equal(t, map[string]string{"x": "1", "y": "2"}, contents(t, p), "prefix not stripped")

	batch := p.NewBatch()
	batch.Put([]byte("z"), []byte("3"))
	batch.Delete([]byte("x"))
	assert.Nil(t, batch.Write(), "batch")
	assert.Equal(t, map[string]string{"y": "2", "z": "3"}, contents(t, p), "after batch")

	assert.Nil(t, p.Clear(), "clear")
	assert.Equal(t, map[string]string{"other": "untouched"}, contents(t, base), "clear left the partition")
}

func TestPrefixedOverMock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	base := mocks.NewMockContext(ctl)
	base.EXPECT().Put([]byte("Ak"), []byte("v")).Return(nil).Times(1)
	base.EXPECT().Has([]byte("Ak")).Return(true, nil).Times(1)
	base.EXPECT().Delete([]byte("Ak")).Return(nil).Times(1)

	p := NewPrefixed(base, []byte("A"))
	assert.Nil(t, p.Put([]byte("k"), []byte("v")), "put")
	found, err := p.Has([]byte("k"))
	assert.Nil(t, err, "has")
	assert.True(t, found, "has")
	assert.Nil(t, p.Delete([]byte("k")), "delete")

	assert.Nil(t, p.NewBatch(), "batch over a context that cannot batch")
}

func TestChangeSetOverPrefixedMock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	base := mocks.NewMockContext(ctl)
	base.EXPECT().Get([]byte("Ak")).Return([]byte("v"), nil).Times(1)
	base.EXPECT().Put([]byte("Ak"), []byte("w")).Return(nil).Times(1)

	cs := NewChangeSet(NewPrefixed(base, []byte("A")))
	assert.Nil(t, cs.Put([]byte("k"), []byte("w")), "put")

	// the partition advertises batching but has none, writes go key by key
	assert.Nil(t, cs.Execute(), "execute")
}
