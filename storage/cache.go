// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache.go -package=mocks

// Cache - in-memory mirror of disk records
type Cache interface {
	Get(string) ([]byte, bool)
	Set(string, []byte)
	Delete(string)
	Clear()
}

const (
	cleanupInterval = 2 * time.Minute
)

type dbCache struct {
	cache  *cache.Cache
	expiry time.Duration
}

// an expiry of zero keeps records until they are deleted
func newCache(expiry time.Duration) *dbCache {
	if expiry <= 0 {
		return &dbCache{
			cache:  cache.New(cache.NoExpiration, 0),
			expiry: cache.NoExpiration,
		}
	}
	return &dbCache{
		cache:  cache.New(expiry, cleanupInterval),
		expiry: expiry,
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *dbCache) Set(key string, value []byte) {
	c.cache.Set(key, value, c.expiry)
}

func (c *dbCache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
