// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/merkle"
)

// Metadata - key/value annotation of an archive
type Metadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Info - read-only summary of an archive
type Info struct {
	Hash         merkle.Hash       `json:"hash"`
	Name         string            `json:"name"`
	Size         uint64            `json:"size"`
	Time         uint32            `json:"time"`
	Flags        string            `json:"flags"`
	KeyMaterial  map[string]string `json:"keyMaterial,omitempty"`
	BlockCount   uint64            `json:"blockCount"`
	MissingCount uint64            `json:"missingCount"`
	Owners       []account.Address `json:"owners"`
	Metadata     []Metadata        `json:"metadata"`
}

// Info - summary of the archive
func (a *Archive) Info() *Info {
	return &Info{
		Hash:         a.Hash(),
		Name:         a.name,
		Size:         a.size,
		Time:         a.time,
		Flags:        a.encryption.Label(),
		KeyMaterial:  a.encryption.keyMaterial(),
		BlockCount:   a.BlockCount(),
		MissingCount: uint64(len(a.missing)),
		Owners:       a.Owners(),
		Metadata:     []Metadata{},
	}
}
