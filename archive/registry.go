// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/collection"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/storage"
)

// base keys of the registry collections
var (
	archivesKey = []byte("archives")
	indexKey    = []byte("archive.index")
	blocksKey   = []byte("archive.blocks")
)

// Registry - archives and their blocks kept in a storage context
//
// run it over a change set so that a failed operation can be undone
type Registry struct {
	log      *logger.L
	archives collection.Map[merkle.Hash, *Archive]
	index    collection.List[merkle.Hash]
	blocks   collection.Map[merkle.Hash, collection.Map[uint64, []byte]]
}

// NewRegistry - bind a registry to a context
func NewRegistry(ctx storage.Context) *Registry {
	return &Registry{
		log:      logger.New("archive"),
		archives: collection.NewMap(ctx, archivesKey, collection.HashCodec, collection.SerializableCodec[Archive]()),
		index:    collection.NewList(ctx, indexKey, collection.HashCodec),
		blocks:   collection.NewMap(ctx, blocksKey, collection.HashCodec, collection.MapOf(collection.Uint64, collection.Bytes)),
	}
}

// Create - store an archive from complete content
//
// if the archive is already present the owner is added to it and any
// blocks it is still missing are filled from the content
func (r *Registry) Create(content []byte, name string, time uint32, encryption Encryption, owner account.Address) (*Archive, error) {
	a, err := NewFromContent(content, name, time, encryption)
	if nil != err {
		return nil, err
	}
	existing, err := r.adopt(a.Hash(), owner)
	if nil != err {
		return nil, err
	}
	if nil != existing {
		if err := r.fill(existing, content); nil != err {
			return nil, err
		}
		return existing, nil
	}

	if err := a.AddOwner(owner); nil != err {
		return nil, err
	}
	blocks, err := r.blocksOf(a.Hash())
	if nil != err {
		return nil, err
	}
	for i := uint64(0); i < a.BlockCount(); i += 1 {
		chunk, err := merkle.Chunk(content, i)
		if nil != err {
			return nil, err
		}
		if err := blocks.Set(i, chunk); nil != err {
			return nil, err
		}
	}
	if err := r.insert(a); nil != err {
		return nil, err
	}

	r.log.Infof("created: %s  name: %q  size: %d", a.Hash().Hex(), a.Name(), a.Size())
	return a, nil
}

// Declare - store an archive known only by its tree, every block is
// missing until written
func (r *Registry) Declare(tree *merkle.Tree, name string, size uint64, time uint32, encryption Encryption, owner account.Address) (*Archive, error) {
	a, err := NewDeclared(tree, name, size, time, encryption)
	if nil != err {
		return nil, err
	}
	existing, err := r.adopt(a.Hash(), owner)
	if nil != err || nil != existing {
		return existing, err
	}

	if err := a.AddOwner(owner); nil != err {
		return nil, err
	}
	if err := r.insert(a); nil != err {
		return nil, err
	}

	r.log.Infof("declared: %s  name: %q  blocks: %d", a.Hash().Hex(), a.Name(), a.BlockCount())
	return a, nil
}

// an existing archive gets the owner added, nil if absent
func (r *Registry) adopt(hash merkle.Hash, owner account.Address) (*Archive, error) {
	found, err := r.Exists(hash)
	if nil != err || !found {
		return nil, err
	}
	a, err := r.Find(hash)
	if nil != err {
		return nil, err
	}
	if a.IsOwner(owner) {
		return a, nil
	}
	if err := a.AddOwner(owner); nil != err {
		return nil, err
	}
	if err := r.archives.Set(hash, a); nil != err {
		return nil, err
	}
	r.log.Debugf("archive: %s  added owner: %s", hash.Hex(), owner)
	return a, nil
}

// store every missing block of an archive from its complete content
func (r *Registry) fill(a *Archive, content []byte) error {
	if a.IsComplete() {
		return nil
	}
	blocks, err := r.blocksOf(a.Hash())
	if nil != err {
		return err
	}
	for _, i := range a.MissingBlocks() {
		chunk, err := merkle.Chunk(content, i)
		if nil != err {
			return err
		}
		if err := a.ReceiveBlock(i, chunk); nil != err {
			return err
		}
		if err := blocks.Set(i, chunk); nil != err {
			return err
		}
	}
	if err := r.archives.Set(a.Hash(), a); nil != err {
		return err
	}
	r.log.Infof("archive: %s  completed from content", a.Hash().Hex())
	return nil
}

func (r *Registry) insert(a *Archive) error {
	if err := r.archives.Set(a.Hash(), a); nil != err {
		return err
	}
	return r.index.Add(a.Hash())
}

func (r *Registry) blocksOf(hash merkle.Hash) (collection.Map[uint64, []byte], error) {
	return r.blocks.Get(hash)
}

// Find - archive by hash
func (r *Registry) Find(hash merkle.Hash) (*Archive, error) {
	a, err := r.archives.Find(hash)
	if fault.IsErrNotFound(err) {
		return nil, fault.ErrArchiveNotFound
	}
	if nil != err {
		return nil, fmt.Errorf("archive: %s: %w", hash.Hex(), err)
	}
	return a, nil
}

// Exists - check if an archive is present
func (r *Registry) Exists(hash merkle.Hash) (bool, error) {
	return r.archives.ContainsKey(hash)
}

// Hashes - every archive in creation order
func (r *Registry) Hashes() ([]merkle.Hash, error) {
	return r.index.All()
}

// Count - number of archives
func (r *Registry) Count() (uint64, error) {
	return r.archives.Count()
}

// WriteBlock - fill in a missing block of an archive
//
// the block is checked against the archive's tree before it is stored
func (r *Registry) WriteBlock(a *Archive, content []byte, index uint64) error {
	if err := a.ReceiveBlock(index, content); nil != err {
		r.log.Warnf("archive: %s  block: %d  rejected: %s", a.Hash().Hex(), index, err)
		return err
	}
	blocks, err := r.blocksOf(a.Hash())
	if nil != err {
		return err
	}
	if err := blocks.Set(index, content); nil != err {
		return err
	}
	if err := r.archives.Set(a.Hash(), a); nil != err {
		return err
	}

	r.log.Debugf("archive: %s  block: %d  accepted", a.Hash().Hex(), index)
	if a.IsComplete() {
		r.log.Infof("archive: %s  complete", a.Hash().Hex())
	}
	return nil
}

// WriteBlockHex - fill in a block given as hex text
func (r *Registry) WriteBlockHex(hash merkle.Hash, index uint64, blockHex string) error {
	content, err := hex.DecodeString(blockHex)
	if nil != err {
		return fault.ErrInvalidHexString
	}
	a, err := r.Find(hash)
	if nil != err {
		return err
	}
	return r.WriteBlock(a, content, index)
}

// ReadBlock - stored content of one block
func (r *Registry) ReadBlock(a *Archive, index uint64) ([]byte, error) {
	if index >= a.BlockCount() {
		return nil, fault.ErrBlockIndexOutOfRange
	}
	if a.IsMissing(index) {
		return nil, fault.ErrBlockNotFound
	}
	blocks, err := r.blocksOf(a.Hash())
	if nil != err {
		return nil, err
	}
	block, err := blocks.Find(index)
	if fault.IsErrNotFound(err) {
		return nil, fault.ErrBlockNotFound
	}
	return block, err
}

// ReadContent - all blocks joined, the archive must be complete
func (r *Registry) ReadContent(a *Archive) ([]byte, error) {
	if !a.IsComplete() {
		return nil, fault.ErrBlockNotFound
	}
	content := make([]byte, 0, a.Size())
	for i := uint64(0); i < a.BlockCount(); i += 1 {
		block, err := r.ReadBlock(a, i)
		if nil != err {
			return nil, err
		}
		content = append(content, block...)
	}
	return content, nil
}

// AddOwner - add an owner to an archive
func (r *Registry) AddOwner(hash merkle.Hash, owner account.Address) error {
	a, err := r.Find(hash)
	if nil != err {
		return err
	}
	if err := a.AddOwner(owner); nil != err {
		return err
	}
	return r.archives.Set(hash, a)
}

// RemoveOwner - remove an owner from an archive
//
// the archive and its blocks are deleted with the last owner
func (r *Registry) RemoveOwner(hash merkle.Hash, owner account.Address) error {
	a, err := r.Find(hash)
	if nil != err {
		return err
	}
	if err := a.RemoveOwner(owner); nil != err {
		return err
	}
	if 0 != len(a.owners) {
		return r.archives.Set(hash, a)
	}
	return r.delete(a)
}

func (r *Registry) delete(a *Archive) error {
	hash := a.Hash()
	blocks, err := r.blocksOf(hash)
	if nil != err {
		return err
	}
	for i := uint64(0); i < a.BlockCount(); i += 1 {
		if _, err := blocks.Remove(i); nil != err {
			return err
		}
	}
	if _, err := r.index.Remove(hash); nil != err {
		return err
	}
	if _, err := r.archives.Remove(hash); nil != err {
		return err
	}
	r.log.Infof("deleted: %s", hash.Hex())
	return nil
}
