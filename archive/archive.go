// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"math"
	"sort"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/serialization"
)

// Archive - named, sized content identified by its merkle root
type Archive struct {
	tree       *merkle.Tree
	name       string
	size       uint64
	time       uint32
	encryption Encryption
	owners     []account.Address
	missing    []uint64 // ascending
}

// NewFromContent - archive of complete content, nothing is missing
func NewFromContent(content []byte, name string, time uint32, encryption Encryption) (*Archive, error) {
	size := uint64(len(content))
	if err := checkHeader(name, size, encryption); nil != err {
		return nil, err
	}
	return &Archive{
		tree:       merkle.NewTree(content),
		name:       name,
		size:       size,
		time:       time,
		encryption: encryption,
		owners:     []account.Address{},
		missing:    []uint64{},
	}, nil
}

// NewDeclared - archive known only by its tree, every block is missing
func NewDeclared(tree *merkle.Tree, name string, size uint64, time uint32, encryption Encryption) (*Archive, error) {
	if err := checkHeader(name, size, encryption); nil != err {
		return nil, err
	}
	if nil == tree {
		return nil, fault.ErrInvalidMerkleTree
	}
	if err := checkTree(tree, size); nil != err {
		return nil, err
	}

	count := merkle.ChunkCount(size)
	missing := make([]uint64, count)
	for i := range missing {
		missing[i] = uint64(i)
	}
	return &Archive{
		tree:       tree,
		name:       name,
		size:       size,
		time:       time,
		encryption: encryption,
		owners:     []account.Address{},
		missing:    missing,
	}, nil
}

func checkHeader(name string, size uint64, encryption Encryption) error {
	if "" == name {
		return fault.ErrInvalidArchiveName
	}
	if nil == encryption {
		return fault.ErrInvalidEncryptionMode
	}
	// block indices are recorded as int32
	if merkle.ChunkCount(size)-1 > math.MaxInt32 {
		return fault.ErrValueTooLarge
	}
	return nil
}

// the tree must be consistent and shaped for size
func checkTree(tree *merkle.Tree, size uint64) error {
	if err := tree.Validate(); nil != err {
		return err
	}
	count := merkle.ChunkCount(size)
	if merkle.NextPowerOfTwo(count) != tree.MaxDepthLeafCount() {
		return fault.ErrSizeMismatch
	}
	for i := count; i < tree.MaxDepthLeafCount(); i += 1 {
		leaf, _ := tree.Leaf(i)
		if !leaf.IsNull() {
			return fault.ErrInvalidMerkleTree
		}
	}
	return nil
}

// Hash - identity of the archive: the merkle root
func (a *Archive) Hash() merkle.Hash {
	return a.tree.Root()
}

// Tree - the merkle tree
func (a *Archive) Tree() *merkle.Tree {
	return a.tree
}

// Name - the name as stored
func (a *Archive) Name() string {
	return a.name
}

// Size - content length in bytes
func (a *Archive) Size() uint64 {
	return a.size
}

// Time - creation time, seconds since the epoch
func (a *Archive) Time() uint32 {
	return a.time
}

// Encryption - mode and parameters of the content
func (a *Archive) Encryption() Encryption {
	return a.encryption
}

// BlockCount - number of blocks of the content
//
// computed from the size as ceil(size / ChunkSize), at least one; this
// is the real leaf count, not the tree's MaxDepthLeafCount, since a null
// padding leaf can never be matched by a block
func (a *Archive) BlockCount() uint64 {
	return merkle.ChunkCount(a.size)
}

// Owners - owner addresses in the order they were added
func (a *Archive) Owners() []account.Address {
	return append([]account.Address{}, a.owners...)
}

// IsOwner - check an address
func (a *Archive) IsOwner(address account.Address) bool {
	for _, o := range a.owners {
		if o == address {
			return true
		}
	}
	return false
}

// AddOwner - add an address that is not yet an owner
func (a *Archive) AddOwner(address account.Address) error {
	if a.IsOwner(address) {
		return fault.ErrOwnerExists
	}
	a.owners = append(a.owners, address)
	return nil
}

// RemoveOwner - remove an existing owner
func (a *Archive) RemoveOwner(address account.Address) error {
	for i, o := range a.owners {
		if o == address {
			a.owners = append(a.owners[:i], a.owners[i+1:]...)
			return nil
		}
	}
	return fault.ErrOwnerNotFound
}

// MissingBlocks - indices of blocks not yet received, ascending
func (a *Archive) MissingBlocks() []uint64 {
	return append([]uint64{}, a.missing...)
}

// IsMissing - check if a block is still to be received
func (a *Archive) IsMissing(index uint64) bool {
	_, found := a.missingPosition(index)
	return found
}

// IsComplete - every block is present
func (a *Archive) IsComplete() bool {
	return 0 == len(a.missing)
}

func (a *Archive) missingPosition(index uint64) (int, bool) {
	i := sort.Search(len(a.missing), func(i int) bool {
		return a.missing[i] >= index
	})
	return i, i < len(a.missing) && a.missing[i] == index
}

// ReceiveBlock - accept the content of a missing block
//
// the block must be missing and must match its merkle leaf
func (a *Archive) ReceiveBlock(index uint64, content []byte) error {
	if index >= a.BlockCount() {
		return fault.ErrBlockIndexOutOfRange
	}
	i, found := a.missingPosition(index)
	if !found {
		return fault.ErrBlockNotMissing
	}
	if !a.tree.VerifyContent(content, index) {
		return fault.ErrBlockHashMismatch
	}
	a.missing = append(a.missing[:i], a.missing[i+1:]...)
	return nil
}

// Equal - every field matches
func (a *Archive) Equal(other *Archive) bool {
	if nil == a || nil == other {
		return a == other
	}
	if a.name != other.name || a.size != other.size || a.time != other.time {
		return false
	}
	if !a.tree.Equal(other.tree) || !a.encryption.equal(other.encryption) {
		return false
	}
	if len(a.owners) != len(other.owners) || len(a.missing) != len(other.missing) {
		return false
	}
	for i := range a.owners {
		if a.owners[i] != other.owners[i] {
			return false
		}
	}
	for i := range a.missing {
		if a.missing[i] != other.missing[i] {
			return false
		}
	}
	return true
}

// SerializeData - the archive record
func (a *Archive) SerializeData(w *serialization.Writer) {
	a.tree.SerializeData(w)
	w.WriteVarString(a.name)
	w.WriteVarInt(a.size)
	w.WriteUint32(a.time)
	writeEncryption(w, a.encryption)

	w.WriteVarInt(uint64(len(a.owners)))
	for _, o := range a.owners {
		w.WriteBytes(o[:])
	}

	w.WriteVarInt(uint64(len(a.missing)))
	for _, m := range a.missing {
		w.WriteInt32(int32(m))
	}
}

// UnserializeData - decode and check an archive record
func (a *Archive) UnserializeData(r *serialization.Reader) error {
	tree := &merkle.Tree{}
	if err := tree.UnserializeData(r); nil != err {
		return err
	}
	name := r.ReadVarString()
	size := r.ReadVarInt()
	time := r.ReadUint32()
	encryption := readEncryption(r)
	if nil != r.Err() {
		return r.Err()
	}
	if err := checkHeader(name, size, encryption); nil != err {
		return err
	}
	if err := checkTree(tree, size); nil != err {
		return err
	}

	ownerCount := r.ReadVarInt()
	if nil != r.Err() {
		return r.Err()
	}
	if ownerCount > uint64(r.Remaining())/account.AddressLength {
		return fault.ErrTruncatedRecord
	}
	owners := make([]account.Address, 0, ownerCount)
	seen := make(map[account.Address]struct{}, ownerCount)
	for i := uint64(0); i < ownerCount; i += 1 {
		o := readAddress(r)
		if _, ok := seen[o]; ok {
			return fault.ErrDuplicateOwner
		}
		seen[o] = struct{}{}
		owners = append(owners, o)
	}

	missingCount := r.ReadVarInt()
	if nil != r.Err() {
		return r.Err()
	}
	if missingCount > uint64(r.Remaining())/4 {
		return fault.ErrTruncatedRecord
	}
	blockCount := merkle.ChunkCount(size)
	missing := make([]uint64, 0, missingCount)
	for i := uint64(0); i < missingCount; i += 1 {
		index := r.ReadInt32()
		if nil != r.Err() {
			return r.Err()
		}
		if index < 0 || uint64(index) >= blockCount {
			return fault.ErrBlockIndexOutOfRange
		}
		missing = append(missing, uint64(index))
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	for i := 1; i < len(missing); i += 1 {
		if missing[i] == missing[i-1] {
			return fault.ErrDuplicateMissingBlock
		}
	}
	if nil != r.Err() {
		return r.Err()
	}

	a.tree = tree
	a.name = name
	a.size = size
	a.time = time
	a.encryption = encryption
	a.owners = owners
	a.missing = missing
	return nil
}
