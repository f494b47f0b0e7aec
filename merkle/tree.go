// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/serialization"
)

// ChunkSize - bytes of content per leaf
const ChunkSize = 262144

// Tree - dense merkle tree: leaves, each upper level, root last
type Tree struct {
	maxDepthLeafCount uint64
	nodes             []Hash
}

// ChunkCount - number of chunks for a content length, never less than one
func ChunkCount(length uint64) uint64 {
	if 0 == length {
		return 1
	}
	return (length + ChunkSize - 1) / ChunkSize
}

// NextPowerOfTwo - smallest power of two not less than n, n > 0
func NextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// IsPowerOfTwo - true for 1, 2, 4, ...
func IsPowerOfTwo(n uint64) bool {
	return 0 != n && 0 == n&(n-1)
}

// NewTree - build the tree of a complete content
//
// empty content is a single chunk
func NewTree(content []byte) *Tree {
	leafCount := ChunkCount(uint64(len(content)))
	leaves := make([]Hash, leafCount)
	for i := uint64(0); i < leafCount; i += 1 {
		leaves[i] = NewHash(chunk(content, i))
	}
	return FromLeaves(leaves)
}

// FromLeaves - build a tree over known leaf hashes, padding with the
// null hash to a power of two
func FromLeaves(leaves []Hash) *Tree {
	leafCount := uint64(len(leaves))
	if 0 == leafCount {
		leafCount = 1
	}
	max := NextPowerOfTwo(leafCount)

	nodes := make([]Hash, 2*max-1)
	copy(nodes, leaves)
	combineLevels(nodes, max)

	return &Tree{
		maxDepthLeafCount: max,
		nodes:             nodes,
	}
}

// fill every level above the leaves
func combineLevels(nodes []Hash, max uint64) {
	offset := uint64(0)
	for width := max; width > 1; width /= 2 {
		parent := offset + width
		for j := uint64(0); j < width; j += 2 {
			nodes[parent+j/2] = Combine(nodes[offset+j], nodes[offset+j+1])
		}
		offset = parent
	}
}

// the i'th chunk of content, the last may be short
func chunk(content []byte, i uint64) []byte {
	start := i * ChunkSize
	if start >= uint64(len(content)) {
		return []byte{}
	}
	end := start + ChunkSize
	if end > uint64(len(content)) {
		end = uint64(len(content))
	}
	return content[start:end]
}

// Chunk - the i'th chunk of content
func Chunk(content []byte, index uint64) ([]byte, error) {
	if index >= ChunkCount(uint64(len(content))) {
		return nil, fault.ErrBlockIndexOutOfRange
	}
	return chunk(content, index), nil
}

// Root - the last hash of the tree
func (t *Tree) Root() Hash {
	return t.nodes[len(t.nodes)-1]
}

// MaxDepthLeafCount - number of leaf slots including padding
func (t *Tree) MaxDepthLeafCount() uint64 {
	return t.maxDepthLeafCount
}

// Len - number of hashes in the tree
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Leaf - hash of a leaf slot
func (t *Tree) Leaf(index uint64) (Hash, error) {
	if index >= t.maxDepthLeafCount {
		return NullHash, fault.ErrBlockIndexOutOfRange
	}
	return t.nodes[index], nil
}

// Nodes - copy of the whole array
func (t *Tree) Nodes() []Hash {
	return append([]Hash{}, t.nodes...)
}

// VerifyContent - true if the chunk hashes to the leaf at index
//
// only the leaf is compared, the tree is trusted
func (t *Tree) VerifyContent(content []byte, index uint64) bool {
	if index >= t.maxDepthLeafCount {
		return false
	}
	return NewHash(content) == t.nodes[index]
}

// Validate - check the shape and recompute every level above the leaves
func (t *Tree) Validate() error {
	if !IsPowerOfTwo(t.maxDepthLeafCount) || uint64(len(t.nodes)) != 2*t.maxDepthLeafCount-1 {
		return fault.ErrInvalidMerkleTree
	}
	check := make([]Hash, len(t.nodes))
	copy(check, t.nodes[:t.maxDepthLeafCount])
	combineLevels(check, t.maxDepthLeafCount)

	for i := t.maxDepthLeafCount; i < uint64(len(check)); i += 1 {
		if check[i] != t.nodes[i] {
			return fault.ErrInvalidMerkleTree
		}
	}
	return nil
}

// Equal - same shape and hashes
func (t *Tree) Equal(other *Tree) bool {
	if nil == t || nil == other {
		return t == other
	}
	if t.maxDepthLeafCount != other.maxDepthLeafCount || len(t.nodes) != len(other.nodes) {
		return false
	}
	for i := range t.nodes {
		if t.nodes[i] != other.nodes[i] {
			return false
		}
	}
	return true
}

// SerializeData - [varint max][varint length][length × 32 bytes]
func (t *Tree) SerializeData(w *serialization.Writer) {
	w.WriteVarInt(t.maxDepthLeafCount)
	w.WriteVarInt(uint64(len(t.nodes)))
	for _, h := range t.nodes {
		w.WriteBytes(h[:])
	}
}

// UnserializeData - decode and check the shape, the hashes are not
// recomputed, use Validate for that
func (t *Tree) UnserializeData(r *serialization.Reader) error {
	max := r.ReadVarInt()
	length := r.ReadVarInt()
	if nil != r.Err() {
		return r.Err()
	}
	if !IsPowerOfTwo(max) || length != 2*max-1 {
		return fault.ErrInvalidMerkleTree
	}
	if length > uint64(r.Remaining())/HashLength {
		return fault.ErrTruncatedRecord
	}

	nodes := make([]Hash, length)
	for i := range nodes {
		copy(nodes[i][:], r.ReadBytes(HashLength))
	}
	if nil != r.Err() {
		return r.Err()
	}

	t.maxDepthLeafCount = max
	t.nodes = nodes
	return nil
}
