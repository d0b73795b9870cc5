package canopy

import (
	"fmt"

	"github.com/canopy-works/canopy/chash"
)

// Tree is a binary Merkle tree committing to an ordered sequence of elements.
//
// The tree stores one flat level of digests per depth:
// level 0 holds the leaf digests in element order,
// and each level above holds the pairwise parent digests of the level below,
// up to the single-entry root level.
// A level with an odd number of entries pairs its final entry with itself.
// Parent/child relationships are index arithmetic, not stored pointers.
//
// Create a tree with [NewTree].
// A Tree has a single logical writer:
// [*Tree.Append] must not run concurrently with any other method
// on the same Tree.
type Tree struct {
	// levels[0] is the leaf row;
	// levels[len(levels)-1] contains only the root.
	levels [][][]byte

	hasher   chash.Hasher
	hashSize int
}

// TreeConfig is the configuration used for [NewTree].
type TreeConfig struct {
	// Hasher produces the leaf and node digests.
	Hasher chash.Hasher

	// HashSize is the digest width of Hasher, in bytes.
	HashSize int
}

// NewTree hashes each element into a leaf digest
// and builds every level through the root.
//
// It returns [ErrEmptyInput] if elements is empty;
// an empty tree has no defined root.
// A single element yields a tree whose root is that element's leaf digest,
// with no hashing rounds above the leaf row.
func NewTree(elements [][]byte, cfg TreeConfig) (*Tree, error) {
	if cfg.Hasher == nil {
		panic(fmt.Errorf("BUG: cfg.Hasher must not be nil"))
	}
	if cfg.HashSize <= 0 {
		panic(fmt.Errorf(
			"BUG: cfg.HashSize must be positive (got %d)", cfg.HashSize,
		))
	}

	if len(elements) == 0 {
		return nil, ErrEmptyInput
	}

	// Leaf row first: one digest per element, in element order,
	// all sliced out of a single backing allocation.
	mem := make([]byte, len(elements)*cfg.HashSize)
	leaves := make([][]byte, len(elements))
	for i, elem := range elements {
		start := i * cfg.HashSize
		leaves[i] = mem[start : start+cfg.HashSize]
		cfg.Hasher.Leaf(elem, leaves[i][:0])
	}

	return &Tree{
		levels: buildLevels(leaves, cfg.Hasher, cfg.HashSize),

		hasher:   cfg.Hasher,
		hashSize: cfg.HashSize,
	}, nil
}

// buildLevels builds every level above the given leaf row,
// returning the full set of levels from leaves to root.
// Entries at (2i, 2i+1) merge into entry i of the next level;
// an odd-width level pairs its final entry with itself.
func buildLevels(leaves [][]byte, h chash.Hasher, hashSize int) [][][]byte {
	levels := [][][]byte{leaves}

	for cur := leaves; len(cur) > 1; {
		width := (len(cur) + 1) / 2
		mem := make([]byte, width*hashSize)
		next := make([][]byte, width)

		for i := range next {
			start := i * hashSize
			next[i] = mem[start : start+hashSize]

			left := cur[2*i]
			right := left
			if 2*i+1 < len(cur) {
				right = cur[2*i+1]
			}
			h.Node(left, right, next[i][:0])
		}

		levels = append(levels, next)
		cur = next
	}

	return levels
}

// Root returns the digest committing to the entire element sequence.
// The caller must not modify the returned slice,
// nor retain it across a call to [*Tree.Append].
func (t *Tree) Root() []byte {
	return t.levels[len(t.levels)-1][0]
}

// NumLeaves returns the number of elements the tree commits to.
func (t *Tree) NumLeaves() int {
	return len(t.levels[0])
}

// Leaf returns the digest for the leaf at the given index.
// The caller must not modify the returned slice,
// nor retain it across a call to [*Tree.Append].
func (t *Tree) Leaf(idx int) []byte {
	if idx < 0 || idx >= len(t.levels[0]) {
		panic(fmt.Errorf(
			"BUG: attempted to get leaf at index %d; must be in range [0, %d)",
			idx, len(t.levels[0]),
		))
	}

	return t.levels[0][idx]
}
