package canopy

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/canopy-works/canopy/chash"
)

// PartialTree reconstructs knowledge of a remote tree,
// one proven leaf at a time.
//
// It starts from a trusted root digest and a known leaf count.
// Use [*PartialTree.AddLeaf] to offer a leaf's content with its proof;
// the leaf is admitted only if the proof reproduces the trusted root.
// The partial tree records every digest a verified proof reveals,
// so it also learns interior nodes it was never directly given.
//
// A PartialTree is not safe for concurrent use.
type PartialTree struct {
	log *slog.Logger

	root []byte

	// Same level layout as a full Tree;
	// entries hold zeroes until a verified proof fills them in.
	levels [][][]byte

	// Which node positions hold verified digests.
	// Flattened across levels, leaf row first.
	haveNodes *bitset.BitSet

	// Which leaves have had their content verified.
	// Distinct from haveNodes: a sibling digest can be known
	// without that leaf's content ever having been offered.
	haveLeaves *bitset.BitSet

	// Flattened bit offset of each level within haveNodes.
	levelOffsets []uint

	hasher   chash.Hasher
	hashSize int
}

// PartialTreeConfig contains all the details for [NewPartialTree].
type PartialTreeConfig struct {
	// The trusted root digest the remote tree committed to.
	Root []byte

	// The leaf count of the remote tree.
	NLeaves int

	Hasher   chash.Hasher
	HashSize int
}

// NewPartialTree returns a PartialTree trusting the root in cfg.
//
// The log may be nil to discard debug output.
func NewPartialTree(log *slog.Logger, cfg PartialTreeConfig) *PartialTree {
	if cfg.Hasher == nil {
		panic(fmt.Errorf("BUG: cfg.Hasher must not be nil"))
	}
	if cfg.HashSize <= 0 {
		panic(fmt.Errorf(
			"BUG: cfg.HashSize must be positive (got %d)", cfg.HashSize,
		))
	}
	if cfg.NLeaves <= 0 {
		panic(fmt.Errorf(
			"BUG: cfg.NLeaves must be positive (got %d)", cfg.NLeaves,
		))
	}
	if len(cfg.Root) != cfg.HashSize {
		panic(fmt.Errorf(
			"BUG: root must be %d bytes (got %d)", cfg.HashSize, len(cfg.Root),
		))
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Level widths follow the same ceiling-half rule as a full Tree.
	var widths []int
	for w := cfg.NLeaves; ; w = (w + 1) / 2 {
		widths = append(widths, w)
		if w == 1 {
			break
		}
	}

	levels := make([][][]byte, len(widths))
	levelOffsets := make([]uint, len(widths))
	var total uint
	for i, w := range widths {
		mem := make([]byte, w*cfg.HashSize)
		level := make([][]byte, w)
		for j := range level {
			start := j * cfg.HashSize
			level[j] = mem[start : start+cfg.HashSize]
		}

		levels[i] = level
		levelOffsets[i] = total
		total += uint(w)
	}

	pt := &PartialTree{
		log: log,

		root: bytes.Clone(cfg.Root),

		levels: levels,

		haveNodes:  bitset.MustNew(total),
		haveLeaves: bitset.MustNew(uint(cfg.NLeaves)),

		levelOffsets: levelOffsets,

		hasher:   cfg.Hasher,
		hashSize: cfg.HashSize,
	}

	// The root is trusted, so it is known from the start.
	pt.setNode(len(levels)-1, 0, pt.root)

	return pt
}

// AddLeaf offers the content of the leaf at the given index,
// along with its inclusion proof.
//
// The proof is checked in full before anything is recorded:
// a rejected call leaves the partial tree unchanged.
// Rejections are [IndexOutOfRangeError] for an index
// outside the remote tree, [ProofLengthError] for a proof
// without one step per level below the root,
// and [ProofMismatchError] for a proof that fails
// to reproduce the trusted root.
//
// Re-offering an admitted leaf with a valid proof is a no-op.
func (p *PartialTree) AddLeaf(idx int, leafData []byte, proof Proof) error {
	nLeaves := len(p.levels[0])
	if idx < 0 || idx >= nLeaves {
		return IndexOutOfRangeError{Index: idx, NumLeaves: nLeaves}
	}
	if len(proof) != len(p.levels)-1 {
		return ProofLengthError{Got: len(proof), Want: len(p.levels) - 1}
	}

	// Recompute the whole chain before admitting anything,
	// remembering where each digest belongs in case the root matches.
	mem := make([]byte, len(p.levels)*p.hashSize)
	digests := make([][]byte, len(p.levels))
	for i := range digests {
		start := i * p.hashSize
		digests[i] = mem[start : start+p.hashSize]
	}
	p.hasher.Leaf(leafData, digests[0][:0])

	positions := make([]int, len(p.levels))
	sibPositions := make([]int, len(proof))

	pos := idx
	positions[0] = pos
	for i, step := range proof {
		level := p.levels[i]

		var expSide Side
		var sibPos int
		if pos&1 == 0 {
			expSide = SideRight
			sibPos = pos + 1
			if sibPos == len(level) {
				// A final unpaired entry is its own sibling.
				sibPos = pos
			}
		} else {
			expSide = SideLeft
			sibPos = pos - 1
		}

		if step.Side != expSide {
			// The claimed pairing disagrees with the leaf position,
			// so the step cannot belong at this index.
			return ProofMismatchError{Index: idx}
		}
		sibPositions[i] = sibPos

		if step.Side == SideLeft {
			p.hasher.Node(step.Sibling, digests[i], digests[i+1][:0])
		} else {
			p.hasher.Node(digests[i], step.Sibling, digests[i+1][:0])
		}

		pos >>= 1
		positions[i+1] = pos
	}

	if !bytes.Equal(digests[len(digests)-1], p.root) {
		return ProofMismatchError{Index: idx}
	}

	if p.haveLeaves.Test(uint(idx)) {
		p.log.Debug("Re-added leaf with a valid proof", "idx", idx)
		return nil
	}

	// The proof checked out; record everything it revealed.
	for i, d := range digests {
		p.setNode(i, positions[i], d)
	}
	for i, step := range proof {
		p.setNode(i, sibPositions[i], step.Sibling)
	}

	p.haveLeaves.Set(uint(idx))
	p.log.Debug("Admitted leaf", "idx", idx)

	return nil
}

// setNode copies a verified digest into the node arena
// and marks the position as known.
func (p *PartialTree) setNode(level, pos int, digest []byte) {
	copy(p.levels[level][pos], digest)
	p.haveNodes.Set(p.levelOffsets[level] + uint(pos))
}

// HasLeaf reports whether the leaf at the given index
// has been admitted through a verified proof.
func (p *PartialTree) HasLeaf(idx int) bool {
	if idx < 0 || idx >= len(p.levels[0]) {
		panic(fmt.Errorf(
			"BUG: attempted to check leaf at index %d; must be in range [0, %d)",
			idx, len(p.levels[0]),
		))
	}

	return p.haveLeaves.Test(uint(idx))
}

// HasNode reports whether the digest at the given level and position
// has been revealed by any verified proof.
// Level 0 is the leaf row.
func (p *PartialTree) HasNode(level, pos int) bool {
	if level < 0 || level >= len(p.levels) {
		panic(fmt.Errorf(
			"BUG: level %d out of range [0, %d)", level, len(p.levels),
		))
	}
	if pos < 0 || pos >= len(p.levels[level]) {
		panic(fmt.Errorf(
			"BUG: position %d out of range [0, %d) at level %d",
			pos, len(p.levels[level]), level,
		))
	}

	return p.haveNodes.Test(p.levelOffsets[level] + uint(pos))
}

// Complete reports whether every leaf has been admitted.
func (p *PartialTree) Complete() bool {
	return p.haveLeaves.Count() == uint(len(p.levels[0]))
}

// Root returns the trusted root digest.
// The caller must not modify the returned slice.
func (p *PartialTree) Root() []byte {
	return p.root
}

// NumLeaves returns the leaf count of the remote tree.
func (p *PartialTree) NumLeaves() int {
	return len(p.levels[0])
}
