package canopy

import (
	"bytes"

	"github.com/canopy-works/canopy/chash"
)

// Verify reports whether proof connects the given element bytes
// to the given root digest.
//
// Verify recomputes the leaf digest
// and folds each proof step in order,
// hashing the sibling on the side the step names,
// then byte-compares the result against root.
// It never inspects a Tree,
// so it can run anywhere the root is known.
//
// A mismatch is not an error: the result is simply false.
// Verify has no knowledge of the committed tree's depth,
// so a proof of the wrong length is a caller concern;
// such a proof fails to reproduce the root
// with overwhelming probability.
func Verify(h chash.Hasher, hashSize int, leafData []byte, proof Proof, root []byte) bool {
	cur := make([]byte, hashSize)
	h.Leaf(leafData, cur[:0])

	next := make([]byte, hashSize)
	for _, step := range proof {
		if step.Side == SideLeft {
			h.Node(step.Sibling, cur, next[:0])
		} else {
			h.Node(cur, step.Sibling, next[:0])
		}

		cur, next = next, cur
	}

	return bytes.Equal(cur, root)
}
