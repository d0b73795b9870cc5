package canopy

// Append adds one element to the end of the committed sequence
// and returns the new root digest.
//
// The resulting tree is indistinguishable from a tree freshly built
// over the original elements plus the new element:
// same root, same leaf digests, and the same proof at every index.
// Append achieves that by rebuilding every level above the leaf row
// with the same pairing rule the build uses.
// Proofs issued before the append remain valid
// only against the old root.
//
// Append requires exclusive access to the tree:
// no other method may run on the same Tree until it returns.
func (t *Tree) Append(element []byte) []byte {
	leaf := make([]byte, t.hashSize)
	t.hasher.Leaf(element, leaf[:0])

	leaves := append(t.levels[0], leaf)
	t.levels = buildLevels(leaves, t.hasher, t.hashSize)

	return t.Root()
}
