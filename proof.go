package canopy

// Side reports which operand position a proof step's sibling occupies
// in the next hash.
type Side uint8

const (
	// SideLeft means the sibling is the left operand:
	// the next digest is hash(sibling ++ current).
	SideLeft Side = iota

	// SideRight means the sibling is the right operand:
	// the next digest is hash(current ++ sibling).
	SideRight
)

// ProofStep is one level of a [Proof]:
// the sibling digest paired with the current node,
// and the side of the pairing that sibling occupies.
type ProofStep struct {
	Sibling []byte
	Side    Side
}

// Proof is an inclusion proof for a single leaf:
// the ordered sibling path from the leaf row up to,
// but excluding, the root level.
//
// A Proof is self-contained.
// It can be checked with [Verify] using only the element bytes
// and the root digest, without access to the Tree that produced it,
// and it remains meaningful for that root
// even after the Tree is appended to or released.
type Proof []ProofStep

// Prove returns the inclusion proof for the leaf at the given index,
// with one step per level below the root.
//
// The sibling digests in the returned proof are copies,
// so the proof is unaffected by later calls to [*Tree.Append].
//
// Prove returns an [IndexOutOfRangeError] if idx does not identify
// a current leaf.
func (t *Tree) Prove(idx int) (Proof, error) {
	if idx < 0 || idx >= len(t.levels[0]) {
		return nil, IndexOutOfRangeError{Index: idx, NumLeaves: len(t.levels[0])}
	}

	// One backing allocation covers every sibling digest in the proof.
	mem := make([]byte, (len(t.levels)-1)*t.hashSize)

	proof := make(Proof, 0, len(t.levels)-1)
	pos := idx
	for _, level := range t.levels[:len(t.levels)-1] {
		var sibling []byte
		var side Side
		if pos&1 == 0 {
			// Even position: the sibling is the right operand.
			// A final unpaired entry is its own sibling.
			sibPos := pos + 1
			if sibPos == len(level) {
				sibPos = pos
			}
			sibling = level[sibPos]
			side = SideRight
		} else {
			sibling = level[pos-1]
			side = SideLeft
		}

		dst := mem[len(proof)*t.hashSize : (len(proof)+1)*t.hashSize]
		copy(dst, sibling)
		proof = append(proof, ProofStep{Sibling: dst, Side: side})

		pos >>= 1
	}

	return proof, nil
}
