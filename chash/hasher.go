package chash

// Hasher is the user-defined interface for hashing leaves and interior nodes.
// The tree passes raw element bytes to the Leaf method
// to produce a leaf digest,
// and it passes pairs of digests to the Node method
// to produce each parent digest.
//
// Both methods must be deterministic and must produce
// fixed-width output for all inputs;
// the width travels alongside the Hasher in configuration,
// as canopy's TreeConfig.HashSize does.
//
// To be allocation-efficient, the Hasher implementation
// must append its digest to dst, instead of creating a new byte slice.
// Callers pass dst with zero length and capacity of at least one digest,
// so the append fills memory the caller already owns.
// Hasher must not retain references to the dst slice.
//
// Furthermore, Hasher methods must be safe to call concurrently.
type Hasher interface {
	Leaf(in []byte, dst []byte)
	Node(left, right []byte, dst []byte)
}
