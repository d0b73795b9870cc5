// Package canopy implements a binary Merkle tree:
// a hash-based commitment to an ordered sequence of elements,
// with a compact inclusion proof per element
// that can be checked against the root digest alone.
//
// The hash function is a collaborator supplied through [chash.Hasher];
// the csha256 subpackage provides a SHA256-backed implementation.
//
// Build a tree with [NewTree], extract proofs with [*Tree.Prove],
// and check them anywhere with [Verify].
// [*Tree.Append] extends the committed sequence in place.
// [PartialTree] reconstructs knowledge of a remote tree
// one proven leaf at a time.
package canopy
