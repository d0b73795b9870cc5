package csha256

import "crypto/sha256"

const HashSize = sha256.Size

// Hasher is a [chash.Hasher] backed by SHA256 hashes.
//
// A leaf digest is the SHA256 of the element bytes,
// and a node digest is the SHA256 of the left digest
// followed by the right digest.
type Hasher struct{}

func (Hasher) Leaf(in []byte, dst []byte) {
	h := sha256.New()
	_, _ = h.Write(in)
	h.Sum(dst)
}

func (Hasher) Node(left, right []byte, dst []byte) {
	h := sha256.New()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	h.Sum(dst)
}
