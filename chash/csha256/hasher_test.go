package csha256_test

import (
	"crypto/sha256"
	"testing"

	"github.com/canopy-works/canopy/chash"
	"github.com/canopy-works/canopy/chash/chashtest"
	"github.com/canopy-works/canopy/chash/csha256"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	chashtest.TestHasherCompliance(t, func() (chash.Hasher, int) {
		return csha256.Hasher{}, csha256.HashSize
	})
}

func TestLeaf_matchesPlainSHA256(t *testing.T) {
	t.Parallel()

	var h csha256.Hasher

	got := make([]byte, csha256.HashSize)
	h.Leaf([]byte("hello"), got[:0])

	want := sha256.Sum256([]byte("hello"))
	require.Equal(t, want[:], got)
}

func TestNode_matchesConcatenatedSHA256(t *testing.T) {
	t.Parallel()

	var h csha256.Hasher

	left := sha256.Sum256([]byte("left"))
	right := sha256.Sum256([]byte("right"))

	got := make([]byte, csha256.HashSize)
	h.Node(left[:], right[:], got[:0])

	want := sha256.Sum256(append(left[:], right[:]...))
	require.Equal(t, want[:], got)
}
