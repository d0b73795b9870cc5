package chashtest

import (
	"testing"

	"github.com/canopy-works/canopy/chash"
	"github.com/stretchr/testify/require"
)

type HasherFactory func() (h chash.Hasher, hashSize int)

// TestHasherCompliance asserts the behavior that every [chash.Hasher]
// implementation must provide in order to be usable with a canopy tree.
func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("leaf is deterministic", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		dst01 := make([]byte, sz)
		h.Leaf([]byte("deterministic_data"), dst01[:0])

		dst02 := make([]byte, sz)
		h.Leaf([]byte("deterministic_data"), dst02[:0])

		require.Equal(t, dst01, dst02)
	})

	t.Run("node is deterministic", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		left := make([]byte, sz)
		h.Leaf([]byte("left_data"), left[:0])
		right := make([]byte, sz)
		h.Leaf([]byte("right_data"), right[:0])

		dst01 := make([]byte, sz)
		h.Node(left, right, dst01[:0])

		dst02 := make([]byte, sz)
		h.Node(left, right, dst02[:0])

		require.Equal(t, dst01, dst02)
	})

	t.Run("leaf respects input", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		dst01 := make([]byte, sz)
		h.Leaf([]byte("input_one"), dst01[:0])

		dst02 := make([]byte, sz)
		h.Leaf([]byte("input_two"), dst02[:0])

		require.NotEqual(t, dst01, dst02)
	})

	t.Run("node respects operand order", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		left := make([]byte, sz)
		h.Leaf([]byte("left_data"), left[:0])
		right := make([]byte, sz)
		h.Leaf([]byte("right_data"), right[:0])

		lr := make([]byte, sz)
		h.Node(left, right, lr[:0])

		rl := make([]byte, sz)
		h.Node(right, left, rl[:0])

		require.NotEqual(t, lr, rl)
	})

	t.Run("appends without reallocating", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		// The leaf digest must land in the memory the caller provided.
		buf := make([]byte, sz)
		h.Leaf([]byte("in_place"), buf[:0])

		want := make([]byte, sz)
		h.Leaf([]byte("in_place"), want[:0])

		require.Equal(t, want, buf)
	})
}
