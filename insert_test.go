package canopy_test

import (
	"fmt"
	"testing"

	"github.com/canopy-works/canopy"
	"github.com/stretchr/testify/require"
)

func TestAppend_matchesFreshBuild(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d_leaves_before_append", n), func(t *testing.T) {
			t.Parallel()

			elements := make([]string, n)
			for i := range elements {
				elements[i] = fmt.Sprintf("element_%d", i)
			}

			appended := newTestTree(t, elements...)
			newRoot := appended.Append([]byte("appended"))

			fresh := newTestTree(t, append(elements, "appended")...)

			require.Equal(t, fresh.Root(), newRoot)
			require.Equal(t, fresh.Root(), appended.Root())
			require.Equal(t, fresh.NumLeaves(), appended.NumLeaves())

			// Indistinguishable means every leaf digest
			// and every per-index proof also agree.
			for i := range appended.NumLeaves() {
				require.Equal(t, fresh.Leaf(i), appended.Leaf(i))

				freshProof, err := fresh.Prove(i)
				require.NoError(t, err)

				appendedProof, err := appended.Prove(i)
				require.NoError(t, err)

				require.Equal(t, freshProof, appendedProof)
			}
		})
	}
}

func TestAppend_successive(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, "element_0")

	elements := []string{"element_0"}
	for i := 1; i <= 9; i++ {
		elem := fmt.Sprintf("element_%d", i)
		elements = append(elements, elem)

		root := tree.Append([]byte(elem))

		fresh := newTestTree(t, elements...)
		require.Equal(t, fresh.Root(), root, "diverged after %d appends", i)
	}
}

func TestAppend_changesRoot(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, "a", "b")
	oldRoot := append([]byte(nil), tree.Root()...)

	newRoot := tree.Append([]byte("c"))

	require.Equal(t, newRoot, tree.Root())
	require.NotEqual(t, oldRoot, newRoot)
}

func TestAppend_proofsVerifyAgainstNewRoot(t *testing.T) {
	t.Parallel()

	elements := []string{"a", "b", "c", "d", "e"}
	tree := newTestTree(t, elements...)

	tree.Append([]byte("f"))
	all := append(elements, "f")

	for i, elem := range all {
		proof, err := tree.Prove(i)
		require.NoError(t, err)

		require.True(t, canopy.Verify(
			fnv32Hasher{}, 4, []byte(elem), proof, tree.Root(),
		), "proof for index %d did not verify after append", i)
	}
}
