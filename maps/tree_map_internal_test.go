package maps

import (
	"math/rand"
	"testing"

	"github.com/amp-labs/collections/sortable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkRedBlackInvariants walks the whole tree and verifies the red-black
// properties: the root is black, no red node has a red child, every path
// from the root to a leaf crosses the same number of black nodes, and
// parent links are consistent.
func checkRedBlackInvariants[K any, V any](t *testing.T, tree *treeMap[K, V]) {
	t.Helper()

	if tree.root == nil {
		return
	}

	require.Equal(t, black, tree.root.color, "root must be black")
	require.Nil(t, tree.root.parent)

	var blackHeight func(node *tmNode[K, V]) int

	blackHeight = func(node *tmNode[K, V]) int {
		if node == nil {
			return 1
		}

		if node.left != nil {
			require.Same(t, node, node.left.parent)
		}

		if node.right != nil {
			require.Same(t, node, node.right.parent)
		}

		if node.color == red {
			require.Equal(t, black, colorOf(node.left), "red node with red left child")
			require.Equal(t, black, colorOf(node.right), "red node with red right child")
		}

		leftHeight := blackHeight(node.left)
		rightHeight := blackHeight(node.right)
		require.Equal(t, leftHeight, rightHeight, "unequal black heights")

		if node.color == black {
			return leftHeight + 1
		}

		return leftHeight
	}

	blackHeight(tree.root)
}

func TestTreeMap_BalanceUnderChurn(t *testing.T) {
	t.Parallel()

	t.Run("stays balanced through random inserts and deletes", func(t *testing.T) {
		t.Parallel()

		tree := &treeMap[sortable.Int, int]{cmp: sortable.Compare[sortable.Int]}
		rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data

		live := make(map[int]bool)

		for range 5000 {
			k := rng.Intn(800)

			if rng.Intn(3) == 0 {
				_, err := tree.Remove(sortable.Int(k))
				require.NoError(t, err)

				delete(live, k)
			} else {
				_, err := tree.Put(sortable.Int(k), k)
				require.NoError(t, err)

				live[k] = true
			}
		}

		checkRedBlackInvariants(t, tree)
		assert.Equal(t, len(live), tree.Size())

		for k := range live {
			found, err := tree.Contains(sortable.Int(k))
			require.NoError(t, err)
			assert.True(t, found, "lost key %d", k)
		}
	})

	t.Run("ascending inserts then full drain", func(t *testing.T) {
		t.Parallel()

		tree := &treeMap[sortable.Int, int]{cmp: sortable.Compare[sortable.Int]}

		for i := range 1000 {
			_, err := tree.Put(sortable.Int(i), i)
			require.NoError(t, err)
		}

		checkRedBlackInvariants(t, tree)

		for i := range 1000 {
			removed, err := tree.Remove(sortable.Int(i))
			require.NoError(t, err)
			require.True(t, removed.NonEmpty())

			if i%97 == 0 {
				checkRedBlackInvariants(t, tree)
			}
		}

		assert.Nil(t, tree.root)
		assert.Equal(t, 0, tree.Size())
	})
}
