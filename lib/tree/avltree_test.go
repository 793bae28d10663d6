package tree

import (
	"sort"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestAVLTreeBasicOperations(t *testing.T) {
	tree := NewAVLTree[int, string]()
	buildTree(tree, basicKeys)

	require.Equal(t, int64(len(basicKeys)), tree.Len())
	require.NoError(t, BSTOrderValidate(tree))
	require.NoError(t, AVLViolationValidate(tree))
	require.Equal(t, []int{1, 4, 7, 11, 15, 20, 22, 23, 24, 30, 34}, collectKeys(tree, InOrder))

	node, ok := tree.Search(15)
	require.True(t, ok)
	require.Equal(t, "15", node.Val())

	minNode, err := tree.Min()
	require.NoError(t, err)
	require.Equal(t, 1, minNode.Key())
	maxNode, err := tree.Max()
	require.NoError(t, err)
	require.Equal(t, 34, maxNode.Key())

	// 11 nodes never exceed height 4 under the balance bound.
	require.LessOrEqual(t, tree.Height(), int64(4))
}

func TestAVLTreeRotations(t *testing.T) {
	testcases := []struct {
		name string
		keys []int
	}{
		{"left-left", []int{30, 20, 10}},
		{"right-right", []int{10, 20, 30}},
		{"left-right", []int{30, 10, 20}},
		{"right-left", []int{10, 30, 20}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tree := NewAVLTree[int, string]()
			buildTree(tree, tc.keys)
			require.Equal(t, int64(1), tree.Height())
			require.Equal(t, 20, tree.Root().Key())
			require.NoError(t, AVLViolationValidate(tree))
		})
	}
}

func TestAVLTreeSequentialInsert(t *testing.T) {
	tree := NewAVLTree[uint64, uint64]()
	total := uint64(512)
	for i := uint64(0); i < total; i++ {
		tree.Insert(i, i)
		require.NoError(t, AVLViolationValidate(tree))
	}
	require.NoError(t, BSTOrderValidate(tree))
	// 512 nodes in sorted order settle into a near-complete shape.
	require.LessOrEqual(t, tree.Height(), int64(10))

	tree.Foreach(func(idx int64, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
}

func TestAVLTreeRemove(t *testing.T) {
	tree := NewAVLTree[int, string]()
	buildTree(tree, basicKeys)

	for _, k := range []int{15, 20, 7, 23} {
		require.NoError(t, tree.Remove(k))
		require.NoError(t, AVLViolationValidate(tree))
		require.NoError(t, BSTOrderValidate(tree))
	}
	require.Equal(t, []int{1, 4, 11, 22, 24, 30, 34}, collectKeys(tree, InOrder))

	err := tree.Remove(99)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Equal(t, int64(7), tree.Len())

	for _, k := range []int{1, 4, 11, 22, 24, 30, 34} {
		require.NoError(t, tree.Remove(k))
		require.NoError(t, AVLViolationValidate(tree))
	}
	require.True(t, tree.Empty())
	require.Equal(t, int64(-1), tree.Height())
}

func TestAVLTreeRandomWorkload(t *testing.T) {
	total := 1000
	keys := make([]int, 0, total)
	for i := 0; i < total; i++ {
		keys = append(keys, i)
	}
	keys = lo.Shuffle(keys)

	tree := NewAVLTree[int, string]()
	for i, k := range keys {
		tree.Insert(k, strconv.Itoa(k))
		if i%101 == 0 {
			require.NoError(t, AVLViolationValidate(tree))
		}
	}
	require.NoError(t, AVLViolationValidate(tree))
	require.NoError(t, BSTOrderValidate(tree))

	for i, k := range keys[:total/2] {
		require.NoError(t, tree.Remove(k))
		if i%101 == 0 {
			require.NoError(t, AVLViolationValidate(tree))
		}
	}
	require.NoError(t, AVLViolationValidate(tree))

	remaining := append([]int(nil), keys[total/2:]...)
	sort.Ints(remaining)
	require.Equal(t, remaining, collectKeys(tree, InOrder))
}

func TestAVLTreeEmptyAndOverwrite(t *testing.T) {
	tree := NewAVLTree[int, string]()

	_, err := tree.Min()
	require.ErrorIs(t, err, ErrEmptyTree)
	require.ErrorIs(t, tree.Remove(1), ErrKeyNotFound)

	tree.Insert(5, "5")
	tree.Insert(5, "five")
	require.Equal(t, int64(1), tree.Len())
	node, _ := tree.Search(5)
	require.Equal(t, "five", node.Val())
}
