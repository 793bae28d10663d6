package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraversalOrders(t *testing.T) {
	tree := NewBSTree[int, string]()
	buildTree(tree, basicKeys)

	testcases := []struct {
		name   string
		order  Order
		expect []int
	}{
		{"in-order", InOrder, []int{1, 4, 7, 11, 15, 20, 22, 23, 24, 30, 34}},
		{"out-order", OutOrder, []int{34, 30, 24, 23, 22, 20, 15, 11, 7, 4, 1}},
		{"pre-order", PreOrder, []int{23, 4, 1, 11, 7, 20, 15, 22, 30, 24, 34}},
		{"post-order", PostOrder, []int{1, 7, 15, 22, 20, 11, 4, 24, 34, 30, 23}},
		{"level-order", LevelOrder, []int{23, 4, 30, 1, 11, 24, 34, 7, 20, 15, 22}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, collectKeys(tree, tc.order))
		})
	}
}

func TestTraversalAcrossVariants(t *testing.T) {
	builders := map[string]func() BinTree[int, string]{
		"bst":          NewBSTree[int, string],
		"right thread": NewRightThreadTree[int, string],
		"left thread":  NewLeftThreadTree[int, string],
		"double":       NewDoubleThreadTree[int, string],
		"red-black":    func() BinTree[int, string] { return NewRBTree[int, string]() },
		"avl":          NewAVLTree[int, string],
	}
	for name, build := range builders {
		build := build
		t.Run(name, func(t *testing.T) {
			tree := build()
			buildTree(tree, basicKeys)

			require.Equal(t, []int{1, 4, 7, 11, 15, 20, 22, 23, 24, 30, 34}, collectKeys(tree, InOrder))
			require.Equal(t, []int{34, 30, 24, 23, 22, 20, 15, 11, 7, 4, 1}, collectKeys(tree, OutOrder))

			// Shape-dependent orders still visit every key exactly once
			// and start at the root.
			for _, o := range []Order{PreOrder, PostOrder, LevelOrder} {
				keys := collectKeys(tree, o)
				require.Len(t, keys, len(basicKeys))
				require.ElementsMatch(t, basicKeys, keys)
			}
			require.Equal(t, tree.Root().Key(), collectKeys(tree, PreOrder)[0])
			require.Equal(t, tree.Root().Key(), collectKeys(tree, LevelOrder)[0])
		})
	}
}

func TestTraversalEmptyAndSingle(t *testing.T) {
	empty := NewBSTree[int, string]()
	for _, o := range []Order{InOrder, OutOrder, PreOrder, PostOrder, LevelOrder} {
		it := NewIterator(empty, o)
		require.False(t, it.Next())
	}

	single := NewRBTree[int, string]()
	single.Insert(42, "42")
	for _, o := range []Order{InOrder, OutOrder, PreOrder, PostOrder, LevelOrder} {
		it := NewIterator(single, o)
		require.True(t, it.Next())
		require.Equal(t, 42, it.Key())
		require.Equal(t, "42", it.Val())
		require.False(t, it.Next())
	}
}

func TestTraversalLazyConsumption(t *testing.T) {
	tree := NewRightThreadTree[int, string]()
	buildTree(tree, basicKeys)

	// A partially consumed iterator can simply be dropped.
	it := NewIterator(tree, InOrder)
	require.True(t, it.Next())
	require.Equal(t, 1, it.Key())
	require.True(t, it.Next())
	require.Equal(t, 4, it.Key())

	// A fresh iterator starts over.
	it = NewIterator(tree, InOrder)
	require.True(t, it.Next())
	require.Equal(t, 1, it.Key())
}

func TestForeachEarlyStop(t *testing.T) {
	tree := NewAVLTree[int, string]()
	buildTree(tree, basicKeys)

	var visited []int
	tree.Foreach(func(idx int64, key int, val string) bool {
		require.Equal(t, int64(len(visited)), idx)
		visited = append(visited, key)
		return key < 15
	})
	require.Equal(t, []int{1, 4, 7, 11, 15}, visited)
}
