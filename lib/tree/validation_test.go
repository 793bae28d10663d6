package tree

import (
	"sort"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestValidateHealthyTrees(t *testing.T) {
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
			require.NoError(t, Validate(tree))
			buildTree(tree, basicKeys)
			require.NoError(t, Validate(tree))
		})
	}
}

func TestValidateWrongVariant(t *testing.T) {
	// The color and height checks only apply to the variants storing
	// that bookkeeping; handing them another variant is an error, not
	// a panic.
	plain := NewBSTree[int, string]()
	buildTree(plain, basicKeys)
	require.Error(t, RedViolationValidate(plain))
	require.Error(t, BlackViolationValidate(plain))
	require.Error(t, AVLViolationValidate(plain))

	avl := NewAVLTree[int, string]()
	buildTree(avl, basicKeys)
	require.Error(t, RedViolationValidate(avl))
	require.NoError(t, AVLViolationValidate(avl))
}

func TestValidateInterleavedWorkload(t *testing.T) {
	builders := map[string]func() BinTree[int, string]{
		"bst":          NewBSTree[int, string],
		"right thread": NewRightThreadTree[int, string],
		"left thread":  NewLeftThreadTree[int, string],
		"double":       NewDoubleThreadTree[int, string],
		"red-black":    func() BinTree[int, string] { return NewRBTree[int, string]() },
		"avl":          NewAVLTree[int, string],
	}
	total := 400
	keys := make([]int, 0, total)
	for i := 0; i < total; i++ {
		keys = append(keys, i)
	}
	keys = lo.Shuffle(keys)

	for name, build := range builders {
		build := build
		t.Run(name, func(t *testing.T) {
			tree := build()
			model := make(map[int]string, total)
			step := 0
			for i, k := range keys {
				if i%3 == 2 {
					victim := keys[i/2]
					if _, ok := model[victim]; ok {
						require.NoError(t, tree.Remove(victim))
						delete(model, victim)
					}
				}
				tree.Insert(k, strconv.Itoa(k))
				model[k] = strconv.Itoa(k)
				if step++; step%37 == 0 {
					require.NoError(t, Validate(tree))
				}
			}
			require.NoError(t, Validate(tree))
			require.Equal(t, int64(len(model)), tree.Len())

			for k, v := range model {
				node, ok := tree.Search(k)
				require.True(t, ok)
				require.Equal(t, v, node.Val())
			}
			want := lo.Keys(model)
			sort.Ints(want)
			require.Equal(t, want, collectKeys(tree, InOrder))
		})
	}
}

func TestValidateDetectsOrderViolation(t *testing.T) {
	tree := NewBSTree[int, string]()
	buildTree(tree, basicKeys)

	// Swap two keys behind the tree's back.
	bst := tree.(*bsTree[int, string])
	bst.root.key, bst.root.left.key = bst.root.left.key, bst.root.key

	err := Validate[int, string](tree)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.Error(t, BSTOrderValidate(tree))
}

func TestValidateDetectsRedViolation(t *testing.T) {
	tree := NewRBTree[int, string]()
	buildTree(tree, basicKeys)

	rbt := tree.(*rbTree[int, string])
	rbt.root.color = Red

	require.Error(t, RedViolationValidate(tree))
	require.ErrorIs(t, Validate[int, string](tree), ErrInvariantViolation)
}

func TestValidateDetectsBlackViolation(t *testing.T) {
	tree := NewRBTree[int, string]()
	buildTree(tree, basicKeys)

	// Darkening one leaf unbalances the black depth on its path.
	rbt := tree.(*rbTree[int, string])
	leaf := rbt.root
	for leaf.left != nil {
		leaf = leaf.left
	}
	if leaf.color == Black {
		leaf.color = Red
	} else {
		leaf.color = Black
	}

	err := Validate[int, string](tree)
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestValidateDetectsHeightViolation(t *testing.T) {
	tree := NewAVLTree[int, string]()
	buildTree(tree, basicKeys)

	avl := tree.(*avlTree[int, string])
	avl.root.height = 42

	require.Error(t, AVLViolationValidate(tree))
	require.ErrorIs(t, Validate[int, string](tree), ErrInvariantViolation)
}

func TestValidateDetectsThreadViolation(t *testing.T) {
	tree := NewRightThreadTree[int, string]()
	buildTree(tree, basicKeys)

	// Break a thread target while keeping the flag.
	tbt := tree.(*tbsTree[int, string])
	n := tbt.root.minimum()
	require.True(t, n.rightThread)
	n.right = nil

	require.Error(t, ThreadViolationValidate(tree))
	require.ErrorIs(t, Validate[int, string](tree), ErrInvariantViolation)
}
