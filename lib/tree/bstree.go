package tree

import "github.com/shunsvineyard/forest/lib/infra"

type bsNode[K infra.OrderedKey, V any] struct {
	parent *bsNode[K, V]
	left   *bsNode[K, V]
	right  *bsNode[K, V]
	key    K
	val    V
}

func (node *bsNode[K, V]) Key() K {
	return node.key
}

func (node *bsNode[K, V]) Val() V {
	return node.val
}

func (node *bsNode[K, V]) Left() BinNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bsNode[K, V]) Right() BinNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *bsNode[K, V]) Parent() BinNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *bsNode[K, V]) minimum() *bsNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

// An unbalanced binary search tree. Worst case operations degrade to
// O(n) on sorted input; the red-black and AVL variants exist for that.
type bsTree[K infra.OrderedKey, V any] struct {
	root  *bsNode[K, V]
	count int64
}

// NewBSTree creates an empty, unbalanced binary search tree.
func NewBSTree[K infra.OrderedKey, V any]() BinTree[K, V] {
	return &bsTree[K, V]{}
}

func (tree *bsTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *bsTree[K, V]) Empty() bool {
	return tree.root == nil
}

func (tree *bsTree[K, V]) Root() BinNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *bsTree[K, V]) Search(key K) (BinNode[K, V], bool) {
	node := tree.search(key)
	if node == nil {
		return nil, false
	}
	return node, true
}

func (tree *bsTree[K, V]) search(key K) *bsNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := infra.CompareKey(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

func (tree *bsTree[K, V]) Insert(key K, val V) {
	var y *bsNode[K, V]
	x := tree.root
	for x != nil {
		y = x
		res := infra.CompareKey(key, x.key)
		if res == 0 {
			x.val = val
			return
		} else if res < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}

	z := &bsNode[K, V]{key: key, val: val, parent: y}
	switch {
	case y == nil:
		tree.root = z
	case infra.CompareKey(key, y.key) < 0:
		y.left = z
	default:
		y.right = z
	}
	tree.count++
}

// transplant replaces the subtree rooted at u with the one rooted at
// v, updating v's parent back-reference. u's own links are untouched.
func (tree *bsTree[K, V]) transplant(u, v *bsNode[K, V]) {
	switch {
	case u.parent == nil:
		tree.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func (tree *bsTree[K, V]) Remove(key K) error {
	z := tree.search(key)
	if z == nil {
		return infra.WrapErrorStackWithMessage(ErrKeyNotFound, "bst remove")
	}

	switch {
	case z.left == nil:
		tree.transplant(z, z.right)
	case z.right == nil:
		tree.transplant(z, z.left)
	default:
		// Two children: take over the in-order successor's key and
		// value, then splice the successor out. It has no left child.
		y := z.right.minimum()
		z.key, z.val = y.key, y.val
		tree.transplant(y, y.right)
	}
	tree.count--
	return nil
}

func (tree *bsTree[K, V]) Min() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "bst min")
	}
	return leftmost[K, V](tree.root), nil
}

func (tree *bsTree[K, V]) Max() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "bst max")
	}
	return rightmost[K, V](tree.root), nil
}

func (tree *bsTree[K, V]) Successor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "bst successor")
	}
	return successorOf[K, V](z), nil
}

func (tree *bsTree[K, V]) Predecessor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "bst predecessor")
	}
	return predecessorOf[K, V](z), nil
}

func (tree *bsTree[K, V]) Height() int64 {
	return heightNode[K, V](tree.Root())
}

func (tree *bsTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	forEachInOrder[K, V](tree, action)
}
