package tree

import "github.com/shunsvineyard/forest/lib/infra"

// avlNode caches the height of its subtree in edges: -1 for an absent
// child, 0 for a leaf.
type avlNode[K infra.OrderedKey, V any] struct {
	parent *avlNode[K, V]
	left   *avlNode[K, V]
	right  *avlNode[K, V]
	key    K
	val    V
	height int64
}

func (node *avlNode[K, V]) Key() K {
	return node.key
}

func (node *avlNode[K, V]) Val() V {
	return node.val
}

func (node *avlNode[K, V]) Left() BinNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *avlNode[K, V]) Right() BinNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *avlNode[K, V]) Parent() BinNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

// Height of the node's subtree as stored, -1 for nil.
func (node *avlNode[K, V]) Height() int64 {
	if node == nil {
		return -1
	}
	return node.height
}

// balance factor: left height minus right height.
func (node *avlNode[K, V]) balance() int64 {
	return node.left.Height() - node.right.Height()
}

func (node *avlNode[K, V]) fixHeight() {
	lh, rh := node.left.Height(), node.right.Height()
	if lh > rh {
		node.height = lh + 1
	} else {
		node.height = rh + 1
	}
}

func (node *avlNode[K, V]) minimum() *avlNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *avlNode[K, V]) maximum() *avlNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

type avlTree[K infra.OrderedKey, V any] struct {
	root  *avlNode[K, V]
	count int64
}

// NewAVLTree creates an empty AVL tree: every node's balance factor
// stays within [-1, 1] across inserts and removals.
func NewAVLTree[K infra.OrderedKey, V any]() BinTree[K, V] {
	return &avlTree[K, V]{}
}

func (tree *avlTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *avlTree[K, V]) Empty() bool {
	return tree.root == nil
}

func (tree *avlTree[K, V]) Root() BinNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *avlTree[K, V]) Search(key K) (BinNode[K, V], bool) {
	node := tree.search(key)
	if node == nil {
		return nil, false
	}
	return node, true
}

func (tree *avlTree[K, V]) search(key K) *avlNode[K, V] {
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

// rotateLeft returns the subtree's new root so the rebalance walk can
// resume from it. Heights of the two rotated nodes are recomputed.
func (tree *avlTree[K, V]) rotateLeft(x *avlNode[K, V]) *avlNode[K, V] {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		tree.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
	x.fixHeight()
	y.fixHeight()
	return y
}

func (tree *avlTree[K, V]) rotateRight(x *avlNode[K, V]) *avlNode[K, V] {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		tree.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.right = x
	x.parent = y
	x.fixHeight()
	y.fixHeight()
	return y
}

// rebalance walks from n up to the root, refreshing heights and
// rotating every unbalanced ancestor it meets. Unlike the red-black
// fixup, the walk never stops at the first balanced ancestor: after a
// removal deeper ancestors can be out of balance too.
func (tree *avlTree[K, V]) rebalance(n *avlNode[K, V]) {
	for ; n != nil; n = n.parent {
		n.fixHeight()
		if bf := n.balance(); bf > 1 {
			if n.left.balance() < 0 {
				// left-right: rotate the child first.
				tree.rotateLeft(n.left)
			}
			n = tree.rotateRight(n)
		} else if bf < -1 {
			if n.right.balance() > 0 {
				// right-left mirror.
				tree.rotateRight(n.right)
			}
			n = tree.rotateLeft(n)
		}
	}
}

func (tree *avlTree[K, V]) Insert(key K, val V) {
	var y *avlNode[K, V]
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

	z := &avlNode[K, V]{key: key, val: val, parent: y}
	switch {
	case y == nil:
		tree.root = z
	case infra.CompareKey(key, y.key) < 0:
		y.left = z
	default:
		y.right = z
	}
	tree.count++
	tree.rebalance(y)
}

func (tree *avlTree[K, V]) transplant(u, v *avlNode[K, V]) {
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

func (tree *avlTree[K, V]) Remove(key K) error {
	z := tree.search(key)
	if z == nil {
		return infra.WrapErrorStackWithMessage(ErrKeyNotFound, "avl remove")
	}

	y := z
	if z.left != nil && z.right != nil {
		y = z.right.minimum()
		z.key, z.val = y.key, y.val
	}

	c := y.left
	if c == nil {
		c = y.right
	}
	start := y.parent
	tree.transplant(y, c)
	y.parent, y.left, y.right = nil, nil, nil
	tree.count--
	tree.rebalance(start)
	return nil
}

func (tree *avlTree[K, V]) Min() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "avl min")
	}
	return tree.root.minimum(), nil
}

func (tree *avlTree[K, V]) Max() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "avl max")
	}
	return tree.root.maximum(), nil
}

func (tree *avlTree[K, V]) Successor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "avl successor")
	}
	return successorOf[K, V](z), nil
}

func (tree *avlTree[K, V]) Predecessor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "avl predecessor")
	}
	return predecessorOf[K, V](z), nil
}

func (tree *avlTree[K, V]) Height() int64 {
	if tree.root == nil {
		return -1
	}
	return tree.root.height
}

func (tree *avlTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	forEachInOrder[K, V](tree, action)
}
