package tree

import "github.com/shunsvineyard/forest/lib/infra"

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
//
// Maintained properties:
// p1. Every node is either red or black; nil children count as black.
// p2. A red node does not have a red child. (red-violation)
// p3. Every path from a node down to any of its nil descendants goes
//     through the same number of black nodes. (black-violation)
// p4. The root is black.

type rbNode[K infra.OrderedKey, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) Left() BinNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Right() BinNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) Parent() BinNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

// Color of the node, black for nil leaves.
func (node *rbNode[K, V]) Color() RBColor {
	if node == nil {
		return Black
	}
	return node.color
}

func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) direction() Direction {
	if node.parent == nil {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

type rbTree[K infra.OrderedKey, V any] struct {
	root       *rbNode[K, V]
	count      int64
	borrowPred bool
}

// RBTreeOpt adjusts a red-black tree on construction.
type RBTreeOpt[K infra.OrderedKey, V any] func(*rbTree[K, V])

// WithRBRemoveBorrowPred makes two-child removal borrow the in-order
// predecessor instead of the successor.
func WithRBRemoveBorrowPred[K infra.OrderedKey, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.borrowPred = true
	}
}

// NewRBTree creates an empty red-black tree.
func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) BinTree[K, V] {
	tree := &rbTree[K, V]{}
	for _, o := range opts {
		o(tree)
	}
	return tree
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) Empty() bool {
	return tree.root == nil
}

func (tree *rbTree[K, V]) Root() BinNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *rbTree[K, V]) Search(key K) (BinNode[K, V], bool) {
	node := tree.search(key)
	if node == nil {
		return nil, false
	}
	return node, true
}

func (tree *rbTree[K, V]) search(key K) *rbNode[K, V] {
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

/*
	 |                         |
	 X                         Y
	/ \     rotateLeft(X)     / \
   a   Y    ============>    X   c
	  / \                   / \
	 b   c                 a   b

O(1) link rewrites over the three nodes involved plus the reattachment
of the rotated pair under X's old parent.
*/
func (tree *rbTree[K, V]) rotateLeft(x *rbNode[K, V]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch x.direction() {
	case Root:
		tree.root = y
	case Left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (tree *rbTree[K, V]) rotateRight(x *rbNode[K, V]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch x.direction() {
	case Root:
		tree.root = y
	case Left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.right = x
	x.parent = y
}

func (tree *rbTree[K, V]) Insert(key K, val V) {
	var y *rbNode[K, V]
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

	z := &rbNode[K, V]{key: key, val: val, parent: y, color: Red}
	switch {
	case y == nil:
		tree.root = z
	case infra.CompareKey(key, y.key) < 0:
		y.left = z
	default:
		y.right = z
	}
	tree.count++
	tree.insertFixup(z)
}

/*
New node Z starts red, so only p2 can break, and only while Z's parent
P is red. Per side, three cases:

i1. Uncle U is red: repaint P and U black, grandpa G red, recurse on G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<Z>             <Z>

i2. U is black and Z is the inner child: rotate P outward to fall into
the outer case with P and Z swapped.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <Z> [U]
	  \                 /
	  <Z>             <P>

i3. U is black and Z is the outer child: repaint P black, G red, rotate
G toward U; the subtree's black depth is restored and the loop ends.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <Z> <G>
	  /                         \
	<Z>                         [U]
*/
func (tree *rbTree[K, V]) insertFixup(z *rbNode[K, V]) {
	for z.parent.isRed() {
		// A red parent is never the root, the grandparent exists.
		gp := z.parent.parent
		if z.parent == gp.left {
			uncle := gp.right
			if uncle.isRed() {
				z.parent.color = Black
				uncle.color = Black
				gp.color = Red
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				tree.rotateLeft(z)
			}
			z.parent.color = Black
			gp.color = Red
			tree.rotateRight(gp)
		} else {
			uncle := gp.left
			if uncle.isRed() {
				z.parent.color = Black
				uncle.color = Black
				gp.color = Red
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				tree.rotateRight(z)
			}
			z.parent.color = Black
			gp.color = Red
			tree.rotateLeft(gp)
		}
	}
	tree.root.color = Black
}

// transplant as in the plain BST; v may be nil, so the parent of the
// vacated slot is tracked by the caller for the fixup walk.
func (tree *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
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

func (tree *rbTree[K, V]) Remove(key K) error {
	z := tree.search(key)
	if z == nil {
		return infra.WrapErrorStackWithMessage(ErrKeyNotFound, "rbtree remove")
	}
	tree.removeNode(z)
	tree.count--
	return nil
}

func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) {
	y := z
	if z.left != nil && z.right != nil {
		// Two children: borrow the key and value of an in-order
		// neighbor and splice that neighbor out instead. It has at
		// most one (right resp. left) child.
		if tree.borrowPred {
			y = z.left.maximum()
		} else {
			y = z.right.minimum()
		}
		z.key, z.val = y.key, y.val
	}

	c := y.left
	if c == nil {
		c = y.right
	}
	yColor := y.color
	yParent := y.parent
	tree.transplant(y, c)
	y.parent, y.left, y.right = nil, nil, nil

	// Splicing out a black node drops one black from every path
	// through its slot; c inherits the deficiency as a "double black".
	if yColor == Black {
		tree.removeFixup(c, yParent)
	}
}

/*
X is the doubly-black slot (possibly a nil child, hence the explicit
parent P). Its sibling S must exist. Four cases per side:

d1. S is red: P, Sc, Sd are black. Rotate P toward X and swap the
colors of P and S to reduce to a black-sibling case.

	  [P]                   <S>               [S]
	  / \    rotate(P)      / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ====>  <P> [Sd]
	    / \               / \              / \
	 [Sc] [Sd]          [X] [Sc]         [X] [Sc]

d2. S black with two black children: repaint S red. If P is red,
swapping the deficit into P terminates; otherwise P becomes the new
double black and the walk continues upward.

d3. S black, near nephew red, far nephew black: rotate S away from X
and repaint to make the far nephew red, falling into d4.

d4. S black, far nephew red: rotate P toward X, S takes P's color,
P and the far nephew turn black. The deficit is absorbed, done.
*/
func (tree *rbTree[K, V]) removeFixup(x *rbNode[K, V], parent *rbNode[K, V]) {
	for x != tree.root && x.isBlack() {
		if parent == nil {
			break
		}
		if x == parent.left {
			s := parent.right
			if s.isRed() /* d1 */ {
				s.color = Black
				parent.color = Red
				tree.rotateLeft(parent)
				s = parent.right
			}
			if s.left.isBlack() && s.right.isBlack() /* d2 */ {
				s.color = Red
				x = parent
				parent = x.parent
				continue
			}
			if s.right.isBlack() /* d3 */ {
				s.left.color = Black
				s.color = Red
				tree.rotateRight(s)
				s = parent.right
			}
			/* d4 */
			s.color = parent.color
			parent.color = Black
			s.right.color = Black
			tree.rotateLeft(parent)
			x = tree.root
			parent = nil
		} else {
			s := parent.left
			if s.isRed() /* d1 */ {
				s.color = Black
				parent.color = Red
				tree.rotateRight(parent)
				s = parent.left
			}
			if s.left.isBlack() && s.right.isBlack() /* d2 */ {
				s.color = Red
				x = parent
				parent = x.parent
				continue
			}
			if s.left.isBlack() /* d3 */ {
				s.right.color = Black
				s.color = Red
				tree.rotateLeft(s)
				s = parent.left
			}
			/* d4 */
			s.color = parent.color
			parent.color = Black
			s.left.color = Black
			tree.rotateRight(parent)
			x = tree.root
			parent = nil
		}
	}
	if x != nil {
		x.color = Black
	}
}

func (tree *rbTree[K, V]) Min() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "rbtree min")
	}
	return tree.root.minimum(), nil
}

func (tree *rbTree[K, V]) Max() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "rbtree max")
	}
	return tree.root.maximum(), nil
}

func (tree *rbTree[K, V]) Successor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "rbtree successor")
	}
	return successorOf[K, V](z), nil
}

func (tree *rbTree[K, V]) Predecessor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "rbtree predecessor")
	}
	return predecessorOf[K, V](z), nil
}

func (tree *rbTree[K, V]) Height() int64 {
	return heightNode[K, V](tree.Root())
}

func (tree *rbTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	forEachInOrder[K, V](tree, action)
}
