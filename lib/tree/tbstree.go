package tree

import "github.com/shunsvineyard/forest/lib/infra"

type threadMode uint8

const (
	rightThreaded threadMode = 1 << iota
	leftThreaded
)

// threadNode replaces absent child links with threads to the in-order
// neighbors. Convention: in a mode with right threading, every node
// without a real right child carries rightThread=true and right set to
// its successor (nil for the maximum); mirrored for left threading. In
// a single-threaded mode the unthreaded side stays a plain nil link.
type threadNode[K infra.OrderedKey, V any] struct {
	parent      *threadNode[K, V]
	left        *threadNode[K, V]
	right       *threadNode[K, V]
	key         K
	val         V
	leftThread  bool
	rightThread bool
}

func (node *threadNode[K, V]) Key() K {
	return node.key
}

func (node *threadNode[K, V]) Val() V {
	return node.val
}

func (node *threadNode[K, V]) Left() BinNode[K, V] {
	if node == nil || node.leftThread || node.left == nil {
		return nil
	}
	return node.left
}

func (node *threadNode[K, V]) Right() BinNode[K, V] {
	if node == nil || node.rightThread || node.right == nil {
		return nil
	}
	return node.right
}

func (node *threadNode[K, V]) Parent() BinNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *threadNode[K, V]) LeftThread() bool {
	return node != nil && node.leftThread
}

func (node *threadNode[K, V]) RightThread() bool {
	return node != nil && node.rightThread
}

func (node *threadNode[K, V]) ThreadLeft() BinNode[K, V] {
	if node == nil || !node.leftThread || node.left == nil {
		return nil
	}
	return node.left
}

func (node *threadNode[K, V]) ThreadRight() BinNode[K, V] {
	if node == nil || !node.rightThread || node.right == nil {
		return nil
	}
	return node.right
}

func (node *threadNode[K, V]) realLeft() *threadNode[K, V] {
	if node == nil || node.leftThread {
		return nil
	}
	return node.left
}

func (node *threadNode[K, V]) realRight() *threadNode[K, V] {
	if node == nil || node.rightThread {
		return nil
	}
	return node.right
}

func (node *threadNode[K, V]) minimum() *threadNode[K, V] {
	aux := node
	for ; aux != nil && aux.realLeft() != nil; aux = aux.realLeft() {
	}
	return aux
}

func (node *threadNode[K, V]) maximum() *threadNode[K, V] {
	aux := node
	for ; aux != nil && aux.realRight() != nil; aux = aux.realRight() {
	}
	return aux
}

// succ resolves the in-order successor, through the thread in O(1)
// when the right slot carries one.
func (node *threadNode[K, V]) succ() *threadNode[K, V] {
	if node == nil {
		return nil
	}
	if r := node.realRight(); r != nil {
		return r.minimum()
	}
	if node.rightThread {
		return node.right
	}
	x, p := node, node.parent
	for p != nil && x == p.realRight() {
		x, p = p, p.parent
	}
	return p
}

func (node *threadNode[K, V]) pred() *threadNode[K, V] {
	if node == nil {
		return nil
	}
	if l := node.realLeft(); l != nil {
		return l.maximum()
	}
	if node.leftThread {
		return node.left
	}
	x, p := node, node.parent
	for p != nil && x == p.realLeft() {
		x, p = p, p.parent
	}
	return p
}

type tbsTree[K infra.OrderedKey, V any] struct {
	root  *threadNode[K, V]
	count int64
	mode  threadMode
}

// NewRightThreadTree creates a BST whose absent right links thread to
// the in-order successor, for stackless in-order and pre-order walks.
func NewRightThreadTree[K infra.OrderedKey, V any]() BinTree[K, V] {
	return &tbsTree[K, V]{mode: rightThreaded}
}

// NewLeftThreadTree creates the mirror variant: absent left links
// thread to the in-order predecessor, for stackless reverse in-order.
func NewLeftThreadTree[K infra.OrderedKey, V any]() BinTree[K, V] {
	return &tbsTree[K, V]{mode: leftThreaded}
}

// NewDoubleThreadTree creates a BST threaded on both sides.
func NewDoubleThreadTree[K infra.OrderedKey, V any]() BinTree[K, V] {
	return &tbsTree[K, V]{mode: rightThreaded | leftThreaded}
}

func (tree *tbsTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *tbsTree[K, V]) Empty() bool {
	return tree.root == nil
}

func (tree *tbsTree[K, V]) Root() BinNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *tbsTree[K, V]) Search(key K) (BinNode[K, V], bool) {
	node := tree.search(key)
	if node == nil {
		return nil, false
	}
	return node, true
}

func (tree *tbsTree[K, V]) search(key K) *threadNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := infra.CompareKey(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			aux = aux.realLeft()
		} else {
			aux = aux.realRight()
		}
	}
	return nil
}

func (tree *tbsTree[K, V]) Insert(key K, val V) {
	if tree.root == nil {
		z := &threadNode[K, V]{key: key, val: val}
		z.leftThread = tree.mode&leftThreaded != 0
		z.rightThread = tree.mode&rightThreaded != 0
		tree.root = z
		tree.count++
		return
	}

	n := tree.root
	for {
		res := infra.CompareKey(key, n.key)
		if res == 0 {
			n.val = val
			return
		} else if res < 0 {
			if l := n.realLeft(); l != nil {
				n = l
				continue
			}
			tree.attachLeft(n, key, val)
			return
		} else {
			if r := n.realRight(); r != nil {
				n = r
				continue
			}
			tree.attachRight(n, key, val)
			return
		}
	}
}

// attachLeft hangs a new leaf on n's empty left slot. The leaf
// inherits n's old predecessor thread and threads back to n, which is
// its successor now.
func (tree *tbsTree[K, V]) attachLeft(n *threadNode[K, V], key K, val V) {
	z := &threadNode[K, V]{key: key, val: val, parent: n}
	if tree.mode&leftThreaded != 0 {
		z.left = n.left
		z.leftThread = true
	}
	if tree.mode&rightThreaded != 0 {
		z.right = n
		z.rightThread = true
	}
	n.left = z
	n.leftThread = false
	tree.count++
}

func (tree *tbsTree[K, V]) attachRight(n *threadNode[K, V], key K, val V) {
	z := &threadNode[K, V]{key: key, val: val, parent: n}
	if tree.mode&rightThreaded != 0 {
		z.right = n.right
		z.rightThread = true
	}
	if tree.mode&leftThreaded != 0 {
		z.left = n
		z.leftThread = true
	}
	n.right = z
	n.rightThread = false
	tree.count++
}

func (tree *tbsTree[K, V]) Remove(key K) error {
	z := tree.search(key)
	if z == nil {
		return infra.WrapErrorStackWithMessage(ErrKeyNotFound, "threaded bst remove")
	}

	y := z
	if z.realLeft() != nil && z.realRight() != nil {
		// Two children: borrow the successor's key and value, then
		// splice the successor out instead. It has no real left child.
		y = z.realRight().minimum()
		z.key, z.val = y.key, y.val
	}

	// The in-order neighbors must be resolved before any link changes:
	// they are the only nodes whose threads may reference y.
	p, s := y.pred(), y.succ()

	c := y.realLeft()
	if c == nil {
		c = y.realRight()
	}
	tree.splice(y, c, p, s)

	if tree.mode&rightThreaded != 0 && p != nil && p.rightThread && p.right == y {
		p.right = s
	}
	if tree.mode&leftThreaded != 0 && s != nil && s.leftThread && s.left == y {
		s.left = p
	}

	y.parent, y.left, y.right = nil, nil, nil
	tree.count--
	return nil
}

// splice detaches y, promoting its only real child c (possibly nil)
// into its slot. An emptied child slot of the parent degrades back
// into a thread: the parent's new neighbor on that side is exactly y's
// old neighbor.
func (tree *tbsTree[K, V]) splice(y, c, p, s *threadNode[K, V]) {
	par := y.parent
	if par == nil {
		tree.root = c
		if c != nil {
			c.parent = nil
		}
		return
	}

	if !par.leftThread && y == par.left {
		switch {
		case c != nil:
			par.left = c
			c.parent = par
		case tree.mode&leftThreaded != 0:
			par.left = p
			par.leftThread = true
		default:
			par.left = nil
		}
	} else {
		switch {
		case c != nil:
			par.right = c
			c.parent = par
		case tree.mode&rightThreaded != 0:
			par.right = s
			par.rightThread = true
		default:
			par.right = nil
		}
	}
}

func (tree *tbsTree[K, V]) Min() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "threaded bst min")
	}
	return tree.root.minimum(), nil
}

func (tree *tbsTree[K, V]) Max() (BinNode[K, V], error) {
	if tree.root == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrEmptyTree, "threaded bst max")
	}
	return tree.root.maximum(), nil
}

func (tree *tbsTree[K, V]) Successor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "threaded bst successor")
	}
	if next := z.succ(); next != nil {
		return next, nil
	}
	return nil, nil
}

func (tree *tbsTree[K, V]) Predecessor(key K) (BinNode[K, V], error) {
	z := tree.search(key)
	if z == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrKeyNotFound, "threaded bst predecessor")
	}
	if prev := z.pred(); prev != nil {
		return prev, nil
	}
	return nil, nil
}

func (tree *tbsTree[K, V]) Height() int64 {
	return heightNode[K, V](tree.Root())
}

func (tree *tbsTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	forEachInOrder[K, V](tree, action)
}

// orderIterator exposes the stackless walks threading pays for. Orders
// the mode cannot serve in O(1) space fall back to the generic engine.
func (tree *tbsTree[K, V]) orderIterator(o Order) (Iterator[K, V], bool) {
	switch o {
	case InOrder:
		if tree.mode&rightThreaded != 0 {
			return &threadForwardIter[K, V]{next: tree.root.minimum()}, true
		}
	case OutOrder:
		if tree.mode&leftThreaded != 0 {
			return &threadBackwardIter[K, V]{next: tree.root.maximum()}, true
		}
	case PreOrder:
		if tree.mode&rightThreaded != 0 {
			return &threadPreOrderIter[K, V]{next: tree.root}, true
		}
	}
	return nil, false
}

type threadForwardIter[K infra.OrderedKey, V any] struct {
	next *threadNode[K, V]
	cur  *threadNode[K, V]
}

func (it *threadForwardIter[K, V]) Next() bool {
	if it.next == nil {
		return false
	}
	it.cur = it.next
	if it.cur.rightThread {
		it.next = it.cur.right
	} else {
		it.next = it.cur.realRight().minimum()
	}
	return true
}

func (it *threadForwardIter[K, V]) Key() K {
	return it.cur.key
}

func (it *threadForwardIter[K, V]) Val() V {
	return it.cur.val
}

type threadBackwardIter[K infra.OrderedKey, V any] struct {
	next *threadNode[K, V]
	cur  *threadNode[K, V]
}

func (it *threadBackwardIter[K, V]) Next() bool {
	if it.next == nil {
		return false
	}
	it.cur = it.next
	if it.cur.leftThread {
		it.next = it.cur.left
	} else {
		it.next = it.cur.realLeft().maximum()
	}
	return true
}

func (it *threadBackwardIter[K, V]) Key() K {
	return it.cur.key
}

func (it *threadBackwardIter[K, V]) Val() V {
	return it.cur.val
}

type threadPreOrderIter[K infra.OrderedKey, V any] struct {
	next *threadNode[K, V]
	cur  *threadNode[K, V]
}

func (it *threadPreOrderIter[K, V]) Next() bool {
	if it.next == nil {
		return false
	}
	it.cur = it.next
	if l := it.cur.realLeft(); l != nil {
		it.next = l
	} else {
		// No left child: ride the successor threads up to the first
		// node owning a real right subtree, then enter it.
		t := it.cur
		for t != nil && t.rightThread {
			t = t.right
		}
		if t == nil {
			it.next = nil
		} else {
			it.next = t.right
		}
	}
	return true
}

func (it *threadPreOrderIter[K, V]) Key() K {
	return it.cur.key
}

func (it *threadPreOrderIter[K, V]) Val() V {
	return it.cur.val
}
