package tree

import "github.com/shunsvineyard/forest/lib/infra"

//go:generate stringer -type=Order
type Order uint8

const (
	// InOrder visits left subtree, node, right subtree: ascending keys.
	InOrder Order = iota
	// OutOrder is the reverse: right subtree, node, left subtree.
	OutOrder
	// PreOrder visits the node before both subtrees.
	PreOrder
	// PostOrder visits the node after both subtrees.
	PostOrder
	// LevelOrder visits level by level, left to right, from the root.
	LevelOrder
)

// Iterator is a lazy, forward-only, non-restartable cursor over (key,
// value) pairs. Key and Val are valid after Next reported true.
// Mutating the source tree before the cursor is exhausted is undefined
// behavior; abandoning a cursor needs no cleanup.
type Iterator[K infra.OrderedKey, V any] interface {
	Next() bool
	Key() K
	Val() V
}

// orderIterable is the capability hook a variant implements when its
// structure can serve an order in O(1) extra space.
type orderIterable[K infra.OrderedKey, V any] interface {
	orderIterator(o Order) (Iterator[K, V], bool)
}

// NewIterator starts a traversal of t in the given order, dispatching
// to the variant's own stackless walk when it has one and falling back
// to an explicit stack or queue otherwise. The cursor owns its stack,
// so tree depth never presses on the call stack.
func NewIterator[K infra.OrderedKey, V any](t BinTree[K, V], o Order) Iterator[K, V] {
	if fast, ok := t.(orderIterable[K, V]); ok {
		if it, ok := fast.orderIterator(o); ok {
			return it
		}
	}

	root := t.Root()
	switch o {
	case OutOrder:
		it := &outOrderIter[K, V]{}
		it.pushRightSpine(root)
		return it
	case PreOrder:
		it := &preOrderIter[K, V]{}
		if root != nil {
			it.stack = append(it.stack, root)
		}
		return it
	case PostOrder:
		it := &postOrderIter[K, V]{}
		it.pushLeftSpine(root)
		return it
	case LevelOrder:
		it := &levelOrderIter[K, V]{}
		if root != nil {
			it.queue = append(it.queue, root)
		}
		return it
	default:
		it := &inOrderIter[K, V]{}
		it.pushLeftSpine(root)
		return it
	}
}

type inOrderIter[K infra.OrderedKey, V any] struct {
	stack []BinNode[K, V]
	cur   BinNode[K, V]
}

func (it *inOrderIter[K, V]) pushLeftSpine(n BinNode[K, V]) {
	for ; n != nil; n = n.Left() {
		it.stack = append(it.stack, n)
	}
}

func (it *inOrderIter[K, V]) Next() bool {
	size := len(it.stack)
	if size == 0 {
		return false
	}
	it.cur = it.stack[size-1]
	it.stack = it.stack[:size-1]
	it.pushLeftSpine(it.cur.Right())
	return true
}

func (it *inOrderIter[K, V]) Key() K {
	return it.cur.Key()
}

func (it *inOrderIter[K, V]) Val() V {
	return it.cur.Val()
}

type outOrderIter[K infra.OrderedKey, V any] struct {
	stack []BinNode[K, V]
	cur   BinNode[K, V]
}

func (it *outOrderIter[K, V]) pushRightSpine(n BinNode[K, V]) {
	for ; n != nil; n = n.Right() {
		it.stack = append(it.stack, n)
	}
}

func (it *outOrderIter[K, V]) Next() bool {
	size := len(it.stack)
	if size == 0 {
		return false
	}
	it.cur = it.stack[size-1]
	it.stack = it.stack[:size-1]
	it.pushRightSpine(it.cur.Left())
	return true
}

func (it *outOrderIter[K, V]) Key() K {
	return it.cur.Key()
}

func (it *outOrderIter[K, V]) Val() V {
	return it.cur.Val()
}

type preOrderIter[K infra.OrderedKey, V any] struct {
	stack []BinNode[K, V]
	cur   BinNode[K, V]
}

func (it *preOrderIter[K, V]) Next() bool {
	size := len(it.stack)
	if size == 0 {
		return false
	}
	it.cur = it.stack[size-1]
	it.stack = it.stack[:size-1]
	// LIFO, the right child goes under the left one.
	if r := it.cur.Right(); r != nil {
		it.stack = append(it.stack, r)
	}
	if l := it.cur.Left(); l != nil {
		it.stack = append(it.stack, l)
	}
	return true
}

func (it *preOrderIter[K, V]) Key() K {
	return it.cur.Key()
}

func (it *preOrderIter[K, V]) Val() V {
	return it.cur.Val()
}

// postOrderIter keeps the path to the next emitted node on its stack;
// a node is emitted once its right subtree is exhausted, which the
// last emitted node tells apart from first entry.
type postOrderIter[K infra.OrderedKey, V any] struct {
	stack []BinNode[K, V]
	last  BinNode[K, V]
	cur   BinNode[K, V]
}

func (it *postOrderIter[K, V]) pushLeftSpine(n BinNode[K, V]) {
	for ; n != nil; n = n.Left() {
		it.stack = append(it.stack, n)
	}
}

func (it *postOrderIter[K, V]) Next() bool {
	for {
		size := len(it.stack)
		if size == 0 {
			return false
		}
		top := it.stack[size-1]
		if r := top.Right(); r != nil && it.last != r {
			it.pushLeftSpine(r)
			continue
		}
		it.stack = it.stack[:size-1]
		it.last = top
		it.cur = top
		return true
	}
}

func (it *postOrderIter[K, V]) Key() K {
	return it.cur.Key()
}

func (it *postOrderIter[K, V]) Val() V {
	return it.cur.Val()
}

type levelOrderIter[K infra.OrderedKey, V any] struct {
	queue []BinNode[K, V]
	cur   BinNode[K, V]
}

func (it *levelOrderIter[K, V]) Next() bool {
	if len(it.queue) == 0 {
		return false
	}
	it.cur = it.queue[0]
	it.queue = it.queue[1:]
	if l := it.cur.Left(); l != nil {
		it.queue = append(it.queue, l)
	}
	if r := it.cur.Right(); r != nil {
		it.queue = append(it.queue, r)
	}
	return true
}

func (it *levelOrderIter[K, V]) Key() K {
	return it.cur.Key()
}

func (it *levelOrderIter[K, V]) Val() V {
	return it.cur.Val()
}
