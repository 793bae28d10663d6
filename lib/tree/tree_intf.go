// Package tree provides a family of ordered, in-memory binary search
// trees: a plain BST, right/left/double threaded variants, a red-black
// tree and an AVL tree, all sharing one key-value contract and one
// traversal engine.
//
// Note: an individual tree is not safe for concurrent mutation. Either
// confine a tree to a single goroutine or serialize access externally.
// Mutating a tree while one of its iterators is still being consumed
// invalidates the iterator.
package tree

import "github.com/shunsvineyard/forest/lib/infra"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=Direction
type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

// BinNode is the read-only view of a stored node. Left and Right
// resolve to real children only; a threaded variant's thread links are
// never reachable through them.
type BinNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Left() BinNode[K, V]
	Right() BinNode[K, V]
	Parent() BinNode[K, V]
}

// ThreadNode extends BinNode for threaded variants. A thread occupies
// an otherwise absent child slot and points at the node's in-order
// neighbor; the flag tells the two apart.
type ThreadNode[K infra.OrderedKey, V any] interface {
	BinNode[K, V]
	// LeftThread reports whether the left slot holds a predecessor
	// thread instead of a child.
	LeftThread() bool
	// RightThread reports whether the right slot holds a successor
	// thread instead of a child.
	RightThread() bool
	// ThreadLeft resolves the predecessor thread, nil when the slot
	// holds a real child or the node is the minimum.
	ThreadLeft() BinNode[K, V]
	// ThreadRight resolves the successor thread, nil when the slot
	// holds a real child or the node is the maximum.
	ThreadRight() BinNode[K, V]
}

// BinTree is the shared contract of every variant. Mutating calls
// either complete with the variant's invariants restored or fail
// before any structural change.
type BinTree[K infra.OrderedKey, V any] interface {
	Len() int64
	Empty() bool
	Root() BinNode[K, V]
	// Search descends by key comparison in O(h) without mutation.
	Search(key K) (BinNode[K, V], bool)
	// Insert attaches a new leaf, or overwrites the value in place
	// when the key is already present.
	Insert(key K, val V)
	// Remove deletes the node holding key, ErrKeyNotFound when absent.
	Remove(key K) error
	// Min and Max fail with ErrEmptyTree on an empty tree.
	Min() (BinNode[K, V], error)
	Max() (BinNode[K, V], error)
	// Successor and Predecessor locate key first (ErrKeyNotFound when
	// absent) and return (nil, nil) past the respective end.
	Successor(key K) (BinNode[K, V], error)
	Predecessor(key K) (BinNode[K, V], error)
	// Height is the longest root-to-leaf edge count, -1 when empty.
	Height() int64
	// Foreach visits (key, val) pairs in ascending key order until the
	// action returns false.
	Foreach(action func(idx int64, key K, val V) bool)
}
