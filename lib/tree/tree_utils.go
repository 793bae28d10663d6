package tree

import "github.com/shunsvineyard/forest/lib/infra"

// Variant-agnostic node walks. They rely on the BinNode accessor
// contract: absent children (threads included) resolve to nil.

func leftmost[K infra.OrderedKey, V any](n BinNode[K, V]) BinNode[K, V] {
	if n == nil {
		return nil
	}
	for n.Left() != nil {
		n = n.Left()
	}
	return n
}

func rightmost[K infra.OrderedKey, V any](n BinNode[K, V]) BinNode[K, V] {
	if n == nil {
		return nil
	}
	for n.Right() != nil {
		n = n.Right()
	}
	return n
}

// successorOf returns the next node in sorted order, nil for the
// maximum: the right subtree's minimum when a right child exists,
// otherwise the first ancestor reached from a left child.
func successorOf[K infra.OrderedKey, V any](n BinNode[K, V]) BinNode[K, V] {
	if n == nil {
		return nil
	}
	if n.Right() != nil {
		return leftmost[K, V](n.Right())
	}
	p := n.Parent()
	for p != nil && n == p.Right() {
		n = p
		p = p.Parent()
	}
	return p
}

// predecessorOf mirrors successorOf.
func predecessorOf[K infra.OrderedKey, V any](n BinNode[K, V]) BinNode[K, V] {
	if n == nil {
		return nil
	}
	if n.Left() != nil {
		return rightmost[K, V](n.Left())
	}
	p := n.Parent()
	for p != nil && n == p.Left() {
		n = p
		p = p.Parent()
	}
	return p
}

// heightNode counts edges on the longest downward path, -1 for nil.
func heightNode[K infra.OrderedKey, V any](n BinNode[K, V]) int64 {
	if n == nil {
		return -1
	}
	lh, rh := heightNode[K, V](n.Left()), heightNode[K, V](n.Right())
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func forEachInOrder[K infra.OrderedKey, V any](t BinTree[K, V], action func(idx int64, key K, val V) bool) {
	it := NewIterator(t, InOrder)
	for idx := int64(0); it.Next(); idx++ {
		if !action(idx, it.Key(), it.Val()) {
			return
		}
	}
}
