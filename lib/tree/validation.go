package tree

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/shunsvineyard/forest/lib/infra"
)

// Structural rule validation, used by the tests after every mutation
// and available to callers as a defensive check. A failed check means
// the tree can no longer be trusted.

// BSTOrderValidate checks the search tree property through an in-order
// walk: keys must come out strictly ascending.
func BSTOrderValidate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	it := NewIterator(t, InOrder)
	first := true
	var prev K
	var n int64
	for it.Next() {
		if !first && infra.CompareKey(prev, it.Key()) >= 0 {
			return fmt.Errorf("bst order violation: %v before %v", prev, it.Key())
		}
		prev = it.Key()
		first = false
		n++
	}
	if n != t.Len() {
		return fmt.Errorf("bst size violation: walked %d of %d nodes", n, t.Len())
	}
	return nil
}

type coloredNode interface {
	Color() RBColor
}

func nodeColor[K infra.OrderedKey, V any](n BinNode[K, V]) RBColor {
	if n == nil {
		return Black
	}
	return n.(coloredNode).Color()
}

// RedViolationValidate checks that the root is black and that no red
// node has a red child.
func RedViolationValidate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	root := t.Root()
	if root == nil {
		return nil
	}
	if _, ok := root.(coloredNode); !ok {
		return fmt.Errorf("rbtree validation: %T carries no node colors", t)
	}
	if nodeColor(root) != Black {
		return errors.New("rbtree red violation: red root")
	}

	stack := []BinNode[K, V]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l, r := aux.Left(), aux.Right()
		if nodeColor(aux) == Red && (nodeColor(l) == Red || nodeColor(r) == Red) {
			return errors.New("rbtree red violation: red node with red child")
		}
		if l != nil {
			stack = append(stack, l)
		}
		if r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

func blackDepthTo[K infra.OrderedKey, V any](target, to BinNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if nodeColor(aux) == Black {
			depth++
		}
	}
	return depth
}

// BlackViolationValidate checks that every path from the root to a nil
// child position crosses the same number of black nodes. Any node with
// at least one nil child sits at the bottom of such a path.
func BlackViolationValidate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	root := t.Root()
	if root == nil {
		return nil
	}
	if _, ok := root.(coloredNode); !ok {
		return fmt.Errorf("rbtree validation: %T carries no node colors", t)
	}

	all := make([]BinNode[K, V], 0, t.Len())
	queue := []BinNode[K, V]{root}
	for len(queue) > 0 {
		aux := queue[0]
		queue = queue[1:]
		all = append(all, aux)
		if l := aux.Left(); l != nil {
			queue = append(queue, l)
		}
		if r := aux.Right(); r != nil {
			queue = append(queue, r)
		}
	}
	leaves := lo.Filter(all, func(n BinNode[K, V], _ int) bool {
		return n.Left() == nil || n.Right() == nil
	})

	blackDepth := blackDepthTo[K, V](leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], root) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

type heightedNode interface {
	Height() int64
}

func nodeHeight[K infra.OrderedKey, V any](n BinNode[K, V]) int64 {
	if n == nil {
		return -1
	}
	return n.(heightedNode).Height()
}

// AVLViolationValidate checks that every stored height matches its
// children and that no balance factor leaves [-1, 1].
func AVLViolationValidate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	root := t.Root()
	if root == nil {
		return nil
	}
	if _, ok := root.(heightedNode); !ok {
		return fmt.Errorf("avl validation: %T carries no node heights", t)
	}

	stack := []BinNode[K, V]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l, r := aux.Left(), aux.Right()
		lh, rh := nodeHeight(l), nodeHeight(r)
		want := max(lh, rh) + 1
		if nodeHeight[K, V](aux) != want {
			return fmt.Errorf("avl height violation at key %v: stored %d, want %d",
				aux.Key(), nodeHeight[K, V](aux), want)
		}
		if bf := lh - rh; bf < -1 || bf > 1 {
			return fmt.Errorf("avl balance violation at key %v: factor %d", aux.Key(), bf)
		}
		if l != nil {
			stack = append(stack, l)
		}
		if r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

// ThreadViolationValidate checks that every child slot holds exactly
// one of a real child or a thread, and that each thread resolves to
// the exact in-order neighbor under the current shape. Trees without
// threads pass vacuously.
func ThreadViolationValidate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	tr, ok := t.(*tbsTree[K, V])
	if !ok || tr.root == nil {
		return nil
	}

	// Structural in-order walk, threads excluded by realLeft/realRight.
	seq := make([]*threadNode[K, V], 0, tr.count)
	var stack []*threadNode[K, V]
	for aux := tr.root; aux != nil; aux = aux.realLeft() {
		stack = append(stack, aux)
	}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seq = append(seq, aux)
		for next := aux.realRight(); next != nil; next = next.realLeft() {
			stack = append(stack, next)
		}
	}

	for i, node := range seq {
		if tr.mode&rightThreaded != 0 && node.realRight() == nil {
			var want *threadNode[K, V]
			if i+1 < len(seq) {
				want = seq[i+1]
			}
			if !node.rightThread || node.right != want {
				return fmt.Errorf("thread violation at key %v: bad successor thread", node.key)
			}
		}
		if tr.mode&leftThreaded != 0 && node.realLeft() == nil {
			var want *threadNode[K, V]
			if i > 0 {
				want = seq[i-1]
			}
			if !node.leftThread || node.left != want {
				return fmt.Errorf("thread violation at key %v: bad predecessor thread", node.key)
			}
		}
	}
	return nil
}

// Validate runs every check the variant is subject to and reports the
// combined findings under ErrInvariantViolation.
func Validate[K infra.OrderedKey, V any](t BinTree[K, V]) error {
	merr := BSTOrderValidate(t)
	switch t.(type) {
	case *rbTree[K, V]:
		merr = multierr.Combine(merr, RedViolationValidate(t), BlackViolationValidate(t))
	case *avlTree[K, V]:
		merr = multierr.Combine(merr, AVLViolationValidate(t))
	case *tbsTree[K, V]:
		merr = multierr.Combine(merr, ThreadViolationValidate(t))
	}
	if merr != nil {
		return multierr.Append(ErrInvariantViolation, merr)
	}
	return nil
}
