package tree

import "errors"

var (
	// ErrKeyNotFound reports a remove, successor or predecessor call
	// with a key the tree does not hold. The tree is left unchanged.
	ErrKeyNotFound = errors.New("[tree] key not found")
	// ErrEmptyTree reports a min/max query on an empty tree.
	ErrEmptyTree = errors.New("[tree] empty tree")
	// ErrInvariantViolation reports a corrupted structural invariant
	// detected by the validators. It is never expected from correct
	// use; a tree that produced it can no longer be trusted.
	ErrInvariantViolation = errors.New("[tree] invariant violation")
)
