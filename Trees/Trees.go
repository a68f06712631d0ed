package Trees

import (
	"errors"
	"fmt"
	"iter"

	"github.com/emirpasic/gods/containers"
)

// Tree represents an ordered set of int keys stored in a binary tree.
// Receivers that have a bool as the second return value indicate whether
// the first return value is defined. For example, LowestCommonAncestor on
// keys that aren't in the tree returns (x, false), and x should not be used.
// Methods implemented recursively are noted, otherwise they are iterative.
// Besides the methods below, a Tree is a gods container:
// Empty, Size, Clear, Values and String.
type Tree interface {
	containers.Container
	//Insert key to the Tree. Returning true if successful, false if key was
	//already there, in which case the Tree is unchanged.
	Insert(key int) bool
	//Remove key from the Tree. Returning true if key was there.
	Remove(key int) bool
	//Has key.
	Has(key int) bool
	//Minimum key of the tree. Fails with *EmptyTreeError on an empty tree.
	Minimum() (int, error)
	//Maximum key of the tree. Fails with *EmptyTreeError on an empty tree.
	Maximum() (int, error)
	//Predecessor returns the greatest key less than key.
	Predecessor(key int) (int, bool)
	//Successor returns the smallest key greater than key.
	Successor(key int) (int, bool)
	//Height is the number of nodes on the longest root to leaf path. 0 for an empty tree.
	Height() int
	//LowestCommonAncestor of a and b, the deepest key whose subtree holds both.
	//A key is its own ancestor. Defined only when both a and b are present.
	LowestCommonAncestor(a, b int) (int, bool)
	//Prune removes every key outside of [min,max].
	Prune(min, max int)
	//Walk returns A closure function f acting like an iterator. f
	//gives keys in the order o.
	//Calling f is like calling "Next()" of iterators: key, valid=f()
	//key is meaningful only if valid is true. When valid==false,
	//then f is exhausted. valid can't turn true after it first became false.
	//The tree should not be modified during the iteration of f; if it is,
	//the keys f gives are unspecified, but f doesn't panic.
	Walk(o Order) func() (int, bool)
	//All is Walk as a range-over-func iterator.
	All(o Order) iter.Seq[int]
	//Valid reports whether every key sits strictly between the bounds implied by its ancestors.
	Valid() bool
	//Corrupt is !Valid.
	Corrupt() bool
}

// NotFound is what LCA returns when either key is missing.
const NotFound = -1

// ErrEmptyTree matches every *EmptyTreeError under errors.Is.
var ErrEmptyTree = errors.New("tree is empty")

// EmptyTreeError is returned by operations that need at least one key.
type EmptyTreeError struct {
	Op string
}

func (e *EmptyTreeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrEmptyTree)
}

func (e *EmptyTreeError) Is(target error) bool {
	return target == ErrEmptyTree
}

// InvalidSliceError reports the first position in the input to From where the
// keys aren't strictly ascending.
type InvalidSliceError struct {
	Index      int
	Prev, Next int
}

func (e *InvalidSliceError) Error() string {
	return fmt.Sprintf("slice is not strictly ascending at index %d: %d >= %d", e.Index, e.Prev, e.Next)
}
