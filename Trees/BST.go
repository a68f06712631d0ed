package Trees

import (
	"golang.org/x/exp/constraints"
)

// BST is an unbalanced binary search tree of int keys with no repeated keys.
// Nodes are kept in an arena and linked by indexes of type S, so S bounds
// the number of nodes the tree can hold at once: freed indexes are reused,
// and it's the caller's job to pick S wide enough, e.g. uint32.
// There are no rotations, so the height D depends on the insertion order:
// O(log n) for random input and n for sorted input. Recursive methods recurse
// up to D deep.
// The zero value is an empty tree ready to use.
// A BST is not safe for concurrent use.
type BST[S constraints.Unsigned] struct {
	base[S]
}

var _ Tree = (*BST[uint32])(nil)

// New returns an empty BST with room for hint nodes before the arena grows.
func New[S constraints.Unsigned](hint S) *BST[S] {
	return &BST[S]{base[S]{ns: make([]node[S], 1, int(hint)+1)}}
}

// From builds a BST holding the keys of sorted, which must be strictly ascending.
// The result is as balanced as possible: its height is bits.Len(len(sorted)).
// Returns *InvalidSliceError if sorted isn't strictly ascending.
// Time: O(n).
func From[S constraints.Unsigned](sorted []int) (*BST[S], error) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] >= sorted[i] {
			return nil, &InvalidSliceError{i, sorted[i-1], sorted[i]}
		}
	}
	u := New[S](S(len(sorted)))
	var build func([]int) S
	build = func(s []int) S {
		if len(s) == 0 {
			return 0
		}
		mid := len(s) >> 1
		i := u.alloc(s[mid])
		l, r := build(s[:mid]), build(s[mid+1:])
		u.ns[i].l, u.ns[i].r = l, r
		return i
	}
	u.root = build(sorted)
	return u, nil
}

// Size returns the number of keys.
// Time: O(1)
func (u *BST[S]) Size() int {
	return u.size
}

func (u *BST[S]) Empty() bool {
	return u.root == 0
}

// insert key into the subtree rooting at curI, returning the new root of
// the subtree and whether key was added. ns can grow during the call, so
// child links are written back only after the recursive call returns.
func (u *BST[S]) insert(curI S, key int) (S, bool) {
	if curI == 0 {
		return u.alloc(key), true
	}
	if k := u.ns[curI].key; key < k {
		l, ok := u.insert(u.ns[curI].l, key)
		u.ns[curI].l = l
		return curI, ok
	} else if key > k {
		r, ok := u.insert(u.ns[curI].r, key)
		u.ns[curI].r = r
		return curI, ok
	}
	return curI, false
}

// Insert [Tree.Insert]. Recursive.
// A new key becomes a leaf at the first empty slot on its search path.
// Time: O(D)
func (u *BST[S]) Insert(key int) bool {
	root, ok := u.insert(u.root, key)
	u.root = root
	return ok
}

// remove key from the subtree rooting at curI, returning the new root of the subtree.
// A node with two children takes the key of its in-order successor, which is then
// removed from the right subtree instead. A node with one or no child is replaced by
// that child and its index is freed.
func (u *BST[S]) remove(curI S, key int) (S, bool) {
	if curI == 0 {
		return 0, false
	}
	cur := &u.ns[curI] // remove never grows ns.
	var removed bool
	switch {
	case key < cur.key:
		cur.l, removed = u.remove(cur.l, key)
	case key > cur.key:
		cur.r, removed = u.remove(cur.r, key)
	case cur.l != 0 && cur.r != 0:
		cur.key = u.ns[u.minIndex(cur.r)].key
		cur.r, removed = u.remove(cur.r, cur.key)
	default:
		child := cur.l
		if child == 0 {
			child = cur.r
		}
		u.drop(curI)
		return child, true
	}
	return curI, removed
}

// Remove [Tree.Remove]. Recursive.
// Time: O(D)
func (u *BST[S]) Remove(key int) bool {
	root, ok := u.remove(u.root, key)
	u.root = root
	return ok
}

// Has [Tree.Has]
// Time: O(D); Space: O(1)
func (u *BST[S]) Has(key int) bool {
	for curI := u.root; curI != 0; {
		if cur := &u.ns[curI]; key < cur.key {
			curI = cur.l
		} else if key > cur.key {
			curI = cur.r
		} else {
			return true
		}
	}
	return false
}

// Minimum [Tree.Minimum]
// Time: O(D); Space: O(1)
func (u *BST[S]) Minimum() (int, error) {
	if u.root == 0 {
		return 0, &EmptyTreeError{"minimum"}
	}
	return u.ns[u.minIndex(u.root)].key, nil
}

// Maximum [Tree.Maximum]
// Time: O(D); Space: O(1)
func (u *BST[S]) Maximum() (int, error) {
	if u.root == 0 {
		return 0, &EmptyTreeError{"maximum"}
	}
	return u.ns[u.maxIndex(u.root)].key, nil
}

// Predecessor [Tree.Predecessor]
// Time: O(D); Space: O(1)
func (u *BST[S]) Predecessor(key int) (int, bool) {
	var p S
	for curI := u.root; curI != 0; {
		if cur := &u.ns[curI]; key <= cur.key {
			curI = cur.l
		} else {
			p, curI = curI, cur.r
		}
	}
	if p == 0 {
		return 0, false
	}
	return u.ns[p].key, true
}

// Successor [Tree.Successor]
// Time: O(D); Space: O(1)
func (u *BST[S]) Successor(key int) (int, bool) {
	var p S
	for curI := u.root; curI != 0; {
		if cur := &u.ns[curI]; key < cur.key {
			p, curI = curI, cur.l
		} else {
			curI = cur.r
		}
	}
	if p == 0 {
		return 0, false
	}
	return u.ns[p].key, true
}

func (u *BST[S]) height(curI S) int {
	if curI == 0 {
		return 0
	}
	return 1 + max(u.height(u.ns[curI].l), u.height(u.ns[curI].r))
}

// Height [Tree.Height]. Recursive.
// Time: O(n)
func (u *BST[S]) Height() int {
	return u.height(u.root)
}

// lca returns the index of the lowest node under curI that is a or b, or has
// a below both of its children, or 0 if neither a nor b is under curI.
// Both probes start out as not found (0) and only existing children are probed.
func (u *BST[S]) lca(curI S, a, b int) S {
	if curI == 0 {
		return 0
	}
	cur := u.ns[curI]
	if cur.key == a || cur.key == b {
		return curI
	}
	l, r := u.lca(cur.l, a, b), u.lca(cur.r, a, b)
	switch {
	case l != 0 && r != 0:
		return curI
	case l != 0:
		return l
	default:
		return r
	}
}

// LowestCommonAncestor [Tree.LowestCommonAncestor]. Recursive.
// Returns (0, false) if either a or b is absent.
// A node counts as its own ancestor, so a key that is an ancestor of the other, or
// equal to it, is the result even on a leaf: LowestCommonAncestor(7, 7) is 7, not
// the parent of 7.
// Time: O(n)
func (u *BST[S]) LowestCommonAncestor(a, b int) (int, bool) {
	if !u.Has(a) || !u.Has(b) {
		return 0, false
	}
	return u.ns[u.lca(u.root, a, b)].key, true
}

// LCA is LowestCommonAncestor returning NotFound when either key is absent.
// A tree holding the key -1 makes NotFound ambiguous; use LowestCommonAncestor then.
func (u *BST[S]) LCA(a, b int) int {
	if k, ok := u.LowestCommonAncestor(a, b); ok {
		return k
	}
	return NotFound
}

// valid checks that every key under curI lies strictly inside (lo, hi).
// A nil bound is unbounded.
func (u *BST[S]) valid(curI S, lo, hi *int) bool {
	if curI == 0 {
		return true
	}
	cur := &u.ns[curI]
	if (lo != nil && cur.key <= *lo) || (hi != nil && cur.key >= *hi) {
		return false
	}
	return u.valid(cur.l, lo, &cur.key) && u.valid(cur.r, &cur.key, hi)
}

// Valid [Tree.Valid]. Recursive.
// Unlike comparing each node only with its direct children, this catches a
// descendant that is on the wrong side of any of its ancestors.
// Time: O(n)
func (u *BST[S]) Valid() bool {
	return u.valid(u.root, nil, nil)
}

// Corrupt [Tree.Corrupt]
func (u *BST[S]) Corrupt() bool {
	return !u.Valid()
}

// Clear releases every node, children before parents, and leaves an empty tree.
// Freed indexes are reused by later insertions. Clearing an empty tree does nothing. Recursive.
// Time: O(n)
func (u *BST[S]) Clear() {
	u.freeSubtree(u.root)
	u.root = 0
}

// prune the subtree rooting at curI, returning its new root.
// Both subtrees are pruned first. Then if the key of curI is below min, so is
// everything left of it, which the left prune already emptied, and the node is
// replaced by its right subtree. Symmetric for above max.
func (u *BST[S]) prune(curI S, min, max int) S {
	if curI == 0 {
		return 0
	}
	cur := &u.ns[curI] // prune never grows ns.
	cur.l = u.prune(cur.l, min, max)
	cur.r = u.prune(cur.r, min, max)
	if cur.key < min {
		r := cur.r
		u.freeSubtree(cur.l)
		u.drop(curI)
		return r
	}
	if cur.key > max {
		l := cur.l
		u.freeSubtree(cur.r)
		u.drop(curI)
		return l
	}
	return curI
}

// Prune [Tree.Prune]. Recursive.
// Keeps exactly the keys k with min<=k<=max; min>max empties the tree.
// Time: O(n)
func (u *BST[S]) Prune(min, max int) {
	u.root = u.prune(u.root, min, max)
}

// Values returns the keys in ascending order.
func (u *BST[S]) Values() []interface{} {
	vs := make([]interface{}, 0, u.size)
	for k := range u.All(InOrder) {
		vs = append(vs, k)
	}
	return vs
}

// Keys returns the keys in ascending order.
func (u *BST[S]) Keys() []int {
	ks := make([]int, 0, u.size)
	for k := range u.All(InOrder) {
		ks = append(ks, k)
	}
	return ks
}
