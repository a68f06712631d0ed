package Trees

import (
	"golang.org/x/exp/constraints"
)

// A node in the arena.
// The zero value is meaningful: it's a leaf holding key 0.
type node[S constraints.Unsigned] struct {
	key  int
	l, r S // 0 means no child. For a freed node, l is the next free index.
}

// base is an arena of nodes addressed by index. ns[0] is a sentinel that is
// never handed out, so that index 0 can stand for an absent child.
// Every node is owned by exactly one parent link (or root), so releasing a
// node puts its index on the free list exactly once.
type base[S constraints.Unsigned] struct {
	root, free S         // free is the beginning of the linked list that contains all the free indexes; node[S]::l represents next.
	size       int       // number of nodes reachable from root.
	ns         []node[S] // len(ns) = 1 + size + length of the free list.
}

// addFree index once.
func (u *base[S]) addFree(a S) {
	u.ns[a] = node[S]{l: u.free}
	u.free = a
}

// popFree index once. Returns 0 when there's no free index(when u.free==0).
func (u *base[S]) popFree() S {
	b := u.free
	if b != 0 {
		u.free = u.ns[b].l
	}
	return b
}

// alloc a leaf holding key, reusing a freed index when there is one.
// It may grow ns, so pointers into ns taken before the call must not be used after it.
func (u *base[S]) alloc(key int) S {
	if a := u.popFree(); a != 0 {
		u.ns[a] = node[S]{key: key}
		u.size++
		return a
	}
	if len(u.ns) == 0 {
		u.ns = append(u.ns, node[S]{})
	}
	a := S(len(u.ns))
	if int(a) != len(u.ns) {
		panic("Trees: arena index type overflowed")
	}
	u.ns = append(u.ns, node[S]{key: key})
	u.size++
	return a
}

// inArena reports whether a is an index of the current arena. Compact shrinks
// the arena, so indexes kept from before it may be out of range.
func (u *base[S]) inArena(a S) bool {
	return int(a) < len(u.ns)
}

// drop a node that is no longer linked from anywhere.
func (u *base[S]) drop(a S) {
	u.addFree(a)
	u.size--
}

// freeSubtree drops every node under curI, children first. Recursive.
func (u *base[S]) freeSubtree(curI S) {
	if curI == 0 {
		return
	}
	l, r := u.ns[curI].l, u.ns[curI].r
	u.freeSubtree(l)
	u.freeSubtree(r)
	u.drop(curI)
}

// minIndex of the subtree rooting at curI, curI!=0.
func (u *base[S]) minIndex(curI S) S {
	for u.ns[curI].l != 0 {
		curI = u.ns[curI].l
	}
	return curI
}

// maxIndex of the subtree rooting at curI, curI!=0.
func (u *base[S]) maxIndex(curI S) S {
	for u.ns[curI].r != 0 {
		curI = u.ns[curI].r
	}
	return curI
}

// Compact the arena so that the live nodes occupy indexes 1 to Size() in pre-order.
// The free list is dropped and the backing array shrinks to fit. Keys and shape are unchanged.
// Time: O(size).
func (u *base[S]) Compact() {
	ns := make([]node[S], 1, u.size+1)
	var cp func(S) S
	cp = func(i S) S {
		if i == 0 {
			return 0
		}
		j := S(len(ns))
		ns = append(ns, node[S]{key: u.ns[i].key})
		l := cp(u.ns[i].l)
		r := cp(u.ns[i].r)
		ns[j].l, ns[j].r = l, r
		return j
	}
	u.root = cp(u.root)
	u.ns, u.free = ns, 0
}
