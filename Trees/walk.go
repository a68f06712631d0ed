package Trees

import (
	"fmt"
	"iter"
	"strings"

	"github.com/g-m-twostay/go-bst/Queues"
)

// Order of a traversal. Combine with Reverse to visit right subtrees before left ones.
type Order uint8

const (
	PreOrder Order = iota
	InOrder
	PostOrder
	LevelOrder

	reverseBit Order = 1 << 7
)

// Reverse returns o visiting right to left. InOrder reversed gives descending keys.
func Reverse(o Order) Order {
	return o ^ reverseBit
}

func (o Order) String() string {
	var s string
	switch o &^ reverseBit {
	case PreOrder:
		s = "pre"
	case InOrder:
		s = "in"
	case PostOrder:
		s = "post"
	case LevelOrder:
		s = "level"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
	if o&reverseBit != 0 {
		s += "-reverse"
	}
	return s
}

// ParseOrder is the inverse of Order.String.
func ParseOrder(s string) (Order, error) {
	var o Order
	name, rev := strings.CutSuffix(strings.ToLower(strings.TrimSpace(s)), "-reverse")
	switch name {
	case "pre", "preorder":
		o = PreOrder
	case "in", "inorder":
		o = InOrder
	case "post", "postorder":
		o = PostOrder
	case "level", "levelorder":
		o = LevelOrder
	default:
		return 0, fmt.Errorf("unknown traversal order %q", s)
	}
	if rev {
		o = Reverse(o)
	}
	return o, nil
}

// sides returns the child accessors in visiting order.
func (u *BST[S]) sides(o Order) (first, second func(S) S) {
	l := func(i S) S { return u.ns[i].l }
	r := func(i S) S { return u.ns[i].r }
	if o&reverseBit != 0 {
		return r, l
	}
	return l, r
}

func exhausted() (int, bool) {
	return 0, false
}

// Walk [Tree.Walk]
// Every call to Walk starts a new traversal from the current root. The iterator
// keeps its own stack, so it uses O(D) memory (O(width) for LevelOrder).
// An unknown Order gives an exhausted iterator. If the tree is modified during the
// iteration, the keys given are unspecified, and an index left out of range by
// Compact ends the iteration.
// Time: f(): amortized O(1) at each call to the returned function.
func (u *BST[S]) Walk(o Order) func() (int, bool) {
	first, second := u.sides(o)
	switch o &^ reverseBit {
	case PreOrder:
		var st []S
		if u.root != 0 {
			st = append(st, u.root)
		}
		return func() (int, bool) {
			if len(st) == 0 {
				return 0, false
			}
			curI := st[len(st)-1]
			if !u.inArena(curI) {
				st = nil
				return 0, false
			}
			st = st[:len(st)-1]
			if c := second(curI); c != 0 {
				st = append(st, c)
			}
			if c := first(curI); c != 0 {
				st = append(st, c)
			}
			return u.ns[curI].key, true
		}
	case InOrder:
		var st []S
		for curI := u.root; curI != 0; curI = first(curI) {
			st = append(st, curI)
		}
		return func() (int, bool) {
			if len(st) == 0 {
				return 0, false
			}
			curI := st[len(st)-1]
			if !u.inArena(curI) {
				st = nil
				return 0, false
			}
			st = st[:len(st)-1]
			for c := second(curI); c != 0; c = first(c) {
				st = append(st, c)
			}
			return u.ns[curI].key, true
		}
	case PostOrder:
		var st []S
		curI, last := u.root, S(0)
		return func() (int, bool) {
			for curI != 0 || len(st) > 0 {
				if !u.inArena(curI) || len(st) > 0 && !u.inArena(st[len(st)-1]) {
					curI, st = 0, nil
					break
				}
				if curI != 0 {
					st = append(st, curI)
					curI = first(curI)
					continue
				}
				top := st[len(st)-1]
				if c := second(top); c != 0 && c != last {
					curI = c
					continue
				}
				st = st[:len(st)-1]
				last = top
				return u.ns[top].key, true
			}
			return 0, false
		}
	case LevelOrder:
		q := Queues.MakeArrayQueue[S](4)
		if u.root != 0 {
			q.Push(u.root)
		}
		return func() (int, bool) {
			curI, err := q.Pop()
			if err != nil {
				return 0, false
			}
			if !u.inArena(curI) {
				q.Clear()
				return 0, false
			}
			if c := first(curI); c != 0 {
				q.Push(c)
			}
			if c := second(curI); c != 0 {
				q.Push(c)
			}
			return u.ns[curI].key, true
		}
	}
	return exhausted
}

// All [Tree.All]
func (u *BST[S]) All(o Order) iter.Seq[int] {
	return func(yield func(int) bool) {
		next := u.Walk(o)
		for k, ok := next(); ok; k, ok = next() {
			if !yield(k) {
				return
			}
		}
	}
}
