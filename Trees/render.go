package Trees

import (
	"github.com/xlab/treeprint"
)

// Render the tree for printing. Children are tagged [L] or [R].
func (u *BST[S]) Render() treeprint.Tree {
	if u.root == 0 {
		return treeprint.NewWithRoot("(empty)")
	}
	t := treeprint.NewWithRoot(u.ns[u.root].key)
	u.render(u.root, t)
	return t
}

func (u *BST[S]) render(curI S, t treeprint.Tree) {
	cur := u.ns[curI]
	for _, c := range [...]struct {
		side string
		i    S
	}{{"L", cur.l}, {"R", cur.r}} {
		if c.i == 0 {
			continue
		}
		if n := u.ns[c.i]; n.l == 0 && n.r == 0 {
			t.AddMetaNode(c.side, n.key)
		} else {
			u.render(c.i, t.AddMetaBranch(c.side, n.key))
		}
	}
}

// String renders the tree, one key per line.
func (u *BST[S]) String() string {
	return u.Render().String()
}
