package Trees

import (
	"math/bits"
	"math/rand"
	"slices"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))
var cache [2]uint

func (u *BST[S]) _depth(curI S, d byte) {
	cur := u.ns[curI]
	if cur.l != 0 {
		u._depth(cur.l, d+1)
	}
	if cur.r != 0 {
		u._depth(cur.r, d+1)
	}
	if cur.l == 0 && cur.r == 0 {
		cache[0]++
		cache[1] += uint(d)
	}
}

// depth is the average depth of the leaves.
func (u *BST[S]) depth() float32 {
	if u.root == 0 {
		return 0
	}
	cache[0], cache[1] = 0, 0
	u._depth(u.root, 1)
	return float32(cache[1]) / float32(cache[0])
}

// find the index holding key, 0 if there's none.
func (u *BST[S]) find(key int) S {
	for curI := u.root; curI != 0; {
		if cur := u.ns[curI]; key < cur.key {
			curI = cur.l
		} else if key > cur.key {
			curI = cur.r
		} else {
			return curI
		}
	}
	return 0
}

// locallyOrdered only compares each node with its direct children.
func (u *BST[S]) locallyOrdered(curI S) bool {
	if curI == 0 {
		return true
	}
	cur := u.ns[curI]
	if cur.l != 0 && u.ns[cur.l].key > cur.key {
		return false
	}
	if cur.r != 0 && u.ns[cur.r].key < cur.key {
		return false
	}
	return u.locallyOrdered(cur.l) && u.locallyOrdered(cur.r)
}

// checkArena verifies that every index is either reachable from root exactly
// once or on the free list exactly once.
func checkArena[S uint16 | uint32](t *testing.T, u *BST[S]) {
	t.Helper()
	seen := make(map[S]struct{}, len(u.ns))
	var walk func(S)
	walk = func(i S) {
		if i == 0 {
			return
		}
		if _, in := seen[i]; in {
			t.Fatalf("index %d is reachable twice", i)
		}
		seen[i] = struct{}{}
		walk(u.ns[i].l)
		walk(u.ns[i].r)
	}
	walk(u.root)
	if len(seen) != u.Size() {
		t.Fatalf("%d reachable nodes, size is %d", len(seen), u.Size())
	}
	free := 0
	for i := u.free; i != 0; i = u.ns[i].l {
		if _, in := seen[i]; in {
			t.Fatalf("index %d is both free and reachable", i)
		}
		seen[i] = struct{}{}
		free++
	}
	if len(u.ns) > 0 && u.size+free != len(u.ns)-1 {
		t.Fatalf("%d live and %d free nodes in an arena of %d", u.size, free, len(u.ns)-1)
	}
}

const (
	tAddN        uint16 = 20000
	tAddValRange        = 40000
)

func TestBST_Insert(t *testing.T) {
	tree := New[uint16](1)
	content := make(map[int]struct{})
	for range tAddN {
		b := rg.Intn(tAddValRange) - tAddValRange/2
		_, in := content[b]
		if c := tree.Insert(b); c == in {
			t.Errorf("insert key %v returned %v, already in: %v", b, c, in)
		}
		content[b] = struct{}{}
	}
	if tree.Size() != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	t.Logf("depth: %f, size: %d.\n", tree.depth(), tree.Size())
	for k := range content {
		if !tree.Has(k) {
			t.Errorf("tree does not have key %v", k)
		}
	}
	for k := range tree.All(InOrder) {
		if _, in := content[k]; !in {
			t.Errorf("tree has non existent key %v", k)
		}
	}
	if !tree.Valid() {
		t.Error("tree is not a valid BST")
	}
	checkArena(t, tree)
}

func TestBST_Remove(t *testing.T) {
	tree := New[uint16](1)
	content := make(map[int]struct{})
	if tree.Remove(0) {
		t.Errorf("empty tree has non existent key %v", 0)
	}
	a := make([]int, tAddN)
	for i := range a {
		a[i] = rg.Intn(tAddValRange)
		tree.Insert(a[i])
		content[a[i]] = struct{}{}
	}
	for i := range rg.Intn(len(a)) {
		_, in := content[a[i]]
		if b := tree.Remove(a[i]); b != in {
			t.Errorf("failed to delete key %v", a[i])
		}
		if tree.Remove(a[i]) {
			t.Errorf("can delete a second time key %v", a[i])
		}
		if tree.Has(a[i]) {
			t.Errorf("tree still has deleted key %v", a[i])
		}
		delete(content, a[i])
	}
	if tree.Size() != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	t.Logf("depth: %f, size: %d.\n", tree.depth(), tree.Size())
	for k := range content {
		if !tree.Has(k) {
			t.Errorf("tree does not have key %v", k)
		}
	}
	if !tree.Valid() {
		t.Error("tree is not a valid BST")
	}
	checkArena(t, tree)
}

func TestBST_AddDel(t *testing.T) {
	tree := New[uint32](0)
	content := make(map[int]struct{})
	for range 4 * int(tAddN) {
		b := rg.Intn(tAddValRange / 8)
		if _, in := content[b]; rg.Intn(3) == 0 {
			if tree.Remove(b) != in {
				t.Fatalf("remove %v returned %v", b, !in)
			}
			delete(content, b)
		} else {
			if tree.Insert(b) == in {
				t.Fatalf("insert %v returned %v", b, in)
			}
			content[b] = struct{}{}
		}
	}
	if tree.Size() != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if !tree.Valid() {
		t.Error("tree is not a valid BST")
	}
	checkArena(t, tree)
	// every freed index got reused, so the arena never holds more than the peak size.
	if len(tree.ns)-1 > tAddValRange/8 {
		t.Errorf("arena has %d slots for at most %d keys", len(tree.ns)-1, tAddValRange/8)
	}
}

func TestBST_MinMax(t *testing.T) {
	tree := New[uint16](0)
	lo, hi := tAddValRange, -1
	for range tAddN {
		b := rg.Intn(tAddValRange)
		lo, hi = min(lo, b), max(hi, b)
		tree.Insert(b)
		if m, _ := tree.Minimum(); m != lo {
			t.Fatalf("minimum is %d, want %d", m, lo)
		}
		if m, _ := tree.Maximum(); m != hi {
			t.Fatalf("maximum is %d, want %d", m, hi)
		}
	}
	// re-inserting an extreme key changes nothing.
	sz, h := tree.Size(), tree.Height()
	if tree.Insert(lo) || tree.Insert(hi) {
		t.Fatal("extreme key inserted twice")
	}
	if m, _ := tree.Minimum(); m != lo || tree.Size() != sz || tree.Height() != h {
		t.Fatal("tree changed after re-inserting the minimum")
	}
}

func TestBST_Height(t *testing.T) {
	tree := New[uint16](0)
	if tree.Height() != 0 {
		t.Fatalf("empty height is %d", tree.Height())
	}
	for i := range 100 {
		tree.Insert(i)
		if tree.Height() != i+1 {
			t.Fatalf("height of a chain of %d is %d", i+1, tree.Height())
		}
	}
	tree.Clear()
	prev := 0
	for range 1000 {
		tree.Insert(rg.Int())
		h := tree.Height()
		if h < prev || h > prev+1 {
			t.Fatalf("height went from %d to %d", prev, h)
		}
		prev = h
	}
}

func TestBST_PreSucc(t *testing.T) {
	content := make([]int, tAddN)
	for i := range content {
		content[i] = i * 2
	}
	tree, err := From[uint16](content)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(content)-1; i++ {
		if a, ok := tree.Predecessor(content[i]); !ok || a != content[i-1] {
			t.Fatalf("wrong predecessor %d %d", a, content[i-1])
		}
		if a, ok := tree.Successor(content[i]); !ok || a != content[i+1] {
			t.Fatalf("wrong successor %d %d", a, content[i+1])
		}
		if a, ok := tree.Predecessor(content[i] + 1); !ok || a != content[i] {
			t.Fatalf("wrong predecessor %d %d", a, content[i])
		}
		if a, ok := tree.Successor(content[i] - 1); !ok || a != content[i] {
			t.Fatalf("wrong successor %d %d", a, content[i])
		}
	}
	if _, ok := tree.Predecessor(content[0]); ok {
		t.Fatal("shouldn't have predecessor")
	}
	if _, ok := tree.Successor(content[len(content)-1]); ok {
		t.Fatal("shouldn't have successor")
	}
}

func TestBST_From(t *testing.T) {
	content := make([]int, 0, tAddN)
	{
		all := make(map[int]struct{}, tAddN)
		for len(all) < int(tAddN) {
			all[rg.Intn(tAddValRange)] = struct{}{}
		}
		for k := range all {
			content = append(content, k)
		}
	}
	slices.Sort(content)
	tree, err := From[uint16](content)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Size() != len(content) {
		t.Fatalf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if h := tree.Height(); h != bits.Len(uint(len(content))) {
		t.Fatalf("height is %d, want %d", h, bits.Len(uint(len(content))))
	}
	if !slices.Equal(tree.Keys(), content) {
		t.Fatal("in-order keys differ from the input")
	}
	checkArena(t, tree)
	t.Logf("depth: %f, size: %d.\n", tree.depth(), tree.Size())
}

func TestBST_Prune(t *testing.T) {
	for range 50 {
		tree := New[uint16](0)
		content := make(map[int]struct{})
		for range 500 {
			b := rg.Intn(1000) - 500
			tree.Insert(b)
			content[b] = struct{}{}
		}
		lo := rg.Intn(1200) - 600
		hi := lo + rg.Intn(600)
		tree.Prune(lo, hi)
		want := 0
		for k := range content {
			if k >= lo && k <= hi {
				want++
				if !tree.Has(k) {
					t.Fatalf("key %d in [%d,%d] was pruned", k, lo, hi)
				}
			}
		}
		for k := range tree.All(PreOrder) {
			if k < lo || k > hi {
				t.Fatalf("key %d outside [%d,%d] survived", k, lo, hi)
			}
		}
		if tree.Size() != want {
			t.Fatalf("tree size is %d, want %d", tree.Size(), want)
		}
		if !tree.Valid() {
			t.Fatal("pruned tree is not a valid BST")
		}
		checkArena(t, tree)
	}
}

func TestBST_Compact(t *testing.T) {
	tree := New[uint32](uint32(tAddN))
	all := make(map[int]struct{}, tAddN)
	for range int(tAddN) / 2 {
		a := rg.Intn(tAddValRange)
		tree.Insert(a)
		all[a] = struct{}{}
	}
	for k := range all {
		if rg.Intn(2) == 0 {
			tree.Remove(k)
		}
	}
	before := tree.Keys()
	var pre []int
	for k := range tree.All(PreOrder) {
		pre = append(pre, k)
	}
	tree.Compact()
	if !slices.Equal(tree.Keys(), before) {
		t.Fatal("compact changed the keys")
	}
	if !slices.Equal(slices.Collect(tree.All(PreOrder)), pre) {
		t.Fatal("compact changed the shape")
	}
	if len(tree.ns) != tree.Size()+1 || tree.free != 0 {
		t.Fatal("not compact")
	}
	checkArena(t, tree)
}

func TestBST_ZeroValue(t *testing.T) {
	var tree BST[uint16]
	if !tree.Empty() || tree.Height() != 0 || tree.Has(0) {
		t.Fatal("zero value is not an empty tree")
	}
	tree.Clear()
	for _, k := range []int{2, 1, 3} {
		tree.Insert(k)
	}
	if !slices.Equal(tree.Keys(), []int{1, 2, 3}) {
		t.Fatalf("keys are %v", tree.Keys())
	}
	checkArena(t, &tree)
}

func TestBST_IndexOverflow(t *testing.T) {
	tree := New[uint8](0)
	inserted := 0
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("no panic when the arena ran out of indexes")
			}
		}()
		for _, k := range rg.Perm(300) {
			tree.Insert(k)
			inserted++
		}
	}()
	if inserted != 255 {
		t.Fatalf("%d keys inserted before the overflow, want 255", inserted)
	}
	if tree.Size() != inserted || len(tree.Keys()) != inserted || len(tree.ns) != inserted+1 {
		t.Fatalf("size %d, %d keys reachable, arena of %d after the overflow", tree.Size(), len(tree.Keys()), len(tree.ns)-1)
	}
	if !tree.Valid() {
		t.Fatal("tree is not a valid BST after the overflow")
	}
}
