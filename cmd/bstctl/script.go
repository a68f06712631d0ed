package main

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alphadose/haxmap"

	"github.com/g-m-twostay/go-bst/Trees"
)

const defaultTree = "default"

// session holds the named trees a script works on. Commands apply to the current tree.
type session struct {
	trees *haxmap.Map[string, *Trees.BST[uint32]]
	cur   string
	hint  uint32
	out   io.Writer
	log   *slog.Logger
}

func newSession(out io.Writer, log *slog.Logger, hint uint32) *session {
	s := &session{
		trees: haxmap.New[string, *Trees.BST[uint32]](),
		cur:   defaultTree,
		hint:  hint,
		out:   out,
		log:   log,
	}
	s.trees.Set(defaultTree, Trees.New[uint32](hint))
	return s
}

// run executes every line of r. Blank lines and lines starting with # are skipped.
// The first bad command stops the script.
func (s *session) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (s *session) tree() *Trees.BST[uint32] {
	t, _ := s.trees.Get(s.cur)
	return t
}

func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	ints := func(want int) ([]int, error) {
		if want >= 0 && len(args) != want {
			return nil, fmt.Errorf("%s takes %d arguments, got %d", cmd, want, len(args))
		}
		return parseKeys(strings.Join(args, " "))
	}
	s.log.Debug("exec", "tree", s.cur, "cmd", cmd, "args", args)

	switch cmd {
	case "new", "use", "drop":
		if len(args) != 1 {
			return fmt.Errorf("%s takes a tree name", cmd)
		}
		return s.manage(cmd, args[0])
	case "trees":
		var names []string
		s.trees.ForEach(func(name string, _ *Trees.BST[uint32]) bool {
			names = append(names, name)
			return true
		})
		slices.Sort(names)
		fmt.Fprintln(s.out, strings.Join(names, " "))
		return nil
	case "walk":
		o := Trees.InOrder
		if len(args) > 0 {
			var err error
			if o, err = Trees.ParseOrder(args[0]); err != nil {
				return err
			}
		}
		fmt.Fprintln(s.out, joinKeys(s.tree().All(o)))
		return nil
	}

	t := s.tree()
	switch cmd {
	case "insert":
		keys, err := ints(-1)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if !t.Insert(k) {
				s.log.Debug("duplicate key ignored", "tree", s.cur, "key", k)
			}
		}
	case "delete":
		keys, err := ints(1)
		if err != nil {
			return err
		}
		if t.Remove(keys[0]) {
			fmt.Fprintf(s.out, "deleted %d\n", keys[0])
		} else {
			fmt.Fprintf(s.out, "%d not found\n", keys[0])
		}
	case "has":
		keys, err := ints(1)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, t.Has(keys[0]))
	case "min", "max":
		f := t.Minimum
		if cmd == "max" {
			f = t.Maximum
		}
		if k, err := f(); err != nil {
			fmt.Fprintln(s.out, err)
		} else {
			fmt.Fprintln(s.out, k)
		}
	case "height":
		fmt.Fprintln(s.out, t.Height())
	case "size":
		fmt.Fprintln(s.out, t.Size())
	case "lca":
		keys, err := ints(2)
		if err != nil {
			return err
		}
		if k, ok := t.LowestCommonAncestor(keys[0], keys[1]); ok {
			fmt.Fprintln(s.out, k)
		} else {
			fmt.Fprintln(s.out, "not found")
		}
	case "prune":
		keys, err := ints(2)
		if err != nil {
			return err
		}
		t.Prune(keys[0], keys[1])
	case "check":
		if t.Valid() {
			fmt.Fprintln(s.out, "valid")
		} else {
			fmt.Fprintln(s.out, "corrupt")
		}
	case "clear":
		t.Clear()
	case "compact":
		t.Compact()
	case "print":
		fmt.Fprint(s.out, t.String())
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *session) manage(cmd, name string) error {
	_, exists := s.trees.Get(name)
	switch cmd {
	case "new":
		if exists {
			return fmt.Errorf("tree %q already exists", name)
		}
		s.trees.Set(name, Trees.New[uint32](s.hint))
		s.cur = name
	case "use":
		if !exists {
			return fmt.Errorf("no tree named %q", name)
		}
		s.cur = name
	case "drop":
		if !exists {
			return fmt.Errorf("no tree named %q", name)
		}
		if name == s.cur {
			return fmt.Errorf("can't drop the tree in use")
		}
		s.trees.Del(name)
	}
	s.log.Debug(cmd, "tree", name)
	return nil
}

func joinKeys(keys iter.Seq[int]) string {
	var b strings.Builder
	for k := range keys {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(k))
	}
	return b.String()
}
