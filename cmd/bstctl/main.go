// bstctl drives a Trees.BST from the command line, for poking at trees by hand.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/g-m-twostay/go-bst/Trees"
)

func main() {
	app := &cli.App{
		Name:    "bstctl",
		Usage:   "build and query binary search trees of integers",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every operation",
				EnvVars: []string{"BST_VERBOSE"},
			},
			&cli.UintFlag{
				Name:    "hint",
				Usage:   "number of nodes to reserve room for in each new tree",
				Value:   64,
				EnvVars: []string{"BST_INDEX_HINT"},
			},
		},
		Commands: []*cli.Command{
			runCmd,
			scriptCmd,
			demoCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}

func configLogger(cctx *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if cctx.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
	return log
}

var runCmd = &cli.Command{
	Name:      "run",
	Usage:     "build a tree from --keys, apply the requested operations and report on it",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "keys",
			Usage:    "keys to insert, separated by spaces or commas",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "has",
			Usage: "key to look up",
		},
		&cli.StringFlag{
			Name:  "delete",
			Usage: "key to delete",
		},
		&cli.StringFlag{
			Name:  "lca",
			Usage: "two keys A:B to find the lowest common ancestor of",
		},
		&cli.StringFlag{
			Name:  "prune",
			Usage: "inclusive range MIN:MAX of keys to keep",
		},
	},
	Action: func(cctx *cli.Context) error {
		log := configLogger(cctx)
		keys, err := parseKeys(cctx.String("keys"))
		if err != nil {
			return fmt.Errorf("--keys: %w", err)
		}
		hint, err := indexHint(cctx.Uint("hint"))
		if err != nil {
			return err
		}
		tree := Trees.New[uint32](hint)
		for _, k := range keys {
			if !tree.Insert(k) {
				log.Debug("duplicate key ignored", "key", k)
			}
		}
		w := cctx.App.Writer
		if s := cctx.String("has"); s != "" {
			k, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("--has: %w", err)
			}
			if tree.Has(k) {
				fmt.Fprintf(w, "%d exists in the tree\n", k)
			} else {
				fmt.Fprintf(w, "%d doesn't exist in the tree\n", k)
			}
		}
		if s := cctx.String("delete"); s != "" {
			k, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("--delete: %w", err)
			}
			log.Debug("delete", "key", k, "removed", tree.Remove(k))
		}
		if s := cctx.String("lca"); s != "" {
			a, b, err := parsePair(s)
			if err != nil {
				return fmt.Errorf("--lca: %w", err)
			}
			if k, ok := tree.LowestCommonAncestor(a, b); ok {
				fmt.Fprintf(w, "lowest common ancestor of %d and %d: %d\n", a, b, k)
			} else {
				fmt.Fprintf(w, "lowest common ancestor of %d and %d: not found\n", a, b)
			}
		}
		if s := cctx.String("prune"); s != "" {
			lo, hi, err := parsePair(s)
			if err != nil {
				return fmt.Errorf("--prune: %w", err)
			}
			tree.Prune(lo, hi)
			log.Debug("pruned", "min", lo, "max", hi, "size", tree.Size())
		}
		report(w, tree)
		return nil
	},
}

var scriptCmd = &cli.Command{
	Name:      "script",
	Usage:     "run tree commands line by line from FILE, or stdin when FILE is - or missing",
	ArgsUsage: "[FILE]",
	Action: func(cctx *cli.Context) error {
		log := configLogger(cctx)
		var in io.Reader = os.Stdin
		if name := cctx.Args().First(); name != "" && name != "-" {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		hint, err := indexHint(cctx.Uint("hint"))
		if err != nil {
			return err
		}
		s := newSession(cctx.App.Writer, log, hint)
		return s.run(in)
	},
}

var demoCmd = &cli.Command{
	Name:  "demo",
	Usage: "prune the keys outside of [-10,13] from a small tree",
	Action: func(cctx *cli.Context) error {
		configLogger(cctx)
		w := cctx.App.Writer
		tree := Trees.New[uint32](7)
		for _, k := range []int{6, -13, 14, -8, 15, 13, 7} {
			tree.Insert(k)
		}
		fmt.Fprintf(w, "Inorder traversal of the given tree is: %s\n", joinKeys(tree.All(Trees.InOrder)))
		tree.Prune(-10, 13)
		fmt.Fprintf(w, "Inorder traversal of the modified tree is: %s\n", joinKeys(tree.All(Trees.InOrder)))
		return nil
	},
}

// report prints the traversals and summary of tree.
func report(w io.Writer, tree *Trees.BST[uint32]) {
	for _, o := range []Trees.Order{Trees.PreOrder, Trees.InOrder, Trees.PostOrder} {
		fmt.Fprintf(w, "%-6s %s\n", o.String()+":", joinKeys(tree.All(o)))
	}
	if m, err := tree.Maximum(); err == nil {
		fmt.Fprintf(w, "max:   %d\n", m)
	} else {
		fmt.Fprintf(w, "max:   %v\n", err)
	}
	if m, err := tree.Minimum(); err == nil {
		fmt.Fprintf(w, "min:   %d\n", m)
	} else {
		fmt.Fprintf(w, "min:   %v\n", err)
	}
	fmt.Fprintf(w, "height: %d\nsize:   %d\nvalid:  %t\n", tree.Height(), tree.Size(), tree.Valid())
	fmt.Fprintln(w, tree.String())
}

// indexHint checks that --hint fits the uint32 indexes of the trees.
func indexHint(v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("--hint: %d is more than the %d nodes a tree can hold", v, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

func parseKeys(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	keys := make([]int, 0, len(fields))
	for _, f := range fields {
		k, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func parsePair(s string) (int, int, error) {
	as, bs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected A:B, got %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(as))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(bs))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
