package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// Console executes command lines against a workbench and writes results to
// an output stream.
type Console struct {
	wb       *workbench.Workbench
	out      io.Writer
	diff     bool
	coloring bool
}

// Option configures a Console.
type Option func(*Console)

// WithDiff enables structural diffs after mutations.
func WithDiff(enabled bool) Option {
	return func(c *Console) { c.diff = enabled }
}

// WithColor enables ANSI colors in diffs.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.coloring = enabled }
}

// New creates a console over wb writing to out.
func New(wb *workbench.Workbench, out io.Writer, opts ...Option) *Console {
	c := &Console{wb: wb, out: out}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workbench returns the workbench the console drives.
func (c *Console) Workbench() *workbench.Workbench {
	return c.wb
}

// Execute runs a single command line. It returns ErrQuit for quit.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := splitLine(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "insert", "add", "i":
		return c.mutate(ctx, args, "insert", c.wb.Insert)
	case "delete", "del", "remove", "d":
		return c.mutate(ctx, args, "delete", c.wb.Delete)
	case "search", "find", "s":
		return c.search(ctx, args)
	case "print", "p":
		return c.printKeys()
	case "show":
		_, err := io.WriteString(c.out, snapshot.Render(c.wb.Snapshot()))
		return err
	case "json":
		return c.printJSON()
	case "type":
		return c.setType(args)
	case "order":
		return c.setOrder(args)
	case "reset", "clear":
		c.wb.Reset()
		return c.printf("reset: %s of order %d is empty\n", c.wb.Kind().Label(), c.wb.Order())
	case "stats":
		return c.stats()
	case "diff":
		return c.setDiff(args)
	case "help", "?":
		_, err := io.WriteString(c.out, helpText)
		return err
	case "quit", "exit", "q":
		return ErrQuit
	default:
		return errors.Wrapf(ErrUnknownCommand, "%q (try help)", cmd)
	}
}

// Run executes every line read from r and stops at the first failing line.
// A quit command ends the run without error.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.Execute(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return errors.Wrap(scanner.Err(), "read script")
}

func (c *Console) mutate(ctx context.Context, args []string, verb string, apply func(context.Context, int) bool) error {
	if len(args) == 0 {
		return errors.Wrapf(ErrUsage, "%s <n|a..b>...", verb)
	}
	keys, err := parseKeys(args)
	if err != nil {
		return err
	}

	before := c.wb.Snapshot()
	changed := 0
	for _, k := range keys {
		if apply(ctx, k) {
			changed++
		}
	}

	if err := c.printf("%s: %d of %d keys changed the tree\n", verb, changed, len(keys)); err != nil {
		return err
	}
	if c.diff {
		return c.printDiff(before, c.wb.Snapshot())
	}
	return nil
}

func (c *Console) search(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "search <n>")
	}
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	if c.wb.Search(ctx, key) {
		return c.printf("found %d\n", key)
	}
	return c.printf("%d not found\n", key)
}

func (c *Console) printKeys() error {
	keys := c.wb.Print()
	if len(keys) == 0 {
		return c.printf("%s\n", snapshot.EmptyLabel)
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return c.printf("%s\n", strings.Join(parts, " "))
}

func (c *Console) printJSON() error {
	data, err := json.MarshalIndent(c.wb.Snapshot(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	return c.printf("%s\n", data)
}

func (c *Console) setType(args []string) error {
	if len(args) == 0 {
		return c.printf("type: %s\n", c.wb.Kind())
	}
	if len(args) != 1 {
		return errors.Wrapf(ErrUsage, "type [%s]", workbench.JoinKinds("|"))
	}
	kind, err := workbench.ParseKind(args[0])
	if err != nil {
		return err
	}
	if err := c.wb.SetKind(kind); err != nil {
		return err
	}
	return c.printf("type: %s\n", kind)
}

func (c *Console) setOrder(args []string) error {
	if len(args) == 0 {
		return c.printf("order: %d\n", c.wb.Order())
	}
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "order [n]")
	}
	order, err := parseKey(args[0])
	if err != nil {
		return err
	}
	if err := c.wb.SetOrder(order); err != nil {
		return err
	}
	return c.printf("order: %d (both trees cleared)\n", order)
}

func (c *Console) stats() error {
	s := c.wb.Stats()
	if err := c.printf("type:      %s\norder:     %d\nkeys:      %d\nheight:    %d\nnodes:     %d internal, %d leaf\ncapacity:  %d..%d keys per node\n",
		c.wb.Kind().Label(), c.wb.Order(), s.Keys, s.Height, s.InternalNodes, s.LeafNodes, s.MinKeys, s.MaxKeys); err != nil {
		return err
	}
	if c.wb.Kind() == workbench.KindBPlusTree {
		return c.printf("separators: %d\n", s.Separators)
	}
	return nil
}

func (c *Console) setDiff(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "diff on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		c.diff = true
	case "off":
		c.diff = false
	default:
		return errors.Wrap(ErrUsage, "diff on|off")
	}
	return c.printf("diff: %s\n", strings.ToLower(args[0]))
}

func (c *Console) printDiff(before, after *snapshot.Node) error {
	text, changed, err := snapshot.Diff(before, after, c.coloring)
	if err != nil {
		return err
	}
	if !changed {
		return c.printf("(no structural change)\n")
	}
	_, err = io.WriteString(c.out, text)
	return err
}

func (c *Console) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(c.out, format, args...)
	return err
}

const helpText = `commands:
  insert <n|a..b>...      add keys
  delete <n|a..b>...      remove keys
  search <n>              find a key and mark its node
  print                   list keys in order
  show                    draw the tree
  json                    print the tree as JSON
  type [btree|bplustree]  show or select the tree type
  order [n]               show or change the order (clears both trees)
  reset                   clear both trees
  stats                   describe the tree
  diff on|off             show structural changes after mutations
  help                    this text
  quit                    leave
`
