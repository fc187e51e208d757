package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/treelab/internal/config"
	"github.com/KilimcininKorOglu/treelab/internal/console"
	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/server"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// quietConfig keeps logs off the test output.
const quietConfig = "logging:\n  level: error\n"

// =============================================================================
// Root and Version Tests
// =============================================================================

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--help")
	assert.Equal(t, 0, code)
	for _, name := range []string{"shell", "run", "serve", "config", "version"} {
		assert.Contains(t, stdout, name)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "treelab version "+version)
	assert.Contains(t, stdout, "Go version:")
}

func TestVersionShort(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version", "--short")
	assert.Equal(t, 0, code)
	assert.Equal(t, version+"\n", stdout)
}

// =============================================================================
// Run Command Tests
// =============================================================================

func TestRunCommandsFromArgs(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "run", "insert 5 1 3", "delete 1", "print")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "insert: 3 of 3 keys changed the tree\ndelete: 1 of 1 keys changed the tree\n3 5\n", stdout)
}

func TestRunTypeAndOrderFlags(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "run", "--type", "b+", "--order", "4", "type", "order")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "type: bplustree\norder: 4\n", stdout)
}

func TestRunRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"order too large", []string{"run", "--order", "11", "print"}, "order"},
		{"unknown type", []string{"run", "--type", "avl", "print"}, "unknown"},
		{"file and commands", []string{"run", "-f", "x.txt", "print"}, "either"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "run", "insert 1", "insert x", "insert 2")
	assert.Equal(t, 1, code)
	assert.Equal(t, "insert: 1 of 1 keys changed the tree\n", stdout)
	assert.Contains(t, stderr, "line 2")
	assert.Contains(t, stderr, console.ErrInvalidInput.Error())
}

func TestRunScriptFile(t *testing.T) {
	script := writeFile(t, "scenario.txt", `# ascending inserts
insert 1..7
search 4
quit
insert 100
`)
	code, stdout, stderr := runCLI(t, "", "run", "-f", script)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "insert: 7 of 7 keys changed the tree\nfound 4\n", stdout)
}

func TestRunScriptFromStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "insert 2 2\nprint\n", "run")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "insert: 1 of 2 keys changed the tree\n2\n", stdout)

	code, stdout, _ = runCLI(t, "print\n", "run", "-f", "-")
	assert.Equal(t, 0, code)
	assert.Equal(t, "(empty)\n", stdout)
}

func TestRunMissingScript(t *testing.T) {
	code, _, stderr := runCLI(t, "", "run", "-f", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "open script")
}

func TestRunUsesConfigFile(t *testing.T) {
	path := writeFile(t, "treelab.yaml", quietConfig+"tree:\n  type: bplustree\n  order: 6\n")

	code, stdout, stderr := runCLI(t, "", "run", "-c", path, "type", "order")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "type: bplustree\norder: 6\n", stdout)

	code, stdout, _ = runCLI(t, "", "run", "-c", path, "--order", "3", "order")
	assert.Equal(t, 0, code)
	assert.Equal(t, "order: 3\n", stdout, "flags override the file")
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigDefaults(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "config", "defaults")
	require.Equal(t, 0, code)

	cfg, err := config.ParseConfig([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, *config.DefaultConfig(), *cfg)
}

func TestConfigValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", "tree:\n  order: 4\n")
	code, stdout, _ := runCLI(t, "", "config", "validate", good)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Configuration is valid\n", stdout)

	code, _, _ = runCLI(t, "", "--config", good, "config", "validate")
	assert.Equal(t, 0, code)

	bad := writeFile(t, "bad.yaml", "tree:\n  order: 40\nlogging:\n  level: loud\n")
	code, _, stderr := runCLI(t, "", "config", "validate", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Configuration errors:")
	assert.Contains(t, stderr, "2 configuration errors")

	code, _, stderr = runCLI(t, "", "config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no configuration file")
}

// =============================================================================
// Shell Tests
// =============================================================================

type scriptedReader struct {
	lines []string
	errs  []error
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line, err := r.lines[0], r.errs[0]
	r.lines, r.errs = r.lines[1:], r.errs[1:]
	return line, err
}

func newShellConsole(t *testing.T) (*console.Console, *bytes.Buffer) {
	t.Helper()
	wb, err := workbench.New(workbench.DefaultOptions(), logging.NewNop())
	require.NoError(t, err)
	var out bytes.Buffer
	return console.New(wb, &out), &out
}

func TestShellLoopReportsErrorsAndContinues(t *testing.T) {
	c, out := newShellConsole(t)
	var errOut bytes.Buffer
	rl := &scriptedReader{
		lines: []string{"insert 1", "bogus", "partial", "print"},
		errs:  []error{nil, nil, readline.ErrInterrupt, nil},
	}

	require.NoError(t, shellLoop(context.Background(), c, rl, &errOut))
	assert.Equal(t, "insert: 1 of 1 keys changed the tree\n1\n", out.String())
	assert.Contains(t, errOut.String(), "unknown command")
}

func TestShellLoopStops(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		errs  []error
	}{
		{"quit", []string{"quit", "insert 1"}, []error{nil, nil}},
		{"interrupt on empty line", []string{"", "insert 1"}, []error{readline.ErrInterrupt, nil}},
		{"end of input", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newShellConsole(t)
			rl := &scriptedReader{lines: tt.lines, errs: tt.errs}
			require.NoError(t, shellLoop(context.Background(), c, rl, io.Discard))
			assert.Empty(t, out.String())
		})
	}
}

// =============================================================================
// Serve Tests
// =============================================================================

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var listenLine = regexp.MustCompile(`listening on (http://\S+)`)

func TestServe(t *testing.T) {
	path := writeFile(t, "treelab.yaml", quietConfig+"server:\n  address: 127.0.0.1:0\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"serve", "-c", path, "--type", "bplustree"}, strings.NewReader(""), &stdout, &stderr)
	}()

	var baseURL string
	require.Eventually(t, func() bool {
		m := listenLine.FindStringSubmatch(stdout.String())
		if m == nil {
			return false
		}
		baseURL = m[1]
		return true
	}, 5*time.Second, 10*time.Millisecond, "server did not report its address: %s", stderr.String())

	resp, err := http.Get(baseURL + "/api/v1/tree")
	require.NoError(t, err)
	var tree server.TreeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tree))
	resp.Body.Close()
	assert.Equal(t, workbench.KindBPlusTree, tree.Kind)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code, stderr.String())
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestApplyTreeConfig(t *testing.T) {
	wb, err := workbench.New(workbench.DefaultOptions(), logging.NewNop())
	require.NoError(t, err)
	srv := server.NewServer(config.DefaultConfig().Server, wb, logging.NewNop())

	srv.Apply(func(wb *workbench.Workbench) {
		wb.Insert(context.Background(), 1)
	})

	oldCfg := config.DefaultConfig()
	newCfg := config.DefaultConfig()
	newCfg.Tree.Type = config.TreeTypeBPlusTree
	applyTreeConfig(srv, logging.NewNop(), oldCfg, newCfg)

	srv.Apply(func(wb *workbench.Workbench) {
		assert.Equal(t, workbench.KindBPlusTree, wb.Kind())
		assert.Equal(t, 3, wb.Order())
	})

	oldCfg, newCfg = newCfg, config.DefaultConfig()
	newCfg.Tree.Type = config.TreeTypeBPlusTree
	newCfg.Tree.Order = 5
	applyTreeConfig(srv, logging.NewNop(), oldCfg, newCfg)

	srv.Apply(func(wb *workbench.Workbench) {
		assert.Equal(t, 5, wb.Order())
		wb.SetKind(workbench.KindBTree)
		assert.Empty(t, wb.Print(), "order change clears both trees")
	})
}
