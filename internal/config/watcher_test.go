package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// replaceFile swaps content in atomically so the watcher never reads a
// half-written file.
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	writeFile(t, tmp, content)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfigWatcherRequiresFields(t *testing.T) {
	if _, err := NewConfigWatcher(&WatcherConfig{OnChange: func(_, _ *Config) {}}); !errors.Is(err, ErrMissingConfigFile) {
		t.Errorf("expected ErrMissingConfigFile, got %v", err)
	}
	if _, err := NewConfigWatcher(&WatcherConfig{FilePath: "x.yaml"}); !errors.Is(err, ErrMissingOnChange) {
		t.Errorf("expected ErrMissingOnChange, got %v", err)
	}
}

func TestConfigWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelab.yaml")
	writeFile(t, path, "tree:\n  order: 3\n")

	changes := make(chan *Config, 4)
	w, err := NewConfigWatcher(&WatcherConfig{
		FilePath: path,
		Debounce: 20 * time.Millisecond,
		OnChange: func(_, newCfg *Config) { changes <- newCfg },
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	if !w.IsRunning() {
		t.Fatal("expected watcher to be running")
	}
	if w.GetCurrentConfig().Tree.Order != 3 {
		t.Fatalf("expected initial order 3")
	}

	replaceFile(t, path, "tree:\n  order: 6\n")

	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case cfg := <-changes:
			done = cfg.Tree.Order == 6
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	if w.GetCurrentConfig().Tree.Order != 6 {
		t.Error("expected current config to be updated")
	}
}

func TestConfigWatcherRejectsInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelab.yaml")
	writeFile(t, path, "tree:\n  order: 4\n")

	failures := make(chan error, 4)
	w, err := NewConfigWatcher(&WatcherConfig{
		FilePath: path,
		Debounce: 20 * time.Millisecond,
		OnChange: func(_, _ *Config) { t.Error("invalid config must not be applied") },
		OnError:  func(err error) { failures <- err },
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}
	w.Start()
	defer w.Stop()

	replaceFile(t, path, "tree:\n  order: 42\n")

	select {
	case <-failures:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rejection")
	}
	if w.GetCurrentConfig().Tree.Order != 4 {
		t.Error("previous config must stay current")
	}
	w.Stop()
	if w.IsRunning() {
		t.Error("expected watcher to be stopped")
	}
}
