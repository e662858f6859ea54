package retrieval

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatcher_RequiresDirIndex(t *testing.T) {
	idx := NewIndex(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, err := NewWatcher(idx, nil); err == nil {
		t.Error("NewWatcher() accepted a built-in index")
	}
}

func TestWatcher_ReloadsOnCorpusChange(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	idx, err := NewDirIndex(dir, logger)
	if err != nil {
		t.Fatalf("NewDirIndex() error: %v", err)
	}
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d for an empty directory", idx.Len())
	}

	w, err := NewWatcher(idx, logger)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErr := make(chan error, 1)
	go func() { watchErr <- w.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	corpus := `- content: "Housing assistance for youth."
  source: "Housing Policy"
  section: "Section 1.1"
`
	if err := os.WriteFile(filepath.Join(dir, "housing.yaml"), []byte(corpus), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d after corpus change, want 1", idx.Len())
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
	if err := <-watchErr; err != nil {
		t.Errorf("Watch() returned %v", err)
	}
}

func TestWatcher_StopWithoutWatch(t *testing.T) {
	idx, err := NewDirIndex(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewDirIndex() error: %v", err)
	}
	w, err := NewWatcher(idx, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() before Watch error: %v", err)
	}
}

func TestIsCorpusEvent(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"policies.yaml", fsnotify.Write, true},
		{"policies.yml", fsnotify.Create, true},
		{"policies.YAML", fsnotify.Write, true},
		{"notes.txt", fsnotify.Write, false},
		{"policies.yaml", fsnotify.Chmod, false},
	}
	for _, tt := range tests {
		ev := fsnotify.Event{Name: tt.name, Op: tt.op}
		if got := isCorpusEvent(ev); got != tt.want {
			t.Errorf("isCorpusEvent(%s, %s) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}
