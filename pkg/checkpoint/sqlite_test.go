package checkpoint

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(&SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "checkpoints.db"),
		WALMode:     true,
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := newTestRecord("CASE1001")
	rec.CoverTopic("family_situation")

	token, err := store.Save(ctx, rec)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.CaseID != rec.CaseID {
		t.Errorf("loaded CaseID = %q, want %q", got.CaseID, rec.CaseID)
	}
	if len(got.CoveredTopics) != 1 || got.CoveredTopics[0] != "family_situation" {
		t.Errorf("loaded CoveredTopics = %v", got.CoveredTopics)
	}
}

func TestSQLiteStore_ResaveReplacesCase(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := newTestRecord("CASE1002")
	first, err := store.Save(ctx, rec)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	second, err := store.Save(ctx, rec)
	if err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if first == second {
		t.Error("re-save returned the same token")
	}

	if _, err := store.Load(ctx, first); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(stale token) error = %v, want ErrNotFound", err)
	}

	tokens, err := store.List(ctx, time.Time{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tokens) != 1 {
		t.Errorf("List() = %v, want one live checkpoint per case", tokens)
	}
}

func TestSQLiteStore_DeleteAndNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Delete(ctx, "no-such-token"); err != nil {
		t.Errorf("Delete(unknown) error = %v, want nil", err)
	}

	token, _ := store.Save(ctx, newTestRecord("CASE1003"))
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoints.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(&SQLiteConfig{Path: path, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	token, err := store.Save(ctx, newTestRecord("CASE1004"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(&SQLiteConfig{Path: path, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load() after reopen error: %v", err)
	}
	if got.CaseID != "CASE1004" {
		t.Errorf("CaseID = %q", got.CaseID)
	}
}

func TestSQLiteStore_ListCutoff(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	token, _ := store.Save(ctx, newTestRecord("CASE1005"))
	time.Sleep(5 * time.Millisecond)

	tokens, err := store.List(ctx, time.Now())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != token {
		t.Errorf("List(now) = %v, want [%s]", tokens, token)
	}

	tokens, err = store.List(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("List(old cutoff) error: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("List(old cutoff) = %v, want empty", tokens)
	}
}
