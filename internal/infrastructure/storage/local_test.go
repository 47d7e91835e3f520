package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "user_1_123.pdf", strings.NewReader("content")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	path := store.Path("user_1_123.pdf")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := store.Remove(ctx, path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, got %v", err)
	}

	// Removing again is a no-op.
	if err := store.Remove(ctx, path); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestLocalStore_SaveRefusesCollision(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "key.pdf", strings.NewReader("one")); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.Save(ctx, "key.pdf", strings.NewReader("two")); err == nil {
		t.Fatalf("expected collision error")
	}
}

func TestLocalStore_PathStripsDirectories(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	got := store.Path("../../etc/passwd")
	if filepath.Base(got) != "passwd" || strings.Contains(got, "..") {
		t.Fatalf("path traversal not neutralized: %s", got)
	}
}

func TestLocalStore_RemoveRefusesOutsidePaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Remove(context.Background(), "/etc/hosts"); err == nil {
		t.Fatalf("expected refusal for path outside uploads dir")
	}
}
