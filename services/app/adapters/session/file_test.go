package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileStorage_SetGetRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s, err := NewFileStorage(discardLogger(), path)
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	ctx := context.Background()

	if s.Path() != path {
		t.Fatalf("expected path %s, got %s", path, s.Path())
	}
	if _, ok, err := s.GetItem(ctx, "user"); err != nil || ok {
		t.Fatalf("expected missing item, got ok=%v err=%v", ok, err)
	}

	if err := s.SetItem(ctx, "user", `{"id":"1"}`); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	// a second instance sees what the first one wrote
	other, _ := NewFileStorage(discardLogger(), path)
	v, ok, err := other.GetItem(ctx, "user")
	if err != nil || !ok || v != `{"id":"1"}` {
		t.Fatalf("unexpected item %q ok=%v err=%v", v, ok, err)
	}

	if err := s.RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "user"); ok {
		t.Fatalf("expected user removed")
	}
	if v, ok, _ := s.GetItem(ctx, "theme"); !ok || v != "dark" {
		t.Fatalf("other keys must survive, got %q", v)
	}
	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("removing a missing key: %v", err)
	}
}

func TestFileStorage_DefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := NewFileStorage(discardLogger(), "")
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	want, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if s.Path() != want || filepath.Base(want) != "storage.json" {
		t.Fatalf("expected %s, got %s", want, s.Path())
	}
}

func TestFileStorage_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, _ := NewFileStorage(discardLogger(), path)
	ctx := context.Background()

	if _, _, err := s.GetItem(ctx, "user"); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := s.SetItem(ctx, "user", "x"); err != nil {
		t.Fatalf("SetItem should start over: %v", err)
	}
	if v, ok, err := s.GetItem(ctx, "user"); err != nil || !ok || v != "x" {
		t.Fatalf("unexpected item %q ok=%v err=%v", v, ok, err)
	}
}
