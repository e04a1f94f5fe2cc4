package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuiwrite.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	value, ok, err := st.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected absent key, got %q ok=%v", value, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Set(ctx, "draft", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "draft", "second"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := st.Get(ctx, "draft")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "second" {
		t.Fatalf("expected last write to win, got %q ok=%v", value, ok)
	}
}

func TestDeleteRemovesOnlyKey(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"b", "a", "c"} {
		if err := st.Set(ctx, key, key); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := st.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, err := st.Get(ctx, "b"); err != nil || ok {
		t.Fatalf("expected deleted key to be absent, ok=%v err=%v", ok, err)
	}
	for _, key := range []string{"a", "c"} {
		if value, ok, err := st.Get(ctx, key); err != nil || !ok || value != key {
			t.Fatalf("expected %s to survive delete, got %q ok=%v err=%v", key, value, ok, err)
		}
	}
}

func TestReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuiwrite.db")
	ctx := context.Background()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Set(ctx, "draft", "persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	value, ok, err := st.Get(ctx, "draft")
	if err != nil || !ok || value != "persisted" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
}
