package scrape

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreGetSet(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "menus.db"), time.Hour)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("missing"); ok {
		t.Error("hit on empty store")
	}

	if err := store.Set("k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := store.Get("k")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Get = %q, %v", got, ok)
	}

	// Overwrite.
	if err := store.Set("k", []byte("fresher"), time.Hour); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if got, _ := store.Get("k"); !bytes.Equal(got, []byte("fresher")) {
		t.Errorf("Get after overwrite = %q", got)
	}
}

func TestStoreExpiry(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "menus.db"), time.Hour)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Set("stale", []byte("old"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := store.Get("stale"); ok {
		t.Error("expired entry served")
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.db")

	store, err := OpenStore(path, time.Hour)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := store.Set("k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := OpenStore(path, time.Hour)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("k")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}
}
