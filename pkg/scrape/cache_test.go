package scrape

import (
	"bytes"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	monday := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
	nextMonday := monday.AddDate(0, 0, 7)

	a := CacheKey("https://example.test/a", monday)
	if a != CacheKey("https://example.test/a", monday) {
		t.Error("same URL and week must yield the same key")
	}
	if a == CacheKey("https://example.test/b", monday) {
		t.Error("different URLs must yield different keys")
	}
	if a == CacheKey("https://example.test/a", nextMonday) {
		t.Error("different weeks must yield different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Hour, time.Hour)

	if _, ok := c.Get("missing"); ok {
		t.Error("hit on empty cache")
	}
	if err := c.Set("k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestLayeredCache(t *testing.T) {
	fast := NewMemoryCache(time.Hour, time.Hour)
	slow := NewMemoryCache(time.Hour, time.Hour)
	layered := NewLayeredCache(fast, slow)

	// A hit in the slow tier is promoted to the fast tier.
	slow.Set("k", []byte("payload"), time.Hour)
	got, ok := layered.Get("k")
	if !ok || !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("layered Get = %q, %v", got, ok)
	}
	if _, ok := fast.Get("k"); !ok {
		t.Error("hit was not promoted to the fast tier")
	}

	// A write lands in every tier.
	layered.Set("w", []byte("both"), time.Hour)
	if _, ok := fast.Get("w"); !ok {
		t.Error("write missing from fast tier")
	}
	if _, ok := slow.Get("w"); !ok {
		t.Error("write missing from slow tier")
	}

	if _, ok := layered.Get("missing"); ok {
		t.Error("hit for missing key")
	}
}
