package webpage

import (
	"testing"
	"time"
)

func TestDocumentCacheGetSet(t *testing.T) {
	cache := newDocumentCache(2)
	if cache == nil {
		t.Fatalf("expected cache instance")
	}

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set("key", Document{Text: "value"}, now.Add(time.Hour), now)

	doc, ok := cache.get("key", now)
	if !ok {
		t.Fatalf("expected cached document to be present")
	}

	if doc.Text != "value" {
		t.Fatalf("unexpected document text: %q", doc.Text)
	}
}

func TestDocumentCacheSkipsEmptyDocuments(t *testing.T) {
	cache := newDocumentCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set("key", Document{Title: "only a title"}, now.Add(time.Hour), now)

	if _, ok := cache.get("key", now); ok {
		t.Fatalf("expected document without text to be skipped")
	}
}

func TestDocumentCacheExpiresEntries(t *testing.T) {
	cache := newDocumentCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set("key", Document{Text: "value"}, now.Add(time.Minute), now)

	if _, ok := cache.get("key", now.Add(2*time.Minute)); ok {
		t.Fatalf("expected cache entry to expire")
	}

	if len(cache.entries) != 0 {
		t.Fatalf("expected expired cache entry to be removed")
	}
}

func TestDocumentCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newDocumentCache(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	expiresAt := now.Add(time.Hour)

	cache.set("a", Document{Text: "document-a"}, expiresAt, now)
	cache.set("b", Document{Text: "document-b"}, expiresAt, now)

	if _, ok := cache.get("a", now); !ok {
		t.Fatalf("expected entry a to exist before eviction check")
	}

	cache.set("c", Document{Text: "document-c"}, expiresAt, now)

	if _, ok := cache.get("a", now); !ok {
		t.Fatalf("expected entry a to remain after evicting least recently used")
	}

	if _, ok := cache.get("b", now); ok {
		t.Fatalf("expected entry b to be evicted")
	}

	if _, ok := cache.get("c", now); !ok {
		t.Fatalf("expected entry c to be cached")
	}
}

func TestNilDocumentCacheIsNoop(t *testing.T) {
	var cache *documentCache
	now := time.Now()

	cache.set("key", Document{Text: "value"}, now.Add(time.Hour), now)
	if _, ok := cache.get("key", now); ok {
		t.Fatalf("expected nil cache to miss")
	}
}
