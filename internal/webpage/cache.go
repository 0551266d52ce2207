package webpage

import (
	"container/list"
	"sync"
	"time"
)

const (
	documentCacheMaxEntries = 256
	documentCacheTTL        = 15 * time.Minute
)

type documentCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
}

type documentCacheEntry struct {
	key       string
	doc       Document
	expiresAt time.Time
}

func newDocumentCache(maxEntries int) *documentCache {
	if maxEntries <= 0 {
		return nil
	}

	return &documentCache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *documentCache) get(key string, now time.Time) (Document, bool) {
	if c == nil || key == "" {
		return Document{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return Document{}, false
	}

	entry, ok := elem.Value.(*documentCacheEntry)
	if !ok {
		return Document{}, false
	}

	if now.After(entry.expiresAt) {
		c.removeElement(elem)

		return Document{}, false
	}

	c.order.MoveToFront(elem)

	return entry.doc, true
}

func (c *documentCache) set(key string, doc Document, expiresAt time.Time, now time.Time) {
	if c == nil || key == "" || doc.Text == "" || expiresAt.IsZero() {
		return
	}

	if !expiresAt.After(now) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry, castOk := elem.Value.(*documentCacheEntry)
		if !castOk {
			return
		}

		entry.doc = doc
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)

		return
	}

	elem := c.order.PushFront(&documentCacheEntry{
		key:       key,
		doc:       doc,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	c.evictExpiredLocked(now)
	c.enforceSizeLimitLocked()
}

func (c *documentCache) evictExpiredLocked(now time.Time) {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()

		if entry, ok := elem.Value.(*documentCacheEntry); ok && now.After(entry.expiresAt) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *documentCache) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *documentCache) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*documentCacheEntry)
	if !ok {
		return
	}

	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
