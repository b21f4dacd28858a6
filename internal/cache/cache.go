// Package cache holds short-lived copies of derived product list responses.
package cache

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// CachedResponse is a rendered response body with its status and headers.
type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

type entry struct {
	resp      *CachedResponse
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches rendered list responses per visitor.
// Keys are "visitorID:method:path?query"; only GET responses belong here.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64

	// generation counts Clear calls; visitorGens counts InvalidateVisitor
	// calls per visitor since the last Clear.
	generation  uint64
	visitorGens map[string]uint64
}

// Snapshot records the cache generations a response is derived under.
// Take it before reading the data the response is built from.
type Snapshot struct {
	visitorID  string
	generation uint64
	visitorGen uint64
}

// New creates a cache. A non-positive ttl or maxEntries disables caching.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	return &ResponseCache{
		items:       make(map[string]entry),
		ttl:         ttl,
		maxEntries:  maxEntries,
		visitorGens: make(map[string]uint64),
	}
}

// MakeKey builds a cache key. path should include the raw query.
func MakeKey(visitorID, method, path string) string {
	return visitorID + ":" + method + ":" + path
}

// Enabled reports whether Set will store anything.
func (c *ResponseCache) Enabled() bool {
	return c != nil && c.ttl > 0 && c.maxEntries > 0
}

// Get returns a cached response if found and not expired.
func (c *ResponseCache) Get(key string) (*CachedResponse, bool) {
	if !c.Enabled() {
		return nil, false
	}
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.resp, true
}

// Snapshot returns the current generations for visitorID.
func (c *ResponseCache) Snapshot(visitorID string) Snapshot {
	if c == nil {
		return Snapshot{visitorID: visitorID}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		visitorID:  visitorID,
		generation: c.generation,
		visitorGen: c.visitorGens[visitorID],
	}
}

// Set stores resp, evicting the oldest entry when full.
func (c *ResponseCache) Set(key string, resp *CachedResponse) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, resp)
}

// SetIfCurrent stores resp only if neither Clear nor InvalidateVisitor for
// the snapshot's visitor ran since snap was taken. It reports whether resp
// was stored.
func (c *ResponseCache) SetIfCurrent(snap Snapshot, key string, resp *CachedResponse) bool {
	if !c.Enabled() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != snap.generation || c.visitorGens[snap.visitorID] != snap.visitorGen {
		return false
	}
	c.store(key, resp)
	return true
}

// store inserts resp. Must be called with mu held.
func (c *ResponseCache) store(key string, resp *CachedResponse) {
	e := entry{
		resp:      resp,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidateVisitor drops every entry cached for visitorID.
func (c *ResponseCache) InvalidateVisitor(visitorID string) {
	if c == nil {
		return
	}
	prefix := visitorID + ":"
	c.mu.Lock()
	defer c.mu.Unlock()

	c.visitorGens[visitorID]++

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.generation++
	c.visitorGens = make(map[string]uint64)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
