package server

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/platform"
)

// treeKey identifies a unique tree fetch scope. Trees fetched at different
// depths are cached separately because a shallow tree is not a prefix the
// deeper one can be cut from.
type treeKey struct {
	Handle uintptr
	Depth  int
}

const treeCacheSize = 64

// TreeCache is a TTL cache for accessibility element trees. Tree walks are
// the most expensive operation the server performs, and agents often read
// the same window several times between actions.
type TreeCache struct {
	lru *expirable.LRU[treeKey, []model.Element]
}

// NewTreeCache creates a cache with the given entry lifetime. A ttl of 0
// disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	if ttl == 0 {
		return &TreeCache{}
	}
	return &TreeCache{
		lru: expirable.NewLRU[treeKey, []model.Element](treeCacheSize, nil, ttl),
	}
}

// WindowTree returns a cached tree when fresh, otherwise fetches from the
// reader and stores the result. The caller must hold the provider mutex.
func (c *TreeCache) WindowTree(ctx context.Context, reader platform.Reader, handle uintptr, depth int) ([]model.Element, error) {
	if c.lru == nil {
		return reader.WindowTree(ctx, handle, depth)
	}
	key := treeKey{Handle: handle, Depth: depth}
	if elements, ok := c.lru.Get(key); ok {
		return elements, nil
	}
	elements, err := reader.WindowTree(ctx, handle, depth)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, elements)
	return elements, nil
}

// InvalidateWindow drops all cached trees for a window, regardless of depth.
func (c *TreeCache) InvalidateWindow(handle uintptr) {
	if c.lru == nil {
		return
	}
	for _, key := range c.lru.Keys() {
		if key.Handle == handle {
			c.lru.Remove(key)
		}
	}
}

// InvalidateAll clears the entire cache. Input that is not tied to a single
// window (typing, key combos, scrolling) can change any tree.
func (c *TreeCache) InvalidateAll() {
	if c.lru == nil {
		return
	}
	c.lru.Purge()
}
