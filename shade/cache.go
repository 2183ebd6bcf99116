// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shade

import (
	"image"
	"sync"

	"seehuhn.de/go/render3d/internal/logging"
)

// Cache holds surface buffers which can be dropped when memory runs low.
// Evicted buffers are rebuilt on the next access.  The least recently used
// buffers are evicted first.
//
// A Cache is safe for concurrent use.
type Cache struct {
	// Budget is the number of bytes of pixel data the cache keeps before
	// evicting buffers.  Zero means no limit.
	Budget int

	mu      sync.Mutex
	entries map[uint64]*cacheEntry
	lru     lruList[uint64]
	size    int
}

type cacheEntry struct {
	img  *image.RGBA
	node *lruNode[uint64]
}

// NewCache returns an empty cache with the given budget in bytes.
func NewCache(budget int) *Cache {
	return &Cache{
		Budget:  budget,
		entries: make(map[uint64]*cacheEntry),
	}
}

// GetOrBuild returns the buffer stored under id.  If there is none, build
// is called to create it, and the result is stored.  Errors from build are
// returned unchanged and nothing is stored.
func (c *Cache) GetOrBuild(id uint64, build func() (*image.RGBA, error)) (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok {
		c.lru.MoveToFront(e.node)
		return e.img, nil
	}

	img, err := build()
	if err != nil {
		return nil, err
	}
	if c.entries == nil {
		c.entries = make(map[uint64]*cacheEntry)
	}
	c.entries[id] = &cacheEntry{img: img, node: c.lru.PushFront(id)}
	c.size += len(img.Pix)

	if c.Budget > 0 {
		// keep at least the buffer we just built
		c.evictTo(c.Budget, id)
	}
	return img, nil
}

// Evict removes the buffer stored under id, if any.
func (c *Cache) Evict(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok {
		c.remove(id, e)
	}
}

// Trim evicts buffers until at most n bytes of pixel data remain.  This
// can be called when the program is short of memory.
func (c *Cache) Trim(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictTo(n, 0)
}

// Len returns the number of buffers in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Size returns the number of bytes of pixel data in the cache.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// evictTo removes least recently used entries, other than keep, until the
// size is at most n.  The caller must hold c.mu.
func (c *Cache) evictTo(n int, keep uint64) {
	for node := c.lru.Oldest(); node != nil && c.size > n; {
		prev := node.prev
		if node.key != keep || keep == 0 {
			c.remove(node.key, c.entries[node.key])
			logging.Logger().Debug("surface buffer evicted", "id", node.key, "cacheSize", c.size)
		}
		node = prev
	}
}

// remove deletes an entry.  The caller must hold c.mu.
func (c *Cache) remove(id uint64, e *cacheEntry) {
	c.lru.Remove(e.node)
	delete(c.entries, id)
	c.size -= len(e.img.Pix)
}

func (c *Cache) has(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[id]
	return ok
}
