// Package cache implements a bounded key/value store with per-entry TTL and
// approximate LRU eviction. A hit reinserts the entry at the freshest end, so
// the entry evicted on overflow is always the least recently touched one.
package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	// DefaultCapacity is the hard cap on stored entries.
	DefaultCapacity = 100
	// DefaultTTL applies when Set is called without an explicit TTL.
	DefaultTTL = 5 * time.Minute
)

type entry struct {
	key       string
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded LRU+TTL store. The zero value is not usable; use New.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List // front = oldest, back = freshest

	now func() time.Time // overridable for tests
}

// New creates a cache with the given capacity and default TTL.
// Non-positive arguments fall back to the package defaults.
func New(capacity int, defaultTTL time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      defaultTTL,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key, expiring after ttl. If the cache is full the
// oldest entry is evicted first, so capacity is never exceeded.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = c.now().Add(ttl)
		c.order.MoveToBack(el)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	el := c.order.PushBack(&entry{key: key, value: value, expiresAt: c.now().Add(ttl)})
	c.items[key] = el
}

// Get returns the live value for key. A stale entry is removed and reported as
// a miss. A hit promotes the entry to the freshest position.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().After(e.expiresAt) {
		c.remove(el)
		return nil, false
	}
	c.order.MoveToBack(el)
	return e.value, true
}

// Delete removes key and its expiry metadata.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len reports the number of stored entries, including not-yet-collected stale ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) evictOldest() {
	if el := c.order.Front(); el != nil {
		c.remove(el)
	}
}

func (c *Cache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
