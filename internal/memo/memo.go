// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package memo provides a small, fixed capacity, associative cache
// with an explicit eviction policy. It is intended for memoizing a
// handful of expensive results and is not safe for concurrent use.
package memo

import (
	"fmt"

	"cloudeng.io/algo/container/circular"
)

// Policy determines which entry is evicted when a full cache
// receives a new key.
type Policy int

const (
	// FIFO evicts the entry that was inserted first, reads do not
	// affect the order.
	FIFO Policy = iota
	// LRU evicts the entry that was least recently read or written.
	LRU
)

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "fifo"
	case LRU:
		return "lru"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy parses the names returned by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fifo", "FIFO":
		return FIFO, nil
	case "lru", "LRU":
		return LRU, nil
	}
	return FIFO, fmt.Errorf("unknown eviction policy: %q", s)
}

// Stats records cache activity since the last Reset.
type Stats struct {
	Hits, Misses, Evictions int
}

// Cache is a fixed capacity cache.
type Cache[K comparable, V any] struct {
	capacity int
	policy   Policy
	entries  map[K]V
	// order holds the keys, oldest first.
	order *circular.Buffer[K]
	stats Stats
}

// New returns a cache that holds at most capacity entries, a capacity
// of less than 1 is treated as 1.
func New[K comparable, V any](capacity int, policy Policy) *Cache[K, V] {
	capacity = max(capacity, 1)
	return &Cache[K, V]{
		capacity: capacity,
		policy:   policy,
		entries:  make(map[K]V, capacity),
		order:    circular.NewBuffer[K](capacity),
	}
}

// Get returns the value stored for key, if any.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return v, false
	}
	c.stats.Hits++
	if c.policy == LRU {
		c.touch(key)
	}
	return v, true
}

// Put stores value for key, evicting an entry if the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = value
		if c.policy == LRU {
			c.touch(key)
		}
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order.Head(1)
		delete(c.entries, oldest[0])
		c.stats.Evictions++
	}
	c.entries[key] = value
	c.order.Append([]K{key})
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Keys returns the cached keys, oldest first.
func (c *Cache[K, V]) Keys() []K {
	keys := c.order.Head(c.order.Len())
	c.order.Append(keys)
	return keys
}

// Stats returns the hit, miss and eviction counts since the last Reset.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats
}

// Reset discards all entries and statistics.
func (c *Cache[K, V]) Reset() {
	clear(c.entries)
	c.order.Head(c.order.Len())
	c.order.Compact()
	c.stats = Stats{}
}

// touch moves key to the most recently used position.
func (c *Cache[K, V]) touch(key K) {
	keys := c.order.Head(c.order.Len())
	for _, k := range keys {
		if k != key {
			c.order.Append([]K{k})
		}
	}
	c.order.Append([]K{key})
}
