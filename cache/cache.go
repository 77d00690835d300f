// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package cache implements the LRU cache of looked up definitions.
package cache

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the default number of cached words.
const DefaultCapacity = 64

// Cache is a bounded least recently used cache from a headword to its
// definitions. A Cache is safe for concurrent use. A single lock guards the
// whole cache.
type Cache struct {
	// lru is nil when caching is disabled.
	lru *lru.Cache[string, []string]
}

// New returns a new Cache holding at most capacity words. A capacity of zero
// or less disables caching: Put does nothing and Get always misses.
func New(capacity int) *Cache {
	c := &Cache{}
	if capacity > 0 {
		// lru.New only fails for a non-positive size.
		c.lru, _ = lru.New[string, []string](capacity)
	}
	return c
}

// Get returns the definitions cached for word and marks word as the most
// recently used.
func (c *Cache) Get(word string) ([]string, bool) {
	if c.lru == nil {
		return nil, false
	}
	defs, ok := c.lru.Get(word)
	if !ok {
		return nil, false
	}
	return slices.Clone(defs), true
}

// Put caches defs for word, replacing any previous definitions. The least
// recently used word is evicted if the cache is full.
func (c *Cache) Put(word string, defs []string) {
	if c.lru == nil {
		return
	}
	c.lru.Add(word, slices.Clone(defs))
}

// Len returns the number of cached words.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge removes all cached words.
func (c *Cache) Purge() {
	if c.lru == nil {
		return
	}
	c.lru.Purge()
}
