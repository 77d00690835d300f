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
package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dictd/cache"
)

// TestCache_LRU tests that the least recently used word is evicted.
func TestCache_LRU(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string

		// touch is looked up after A and B are added and before C is.
		touch string

		hits   []string
		misses []string
	}{
		{
			name:   "no touch",
			hits:   []string{"B", "C"},
			misses: []string{"A"},
		},
		{
			name:   "touch A",
			touch:  "A",
			hits:   []string{"A", "C"},
			misses: []string{"B"},
		},
		{
			name:   "touch B",
			touch:  "B",
			hits:   []string{"B", "C"},
			misses: []string{"A"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := cache.New(2)
			c.Put("A", []string{"a"})
			c.Put("B", []string{"b"})
			if tc.touch != "" {
				if _, ok := c.Get(tc.touch); !ok {
					t.Fatalf("Get(%q) missed", tc.touch)
				}
			}
			c.Put("C", []string{"c"})

			if got, want := c.Len(), 2; got != want {
				t.Errorf("Len() = %d, want %d", got, want)
			}
			for _, w := range tc.hits {
				if _, ok := c.Get(w); !ok {
					t.Errorf("Get(%q) missed", w)
				}
			}
			for _, w := range tc.misses {
				if defs, ok := c.Get(w); ok {
					t.Errorf("Get(%q) = %v, want miss", w, defs)
				}
			}
		})
	}
}

// TestCache_Put tests replacing cached definitions.
func TestCache_Put(t *testing.T) {
	t.Parallel()

	c := cache.New(2)
	c.Put("apple", []string{"a red fruit"})
	c.Put("apple", []string{"a red fruit", "a company"})

	got, ok := c.Get("apple")
	if !ok {
		t.Fatal("Get() missed")
	}
	if diff := cmp.Diff([]string{"a red fruit", "a company"}, got); diff != "" {
		t.Errorf("Get() (-want, +got):\n%s", diff)
	}
	if got, want := c.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

// TestCache_Copies tests that callers cannot modify cached definitions.
func TestCache_Copies(t *testing.T) {
	t.Parallel()

	c := cache.New(1)
	defs := []string{"a red fruit"}
	c.Put("apple", defs)
	defs[0] = "changed"

	got, _ := c.Get("apple")
	got[0] = "changed again"

	got, _ = c.Get("apple")
	if diff := cmp.Diff([]string{"a red fruit"}, got); diff != "" {
		t.Errorf("Get() (-want, +got):\n%s", diff)
	}
}

// TestCache_Disabled tests that a zero capacity disables caching.
func TestCache_Disabled(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1} {
		c := cache.New(capacity)
		c.Put("apple", []string{"a red fruit"})
		if defs, ok := c.Get("apple"); ok {
			t.Errorf("New(%d).Get() = %v, want miss", capacity, defs)
		}
		if got := c.Len(); got != 0 {
			t.Errorf("New(%d).Len() = %d, want 0", capacity, got)
		}
		c.Purge()
	}
}

// TestCache_Purge tests Purge.
func TestCache_Purge(t *testing.T) {
	t.Parallel()

	c := cache.New(cache.DefaultCapacity)
	for i := range cache.DefaultCapacity * 2 {
		c.Put(fmt.Sprint(i), []string{fmt.Sprint(i)})
	}
	if got, want := c.Len(), cache.DefaultCapacity; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}

	c.Purge()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

// TestCache_Concurrent tests concurrent use of a Cache.
func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.New(8)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				w := fmt.Sprint((g + i) % 16)
				if defs, ok := c.Get(w); ok && defs[0] != w {
					t.Errorf("Get(%q) = %v", w, defs)
					return
				}
				c.Put(w, []string{w})
			}
		}()
	}
	wg.Wait()

	if got := c.Len(); got > 8 {
		t.Errorf("Len() = %d, want at most 8", got)
	}
}
