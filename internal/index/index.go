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

// Package index implements a generic sorted array index with binary search.
package index

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index. Values are ordered by the byte order
// of their key, as returned by String, and values with equal keys are
// ordered by the tie function. The sort is stable so values that compare
// equal on both keep their original order.
type Index[V fmt.Stringer] struct {
	index []V
}

// NewIndex creates an index from the given slice. tie may be nil. tie(a, b)
// should return a negative number when a < b, a positive number when a > b
// and zero when a == b.
func NewIndex[V fmt.Stringer](values []V, tie func(a, b V) int) *Index[V] {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		if c := strings.Compare(a.String(), b.String()); c != 0 {
			return c
		}
		if tie != nil {
			return tie(a, b)
		}
		return 0
	})

	return &Index[V]{
		index: sorted,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// Values returns the values in index order. The returned slice must not be
// modified.
func (idx *Index[V]) Values() []V {
	return idx.index
}

// Search performs a binary search over the index and returns the run of
// values whose key equals query.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return strings.Compare(query, idx.index[i].String())
	})
	if !found {
		return nil
	}

	j := i
	for j < len(idx.index) && idx.index[j].String() == query {
		j++
	}
	return idx.index[i:j]
}

// Prefix returns an iterator over the values whose key starts with prefix, in
// index order. The first match is found with a binary search.
func (idx *Index[V]) Prefix(prefix string) iter.Seq[V] {
	return func(yield func(V) bool) {
		i := sort.Search(len(idx.index), func(i int) bool {
			return idx.index[i].String() >= prefix
		})
		for ; i < len(idx.index) && strings.HasPrefix(idx.index[i].String(), prefix); i++ {
			if !yield(idx.index[i]) {
				return
			}
		}
	}
}
