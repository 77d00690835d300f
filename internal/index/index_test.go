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

package index

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type String string

func (s String) String() string {
	return string(s)
}

// pair is keyed by key and tie-broken by raw.
type pair struct {
	key string
	raw string
	pos int
}

func (p pair) String() string {
	return p.key
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		query    string
		expected []String
	}{
		{
			name:     "single results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "foo",
			expected: []String{"foo"},
		},
		{
			name:     "multiple results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "bar",
			expected: []String{"bar", "bar"},
		},
		{
			name:     "no results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "none",
			expected: nil,
		},
		{
			name:     "empty index",
			index:    nil,
			query:    "foo",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := NewIndex(test.index, nil)

			if diff := cmp.Diff(test.expected, index.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_tie(t *testing.T) {
	t.Parallel()

	values := []pair{
		{key: "b", raw: "b", pos: 0},
		{key: "a", raw: "a", pos: 1},
		{key: "a", raw: "A", pos: 2},
		{key: "a", raw: "a", pos: 3},
	}
	index := NewIndex(values, func(a, b pair) int {
		return strings.Compare(a.raw, b.raw)
	})

	expected := []pair{
		{key: "a", raw: "A", pos: 2},
		{key: "a", raw: "a", pos: 1},
		{key: "a", raw: "a", pos: 3},
		{key: "b", raw: "b", pos: 0},
	}
	if diff := cmp.Diff(expected, index.Values(), cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatalf("Values (-want, +got):\n%s", diff)
	}

	// The input slice is not modified.
	if values[0].key != "b" {
		t.Fatalf("NewIndex modified its input")
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		prefix   string
		expected []String
	}{
		{
			name:     "all",
			index:    []String{"b", "a", "c"},
			prefix:   "",
			expected: []String{"a", "b", "c"},
		},
		{
			name:     "run",
			index:    []String{"apply", "banana", "app", "apple", "ap"},
			prefix:   "app",
			expected: []String{"app", "apple", "apply"},
		},
		{
			name:     "none",
			index:    []String{"apple", "banana"},
			prefix:   "c",
			expected: nil,
		},
		{
			name:     "past end",
			index:    []String{"apple", "banana"},
			prefix:   "zzz",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := NewIndex(test.index, nil)
			got := slices.Collect(index.Prefix(test.prefix))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_PrefixStop(t *testing.T) {
	t.Parallel()

	index := NewIndex([]String{"a1", "a2", "a3"}, nil)
	var got []String
	for v := range index.Prefix("a") {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]String{"a1", "a2"}, got); diff != "" {
		t.Fatalf("Prefix (-want, +got):\n%s", diff)
	}
}
