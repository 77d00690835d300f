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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/transform"
)

func TestDictd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		expected      string
		caseSensitive string
	}{
		{
			name:          "ascii",
			input:         "apple",
			expected:      "apple",
			caseSensitive: "apple",
		},
		{
			name:          "case",
			input:         "Apple",
			expected:      "apple",
			caseSensitive: "Apple",
		},
		{
			name:          "diacritics",
			input:         "Café",
			expected:      "cafe",
			caseSensitive: "Cafe",
		},
		{
			name:          "german",
			input:         "grüßen",
			expected:      "grussen",
			caseSensitive: "grußen",
		},
		{
			name:          "whitespace",
			input:         "  ad \t hoc ",
			expected:      "ad hoc",
			caseSensitive: "ad hoc",
		},
		{
			name:          "precomposed and decomposed",
			input:         "Amélie",
			expected:      "amelie",
			caseSensitive: "Amelie",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := String(Dictd(), test.input)
			if err != nil {
				t.Fatalf("String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Dictd (-want, +got):\n%s", diff)
			}

			got, err = String(DictdCaseSensitive(), test.input)
			if err != nil {
				t.Fatalf("String: %v", err)
			}
			if diff := cmp.Diff(test.caseSensitive, got); diff != "" {
				t.Errorf("DictdCaseSensitive (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   []byte
		dst   []byte
		atEOF bool

		expected []byte
		nDst     int
		nSrc     int
		err      error
	}{
		{
			name:  "leading whitespace",
			src:   []byte(" \t　foo"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'f', 'o', 'o', 0, 0},
			nDst:     3,
			nSrc:     8,
		},
		{
			name:  "trailing whitespace",
			src:   []byte("foo \t　"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'f', 'o', 'o', 0, 0},
			nDst:     3,
			nSrc:     8,
		},
		{
			name:  "internal spans",
			src:   []byte("foo \t　 bar  baz"),
			dst:   make([]byte, 12),
			atEOF: true,

			expected: []byte{'f', 'o', 'o', ' ', 'b', 'a', 'r', ' ', 'b', 'a', 'z', 0},
			nDst:     11,
			nSrc:     17,
		},
		{
			name:  "short dst",
			src:   []byte("foo bar"),
			dst:   make([]byte, 3),
			atEOF: true,

			expected: []byte{'f', 'o', 'o'},
			nDst:     3,
			nSrc:     4,
			err:      transform.ErrShortDst,
		},
		{
			name:  "short src",
			src:   []byte("foo 　")[:5],
			dst:   make([]byte, 10),
			atEOF: false,

			expected: []byte{'f', 'o', 'o', 0, 0, 0, 0, 0, 0, 0},
			nDst:     3,
			nSrc:     4,
			err:      transform.ErrShortSrc,
		},
		{
			name:  "invalid utf-8",
			src:   []byte{'f', 0xe3, ' ', 'b'},
			dst:   make([]byte, 10),
			atEOF: true,

			// NOTE: []byte{0xef, 0xbf, 0xbd} is utf8.RuneError.
			expected: []byte{'f', 0xef, 0xbf, 0xbd, ' ', 'b', 0, 0, 0, 0},
			nDst:     6,
			nSrc:     4,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w := Whitespace{}
			nDst, nSrc, err := w.Transform(test.dst, test.src, test.atEOF)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("err (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.nDst, nDst); diff != "" {
				t.Fatalf("nDst (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.nSrc, nSrc); diff != "" {
				t.Fatalf("nSrc (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, test.dst); diff != "" {
				t.Fatalf("dst (-want, +got):\n%s", diff)
			}
		})
	}
}
