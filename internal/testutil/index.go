// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"strings"

	"github.com/ianlewis/go-dictd/index"
	"github.com/ianlewis/go-dictd/numeral"
)

// MakeIndex makes a test .index file given a list of entries. A nil
// alphabet means numeral.Default.
func MakeIndex(entries []*index.Entry, alphabet *numeral.Alphabet) []byte {
	if alphabet == nil {
		alphabet = numeral.Default
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Word)
		b.WriteByte('\t')
		b.WriteString(alphabet.Encode(e.Offset))
		b.WriteByte('\t')
		b.WriteString(alphabet.Encode(uint64(e.Size)))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Word is a headword and its definition.
type Word struct {
	Word       string
	Definition string
}

// MakeData lays out the definitions of words one after the other and
// returns the data along with index entries in the same order.
func MakeData(words []Word) ([]byte, []*index.Entry) {
	var data []byte
	entries := make([]*index.Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, &index.Entry{
			Word:   w.Word,
			Offset: uint64(len(data)),
			//nolint:gosec // test data is small.
			Size: uint32(len(w.Definition)),
		})
		data = append(data, w.Definition...)
	}
	return data, entries
}
