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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-dictd/internal/errs"
	"github.com/ianlewis/go-dictd/internal/folding"
	"github.com/ianlewis/go-dictd/internal/index"
	"github.com/ianlewis/go-dictd/numeral"
)

// foldedEntry is an entry keyed by its folded headword.
type foldedEntry struct {
	folded string
	entry  *Entry
}

func (e *foldedEntry) String() string {
	return e.folded
}

// Options are options for the index.
type Options struct {
	// Alphabet is the numeral alphabet of the offset and size columns. The
	// default is numeral.Default.
	Alphabet *numeral.Alphabet

	// Folder returns a [transform.Transformer] that produces the primary
	// ordering key of a headword. When nil, dictd folding is used: case
	// and diacritic insensitive, or only diacritic insensitive if the index
	// has a 00-database-case-sensitive entry.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	Alphabet: numeral.Default,
}

// Index is an in-memory dictd index. Entries are ordered by their folded
// headword and then by the raw headword bytes. Entries with identical
// headwords keep their file order. An Index is immutable and safe for
// concurrent use.
type Index struct {
	// index is sorted by the folded headword.
	index *index.Index[*foldedEntry]

	// folder performs folding on text.
	folder func() transform.Transformer

	metadata Metadata
}

// New reads a full index from r. Loading stops at the first malformed line
// and no Index is returned in that case.
func New(r io.Reader, options *Options) (*Index, error) {
	if options == nil {
		options = DefaultOptions
	}

	s := NewScanner(r, &ScannerOptions{
		Alphabet: options.Alphabet,
	})
	var entries []*Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	return FromEntries(entries, options)
}

// FromEntries builds an index from entries in file order.
func FromEntries(entries []*Entry, options *Options) (*Index, error) {
	if options == nil {
		options = DefaultOptions
	}

	idx := &Index{
		metadata: readMetadata(entries),
		folder:   options.Folder,
	}
	if idx.folder == nil {
		idx.folder = folding.Dictd
		if idx.metadata.CaseSensitive {
			idx.folder = folding.DictdCaseSensitive
		}
	}

	folded := make([]*foldedEntry, 0, len(entries))
	for _, e := range entries {
		key, err := idx.fold(e.Word)
		if err != nil {
			return nil, err
		}
		folded = append(folded, &foldedEntry{
			folded: key,
			entry:  e,
		})
	}

	// Files are usually sorted already, but the order written by dictfmt
	// does not necessarily agree with the folding used here.
	idx.index = index.NewIndex(folded, func(a, b *foldedEntry) int {
		return strings.Compare(a.entry.Word, b.entry.Word)
	})

	return idx, nil
}

// Open reads the index file at path. Files ending in ".gz" are decompressed.
func Open(path string, options *Options) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening index: %w", errs.ErrIO, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: opening gzip index: %w", errs.ErrFormat, err)
		}
		defer z.Close()
		r = z
	}

	return New(r, options)
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return idx.index.Len()
}

// Entries returns all entries in index order.
func (idx *Index) Entries() []*Entry {
	values := idx.index.Values()
	entries := make([]*Entry, 0, len(values))
	for _, v := range values {
		entries = append(entries, v.entry)
	}
	return entries
}

// Metadata returns the database information entries found in the index.
func (idx *Index) Metadata() Metadata {
	return idx.metadata
}

// Exact returns the entries whose headword is byte for byte equal to word,
// in index order. The result is empty if there is no such entry.
func (idx *Index) Exact(word string) ([]*Entry, error) {
	key, err := idx.fold(word)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	for _, e := range idx.index.Search(key) {
		// The folded run also holds case and diacritic variants.
		if e.entry.Word == word {
			entries = append(entries, e.entry)
		}
	}
	return entries, nil
}

// Prefix returns the distinct headwords that start with prefix, in index
// order. Matching uses the folded headword and the prefix is folded the same
// way, so outer whitespace is ignored. If caseSensitive is set the raw
// headword must also start with the raw prefix. At most limit headwords are
// returned. A limit of zero or less means no limit, which scans the whole
// index for an empty prefix.
func (idx *Index) Prefix(prefix string, limit int, caseSensitive bool) ([]string, error) {
	key, err := idx.fold(prefix)
	if err != nil {
		return nil, err
	}

	var words []string
	seen := make(map[string]struct{})
	for e := range idx.index.Prefix(key) {
		w := e.entry.Word
		if caseSensitive && !strings.HasPrefix(w, prefix) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
		if limit > 0 && len(words) >= limit {
			break
		}
	}
	return words, nil
}

func (idx *Index) fold(s string) (string, error) {
	folded, err := folding.String(idx.folder(), s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return folded, nil
}
