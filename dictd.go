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
package dictd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-dictd/cache"
	"github.com/ianlewis/go-dictd/dict"
	"github.com/ianlewis/go-dictd/index"
	"github.com/ianlewis/go-dictd/internal/errs"
	"github.com/ianlewis/go-dictd/numeral"
)

// Options are options for opening a Dictionary.
type Options struct {
	// CacheCapacity is the number of looked up words whose definitions are
	// kept in memory. Zero means cache.DefaultCapacity and a negative value
	// disables the cache.
	CacheCapacity int

	// CaseSensitivePrefix makes PrefixSearch also require that headwords
	// start with the prefix as given, byte for byte.
	CaseSensitivePrefix bool

	// Alphabet is the numeral alphabet of the index. The default is
	// numeral.Default.
	Alphabet *numeral.Alphabet

	// Folder returns the transformer producing the primary ordering key of
	// headwords. The default is dictd's case and diacritic insensitive
	// folding.
	Folder func() transform.Transformer

	// MaxEntrySize is the largest definition that will be read. Zero means
	// dict.DefaultMaxEntrySize and a negative value means no limit.
	MaxEntrySize int

	// Mmap memory maps the data file.
	Mmap bool
}

// DefaultOptions is the default options for a Dictionary.
var DefaultOptions = &Options{
	CacheCapacity: cache.DefaultCapacity,
	Alphabet:      numeral.Default,
	MaxEntrySize:  dict.DefaultMaxEntrySize,
}

// Dictionary is a dictd dictionary. A Dictionary is safe for concurrent use.
type Dictionary struct {
	index *index.Index
	dict  *dict.Dict
	cache *cache.Cache

	caseSensitivePrefix bool

	name  string
	info  string
	short string
	url   string

	// mu guards closed. Lookups hold a read lock so that Close waits for
	// them to finish.
	mu     sync.RWMutex
	closed bool
}

// Open opens the dictionary made of the .index file at indexPath and the
// .dict or .dict.dz file at dataPath. Errors are of type *OpenError.
func Open(indexPath, dataPath string, options *Options) (*Dictionary, error) {
	if options == nil {
		options = DefaultOptions
	}

	idx, err := index.Open(indexPath, &index.Options{
		Alphabet: options.Alphabet,
		Folder:   options.Folder,
	})
	if err != nil {
		return nil, &OpenError{Path: indexPath, Err: err}
	}

	data, err := dict.Open(dataPath, &dict.Options{
		MaxEntrySize: options.MaxEntrySize,
		Mmap:         options.Mmap,
	})
	if err != nil {
		return nil, &OpenError{Path: dataPath, Err: err}
	}

	d, err := New(idx, data, options)
	if err != nil {
		data.Close()
		return nil, &OpenError{Path: dataPath, Err: err}
	}
	d.name = strings.TrimSuffix(filepath.Base(indexPath), filepath.Ext(indexPath))
	return d, nil
}

// New returns a Dictionary from an index and its data. The Dictionary takes
// ownership of data, which is closed by Close. The database information
// entries are read immediately. If New fails, data is left open.
func New(idx *index.Index, data *dict.Dict, options *Options) (*Dictionary, error) {
	if options == nil {
		options = DefaultOptions
	}

	capacity := options.CacheCapacity
	if capacity == 0 {
		capacity = cache.DefaultCapacity
	}

	d := &Dictionary{
		index:               idx,
		dict:                data,
		cache:               cache.New(capacity),
		caseSensitivePrefix: options.CaseSensitivePrefix,
	}

	m := idx.Metadata()
	for _, f := range []struct {
		e    *index.Entry
		text *string
	}{
		{m.Info, &d.info},
		{m.Short, &d.short},
		{m.URL, &d.url},
	} {
		if f.e == nil {
			continue
		}
		b, err := data.Read(f.e)
		if err != nil {
			return nil, err
		}
		*f.text = metadataText(f.e.Word, b)
	}

	return d, nil
}

// metadataText returns the text of a database information entry. dictfmt
// repeats the headword on the first line, which is dropped.
func metadataText(word string, b []byte) string {
	s := string(b)
	if first, rest, ok := strings.Cut(s, "\n"); ok && strings.TrimSpace(first) == word {
		s = rest
	}
	return strings.TrimSpace(s)
}

// Name returns the dictionary's file name without the extension. It is
// empty for dictionaries created with New.
func (d *Dictionary) Name() string {
	return d.name
}

// ShortName returns the text of the 00-database-short entry.
func (d *Dictionary) ShortName() string {
	return d.short
}

// Info returns the text of the 00-database-info entry.
func (d *Dictionary) Info() string {
	return d.info
}

// URL returns the text of the 00-database-url entry.
func (d *Dictionary) URL() string {
	return d.url
}

// Len returns the number of index entries.
func (d *Dictionary) Len() int {
	return d.index.Len()
}

// Lookup returns the definitions of the headwords that are byte for byte
// equal to word, in index order. The result is empty if there are none.
// Errors are of type *LookupError.
func (d *Dictionary) Lookup(word string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, &LookupError{Word: word, Err: ErrClosed}
	}

	if defs, ok := d.cache.Get(word); ok {
		return defs, nil
	}

	entries, err := d.index.Exact(word)
	if err != nil {
		return nil, &LookupError{Word: word, Err: err}
	}

	defs := make([]string, 0, len(entries))
	for _, e := range entries {
		b, err := d.dict.Read(e)
		if err != nil {
			return nil, &LookupError{Word: word, Err: err}
		}
		if !utf8.Valid(b) {
			return nil, &LookupError{
				Word: word,
				Err:  fmt.Errorf("%w: definition at %d is not valid UTF-8", ErrFormat, e.Offset),
			}
		}
		defs = append(defs, string(b))
	}

	d.cache.Put(word, defs)
	return defs, nil
}

// Define looks up word and returns its entry, or nil if the word is not in
// the dictionary.
func (d *Dictionary) Define(word string) (*Entry, error) {
	defs, err := d.Lookup(word)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return &Entry{
		word:        word,
		definitions: defs,
	}, nil
}

// PrefixSearch returns up to limit distinct headwords starting with prefix
// in index order. A limit of zero or less means no limit. The data file is
// not read.
func (d *Dictionary) PrefixSearch(prefix string, limit int) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, ErrClosed
	}

	words, err := d.index.Prefix(prefix, limit, d.caseSensitivePrefix)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", prefix, err)
	}
	return words, nil
}

// Close closes the data file. It waits for running lookups to finish. Later
// calls to Lookup, PrefixSearch and Close return ErrClosed.
func (d *Dictionary) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.cache.Purge()
	//nolint:wrapcheck // dict errors carry context.
	return d.dict.Close()
}

// OpenAll opens all dictionaries under a directory. Every .index file is
// paired with the .dict.dz or .dict file next to it. Dictionaries are opened
// in parallel. This function returns all successfully opened dictionaries
// along with any errors that occurred.
func OpenAll(dir string, options *Options) ([]*Dictionary, []error) {
	var indexPaths []string
	var errList []error
	if err := filepath.WalkDir(dir, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errList = append(errList, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".index") {
			indexPaths = append(indexPaths, path)
		}
		return nil
	}); err != nil {
		errList = append(errList, err)
		return nil, errList
	}

	dicts := make([]*Dictionary, len(indexPaths))
	openErrs := make([]error, len(indexPaths))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, indexPath := range indexPaths {
		eg.Go(func() error {
			dataPath, err := findDataPath(indexPath)
			if err != nil {
				openErrs[i] = &OpenError{Path: indexPath, Err: err}
				return nil
			}
			dicts[i], openErrs[i] = Open(indexPath, dataPath, options)
			return nil
		})
	}
	// Errors are collected per dictionary.
	_ = eg.Wait()

	var opened []*Dictionary
	for i, d := range dicts {
		if openErrs[i] != nil {
			errList = append(errList, openErrs[i])
			continue
		}
		opened = append(opened, d)
	}
	return opened, errList
}

// findDataPath returns the data file for the index file at indexPath.
func findDataPath(indexPath string) (string, error) {
	baseName := strings.TrimSuffix(indexPath, filepath.Ext(indexPath))

	dictExts := []string{".dict.dz", ".dict", ".DICT.DZ", ".DICT", ".dict.DZ", ".DICT.dz"}
	for _, ext := range dictExts {
		dictPath := baseName + ext
		_, err := os.Stat(dictPath)
		if err == nil {
			return dictPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
	}
	return "", fmt.Errorf("%w: no .dict or .dict.dz file: %w", errs.ErrIO, fs.ErrNotExist)
}
