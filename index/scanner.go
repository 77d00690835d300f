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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ianlewis/go-dictd/internal/errs"
	"github.com/ianlewis/go-dictd/numeral"
)

// maxLineSize is the longest index line accepted by the Scanner.
const maxLineSize = 1 << 20

var (
	// ErrMissingColumn indicates that an index line has fewer than three tab
	// separated fields.
	ErrMissingColumn = fmt.Errorf("%w: expected 3 tab separated columns", errs.ErrFormat)

	// ErrSizeTooLarge indicates that an entry's length does not fit in 32 bits.
	ErrSizeTooLarge = fmt.Errorf("%w: entry size too large", errs.ErrFormat)
)

// Entry is an .index file entry.
type Entry struct {
	// Word is the headword as written in the index.
	Word string

	// Offset is the offset of the definition in the uncompressed data.
	Offset uint64

	// Size is the length of the definition in bytes.
	Size uint32
}

// ScannerOptions are options for scanning an .index file.
type ScannerOptions struct {
	// Alphabet is the numeral alphabet of the offset and size columns.
	Alphabet *numeral.Alphabet
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	Alphabet: numeral.Default,
}

// Scanner scans an index from start to end. Blank lines are skipped. Line
// endings may be "\n" or "\r\n" and the final line need not be terminated.
type Scanner struct {
	s        *bufio.Scanner
	alphabet *numeral.Alphabet

	entry *Entry
	line  int
	err   error
}

// NewScanner returns a new index scanner that reads lines from r.
func NewScanner(r io.Reader, options *ScannerOptions) *Scanner {
	if options == nil {
		options = DefaultScannerOptions
	}
	alphabet := options.Alphabet
	if alphabet == nil {
		alphabet = numeral.Default
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Scanner{
		s:        s,
		alphabet: alphabet,
	}
}

// Scan advances the scanner to the next index entry. It returns false if the
// scan stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		text := s.s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		e, err := s.parse(text)
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			s.entry = nil
			return false
		}
		s.entry = e
		return true
	}

	if err := s.s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.err = fmt.Errorf("%w: line %d: %w", errs.ErrFormat, s.line+1, err)
		} else {
			s.err = fmt.Errorf("%w: reading index: %w", errs.ErrIO, err)
		}
	}
	s.entry = nil
	return false
}

// Entry returns the entry read by the last call to Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Line returns the 1-based line number of the current entry.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) parse(line string) (*Entry, error) {
	// Columns past the third are ignored.
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrMissingColumn, len(fields))
	}

	offset, err := s.alphabet.Decode(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("offset of %q: %w", fields[0], err)
	}
	size, err := s.alphabet.Decode(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("size of %q: %w", fields[0], err)
	}
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %q: %d", ErrSizeTooLarge, fields[0], size)
	}

	return &Entry{
		Word:   fields[0],
		Offset: offset,
		//nolint:gosec // size is bounds checked above.
		Size: uint32(size),
	}, nil
}
