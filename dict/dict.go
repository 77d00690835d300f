// Copyright 2021 Google LLC
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

// Package dict implements reading .dict and .dict.dz files.
package dict

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictd/dictzip"
	"github.com/ianlewis/go-dictd/index"
	"github.com/ianlewis/go-dictd/internal/errs"
	"github.com/ianlewis/go-dictd/internal/mmap"
)

// DefaultMaxEntrySize is the default limit on the size of a single entry.
// No definition is larger than this, so larger requests come from a
// malformed or malicious index.
const DefaultMaxEntrySize = 1 << 20

var (
	// ErrEntryTooLarge indicates that an entry is larger than the maximum
	// entry size.
	ErrEntryTooLarge = fmt.Errorf("%w: entry too large", errs.ErrFormat)

	// ErrNotCompressed indicates that a file expected to be dictzip
	// compressed is not a gzip file.
	ErrNotCompressed = fmt.Errorf("%w: not a dictzip file", errs.ErrFormat)

	// ErrOutOfRange indicates a read past the end of the data.
	ErrOutOfRange = dictzip.ErrOutOfRange
)

// Options are options for dict data.
type Options struct {
	// Compressed indicates that the data must be dictzip compressed. When
	// false the data is sniffed: gzip data is read as dictzip and anything
	// else as plain data.
	Compressed bool

	// MaxEntrySize is the largest entry that will be read. Zero means
	// DefaultMaxEntrySize and a negative value means no limit.
	MaxEntrySize int

	// Mmap memory maps the file in Open instead of using positional reads.
	Mmap bool
}

// DefaultOptions is the default options for a Dict.
var DefaultOptions = &Options{
	MaxEntrySize: DefaultMaxEntrySize,
}

// ranger reads ranges of uncompressed data.
type ranger interface {
	ReadRange(offset uint64, length uint32) ([]byte, error)
	Size() uint64
}

// Dict represents a dictd dictionary's definition data. A Dict is safe for
// concurrent use if its io.ReaderAt is.
type Dict struct {
	r       ranger
	closer  io.Closer
	maxSize int
}

// New returns a new Dict reading size bytes from r.
func New(r io.ReaderAt, size int64, options *Options) (*Dict, error) {
	if options == nil {
		options = DefaultOptions
	}

	maxSize := options.MaxEntrySize
	if maxSize == 0 {
		maxSize = DefaultMaxEntrySize
	}

	var magic [2]byte
	n, err := r.ReadAt(magic[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: reading dict: %w", errs.ErrIO, err)
	}

	d := &Dict{
		maxSize: maxSize,
	}
	switch {
	case dictzip.HasMagic(magic[:n]):
		z, err := dictzip.NewReader(r, size)
		if err != nil {
			return nil, fmt.Errorf("reading dictzip header: %w", err)
		}
		d.r = z
	case options.Compressed:
		return nil, ErrNotCompressed
	default:
		d.r = &plain{
			r:    r,
			size: size,
		}
	}
	return d, nil
}

// Open opens the .dict or .dict.dz file at path. Files with a ".dz"
// extension must be dictzip compressed. Dict takes ownership of the file,
// which is closed by the Dict's Close method.
func Open(path string, options *Options) (*Dict, error) {
	opts := *DefaultOptions
	if options != nil {
		opts = *options
	}
	if strings.EqualFold(filepath.Ext(path), ".dz") {
		opts.Compressed = true
	}

	var r io.ReaderAt
	var c io.Closer
	var size int64
	if opts.Mmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: opening dict: %w", errs.ErrIO, err)
		}
		r, c, size = m, m, m.Len()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: opening dict: %w", errs.ErrIO, err)
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: opening dict: %w", errs.ErrIO, err)
		}
		r, c, size = f, f, st.Size()
	}

	d, err := New(r, size, &opts)
	if err != nil {
		c.Close()
		return nil, err
	}
	d.closer = c
	return d, nil
}

// Size returns the size of the uncompressed data.
func (d *Dict) Size() uint64 {
	return d.r.Size()
}

// Compressed reports whether the data is dictzip compressed.
func (d *Dict) Compressed() bool {
	_, ok := d.r.(*dictzip.Reader)
	return ok
}

// ReadRange returns length bytes of uncompressed data starting at offset.
func (d *Dict) ReadRange(offset uint64, length uint32) ([]byte, error) {
	if d.maxSize > 0 && uint64(length) > uint64(d.maxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrEntryTooLarge, length, d.maxSize)
	}
	//nolint:wrapcheck // errors are wrapped by the readers.
	return d.r.ReadRange(offset, length)
}

// Read returns the data of the given index entry.
func (d *Dict) Read(e *index.Entry) ([]byte, error) {
	b, err := d.ReadRange(e.Offset, e.Size)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", e.Word, err)
	}
	return b, nil
}

// Close closes the dict file if the Dict was created by Open.
func (d *Dict) Close() error {
	if d.closer == nil {
		return nil
	}
	if err := d.closer.Close(); err != nil {
		return fmt.Errorf("closing dict: %w", err)
	}
	return nil
}

// plain reads uncompressed data.
type plain struct {
	r    io.ReaderAt
	size int64
}

func (p *plain) Size() uint64 {
	//nolint:gosec // file sizes are non-negative.
	return uint64(p.size)
}

func (p *plain) ReadRange(offset uint64, length uint32) ([]byte, error) {
	end := offset + uint64(length)
	if end < offset || end > p.Size() {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfRange, offset, end, p.size)
	}

	b := make([]byte, length)
	//nolint:gosec // offset is bounds checked above.
	n, err := p.r.ReadAt(b, int64(offset))
	if n < len(b) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: reading dict: %w", errs.ErrIO, err)
	}
	return b, nil
}
