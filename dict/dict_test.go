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
package dict_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dictd/dict"
	"github.com/ianlewis/go-dictd/index"
	"github.com/ianlewis/go-dictd/internal/errs"
	"github.com/ianlewis/go-dictd/internal/testutil"
)

var fruit = []testutil.Word{
	{Word: "apple", Definition: "a red fruit"},
	{Word: "banana", Definition: "a long yellow fruit"},
	{Word: "cherry", Definition: strings.Repeat("a small stone fruit ", 200)},
	{Word: "damson", Definition: "a plum"},
}

// TestOpen tests reading entries from plain and compressed files.
func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       *testutil.DictOptions
		dictOpts   *dict.Options
		compressed bool
	}{
		{
			name:       "plain",
			opts:       nil,
			compressed: false,
		},
		{
			name: "plain mmap",
			opts: nil,
			dictOpts: &dict.Options{
				Mmap: true,
			},
			compressed: false,
		},
		{
			name: "dictzip",
			opts: &testutil.DictOptions{
				DictZip: true,
			},
			compressed: true,
		},
		{
			name: "small chunks",
			opts: &testutil.DictOptions{
				ChunkSize: 64,
			},
			compressed: true,
		},
		{
			name: "small chunks mmap",
			opts: &testutil.DictOptions{
				ChunkSize: 64,
			},
			dictOpts: &dict.Options{
				Mmap: true,
			},
			compressed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, dataPath := testutil.WriteDictionary(t, t.TempDir(), "fruit", fruit, tc.opts)
			d, err := dict.Open(dataPath, tc.dictOpts)
			if err != nil {
				t.Fatal(err)
			}
			defer d.Close()

			if got, want := d.Compressed(), tc.compressed; got != want {
				t.Errorf("Compressed() = %v, want %v", got, want)
			}

			data, entries := testutil.MakeData(fruit)
			if got, want := d.Size(), uint64(len(data)); got != want {
				t.Errorf("Size() = %d, want %d", got, want)
			}

			for i, e := range entries {
				got, err := d.Read(e)
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(fruit[i].Definition, string(got)); diff != "" {
					t.Errorf("Read(%q) (-want, +got):\n%s", e.Word, diff)
				}
			}
		})
	}
}

// TestOpen_NotCompressed tests that .dz files must be dictzip files.
func TestOpen_NotCompressed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fruit.dict.dz")
	if err := os.WriteFile(path, []byte("a red fruit"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := dict.Open(path, nil)
	if !errors.Is(err, dict.ErrNotCompressed) {
		t.Errorf("Open() error = %v, want ErrNotCompressed", err)
	}
	if !errors.Is(err, errs.ErrFormat) {
		t.Errorf("Open() error = %v, want ErrFormat", err)
	}
}

// TestOpen_Missing tests opening a file that does not exist.
func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	for _, mmap := range []bool{false, true} {
		_, err := dict.Open(filepath.Join(t.TempDir(), "missing.dict"), &dict.Options{Mmap: mmap})
		if !errors.Is(err, errs.ErrIO) {
			t.Errorf("Open(mmap=%v) error = %v, want ErrIO", mmap, err)
		}
	}
}

// TestNew tests sniffing the data format.
func TestNew(t *testing.T) {
	t.Parallel()

	data, _ := testutil.MakeData(fruit)
	dz := testutil.MakeDictzip(t, data, &testutil.DictzipOptions{ChunkSize: 100})

	tests := []struct {
		name       string
		b          []byte
		opts       *dict.Options
		compressed bool
		err        error
	}{
		{
			name:       "plain",
			b:          data,
			compressed: false,
		},
		{
			name:       "dictzip",
			b:          dz,
			compressed: true,
		},
		{
			name: "expect dictzip",
			b:    data,
			opts: &dict.Options{
				Compressed: true,
			},
			err: dict.ErrNotCompressed,
		},
		{
			name:       "empty",
			b:          nil,
			compressed: false,
		},
		{
			name: "gzip without chunk table",
			b:    []byte{0x1f, 0x8b, 8, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			err:  errs.ErrFormat,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := dict.New(bytes.NewReader(tc.b), int64(len(tc.b)), tc.opts)
			if !errors.Is(err, tc.err) {
				t.Fatalf("New() error = %v, want %v", err, tc.err)
			}
			if err != nil {
				return
			}
			if got, want := d.Compressed(), tc.compressed; got != want {
				t.Errorf("Compressed() = %v, want %v", got, want)
			}
			if got, want := d.Size(), uint64(len(tc.b)); !tc.compressed && got != want {
				t.Errorf("Size() = %d, want %d", got, want)
			}
		})
	}
}

// TestDict_ReadRange tests range reads and their limits.
func TestDict_ReadRange(t *testing.T) {
	t.Parallel()

	data, _ := testutil.MakeData(fruit)
	dz := testutil.MakeDictzip(t, data, &testutil.DictzipOptions{ChunkSize: 100})

	tests := []struct {
		name     string
		offset   uint64
		length   uint32
		opts     *dict.Options
		expected []byte
		err      error
	}{
		{
			name:     "start",
			offset:   0,
			length:   11,
			expected: []byte("a red fruit"),
		},
		{
			name:     "empty",
			offset:   5,
			length:   0,
			expected: []byte{},
		},
		{
			name:     "last byte",
			offset:   uint64(len(data) - 1),
			length:   1,
			expected: data[len(data)-1:],
		},
		{
			name:   "past end",
			offset: uint64(len(data)),
			length: 1,
			err:    dict.ErrOutOfRange,
		},
		{
			name:   "too large",
			offset: 0,
			length: dict.DefaultMaxEntrySize + 1,
			err:    dict.ErrEntryTooLarge,
		},
		{
			name:   "custom limit",
			offset: 0,
			length: 11,
			opts: &dict.Options{
				MaxEntrySize: 10,
			},
			err: dict.ErrEntryTooLarge,
		},
		{
			name:   "no limit",
			offset: 0,
			length: dict.DefaultMaxEntrySize + 1,
			opts: &dict.Options{
				MaxEntrySize: -1,
			},
			err: dict.ErrOutOfRange,
		},
	}

	for _, tc := range tests {
		for format, b := range map[string][]byte{"plain": data, "dictzip": dz} {
			t.Run(tc.name+" "+format, func(t *testing.T) {
				t.Parallel()

				d, err := dict.New(bytes.NewReader(b), int64(len(b)), tc.opts)
				if err != nil {
					t.Fatal(err)
				}

				got, err := d.ReadRange(tc.offset, tc.length)
				if !errors.Is(err, tc.err) {
					t.Fatalf("ReadRange() error = %v, want %v", err, tc.err)
				}
				if diff := cmp.Diff(tc.expected, got); diff != "" {
					t.Errorf("ReadRange() (-want, +got):\n%s", diff)
				}
			})
		}
	}
}

// TestDict_ReadRange_Errors tests the error classes of failed reads.
func TestDict_ReadRange_Errors(t *testing.T) {
	t.Parallel()

	data, _ := testutil.MakeData(fruit)
	d, err := dict.New(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = d.Read(&index.Entry{Word: "zebra", Offset: uint64(len(data)) - 2, Size: 10})
	if !errors.Is(err, errs.ErrIO) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read() error = %v, want ErrIO and io.ErrUnexpectedEOF", err)
	}

	_, err = d.Read(&index.Entry{Word: "zebra", Offset: 0, Size: 2 << 20})
	if !errors.Is(err, errs.ErrFormat) {
		t.Errorf("Read() error = %v, want ErrFormat", err)
	}
}

// TestDict_Close tests closing dicts.
func TestDict_Close(t *testing.T) {
	t.Parallel()

	data, _ := testutil.MakeData(fruit)
	d, err := dict.New(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
