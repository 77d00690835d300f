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

// Package mmap maps files read-only into memory.
package mmap

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("mmap: negative offset")

// File is a read-only memory mapped file.
type File struct {
	data []byte

	// orig is the page aligned mapping.
	orig []byte
}

// Len returns the size of the file.
func (f *File) Len() int64 {
	return int64(len(f.data))
}

// ReadAt implements io.ReaderAt. It is safe for concurrent use.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativeOffset
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
