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

package dictzip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"

	"github.com/ianlewis/go-dictd/internal/errs"
)

var (
	// ErrCorruptChunk indicates that a chunk could not be inflated on its
	// own, either because the deflate data is corrupt or because it refers
	// to data in a previous chunk.
	ErrCorruptChunk = fmt.Errorf("%w: corrupt chunk", errs.ErrFormat)

	// ErrOutOfRange indicates a read past the end of the uncompressed data.
	ErrOutOfRange = fmt.Errorf("%w: range past end of data: %w", errs.ErrIO, io.ErrUnexpectedEOF)

	errNegativeOffset = errors.New("negative offset")
)

// Reader provides random access to the uncompressed data of a dictzip file.
// Only the chunks that cover a requested range are read and inflated.
//
// Reader is safe for concurrent use if the underlying io.ReaderAt is, as is
// the case for *os.File. Every read uses its own inflate state.
type Reader struct {
	r     io.ReaderAt
	size  int64
	table *ChunkTable

	// inflaters holds idle flate readers for reuse.
	inflaters sync.Pool
}

// NewReader returns a new Reader reading the dictzip file r of the given
// size. The gzip header is read and validated immediately.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	t, err := readChunkTable(r, size)
	if err != nil {
		return nil, err
	}
	return &Reader{
		r:     r,
		size:  size,
		table: t,
	}, nil
}

// Table returns the chunk table. It must not be modified.
func (z *Reader) Table() *ChunkTable {
	return z.table
}

// Size returns the uncompressed size of the data.
func (z *Reader) Size() uint64 {
	return z.table.Size
}

// ReadRange returns length bytes of uncompressed data starting at offset.
func (z *Reader) ReadRange(offset uint64, length uint32) ([]byte, error) {
	end := offset + uint64(length)
	if end < offset || end > z.table.Size {
		return nil, fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfRange, offset, end, z.table.Size)
	}
	if length == 0 {
		return []byte{}, nil
	}

	chunkSize := uint64(z.table.ChunkSize)
	//nolint:gosec // chunk indexes are bounded by the 16 bit chunk count.
	first, last := int(offset/chunkSize), int((end-1)/chunkSize)

	out := make([]byte, 0, length)
	buf := make([]byte, z.table.ChunkSize)
	for i := first; i <= last; i++ {
		chunk, err := z.inflate(i, buf)
		if err != nil {
			return nil, err
		}

		start := uint64(i) * chunkSize
		lo, hi := uint64(0), uint64(len(chunk))
		if i == first {
			lo = offset - start
		}
		if i == last {
			hi = end - start
		}
		out = append(out, chunk[lo:hi]...)
	}
	return out, nil
}

// ReadAt implements io.ReaderAt over the uncompressed data.
func (z *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("dictzip: %w", errNegativeOffset)
	}
	//nolint:gosec // off is non-negative.
	uoff := uint64(off)
	if uoff >= z.table.Size {
		return 0, io.EOF
	}

	n := min(uint64(len(p)), z.table.Size-uoff)
	read := uint64(0)
	for read < n {
		// ReadRange takes a 32 bit length.
		//nolint:gosec // bounded by 1<<30.
		length := uint32(min(n-read, 1<<30))
		b, err := z.ReadRange(uoff+read, length)
		if err != nil {
			//nolint:gosec // read <= len(p).
			return int(read), err
		}
		copy(p[read:], b)
		read += uint64(len(b))
	}

	//nolint:gosec // n <= len(p).
	if int(n) < len(p) {
		return int(n), io.EOF
	}
	return len(p), nil
}

// inflate reads and inflates chunk i into buf and returns the inflated data.
func (z *Reader) inflate(i int, buf []byte) ([]byte, error) {
	compressed := make([]byte, z.table.Sizes[i])
	if n, err := z.r.ReadAt(compressed, z.table.Offsets[i]); n < len(compressed) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: reading chunk %d: %w", errs.ErrIO, i, err)
	}

	out := buf[:z.table.chunkLen(i)]
	fr := z.inflater(bytes.NewReader(compressed))
	defer z.inflaters.Put(fr)

	// A chunk produced with a full flush is not terminated, so inflating
	// past its content would fail with io.ErrUnexpectedEOF. Only the
	// expected number of bytes is read.
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptChunk, i, err)
	}
	return out, nil
}

func (z *Reader) inflater(src io.Reader) io.ReadCloser {
	if fr, ok := z.inflaters.Get().(io.ReadCloser); ok {
		if err := fr.(flate.Resetter).Reset(src, nil); err == nil {
			return fr
		}
	}
	return flate.NewReader(src)
}
