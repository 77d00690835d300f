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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-dictd/internal/errs"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	flagHeaderCRC = 1 << 1
	flagExtra     = 1 << 2
	flagName      = 1 << 3
	flagComment   = 1 << 4

	// fixedHeaderSize is the size of the gzip header up to and including
	// XLEN.
	fixedHeaderSize = 12

	// trailerSize is the size of the CRC32 and ISIZE gzip trailer.
	trailerSize = 8

	// raHeaderSize is the size of VER, CHLEN and CHCNT.
	raHeaderSize = 6
)

var (
	// ErrHeader indicates a malformed gzip header.
	ErrHeader = fmt.Errorf("%w: invalid gzip header", errs.ErrFormat)

	// ErrNotDictzip indicates a gzip file without the dictzip chunk table.
	ErrNotDictzip = fmt.Errorf("%w: missing dictzip extra field", errs.ErrFormat)

	// ErrChunkTable indicates a dictzip chunk table that is inconsistent with
	// itself or with the file.
	ErrChunkTable = fmt.Errorf("%w: invalid dictzip chunk table", errs.ErrFormat)
)

// ChunkTable describes the chunks of a dictzip file. It is immutable once
// read.
type ChunkTable struct {
	// ChunkSize is the uncompressed size of every chunk but the last, which
	// may be shorter.
	ChunkSize int

	// Sizes holds the compressed size of each chunk.
	Sizes []uint16

	// Offsets holds the file offset of each compressed chunk.
	Offsets []int64

	// DataEnd is the file offset just past the last compressed chunk. The
	// deflate stream may continue with a final block that is not part of
	// any chunk before the gzip trailer.
	DataEnd int64

	// Size is the total uncompressed size.
	Size uint64
}

// chunkLen returns the uncompressed length of chunk i.
func (t *ChunkTable) chunkLen(i int) int {
	start := uint64(i) * uint64(t.ChunkSize)
	//nolint:gosec // bounded by ChunkSize.
	return int(min(uint64(t.ChunkSize), t.Size-start))
}

// HasMagic reports whether b starts with the gzip magic number.
func HasMagic(b []byte) bool {
	return len(b) >= 2 && b[0] == gzipID1 && b[1] == gzipID2
}

// readChunkTable reads the gzip header of a dictzip file of the given size.
func readChunkTable(r io.ReaderAt, size int64) (*ChunkTable, error) {
	br := bufio.NewReader(io.NewSectionReader(r, 0, size))

	var hdr [fixedHeaderSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, headerReadErr(err)
	}
	if !HasMagic(hdr[:]) {
		return nil, fmt.Errorf("%w: bad magic %#x %#x", ErrHeader, hdr[0], hdr[1])
	}
	if hdr[2] != gzipDeflate {
		return nil, fmt.Errorf("%w: unsupported compression method %d", ErrHeader, hdr[2])
	}
	flags := hdr[3]
	if flags&flagExtra == 0 {
		return nil, fmt.Errorf("%w: FEXTRA flag not set", ErrNotDictzip)
	}

	xlen := binary.LittleEndian.Uint16(hdr[10:12])
	extra := make([]byte, xlen)
	if _, err := io.ReadFull(br, extra); err != nil {
		return nil, headerReadErr(err)
	}
	pos := int64(fixedHeaderSize) + int64(xlen)

	t, err := parseExtra(extra)
	if err != nil {
		return nil, err
	}

	if flags&flagName != 0 {
		n, err := skipString(br)
		if err != nil {
			return nil, err
		}
		pos += n
	}
	if flags&flagComment != 0 {
		n, err := skipString(br)
		if err != nil {
			return nil, err
		}
		pos += n
	}
	if flags&flagHeaderCRC != 0 {
		if _, err := br.Discard(2); err != nil {
			return nil, headerReadErr(err)
		}
		pos += 2
	}

	t.Offsets = make([]int64, len(t.Sizes))
	for i, s := range t.Sizes {
		t.Offsets[i] = pos
		pos += int64(s)
	}
	t.DataEnd = pos

	if t.DataEnd+trailerSize > size {
		return nil, fmt.Errorf("%w: chunks end at %d, past the trailer at %d", ErrChunkTable, t.DataEnd, size-trailerSize)
	}

	// ISIZE is the uncompressed size mod 2^32. CHLEN and CHCNT are both 16
	// bit so the real size always fits.
	var isize [4]byte
	if _, err := r.ReadAt(isize[:], size-4); err != nil {
		return nil, fmt.Errorf("%w: reading gzip trailer: %w", errs.ErrIO, err)
	}
	t.Size = uint64(binary.LittleEndian.Uint32(isize[:]))

	n := uint64(len(t.Sizes))
	chunk := uint64(t.ChunkSize)
	if t.Size > n*chunk || (n > 1 && t.Size <= (n-1)*chunk) {
		return nil, fmt.Errorf("%w: size %d does not match %d chunks of %d bytes", ErrChunkTable, t.Size, n, chunk)
	}

	return t, nil
}

// parseExtra finds the "RA" subfield in the gzip extra field.
func parseExtra(extra []byte) (*ChunkTable, error) {
	for len(extra) > 0 {
		if len(extra) < 4 {
			return nil, fmt.Errorf("%w: truncated extra subfield", ErrHeader)
		}
		si1, si2 := extra[0], extra[1]
		n := int(binary.LittleEndian.Uint16(extra[2:4]))
		if 4+n > len(extra) {
			return nil, fmt.Errorf("%w: extra subfield length %d exceeds XLEN", ErrHeader, n)
		}
		data := extra[4 : 4+n]
		extra = extra[4+n:]

		if si1 == 'R' && si2 == 'A' {
			return parseRA(data)
		}
	}
	return nil, fmt.Errorf("%w: no RA subfield", ErrNotDictzip)
}

func parseRA(data []byte) (*ChunkTable, error) {
	if len(data) < raHeaderSize {
		return nil, fmt.Errorf("%w: RA subfield too short", ErrChunkTable)
	}
	if v := binary.LittleEndian.Uint16(data[0:2]); v != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrChunkTable, v)
	}
	chlen := binary.LittleEndian.Uint16(data[2:4])
	if chlen == 0 {
		return nil, fmt.Errorf("%w: zero chunk length", ErrChunkTable)
	}
	// An empty file has no chunks.
	chcnt := int(binary.LittleEndian.Uint16(data[4:6]))
	if want := raHeaderSize + 2*chcnt; len(data) != want {
		return nil, fmt.Errorf("%w: %d chunks need a %d byte subfield, got %d", ErrChunkTable, chcnt, want, len(data))
	}

	t := &ChunkTable{
		ChunkSize: int(chlen),
		Sizes:     make([]uint16, chcnt),
	}
	for i := range t.Sizes {
		off := raHeaderSize + 2*i
		t.Sizes[i] = binary.LittleEndian.Uint16(data[off : off+2])
	}
	return t, nil
}

// skipString skips a zero terminated header string and returns the number of
// bytes consumed.
func skipString(br *bufio.Reader) (int64, error) {
	var n int64
	for {
		b, err := br.ReadSlice(0)
		n += int64(len(b))
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return 0, headerReadErr(err)
		}
	}
}

func headerReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated header", ErrHeader)
	}
	return fmt.Errorf("%w: reading header: %w", errs.ErrIO, err)
}
