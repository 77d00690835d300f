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

package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/flate"

	"github.com/ianlewis/go-dictd/numeral"
)

// DefaultChunkSize is the chunk size used by dictzip(1).
const DefaultChunkSize = 58315

// DictzipOptions are options for MakeDictzip.
type DictzipOptions struct {
	// ChunkSize is the uncompressed chunk size. Defaults to
	// DefaultChunkSize.
	ChunkSize int

	// Name is written as the gzip FNAME field when not empty.
	Name string

	// Comment is written as the gzip FCOMMENT field when not empty.
	Comment string

	// HeaderCRC adds the gzip FHCRC header checksum.
	HeaderCRC bool

	// ExtraSubfield adds an unrelated "AP" subfield before the "RA"
	// subfield.
	ExtraSubfield bool

	// FinalBlock ends the deflate stream with an empty final block after
	// the last chunk, outside the chunk table, as dictzip(1) does.
	// Otherwise the last chunk ends the stream.
	FinalBlock bool
}

// finalBlock is an empty stored deflate block with BFINAL set.
var finalBlock = []byte{0x01, 0x00, 0x00, 0xff, 0xff}

// MakeDictzip compresses data into the dictzip format. Each chunk is
// deflated by a new compressor so that chunks are independent.

func MakeDictzip(tb testing.TB, data []byte, opts *DictzipOptions) []byte {
	tb.Helper()
	if opts == nil {
		opts = &DictzipOptions{}
	}
	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize > math.MaxUint16 {
		tb.Fatalf("chunk size too large: %d", chunkSize)
	}

	var chunks [][]byte
	for off := 0; ; off += chunkSize {
		end := min(off+chunkSize, len(data))
		last := end == len(data)

		var buf bytes.Buffer
		w, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			tb.Fatal(err)
		}
		if _, err := w.Write(data[off:end]); err != nil {
			tb.Fatal(err)
		}
		if last && !opts.FinalBlock {
			err = w.Close()
		} else {
			err = w.Flush()
		}
		if err != nil {
			tb.Fatal(err)
		}
		if buf.Len() > math.MaxUint16 {
			tb.Fatalf("compressed chunk too large: %d", buf.Len())
		}
		chunks = append(chunks, buf.Bytes())

		if last {
			break
		}
	}
	if len(chunks) > math.MaxUint16 {
		tb.Fatalf("too many chunks: %d", len(chunks))
	}

	var extra []byte
	if opts.ExtraSubfield {
		extra = append(extra, 'A', 'P', 3, 0, 1, 2, 3)
	}
	ra := binary.LittleEndian.AppendUint16(nil, 1)
	//nolint:gosec // bounds checked above.
	ra = binary.LittleEndian.AppendUint16(ra, uint16(chunkSize))
	//nolint:gosec // bounds checked above.
	ra = binary.LittleEndian.AppendUint16(ra, uint16(len(chunks)))
	for _, c := range chunks {
		//nolint:gosec // bounds checked above.
		ra = binary.LittleEndian.AppendUint16(ra, uint16(len(c)))
	}
	extra = append(extra, 'R', 'A')
	//nolint:gosec // test data is small.
	extra = binary.LittleEndian.AppendUint16(extra, uint16(len(ra)))
	extra = append(extra, ra...)

	flags := byte(1 << 2)
	if opts.Name != "" {
		flags |= 1 << 3
	}
	if opts.Comment != "" {
		flags |= 1 << 4
	}
	if opts.HeaderCRC {
		flags |= 1 << 1
	}

	// ID1 ID2 CM FLG MTIME(4) XFL OS
	out := []byte{0x1f, 0x8b, 8, flags, 0, 0, 0, 0, 2, 3}
	//nolint:gosec // test data is small.
	out = binary.LittleEndian.AppendUint16(out, uint16(len(extra)))
	out = append(out, extra...)
	if opts.Name != "" {
		out = append(out, opts.Name...)
		out = append(out, 0)
	}
	if opts.Comment != "" {
		out = append(out, opts.Comment...)
		out = append(out, 0)
	}
	if opts.HeaderCRC {
		//nolint:gosec // the low 16 bits are the header CRC.
		out = binary.LittleEndian.AppendUint16(out, uint16(crc32.ChecksumIEEE(out)))
	}
	for _, c := range chunks {
		out = append(out, c...)
	}
	if opts.FinalBlock {
		out = append(out, finalBlock...)
	}
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(data))
	//nolint:gosec // ISIZE is the size mod 2^32.
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	return out
}

// DictOptions are options for writing a test dictionary.
type DictOptions struct {
	// DictZip compresses the data with the go-dictzip writer.
	DictZip bool

	// ChunkSize compresses the data with MakeDictzip using the given chunk
	// size. It takes precedence over DictZip.
	ChunkSize int

	// Alphabet is the numeral alphabet of the index.
	Alphabet *numeral.Alphabet
}

// WriteDictionary writes an .index file and a .dict or .dict.dz file for
// words to dir and returns their paths.
func WriteDictionary(t *testing.T, dir, name string, words []Word, opts *DictOptions) (string, string) {
	t.Helper()
	if opts == nil {
		opts = &DictOptions{}
	}

	data, entries := MakeData(words)

	indexPath := filepath.Join(dir, name+".index")
	if err := os.WriteFile(indexPath, MakeIndex(entries, opts.Alphabet), 0o600); err != nil {
		t.Fatal(err)
	}

	dataPath := filepath.Join(dir, name+".dict")
	switch {
	case opts.ChunkSize > 0:
		dataPath += ".dz"
		if err := os.WriteFile(dataPath, MakeDictzip(t, data, &DictzipOptions{
			ChunkSize:  opts.ChunkSize,
			FinalBlock: true,
		}), 0o600); err != nil {
			t.Fatal(err)
		}
	case opts.DictZip:
		dataPath += ".dz"
		WriteDictzip(t, dataPath, data)
	default:
		if err := os.WriteFile(dataPath, data, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return indexPath, dataPath
}

// WriteDictzip compresses data to path with the go-dictzip writer.
func WriteDictzip(t *testing.T, path string, data []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
