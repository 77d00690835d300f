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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Whitespace collapses every run of whitespace into one ASCII space and drops
// whitespace at the start and end of the input.
type Whitespace struct {
	// seen is set once a non-space rune has been written.
	seen bool

	// pending is set when whitespace was consumed after a non-space rune and
	// a separator is owed before the next non-space rune.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *Whitespace) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			w.pending = w.seen
			nSrc += size
			continue
		}

		// RuneError is re-encoded as U+FFFD so the output size can differ
		// from size.
		need := utf8.RuneLen(r)
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seen = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *Whitespace) Reset() {
	*w = Whitespace{}
}
