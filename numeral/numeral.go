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

// Package numeral implements the base 64 number encoding used for offsets
// and lengths in dictd .index files.
//
// A numeral is a non-empty string of symbols from a 64 symbol alphabet,
// most significant symbol first. There is no sign and leading zero symbols
// are allowed.
package numeral

import (
	"errors"
	"fmt"
	"math"

	"github.com/ianlewis/go-dictd/internal/errs"
)

var (
	// ErrInvalidNumeral indicates that a numeral is empty or contains a symbol
	// outside of the alphabet.
	ErrInvalidNumeral = fmt.Errorf("%w: invalid numeral", errs.ErrFormat)

	// ErrOverflow indicates that a numeral does not fit in 64 bits.
	ErrOverflow = fmt.Errorf("%w: numeral overflows uint64", errs.ErrFormat)

	errBadAlphabet = errors.New("alphabet must have 64 distinct symbols")
)

const (
	// DefaultSymbols assigns 0-9 the values 0-9, A-Z 10-35, a-z 36-61, '+'
	// 62 and '/' 63.
	DefaultSymbols = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+/"

	// Base64Symbols is the RFC 4648 base64 order (A-Z, a-z, 0-9, '+', '/').
	Base64Symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

var (
	// Default is the alphabet used by Decode and Encode.
	Default = mustAlphabet(DefaultSymbols)

	// Base64 is the alphabet in RFC 4648 order.
	Base64 = mustAlphabet(Base64Symbols)
)

// Alphabet maps the 64 numeral symbols to their values.
type Alphabet struct {
	symbols string

	// values holds the value of each byte plus one. Zero marks a byte that
	// is not part of the alphabet.
	values [256]uint8
}

// NewAlphabet returns an alphabet from a string of 64 distinct ASCII
// symbols. The symbol at position i has the value i.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) != 64 {
		return nil, fmt.Errorf("%w: got %d symbols", errBadAlphabet, len(symbols))
	}
	a := &Alphabet{symbols: symbols}
	for i := range len(symbols) {
		c := symbols[i]
		if a.values[c] != 0 {
			return nil, fmt.Errorf("%w: duplicate symbol %q", errBadAlphabet, c)
		}
		//nolint:gosec // i < 64
		a.values[c] = uint8(i + 1)
	}
	return a, nil
}

func mustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the alphabet's symbols in value order.
func (a *Alphabet) String() string {
	return a.symbols
}

// Decode decodes the numeral s.
func (a *Alphabet) Decode(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumeral)
	}

	var n uint64
	for i := range len(s) {
		v := a.values[s[i]]
		if v == 0 {
			return 0, fmt.Errorf("%w: %q at position %d", ErrInvalidNumeral, s[i], i)
		}
		if n > math.MaxUint64>>6 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		n = n<<6 | uint64(v-1)
	}
	return n, nil
}

// Encode returns the shortest numeral for n.
func (a *Alphabet) Encode(n uint64) string {
	if n == 0 {
		return a.symbols[:1]
	}
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = a.symbols[n&63]
		n >>= 6
	}
	return string(buf[i:])
}

// Decode decodes s with the Default alphabet.
func Decode(s string) (uint64, error) {
	return Default.Decode(s)
}

// Encode encodes n with the Default alphabet.
func Encode(n uint64) string {
	return Default.Encode(n)
}
