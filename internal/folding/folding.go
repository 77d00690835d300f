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

// Package folding implements the text folding used to build the primary
// search key of dictd index entries.
package folding

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Dictd returns a transformer producing the primary ordering key of a
// headword: diacritics are stripped, case is folded and whitespace spans are
// collapsed to a single space with leading and trailing whitespace removed.
func Dictd() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Fold(),
		&Whitespace{},
	)
}

// DictdCaseSensitive is like Dictd but preserves case. It is used for
// databases carrying the 00-database-case-sensitive entry.
func DictdCaseSensitive() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		&Whitespace{},
	)
}

// String folds s with the transformer t.
func String(t transform.Transformer, s string) (string, error) {
	folded, _, err := transform.String(t, s)
	//nolint:wrapcheck // callers add context.
	return folded, err
}
