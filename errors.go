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
package dictd

import (
	"fmt"

	"github.com/ianlewis/go-dictd/internal/errs"
)

var (
	// ErrFormat indicates malformed dictionary data. It wraps errors such as
	// a bad index line or numeral, a broken dictzip header, a corrupt chunk
	// or a definition that is not valid UTF-8.
	ErrFormat = errs.ErrFormat

	// ErrIO indicates that reading a dictionary file failed.
	ErrIO = errs.ErrIO

	// ErrClosed is returned by methods of a closed Dictionary.
	ErrClosed = errs.ErrClosed
)

// OpenError is returned when a dictionary cannot be opened.
type OpenError struct {
	// Path is the file that could not be read.
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// LookupError is returned when looking up a word fails. A word that is not
// in the dictionary is not an error.
type LookupError struct {
	Word string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("looking up %q: %v", e.Word, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
