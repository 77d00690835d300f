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

// Package errs holds the error kinds shared by the dictd packages. The root
// package re-exports them.
package errs

import "errors"

var (
	// ErrFormat indicates malformed input data: a bad index line or numeral,
	// a broken dictzip header or a corrupt compressed chunk.
	ErrFormat = errors.New("invalid format")

	// ErrIO indicates that reading a file failed or returned fewer bytes than
	// required.
	ErrIO = errors.New("i/o error")

	// ErrClosed is returned when using a closed dictionary.
	ErrClosed = errors.New("dictionary closed")
)
