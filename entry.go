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

import "strings"

// Entry is a looked up dictionary entry.
type Entry struct {
	word        string
	definitions []string
}

// Word returns the looked up headword.
func (e *Entry) Word() string {
	return e.word
}

// Definitions returns the entry's definitions in index order.
func (e *Entry) Definitions() []string {
	return e.definitions
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.word)
	b.WriteByte('\n')
	for _, d := range e.definitions {
		b.WriteString(d)
		if !strings.HasSuffix(d, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
