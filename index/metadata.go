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

package index

import "strings"

const dictfmtPrefix = "00-database-dictfmt-"

// Metadata holds the database information entries of an index. The text of
// Info, Short and URL lives in the .dict data at the entry's location.
type Metadata struct {
	// Info is the 00-database-info entry, a free text description.
	Info *Entry

	// Short is the 00-database-short entry, the database's display name.
	Short *Entry

	// URL is the 00-database-url entry.
	URL *Entry

	// AllChars is set by 00-database-allchars. Headwords were indexed with
	// all characters rather than only alphanumerics and spaces.
	AllChars bool

	// CaseSensitive is set by 00-database-case-sensitive.
	CaseSensitive bool

	// UTF8 is set by 00-database-utf8.
	UTF8 bool

	// DictfmtVersion is the version from a 00-database-dictfmt-X.Y.Z entry.
	DictfmtVersion string
}

// readMetadata collects the database information entries. The first entry
// of each kind wins.
func readMetadata(entries []*Entry) Metadata {
	var m Metadata
	for _, e := range entries {
		if !strings.HasPrefix(e.Word, "00") {
			continue
		}
		switch e.Word {
		case "00-database-info", "00databaseinfo":
			if m.Info == nil {
				m.Info = e
			}
		case "00-database-short", "00databaseshort":
			if m.Short == nil {
				m.Short = e
			}
		case "00-database-url", "00databaseurl":
			if m.URL == nil {
				m.URL = e
			}
		case "00-database-allchars", "00databaseallchars":
			m.AllChars = true
		case "00-database-case-sensitive":
			m.CaseSensitive = true
		case "00-database-utf8", "00databaseutf8":
			m.UTF8 = true
		default:
			if v, ok := strings.CutPrefix(e.Word, dictfmtPrefix); ok && m.DictfmtVersion == "" {
				m.DictfmtVersion = v
			}
		}
	}
	return m
}
