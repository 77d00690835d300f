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
// Package dictd implements a library for reading dictd dictionaries in pure
// Go.
//
// dictd dictionaries contain two files:
//  1. An .index file that contains one line per headword with the offset
//     and length of its definition in the data file, both written as base
//     64 numerals.
//  2. A .dict file that contains the definitions. The dict file can be
//     compressed using the dictzip format, which allows random access to the
//     compressed data.
//
// Entries whose headword starts with "00-database-" hold information about
// the dictionary itself, such as its name and description.
//
// More info on the dictionary format can be found in the dictfmt(1) and
// dictzip(1) manual pages.
package dictd
