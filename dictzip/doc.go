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

// Package dictzip implements random access reads of dictzip (.dict.dz)
// files.
//
// A dictzip file is a single member gzip file (RFC 1952) whose data was
// split into chunks of equal uncompressed size before compression. Each
// chunk is deflated on its own and ends with a full flush so that it can be
// inflated without the data that precedes it. The gzip header carries an
// extra field with the subfield ID "RA" listing the chunks:
//
//	+---+---+---+---+---+---+---+---+---+---+============+
//	|'R'|'A'|  LEN  |  VER  | CHLEN | CHCNT | sizes...   |
//	+---+---+---+---+---+---+---+---+---+---+============+
//
// VER is 1, CHLEN is the uncompressed chunk length, CHCNT the number of
// chunks and sizes holds CHCNT compressed chunk lengths. All numbers are 16
// bit little endian. See dictzip(1).
package dictzip
