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

package mmap

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("Ignore me: important"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if want, got := int64(20), f.Len(); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}

	b := make([]byte, 9)
	n, err := f.ReadAt(b, 11)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if diff := cmp.Diff("important", string(b[:n])); diff != "" {
		t.Fatalf("ReadAt (-want, +got):\n%s", diff)
	}

	n, err = f.ReadAt(b, 15)
	if !errors.Is(err, io.EOF) || n != 5 {
		t.Fatalf("ReadAt past end; got: %d, %v", n, err)
	}
}

func TestOpen_empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if want, got := int64(0), f.Len(); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
