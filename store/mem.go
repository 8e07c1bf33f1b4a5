/*
Copyright © 2026 the SDR authors.
This file is part of SDR.

SDR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SDR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SDR.  If not, see <http://www.gnu.org/licenses/>.
*/

package store

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Mem is an in-memory File. Attrs holds attribute values keyed the same
// way as the keys of a file on disk, and Data holds array variables by
// path.
type Mem struct {
	Attrs map[string]interface{}
	Data  map[string]*Raw
}

// Walk implements File. Keys are visited in sorted order.
func (m *Mem) Walk(fn WalkFunc) error {
	keys := make([]string, 0, len(m.Attrs))
	for k := range m.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, normalize(m.Attrs[k])); err != nil {
			return err
		}
	}
	paths := make([]string, 0, len(m.Data))
	for p := range m.Data {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		shape := m.Data[p].Shape
		if err := fn(p, Variable{Shape: shape}); err != nil {
			return err
		}
		if err := fn(ShapeKey(p), shape); err != nil {
			return err
		}
	}
	return nil
}

// Read implements File. The returned values are a copy.
func (m *Mem) Read(path string) (*Raw, error) {
	r, ok := m.Data[path]
	if !ok {
		return nil, NotFoundError{Filename: "memory", Path: path}
	}
	return &Raw{
		Shape:  append([]int(nil), r.Shape...),
		Values: append([]float64(nil), r.Values...),
		Float:  r.Float,
	}, nil
}

// Close implements File.
func (m *Mem) Close() error { return nil }

// MemFS serves in-memory files by name and counts how many times each
// one has been opened.
type MemFS struct {
	mu    sync.Mutex
	files map[string]*Mem
	opens map[string]int
}

// NewMemFS returns a MemFS holding files.
func NewMemFS(files map[string]*Mem) *MemFS {
	return &MemFS{files: files, opens: make(map[string]int)}
}

// Add adds or replaces the file with the given name.
func (fs *MemFS) Add(name string, f *Mem) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[name] = f
}

// Open is an Opener.
func (fs *MemFS) Open(filename string) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f, ok := fs.files[filename]
	if !ok {
		return nil, fmt.Errorf("store: open %s: %w", filename, os.ErrNotExist)
	}
	fs.opens[filename]++
	return f, nil
}

// Opens returns the number of times filename has been opened.
func (fs *MemFS) Opens(filename string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.opens[filename]
}
