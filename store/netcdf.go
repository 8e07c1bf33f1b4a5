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

	"github.com/ctessum/cdf"
)

// NetCDF is a File backed by a NetCDF classic file. Global attributes
// belong to the root object and variable attributes to their variable.
type NetCDF struct {
	name string
	ff   *os.File
	f    *cdf.File
}

// OpenNetCDF opens the NetCDF classic file at filename.
func OpenNetCDF(filename string) (*NetCDF, error) {
	ff, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("store: %v", err)
	}
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("store: opening %s: %v", filename, err)
	}
	return &NetCDF{name: filename, ff: ff, f: f}, nil
}

// Walk implements File.
func (n *NetCDF) Walk(fn WalkFunc) error {
	h := n.f.Header
	for _, a := range h.Attributes("") {
		if err := fn(AttrKey("", a), normalize(h.GetAttribute("", a))); err != nil {
			return err
		}
	}
	for _, v := range h.Variables() {
		shape, err := n.lengths(v)
		if err != nil {
			return err
		}
		if err := fn(v, Variable{Shape: shape}); err != nil {
			return err
		}
		if err := fn(ShapeKey(v), shape); err != nil {
			return err
		}
		for _, a := range h.Attributes(v) {
			if err := fn(AttrKey(v, a), normalize(h.GetAttribute(v, a))); err != nil {
				return err
			}
		}
	}
	return nil
}

// lengths returns the shape of variable v, filling in the current
// number of records for record variables.
func (n *NetCDF) lengths(v string) ([]int, error) {
	shape := append([]int(nil), n.f.Header.Lengths(v)...)
	if n.f.Header.IsRecordVariable(v) {
		fi, err := n.ff.Stat()
		if err != nil {
			return nil, fmt.Errorf("store: %v", err)
		}
		shape[0] = int(n.f.Header.NumRecs(fi.Size()))
	}
	return shape, nil
}

// Read implements File.
func (n *NetCDF) Read(path string) (*Raw, error) {
	if n.f.Header.ZeroValue(path, 0) == nil {
		return nil, NotFoundError{Filename: n.name, Path: path}
	}
	shape, err := n.lengths(path)
	if err != nil {
		return nil, err
	}
	size := 1
	for _, l := range shape {
		size *= l
	}
	r := n.f.Reader(path, nil, nil)
	buf := r.Zero(size)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("store: reading %s from %s: %v", path, n.name, err)
	}
	raw := &Raw{Shape: shape}
	switch buf.(type) {
	case []float32, []float64:
		raw.Float = true
	}
	vals, ok := toFloat64s(buf)
	if !ok {
		if b, isBytes := buf.([]uint8); isBytes {
			vals = make([]float64, len(b))
			for i, x := range b {
				vals[i] = float64(x)
			}
		} else {
			return nil, fmt.Errorf("store: %s in %s holds %T, which is not numeric", path, n.name, buf)
		}
	}
	raw.Values = vals
	return raw, nil
}

// Close implements File.
func (n *NetCDF) Close() error {
	return n.ff.Close()
}
