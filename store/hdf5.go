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
	"reflect"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// HDF5 is a File backed by an HDF5 file.
type HDF5 struct {
	name string
	f    *hdf5.File
}

// OpenHDF5 opens the HDF5 file at filename.
func OpenHDF5(filename string) (*HDF5, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %v", filename, err)
	}
	return &HDF5{name: filename, f: f}, nil
}

type attributeHolder interface {
	Attrs() []string
	Attr(name string) *hdf5.Attribute
}

// Walk implements File.
func (h *HDF5) Walk(fn WalkFunc) error {
	return hdf5.Walk(h.f.Root(), func(path string, obj interface{}, err error) error {
		if err != nil {
			return fmt.Errorf("store: walking %s at %s: %v", h.name, path, err)
		}
		path = strings.TrimPrefix(path, "/")
		if d, ok := obj.(*hdf5.Dataset); ok {
			shape := intShape(d.Shape())
			if err := fn(path, Variable{Shape: shape}); err != nil {
				return err
			}
			if err := fn(ShapeKey(path), shape); err != nil {
				return err
			}
		}
		ah, ok := obj.(attributeHolder)
		if !ok {
			return nil
		}
		for _, name := range ah.Attrs() {
			a := ah.Attr(name)
			if a == nil {
				continue
			}
			v, err := a.Value()
			if err != nil {
				return fmt.Errorf("store: reading attribute %s of %s in %s: %v", name, path, h.name, err)
			}
			if err := fn(AttrKey(path, name), normalize(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Read implements File.
func (h *HDF5) Read(path string) (*Raw, error) {
	d, err := h.f.OpenDataset("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, NotFoundError{Filename: h.name, Path: path}
	}
	vals, err := d.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("store: reading %s from %s: %v", path, h.name, err)
	}
	r := &Raw{Shape: intShape(d.Shape()), Values: vals}
	if t, err := d.GoType(); err == nil {
		k := t.Kind()
		r.Float = k == reflect.Float32 || k == reflect.Float64
	}
	return r, nil
}

// Close implements File.
func (h *HDF5) Close() error {
	return h.f.Close()
}

func intShape(s []uint64) []int {
	o := make([]int, len(s))
	for i, v := range s {
		o[i] = int(v)
	}
	return o
}
