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

// Package store provides path-addressed access to the self-describing,
// hierarchical files that hold sensor data records. Every backend exposes
// the same flat key space: array variables are addressed by their path,
// an array's shape by "<path>/shape", and attributes by
// "<object path>/attr/<name>", where the root object has an empty path.
package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Variable is the metadata value recorded for an array variable. The
// array contents are not read until File.Read is called.
type Variable struct {
	Shape []int
}

// Raw holds the contents of an array variable.
type Raw struct {
	Shape  []int
	Values []float64

	// Float is true when the variable is stored as floating point
	// in the file.
	Float bool
}

// WalkFunc is called for every metadata key in a file. value is a
// Variable for array variables, []int for shape keys, and a string,
// []string, float64 or []float64 for attributes.
type WalkFunc func(key string, value interface{}) error

// File is an open data file.
type File interface {
	// Walk calls fn for every key in the file.
	Walk(fn WalkFunc) error

	// Read reads the array variable at path.
	Read(path string) (*Raw, error)

	Close() error
}

// Opener opens the file with the given name.
type Opener func(filename string) (File, error)

// AttrKey returns the key of attribute name held by the object at path.
func AttrKey(path, name string) string {
	return strings.TrimPrefix(path, "/") + "/attr/" + name
}

// ShapeKey returns the key of the shape of the variable at path.
func ShapeKey(path string) string {
	return strings.TrimPrefix(path, "/") + "/shape"
}

// NotFoundError is returned when a requested variable does not
// exist in a file.
type NotFoundError struct {
	Filename, Path string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("store: variable %q not found in %s", e.Path, e.Filename)
}

// FormatError is returned by Open when a file is not in a recognized format.
type FormatError struct {
	Filename string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("store: %s is not an HDF5 or NetCDF file", e.Filename)
}

var (
	hdf5Magic   = []byte("\x89HDF\r\n\x1a\n")
	netcdfMagic = []byte("CDF")
)

// Open opens filename with the backend that matches its signature.
// HDF5 and NetCDF classic files are supported.
func Open(filename string) (File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	magic := make([]byte, len(hdf5Magic))
	_, err = io.ReadFull(f, magic)
	f.Close()
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("store: reading %s: %w", filename, err)
	}
	switch {
	case bytes.Equal(magic, hdf5Magic):
		return OpenHDF5(filename)
	case bytes.HasPrefix(magic, netcdfMagic):
		return OpenNetCDF(filename)
	}
	return nil, FormatError{Filename: filename}
}

// normalize converts an attribute value into one of the value
// types documented for WalkFunc.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case string, []string, float64, []float64:
		return t
	case []byte:
		return strings.TrimRight(string(t), "\x00 ")
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	}
	if f, ok := toFloat64s(v); ok {
		return f
	}
	return v
}

// toFloat64s converts a numeric slice to []float64.
func toFloat64s(v interface{}) ([]float64, bool) {
	var out []float64
	switch t := v.(type) {
	case []float64:
		return t, true
	case []float32:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []int:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []int8:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []int16:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []int32:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []int64:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []uint16:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []uint32:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	case []uint64:
		out = make([]float64, len(t))
		for i, x := range t {
			out[i] = float64(x)
		}
	default:
		return nil, false
	}
	return out, true
}
