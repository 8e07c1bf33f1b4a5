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
	"math"
	"strings"
)

// Metadata maps every key of a file to its value. Array variables map
// to a Variable; their contents stay in the file.
type Metadata map[string]interface{}

// Harvest walks f and records all of its keys.
func Harvest(f File) (Metadata, error) {
	m := make(Metadata)
	err := f.Walk(func(key string, value interface{}) error {
		m[key] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// KeyError is returned when a metadata key is absent.
type KeyError struct {
	Key string
}

func (e KeyError) Error() string {
	return fmt.Sprintf("store: no metadata key %q", e.Key)
}

// TypeError is returned when a metadata value cannot be converted to
// the requested type.
type TypeError struct {
	Key   string
	Value interface{}
	Want  string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("store: metadata key %q holds %T, not %s", e.Key, e.Value, e.Want)
}

// Shape returns the shape of the variable at path.
func (m Metadata) Shape(path string) ([]int, error) {
	key := ShapeKey(path)
	v, ok := m[key]
	if !ok {
		if vv, ok := m[strings.TrimPrefix(path, "/")].(Variable); ok {
			return vv.Shape, nil
		}
		return nil, KeyError{Key: key}
	}
	s, ok := v.([]int)
	if !ok {
		return nil, TypeError{Key: key, Value: v, Want: "a shape"}
	}
	return s, nil
}

// String returns the value of key as a string. Single element string
// arrays are unwrapped.
func (m Metadata) String(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", KeyError{Key: key}
	}
	s, ok := String(v)
	if !ok {
		return "", TypeError{Key: key, Value: v, Want: "a string"}
	}
	return s, nil
}

// Float64s returns the value of key as a slice of numbers.
func (m Metadata) Float64s(key string) ([]float64, error) {
	v, ok := m[key]
	if !ok {
		return nil, KeyError{Key: key}
	}
	f, ok := Float64s(v)
	if !ok {
		return nil, TypeError{Key: key, Value: v, Want: "numeric"}
	}
	return f, nil
}

// Int returns the value of key as an integer. The value must hold
// exactly one whole number.
func (m Metadata) Int(key string) (int, error) {
	f, err := m.Float64s(key)
	if err != nil {
		return 0, err
	}
	if len(f) != 1 || f[0] != math.Trunc(f[0]) {
		return 0, TypeError{Key: key, Value: f, Want: "an integer"}
	}
	return int(f[0]), nil
}

// String converts a metadata or variable value to a string.
func String(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimRight(t, "\x00 "), true
	case []string:
		if len(t) == 1 {
			return strings.TrimRight(t[0], "\x00 "), true
		}
	case []byte:
		return strings.TrimRight(string(t), "\x00 "), true
	}
	return "", false
}

// Float64s converts a metadata or variable value to a slice of numbers.
func Float64s(v interface{}) ([]float64, bool) {
	switch t := v.(type) {
	case float64:
		return []float64{t}, true
	case *Raw:
		return t.Values, true
	}
	switch n := normalize(v).(type) {
	case float64:
		return []float64{n}, true
	case []float64:
		return n, true
	}
	return nil, false
}
