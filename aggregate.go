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

package sdr

import (
	"fmt"
	"time"

	"github.com/ctessum/sparse"
)

// Aggregate joins consecutive granules of one file type into a single
// swath. Granules are stacked along their first dimension in order.
type Aggregate struct {
	FileType string
	Granules []*Granule
}

// NewAggregate returns an Aggregate of granules, which must be ordered
// by start time and must not be empty.
func NewAggregate(fileType string, granules []*Granule) *Aggregate {
	return &Aggregate{FileType: fileType, Granules: granules}
}

// Filenames returns the names of the aggregated files.
func (a *Aggregate) Filenames() []string {
	f := make([]string, len(a.Granules))
	for i, g := range a.Granules {
		f[i] = g.Filename
	}
	return f
}

// GeoFilenames returns the geolocation file name recorded in each
// granule.
func (a *Aggregate) GeoFilenames() ([]string, error) {
	f := make([]string, len(a.Granules))
	for i, g := range a.Granules {
		var err error
		if f[i], err = g.GeoFilename(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (a *Aggregate) first() *Granule { return a.Granules[0] }
func (a *Aggregate) last() *Granule  { return a.Granules[len(a.Granules)-1] }

// StartTime returns the start time of the first granule.
func (a *Aggregate) StartTime() time.Time { return a.first().StartTime() }

// EndTime returns the end time of the last granule.
func (a *Aggregate) EndTime() time.Time { return a.last().EndTime() }

// BeginOrbit returns the beginning orbit of the first granule.
func (a *Aggregate) BeginOrbit() (int, error) { return a.first().BeginOrbit() }

// EndOrbit returns the ending orbit of the last granule.
func (a *Aggregate) EndOrbit() (int, error) { return a.last().EndOrbit() }

// Platform returns the platform of the first granule.
func (a *Aggregate) Platform() (string, error) { return a.first().Platform() }

// Sensor returns the sensor of the first granule.
func (a *Aggregate) Sensor() (string, error) { return a.first().Sensor() }

// Units returns the units of the named variable in the first granule.
func (a *Aggregate) Units(key string) (string, error) { return a.first().Units(key) }

// SwathData reads the named variable from every granule into one
// swath. If extraMask is not nil, its entries are copied into the
// returned mask before the granules are read; extraMask itself is not
// modified.
func (a *Aggregate) SwathData(key string, extraMask []bool) (*Swath, error) {
	shapes := make([][]int, len(a.Granules))
	rows := 0
	for i, g := range a.Granules {
		s, err := g.Shape(key)
		if err != nil {
			return nil, err
		}
		if len(s) == 0 {
			return nil, fmt.Errorf("sdr: %s in %s is a scalar", key, g.Filename)
		}
		if i > 0 && rowSize(s) != rowSize(shapes[0]) {
			return nil, fmt.Errorf("sdr: %s in %s has shape %v, which does not match %v in %s",
				key, g.Filename, s, shapes[0], a.first().Filename)
		}
		shapes[i] = s
		rows += s[0]
	}
	cols := rowSize(shapes[0])

	n := rows * cols
	data := make([]float64, n)
	mask := make([]bool, n)
	if extraMask != nil {
		if len(extraMask) != n {
			return nil, fmt.Errorf("sdr: %s has %d samples but the extra mask has %d", key, n, len(extraMask))
		}
		copy(mask, extraMask)
	}
	off := 0
	for i, g := range a.Granules {
		size := shapes[i][0] * cols
		if _, err := g.SwathData(key, data[off:off+size], mask[off:off+size]); err != nil {
			return nil, err
		}
		off += size
	}
	shape := append([]int{rows}, shapes[0][1:]...)
	if len(shape) == 1 {
		shape = append(shape, 1)
	}
	d := &sparse.DenseArray{Elements: data, Shape: shape}
	d.Fix()
	return &Swath{Data: d, Mask: mask}, nil
}

// SwathDataToFile would write the named variable to filename instead of
// memory. It is not supported.
func (a *Aggregate) SwathDataToFile(key, filename string) (*Swath, error) {
	return nil, UnsupportedOperationError{Op: "writing swath data to " + filename}
}

// rowSize returns the number of samples in one row of an array with
// the given shape.
func rowSize(shape []int) int {
	n := 1
	for _, l := range shape[1:] {
		n *= l
	}
	return n
}
