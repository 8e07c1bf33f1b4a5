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
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Dataset is a loaded, calibrated swath together with its metadata.
type Dataset struct {
	*Swath
	ResolvedDataset

	Area *SwathDefinition

	Units       string
	Platform    string
	Sensor      string
	StartOrbit  int
	EndOrbit    int
	RowsPerScan int

	StartTime, EndTime time.Time
}

// Stats summarizes the valid samples of a dataset.
type Stats struct {
	Valid, Invalid int
	Min, Max, Mean float64

	// StdDev is the sample standard deviation.
	StdDev float64
}

// Stats returns a summary of the valid samples in d. Min, Max and Mean
// are NaN if there are none, and StdDev is NaN if there are fewer
// than two.
func (d *Dataset) Stats() Stats {
	valid := make([]float64, 0, len(d.Data.Elements))
	for i, v := range d.Data.Elements {
		if !d.Mask[i] {
			valid = append(valid, v)
		}
	}
	s := Stats{Valid: len(valid), Invalid: len(d.Data.Elements) - len(valid)}
	if len(valid) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	s.Mean = floats.Sum(valid) / float64(len(valid))
	s.StdDev = math.NaN()
	if len(valid) > 1 {
		s.StdDev = stat.StdDev(valid, nil)
	}
	return s
}
