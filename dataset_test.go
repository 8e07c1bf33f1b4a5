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
	"testing"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

func TestDatasetStats(t *testing.T) {
	d := &Dataset{Swath: &Swath{
		Data: sparse.ZerosDense(2, 3),
		Mask: []bool{false, true, false, false, true, false},
	}}
	copy(d.Data.Elements, []float64{210, -999, 220, 230, 65535, 240})
	s := d.Stats()
	valid := []float64{210, 220, 230, 240}
	if s.Valid != 4 || s.Invalid != 2 {
		t.Errorf("counts = %d, %d", s.Valid, s.Invalid)
	}
	if s.Min != 210 || s.Max != 240 {
		t.Errorf("range = %g, %g", s.Min, s.Max)
	}
	if want := stats.StatsMean(valid); s.Mean != want {
		t.Errorf("mean = %g; want %g", s.Mean, want)
	}
	if want := stats.StatsSampleStandardDeviation(valid); math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("standard deviation = %g; want %g", s.StdDev, want)
	}

	for i := range d.Mask {
		d.Mask[i] = true
	}
	s = d.Stats()
	if s.Valid != 0 || !math.IsNaN(s.Mean) || !math.IsNaN(s.Min) {
		t.Errorf("all masked: %+v", s)
	}
}

func TestAreaFootprint(t *testing.T) {
	const lcc = "+proj=lcc +lat_1=33.000000 +lat_2=45.000000 +lat_0=40.000000 +lon_0=-97.000000 +x_0=0 +y_0=0 +a=6370997.000000 +b=6370997.000000 +to_meter=1"
	b := &geom.Bounds{Min: geom.Point{X: -100000, Y: -100000}, Max: geom.Point{X: 100000, Y: 100000}}
	p, err := AreaFootprint(lcc, b, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 1 || len(p[0]) != 17 {
		t.Fatalf("footprint has %d rings", len(p))
	}
	for _, pt := range p[0] {
		if pt.X < -99 || pt.X > -95 || pt.Y < 38 || pt.Y > 42 {
			t.Errorf("point %v is outside the expected area", pt)
		}
	}
	if p[0][0] != p[0][16] {
		t.Error("footprint is not closed")
	}

	if _, err := AreaFootprint("+proj=bogus", b, 4); err == nil {
		t.Error("expected an error for an unknown projection")
	}
}

func TestIsoFormat(t *testing.T) {
	ts := fiveStarts[0]
	if got := isoFormat(ts); got != "2015-06-24T23:57:00" {
		t.Errorf("got %s", got)
	}
	if got := isoFormat(ts.Add(1500 * 1000)); got != "2015-06-24T23:57:00.001500" {
		t.Errorf("got %s", got)
	}
}
