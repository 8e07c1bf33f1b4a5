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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// AreaFootprint returns the outline of the rectangle b, given in the
// projection described by the proj4 string, as a polygon in longitude
// and latitude. Each side of the rectangle is divided into n pieces so
// that curved edges are followed.
func AreaFootprint(proj4 string, b *geom.Bounds, n int) (geom.Polygon, error) {
	src, err := proj.Parse(proj4)
	if err != nil {
		return nil, fmt.Errorf("sdr: parsing footprint projection: %v", err)
	}
	dst, err := proj.Parse("+proj=longlat")
	if err != nil {
		return nil, fmt.Errorf("sdr: %v", err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("sdr: creating footprint transform: %v", err)
	}
	if n < 1 {
		n = 1
	}
	corners := []geom.Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
	ring := make([]geom.Point, 0, 4*n+1)
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		for j := 0; j < n; j++ {
			f := float64(j) / float64(n)
			ring = append(ring, geom.Point{
				X: c.X + f*(next.X-c.X),
				Y: c.Y + f*(next.Y-c.Y),
			})
		}
	}
	ring = append(ring, ring[0])
	g, err := geom.Polygon{ring}.Transform(t)
	if err != nil {
		return nil, fmt.Errorf("sdr: projecting footprint: %v", err)
	}
	return g.(geom.Polygon), nil
}
