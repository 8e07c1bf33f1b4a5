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

package sdrutil

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/spatialmodel/sdr"
)

// footprint is a shapefile record of a granule boundary.
// Field names are limited to 10 characters.
type footprint struct {
	geom.Polygon
	FileType string
	File     string
	Start    string
	End      string
	Orbit    int
}

// Footprints writes the G-Ring boundary of each granule selected by
// r to the shapefile filename and returns the number of boundaries
// written.
func Footprints(r *sdr.Reader, filename string) (int, error) {
	var records []footprint
	for _, ft := range r.FileTypes() {
		agg, _ := r.Aggregate(ft)
		for _, g := range agg.Granules {
			b, err := g.Boundary()
			if err != nil {
				return 0, fmt.Errorf("sdrutil: %s: %v", g.Filename, err)
			}
			orbit, err := g.BeginOrbit()
			if err != nil {
				return 0, err
			}
			records = append(records, footprint{
				Polygon:  b,
				FileType: ft,
				File:     filepath.Base(g.Filename),
				Start:    g.StartTime().Format(time.RFC3339),
				End:      g.EndTime().Format(time.RFC3339),
				Orbit:    orbit,
			})
		}
	}

	e, err := shp.NewEncoder(filename, footprint{})
	if err != nil {
		return 0, fmt.Errorf("sdrutil: creating footprint shapefile: %v", err)
	}
	for _, rec := range records {
		if err := e.Encode(rec); err != nil {
			e.Close()
			return 0, fmt.Errorf("sdrutil: writing footprint shapefile: %v", err)
		}
	}
	e.Close()
	return len(records), nil
}
