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
	"path/filepath"
	"sort"
	"time"

	"github.com/ctessum/geom"
)

// isoFormat formats t in ISO 8601 form, with microseconds only when
// they are not zero.
func isoFormat(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}

// SwathDefinition is the geolocation of a swath.
type SwathDefinition struct {
	ID         string
	Lons, Lats *Swath
}

// Bounds returns the longitude and latitude extent of the valid
// samples of the swath.
func (s *SwathDefinition) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for i, x := range s.Lons.Data.Elements {
		if s.Lons.Mask[i] || s.Lats.Mask[i] {
			continue
		}
		b.Extend(geom.NewBoundsPoint(geom.Point{X: x, Y: s.Lats.Data.Elements[i]}))
	}
	return b
}

// loadNavigation reads the named navigation for a dataset read from
// the depFileType aggregate. If no files of the navigation's file type
// were given, the geolocation files named in the data granules are
// looked for in the same directories as the data files.
func (r *Reader) loadNavigation(name, depFileType string, extraMask []bool) (*SwathDefinition, error) {
	nav, ok := r.cfg.Navigations[name]
	if !ok {
		return nil, fmt.Errorf("sdr: unknown navigation %q", name)
	}
	agg, ok := r.aggregates[nav.FileType]
	if !ok {
		r.log.WithField("navigation", name).Debug("geolocation files were not provided; searching data file headers")
		dep := r.aggregates[depFileType]
		geoNames, err := dep.GeoFilenames()
		if err != nil {
			return nil, err
		}
		paths := make([]string, len(geoNames))
		for i, g := range dep.Granules {
			paths[i] = filepath.Join(filepath.Dir(g.Filename), geoNames[i])
		}
		types, _, err := r.IdentifyFileTypes(paths)
		if err != nil {
			return nil, err
		}
		granules := types[nav.FileType]
		if len(granules) == 0 {
			return nil, GeolocationMismatchError{FileType: nav.FileType, Files: paths}
		}
		sort.SliceStable(granules, func(i, j int) bool {
			return granules[i].StartTime().Before(granules[j].StartTime())
		})
		agg = NewAggregate(nav.FileType, granules)
	}

	lons, err := agg.SwathData(nav.LongitudeKey, extraMask)
	if err != nil {
		return nil, err
	}
	lats, err := agg.SwathData(nav.LatitudeKey, extraMask)
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("swath_%s_%s_%d_%d",
		isoFormat(agg.StartTime()), isoFormat(agg.EndTime()),
		lons.Rows(), lons.Cols())
	return &SwathDefinition{ID: id, Lons: lons, Lats: lats}, nil
}
