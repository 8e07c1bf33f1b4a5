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
	"sort"
	"time"

	"github.com/ctessum/geom"
)

// Selection restricts which granules are read. If Footprint is set the
// granules whose outline intersects it are selected and the times are
// ignored. Otherwise, with no Start every granule is selected; with
// only Start the granules covering Start are selected; and with both
// Start and End the granules that start or end within [Start, End]
// are selected.
type Selection struct {
	// Footprint is compared with granule outlines in planar lon/lat,
	// so outlines that cross the antimeridian are not handled.
	Footprint geom.Polygon

	Start, End time.Time
}

// SelectSegments returns the granules that match sel, sorted by start
// time.
func SelectSegments(granules []*Granule, sel Selection) ([]*Granule, error) {
	var out []*Granule
	seen := make(map[*Granule]bool)
	for _, g := range granules {
		if seen[g] {
			continue
		}
		ok, err := sel.matches(g)
		if err != nil {
			return nil, err
		}
		if ok {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime().Before(out[j].StartTime())
	})
	return out, nil
}

func (sel Selection) matches(g *Granule) (bool, error) {
	start, end := g.StartTime(), g.EndTime()
	switch {
	case len(sel.Footprint) > 0:
		b, err := g.Boundary()
		if err != nil {
			return false, fmt.Errorf("sdr: selecting %s by area: %w", g.Filename, err)
		}
		return intersects(b, sel.Footprint), nil
	case sel.Start.IsZero():
		return true, nil
	case sel.End.IsZero():
		return within(sel.Start, start, end), nil
	default:
		return within(start, sel.Start, sel.End) || within(end, sel.Start, sel.End), nil
	}
}

// within reports whether lo <= t <= hi.
func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

// intersects reports whether two polygons share any area.
func intersects(a, b geom.Polygon) bool {
	if !a.Bounds().Overlaps(b.Bounds()) {
		return false
	}
	for _, r := range a.Intersection(b) {
		if len(r) > 2 {
			return true
		}
	}
	return false
}
