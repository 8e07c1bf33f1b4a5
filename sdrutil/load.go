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
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spatialmodel/sdr"
)

// Load loads the named datasets from r and writes a summary of each
// to w. If expr is not empty it is evaluated over the loaded datasets
// and its result is summarized as well.
func Load(w io.Writer, r *sdr.Reader, names, calibration []string, expr string) error {
	datasets, err := r.Load(names, calibration...)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		return fmt.Errorf("sdrutil: none of the datasets %v are configured", names)
	}

	loaded := make([]string, 0, len(datasets))
	for n := range datasets {
		loaded = append(loaded, n)
	}
	sort.Strings(loaded)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "dataset\tcalibration\tunits\tshape\tvalid\tinvalid\tmin\tmax\tmean\tstd_dev")
	for _, n := range loaded {
		d := datasets[n]
		writeStats(tw, n, d.Calibration, d.Units, d.Swath, d.Stats())
	}
	if expr != "" {
		s, err := sdr.Derive(expr, datasets)
		if err != nil {
			return err
		}
		writeStats(tw, expr, "derived", "", s, (&sdr.Dataset{Swath: s}).Stats())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, n := range loaded {
		d := datasets[n]
		fmt.Fprintf(w, "%s: %s from %s to %s, orbits %d-%d, %d rows per scan, area %s\n",
			n, d.Platform, d.StartTime.Format("2006-01-02T15:04:05Z"), d.EndTime.Format("2006-01-02T15:04:05Z"),
			d.StartOrbit, d.EndOrbit, d.RowsPerScan, d.Area.ID)
	}
	return nil
}

func writeStats(w io.Writer, name, calibration, units string, s *sdr.Swath, st sdr.Stats) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.6g\t%.6g\t%.6g\t%.6g\n",
		name, calibration, units, s.Rows(), s.Cols(),
		st.Valid, st.Invalid, st.Min, st.Max, st.Mean, st.StdDev)
}
