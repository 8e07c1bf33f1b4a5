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
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spatialmodel/sdr"
	"github.com/tealeg/xlsx"
)

// GranuleInfo describes one selected granule.
type GranuleInfo struct {
	FileType, File   string
	Platform, Sensor string
	Start, End       time.Time
	BeginOrbit       int
	EndOrbit         int

	// Invalid holds the number of raw samples with each kind of fill
	// value, by file key.
	Invalid map[string]map[string]int
}

// Info describes the granules selected by r, in file type order.
func Info(r *sdr.Reader) ([]GranuleInfo, error) {
	var out []GranuleInfo
	for _, ft := range r.FileTypes() {
		agg, _ := r.Aggregate(ft)
		keys := dataKeys(r.Config(), ft)
		for _, g := range agg.Granules {
			info := GranuleInfo{
				FileType: ft,
				File:     g.Filename,
				Start:    g.StartTime(),
				End:      g.EndTime(),
				Invalid:  make(map[string]map[string]int, len(keys)),
			}
			var err error
			if info.Platform, err = g.Platform(); err != nil {
				return nil, err
			}
			if info.Sensor, err = g.Sensor(); err != nil {
				return nil, err
			}
			if info.BeginOrbit, err = g.BeginOrbit(); err != nil {
				return nil, err
			}
			if info.EndOrbit, err = g.EndOrbit(); err != nil {
				return nil, err
			}
			for _, k := range keys {
				if info.Invalid[k], err = g.InvalidInfo(k); err != nil {
					return nil, fmt.Errorf("sdrutil: %s: %v", g.Filename, err)
				}
			}
			out = append(out, info)
		}
	}
	return out, nil
}

// dataKeys returns the sorted names of the file keys that datasets and
// navigations read from files of type ft.
func dataKeys(cfg *sdr.Config, ft string) []string {
	set := make(map[string]bool)
	for _, d := range cfg.Datasets {
		for _, a := range d.Alternatives {
			if a.FileType == ft {
				set[a.FileKey] = true
			}
		}
	}
	for _, o := range cfg.Calibrations {
		if o.FileType == ft && o.FileKey != "" {
			set[o.FileKey] = true
		}
	}
	for _, n := range cfg.Navigations {
		if n.FileType == ft {
			set[n.LongitudeKey] = true
			set[n.LatitudeKey] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var infoHeader = []string{"file_type", "file", "platform", "sensor", "start", "end", "begin_orbit", "end_orbit"}

// invalidSummary formats fill value counts, omitting kinds with none.
func invalidSummary(counts map[string]int) string {
	var parts []string
	for _, c := range sdr.InvalidCodes() {
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeInfo writes granule descriptions as an aligned table.
func writeInfo(w io.Writer, rows []GranuleInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(infoHeader, "\t"))
	for _, g := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n", g.FileType, g.File, g.Platform, g.Sensor,
			g.Start.Format(time.RFC3339), g.End.Format(time.RFC3339), g.BeginOrbit, g.EndOrbit)
		for _, k := range sortedKeys(g.Invalid) {
			fmt.Fprintf(tw, "\t  %s invalid:\t%s\n", k, invalidSummary(g.Invalid[k]))
		}
	}
	return tw.Flush()
}

// writeInfoXLSX writes granule descriptions to a spreadsheet with one
// row per granule and one column per file key and kind of fill value.
func writeInfoXLSX(filename string, rows []GranuleInfo) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("granules")
	if err != nil {
		return err
	}
	var cols []string
	seen := make(map[string]bool)
	for _, g := range rows {
		for _, k := range sortedKeys(g.Invalid) {
			for _, c := range sdr.InvalidCodes() {
				col := k + ":" + c
				if !seen[col] {
					seen[col] = true
					cols = append(cols, col)
				}
			}
		}
	}

	header := sheet.AddRow()
	for _, h := range append(append([]string(nil), infoHeader...), cols...) {
		header.AddCell().SetString(h)
	}
	for _, g := range rows {
		row := sheet.AddRow()
		for _, v := range []string{g.FileType, g.File, g.Platform, g.Sensor,
			g.Start.Format(time.RFC3339), g.End.Format(time.RFC3339)} {
			row.AddCell().SetString(v)
		}
		row.AddCell().SetInt(g.BeginOrbit)
		row.AddCell().SetInt(g.EndOrbit)
		for _, col := range cols {
			i := strings.LastIndex(col, ":")
			counts, ok := g.Invalid[col[:i]]
			if !ok {
				row.AddCell()
				continue
			}
			row.AddCell().SetInt(counts[col[i+1:]])
		}
	}
	if err := f.Save(filename); err != nil {
		return fmt.Errorf("sdrutil: writing %s: %v", filename, err)
	}
	return nil
}
