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
	"testing"
	"time"

	"github.com/spatialmodel/sdr/store"
)

const exampleConfig = "../cmd/sdr/viirs_sdr.toml"

var fileGroups = map[string]string{
	"SVM15": "VIIRS-M15-SDR",
	"SVM05": "VIIRS-M5-SDR",
	"GMTCO": "VIIRS-MOD-GEO-TC",
}

var granuleStarts = []time.Time{
	time.Date(2015, 6, 25, 0, 1, 0, 0, time.UTC),
	time.Date(2015, 6, 25, 0, 3, 0, 0, time.UTC),
	time.Date(2015, 6, 25, 0, 5, 0, 0, time.UTC),
}

func granuleName(prefix string, start time.Time, orbit int) string {
	end := start.Add(2 * time.Minute)
	return fmt.Sprintf("/data/%s_npp_d%s_t%s_e%s_b%05d_c20150625001000000000_noaa_ops.h5",
		prefix, start.Format("20060102"), start.Format("1504050"), end.Format("1504050"), orbit)
}

// granuleMem builds a 2 row by 3 column granule of the given file type
// laid out the way the example reader configuration expects.
// Granule i covers latitudes [2i, 2i+2].
func granuleMem(fileType string, i int, start time.Time) *store.Mem {
	end := start.Add(2 * time.Minute)
	orbit := 18000 + i
	fg := fileGroups[fileType]
	gran := "Data_Products/" + fg + "/" + fg + "_Gran_0/attr/"
	all := "All_Data/" + fg + "_All/"
	lat0 := float64(2 * i)
	m := &store.Mem{
		Attrs: map[string]interface{}{
			gran + "Beginning_Date":           []string{start.Format("20060102")},
			gran + "Beginning_Time":           []string{start.Format("150405.000000Z")},
			gran + "Ending_Date":              []string{end.Format("20060102")},
			gran + "Ending_Time":              []string{end.Format("150405.000000Z")},
			gran + "N_Beginning_Orbit_Number": []uint64{uint64(orbit)},
			gran + "N_Ending_Orbit_Number":    []uint64{uint64(orbit)},
			gran + "G-Ring_Longitude":         []float64{0, 10, 10, 0},
			gran + "G-Ring_Latitude":          []float64{lat0, lat0, lat0 + 2, lat0 + 2},
			gran + "N_GEO_Ref":                granuleName("GMTCO", start, orbit)[len("/data/"):],
			"/attr/Platform_Short_Name":       "NPP",
			"Data_Products/" + fg + "/attr/Instrument_Short_Name": "VIIRS",
		},
		Data: make(map[string]*store.Raw),
	}
	shape := []int{2, 3}
	switch fileType {
	case "SVM15":
		m.Data[all+"BrightnessTemperature"] = &store.Raw{Shape: shape,
			Values: []float64{1000, 2000, 3000, 65535, 4000, 65528}}
		m.Data[all+"BrightnessTemperatureFactors"] = &store.Raw{Shape: []int{2},
			Values: []float64{0.01, 200}, Float: true}
		m.Data[all+"Radiance"] = &store.Raw{Shape: shape,
			Values: []float64{1.5, 2.5, -999.3, 3.5, 4.5, 5.5}, Float: true}
	case "SVM05":
		m.Data[all+"Reflectance"] = &store.Raw{Shape: shape,
			Values: []float64{1000, 2000, 3000, 4000, 5000, 65533}}
		m.Data[all+"ReflectanceFactors"] = &store.Raw{Shape: []int{2},
			Values: []float64{0.0001, 0}, Float: true}
		m.Data[all+"Radiance"] = &store.Raw{Shape: shape,
			Values: []float64{10, 20, 30, 40, 50, 60}, Float: true}
	case "GMTCO":
		m.Data[all+"Longitude"] = &store.Raw{Shape: shape,
			Values: []float64{1, 5, 9, 1, -999.9, 9}, Float: true}
		m.Data[all+"Latitude"] = &store.Raw{Shape: shape,
			Values: []float64{lat0 + 0.5, lat0 + 0.5, lat0 + 0.5, lat0 + 1.5, lat0 + 1.5, lat0 + 1.5}, Float: true}
	}
	return m
}

// setup points the commands at an in-memory set of M15, M05 and
// geolocation granules and returns the granule file names. The
// returned function restores the file opener.
func setup(t *testing.T) ([]string, func()) {
	fs := store.NewMemFS(make(map[string]*store.Mem))
	var files []string
	for _, ft := range []string{"SVM15", "SVM05", "GMTCO"} {
		for i, s := range granuleStarts {
			fn := granuleName(ft, s, 18000+i)
			fs.Add(fn, granuleMem(ft, i, s))
			files = append(files, fn)
		}
	}
	oldOpen := openFile
	openFile = fs.Open
	Cfg.Set("ReaderConfig", exampleConfig)
	Cfg.Set("LogLevel", "error")
	Cfg.Set("start", "")
	Cfg.Set("end", "")
	Cfg.Set("footprint", "")
	Cfg.Set("OutputFile", "")
	return files, func() { openFile = oldOpen }
}
