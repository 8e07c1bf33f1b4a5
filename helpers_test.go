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
	"io/ioutil"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/sdr/store"
)

const granuleLength = 2 * time.Minute

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func metaKey(name, attr string) FileKey {
	return NewFileKey(name, "Data_Products/{file_group}/{file_group}_Gran_0/attr/"+attr, Float64)
}

func dataKey(name, variable string, kind Kind) FileKey {
	return NewFileKey(name, "All_Data/{file_group}_All/"+variable, kind)
}

// testConfig describes M15 and M05 band files and their terrain
// corrected geolocation.
func testConfig() *Config {
	keys := make(FileKeys)
	keys.Add(metaKey(BeginningDateKey, "Beginning_Date"))
	keys.Add(metaKey(BeginningTimeKey, "Beginning_Time"))
	keys.Add(metaKey(EndingDateKey, "Ending_Date"))
	keys.Add(metaKey(EndingTimeKey, "Ending_Time"))
	keys.Add(metaKey(BeginningOrbitKey, "N_Beginning_Orbit_Number"))
	keys.Add(metaKey(EndingOrbitKey, "N_Ending_Orbit_Number"))
	keys.Add(metaKey(GRingLongitudeKey, "G-Ring_Longitude"))
	keys.Add(metaKey(GRingLatitudeKey, "G-Ring_Latitude"))
	keys.Add(NewFileKey(PlatformKey, "/attr/Platform_Short_Name", Float64))
	keys.Add(NewFileKey(InstrumentKey, "Data_Products/{file_group}/attr/Instrument_Short_Name", Float64))
	keys.Add(NewFileKey(GeoFileReferenceKey, "/attr/N_GEO_Ref", Float64))

	bt := dataKey("brightness_temperature", "BrightnessTemperature", Float32)
	bt.ScalingFactors = "brightness_temperature_factors"
	bt.StandardName = "toa_brightness_temperature"
	bt.Units = "K"
	keys.Add(bt)
	keys.Add(dataKey("brightness_temperature_factors", "BrightnessTemperatureFactors", Float32))

	rad := dataKey("radiance", "Radiance", Float32)
	rad.StandardName = "toa_outgoing_radiance_per_unit_wavelength"
	rad.Units = "W m-2 um-1 sr-1"
	rad.FileUnits = "W m-2 um-1 sr-1"
	keys.Add(rad)

	refl := dataKey("reflectance", "Reflectance", Float32)
	refl.ScalingFactors = "reflectance_factors"
	refl.StandardName = "toa_bidirectional_reflectance"
	refl.Units = "%"
	keys.Add(refl)
	keys.Add(dataKey("reflectance_factors", "ReflectanceFactors", Float32))

	keys.Add(dataKey("longitude", "Longitude", Float32))
	keys.Add(dataKey("latitude", "Latitude", Float32))

	return &Config{
		FileTypes: []*FileType{
			{
				Name:     "SVM15",
				Patterns: []string{"SVM15_{platform}_d{date}_t{start}_e{end}_b{orbit}.h5"},
				Params:   map[string]string{"file_group": "VIIRS-M15-SDR"},
			},
			{
				Name:     "SVM05",
				Patterns: []string{"SVM05_{platform}_d{date}_t{start}_e{end}_b{orbit}.h5"},
				Params:   map[string]string{"file_group": "VIIRS-M5-SDR"},
			},
			{
				Name:     "GMTCO",
				Patterns: []string{"GMTCO_{platform}_d{date}_t{start}_e{end}_b{orbit}.h5"},
				Params:   map[string]string{"file_group": "VIIRS-MOD-GEO-TC"},
			},
		},
		FileKeys: keys,
		Navigations: map[string]Navigation{
			"m": {LongitudeKey: "longitude", LatitudeKey: "latitude", FileType: "GMTCO", RowsPerScan: 16},
		},
		Calibrations: map[string]CalibrationOverride{},
		Datasets: map[string]DatasetInfo{
			"M15": {Name: "M15", Alternatives: []CalibrationAlternative{
				{FileType: "SVM15", FileKey: "brightness_temperature", Navigation: "m", Calibration: "bt"},
				{FileType: "SVM15", FileKey: "radiance", Navigation: "m", Calibration: "radiance"},
			}},
			"M05": {Name: "M05", Alternatives: []CalibrationAlternative{
				{FileType: "SVM05", FileKey: "reflectance", Navigation: "m", Calibration: "reflectance"},
				{FileType: "SVM05", FileKey: "radiance", Navigation: "m", Calibration: "radiance"},
			}},
		},
	}
}

// fiveStarts are the granule start times used by the selection tests.
var fiveStarts = []time.Time{
	time.Date(2015, 6, 24, 23, 57, 0, 0, time.UTC),
	time.Date(2015, 6, 24, 23, 59, 0, 0, time.UTC),
	time.Date(2015, 6, 25, 0, 1, 0, 0, time.UTC),
	time.Date(2015, 6, 25, 0, 3, 0, 0, time.UTC),
	time.Date(2015, 6, 25, 0, 5, 0, 0, time.UTC),
}

func granuleName(prefix string, start time.Time, orbit int) string {
	end := start.Add(granuleLength)
	return fmt.Sprintf("/data/%s_npp_d%s_t%s_e%s_b%05d.h5",
		prefix, start.Format("20060102"), start.Format("1504050"), end.Format("1504050"), orbit)
}

// granuleMem builds a granule of file type ft with 2 rows and 3
// columns. Granule i covers latitudes [2i, 2i+2].
func granuleMem(ft *FileType, i int, start time.Time) *store.Mem {
	end := start.Add(granuleLength)
	orbit := 18000 + i
	fg := ft.Params["file_group"]
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
			"/attr/Platform_Short_Name":       "NPP",
			"/attr/N_GEO_Ref":                 granuleName("GMTCO", start, orbit)[len("/data/"):],
			"Data_Products/" + fg + "/attr/Instrument_Short_Name": "VIIRS",
		},
		Data: make(map[string]*store.Raw),
	}
	shape := []int{2, 3}
	switch ft.Name {
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

// testFS returns an in-memory file system holding one granule of each
// named file type for each start time, and the names of the files by
// file type.
func testFS(cfg *Config, starts []time.Time, fileTypes ...string) (*store.MemFS, map[string][]string) {
	fs := store.NewMemFS(make(map[string]*store.Mem))
	names := make(map[string][]string)
	for _, name := range fileTypes {
		ft, ok := cfg.FileType(name)
		if !ok {
			panic(name)
		}
		for i, s := range starts {
			fn := granuleName(name, s, 18000+i)
			fs.Add(fn, granuleMem(ft, i, s))
			names[name] = append(names[name], fn)
		}
	}
	return fs, names
}

func testGranule(cfg *Config, fs *store.MemFS, fileType, filename string) (*Granule, error) {
	ft, ok := cfg.FileType(fileType)
	if !ok {
		return nil, fmt.Errorf("no file type %s", fileType)
	}
	return NewGranule(ft, filename, cfg.FileKeys, fs.Open, testLogger())
}
