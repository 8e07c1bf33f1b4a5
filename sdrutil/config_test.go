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
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spatialmodel/sdr"
)

func TestReadConfigExample(t *testing.T) {
	cfg, err := ReadConfig(exampleConfig)
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	for _, ft := range cfg.FileTypes {
		types = append(types, ft.Name)
	}
	if want := []string{"GMTCO", "GITCO", "SVM05", "SVM15", "SVI01"}; !reflect.DeepEqual(types, want) {
		t.Errorf("file types = %v; want %v", types, want)
	}
	if want := []string{"I01", "M05", "M15"}; !reflect.DeepEqual(cfg.DatasetNames(), want) {
		t.Errorf("datasets = %v; want %v", cfg.DatasetNames(), want)
	}
	if n := cfg.Navigations["i"]; n.RowsPerScan != 32 || n.FileType != "GITCO" {
		t.Errorf("navigation i = %+v", n)
	}
	bt, err := cfg.FileKeys.Get("brightness_temperature")
	if err != nil {
		t.Fatal(err)
	}
	if bt.Kind != sdr.Float32 || bt.ScalingFactors != "brightness_temperature_factors" || bt.Units != "K" {
		t.Errorf("brightness_temperature = %+v", bt)
	}
	lon, err := cfg.FileKeys.Get("longitude")
	if err != nil {
		t.Fatal(err)
	}
	if lon.Kind != sdr.Float32 {
		t.Errorf("longitude kind = %v", lon.Kind)
	}
	if want := []string{"bt", "reflectance"}; !reflect.DeepEqual(cfg.Calibration, want) {
		t.Errorf("calibration = %v", cfg.Calibration)
	}
}

const yamlConfig = `
file_types:
  - name: SVM15
    patterns: ["SVM15_{platform}_d{date}_t{start}.h5"]
    params: {file_group: VIIRS-M15-SDR}
  - name: GMTCO
    patterns: ["GMTCO_{platform}_d{date}_t{start}.h5"]
    params: {file_group: VIIRS-MOD-GEO-TC}
file_keys:
  - name: radiance
    variable: "All_Data/{file_group}_All/Radiance"
    kind: float64
    fill_max_float: -500
  - name: longitude
    variable: "All_Data/{file_group}_All/Longitude"
  - name: latitude
    variable: "All_Data/{file_group}_All/Latitude"
navigations:
  m:
    longitude_key: longitude
    latitude_key: latitude
    file_type: GMTCO
    rows_per_scan: 16
calibrations:
  radiance:
    navigation: m
datasets:
  M15:
    alternatives:
      - {file_type: SVM15, file_key: radiance, navigation: m, calibration: radiance}
`

func TestDecodeConfigYAML(t *testing.T) {
	cfg, err := DecodeConfig([]byte(yamlConfig), ".yml")
	if err != nil {
		t.Fatal(err)
	}
	rad, err := cfg.FileKeys.Get("radiance")
	if err != nil {
		t.Fatal(err)
	}
	if rad.Kind != sdr.Float64 || rad.FillMaxFloat != -500 {
		t.Errorf("radiance = %+v", rad)
	}
	if o := cfg.Calibrations["radiance"]; o.Navigation != "m" {
		t.Errorf("override = %+v", o)
	}
	want := sdr.CalibrationAlternative{FileType: "SVM15", FileKey: "radiance", Navigation: "m", Calibration: "radiance"}
	if alt := cfg.Datasets["M15"].Alternatives; len(alt) != 1 || alt[0] != want {
		t.Errorf("alternatives = %+v", alt)
	}
	if ft, ok := cfg.FileType("GMTCO"); !ok || ft.Params["file_group"] != "VIIRS-MOD-GEO-TC" {
		t.Errorf("GMTCO = %+v", ft)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	for _, test := range []struct {
		name, config, ext string
	}{
		{"format", "a = 1", ".json"},
		{"syntax", "file_types = [", ".toml"},
		{"kind", "[[file_keys]]\nname = \"x\"\nvariable = \"x\"\nkind = \"complex128\"\n", ".toml"},
		{"duplicate key", "[[file_keys]]\nname = \"x\"\nvariable = \"x\"\n[[file_keys]]\nname = \"x\"\nvariable = \"y\"\n", ".toml"},
		{"unnamed type", "[[file_types]]\npatterns = [\"a*\"]\n", ".toml"},
		{"validation", "[[file_types]]\nname = \"A\"\n", ".toml"},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := DecodeConfig([]byte(test.config), test.ext); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection("2015-06-25T00:01:00Z", "2015-06-25T00:05", "")
	if err != nil {
		t.Fatal(err)
	}
	if !sel.Start.Equal(time.Date(2015, 6, 25, 0, 1, 0, 0, time.UTC)) || !sel.End.Equal(time.Date(2015, 6, 25, 0, 5, 0, 0, time.UTC)) {
		t.Errorf("selection = %+v", sel)
	}
	if sel, err = parseSelection("", "", ""); err != nil || !sel.Start.IsZero() || sel.Footprint != nil {
		t.Errorf("empty selection = %+v, %v", sel, err)
	}
	for _, c := range [][2]string{
		{"", "2015-06-25"},
		{"2015-06-25T00:05:00Z", "2015-06-25T00:01:00Z"},
		{"yesterday", ""},
	} {
		if _, err := parseSelection(c[0], c[1], ""); err == nil {
			t.Errorf("%v: expected an error", c)
		}
	}
}

func TestParseFootprint(t *testing.T) {
	dir, err := os.MkdirTemp("", "sdrutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	poly := filepath.Join(dir, "area.geojson")
	if err := os.WriteFile(poly, []byte(`{"type":"Polygon","coordinates":[[[0,4.5],[10,4.5],[10,5.5],[0,5.5],[0,4.5]]]}`), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := parseFootprint(poly)
	if err != nil {
		t.Fatal(err)
	}
	if b := p.Bounds(); b.Min.Y != 4.5 || b.Max.X != 10 {
		t.Errorf("bounds = %+v", b)
	}

	multi := filepath.Join(dir, "multi.geojson")
	if err := os.WriteFile(multi, []byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = parseFootprint(multi); err == nil {
		t.Error("expected an error for a multipolygon")
	}

	point := filepath.Join(dir, "point.geojson")
	if err := os.WriteFile(point, []byte(`{"type":"Point","coordinates":[1,2]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseFootprint(point); err == nil {
		t.Error("expected an error for a point")
	}
	if _, err := parseFootprint(filepath.Join(dir, "missing.geojson")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFootprintSelection(t *testing.T) {
	files, cleanup := setup(t)
	defer cleanup()
	dir, err := os.MkdirTemp("", "sdrutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	area := filepath.Join(dir, "area.geojson")
	if err := os.WriteFile(area, []byte(`{"type":"Polygon","coordinates":[[[0,4.5],[10,4.5],[10,5.5],[0,5.5],[0,4.5]]]}`), 0644); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("footprint", area)
	defer Cfg.Set("footprint", "")

	r, closer, err := newReader(files)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	agg, ok := r.Aggregate("SVM15")
	if !ok {
		t.Fatal("no SVM15 granules")
	}
	if len(agg.Granules) != 1 || agg.Granules[0].Filename != files[2] {
		t.Errorf("selected %v; want %s", agg.Filenames(), files[2])
	}
}
