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
	"errors"
	"reflect"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.FileTypes = append(cfg.FileTypes, &FileType{Name: "SVI01", Patterns: []string{"SVI01_*.h5"}})
	var te TemplateError
	if err := cfg.Validate(); !errors.As(err, &te) || te.Param != "file_group" {
		t.Errorf("missing parameter: %v", err)
	}

	cfg = testConfig()
	cfg.FileTypes = append(cfg.FileTypes, cfg.FileTypes[0])
	if err := cfg.Validate(); err == nil {
		t.Error("duplicate file types should be rejected")
	}

	cfg = testConfig()
	cfg.FileTypes[1].Patterns = nil
	if err := cfg.Validate(); err == nil {
		t.Error("file types with no patterns should be rejected")
	}

	cfg = testConfig()
	cfg.Navigations["m"] = Navigation{LongitudeKey: "longitude", LatitudeKey: "latitude", FileType: "GITCO"}
	if err := cfg.Validate(); err == nil {
		t.Error("navigation with an unknown file type should be rejected")
	}

	cfg = testConfig()
	cfg.Datasets["M15"].Alternatives[0].Navigation = "i"
	var ue UnresolvedCalibrationError
	if err := cfg.Validate(); !errors.As(err, &ue) || ue.Field != "navigation" {
		t.Errorf("unknown navigation: %v", err)
	}

	cfg = testConfig()
	cfg.Datasets["M15"].Alternatives[1].FileKey = "counts"
	var uv UnknownVariableError
	if err := cfg.Validate(); !errors.As(err, &uv) || uv.Name != "counts" {
		t.Errorf("unknown file key: %v", err)
	}
}

func TestDatasetNames(t *testing.T) {
	if got := testConfig().DatasetNames(); !reflect.DeepEqual(got, []string{"M05", "M15"}) {
		t.Errorf("got %v", got)
	}
}

func TestMatchPattern(t *testing.T) {
	const pattern = "SVM15_{platform}_d{date}_t{start}_e{end}_b{orbit}.h5"
	for _, test := range []struct {
		fn   string
		want bool
	}{
		{"/data/SVM15_npp_d20150624_t2357000_e2359000_b18000.h5", true},
		{"GMTCO_SVM15_npp_d20150624_t2357000_e2359000_b18000.h5", true},
		{"/data/SVM15_npp_d20150624_t2357000_e2359000_b18000_c2015062500.h5", true},
		{"/data/SVM05_npp_d20150624_t2357000_e2359000_b18000.h5", false},
		{"/data/SVM15_npp_d20150624_t2357000_e2359000_b18000.nc", false},
		{"/SVM15_npp_d/x.h5", false},
	} {
		if got := matchPattern(pattern, test.fn); got != test.want {
			t.Errorf("%s: got %v", test.fn, got)
		}
	}
	if g := globify(pattern); g != "SVM15_*_d*_t*_e*_b*.h5" {
		t.Errorf("glob = %s", g)
	}
}
