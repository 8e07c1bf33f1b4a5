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
	"math"
	"reflect"
	"testing"
)

func TestExpand(t *testing.T) {
	params := map[string]string{"file_group": "VIIRS-M15-SDR", "n": "0"}
	for _, test := range []struct {
		tmpl, want string
		err        bool
	}{
		{tmpl: "All_Data/{file_group}_All/Radiance", want: "All_Data/VIIRS-M15-SDR_All/Radiance"},
		{tmpl: "Data_Products/{file_group}/{file_group}_Gran_{n}", want: "Data_Products/VIIRS-M15-SDR/VIIRS-M15-SDR_Gran_0"},
		{tmpl: "/attr/Platform_Short_Name", want: "/attr/Platform_Short_Name"},
		{tmpl: "{{literal}}", want: "{literal}"},
		{tmpl: "All_Data/{band}", err: true},
		{tmpl: "All_Data/{file_group", err: true},
	} {
		got, err := expand(test.tmpl, params)
		if test.err {
			if err == nil {
				t.Errorf("%s: expected an error", test.tmpl)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", test.tmpl, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %q, want %q", test.tmpl, got, test.want)
		}
	}
}

func TestTemplateParams(t *testing.T) {
	got := templateParams("Data_Products/{file_group}/{file_group}_Gran_{n}/{{x}}")
	want := []string{"file_group", "file_group", "n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFileKeysResolve(t *testing.T) {
	keys := testConfig().FileKeys
	params := map[string]string{"file_group": "VIIRS-M15-SDR"}
	for item, want := range map[string]string{
		"radiance":                 "All_Data/VIIRS-M15-SDR_All/Radiance",
		"radiance/shape":           "All_Data/VIIRS-M15-SDR_All/Radiance/shape",
		"/attr/N_GEO_Ref":          "/attr/N_GEO_Ref",
		"All_Data/Something/shape": "All_Data/Something/shape",
		PlatformKey:                "/attr/Platform_Short_Name",
	} {
		got, err := keys.Resolve(item, params)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %q, want %q", item, got, want)
		}
	}
	if _, err := keys.Path("nope", params); err != (UnknownVariableError{Name: "nope"}) {
		t.Errorf("unknown key: %v", err)
	}
}

func TestFillThresholds(t *testing.T) {
	f := NewFileKey("x", "x", Float32)
	fill := f.Fill(true)
	if !fill.Invalid(-999) {
		t.Error("the float threshold itself should be invalid")
	}
	if fill.Invalid(-998) {
		t.Error("one unit above the float threshold should be valid")
	}
	if fill.Invalid(math.NaN()) {
		t.Error("NaN is not a fill value")
	}

	i := NewFileKey("x", "x", Uint16)
	fill = i.Fill(false)
	if !fill.Invalid(65528) {
		t.Error("the integer threshold itself should be invalid")
	}
	if fill.Invalid(65527) {
		t.Error("one unit below the integer threshold should be valid")
	}

	i.FillMinInt = 100
	if !i.Fill(false).Invalid(100) || i.Fill(false).Invalid(99) {
		t.Error("overridden integer threshold not used")
	}

	// The policy follows the stored type, not the kind.
	if !f.Fill(false).Invalid(65535) {
		t.Error("integer fill stored for a float kind should be invalid")
	}
	if !i.Fill(true).Invalid(-999.3) {
		t.Error("float fill stored for an integer kind should be invalid")
	}
}

func TestKindCast(t *testing.T) {
	for _, test := range []struct {
		k       Kind
		in, out float64
	}{
		{Float64, 0.1, 0.1},
		{Float32, 0.1, float64(float32(0.1))},
		{Uint16, 210.7, 210},
		{Uint16, -3, 0},
		{Uint16, 70000, 65535},
		{Int8, -200, -128},
		{Int32, -2.5, -2},
	} {
		if got := test.k.Cast(test.in); got != test.out {
			t.Errorf("%v(%g) = %g; want %g", test.k, test.in, got, test.out)
		}
	}
	k, err := ParseKind("uint16")
	if err != nil || k != Uint16 {
		t.Errorf("ParseKind: %v, %v", k, err)
	}
	if _, err := ParseKind("complex64"); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}
