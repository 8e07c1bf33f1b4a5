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
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/spatialmodel/sdr"
	"gopkg.in/yaml.v3"
)

// fileConfig is the form of a reader configuration file.
type fileConfig struct {
	Calibration  []string                    `toml:"calibration" yaml:"calibration"`
	FileTypes    []fileTypeConfig            `toml:"file_types" yaml:"file_types"`
	FileKeys     []fileKeyConfig             `toml:"file_keys" yaml:"file_keys"`
	Navigations  map[string]navigationConfig `toml:"navigations" yaml:"navigations"`
	Calibrations map[string]overrideConfig   `toml:"calibrations" yaml:"calibrations"`
	Datasets     map[string]datasetConfig    `toml:"datasets" yaml:"datasets"`
}

type fileTypeConfig struct {
	Name     string            `toml:"name" yaml:"name"`
	Patterns []string          `toml:"patterns" yaml:"patterns"`
	Params   map[string]string `toml:"params" yaml:"params"`
	Reader   string            `toml:"reader" yaml:"reader"`
}

type fileKeyConfig struct {
	Name           string   `toml:"name" yaml:"name"`
	Variable       string   `toml:"variable" yaml:"variable"`
	ScalingFactors string   `toml:"scaling_factors" yaml:"scaling_factors"`
	Kind           string   `toml:"kind" yaml:"kind"`
	StandardName   string   `toml:"standard_name" yaml:"standard_name"`
	Units          string   `toml:"units" yaml:"units"`
	FileUnits      string   `toml:"file_units" yaml:"file_units"`
	FillMaxFloat   *float64 `toml:"fill_max_float" yaml:"fill_max_float"`
	FillMinInt     *int64   `toml:"fill_min_int" yaml:"fill_min_int"`
}

type navigationConfig struct {
	LongitudeKey string `toml:"longitude_key" yaml:"longitude_key"`
	LatitudeKey  string `toml:"latitude_key" yaml:"latitude_key"`
	FileType     string `toml:"file_type" yaml:"file_type"`
	RowsPerScan  int    `toml:"rows_per_scan" yaml:"rows_per_scan"`
}

// overrideConfig replaces the source of a dataset when its
// calibration is chosen.
type overrideConfig struct {
	FileType   string `toml:"file_type" yaml:"file_type"`
	FileKey    string `toml:"file_key" yaml:"file_key"`
	Navigation string `toml:"navigation" yaml:"navigation"`
}

type datasetConfig struct {
	Alternatives []alternativeConfig `toml:"alternatives" yaml:"alternatives"`
}

type alternativeConfig struct {
	FileType    string `toml:"file_type" yaml:"file_type"`
	FileKey     string `toml:"file_key" yaml:"file_key"`
	Navigation  string `toml:"navigation" yaml:"navigation"`
	Calibration string `toml:"calibration" yaml:"calibration"`
}

// defaultKind is the kind of file keys that do not give one.
const defaultKind = sdr.Float32

// ReadConfig reads a reader configuration from a TOML (.toml) or YAML
// (.yaml, .yml) file. Environment variables in the file name and in
// file name patterns are expanded.
func ReadConfig(filename string) (*sdr.Config, error) {
	filename = os.ExpandEnv(filename)
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("sdrutil: reading reader configuration: %v", err)
	}
	cfg, err := DecodeConfig(b, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("sdrutil: %s: %v", filename, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a reader configuration in the format given by
// the file extension ext and checks it for consistency.
func DecodeConfig(b []byte, ext string) (*sdr.Config, error) {
	var fc fileConfig
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.DecodeReader(bytes.NewReader(b), &fc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown configuration format %q; use .toml or .yaml", ext)
	}
	cfg, err := fc.config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) config() (*sdr.Config, error) {
	cfg := &sdr.Config{
		FileKeys:     make(sdr.FileKeys),
		Navigations:  make(map[string]sdr.Navigation),
		Calibrations: make(map[string]sdr.CalibrationOverride),
		Datasets:     make(map[string]sdr.DatasetInfo),
		Calibration:  fc.Calibration,
	}
	for _, ft := range fc.FileTypes {
		if ft.Name == "" {
			return nil, fmt.Errorf("file type with patterns %v has no name", ft.Patterns)
		}
		patterns := make([]string, len(ft.Patterns))
		for i, p := range ft.Patterns {
			patterns[i] = os.ExpandEnv(p)
		}
		cfg.FileTypes = append(cfg.FileTypes, &sdr.FileType{
			Name:     ft.Name,
			Patterns: patterns,
			Params:   ft.Params,
			Reader:   ft.Reader,
		})
	}
	for _, k := range fc.FileKeys {
		if _, ok := cfg.FileKeys[k.Name]; ok {
			return nil, fmt.Errorf("file key %s is defined more than once", k.Name)
		}
		kind := defaultKind
		if k.Kind != "" {
			var err error
			if kind, err = sdr.ParseKind(k.Kind); err != nil {
				return nil, fmt.Errorf("file key %s: %v", k.Name, err)
			}
		}
		fk := sdr.NewFileKey(k.Name, k.Variable, kind)
		fk.ScalingFactors = k.ScalingFactors
		fk.StandardName = k.StandardName
		fk.Units = k.Units
		fk.FileUnits = k.FileUnits
		if k.FillMaxFloat != nil {
			fk.FillMaxFloat = *k.FillMaxFloat
		}
		if k.FillMinInt != nil {
			fk.FillMinInt = *k.FillMinInt
		}
		cfg.FileKeys.Add(fk)
	}
	for name, n := range fc.Navigations {
		cfg.Navigations[name] = sdr.Navigation{
			LongitudeKey: n.LongitudeKey,
			LatitudeKey:  n.LatitudeKey,
			FileType:     n.FileType,
			RowsPerScan:  n.RowsPerScan,
		}
	}
	for name, o := range fc.Calibrations {
		cfg.Calibrations[name] = sdr.CalibrationOverride{
			FileType:   o.FileType,
			FileKey:    o.FileKey,
			Navigation: o.Navigation,
		}
	}
	for name, d := range fc.Datasets {
		info := sdr.DatasetInfo{Name: name}
		for _, a := range d.Alternatives {
			info.Alternatives = append(info.Alternatives, sdr.CalibrationAlternative{
				FileType:    a.FileType,
				FileKey:     a.FileKey,
				Navigation:  a.Navigation,
				Calibration: a.Calibration,
			})
		}
		cfg.Datasets[name] = info
	}
	return cfg, nil
}

// timeLayouts are the accepted forms of selection times.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseTime parses a selection time. An empty string is the zero time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(os.ExpandEnv(s))
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("sdrutil: invalid time %q; use the form 2006-01-02T15:04:05Z", s)
}

// parseSelection builds a granule selection from configuration values.
func parseSelection(start, end, footprintFile string) (sdr.Selection, error) {
	var sel sdr.Selection
	var err error
	if sel.Start, err = parseTime(start); err != nil {
		return sel, err
	}
	if sel.End, err = parseTime(end); err != nil {
		return sel, err
	}
	if !sel.End.IsZero() && sel.Start.IsZero() {
		return sel, fmt.Errorf("sdrutil: an end time was given without a start time")
	}
	if !sel.End.IsZero() && sel.End.Before(sel.Start) {
		return sel, fmt.Errorf("sdrutil: end time %v is before start time %v", sel.End, sel.Start)
	}
	if sel.Footprint, err = parseFootprint(footprintFile); err != nil {
		return sel, err
	}
	return sel, nil
}

// parseFootprint reads a longitude-latitude polygon from a GeoJSON file.
func parseFootprint(filename string) (geom.Polygon, error) {
	if filename == "" {
		return nil, nil
	}
	b, err := ioutil.ReadFile(os.ExpandEnv(filename))
	if err != nil {
		return nil, fmt.Errorf("sdrutil: reading footprint: %w", err)
	}
	g, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("sdrutil: decoding footprint: %w", err)
	}
	if p, ok := g.(geom.Polygon); ok {
		return p, nil
	}
	return nil, fmt.Errorf("sdrutil: footprint has geometry type %T; it must be a polygon", g)
}
