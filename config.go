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
)

// FileType describes one kind of data file.
type FileType struct {
	Name string

	// Patterns are the file name patterns of the file type. Fields in
	// braces match any text.
	Patterns []string

	// Params fill in the placeholders of file key templates.
	Params map[string]string

	// Reader names the registered GranuleFunc that opens files of
	// this type. If empty, DefaultGranuleReader is used.
	Reader string
}

// Navigation describes where the geolocation for a dataset comes from.
type Navigation struct {
	LongitudeKey, LatitudeKey string
	FileType                  string
	RowsPerScan               int
}

// CalibrationOverride replaces the source of a dataset when the named
// calibration is chosen. Empty fields are not replaced.
type CalibrationOverride struct {
	FileType, FileKey, Navigation string
}

// CalibrationAlternative is one way of producing a dataset.
type CalibrationAlternative struct {
	FileType, FileKey, Navigation, Calibration string
}

// DatasetInfo describes a dataset that can be loaded.
type DatasetInfo struct {
	Name string

	// Alternatives are the ways the dataset can be produced, in
	// order of preference for datasets with no calibration.
	Alternatives []CalibrationAlternative
}

// Config holds everything the reader knows about the files it reads.
type Config struct {
	// FileTypes are tried in order when identifying files; a file
	// belongs to the first file type with a matching pattern.
	FileTypes []*FileType

	FileKeys     FileKeys
	Navigations  map[string]Navigation
	Calibrations map[string]CalibrationOverride
	Datasets     map[string]DatasetInfo

	// Calibration is the calibration preference used when none is
	// given when loading.
	Calibration []string
}

// FileType returns the file type with the given name.
func (c *Config) FileType(name string) (*FileType, bool) {
	for _, ft := range c.FileTypes {
		if ft.Name == name {
			return ft, true
		}
	}
	return nil, false
}

// DatasetNames returns the names of the configured datasets in
// sorted order.
func (c *Config) DatasetNames() []string {
	names := make([]string, 0, len(c.Datasets))
	for n := range c.Datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every name the configuration refers to is
// defined and that every file key template can be filled in by the
// file types it is read from.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, ft := range c.FileTypes {
		if seen[ft.Name] {
			return fmt.Errorf("sdr: file type %s is defined more than once", ft.Name)
		}
		seen[ft.Name] = true
		if len(ft.Patterns) == 0 {
			return fmt.Errorf("sdr: file type %s has no file patterns", ft.Name)
		}
		if _, err := granuleReader(ft.Reader); err != nil {
			return fmt.Errorf("sdr: file type %s: %w", ft.Name, err)
		}
		for _, key := range metadataKeys {
			if _, ok := c.FileKeys[key]; !ok {
				continue
			}
			if err := c.checkKey(ft, key); err != nil {
				return fmt.Errorf("sdr: file type %s: %w", ft.Name, err)
			}
		}
	}
	for name, k := range c.FileKeys {
		if name != k.Name {
			return fmt.Errorf("sdr: file key %s is registered as %s", k.Name, name)
		}
	}
	for name, nav := range c.Navigations {
		ft, ok := c.FileType(nav.FileType)
		if !ok {
			return fmt.Errorf("sdr: navigation %s: unknown file type %q", name, nav.FileType)
		}
		for _, key := range []string{nav.LongitudeKey, nav.LatitudeKey} {
			if err := c.checkKey(ft, key); err != nil {
				return fmt.Errorf("sdr: navigation %s: %w", name, err)
			}
		}
	}
	for name, ds := range c.Datasets {
		if len(ds.Alternatives) == 0 {
			return fmt.Errorf("sdr: dataset %s has no sources", name)
		}
		for _, alt := range ds.Alternatives {
			ft, ok := c.FileType(alt.FileType)
			if !ok {
				return fmt.Errorf("sdr: dataset %s: %w", name,
					UnresolvedCalibrationError{Dataset: name, Field: "file_type", Value: alt.FileType})
			}
			if err := c.checkKey(ft, alt.FileKey); err != nil {
				return fmt.Errorf("sdr: dataset %s: %w", name, err)
			}
			if _, ok := c.Navigations[alt.Navigation]; !ok {
				return fmt.Errorf("sdr: dataset %s: %w", name,
					UnresolvedCalibrationError{Dataset: name, Field: "navigation", Value: alt.Navigation})
			}
		}
	}
	return nil
}

// checkKey checks that key is registered and that ft provides every
// parameter of its templates.
func (c *Config) checkKey(ft *FileType, key string) error {
	k, err := c.FileKeys.Get(key)
	if err != nil {
		return err
	}
	for _, tmpl := range []string{k.VariableName, c.scalingTemplate(k)} {
		for _, p := range templateParams(tmpl) {
			if _, ok := ft.Params[p]; !ok {
				return TemplateError{Template: tmpl, Param: p}
			}
		}
	}
	return nil
}

func (c *Config) scalingTemplate(k FileKey) string {
	if sk, ok := c.FileKeys[k.ScalingFactors]; ok {
		return sk.VariableName
	}
	return k.ScalingFactors
}
