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
	"github.com/sirupsen/logrus"
)

// CalibrationOrder lists calibration levels from highest to lowest.
var CalibrationOrder = []string{"bt", "reflectance", "radiance", "counts"}

// DefaultCalibration is the calibration preference used when neither
// the caller nor the configuration gives one.
var DefaultCalibration = []string{"bt", "reflectance"}

// OrderCalibrations returns the levels of CalibrationOrder that
// appear in preference, highest first. Unknown levels are dropped.
func OrderCalibrations(preference []string) []string {
	want := make(map[string]bool, len(preference))
	for _, p := range preference {
		want[p] = true
	}
	var out []string
	for _, c := range CalibrationOrder {
		if want[c] {
			out = append(out, c)
		}
	}
	return out
}

// ResolvedDataset is the source chosen for a dataset.
type ResolvedDataset struct {
	Name string
	CalibrationAlternative
	StandardName string
}

// ResolveCalibration chooses how to produce the named dataset.
// available holds the file types that have files. Alternatives whose
// file type is not available are discarded; of the rest, the first
// whose calibration is in preference is chosen, or else the first one.
// Any override configured for the chosen calibration is then applied.
func (c *Config) ResolveCalibration(name string, preference []string, available map[string]bool, log logrus.FieldLogger) (*ResolvedDataset, error) {
	ds, ok := c.Datasets[name]
	if !ok {
		return nil, UnresolvedCalibrationError{Dataset: name, Field: "dataset", Value: name}
	}
	var alts []CalibrationAlternative
	for _, a := range ds.Alternatives {
		if available[a.FileType] {
			alts = append(alts, a)
		}
	}
	if len(alts) == 0 {
		return nil, NoAvailableCalibrationError{Dataset: name}
	}

	want := make(map[string]bool, len(preference))
	for _, p := range preference {
		want[p] = true
	}
	chosen := alts[0]
	found := false
	for _, a := range alts {
		if want[a.Calibration] {
			chosen = a
			found = true
			break
		}
	}
	log = log.WithFields(logrus.Fields{"dataset": name, "calibration": chosen.Calibration})
	if found {
		log.Debug("using calibration")
	} else {
		log.Debug("using default calibration")
	}

	if o, ok := c.Calibrations[chosen.Calibration]; ok {
		if o.FileType != "" {
			chosen.FileType = o.FileType
		}
		if o.FileKey != "" {
			chosen.FileKey = o.FileKey
		}
		if o.Navigation != "" {
			chosen.Navigation = o.Navigation
		}
	}

	if _, ok := c.FileType(chosen.FileType); !ok {
		return nil, UnresolvedCalibrationError{Dataset: name, Field: "file_type", Value: chosen.FileType}
	}
	k, ok := c.FileKeys[chosen.FileKey]
	if !ok {
		return nil, UnresolvedCalibrationError{Dataset: name, Field: "file_key", Value: chosen.FileKey}
	}
	if _, ok := c.Navigations[chosen.Navigation]; !ok {
		return nil, UnresolvedCalibrationError{Dataset: name, Field: "navigation", Value: chosen.Navigation}
	}
	return &ResolvedDataset{
		Name:                   name,
		CalibrationAlternative: chosen,
		StandardName:           k.StandardName,
	}, nil
}
