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

// Package sdr reads calibrated swaths from sequences of satellite
// sensor data record (SDR) granules. A Reader identifies the files it
// is given, selects the granules that cover a time window or area,
// joins consecutive granules of each file type, and loads datasets at
// the best calibration level the files provide.
package sdr

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/sdr/store"
)

// Reader loads datasets from a set of granule files.
type Reader struct {
	cfg         *Config
	sel         Selection
	open        store.Opener
	log         logrus.FieldLogger
	calibration []string

	// Filenames are the files the reader was created with.
	Filenames []string

	aggregates map[string]*Aggregate
}

// Option configures a Reader.
type Option func(*Reader)

// WithSelection restricts the granules that are read.
func WithSelection(s Selection) Option {
	return func(r *Reader) { r.sel = s }
}

// WithOpener sets how files are opened. The default is store.Open.
func WithOpener(o store.Opener) Option {
	return func(r *Reader) { r.open = o }
}

// WithLogger sets the logger. The default is the logrus standard
// logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Reader) { r.log = l }
}

// WithCalibration sets the default calibration preference.
func WithCalibration(levels ...string) Option {
	return func(r *Reader) { r.calibration = levels }
}

// NewReader identifies filenames using cfg, selects the granules that
// match the reader's Selection, and joins the granules of each file
// type. Every file type that is found must cover the same number of
// granules.
func NewReader(cfg *Config, filenames []string, opts ...Option) (*Reader, error) {
	r := &Reader{
		cfg:        cfg,
		open:       store.Open,
		log:        logrus.StandardLogger(),
		Filenames:  filenames,
		aggregates: make(map[string]*Aggregate),
	}
	for _, o := range opts {
		o(r)
	}
	if r.calibration == nil {
		r.calibration = cfg.Calibration
	}
	if r.calibration == nil {
		r.calibration = DefaultCalibration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	types, _, err := r.IdentifyFileTypes(filenames)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, NoMatchingFilesError{}
	}
	first := ""
	numFiles := 0
	for _, ft := range cfg.FileTypes {
		granules, ok := types[ft.Name]
		if !ok {
			continue
		}
		selected, err := SelectSegments(granules, r.sel)
		if err != nil {
			return nil, err
		}
		r.log.WithFields(logrus.Fields{"file_type": ft.Name, "files": len(selected)}).Debug("selected segments")
		switch {
		case first == "" && len(selected) == 0:
			return nil, NoMatchingFilesError{FileType: ft.Name, Start: r.sel.Start, End: r.sel.End}
		case first == "":
			first, numFiles = ft.Name, len(selected)
		case len(selected) != numFiles:
			return nil, InconsistentFileCountError{
				FileType: ft.Name, Got: len(selected),
				FirstFileType: first, Want: numFiles,
			}
		}
		r.aggregates[ft.Name] = NewAggregate(ft.Name, selected)
	}
	return r, nil
}

// IdentifyFileTypes assigns each file to the first file type with a
// matching name pattern, and opens a Granule for it with the file
// type's registered reader. Files that match no file type are
// returned as unclaimed.
func (r *Reader) IdentifyFileTypes(filenames []string) (types map[string][]*Granule, unclaimed []string, err error) {
	types = make(map[string][]*Granule)
	remaining := append([]string(nil), filenames...)
	for _, ft := range r.cfg.FileTypes {
		if len(remaining) == 0 {
			break
		}
		newGranule, err := granuleReader(ft.Reader)
		if err != nil {
			return nil, nil, err
		}
		for _, pattern := range ft.Patterns {
			var rest []string
			for _, fn := range remaining {
				if !matchPattern(pattern, fn) {
					rest = append(rest, fn)
					continue
				}
				g, err := newGranule(ft, fn, r.cfg.FileKeys, r.open, r.log)
				if err != nil {
					return nil, nil, err
				}
				types[ft.Name] = append(types[ft.Name], g)
			}
			remaining = rest
		}
	}
	for _, fn := range remaining {
		r.log.WithField("file", fn).Warn("unidentified file")
	}
	return types, remaining, nil
}

// Aggregate returns the joined granules of the named file type.
func (r *Reader) Aggregate(fileType string) (*Aggregate, bool) {
	a, ok := r.aggregates[fileType]
	return a, ok
}

// Config returns the configuration the reader was created with.
func (r *Reader) Config() *Config { return r.cfg }

// FileTypes returns the names of the file types with selected
// granules, in configuration order.
func (r *Reader) FileTypes() []string {
	var names []string
	for _, ft := range r.cfg.FileTypes {
		if _, ok := r.aggregates[ft.Name]; ok {
			names = append(names, ft.Name)
		}
	}
	return names
}

// Load loads the named datasets. Names that are not configured are
// ignored; if none are left Load returns nil. If calibration is
// empty the reader's default preference is used. Datasets that share a
// navigation share one SwathDefinition, whose mask is taken from the
// first dataset loaded. If an error occurs, the datasets loaded before
// it are returned with the error.
func (r *Reader) Load(names []string, calibration ...string) (map[string]*Dataset, error) {
	if len(calibration) == 0 {
		calibration = r.calibration
	}
	calibration = OrderCalibrations(calibration)

	var toLoad []string
	seen := make(map[string]bool)
	for _, n := range names {
		if _, ok := r.cfg.Datasets[n]; ok && !seen[n] {
			seen[n] = true
			toLoad = append(toLoad, n)
		}
	}
	if len(toLoad) == 0 {
		r.log.Debug("no datasets to load from this reader")
		return nil, nil
	}
	sort.Strings(toLoad)
	r.log.WithField("datasets", toLoad).Debug("loading datasets")

	available := make(map[string]bool, len(r.aggregates))
	for ft := range r.aggregates {
		available[ft] = true
	}

	areas := make(map[string]*SwathDefinition)
	loaded := make(map[string]*Dataset, len(toLoad))
	for _, name := range toLoad {
		ds, err := r.load(name, calibration, available, areas)
		if err != nil {
			return loaded, fmt.Errorf("sdr: loading %s: %w", name, err)
		}
		loaded[name] = ds
	}
	return loaded, nil
}

func (r *Reader) load(name string, calibration []string, available map[string]bool, areas map[string]*SwathDefinition) (*Dataset, error) {
	res, err := r.cfg.ResolveCalibration(name, calibration, available, r.log)
	if err != nil {
		return nil, err
	}
	agg, ok := r.aggregates[res.FileType]
	if !ok {
		return nil, NoAvailableCalibrationError{Dataset: name}
	}
	swath, err := agg.SwathData(res.FileKey, nil)
	if err != nil {
		return nil, err
	}
	area, ok := areas[res.Navigation]
	if !ok {
		if area, err = r.loadNavigation(res.Navigation, res.FileType, swath.Mask); err != nil {
			return nil, err
		}
		areas[res.Navigation] = area
	}

	d := &Dataset{
		Swath:           swath,
		ResolvedDataset: *res,
		Area:            area,
		RowsPerScan:     r.cfg.Navigations[res.Navigation].RowsPerScan,
		StartTime:       agg.StartTime(),
		EndTime:         agg.EndTime(),
	}
	if d.Units, err = agg.Units(res.FileKey); err != nil {
		return nil, err
	}
	if d.Platform, err = agg.Platform(); err != nil {
		return nil, err
	}
	if d.Sensor, err = agg.Sensor(); err != nil {
		return nil, err
	}
	if d.StartOrbit, err = agg.BeginOrbit(); err != nil {
		return nil, err
	}
	if d.EndOrbit, err = agg.EndOrbit(); err != nil {
		return nil, err
	}
	return d, nil
}
