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
	"strings"
	"time"
)

// UnknownVariableError is returned when a file key is not registered.
type UnknownVariableError struct {
	Name string
}

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("sdr: unknown file key %q", e.Name)
}

// InvalidDateError is returned when a granule's date or time
// attributes cannot be parsed.
type InvalidDateError struct {
	Date, Time string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("sdr: invalid granule date %q and time %q", e.Date, e.Time)
}

// TemplateError is returned when a file key template refers to a
// parameter that its file type does not provide.
type TemplateError struct {
	Template, Param string
}

func (e TemplateError) Error() string {
	return fmt.Sprintf("sdr: template %q needs parameter %q", e.Template, e.Param)
}

// SegmentError is returned when scaling factors cannot be applied to
// the rows of a swath.
type SegmentError struct {
	Rows, Factors int
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("sdr: %d scaling factors cannot be split into segments across %d rows", e.Factors, e.Rows)
}

// UnsupportedOperationError is returned for operations that aggregate
// readers do not provide.
type UnsupportedOperationError struct {
	Op string
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("sdr: %s is not supported", e.Op)
}

// NoMatchingFilesError is returned when no files match a file type, or
// when no file type matches any of the given files if FileType is empty.
type NoMatchingFilesError struct {
	FileType   string
	Start, End time.Time
}

func (e NoMatchingFilesError) Error() string {
	if e.FileType == "" {
		return "sdr: no files match any known file type"
	}
	return fmt.Sprintf("sdr: no %s files between %v and %v", e.FileType, e.Start, e.End)
}

// InconsistentFileCountError is returned when file types selected for
// the same swath cover different numbers of granules.
type InconsistentFileCountError struct {
	FileType      string
	Want, Got     int
	FirstFileType string
}

func (e InconsistentFileCountError) Error() string {
	return fmt.Sprintf("sdr: %d %s files but %d %s files", e.Got, e.FileType, e.Want, e.FirstFileType)
}

// GeolocationMismatchError is returned when the geolocation files named
// by data granules are not of the expected file type.
type GeolocationMismatchError struct {
	FileType string
	Files    []string
}

func (e GeolocationMismatchError) Error() string {
	return fmt.Sprintf("sdr: geolocation files %s are not of type %s", strings.Join(e.Files, ", "), e.FileType)
}

// NoAvailableCalibrationError is returned when none of a dataset's
// alternatives can be read from the loaded files.
type NoAvailableCalibrationError struct {
	Dataset string
}

func (e NoAvailableCalibrationError) Error() string {
	return fmt.Sprintf("sdr: no calibration of %s is available from the loaded files", e.Dataset)
}

// UnresolvedCalibrationError is returned when a dataset resolves to a
// file type, file key or navigation that is not registered.
type UnresolvedCalibrationError struct {
	Dataset, Field, Value string
}

func (e UnresolvedCalibrationError) Error() string {
	return fmt.Sprintf("sdr: dataset %s refers to unknown %s %q", e.Dataset, e.Field, e.Value)
}
