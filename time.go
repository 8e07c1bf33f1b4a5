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
	"strings"
	"time"
)

// nppTimeLayout is the layout of a granule date attribute followed by
// its time attribute. Fractional seconds are accepted after the seconds.
const nppTimeLayout = "20060102150405Z"

// noDate is written by the ground system in place of a real date.
var noDate = time.Date(1958, 1, 1, 0, 0, 0, 0, time.UTC)

const noDateTolerance = 48 * time.Hour

// Timestamp is a granule time together with whether it is a real
// observation time.
type Timestamp struct {
	time.Time

	// Valid is false for timestamps within two days of the
	// reserved 1958-01-01 date.
	Valid bool
}

// ParseNPPTime parses a granule date attribute such as "20150624" and
// time attribute such as "235959.123456Z".
func ParseNPPTime(date, clock string) (Timestamp, error) {
	date = strings.TrimRight(strings.TrimSpace(date), "\x00")
	clock = strings.TrimRight(strings.TrimSpace(clock), "\x00")
	t, err := time.Parse(nppTimeLayout, date+clock)
	if err != nil {
		return Timestamp{}, InvalidDateError{Date: date, Time: clock}
	}
	d := t.Sub(noDate)
	if d < 0 {
		d = -d
	}
	return Timestamp{Time: t, Valid: d >= noDateTolerance}, nil
}
