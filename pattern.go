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
	"path/filepath"
	"strings"
)

// globify turns a file name pattern into a shell glob by replacing
// each {field} with "*".
func globify(pattern string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(pattern, '{')
		if i < 0 {
			break
		}
		j := strings.IndexByte(pattern[i:], '}')
		if j < 0 {
			break
		}
		b.WriteString(pattern[:i])
		b.WriteByte('*')
		pattern = pattern[i+j+1:]
	}
	b.WriteString(pattern)
	return b.String()
}

// matchPattern reports whether the base name of filename matches
// pattern, allowing any prefix.
func matchPattern(pattern, filename string) bool {
	ok, err := filepath.Match("*"+globify(pattern), filepath.Base(filename))
	return err == nil && ok
}
