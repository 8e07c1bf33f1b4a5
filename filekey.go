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
	"sort"
	"strings"
)

// FileKey describes a variable that can be read from a granule.
type FileKey struct {
	// Name is the logical name of the variable.
	Name string

	// VariableName is the path of the variable in the file. It may
	// contain {param} placeholders that are filled in from the
	// parameters of the granule's file type.
	VariableName string

	// ScalingFactors names the FileKey (or raw path) holding the
	// multiplier and offset pairs for this variable, if any.
	ScalingFactors string

	// Kind is the numeric type raw values are cast to before scaling.
	Kind Kind

	StandardName string

	// Units are the units of the returned data, and FileUnits the
	// units the data is stored in. Either may be empty.
	Units, FileUnits string

	// FillMaxFloat is the largest fill value of data stored as
	// floating point, and FillMinInt the smallest fill value of data
	// stored as integers.
	FillMaxFloat float64
	FillMinInt   int64
}

// NewFileKey returns a FileKey with the default fill thresholds.
func NewFileKey(name, variableName string, kind Kind) FileKey {
	return FileKey{
		Name:         name,
		VariableName: variableName,
		Kind:         kind,
		FillMaxFloat: DefaultFillMaxFloat,
		FillMinInt:   DefaultFillMinInt,
	}
}

// Fill returns the fill policy for data of the key that is stored as
// floating point numbers in the file if stored is true, or as integers
// otherwise.
func (k FileKey) Fill(stored bool) FillPolicy {
	if stored {
		return floatFill{max: k.FillMaxFloat}
	}
	return intFill{min: float64(k.FillMinInt)}
}

// FileKeys is a registry of FileKeys by name.
type FileKeys map[string]FileKey

// Add registers k under its name.
func (fk FileKeys) Add(k FileKey) {
	fk[k.Name] = k
}

// Get returns the FileKey with the given name.
func (fk FileKeys) Get(name string) (FileKey, error) {
	k, ok := fk[name]
	if !ok {
		return FileKey{}, UnknownVariableError{Name: name}
	}
	return k, nil
}

// Path returns the file path of the named key with params filled in.
func (fk FileKeys) Path(name string, params map[string]string) (string, error) {
	k, err := fk.Get(name)
	if err != nil {
		return "", err
	}
	return expand(k.VariableName, params)
}

// ShapePath returns the path of the shape of the named key.
func (fk FileKeys) ShapePath(name string, params map[string]string) (string, error) {
	p, err := fk.Path(name, params)
	if err != nil {
		return "", err
	}
	return p + "/shape", nil
}

// Resolve maps item to a file path. Registered names map to their
// variable path, "<name>/shape" maps to the shape of a registered
// name, and anything else is taken to be a path already.
func (fk FileKeys) Resolve(item string, params map[string]string) (string, error) {
	if _, ok := fk[item]; ok {
		return fk.Path(item, params)
	}
	if base := strings.TrimSuffix(item, "/shape"); base != item {
		if _, ok := fk[base]; ok {
			return fk.ShapePath(base, params)
		}
	}
	return item, nil
}

// Names returns the registered names in sorted order.
func (fk FileKeys) Names() []string {
	names := make([]string, 0, len(fk))
	for n := range fk {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// expand fills in the {param} placeholders of tmpl. Doubled braces
// stand for literal braces.
func expand(tmpl string, params map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return "", TemplateError{Template: tmpl}
			}
			name := tmpl[i+1 : i+end]
			v, ok := params[name]
			if !ok {
				return "", TemplateError{Template: tmpl, Param: name}
			}
			b.WriteString(v)
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// templateParams returns the parameter names used by tmpl.
func templateParams(tmpl string) []string {
	var names []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '{' {
			continue
		}
		if i+1 < len(tmpl) && tmpl[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			return names
		}
		names = append(names, tmpl[i+1:i+end])
		i += end
	}
	return names
}
