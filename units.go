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
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/unit"
)

// guessUnits infers the units of a variable from its name.
func guessUnits(name string) string {
	switch {
	case strings.Contains(name, "radiance"):
		return "W cm-2 sr-1"
	case strings.Contains(name, "reflectance"):
		return "1"
	case strings.Contains(name, "temperature"):
		return "K"
	case strings.Contains(name, "longitude"), strings.Contains(name, "latitude"):
		return "degrees"
	}
	return ""
}

var (
	watt      = unit.New(1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3})
	meter     = unit.New(1, unit.Dimensions{unit.LengthDim: 1})
	steradian = unit.New(1, unit.Dimensions{unit.AngleDim: 2})
	degree    = unit.New(math.Pi/180, unit.Dimensions{unit.AngleDim: 1})
	one       = unit.New(1, unit.Dimensions{})
)

// unitSymbols are the unit symbols that parseUnits understands.
var unitSymbols = map[string]*unit.Unit{
	"W":             watt,
	"m":             meter,
	"cm":            unit.New(1e-2, unit.Dimensions{unit.LengthDim: 1}),
	"um":            unit.New(1e-6, unit.Dimensions{unit.LengthDim: 1}),
	"nm":            unit.New(1e-9, unit.Dimensions{unit.LengthDim: 1}),
	"s":             unit.New(1, unit.Dimensions{unit.TimeDim: 1}),
	"K":             unit.New(1, unit.Dimensions{unit.TemperatureDim: 1}),
	"sr":            steradian,
	"degrees":       degree,
	"degrees_east":  degree,
	"degrees_north": degree,
	"1":             one,
	"%":             unit.New(0.01, unit.Dimensions{}),
}

// parseUnits parses a space separated product of unit symbols, each
// optionally followed by an integer exponent, such as "W m-2 sr-1".
func parseUnits(s string) (*unit.Unit, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("sdr: empty units")
	}
	u := one.Clone()
	for _, f := range fields {
		sym, exp := f, 1
		if _, ok := unitSymbols[f]; !ok {
			i := strings.IndexAny(f, "-0123456789")
			if i <= 0 {
				return nil, fmt.Errorf("sdr: unknown unit %q in %q", f, s)
			}
			var err error
			if exp, err = strconv.Atoi(f[i:]); err != nil {
				return nil, fmt.Errorf("sdr: bad exponent in unit %q: %v", f, err)
			}
			sym = f[:i]
		}
		base, ok := unitSymbols[sym]
		if !ok {
			return nil, fmt.Errorf("sdr: unknown unit %q in %q", sym, s)
		}
		for ; exp > 0; exp-- {
			u.Mul(base)
		}
		for ; exp < 0; exp++ {
			u.Div(base)
		}
	}
	return u, nil
}

// ConversionFactor returns the multiplier that converts values in
// units from to units to. It is an error if either cannot be parsed
// or their dimensions differ.
func ConversionFactor(from, to string) (float64, error) {
	fromU, err := parseUnits(from)
	if err != nil {
		return 0, err
	}
	toU, err := parseUnits(to)
	if err != nil {
		return 0, err
	}
	if !unit.DimensionsMatch(fromU, toU) {
		return 0, fmt.Errorf("sdr: cannot convert %s (%v) to %s (%v)", from, fromU.Dimensions(), to, toU.Dimensions())
	}
	return fromU.Value() / toU.Value(), nil
}

// scalingConversions are the unit changes that are folded into
// scaling factors.
var scalingConversions = map[[2]string]bool{
	{"W cm-2 sr-1", "W m-2 sr-1"}: true,
	{"1", "%"}:                    true,
}

// AdjustScalingFactors folds a unit conversion from fileUnits to
// outputUnits into factors, which holds multiplier and offset pairs.
// Factors equal to the fill value are left alone. If the units
// match, factors is returned as is; otherwise nil factors are treated
// as the identity pair. Only the unit changes in scalingConversions are
// applied, with the multiplier given by ConversionFactor; other unit
// pairs leave the factors unchanged.
func AdjustScalingFactors(factors []float64, fileUnits, outputUnits string) []float64 {
	if fileUnits == outputUnits {
		return factors
	}
	if factors == nil {
		factors = []float64{1, 0}
	}
	out := append([]float64(nil), factors...)
	if !scalingConversions[[2]string{fileUnits, outputUnits}] {
		return out
	}
	f, err := ConversionFactor(fileUnits, outputUnits)
	if err != nil {
		return out
	}
	for i, v := range out {
		if v != DefaultFillMaxFloat {
			out[i] = v * f
		}
	}
	return out
}
