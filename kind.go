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
)

// Kind is the numeric type that raw swath data is cast to before it is
// scaled. Values are always held as float64; Kind determines the range
// and precision the raw values are restricted to.
type Kind int

// Kinds of swath data.
const (
	Float32 Kind = iota
	Float64
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
)

var kindNames = []string{"float32", "float64", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("sdr: unknown data kind %q", name)
}

func (k Kind) limits() (lo, hi float64) {
	switch k {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Int64:
		return math.MinInt64, math.MaxInt64
	case Uint8:
		return 0, math.MaxUint8
	case Uint16:
		return 0, math.MaxUint16
	case Uint32:
		return 0, math.MaxUint32
	case Uint64:
		return 0, math.MaxUint64
	}
	return math.Inf(-1), math.Inf(1)
}

// Cast restricts v to the values representable by k. Integer kinds
// truncate toward zero and saturate at their limits.
func (k Kind) Cast(v float64) float64 {
	switch {
	case k == Float32:
		return float64(float32(v))
	case k == Float64:
		return v
	case math.IsNaN(v):
		return 0
	}
	lo, hi := k.limits()
	return math.Max(lo, math.Min(hi, math.Trunc(v)))
}

// FillPolicy decides which values of a variable are fill values.
type FillPolicy interface {
	Invalid(v float64) bool
}

// floatFill marks values at or below max as fill.
type floatFill struct{ max float64 }

func (f floatFill) Invalid(v float64) bool { return v <= f.max }

// intFill marks values at or above min as fill.
type intFill struct{ min float64 }

func (f intFill) Invalid(v float64) bool { return v >= f.min }

// Defaults for the fill thresholds of a FileKey.
const (
	DefaultFillMaxFloat       = -999.0
	DefaultFillMinInt   int64 = 65528
)
