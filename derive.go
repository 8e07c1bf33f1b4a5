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

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
)

// deriveFunctions are the functions available to Derive expressions.
var deriveFunctions = map[string]govaluate.ExpressionFunction{
	"exp":   unaryFunc("exp", math.Exp),
	"log":   unaryFunc("log", math.Log),
	"sqrt":  unaryFunc("sqrt", math.Sqrt),
	"abs":   unaryFunc("abs", math.Abs),
	"log10": unaryFunc("log10", math.Log10),
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("sdr: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("sdr: argument of '%s' is %T, not a number", name, args[0])
		}
		return f(x), nil
	}
}

// Derive evaluates expr at each sample of the datasets it names, for
// example "M15 - 273.15" or "(M05 - M04) / (M05 + M04)". All of the
// named datasets must have the same number of samples. A sample of the
// result is masked where any input is masked or the result is not a
// finite number.
func Derive(expr string, datasets map[string]*Dataset) (*Swath, error) {
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, deriveFunctions)
	if err != nil {
		return nil, fmt.Errorf("sdr: parsing %q: %v", expr, err)
	}
	var inputs []string
	seen := make(map[string]bool)
	for _, v := range expression.Vars() {
		if seen[v] {
			continue
		}
		seen[v] = true
		if _, ok := datasets[v]; !ok {
			return nil, fmt.Errorf("sdr: %q uses dataset %s, which is not loaded", expr, v)
		}
		inputs = append(inputs, v)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("sdr: %q does not use any datasets", expr)
	}

	first := datasets[inputs[0]]
	n := len(first.Data.Elements)
	for _, v := range inputs[1:] {
		if m := len(datasets[v].Data.Elements); m != n {
			return nil, fmt.Errorf("sdr: %s has %d samples but %s has %d", v, m, inputs[0], n)
		}
	}

	out := sparse.ZerosDense(first.Data.Shape...)
	mask := make([]bool, n)
	params := make(map[string]interface{}, len(inputs))
	for i := 0; i < n; i++ {
		for _, v := range inputs {
			d := datasets[v]
			if d.Mask[i] {
				mask[i] = true
			}
			params[v] = d.Data.Elements[i]
		}
		if mask[i] {
			continue
		}
		r, err := expression.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("sdr: evaluating %q: %v", expr, err)
		}
		x, ok := r.(float64)
		if !ok {
			return nil, fmt.Errorf("sdr: %q evaluates to %T, not a number", expr, r)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			mask[i] = true
			continue
		}
		out.Elements[i] = x
	}
	return &Swath{Data: out, Mask: mask}, nil
}
