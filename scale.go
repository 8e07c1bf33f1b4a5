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
	"gonum.org/v1/gonum/floats"
)

// scaleSwath applies factors, a list of multiplier and offset pairs, to
// data in place. The rows of data are split into one equal segment per
// pair. A segment whose multiplier or offset is at or below the fill
// threshold is masked out entirely instead of scaled; mask is updated
// in place.
func scaleSwath(data []float64, mask []bool, rows int, factors []float64) error {
	nSeg := len(factors) / 2
	if len(factors)%2 != 0 || nSeg == 0 || rows%nSeg != 0 || rows == 0 {
		return SegmentError{Rows: rows, Factors: len(factors)}
	}
	rowSize := len(data) / rows
	segSize := rows / nSeg * rowSize
	for i := 0; i < nSeg; i++ {
		m, b := factors[2*i], factors[2*i+1]
		seg := data[i*segSize : (i+1)*segSize]
		if m <= DefaultFillMaxFloat || b <= DefaultFillMaxFloat {
			segMask := mask[i*segSize : (i+1)*segSize]
			for j := range segMask {
				segMask[j] = true
			}
			continue
		}
		floats.Scale(m, seg)
		floats.AddConst(b, seg)
	}
	return nil
}
