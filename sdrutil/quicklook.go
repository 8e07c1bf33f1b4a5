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

package sdrutil

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/spatialmodel/sdr"
	"gonum.org/v1/plot/palette/moreland"
)

// Quicklook loads the named dataset from r and writes it to filename
// as a PNG image with one pixel per sample, colored from the
// smallest to the largest valid value. Invalid samples are
// transparent.
func Quicklook(r *sdr.Reader, name string, calibration []string, filename string) error {
	datasets, err := r.Load([]string{name}, calibration...)
	if err != nil {
		return err
	}
	d, ok := datasets[name]
	if !ok {
		return fmt.Errorf("sdrutil: dataset %s is not configured", name)
	}
	img, err := render(d.Swath)
	if err != nil {
		return fmt.Errorf("sdrutil: %s: %v", name, err)
	}
	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// render colors the valid samples of s.
func render(s *sdr.Swath) (*image.NRGBA, error) {
	min, max, n := 0.0, 0.0, 0
	for i, v := range s.Data.Elements {
		if s.Mask[i] {
			continue
		}
		if n == 0 || v < min {
			min = v
		}
		if n == 0 || v > max {
			max = v
		}
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("no valid samples")
	}
	if max == min {
		max = min + 1
	}
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(min)
	cm.SetMax(max)

	rows, cols := s.Rows(), s.Cols()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for i, v := range s.Data.Elements {
		if s.Mask[i] {
			continue
		}
		c, err := cm.At(v)
		if err != nil {
			return nil, err
		}
		img.SetNRGBA(i%cols, i/cols, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return img, nil
}
