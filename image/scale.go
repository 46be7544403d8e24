// qbank - a study-question browser with PDF export
// Copyright (C) 2026  The qbank Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package image

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// downsample scales img so that it has at most maxPixels pixels.
// If no scaling is needed, img itself is returned.
func downsample(img image.Image, maxPixels int) image.Image {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if maxPixels <= 0 || n <= maxPixels {
		return img
	}

	scale := math.Sqrt(float64(maxPixels) / float64(n))
	width := max(int(float64(b.Dx())*scale), 1)
	height := max(int(float64(b.Dy())*scale), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
