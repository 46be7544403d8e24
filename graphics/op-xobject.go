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

package graphics

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"

	"github.com/db7559/qbank/pdf"
)

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (w *Writer) PushGraphicsState() {
	if w.Err != nil {
		return
	}
	if w.inText {
		w.Err = errors.New("PushGraphicsState: inside text object")
		return
	}
	w.nesting++
	_, w.Err = fmt.Fprintln(w.Content, "q")
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (w *Writer) PopGraphicsState() {
	if w.Err != nil {
		return
	}
	if w.nesting == 0 {
		w.Err = errors.New("PopGraphicsState: no saved state")
		return
	}
	w.nesting--
	_, w.Err = fmt.Fprintln(w.Content, "Q")
}

// Transform applies a transformation matrix to the coordinate system.
//
// This implements the PDF graphics operator "cm".
func (w *Writer) Transform(m matrix.Matrix) {
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content,
		format(m[0]), format(m[1]), format(m[2]),
		format(m[3]), format(m[4]), format(m[5]), "cm")
}

// DrawXObject draws the XObject ref, usually an image, in the unit square
// of the current coordinate system.
//
// This implements the PDF graphics operator "Do".
func (w *Writer) DrawXObject(ref pdf.Reference) {
	if w.Err != nil {
		return
	}
	if w.inText {
		w.Err = errors.New("DrawXObject: inside text object")
		return
	}
	name := w.Res.XObjectName(ref)
	w.Err = name.PDF(w.Content)
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", "Do")
}

// DrawImage draws the image XObject ref into the rectangle with lower left
// corner (x, y) and the given width and height.
func (w *Writer) DrawImage(ref pdf.Reference, x, y, width, height float64) {
	w.PushGraphicsState()
	w.Transform(matrix.Matrix{width, 0, 0, height, x, y})
	w.DrawXObject(ref)
	w.PopGraphicsState()
}
