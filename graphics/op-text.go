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

// TextStart starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (w *Writer) TextStart() {
	if w.Err != nil {
		return
	}
	if w.inText {
		w.Err = errors.New("TextStart: nested text object")
		return
	}
	w.inText = true
	_, w.Err = fmt.Fprintln(w.Content, "BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (w *Writer) TextEnd() {
	if w.Err != nil {
		return
	}
	if !w.inText {
		w.Err = errors.New("TextEnd: no matching TextStart")
		return
	}
	w.inText = false
	_, w.Err = fmt.Fprintln(w.Content, "ET")
}

// TextSetFont sets the font and font size.  The operator is only written
// if the font or size differ from the current ones.
//
// This implements the PDF graphics operator "Tf".
func (w *Writer) TextSetFont(ref pdf.Reference, size float64) {
	if w.Err != nil {
		return
	}
	name := w.Res.FontName(ref)
	if name == w.font && size == w.fontSize {
		return
	}
	w.font = name
	w.fontSize = size

	w.Err = name.PDF(w.Content)
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", format(size), "Tf")
}

// TextSetMatrix replaces the current text matrix and line matrix.
//
// This implements the PDF graphics operator "Tm".
func (w *Writer) TextSetMatrix(m matrix.Matrix) {
	if w.Err != nil {
		return
	}
	if !w.inText {
		w.Err = errors.New("TextSetMatrix: not in text object")
		return
	}
	_, w.Err = fmt.Fprintln(w.Content,
		format(m[0]), format(m[1]), format(m[2]),
		format(m[3]), format(m[4]), format(m[5]), "Tm")
}

// TextShow draws an encoded string at the current text position.
//
// This implements the PDF graphics operator "Tj".
func (w *Writer) TextShow(s pdf.String) {
	if w.Err != nil {
		return
	}
	if !w.inText {
		w.Err = errors.New("TextShow: not in text object")
		return
	}
	if w.font == "" {
		w.Err = errors.New("TextShow: no font set")
		return
	}
	w.Err = s.PDF(w.Content)
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", "Tj")
}
