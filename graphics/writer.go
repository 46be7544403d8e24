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

// Package graphics writes PDF content streams.
//
// A [Writer] collects the drawing operators for one page.  Errors are
// sticky: once an operator fails, Err is set and all later calls do
// nothing, so that callers only need to check Err once the page is
// complete.
package graphics

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/db7559/qbank/pdf"
)

// Writer writes a PDF content stream.
type Writer struct {
	Content *bytes.Buffer
	Res     *Resources
	Err     error

	inText   bool
	nesting  int
	font     pdf.Name
	fontSize float64
}

// NewWriter allocates a new content stream writer which refers to
// the resources in res.
func NewWriter(res *Resources) *Writer {
	return &Writer{
		Content: &bytes.Buffer{},
		Res:     res,
	}
}

// Reset discards the content written so far and clears the graphics state,
// so that the writer can be used for the next page.  Err is not cleared.
func (w *Writer) Reset() {
	w.Content = &bytes.Buffer{}
	w.inText = false
	w.nesting = 0
	w.font = ""
	w.fontSize = 0
}

// Close checks that all text objects and saved states have been closed
// and returns the content stream.
func (w *Writer) Close() ([]byte, error) {
	if w.Err != nil {
		return nil, w.Err
	}
	if w.inText {
		return nil, errors.New("graphics: unterminated text object")
	}
	if w.nesting != 0 {
		return nil, errors.New("graphics: unbalanced graphics state")
	}
	return w.Content.Bytes(), nil
}

// format formats a coordinate with at most three digits after the
// decimal point.
func format(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
