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

package render

import (
	"fmt"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/layout"
)

// minImageLines is the smallest image height, in lines, which is
// reserved next to the text of a record.  If less space is left, the
// image is sized for a page of its own.
const minImageLines = 3

// Forecast is the planned layout of one record.
type Forecast struct {
	Question []string
	Choices  [][]string
	Answer   []string
	Category []string

	// Image is the size the image will be drawn at, or the zero Size if
	// the record has no usable image.
	Image layout.Size

	// Placeholder holds the lines drawn instead of an unavailable image.
	Placeholder []string

	// Height is the total vertical space needed by the record, including
	// the separator.
	Height float64
}

// TextLines returns the number of text lines of the forecast.
func (fc *Forecast) TextLines() int {
	n := len(fc.Question) + len(fc.Answer) + len(fc.Category) + len(fc.Placeholder)
	for _, c := range fc.Choices {
		n += len(c)
	}
	return n
}

// Estimate plans the layout of rec.
//
// If rec refers to an image, img is the loaded image, or nil if loading
// failed.  Text is wrapped to the usable page width using m, which must
// be the measurer used for drawing.
func Estimate(rec *qbank.Record, img *fetch.Image, opts *Options, m layout.Measurer) *Forecast {
	width := opts.UsableWidth()
	wrap := func(label, text string) []string {
		return layout.Wrap(m, label+text, width)
	}

	fc := &Forecast{
		Question: wrap(opts.Labels.Question, rec.Question),
	}
	for _, c := range rec.Choices {
		fc.Choices = append(fc.Choices, wrap(fmt.Sprintf(opts.Labels.Choice, c.Index), c.Text))
	}
	fc.Answer = wrap(opts.Labels.Answer, rec.Answer)
	fc.Category = wrap(opts.Labels.Category, rec.Category)

	if rec.HasImage() && img == nil {
		fc.Placeholder = wrap(opts.Labels.ImageFailed, "")
	}

	textHeight := float64(fc.TextLines()) * opts.LineHeight
	fc.Height = textHeight + opts.Separator

	if rec.HasImage() && img != nil {
		b := img.Bounds()
		src := layout.Size{W: float64(b.Dx()), H: float64(b.Dy())}
		fc.Image = layout.Fit(src, layout.Size{W: width, H: imageBound(opts, textHeight)})
		fc.Height += fc.Image.H + opts.ImagePadding
	}
	return fc
}

// imageBound returns the largest height an image can have if the record
// is to fit on a fresh page together with textHeight worth of text.
func imageBound(opts *Options, textHeight float64) float64 {
	usable := opts.UsableHeight()
	h := usable - textHeight - opts.ImagePadding - opts.Separator
	if h < minImageLines*opts.LineHeight {
		return usable
	}
	return h
}
