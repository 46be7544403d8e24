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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"

	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/image"
)

// Margins are the distances between the page edges and the area used for
// drawing, in PDF units.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Labels are the prefixes and messages drawn in the document.
type Labels struct {
	Question string

	// Choice is a format string which receives the 1-based choice number.
	Choice string

	Answer   string
	Category string

	// ImageFailed is drawn in place of an image which could not be
	// loaded.
	ImageFailed string

	// ImageError is a format string for the line drawn when an image was
	// loaded but could not be placed.  It receives the error.
	ImageError string
}

// DefaultLabels are the labels used when none are given.
var DefaultLabels = Labels{
	Question:    "問題文: ",
	Choice:      "選択肢%d: ",
	Answer:      "正解: ",
	Category:    "分類: ",
	ImageFailed: "[画像読み込み失敗]",
	ImageError:  "[画像読み込み失敗: %v]",
}

// Options control the layout of a generated document.
type Options struct {
	PageSize rect.Rect
	Margins  Margins

	FontSize   float64
	LineHeight float64

	// ImagePadding is the vertical space left below an image.
	ImagePadding float64

	// Separator is the vertical space between two records.
	Separator float64

	// BaseFont is used for ordinary text.  If it is nil, the built-in
	// Japanese font is used.
	BaseFont font.Font

	// SymbolFont, if not nil, is used for symbols which the base font
	// lacks.
	SymbolFont font.Font

	// SubstituteSymbols enables drawing look-alike text for symbols which
	// neither font can draw.
	SubstituteSymbols bool

	Labels Labels

	// Images loads the images of records.  If it is nil, all images are
	// treated as unavailable.
	Images fetch.Source

	// ImageOptions control how images are stored in the PDF file.
	ImageOptions *image.Options

	// Title is used for the document metadata.  The search query is a
	// good choice.
	Title string
}

// Default returns the default layout: A4 paper, 12pt text on an 18pt line
// grid.
func Default() *Options {
	return &Options{
		PageSize:     A4,
		Margins:      Margins{Top: 40, Bottom: 60, Left: 40, Right: 40},
		FontSize:     12,
		LineHeight:   18,
		ImagePadding: 20,
		Separator:    20,
		Labels:       DefaultLabels,
		Images:       fetch.New(fetch.DefaultTimeout),
	}
}

// UsableWidth returns the width available for text and images.
func (o *Options) UsableWidth() float64 {
	return o.PageSize.URx - o.PageSize.LLx - o.Margins.Left - o.Margins.Right
}

// UsableHeight returns the height of the drawing area of a page.
func (o *Options) UsableHeight() float64 {
	return o.PageSize.URy - o.PageSize.LLy - o.Margins.Top - o.Margins.Bottom
}

// Validate checks that the page geometry leaves room for text.
func (o *Options) Validate() error {
	if o.PageSize.URx <= o.PageSize.LLx || o.PageSize.URy <= o.PageSize.LLy {
		return errors.New("render: empty page size")
	}
	if !(o.LineHeight > 0) {
		return fmt.Errorf("render: invalid line height %g", o.LineHeight)
	}
	if !(o.UsableWidth() > 0) {
		return fmt.Errorf("render: margins leave no horizontal space")
	}
	if o.UsableHeight() < o.LineHeight {
		return fmt.Errorf("render: margins leave no room for a line of text")
	}
	if o.ImagePadding < 0 || o.Separator < 0 {
		return errors.New("render: negative spacing")
	}
	return nil
}
