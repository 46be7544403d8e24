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
	"context"
	"unicode/utf8"

	"seehuhn.de/go/geom/rect"

	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/layout"
	"github.com/db7559/qbank/pdf"
)

// monoFont is a font where every character is half an em wide.
type monoFont struct {
	name    string
	missing map[rune]bool
}

func (f *monoFont) PostScriptName() string { return f.name }

func (f *monoFont) HasGlyph(r rune) bool { return !f.missing[r] }

func (f *monoFont) Width(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 2
}

func (f *monoFont) Embed(w *pdf.Writer) font.Embedded {
	panic("monoFont cannot be embedded")
}

type drawnLine struct {
	Page int
	Y    float64
	Text string
}

type drawnImage struct {
	Page int
	Y    float64
	Key  string
	Size layout.Size
}

// recorder is a backend which records the drawing operations.
type recorder struct {
	page   int
	lines  []drawnLine
	images []drawnImage

	imageErr error
}

func (r *recorder) NewPage() error {
	r.page++
	return nil
}

func (r *recorder) DrawLine(x, y float64, line string) {
	r.lines = append(r.lines, drawnLine{Page: r.page, Y: y, Text: line})
}

func (r *recorder) DrawImage(key string, img *fetch.Image, x, y float64, size layout.Size) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	r.images = append(r.images, drawnImage{Page: r.page, Y: y, Key: key, Size: size})
	return nil
}

// imageSource serves a fixed image for every link in ok, and fails for
// all other links.
type imageSource struct {
	ok  map[string]*fetch.Image
	err error
}

func (s *imageSource) Fetch(ctx context.Context, link string) (*fetch.Image, error) {
	if img, found := s.ok[link]; found {
		return img, nil
	}
	return nil, &fetch.UnavailableError{URL: link, Err: s.err}
}

// testOptions returns options for a 400x600 page with 10pt text, so that
// 64 characters of monoFont fit on a line.
func testOptions() *Options {
	opts := Default()
	opts.PageSize = rect.Rect{URx: 400, URy: 600}
	opts.FontSize = 10
	opts.BaseFont = &monoFont{name: "Mono"}
	opts.Images = &imageSource{err: fetch.ErrUnavailable}
	return opts
}

func newTestRenderer(opts *Options) (*renderer, *recorder, error) {
	m, err := newMeasurer(opts)
	if err != nil {
		return nil, nil, err
	}
	rec := &recorder{}
	return newRenderer(opts, m, rec, nil), rec, nil
}
