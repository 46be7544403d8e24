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
	"seehuhn.de/go/geom/matrix"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/graphics"
	"github.com/db7559/qbank/pdf"
)

// lineDrawer draws lines of text, switching fonts as chosen by a
// resolver.  Fonts are embedded into the PDF file when first used.
type lineDrawer struct {
	res   *resolver
	out   *pdf.Writer
	fonts map[font.Font]font.Embedded
	order []font.Embedded

	substituted  int
	unrenderable int
}

func newLineDrawer(res *resolver, out *pdf.Writer) *lineDrawer {
	return &lineDrawer{
		res:   res,
		out:   out,
		fonts: make(map[font.Font]font.Embedded),
	}
}

func (d *lineDrawer) embedded(f font.Font) font.Embedded {
	e, ok := d.fonts[f]
	if !ok {
		e = f.Embed(d.out)
		d.fonts[f] = e
		d.order = append(d.order, e)
	}
	return e
}

// Draw draws line with its baseline starting at (x, y).
// The pen advances by the measured width of each segment.
func (d *lineDrawer) Draw(w *graphics.Writer, x, y float64, line string) {
	segs := d.res.segments(line)
	if len(segs) == 0 {
		return
	}
	size := d.res.base.Size

	w.TextStart()
	for _, seg := range segs {
		e := d.embedded(seg.Font)
		w.TextSetFont(e.Ref(), size)
		w.TextSetMatrix(matrix.Translate(x, y))
		w.TextShow(e.Encode(seg.Text))
		x += seg.Font.Width(seg.Text, size)

		d.substituted += seg.Substituted
		d.unrenderable += seg.Unrenderable
	}
	w.TextEnd()
}

// Close writes all fonts used so far.
func (d *lineDrawer) Close() error {
	for _, e := range d.order {
		err := e.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
