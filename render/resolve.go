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
	"strings"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/glyphs"
	"github.com/db7559/qbank/layout"
)

// segment is a piece of a line which is drawn in a single font.
type segment struct {
	Text string
	Font font.Font

	// Substituted and Unrenderable count the characters of the segment
	// which were replaced by look-alike text, or for which no font has
	// a glyph.
	Substituted  int
	Unrenderable int
}

// resolver chooses a font for every character of a line.
//
// The choice depends only on the character itself, so the width of a
// line is the sum of the widths of its characters.  This allows a
// resolver to be used as a [layout.Measurer].
type resolver struct {
	base   layout.Face
	symbol layout.Face // Font is nil if there is no symbol font

	substitute bool
}

var _ layout.Measurer = (*resolver)(nil)

// newResolver looks up the fonts "base" and, if registered, "symbol" in
// reg.
func newResolver(reg *layout.Registry, size float64, substitute bool) (*resolver, error) {
	base, err := reg.Face("base", size)
	if err != nil {
		return nil, err
	}
	r := &resolver{base: base, substitute: substitute}
	if _, err := reg.Lookup("symbol"); err == nil {
		r.symbol, err = reg.Face("symbol", size)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *resolver) hasSymbolFont() bool {
	return r.symbol.Font != nil
}

// choose returns the text drawn for c and the font to draw it in.
// The last two return values are 1 if c was substituted or cannot be
// drawn, respectively.
func (r *resolver) choose(c rune, class glyphs.Class) (string, font.Font, int, int) {
	base := r.base.Font
	if class == glyphs.Base {
		switch {
		case base.HasGlyph(c):
			return string(c), base, 0, 0
		case r.hasSymbolFont() && r.symbol.Font.HasGlyph(c):
			return string(c), r.symbol.Font, 0, 0
		}
		return string(c), base, 0, 1
	}

	switch {
	case r.hasSymbolFont() && r.symbol.Font.HasGlyph(c):
		return string(c), r.symbol.Font, 0, 0
	case base.HasGlyph(c):
		return string(c), base, 0, 0
	}
	if r.substitute {
		if s, ok := glyphs.Substitute(c); ok {
			return s, base, 1, 0
		}
	}
	if r.hasSymbolFont() {
		return string(c), r.symbol.Font, 0, 1
	}
	return string(c), base, 0, 1
}

// segments splits line into pieces which are drawn in the same font.
func (r *resolver) segments(line string) []segment {
	var res []segment
	var cur *segment
	var text strings.Builder
	flush := func() {
		if cur != nil {
			cur.Text = text.String()
			res = append(res, *cur)
			text.Reset()
		}
	}
	for _, run := range glyphs.Split(line) {
		for _, c := range run.Text {
			s, f, sub, bad := r.choose(c, run.Class)
			if cur == nil || cur.Font != f {
				flush()
				cur = &segment{Font: f}
			}
			text.WriteString(s)
			cur.Substituted += sub
			cur.Unrenderable += bad
		}
	}
	flush()
	return res
}

// Width implements the [layout.Measurer] interface.
func (r *resolver) Width(s string) float64 {
	w := 0.0
	for _, seg := range r.segments(s) {
		w += seg.Font.Width(seg.Text, r.base.Size)
	}
	return w
}
