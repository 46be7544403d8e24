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

// Package truetype loads TrueType fonts and embeds them into PDF files as
// composite fonts.
//
// Text is encoded with the Identity-H CMap, so every character code is the
// two-byte glyph ID of the original font file.  Only the glyphs which are
// actually used are included in the embedded font program.
package truetype

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/pdf"
)

// Font is a TrueType font which can be measured and embedded.
// Font values are not safe for concurrent use.
type Font struct {
	info   *sfnt.Font
	lookup func(rune) glyph.ID
	widths map[glyph.ID]float64
}

var _ font.Font = (*Font)(nil)

// Load reads a TrueType font from the named file.
func Load(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// Parse decodes a TrueType font from the contents of a font file.
// Fonts with CFF outlines are not supported.
func Parse(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if !info.IsGlyf() {
		return nil, errNoGlyf
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	f := &Font{
		info:   info,
		lookup: subtable.Lookup,
		widths: make(map[glyph.ID]float64),
	}
	return f, nil
}

var errNoGlyf = errors.New("truetype: font has no glyf outlines")

// PostScriptName implements the [font.Font] interface.
func (f *Font) PostScriptName() string {
	return f.info.PostScriptName()
}

// HasGlyph implements the [font.Font] interface.
func (f *Font) HasGlyph(r rune) bool {
	return f.lookup(r) != 0
}

// GID returns the glyph used to draw r.
// Characters not covered by the font map to the .notdef glyph 0.
func (f *Font) GID(r rune) glyph.ID {
	return f.lookup(r)
}

// Width implements the [font.Font] interface.
func (f *Font) Width(s string, size float64) float64 {
	w := 0.0
	for _, r := range s {
		w += f.glyphWidth(f.lookup(r))
	}
	return w * size / 1000
}

// glyphWidth returns the advance width of gid in 1/1000 text space units.
func (f *Font) glyphWidth(gid glyph.ID) float64 {
	w, ok := f.widths[gid]
	if !ok {
		w = f.info.GlyphWidthPDF(gid)
		f.widths[gid] = w
	}
	return w
}

// Embed implements the [font.Font] interface.
func (f *Font) Embed(w *pdf.Writer) font.Embedded {
	return &embedded{
		Font: f,
		w:    w,
		ref:  w.Alloc(),
		text: map[glyph.ID]string{0: ""},
	}
}
