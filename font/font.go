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

// Package font defines the interfaces shared by the fonts qbank can draw
// with, together with helpers used when embedding them into a PDF file.
//
// Implementations live in the sub-packages: [truetype] loads TrueType
// files and embeds subsets of them, [cjk] provides a non-embedded Japanese
// font which every PDF viewer can display.
package font

import (
	"github.com/db7559/qbank/pdf"
)

// Font is a font which can be used to measure and draw text.
type Font interface {
	// PostScriptName returns the PostScript name of the font.
	PostScriptName() string

	// HasGlyph reports whether the font has a glyph for r.
	HasGlyph(r rune) bool

	// Width returns the advance width of s, in PDF units, when the text
	// is set at the given point size.  Characters without a glyph are
	// measured using the width of the replacement glyph which would be
	// drawn for them.  The width of a concatenation is the sum of the
	// widths of its parts.
	Width(s string, size float64) float64

	// Embed allocates a font dictionary in w.  The dictionary is written
	// when the returned value is closed.
	Embed(w *pdf.Writer) Embedded
}

// Embedded represents a font which has been added to a PDF file.
type Embedded interface {
	// Ref returns the reference of the PDF font dictionary.
	Ref() pdf.Reference

	// Encode converts s into a PDF string in the font's encoding,
	// recording the glyphs used.
	Encode(s string) pdf.String

	// Close writes the font dictionary and any font data.
	// No more text can be encoded after Close has been called.
	Close() error
}
