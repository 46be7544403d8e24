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

// Package cjk provides HeiseiKakuGo-W5, a Japanese CID font which PDF
// viewers supply themselves, so that no font file needs to be embedded.
//
// The font is used when no TrueType font file can be found.  Text is
// encoded with the predefined UniJIS-UCS2-HW-H CMap, which maps UCS-2 codes
// to CIDs of the Adobe-Japan1 collection, using proportional half-width
// glyphs for ASCII and half-width katakana.
package cjk

import (
	"golang.org/x/text/encoding/japanese"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/cid"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/pdf"
)

const (
	baseFont = "HeiseiKakuGo-W5"
	cmapName = "UniJIS-UCS2-HW-H"

	// Replacement is drawn for characters outside the Basic Multilingual
	// Plane, which UCS-2 cannot encode.
	Replacement = '〓'
)

var ros = &cid.SystemInfo{Registry: "Adobe", Ordering: "Japan1", Supplement: 2}

// Font is the built-in Japanese font.
type Font struct {
	known map[rune]bool
}

var _ font.Font = (*Font)(nil)

// New returns a new instance of the built-in font.
func New() *Font {
	return &Font{known: make(map[rune]bool)}
}

// PostScriptName implements the [font.Font] interface.
func (f *Font) PostScriptName() string {
	return baseFont
}

// HasGlyph implements the [font.Font] interface.
//
// Adobe-Japan1 covers JIS X 0208, so the check is whether r can be
// represented in Shift_JIS.
func (f *Font) HasGlyph(r rune) bool {
	if r > 0xFFFF {
		return false
	}
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	ok, seen := f.known[r]
	if !seen {
		_, err := japanese.ShiftJIS.NewEncoder().String(string(r))
		ok = err == nil
		f.known[r] = ok
	}
	return ok
}

// Width implements the [font.Font] interface.
func (f *Font) Width(s string, size float64) float64 {
	w := 0.0
	for _, r := range s {
		w += charWidth(r)
	}
	return w * size / 1000
}

func charWidth(r rune) float64 {
	if isHalfWidth(r) {
		return 500
	}
	return 1000
}

func isHalfWidth(r rune) bool {
	return r >= 0x20 && r <= 0x7E || r >= 0xFF61 && r <= 0xFF9F
}

// Embed implements the [font.Font] interface.
func (f *Font) Embed(w *pdf.Writer) font.Embedded {
	return &embedded{w: w, ref: w.Alloc()}
}

type embedded struct {
	w   *pdf.Writer
	ref pdf.Reference
}

func (e *embedded) Ref() pdf.Reference {
	return e.ref
}

func (e *embedded) Encode(s string) pdf.String {
	res := make(pdf.String, 0, 2*len(s))
	for _, r := range s {
		if r > 0xFFFF {
			r = Replacement
		}
		res = append(res, byte(r>>8), byte(r))
	}
	return res
}

// Half-width glyphs: CIDs 231-325 (ASCII) and 326-389 (katakana).
var halfWidthCIDs = pdf.Array{pdf.Integer(231), pdf.Integer(389), pdf.Integer(500)}

func (e *embedded) Close() error {
	fd := &font.Descriptor{
		FontName:   baseFont,
		IsSymbolic: true,
		FontBBox:   rect.Rect{LLx: -92, LLy: -250, URx: 1010, URy: 922},
		Ascent:     880,
		Descent:    -120,
		CapHeight:  737,
		StemV:      114,
	}
	fdRef, err := e.w.Write(fd.AsDict())
	if err != nil {
		return err
	}

	cidFont := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("CIDFontType0"),
		"BaseFont": pdf.Name(baseFont),
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String(ros.Registry),
			"Ordering":   pdf.String(ros.Ordering),
			"Supplement": pdf.Integer(ros.Supplement),
		},
		"FontDescriptor": fdRef,
		"DW":             pdf.Integer(1000),
		"W":              halfWidthCIDs,
	}
	cidFontRef, err := e.w.Write(cidFont)
	if err != nil {
		return err
	}

	return e.w.Put(e.ref, pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name(baseFont + "-" + cmapName),
		"Encoding":        pdf.Name(cmapName),
		"DescendantFonts": pdf.Array{cidFontRef},
	})
}
