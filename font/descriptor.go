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

package font

import (
	"seehuhn.de/go/geom/rect"

	"github.com/db7559/qbank/pdf"
)

// Descriptor represents a PDF font descriptor.
//
// See section 9.8.1 of PDF 32000-1:2008.
type Descriptor struct {
	FontName   string
	FontFamily string

	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsScript     bool
	IsItalic     bool

	FontBBox    rect.Rect
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	Leading     float64
	CapHeight   float64
	XHeight     float64
	StemV       float64

	// FontFile2 refers to the embedded TrueType data, if any.
	FontFile2 pdf.Reference
}

// Flag bits of the /Flags entry.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagSymbolic    = 1 << 2
	flagScript      = 1 << 3
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
)

// AsDict converts the descriptor to a PDF dictionary.
func (d *Descriptor) AsDict() pdf.Dict {
	flags := 0
	if d.IsFixedPitch {
		flags |= flagFixedPitch
	}
	if d.IsSerif {
		flags |= flagSerif
	}
	if d.IsSymbolic {
		flags |= flagSymbolic
	} else {
		flags |= flagNonsymbolic
	}
	if d.IsScript {
		flags |= flagScript
	}
	if d.IsItalic {
		flags |= flagItalic
	}

	dict := pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": pdf.Name(d.FontName),
		"Flags":    pdf.Integer(flags),
		"FontBBox": pdf.Array{
			pdf.Integer(d.FontBBox.LLx), pdf.Integer(d.FontBBox.LLy),
			pdf.Integer(d.FontBBox.URx), pdf.Integer(d.FontBBox.URy),
		},
		"ItalicAngle": pdf.Real(d.ItalicAngle),
		"Ascent":      pdf.Integer(d.Ascent),
		"Descent":     pdf.Integer(d.Descent),
		"CapHeight":   pdf.Integer(d.CapHeight),
		"StemV":       pdf.Integer(d.StemV),
	}
	if d.FontFamily != "" {
		dict["FontFamily"] = pdf.String(d.FontFamily)
	}
	if d.Leading != 0 {
		dict["Leading"] = pdf.Integer(d.Leading)
	}
	if d.XHeight != 0 {
		dict["XHeight"] = pdf.Integer(d.XHeight)
	}
	if d.FontFile2.Number != 0 {
		dict["FontFile2"] = d.FontFile2
	}
	return dict
}
