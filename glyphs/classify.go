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

// Package glyphs decides which characters of a line need the symbol font
// and splits lines into runs of characters which use the same font.
package glyphs

import "unicode"

// Class tells which font a character should be drawn with.
type Class uint8

// These are the possible classes of a character.
const (
	Base Class = iota
	Symbol
)

func (c Class) String() string {
	switch c {
	case Base:
		return "base"
	case Symbol:
		return "symbol"
	default:
		return "invalid"
	}
}

// dental contains the marks used in dental notation: the dentistry symbols
// and the corner pieces used for the Zsigmondy-Palmer quadrant notation.
var dental = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231C, Hi: 0x231F, Stride: 1}, // ⌜⌝⌞⌟
		{Lo: 0x23BE, Hi: 0x23CC, Stride: 1}, // ⎾ .. ⏌
		{Lo: 0x2500, Hi: 0x2502, Stride: 2}, // ─ │
		{Lo: 0x250C, Hi: 0x2518, Stride: 4}, // ┌┐└┘
	},
}

// symbolBlocks lists the Unicode blocks whose characters are always drawn
// with the symbol font.
var symbolBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x02B0, Hi: 0x02FF, Stride: 1}, // Spacing Modifier Letters
		{Lo: 0x0300, Hi: 0x036F, Stride: 1}, // Combining Diacritical Marks
		{Lo: 0x2070, Hi: 0x209F, Stride: 1}, // Superscripts and Subscripts
		{Lo: 0x20D0, Hi: 0x20FF, Stride: 1}, // Combining Marks for Symbols
		{Lo: 0x2190, Hi: 0x23FF, Stride: 1}, // Arrows, Mathematical Operators, Miscellaneous Technical
		{Lo: 0x2500, Hi: 0x25FF, Stride: 1}, // Box Drawing, Block Elements, Geometric Shapes
		{Lo: 0x27C0, Hi: 0x27FF, Stride: 1}, // Misc. Mathematical Symbols-A, Supplemental Arrows-A
		{Lo: 0x2900, Hi: 0x2AFF, Stride: 1}, // Supplemental Arrows-B, Misc. Mathematical Symbols-B, Supplemental Mathematical Operators
		{Lo: 0xFFE0, Hi: 0xFFEE, Stride: 1}, // fullwidth symbol forms
	},
}

// Classify returns the class of r.
func Classify(r rune) Class {
	switch {
	case unicode.Is(dental, r):
		return Symbol
	case unicode.Is(symbolBlocks, r):
		return Symbol
	case unicode.In(r, unicode.Sm, unicode.So, unicode.Sk):
		return Symbol
	default:
		return Base
	}
}

// IsDental reports whether r is one of the dental notation marks.
func IsDental(r rune) bool {
	return unicode.Is(dental, r)
}
