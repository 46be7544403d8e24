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

package layout

// Size is the width and height of a rectangle, in PDF units.
type Size struct {
	W, H float64
}

// Fit scales src uniformly so that it fits inside bound.
// Images are never enlarged.  If src has no area, the zero Size is
// returned.
func Fit(src, bound Size) Size {
	if src.W <= 0 || src.H <= 0 || bound.W <= 0 || bound.H <= 0 {
		return Size{}
	}
	sw := bound.W / src.W
	sh := bound.H / src.H
	switch {
	case sw >= 1 && sh >= 1:
		return src
	case sw <= sh:
		return Size{W: bound.W, H: src.H * sw}
	default:
		return Size{W: src.W * sh, H: bound.H}
	}
}

// ShrinkToRemaining scales s down uniformly so that its height does not
// exceed remaining.  Sizes which already fit are returned unchanged.
func ShrinkToRemaining(s Size, remaining float64) Size {
	if s.H <= remaining {
		return s
	}
	if remaining <= 0 {
		return Size{}
	}
	scale := remaining / s.H
	return Size{W: s.W * scale, H: remaining}
}
