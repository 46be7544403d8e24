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

// Package layout measures text, breaks it into lines and fits images
// into the space available on a page.
package layout

import (
	"slices"

	"github.com/db7559/qbank/font"
)

// Measurer measures the width of text.
//
// Implementations must be additive: the width of a concatenation is the
// sum of the widths of its parts.  In particular, widths never decrease
// when characters are appended.
type Measurer interface {
	Width(s string) float64
}

// MeasureFunc adapts an ordinary function to the [Measurer] interface.
type MeasureFunc func(s string) float64

// Width implements the [Measurer] interface.
func (f MeasureFunc) Width(s string) float64 {
	return f(s)
}

// Face is a font at a given point size.
type Face struct {
	Font font.Font
	Size float64
}

// Width implements the [Measurer] interface.
func (f Face) Width(s string) float64 {
	return f.Font.Width(s, f.Size)
}

// Registry holds the fonts available for drawing, by name.
// Fonts must be registered before they can be used.
type Registry struct {
	fonts map[string]font.Font
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]font.Font)}
}

// Register makes f available under the given name, replacing any font
// previously registered under the same name.
func (r *Registry) Register(name string, f font.Font) {
	r.fonts[name] = f
}

// Lookup returns the font registered under name.
func (r *Registry) Lookup(name string) (font.Font, error) {
	f, ok := r.fonts[name]
	if !ok {
		return nil, &font.NotFoundError{Name: name}
	}
	return f, nil
}

// Face returns the font registered under name at the given size.
// Non-positive sizes are rejected.
func (r *Registry) Face(name string, size float64) (Face, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return Face{}, err
	}
	if !(size > 0) {
		return Face{}, &font.NotFoundError{Name: name + " at non-positive size"}
	}
	return Face{Font: f, Size: size}, nil
}

// Width returns the width of text, set in the named font at the given size.
func (r *Registry) Width(text, name string, size float64) (float64, error) {
	face, err := r.Face(name, size)
	if err != nil {
		return 0, err
	}
	return face.Width(text), nil
}

// Names returns the registered font names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
