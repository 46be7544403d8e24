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

package graphics

import (
	"fmt"

	"github.com/db7559/qbank/pdf"
)

// Resources is a resource dictionary which can be shared by all pages of
// a document.  Names are assigned to fonts and images the first time they
// are used.
type Resources struct {
	Font    map[pdf.Name]pdf.Reference
	XObject map[pdf.Name]pdf.Reference

	names map[pdf.Reference]pdf.Name
}

// NewResources returns an empty resource dictionary.
func NewResources() *Resources {
	return &Resources{
		Font:    make(map[pdf.Name]pdf.Reference),
		XObject: make(map[pdf.Name]pdf.Reference),
		names:   make(map[pdf.Reference]pdf.Name),
	}
}

// FontName returns the resource name of the font dictionary ref.
func (r *Resources) FontName(ref pdf.Reference) pdf.Name {
	if name, ok := r.names[ref]; ok {
		return name
	}
	name := pdf.Name(fmt.Sprintf("F%d", len(r.Font)+1))
	r.Font[name] = ref
	r.names[ref] = name
	return name
}

// XObjectName returns the resource name of the XObject ref.
func (r *Resources) XObjectName(ref pdf.Reference) pdf.Name {
	if name, ok := r.names[ref]; ok {
		return name
	}
	name := pdf.Name(fmt.Sprintf("Im%d", len(r.XObject)+1))
	r.XObject[name] = ref
	r.names[ref] = name
	return name
}

// AsDict returns the resource dictionary.
func (r *Resources) AsDict() pdf.Dict {
	dict := pdf.Dict{}
	if len(r.Font) > 0 {
		fonts := pdf.Dict{}
		for name, ref := range r.Font {
			fonts[name] = ref
		}
		dict["Font"] = fonts
	}
	if len(r.XObject) > 0 {
		xobj := pdf.Dict{}
		for name, ref := range r.XObject {
			xobj[name] = ref
		}
		dict["XObject"] = xobj
	}
	return dict
}
