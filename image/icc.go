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

package image

import (
	"fmt"
	"os"

	"seehuhn.de/go/icc"

	"github.com/db7559/qbank/pdf"
)

// CheckProfile verifies that data is an ICC profile for an RGB colour
// space.
func CheckProfile(data []byte) error {
	// icc.Decode modifies the data it is given.
	p, err := icc.Decode(append([]byte(nil), data...))
	if err != nil {
		return err
	}
	if n := p.ColorSpace.NumComponents(); n != 3 {
		return fmt.Errorf("image: ICC profile has %d components, need 3", n)
	}
	return nil
}

// LoadProfile reads an RGB ICC profile from a file.
func LoadProfile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := CheckProfile(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// colorSpace returns the colour space used for RGB images.  The ICC
// profile is written to the file the first time it is needed.
func (e *Embedder) colorSpace() (pdf.Object, error) {
	if e.opt.ICCProfile == nil {
		return pdf.Name("DeviceRGB"), nil
	}
	if e.rgbSpace != nil {
		return e.rgbSpace, nil
	}

	if err := CheckProfile(e.opt.ICCProfile); err != nil {
		return nil, err
	}
	ref := e.w.Alloc()
	err := e.w.PutStream(ref, pdf.Dict{
		"N":         pdf.Integer(3),
		"Alternate": pdf.Name("DeviceRGB"),
	}, e.opt.ICCProfile, true)
	if err != nil {
		return nil, err
	}
	e.rgbSpace = pdf.Array{pdf.Name("ICCBased"), ref}
	return e.rgbSpace, nil
}
