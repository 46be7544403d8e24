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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/db7559/qbank/pdf"
)

// copyJPEG embeds a JPEG file without decoding it, using the DCTDecode
// filter.  If the file cannot be used directly, ok is false.
func (e *Embedder) copyJPEG(data []byte) (ref pdf.Reference, ok bool, err error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return pdf.Reference{}, false, err
	}

	var colorSpace pdf.Object
	switch cfg.ColorModel {
	case color.GrayModel:
		colorSpace = pdf.Name("DeviceGray")
	case color.YCbCrModel:
		colorSpace, err = e.colorSpace()
		if err != nil {
			return pdf.Reference{}, false, err
		}
	default:
		// CMYK files use inconsistent conventions, re-encode these.
		return pdf.Reference{}, false, nil
	}

	ref = e.w.Alloc()
	err = e.w.PutStream(ref, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(cfg.Width),
		"Height":           pdf.Integer(cfg.Height),
		"ColorSpace":       colorSpace,
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	}, data, false)
	return ref, true, err
}

// embedJPEG re-encodes img using lossy compression.
func (e *Embedder) embedJPEG(img image.Image) (pdf.Reference, error) {
	buf := &bytes.Buffer{}
	var opts *jpeg.Options
	if e.opt.JPEGQuality > 0 {
		opts = &jpeg.Options{Quality: e.opt.JPEGQuality}
	}
	err := jpeg.Encode(buf, img, opts)
	if err != nil {
		return pdf.Reference{}, err
	}
	ref, ok, err := e.copyJPEG(buf.Bytes())
	if err == nil && !ok {
		err = errors.New("image: cannot embed re-encoded JPEG")
	}
	return ref, err
}

var errEmpty = errors.New("image: empty image")
