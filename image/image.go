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

// Package image embeds raster images into PDF files as image XObjects.
//
// JPEG files are copied into the PDF unchanged where possible.  All other
// images are stored as Flate-compressed 8-bit RGB samples, with a soft
// mask for the alpha channel if the image is not opaque.  Images with more
// than Options.MaxPixels pixels are downsampled first.
package image

import (
	"image"

	"github.com/db7559/qbank/pdf"
)

// Options control how images are embedded.
type Options struct {
	// MaxPixels is the largest number of pixels stored for one image.
	// Larger images are scaled down.  Zero means no limit.
	MaxPixels int

	// JPEGQuality is used when a JPEG image must be re-encoded after
	// downsampling, between 1 and 100.  Zero selects the default of the
	// image/jpeg package.
	JPEGQuality int

	// ICCProfile, if set, is an RGB ICC profile.  Images are then
	// stored in an ICCBased colour space instead of DeviceRGB.
	ICCProfile []byte
}

// Embedder writes images to a PDF file.
type Embedder struct {
	w   *pdf.Writer
	opt Options

	rgbSpace pdf.Object
}

// NewEmbedder returns an Embedder which writes to w.
// If opt is nil, default options are used.
func NewEmbedder(w *pdf.Writer, opt *Options) *Embedder {
	e := &Embedder{w: w}
	if opt != nil {
		e.opt = *opt
	}
	return e
}

// Embed writes img as an image XObject and returns its reference.
//
// If jpegData is not nil, it must be the JPEG file img was decoded from.
// The file is then embedded directly, unless img needs to be downsampled.
func (e *Embedder) Embed(img image.Image, jpegData []byte) (pdf.Reference, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return pdf.Reference{}, errEmpty
	}

	small := downsample(img, e.opt.MaxPixels)
	if small != img {
		if jpegData != nil {
			return e.embedJPEG(small)
		}
		return e.embedFlate(small)
	}
	if jpegData != nil {
		ref, ok, err := e.copyJPEG(jpegData)
		if ok || err != nil {
			return ref, err
		}
	}
	return e.embedFlate(img)
}

// embedFlate writes img as Flate-compressed RGB samples.
func (e *Embedder) embedFlate(img image.Image) (pdf.Reference, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	rgb := make([]byte, 0, 3*width*height)
	var alpha []byte
	opaque := isOpaque(img)
	if !opaque {
		alpha = make([]byte, 0, width*height)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a != 0 && a != 0xffff {
				// un-premultiply
				r = r * 0xffff / a
				g = g * 0xffff / a
				bl = bl * 0xffff / a
			}
			rgb = append(rgb, byte(r>>8), byte(g>>8), byte(bl>>8))
			if !opaque {
				alpha = append(alpha, byte(a>>8))
			}
		}
	}

	colorSpace, err := e.colorSpace()
	if err != nil {
		return pdf.Reference{}, err
	}
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(width),
		"Height":           pdf.Integer(height),
		"ColorSpace":       colorSpace,
		"BitsPerComponent": pdf.Integer(8),
	}

	if !opaque {
		maskRef := e.w.Alloc()
		err = e.w.PutStream(maskRef, pdf.Dict{
			"Type":             pdf.Name("XObject"),
			"Subtype":          pdf.Name("Image"),
			"Width":            pdf.Integer(width),
			"Height":           pdf.Integer(height),
			"ColorSpace":       pdf.Name("DeviceGray"),
			"BitsPerComponent": pdf.Integer(8),
		}, alpha, true)
		if err != nil {
			return pdf.Reference{}, err
		}
		dict["SMask"] = maskRef
	}

	ref := e.w.Alloc()
	err = e.w.PutStream(ref, dict, rgb, true)
	return ref, err
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
