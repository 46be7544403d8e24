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

package render

import (
	"io"
	"time"

	"seehuhn.de/go/geom/rect"

	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/graphics"
	"github.com/db7559/qbank/image"
	"github.com/db7559/qbank/layout"
	"github.com/db7559/qbank/metadata"
	"github.com/db7559/qbank/pdf"
)

// Producer is written into the document information dictionary.
const Producer = "qbank"

// backend receives the drawing operations of the renderer.
type backend interface {
	Pager

	// DrawLine draws a line of text with its baseline starting at (x, y).
	DrawLine(x, y float64, line string)

	// DrawImage draws img with lower left corner (x, y).  Images with the
	// same key are stored only once.
	DrawImage(key string, img *fetch.Image, x, y float64, size layout.Size) error
}

// document is the backend which writes a PDF file.
//
// All pages share one resource dictionary.  Page objects are written as
// soon as a page is finished, the page tree and the catalog are written
// by close.
type document struct {
	out      *pdf.Writer
	mediaBox pdf.Array

	res      *graphics.Resources
	resRef   pdf.Reference
	pagesRef pdf.Reference
	kids     pdf.Array

	content *graphics.Writer
	open    bool

	lines  *lineDrawer
	images *image.Embedder
	stored map[string]pdf.Reference
}

func newDocument(w io.Writer, opts *Options, res *resolver) (*document, error) {
	out, err := pdf.NewWriter(w)
	if err != nil {
		return nil, err
	}
	resources := graphics.NewResources()
	d := &document{
		out:      out,
		mediaBox: rectArray(opts.PageSize),
		res:      resources,
		resRef:   out.Alloc(),
		pagesRef: out.Alloc(),
		content:  graphics.NewWriter(resources),
		lines:    newLineDrawer(res, out),
		images:   image.NewEmbedder(out, opts.ImageOptions),
		stored:   make(map[string]pdf.Reference),
	}
	return d, nil
}

// NewPage implements the [Pager] interface.
func (d *document) NewPage() error {
	if d.open {
		err := d.finishPage()
		if err != nil {
			return err
		}
	}
	d.content.Reset()
	d.open = true
	return nil
}

func (d *document) finishPage() error {
	data, err := d.content.Close()
	if err != nil {
		return err
	}
	contentRef := d.out.Alloc()
	err = d.out.PutStream(contentRef, nil, data, true)
	if err != nil {
		return err
	}
	pageRef, err := d.out.Write(pdf.Dict{
		"Type":      pdf.Name("Page"),
		"Parent":    d.pagesRef,
		"MediaBox":  d.mediaBox,
		"Resources": d.resRef,
		"Contents":  contentRef,
	})
	if err != nil {
		return err
	}
	d.kids = append(d.kids, pageRef)
	d.open = false
	return nil
}

func (d *document) DrawLine(x, y float64, line string) {
	d.lines.Draw(d.content, x, y, line)
}

func (d *document) DrawImage(key string, img *fetch.Image, x, y float64, size layout.Size) error {
	ref, ok := d.stored[key]
	if !ok {
		var err error
		ref, err = d.images.Embed(img.Image, img.JPEG())
		if err != nil {
			return err
		}
		d.stored[key] = ref
	}
	d.content.DrawImage(ref, x, y, size.W, size.H)
	return d.content.Err
}

// close finishes the last page and writes the fonts, the page tree, the
// metadata and the cross-reference table.
func (d *document) close(title string, now time.Time) error {
	if d.open {
		err := d.finishPage()
		if err != nil {
			return err
		}
	}

	err := d.lines.Close()
	if err != nil {
		return err
	}

	err = d.out.Put(d.resRef, d.res.AsDict())
	if err != nil {
		return err
	}
	err = d.out.Put(d.pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  d.kids,
		"Count": pdf.Integer(len(d.kids)),
	})
	if err != nil {
		return err
	}

	meta := &metadata.Document{
		Title:    title,
		Creator:  Producer,
		Keywords: title,
		Producer: Producer,
		Created:  now,
	}
	metaRef, err := meta.Embed(d.out)
	if err != nil {
		return err
	}
	catalog, err := d.out.Write(pdf.Dict{
		"Type":     pdf.Name("Catalog"),
		"Pages":    d.pagesRef,
		"Metadata": metaRef,
	})
	if err != nil {
		return err
	}

	info := &pdf.Info{
		Title:        title,
		Creator:      Producer,
		Producer:     Producer,
		Keywords:     title,
		CreationDate: now,
		ModDate:      now,
	}
	infoRef, err := d.out.Write(info.AsDict())
	if err != nil {
		return err
	}

	return d.out.Close(catalog, infoRef)
}

func rectArray(r rect.Rect) pdf.Array {
	return pdf.Array{
		pdf.Real(r.LLx), pdf.Real(r.LLy),
		pdf.Real(r.URx), pdf.Real(r.URy),
	}
}
