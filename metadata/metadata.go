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

// Package metadata creates the XMP metadata stream of a document.
package metadata

import (
	"bytes"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"github.com/db7559/qbank/pdf"
)

// Document describes a generated document.
type Document struct {
	Title    string
	Creator  string
	Keywords string
	Producer string
	Created  time.Time
}

// pdfNS is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type pdfNS struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

// Packet returns the XMP packet for doc.
func (doc *Document) Packet() (*xmp.Packet, error) {
	dc := &xmp.DublinCore{}
	if doc.Title != "" {
		dc.Title.Set(language.MustParse("x-default"), doc.Title)
	}
	if doc.Creator != "" {
		dc.Creator.Append(xmp.NewProperName(doc.Creator))
	}

	basic := &xmp.Basic{}
	if !doc.Created.IsZero() {
		basic.CreateDate = xmp.NewDate(doc.Created)
		basic.ModifyDate = xmp.NewDate(doc.Created)
	}

	info := &pdfNS{}
	if doc.Keywords != "" {
		info.Keywords = xmp.NewText(doc.Keywords)
	}
	if doc.Producer != "" {
		info.Producer = xmp.NewAgentName(doc.Producer)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, info)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Embed writes the metadata stream to w and returns its reference, for
// use as the /Metadata entry of the document catalog.  The stream is not
// compressed, so that the packet can be found by tools which scan the
// file for XMP data.
func (doc *Document) Embed(w *pdf.Writer) (pdf.Reference, error) {
	packet, err := doc.Packet()
	if err != nil {
		return pdf.Reference{}, err
	}
	buf := &bytes.Buffer{}
	err = packet.Write(buf, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return pdf.Reference{}, err
	}

	ref := w.Alloc()
	err = w.PutStream(ref, pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}, buf.Bytes(), false)
	return ref, err
}
