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

package truetype

import (
	"bytes"
	"errors"
	"math"
	"slices"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/font/tounicode"
	"github.com/db7559/qbank/pdf"
)

// The embedded font consists of the following objects:
//
//	Type=Font, Subtype=Type0, Encoding=Identity-H
//	--DescendantFonts-> Type=Font, Subtype=CIDFontType2
//	--FontDescriptor-> Type=FontDescriptor
//	--FontFile2-> Length1=...
//	--CIDToGIDMap-> (stream)
//	--ToUnicode-> (stream)
type embedded struct {
	*Font
	w   *pdf.Writer
	ref pdf.Reference

	// text records the text for each glyph used so far
	text   map[glyph.ID]string
	closed bool
}

func (e *embedded) Ref() pdf.Reference {
	return e.ref
}

func (e *embedded) Encode(s string) pdf.String {
	res := make(pdf.String, 0, 2*len(s))
	for _, r := range s {
		gid := e.lookup(r)
		if _, seen := e.text[gid]; !seen {
			e.text[gid] = string(r)
		}
		res = append(res, byte(gid>>8), byte(gid))
	}
	return res
}

var identity = &cid.SystemInfo{Registry: "Adobe", Ordering: "Identity", Supplement: 0}

func (e *embedded) Close() error {
	if e.closed {
		return errors.New("truetype: font closed twice")
	}
	e.closed = true

	orig := e.info
	postScriptName := orig.PostScriptName()

	// CIDs are the glyph IDs of the original font, the subset is arranged
	// in order of increasing CID.
	gids := make([]glyph.ID, 0, len(e.text))
	for gid := range e.text {
		gids = append(gids, gid)
	}
	slices.Sort(gids)
	tag := font.SubsetTag(gids, orig.NumGlyphs())

	clone := orig.Clone()
	clone.CMapTable = nil
	clone.Gdef = nil
	clone.Gsub = nil
	clone.Gpos = nil
	subset := clone.Subset(gids)

	cidToGID := make([]byte, 2*(int(gids[len(gids)-1])+1))
	widths := make(map[cid.CID]float64, len(gids))
	toUni := make(map[uint32]string, len(gids))
	for subsetGID, origGID := range gids {
		i := 2 * int(origGID)
		cidToGID[i] = byte(subsetGID >> 8)
		cidToGID[i+1] = byte(subsetGID)
		widths[cid.CID(origGID)] = e.glyphWidth(origGID)
		if text := e.text[origGID]; text != "" {
			toUni[uint32(origGID)] = text
		}
	}
	dw := math.Round(e.glyphWidth(0))

	fontFileRef := e.w.Alloc()
	buf := &bytes.Buffer{}
	length1, err := subset.WriteTrueTypePDF(buf)
	if err != nil {
		return err
	}
	err = e.w.PutStream(fontFileRef, pdf.Dict{"Length1": pdf.Integer(length1)}, buf.Bytes(), true)
	if err != nil {
		return err
	}

	cidToGIDRef := e.w.Alloc()
	err = e.w.PutStream(cidToGIDRef, nil, cidToGID, true)
	if err != nil {
		return err
	}

	toUniRef, err := tounicode.New(identity, toUni).Embed(e.w)
	if err != nil {
		return err
	}

	qv := subset.FontMatrix[3] * 1000
	fd := &font.Descriptor{
		FontName:     tag + "+" + postScriptName,
		FontFamily:   subset.FamilyName,
		IsFixedPitch: subset.IsFixedPitch(),
		IsSerif:      subset.IsSerif,
		IsSymbolic:   true,
		IsScript:     subset.IsScript,
		IsItalic:     subset.IsItalic,
		FontBBox:     subset.FontBBoxPDF().Rounded(),
		ItalicAngle:  subset.ItalicAngle,
		Ascent:       math.Round(float64(subset.Ascent) * qv),
		Descent:      math.Round(float64(subset.Descent) * qv),
		Leading:      math.Round(float64(subset.Ascent-subset.Descent+subset.LineGap) * qv),
		CapHeight:    math.Round(float64(subset.CapHeight) * qv),
		XHeight:      math.Round(float64(subset.XHeight) * qv),
		FontFile2:    fontFileRef,
	}
	fdRef, err := e.w.Write(fd.AsDict())
	if err != nil {
		return err
	}

	cidFont := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("CIDFontType2"),
		"BaseFont": pdf.Name(tag + "+" + postScriptName),
		"CIDSystemInfo": pdf.Dict{
			"Registry":   pdf.String(identity.Registry),
			"Ordering":   pdf.String(identity.Ordering),
			"Supplement": pdf.Integer(identity.Supplement),
		},
		"FontDescriptor": fdRef,
		"CIDToGIDMap":    cidToGIDRef,
	}
	if dw != 1000 {
		cidFont["DW"] = pdf.Integer(dw)
	}
	if ww := font.EncodeWidths(widths, dw); len(ww) > 0 {
		cidFont["W"] = ww
	}
	cidFontRef, err := e.w.Write(cidFont)
	if err != nil {
		return err
	}

	return e.w.Put(e.ref, pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name(tag + "+" + postScriptName),
		"Encoding":        pdf.Name("Identity-H"),
		"DescendantFonts": pdf.Array{cidFontRef},
		"ToUnicode":       toUniRef,
	})
}
