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

// Package tounicode writes ToUnicode CMaps, which allow PDF viewers to map
// the character codes in a text string back to Unicode text.
package tounicode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/template"
	"unicode/utf16"

	"seehuhn.de/go/postscript/cid"

	"github.com/db7559/qbank/pdf"
)

// Single maps one character code to a text string.
type Single struct {
	Code uint32
	Text string
}

// Info describes a ToUnicode CMap with a single, fixed-width code space.
type Info struct {
	ROS *cid.SystemInfo

	// CodeBytes is the number of bytes per character code, between 1 and 4.
	CodeBytes int

	Singles []Single
}

// New returns the CMap for a font which uses two-byte codes.
// The mapping is sorted by character code.
func New(ros *cid.SystemInfo, m map[uint32]string) *Info {
	info := &Info{ROS: ros, CodeBytes: 2}
	for code, text := range m {
		info.Singles = append(info.Singles, Single{Code: code, Text: text})
	}
	slices.SortFunc(info.Singles, func(a, b Single) int {
		return int(a.Code) - int(b.Code)
	})
	return info
}

// Write writes the CMap as a PostScript program to w.
func (info *Info) Write(w io.Writer) error {
	if info.CodeBytes < 1 || info.CodeBytes > 4 {
		return errors.New("tounicode: invalid code length")
	}
	tmpl := template.Must(template.New("cmap").Funcs(template.FuncMap{
		"PDFString":    formatPDFString,
		"PDFName":      formatPDFName,
		"SingleChunks": singleChunks,
		"Code":         info.formatCode,
		"Text":         formatText,
	}).Parse(toUnicodeTmpl))
	return tmpl.Execute(w, info)
}

// Embed writes the CMap as a compressed stream object and returns its
// reference.
func (info *Info) Embed(w *pdf.Writer) (pdf.Reference, error) {
	buf := &bytes.Buffer{}
	err := info.Write(buf)
	if err != nil {
		return pdf.Reference{}, err
	}
	ref := w.Alloc()
	err = w.PutStream(ref, nil, buf.Bytes(), true)
	return ref, err
}

// MaxCode returns the largest code of the code space.
func (info *Info) MaxCode() uint32 {
	return uint32(1)<<(8*info.CodeBytes) - 1
}

func (info *Info) formatCode(code uint32) string {
	return fmt.Sprintf("<%0*x>", 2*info.CodeBytes, code)
}

func formatText(s string) string {
	var text []byte
	for _, x := range utf16.Encode([]rune(s)) {
		text = append(text, byte(x>>8), byte(x))
	}
	return fmt.Sprintf("<%02X>", text)
}

func formatPDFString(s string) (string, error) {
	buf := &bytes.Buffer{}
	err := pdf.String(s).PDF(buf)
	return buf.String(), err
}

func formatPDFName(s string) (string, error) {
	buf := &bytes.Buffer{}
	err := pdf.Name(s).PDF(buf)
	return buf.String(), err
}

const chunkSize = 100

func singleChunks(x []Single) [][]Single {
	var res [][]Single
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

const toUnicodeTmpl = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapType 2 def
/CMapName {{printf "%s-%s-%03d" .ROS.Registry .ROS.Ordering .ROS.Supplement | PDFName}} def
/CIDSystemInfo <<
/Registry {{PDFString .ROS.Registry}}
/Ordering {{PDFString .ROS.Ordering}}
/Supplement {{.ROS.Supplement}}
>> def
1 begincodespacerange
{{Code 0}} {{Code .MaxCode}}
endcodespacerange
{{range SingleChunks .Singles -}}
{{len .}} beginbfchar
{{range . -}}
{{Code .Code}} {{Text .Text}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`
