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

package pdf

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Writer represents a PDF file open for writing.
//
// Objects are written as soon as they are passed to [Writer.Put].  The
// cross-reference table and the trailer are written by [Writer.Close].
type Writer struct {
	w       *posWriter
	xref    map[int]int64
	nextRef int

	// ID is written as the /ID entry of the trailer.
	// NewWriter initialises it with a random UUID.
	ID [16]byte
}

// NewWriter prepares a PDF-1.7 file for writing to w.
func NewWriter(w io.Writer) (*Writer, error) {
	pdf := &Writer{
		w:       &posWriter{w: w},
		xref:    make(map[int]int64),
		nextRef: 1,
		ID:      uuid.New(),
	}

	_, err := io.WriteString(pdf.w, "%PDF-1.7\n%\x80\x80\x80\x80\n")
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// Alloc allocates an object number for an indirect object.
// The object must later be written using [Writer.Put].
func (pdf *Writer) Alloc() Reference {
	ref := Reference{Number: pdf.nextRef}
	pdf.nextRef++
	return ref
}

// Put writes obj as the indirect object ref.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.w == nil {
		return errClosed
	}
	if _, seen := pdf.xref[ref.Number]; seen {
		return fmt.Errorf("object %d written twice", ref.Number)
	}
	if ref.Number <= 0 || ref.Number >= pdf.nextRef {
		return fmt.Errorf("object %d was not allocated", ref.Number)
	}

	pos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
	if err != nil {
		return err
	}
	if obj == nil {
		_, err = io.WriteString(pdf.w, "null")
	} else {
		err = obj.PDF(pdf.w)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(pdf.w, "\nendobj\n")
	if err != nil {
		return err
	}
	pdf.xref[ref.Number] = pos
	return nil
}

// Write allocates a new object number and writes obj.
func (pdf *Writer) Write(obj Object) (Reference, error) {
	ref := pdf.Alloc()
	return ref, pdf.Put(ref, obj)
}

// PutStream writes a stream object with the given dictionary and data.
// If compress is set, the data is compressed with the FlateDecode filter.
// The /Length entry is filled in automatically.
func (pdf *Writer) PutStream(ref Reference, dict Dict, data []byte, compress bool) error {
	d := Dict{}
	for k, v := range dict {
		d[k] = v
	}
	if compress {
		var err error
		data, err = Deflate(data)
		if err != nil {
			return err
		}
		d["Filter"] = Name("FlateDecode")
	}
	d["Length"] = Integer(len(data))
	return pdf.Put(ref, &Stream{Dict: d, R: bytes.NewReader(data)})
}

// Deflate compresses data using the zlib format expected by the
// FlateDecode filter.
func Deflate(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close writes the cross-reference table and the trailer.
// Info may be the zero Reference, in which case no /Info entry is written.
// All allocated objects must have been written before Close is called.
func (pdf *Writer) Close(catalog, info Reference) error {
	if pdf.w == nil {
		return errClosed
	}
	if catalog.Number == 0 {
		return errors.New("missing /Catalog")
	}
	for i := 1; i < pdf.nextRef; i++ {
		if _, ok := pdf.xref[i]; !ok {
			return fmt.Errorf("object %d was allocated but not written", i)
		}
	}

	xRefPos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	_, err = io.WriteString(pdf.w, "0000000000 65535 f\r\n")
	if err != nil {
		return err
	}
	for i := 1; i < pdf.nextRef; i++ {
		_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", pdf.xref[i], 0)
		if err != nil {
			return err
		}
	}

	trailer := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalog,
		"ID":   Array{String(pdf.ID[:]), String(pdf.ID[:])},
	}
	if info.Number != 0 {
		trailer["Info"] = info
	}
	_, err = io.WriteString(pdf.w, "trailer\n")
	if err != nil {
		return err
	}
	err = trailer.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}

	pdf.w = nil
	return nil
}

var errClosed = errors.New("pdf: writer is closed")

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
