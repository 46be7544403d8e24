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

package qbank

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Table is a question bank read from a CSV file.
type Table struct {
	Header  []string
	Records []Record

	// Encoding is the detected character encoding of the input,
	// either "UTF-8" or "Shift_JIS".
	Encoding string
}

// ErrNoQuestionColumn is returned when a CSV file has no column which
// matches one of the question aliases.
var ErrNoQuestionColumn = errors.New("qbank: no question column")

// LoadFile reads a question bank from the named CSV file.
func LoadFile(name string) (*Table, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// Load reads a question bank in CSV format from r.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a question bank from the contents of a CSV file.
// The file may be encoded as UTF-8, with or without byte order mark, or as
// Shift_JIS.  The first row is the header.  Rows in which all cells are
// blank are skipped.
func Parse(data []byte) (*Table, error) {
	enc := "UTF-8"
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("qbank: input is neither UTF-8 nor Shift_JIS: %w", err)
		}
		data = decoded
		enc = "Shift_JIS"
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("qbank: empty input")
	} else if err != nil {
		return nil, err
	}
	cols := resolveColumns(header)
	if cols[FieldQuestion] < 0 {
		return nil, ErrNoQuestionColumn
	}

	t := &Table{Header: header, Encoding: enc}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		t.Records = append(t.Records, cols.record(row))
	}
	return t, nil
}

func (cols *columns) record(row []string) Record {
	get := func(f Field) string {
		i := cols[f]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Question: get(FieldQuestion),
		Answer:   get(FieldAnswer),
		Category: get(FieldCategory),
		ImageURL: get(FieldImage),
		Row:      row,
	}
	for i := range MaxChoices {
		text := get(FieldChoice1 + Field(i))
		if text != "" {
			rec.Choices = append(rec.Choices, Choice{Index: i + 1, Text: text})
		}
	}
	return rec
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
