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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes the records in CSV format, using the given header line.
// The cells of each record are written as they were read.
func WriteCSV(w io.Writer, header []string, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range records {
		row := records[i].Row
		if row == nil {
			row = records[i].cells(len(header))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// cells reconstructs a CSV row for a record which was not read from a file.
// The columns are question, choice 1 to 5, answer, category and image.
func (r *Record) cells(n int) []string {
	row := make([]string, 0, 3+MaxChoices+1)
	row = append(row, r.Question)
	choices := make([]string, MaxChoices)
	for _, c := range r.Choices {
		if c.Index >= 1 && c.Index <= MaxChoices {
			choices[c.Index-1] = c.Text
		}
	}
	row = append(row, choices...)
	row = append(row, r.Answer, r.Category, r.ImageURL)
	for len(row) < n {
		row = append(row, "")
	}
	return row
}

// TextSeparator is written between records by [WriteText].
var TextSeparator = strings.Repeat("-", 40)

// WriteText writes the records as plain text, one block of labelled lines
// per record.
func WriteText(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for i := range records {
		writeTextRecord(bw, &records[i])
		bw.WriteString("\n\n" + TextSeparator + "\n\n")
	}
	return bw.Flush()
}

func writeTextRecord(w *bufio.Writer, r *Record) {
	fmt.Fprintf(w, "問題文: %s", r.Question)
	for _, c := range r.Choices {
		fmt.Fprintf(w, "\n選択肢%d: %s", c.Index, c.Text)
	}
	fmt.Fprintf(w, "\n正解: %s", r.Answer)
	fmt.Fprintf(w, "\n分類: %s", r.Category)
	if r.HasImage() {
		fmt.Fprintf(w, "\n画像リンク: %s（PDFに画像表示）", r.ImageURL)
	}
}
