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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
	"golang.org/x/text/width"

	"github.com/db7559/qbank"
)

// summaryLength is the number of characters of a question shown in the
// hit list.
const summaryLength = 50

const defaultWidth = 80

// writeHits prints a numbered list of the records.  If showAnswers is
// set, the choices, the answer and the category are printed below each
// question, wrapped to cols columns.
func writeHits(w io.Writer, hits []qbank.Record, showAnswers bool, cols int) {
	for i := range hits {
		rec := &hits[i]
		fmt.Fprintf(w, "%3d. %s\n", i+1, summary(rec.Question))
		if !showAnswers {
			continue
		}
		indent := "     "
		for _, c := range rec.Choices {
			writeWrapped(w, indent, fmt.Sprintf("%d) %s", c.Index, c.Text), cols)
		}
		writeWrapped(w, indent, "正解: "+rec.Answer, cols)
		if rec.Category != "" {
			writeWrapped(w, indent, "分類: "+rec.Category, cols)
		}
		if rec.HasImage() {
			writeWrapped(w, indent, "画像: "+rec.ImageURL, cols)
		}
	}
}

// summary returns the first characters of a question on a single line.
func summary(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	r := []rune(q)
	if len(r) <= summaryLength {
		return q
	}
	return string(r[:summaryLength]) + "…"
}

func writeWrapped(w io.Writer, indent, text string, cols int) {
	limit := cols - len(indent)
	if limit < 20 {
		limit = 20
	}
	wrapped := wordwrap.WrapString(text, uint(limit))
	for _, line := range strings.Split(wrapped, "\n") {
		fmt.Fprintln(w, indent+truncate(line, limit))
	}
}

// displayWidth returns the number of terminal columns used by s.
// East Asian wide and fullwidth characters take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// truncate shortens s to at most cols terminal columns.
func truncate(s string, cols int) string {
	if displayWidth(s) <= cols {
		return s
	}
	n := 0
	for i, r := range s {
		rw := runeWidth(r)
		if n+rw > cols-1 {
			return s[:i] + "…"
		}
		n += rw
	}
	return s
}

// terminalWidth returns the width of the terminal w writes to, or a
// default width if w is not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}
