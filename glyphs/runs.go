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

package glyphs

import "unicode/utf8"

// Run is a maximal substring of a line whose characters all have the same
// class.
type Run struct {
	Text  string
	Class Class
}

// Split divides line into runs.  Concatenating the texts of all runs gives
// back the original line.  An empty line gives no runs.
func Split(line string) []Run {
	var runs []Run
	start := 0
	var cur Class
	for i, r := range line {
		c := Classify(r)
		if i > start && c != cur {
			runs = append(runs, Run{Text: line[start:i], Class: cur})
			start = i
		}
		cur = c
	}
	if start < len(line) {
		runs = append(runs, Run{Text: line[start:], Class: cur})
	}
	return runs
}

// CountSymbols returns the number of characters in line which are
// classified as [Symbol].
func CountSymbols(line string) int {
	n := 0
	for _, run := range Split(line) {
		if run.Class == Symbol {
			n += utf8.RuneCountInString(run.Text)
		}
	}
	return n
}
