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

package layout

import "strings"

// Wrap breaks text into lines no wider than maxWidth.
//
// Lines are filled greedily, one character at a time, without regard for
// word boundaries.  A character which on its own is wider than maxWidth
// is placed alone on a line.  Newlines force a line break; "\r\n" and "\r"
// count as newlines, a final newline is ignored.  Tabs are replaced by
// spaces.  Empty input gives a single empty line.
//
// The measurer m must be additive, see [Measurer].
func Wrap(m Measurer, text string, maxWidth float64) []string {
	text = Normalize(text)
	paras := strings.Split(text, "\n")
	if len(paras) > 1 && paras[len(paras)-1] == "" {
		paras = paras[:len(paras)-1]
	}

	var lines []string
	for _, para := range paras {
		lines = wrapParagraph(lines, m, para, maxWidth)
	}
	return lines
}

// Normalize converts line endings to "\n" and tabs to spaces, the way
// [Wrap] sees its input.
func Normalize(text string) string {
	if strings.ContainsAny(text, "\r\t") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		text = strings.ReplaceAll(text, "\t", " ")
	}
	return text
}

func wrapParagraph(lines []string, m Measurer, para string, maxWidth float64) []string {
	if para == "" {
		return append(lines, "")
	}

	start := 0
	width := 0.0
	for i, r := range para {
		w := m.Width(string(r))
		if i > start && width+w > maxWidth {
			lines = append(lines, para[start:i])
			start = i
			width = 0
		}
		width += w
	}
	return append(lines, para[start:])
}
