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

import "strings"

// substitutes maps symbols to look-alike text which ordinary Japanese
// fonts can draw.
var substitutes = map[rune]string{
	'⎾': "「", '┌': "「", '⌜': "「",
	'⏌': "」", '┘': "」", '⌟': "」",
	'⎿': "L", '└': "L", '⌞': "L",
	'⏋': "¬", '┐': "¬", '⌝': "¬",
	'│': "|", '─': "-",

	'→': "->", '←': "<-", '↑': "^", '↓': "v", '⇒': "=>", '⇔': "<=>",
	'≦': "<=", '≤': "<=", '≧': ">=", '≥': ">=", '≠': "!=", '≒': "=",
	'±': "+/-", '×': "x", '÷': "/", '−': "-", '∞': "inf", '√': "sqrt",
	'○': "O", '●': "*", '◎': "@", '□': "[]", '■': "#", '△': "^", '▲': "^",
	'°': "deg", '℃': "C",
}

// Substitute returns the look-alike text for r, if one is known.
func Substitute(r rune) (string, bool) {
	s, ok := substitutes[r]
	return s, ok
}

// Replace replaces every [Symbol] character in line which has a
// look-alike substitute.  All other characters are left unchanged.
// The second return value is the number of characters replaced.
func Replace(line string) (string, int) {
	b := &strings.Builder{}
	n := 0
	for _, run := range Split(line) {
		if run.Class != Symbol {
			b.WriteString(run.Text)
			continue
		}
		for _, r := range run.Text {
			if s, ok := substitutes[r]; ok {
				b.WriteString(s)
				n++
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String(), n
}
