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
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field identifies a column of a question bank.
type Field int

// These are the columns of a question bank.
const (
	FieldQuestion Field = iota
	FieldChoice1
	FieldChoice2
	FieldChoice3
	FieldChoice4
	FieldChoice5
	FieldAnswer
	FieldCategory
	FieldImage

	numFields
)

func (f Field) String() string {
	switch {
	case f == FieldQuestion:
		return "question"
	case f >= FieldChoice1 && f <= FieldChoice5:
		return fmt.Sprintf("choice%d", int(f-FieldChoice1)+1)
	case f == FieldAnswer:
		return "answer"
	case f == FieldCategory:
		return "category"
	case f == FieldImage:
		return "image"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Aliases lists the accepted column headers for each field, in order of
// preference.  Headers are compared after NFKC normalisation, with case
// and white space ignored, so that "選択肢１", "選択肢 1" and "Choice1"
// all match.
var Aliases = map[Field][]string{
	FieldQuestion: {"問題文", "問題", "設問", "question"},
	FieldAnswer:   {"正解", "解答", "答え", "answer"},
	FieldCategory: {"科目分類", "分類", "科目", "カテゴリ", "category"},
	FieldImage:    {"リンクURL", "画像URL", "画像リンク", "画像", "image", "image_url", "url"},
}

func init() {
	for i := 1; i <= MaxChoices; i++ {
		f := FieldChoice1 + Field(i-1)
		Aliases[f] = []string{
			fmt.Sprintf("選択肢%d", i),
			fmt.Sprintf("choice%d", i),
			fmt.Sprintf("option%d", i),
		}
	}
}

// normalizeHeader brings a column header into the form used for matching.
func normalizeHeader(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return s
}

// columns maps fields to column indices, -1 for missing columns.
type columns [numFields]int

// resolveColumns finds the column of each field in header.  For every
// field, the first alias which occurs in header wins.
func resolveColumns(header []string) columns {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}

	var cols columns
	for f := range numFields {
		cols[f] = -1
		for _, alias := range Aliases[f] {
			if i, ok := pos[normalizeHeader(alias)]; ok {
				cols[f] = i
				break
			}
		}
	}
	return cols
}
