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

// MaxChoices is the largest number of choices a question can have.
const MaxChoices = 5

// Choice is one of the answer options of a question.
type Choice struct {
	// Index is the 1-based number of the choice column.
	Index int
	Text  string
}

// Record is one question of a question bank.
type Record struct {
	Question string

	// Choices lists the non-blank choices in column order.
	Choices []Choice

	Answer   string
	Category string

	// ImageURL is a link to an illustration, or empty.
	ImageURL string

	// Row holds the cells of the CSV row the record was read from.
	Row []string
}

// HasImage reports whether the record refers to an image.
func (r *Record) HasImage() bool {
	return r.ImageURL != ""
}
