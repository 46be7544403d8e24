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
	"strings"

	"golang.org/x/text/cases"
)

// Terms splits a query into search terms.  Terms are separated by "&";
// surrounding white space and empty terms are dropped.
func Terms(query string) []string {
	var terms []string
	for _, t := range strings.Split(query, "&") {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Filter returns the records which match all terms of query.  A record
// matches a term if the term occurs in one of the record's cells, ignoring
// case.  A query without terms matches every record.
func Filter(records []Record, query string) []Record {
	terms := Terms(query)
	if len(terms) == 0 {
		return records
	}

	fold := cases.Fold()
	for i, t := range terms {
		terms[i] = fold.String(t)
	}

	var hits []Record
	for _, rec := range records {
		text := fold.String(rec.searchText())
		match := true
		for _, t := range terms {
			if !strings.Contains(text, t) {
				match = false
				break
			}
		}
		if match {
			hits = append(hits, rec)
		}
	}
	return hits
}

// searchText returns the text searched by [Filter].
func (r *Record) searchText() string {
	if r.Row != nil {
		return strings.Join(r.Row, " ")
	}
	parts := []string{r.Question}
	for _, c := range r.Choices {
		parts = append(parts, c.Text)
	}
	parts = append(parts, r.Answer, r.Category, r.ImageURL)
	return strings.Join(parts, " ")
}
