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

// Package qbank holds question records and the operations on question
// banks which surround PDF generation: reading a CSV file with flexible
// column names, searching, and exporting the hits as CSV or plain text.
//
// A question bank is a CSV file with one question per row.  The columns
// are identified by their header, see [Aliases]:
//
//	t, err := qbank.LoadFile("image7559.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hits := qbank.Filter(t.Records, "レジン & 硬さ")
//
// The hits can then be passed to render.CreateDocument.
package qbank
