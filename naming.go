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
	"time"
)

// NoQuery is used in file names in place of an empty search query.
const NoQuery = "検索なし"

// FilePrefix returns the base name for exported files: the search query
// followed by the time in the form yyyymmddhhmmss.  Characters which are
// not allowed in file names on common systems are replaced by "_".
func FilePrefix(query string, now time.Time) string {
	query = strings.TrimSpace(query)
	if query == "" {
		query = NoQuery
	}
	return sanitize(query) + now.Format("20060102150405")
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
}
