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

package fetch

import "strings"

// RewriteDriveLink converts a Google Drive share link of the form
// https://drive.google.com/file/d/<ID>/view into a direct download link.
// Other links are returned unchanged.
func RewriteDriveLink(link string) string {
	if !strings.Contains(link, "drive.google.com") {
		return link
	}
	_, rest, ok := strings.Cut(link, "/file/d/")
	if !ok {
		return link
	}
	id := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		id = rest[:i]
	}
	if id == "" {
		return link
	}
	return "https://drive.google.com/uc?export=view&id=" + id
}
