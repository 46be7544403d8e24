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

package font

import (
	"errors"
	"strings"
)

// ErrNotFound is matched by all errors which report a missing font.
var ErrNotFound = errors.New("font not found")

// NotFoundError reports that a font could not be located or is not
// registered under the given name.
type NotFoundError struct {
	Name string

	// Tried lists the file names which were searched, if any.
	Tried []string
}

func (err *NotFoundError) Error() string {
	msg := "font " + `"` + err.Name + `" not found`
	if len(err.Tried) > 0 {
		msg += " (tried " + strings.Join(err.Tried, ", ") + ")"
	}
	return msg
}

// Is allows errors.Is(err, ErrNotFound) to succeed.
func (err *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
