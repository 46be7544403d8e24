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

import "errors"

// ErrUnavailable is matched by all errors returned by [Fetcher.Fetch].
var ErrUnavailable = errors.New("image unavailable")

// UnavailableError reports why the image at URL could not be used.
type UnavailableError struct {
	URL string
	Err error
}

func (err *UnavailableError) Error() string {
	return "image " + err.URL + ": " + err.Err.Error()
}

func (err *UnavailableError) Unwrap() error {
	return err.Err
}

// Is allows errors.Is(err, ErrUnavailable) to succeed.
func (err *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
