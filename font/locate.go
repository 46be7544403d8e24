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
	"os"
	"path/filepath"
)

// Candidates returns the file names searched for a font file called name:
// the "fonts" subdirectory of the working directory, the working
// directory itself, and then the same two locations relative to the
// directory containing the running executable.
func Candidates(name string) []string {
	res := []string{
		filepath.Join("fonts", name),
		name,
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		res = append(res,
			filepath.Join(dir, "fonts", name),
			filepath.Join(dir, name))
	}
	return res
}

// Locate returns the first of the given file names which refers to an
// existing regular file.  If none of them exists, a [*NotFoundError] is
// returned.
func Locate(name string, candidates []string) (string, error) {
	for _, fname := range candidates {
		fi, err := os.Stat(fname)
		if err == nil && fi.Mode().IsRegular() {
			return fname, nil
		}
	}
	return "", &NotFoundError{Name: name, Tried: candidates}
}
