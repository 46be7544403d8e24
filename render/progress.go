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

package render

import "time"

// Progress describes how far document generation has come.
type Progress struct {
	Completed int
	Total     int
	Elapsed   time.Duration

	// ETA is the estimated time until all records are drawn, based on
	// the average time per record so far.
	ETA time.Duration
}

// ProgressSink receives a report after every record.
type ProgressSink interface {
	Report(p Progress)
}

// ProgressFunc adapts an ordinary function to the [ProgressSink] interface.
type ProgressFunc func(p Progress)

// Report implements the [ProgressSink] interface.
func (f ProgressFunc) Report(p Progress) {
	f(p)
}

func newProgress(completed, total int, elapsed time.Duration) Progress {
	p := Progress{
		Completed: completed,
		Total:     total,
		Elapsed:   elapsed,
	}
	if completed > 0 && completed < total {
		perRecord := elapsed / time.Duration(completed)
		p.ETA = perRecord * time.Duration(total-completed)
	}
	return p
}
