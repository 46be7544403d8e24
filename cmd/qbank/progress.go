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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/db7559/qbank/render"
)

// progressBar shows the progress of PDF generation.  On a terminal the
// status line is redrawn in place; otherwise only the final state is
// printed.
type progressBar struct {
	w     io.Writer
	isTTY bool
	cols  int
	last  render.Progress
	shown bool
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:     w,
		isTTY: isTerminalWriter(w),
		cols:  terminalWidth(w),
	}
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Report implements the [render.ProgressSink] interface.
func (b *progressBar) Report(p render.Progress) {
	b.last = p
	if !b.isTTY {
		return
	}
	line := truncate(progressText(p), b.cols-1)
	pad := max(b.cols-1-displayWidth(line), 0)
	fmt.Fprint(b.w, "\r"+line+strings.Repeat(" ", pad))
	b.shown = true
}

// Done ends the status line.
func (b *progressBar) Done() {
	switch {
	case b.shown:
		fmt.Fprintln(b.w)
	case b.last.Total > 0:
		fmt.Fprintln(b.w, progressText(b.last))
	}
}

func progressText(p render.Progress) string {
	return fmt.Sprintf("PDF作成中… %d/%d  経過 %s  残り目安 %s",
		p.Completed, p.Total, minutes(p.Elapsed), minutes(p.ETA))
}
