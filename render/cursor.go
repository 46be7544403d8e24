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

// Pager starts new pages of a document.
type Pager interface {
	// NewPage finishes the current page, if any, and starts a new one.
	NewPage() error
}

// Cursor tracks the vertical drawing position on the current page.
//
// Y is the top of the next line to be drawn, measured from the bottom
// edge of the page.  Text is only drawn while Y-lineHeight is at or above
// the bottom margin.
type Cursor struct {
	Y     float64
	Pages int

	pager  Pager
	height float64
	top    float64
	bottom float64

	// fresh is set while nothing has been drawn on the current page.
	fresh bool
}

// NewCursor returns a cursor for pages of the given height.  No page is
// started until Start or NewPage is called.
func NewCursor(p Pager, height, top, bottom float64) *Cursor {
	return &Cursor{
		pager:  p,
		height: height,
		top:    top,
		bottom: bottom,
	}
}

// Start begins the first page.
func (c *Cursor) Start() error {
	return c.NewPage()
}

// NewPage finishes the current page and moves to the top of a new one.
func (c *Cursor) NewPage() error {
	err := c.pager.NewPage()
	if err != nil {
		return err
	}
	c.Pages++
	c.Y = c.height - c.top
	c.fresh = true
	return nil
}

// EnsureSpace starts a new page if fewer than need units are left above
// the bottom margin.  On a page where nothing has been drawn yet, no new
// page is started, since the next page would offer no more space.
// The return value reports whether a new page was started.
func (c *Cursor) EnsureSpace(need float64) (bool, error) {
	if c.Y-need >= c.bottom || c.fresh {
		return false, nil
	}
	err := c.NewPage()
	if err != nil {
		return false, err
	}
	return true, nil
}

// Advance moves the cursor down by dh.
func (c *Cursor) Advance(dh float64) {
	c.Y -= dh
	c.fresh = false
}

// Remaining returns the space left above the bottom margin.
func (c *Cursor) Remaining() float64 {
	return c.Y - c.bottom
}

// AtTop reports whether nothing has been drawn on the current page.
func (c *Cursor) AtTop() bool {
	return c.fresh
}
