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

// Package render lays out question records on pages and writes them as a
// PDF document.
//
// Every record is measured before it is drawn.  If the record fits on a
// page, it is moved to a new page as a whole rather than being split;
// taller records continue on the following pages.  Images are scaled to
// the width of the page and to the space left next to the text.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/font/cjk"
	"github.com/db7559/qbank/layout"
	"github.com/db7559/qbank/logging"
)

// Stats summarises a generated document.
type Stats struct {
	Pages  int
	Images int

	// Placeholders counts the images which could not be loaded.
	Placeholders int

	// Diagnostics counts the images which were loaded, but could not be
	// placed into the document.
	Diagnostics int

	// Substituted and Unrenderable count the characters drawn as
	// look-alike text, or which no font could draw.
	Substituted  int
	Unrenderable int
}

// CreateDocument lays out the records and returns the PDF file.
//
// Images which cannot be loaded are replaced by a placeholder line.  An
// error is only returned if the fonts cannot be set up or the file cannot
// be written.  If opts is nil, [Default] options are used.  sink may be
// nil.
func CreateDocument(ctx context.Context, records []qbank.Record, opts *Options, sink ProgressSink) ([]byte, *Stats, error) {
	buf := &bytes.Buffer{}
	stats, err := WriteDocument(ctx, buf, records, opts, sink)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), stats, nil
}

// WriteDocument is like [CreateDocument], but writes the PDF file to w.
func WriteDocument(ctx context.Context, w io.Writer, records []qbank.Record, opts *Options, sink ProgressSink) (*Stats, error) {
	if opts == nil {
		opts = Default()
	}
	err := opts.Validate()
	if err != nil {
		return nil, err
	}
	measure, err := newMeasurer(opts)
	if err != nil {
		return nil, err
	}

	doc, err := newDocument(w, opts, measure)
	if err != nil {
		return nil, err
	}
	r := newRenderer(opts, measure, doc, sink)
	err = r.run(ctx, records)
	if err != nil {
		return nil, err
	}
	err = doc.close(opts.Title, time.Now())
	if err != nil {
		return nil, err
	}

	r.stats.Substituted = doc.lines.substituted
	r.stats.Unrenderable = doc.lines.unrenderable
	if r.stats.Substituted > 0 || r.stats.Unrenderable > 0 {
		logging.Logger().Warn("some symbols could not be drawn as written",
			"substituted", r.stats.Substituted,
			"unrenderable", r.stats.Unrenderable)
	}
	return r.stats, nil
}

// newMeasurer registers the fonts of opts and returns the resolver used
// both for measuring and for drawing text.
func newMeasurer(opts *Options) (*resolver, error) {
	reg := layout.NewRegistry()
	base := opts.BaseFont
	if base == nil {
		base = cjk.New()
	}
	reg.Register("base", base)
	if opts.SymbolFont != nil {
		reg.Register("symbol", opts.SymbolFont)
	}
	return newResolver(reg, opts.FontSize, opts.SubstituteSymbols)
}

// renderer draws records through a backend.
type renderer struct {
	opts    *Options
	measure *resolver
	out     backend
	cur     *Cursor
	sink    ProgressSink
	stats   *Stats

	x float64

	// baseline is the distance from the top of a line to its baseline.
	baseline float64
}

func newRenderer(opts *Options, measure *resolver, out backend, sink ProgressSink) *renderer {
	height := opts.PageSize.URy - opts.PageSize.LLy
	return &renderer{
		opts:     opts,
		measure:  measure,
		out:      out,
		cur:      NewCursor(out, height, opts.Margins.Top, opts.Margins.Bottom),
		sink:     sink,
		stats:    &Stats{},
		x:        opts.PageSize.LLx + opts.Margins.Left,
		baseline: min(opts.FontSize, opts.LineHeight),
	}
}

func (r *renderer) run(ctx context.Context, records []qbank.Record) error {
	err := r.cur.Start()
	if err != nil {
		return err
	}

	start := time.Now()
	for i := range records {
		err := r.record(ctx, &records[i])
		if err != nil {
			return err
		}
		if r.sink != nil {
			r.sink.Report(newProgress(i+1, len(records), time.Since(start)))
		}
	}
	r.stats.Pages = r.cur.Pages
	return nil
}

// record draws one record.
func (r *renderer) record(ctx context.Context, rec *qbank.Record) error {
	var img *fetch.Image
	if rec.HasImage() {
		img = r.loadImage(ctx, rec.ImageURL)
	}

	fc := Estimate(rec, img, r.opts, r.measure)
	broke, err := r.cur.EnsureSpace(fc.Height)
	if err != nil {
		return err
	}
	if broke {
		logging.Logger().Debug("page break before record",
			"page", r.cur.Pages, "height", fc.Height)
	}

	err = r.lines(fc.Question)
	if err != nil {
		return err
	}
	for _, c := range fc.Choices {
		err = r.lines(c)
		if err != nil {
			return err
		}
	}
	switch {
	case img != nil:
		err = r.image(rec.ImageURL, img, fc.Image)
	case rec.HasImage():
		r.stats.Placeholders++
		err = r.lines(fc.Placeholder)
	}
	if err != nil {
		return err
	}
	err = r.lines(fc.Answer)
	if err != nil {
		return err
	}
	err = r.lines(fc.Category)
	if err != nil {
		return err
	}

	if r.cur.Y-r.opts.Separator < r.opts.Margins.Bottom {
		// Use up the page, so that the next record starts a new one.
		// No page is started after the last record.
		r.cur.Advance(r.cur.Remaining())
		return nil
	}
	r.cur.Advance(r.opts.Separator)
	return nil
}

// lines draws wrapped text, starting a new page whenever a line would
// not fit above the bottom margin.
func (r *renderer) lines(lines []string) error {
	lh := r.opts.LineHeight
	for _, line := range lines {
		_, err := r.cur.EnsureSpace(lh)
		if err != nil {
			return err
		}
		r.out.DrawLine(r.x, r.cur.Y-r.baseline, line)
		r.cur.Advance(lh)
	}
	return nil
}

// image draws an image at the size planned by the forecast, or smaller
// if less space is left.  Failures are reported by an inline message.
func (r *renderer) image(key string, img *fetch.Image, planned layout.Size) error {
	pad := r.opts.ImagePadding
	_, err := r.cur.EnsureSpace(planned.H + pad)
	if err != nil {
		return err
	}
	size := layout.ShrinkToRemaining(planned, r.cur.Remaining()-pad)

	if size.W <= 0 || size.H <= 0 {
		err = errImageTooSmall
	} else {
		err = r.out.DrawImage(key, img, r.x, r.cur.Y-size.H, size)
	}
	if err != nil {
		logging.Logger().Warn("image not placed", "url", key, "error", err)
		r.stats.Diagnostics++
		msg := fmt.Sprintf(r.opts.Labels.ImageError, err)
		return r.lines(layout.Wrap(r.measure, msg, r.opts.UsableWidth()))
	}

	r.stats.Images++
	r.cur.Advance(size.H + pad)
	return nil
}

var errImageTooSmall = errors.New("no space for image")

// loadImage fetches an image.  The result is nil if the image is not
// available.
func (r *renderer) loadImage(ctx context.Context, link string) *fetch.Image {
	if r.opts.Images == nil {
		return nil
	}
	img, err := r.opts.Images.Fetch(ctx, link)
	if err != nil {
		logging.Logger().Info("image unavailable", "url", link, "error", err)
		return nil
	}
	return img
}
