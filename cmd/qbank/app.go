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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/config"
	"github.com/db7559/qbank/logging"
	"github.com/db7559/qbank/render"
)

// app holds the state of one qbank session.
type app struct {
	cfg   *config.Config
	table *qbank.Table
	opts  *render.Options
	out   io.Writer

	showAnswers bool
	formats     []format
	now         func() time.Time

	// progress, if not nil, replaces the progress bar.
	progress render.ProgressSink
}

func newApp(cfg *config.Config, table *qbank.Table, out io.Writer) (*app, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	opts.BaseFont, opts.SymbolFont, err = render.LoadFonts(cfg.FontSources())
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		table:   table,
		opts:    opts,
		out:     out,
		formats: []format{formatCSV, formatTXT, formatPDF},
		now:     time.Now,
	}
	return a, nil
}

// search lists the records matching query and returns them.
func (a *app) search(query string) []qbank.Record {
	hits := qbank.Filter(a.table.Records, query)
	fmt.Fprintf(a.out, "%d件ヒットしました\n", len(hits))
	writeHits(a.out, hits, a.showAnswers, terminalWidth(a.out))
	return hits
}

func (a *app) searchAndExport(ctx context.Context, query string) error {
	hits := a.search(query)
	if len(hits) == 0 {
		return nil
	}
	return a.export(ctx, query, hits)
}

// export writes the hits in all selected formats.  The file names
// start with the query and the current time.
func (a *app) export(ctx context.Context, query string, hits []qbank.Record) error {
	dir := a.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	prefix := filepath.Join(dir, qbank.FilePrefix(query, a.now()))

	for _, f := range a.formats {
		fname := prefix + "." + string(f)
		var err error
		switch f {
		case formatCSV:
			err = writeFile(fname, func(w io.Writer) error {
				return qbank.WriteCSV(w, a.table.Header, hits)
			})
		case formatTXT:
			err = writeFile(fname, func(w io.Writer) error {
				return qbank.WriteText(w, hits)
			})
		case formatPDF:
			err = a.exportPDF(ctx, fname, query, hits)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
		fmt.Fprintf(a.out, "保存しました: %s\n", fname)
	}
	return nil
}

func (a *app) exportPDF(ctx context.Context, fname, query string, hits []qbank.Record) error {
	opts := *a.opts
	opts.Title = query
	if opts.Title == "" {
		opts.Title = qbank.NoQuery
	}

	sink := a.progress
	if sink == nil {
		bar := newProgressBar(a.out)
		defer bar.Done()
		sink = bar
	}

	var stats *render.Stats
	err := writeFile(fname, func(w io.Writer) error {
		var err error
		stats, err = render.WriteDocument(ctx, w, hits, &opts, sink)
		return err
	})
	if err != nil {
		return err
	}
	logging.Logger().Debug("pdf written",
		"file", fname,
		"pages", stats.Pages,
		"images", stats.Images,
		"placeholders", stats.Placeholders)
	return nil
}

// writeFile creates fname and fills it using write.  The file is removed
// if an error occurs.
func writeFile(fname string, write func(w io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fname)
	}
	return err
}
