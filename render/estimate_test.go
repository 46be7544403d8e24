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

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/layout"
)

func testImage(w, h int) *fetch.Image {
	return &fetch.Image{
		Image:  image.NewRGBA(image.Rect(0, 0, w, h)),
		Format: "png",
		MIME:   "image/png",
	}
}

func TestEstimateLines(t *testing.T) {
	opts := testOptions()
	m, err := newMeasurer(opts)
	if err != nil {
		t.Fatal(err)
	}
	rec := &qbank.Record{
		Question: strings.Repeat("あ", 150),
		Choices:  []qbank.Choice{{Index: 1, Text: "A"}, {Index: 3, Text: "C"}},
		Answer:   "1",
		Category: "理工",
		ImageURL: "https://example.invalid/x.png",
	}
	fc := Estimate(rec, nil, opts, m)

	want := &Forecast{
		Question: []string{
			"問題文: " + strings.Repeat("あ", 59),
			strings.Repeat("あ", 64),
			strings.Repeat("あ", 27),
		},
		Choices:     [][]string{{"選択肢1: A"}, {"選択肢3: C"}},
		Answer:      []string{"正解: 1"},
		Category:    []string{"分類: 理工"},
		Placeholder: []string{"[画像読み込み失敗]"},
		Height:      8*18 + 20,
	}
	if d := cmp.Diff(want, fc); d != "" {
		t.Errorf("forecast (-want +got):\n%s", d)
	}
}

func TestEstimateImage(t *testing.T) {
	opts := testOptions()
	m, err := newMeasurer(opts)
	if err != nil {
		t.Fatal(err)
	}
	rec := &qbank.Record{Question: "q", ImageURL: "u"}

	cases := []struct {
		name string
		w, h int
		want layout.Size
	}{
		{"small", 100, 50, layout.Size{W: 100, H: 50}},
		{"wide", 640, 100, layout.Size{W: 320, H: 50}},
		// 3 text lines, padding and separator leave 406 units.
		{"tall", 1000, 2000, layout.Size{W: 203, H: 406}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fc := Estimate(rec, testImage(c.w, c.h), opts, m)
			if d := cmp.Diff(c.want, fc.Image, cmpopts.EquateApprox(0, 1e-9)); d != "" {
				t.Errorf("image size (-want +got):\n%s", d)
			}
			wantHeight := 3*18 + c.want.H + 20 + 20
			if math.Abs(fc.Height-wantHeight) > 1e-9 {
				t.Errorf("height = %g, want %g", fc.Height, wantHeight)
			}
		})
	}
}

func TestImageBound(t *testing.T) {
	opts := testOptions() // usable height 500
	if got := imageBound(opts, 100); got != 360 {
		t.Errorf("short text: %g", got)
	}
	// Less than three lines would be left: the image gets a full page.
	if got := imageBound(opts, 420); got != 500 {
		t.Errorf("long text: %g", got)
	}
}

// A record which does not fit into the space left on a page starts on a
// new page, and all its blocks are drawn there.
func TestRecordMovesToNewPage(t *testing.T) {
	opts := testOptions()
	r, out, err := newTestRenderer(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.cur.Start(); err != nil {
		t.Fatal(err)
	}
	r.cur.Advance(410)
	if r.cur.Remaining() != 5*opts.LineHeight {
		t.Fatalf("remaining = %g", r.cur.Remaining())
	}

	rec := &qbank.Record{
		Question: strings.Repeat("あ", 150),
		Choices:  []qbank.Choice{{Index: 1, Text: "A"}, {Index: 2, Text: "B"}},
		Answer:   "1",
		Category: "理工",
		ImageURL: "https://example.invalid/x.png",
	}
	err = r.record(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}

	var texts []string
	for _, l := range out.lines {
		if l.Page != 2 {
			t.Errorf("line %q drawn on page %d", l.Text, l.Page)
		}
		texts = append(texts, l.Text)
	}
	want := []string{
		"問題文: " + strings.Repeat("あ", 59),
		strings.Repeat("あ", 64),
		strings.Repeat("あ", 27),
		"選択肢1: A",
		"選択肢2: B",
		"[画像読み込み失敗]",
		"正解: 1",
		"分類: 理工",
	}
	if d := cmp.Diff(want, texts); d != "" {
		t.Errorf("lines (-want +got):\n%s", d)
	}
	if r.stats.Placeholders != 1 {
		t.Errorf("placeholders = %d", r.stats.Placeholders)
	}
	if out.lines[0].Y != 560-opts.FontSize {
		t.Errorf("first baseline at %g", out.lines[0].Y)
	}
}

// The vertical space used by a record equals the forecast.
func TestHeightAgreement(t *testing.T) {
	opts := testOptions()
	opts.Images = &imageSource{
		ok: map[string]*fetch.Image{
			"small": testImage(100, 50),
			"tall":  testImage(1000, 2000),
		},
		err: fetch.ErrUnavailable,
	}
	records := []qbank.Record{
		{Question: "短い問題", Answer: "1", Category: "c"},
		{Question: strings.Repeat("い", 200), Choices: []qbank.Choice{{Index: 1, Text: "x"}, {Index: 2, Text: "y"}}},
		{Question: "q", ImageURL: "small"},
		{Question: "q", ImageURL: "tall"},
		{Question: "q", ImageURL: "missing"},
	}
	for i := range records {
		r, _, err := newTestRenderer(opts)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.cur.Start(); err != nil {
			t.Fatal(err)
		}
		var img *fetch.Image
		if records[i].HasImage() {
			img, _ = opts.Images.Fetch(context.Background(), records[i].ImageURL)
		}
		fc := Estimate(&records[i], img, opts, r.measure)

		y0 := r.cur.Y
		if err := r.record(context.Background(), &records[i]); err != nil {
			t.Fatal(err)
		}
		if r.cur.Pages != 1 {
			t.Errorf("record %d: %d pages", i, r.cur.Pages)
			continue
		}
		if used := y0 - r.cur.Y; math.Abs(used-fc.Height) > 1e-9 {
			t.Errorf("record %d: used %g, forecast %g", i, used, fc.Height)
		}
	}
}

func TestNoLineInBottomMargin(t *testing.T) {
	opts := testOptions()
	opts.Images = &imageSource{
		ok:  map[string]*fetch.Image{"img": testImage(300, 700)},
		err: fetch.ErrUnavailable,
	}
	r, out, err := newTestRenderer(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.cur.Start(); err != nil {
		t.Fatal(err)
	}

	var records []qbank.Record
	for i := range 40 {
		rec := qbank.Record{
			Question: strings.Repeat("問", 10+(i*37)%300),
			Answer:   "2",
			Category: "分類",
		}
		for j := range i % 6 {
			rec.Choices = append(rec.Choices, qbank.Choice{Index: j + 1, Text: "選択肢"})
		}
		switch i % 4 {
		case 1:
			rec.ImageURL = "img"
		case 2:
			rec.ImageURL = "broken"
		}
		records = append(records, rec)
	}
	// A record longer than a page.
	records = append(records, qbank.Record{Question: strings.Repeat("長", 2500)})

	lineBottom := opts.LineHeight - opts.FontSize
	for i := range records {
		start := len(out.lines)
		fc := Estimate(&records[i], nil, opts, r.measure)
		if err := r.record(context.Background(), &records[i]); err != nil {
			t.Fatal(err)
		}
		lines := out.lines[start:]
		for _, l := range lines {
			if l.Y-lineBottom < opts.Margins.Bottom-1e-9 {
				t.Errorf("record %d: line at y=%g enters the bottom margin", i, l.Y)
			}
		}
		if fc.Height <= opts.UsableHeight() && !records[i].HasImage() {
			if lines[0].Page != lines[len(lines)-1].Page {
				t.Errorf("record %d split across pages %d-%d",
					i, lines[0].Page, lines[len(lines)-1].Page)
			}
		}
	}
	for _, img := range out.images {
		if img.Y < opts.Margins.Bottom+opts.ImagePadding-1e-9 {
			t.Errorf("image at y=%g enters the bottom margin", img.Y)
		}
	}
	if r.cur.Pages < 2 {
		t.Errorf("only %d pages", r.cur.Pages)
	}
}

func TestImageDiagnostic(t *testing.T) {
	opts := testOptions()
	opts.Images = &imageSource{ok: map[string]*fetch.Image{"img": testImage(10, 10)}}
	r, out, err := newTestRenderer(opts)
	if err != nil {
		t.Fatal(err)
	}
	out.imageErr = errors.New("boom")
	if err := r.cur.Start(); err != nil {
		t.Fatal(err)
	}

	err = r.record(context.Background(), &qbank.Record{Question: "q", ImageURL: "img"})
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, l := range out.lines {
		if l.Text == "[画像読み込み失敗: boom]" {
			found = true
		}
	}
	if !found {
		t.Errorf("no diagnostic line in %v", out.lines)
	}
	if r.stats.Diagnostics != 1 || r.stats.Images != 0 {
		t.Errorf("stats = %+v", r.stats)
	}
}

func TestSeparatorAtPageEnd(t *testing.T) {
	opts := testOptions()
	m, err := newMeasurer(opts)
	if err != nil {
		t.Fatal(err)
	}

	// Find a record which fits on a page, but leaves no room for the
	// separator.
	var rec qbank.Record
	for n := 1; ; n++ {
		rec = qbank.Record{Question: strings.Repeat("あ", n*64), Answer: "1"}
		text := Estimate(&rec, nil, opts, m).Height - opts.Separator
		if text > opts.UsableHeight() {
			t.Fatal("no suitable record found")
		}
		if opts.UsableHeight()-text < opts.Separator {
			break
		}
	}

	r, out, err := newTestRenderer(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.run(context.Background(), []qbank.Record{rec}); err != nil {
		t.Fatal(err)
	}
	if r.stats.Pages != 1 || out.page != 1 {
		t.Errorf("one record gave %d pages (%d started)", r.stats.Pages, out.page)
	}

	r, out, err = newTestRenderer(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.run(context.Background(), []qbank.Record{rec, rec}); err != nil {
		t.Fatal(err)
	}
	if r.stats.Pages != 2 || out.page != 2 {
		t.Errorf("two records gave %d pages (%d started)", r.stats.Pages, out.page)
	}
	n := len(out.lines) / 2
	for i, l := range out.lines {
		if want := 1 + i/n; l.Page != want {
			t.Errorf("line %d on page %d, want %d", i, l.Page, want)
		}
	}
	if y := out.lines[n].Y; y != 560-opts.FontSize {
		t.Errorf("second record starts at y=%g", y)
	}
}
