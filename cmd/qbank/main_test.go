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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db7559/qbank"
	"github.com/db7559/qbank/config"
	"github.com/db7559/qbank/render"
)

const bankCSV = "問題文,選択肢1,選択肢2,正解,科目分類,リンクURL\n" +
	"レジンの硬さについて正しいのはどれか,高い,低い,1,理工,\n" +
	"咬合について正しいのはどれか,A,B,2,解剖,\n" +
	"レジンの重合収縮,大きい,小さい,1,理工,\n"

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.csv")
	require.NoError(t, os.WriteFile(path, []byte(bankCSV), 0644))
	return path
}

func TestRunExport(t *testing.T) {
	bank := writeBank(t)
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "none.yaml")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(context.Background(),
		[]string{"-config", cfgPath, "-o", outDir, "-q", "レジン & 理工", bank},
		stdout, stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "2件ヒットしました")
	assert.Contains(t, out, "  1. レジンの硬さについて正しいのはどれか")
	assert.NotContains(t, out, "正解:")

	for _, ext := range []string{"csv", "txt", "pdf"} {
		matches, err := filepath.Glob(filepath.Join(outDir, "レジン & 理工*."+ext))
		require.NoError(t, err)
		require.Len(t, matches, 1, "%s file", ext)
	}

	txt, err := filepath.Glob(filepath.Join(outDir, "*.txt"))
	require.NoError(t, err)
	data, err := os.ReadFile(txt[0])
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), strings.Repeat("-", 40)))

	pdfs, err := filepath.Glob(filepath.Join(outDir, "*.pdf"))
	require.NoError(t, err)
	data, err = os.ReadFile(pdfs[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRunUsage(t *testing.T) {
	stderr := &bytes.Buffer{}
	code := run(context.Background(), nil, &bytes.Buffer{}, stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Usage: qbank")

	code = run(context.Background(), []string{"-formats", "doc", writeBank(t)}, &bytes.Buffer{}, stderr)
	assert.Equal(t, 2, code)
}

func TestRunMissingFile(t *testing.T) {
	stderr := &bytes.Buffer{}
	code := run(context.Background(),
		[]string{"-config", filepath.Join(t.TempDir(), "none.yaml"), "/nonexistent/bank.csv"},
		&bytes.Buffer{}, stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error:")
}

func TestRunInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "qbank.yaml")
	code := run(context.Background(), []string{"-config", cfgPath, "-init"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Equal(t, 0, code)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestExportProgress(t *testing.T) {
	tab, err := qbank.Parse([]byte(bankCSV))
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	out := &bytes.Buffer{}
	a, err := newApp(cfg, tab, out)
	require.NoError(t, err)
	a.formats = []format{formatPDF}
	a.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	var reports []render.Progress
	a.progress = render.ProgressFunc(func(p render.Progress) {
		reports = append(reports, p)
	})
	require.NoError(t, a.export(context.Background(), "", tab.Records))

	require.Len(t, reports, 3)
	assert.Equal(t, 3, reports[2].Completed)
	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "検索なし20261018120000.pdf"))
	assert.NoError(t, err)
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats("PDF, csv,pdf,")
	require.NoError(t, err)
	assert.Equal(t, []format{formatPDF, formatCSV}, got)

	_, err = parseFormats("csv,xls")
	assert.Error(t, err)
}

func TestWriteHits(t *testing.T) {
	hits := []qbank.Record{
		{
			Question: strings.Repeat("長", 60),
			Choices:  []qbank.Choice{{Index: 1, Text: "one"}},
			Answer:   "1",
		},
	}
	buf := &bytes.Buffer{}
	writeHits(buf, hits, false, 80)
	assert.Equal(t, "  1. "+strings.Repeat("長", 50)+"…\n", buf.String())

	buf.Reset()
	writeHits(buf, hits, true, 80)
	assert.Contains(t, buf.String(), "     1) one\n")
	assert.Contains(t, buf.String(), "     正解: 1\n")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, 4, displayWidth("日本"))
	assert.Equal(t, "日…", truncate("日本語", 4))
}

func TestProgressText(t *testing.T) {
	p := render.Progress{Completed: 3, Total: 10, Elapsed: 65 * time.Second, ETA: 151 * time.Second}
	assert.Equal(t, "PDF作成中… 3/10  経過 01:05  残り目安 02:31", progressText(p))

	buf := &bytes.Buffer{}
	bar := &progressBar{w: buf, cols: 80}
	bar.Report(p)
	assert.Empty(t, buf.String())
	bar.Done()
	assert.Equal(t, progressText(p)+"\n", buf.String())
}
