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

package qbank

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/japanese"
)

const sampleCSV = "問題文,選択肢1,選択肢2,選択肢3,選択肢4,選択肢5,正解,科目分類,リンクURL\n" +
	"レジンの硬さは?,高い,低い,,,,1,理工,\n" +
	",,,,,,,,\n" +
	"\"改行を\n含む問題\",A,B,C,D,E,3,解剖,https://example.com/a.png\n"

func TestParse(t *testing.T) {
	tab, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Encoding != "UTF-8" {
		t.Errorf("encoding = %q", tab.Encoding)
	}

	got := make([]Record, len(tab.Records))
	for i, r := range tab.Records {
		r.Row = nil
		got[i] = r
	}
	want := []Record{
		{
			Question: "レジンの硬さは?",
			Choices:  []Choice{{1, "高い"}, {2, "低い"}},
			Answer:   "1",
			Category: "理工",
		},
		{
			Question: "改行を\n含む問題",
			Choices:  []Choice{{1, "A"}, {2, "B"}, {3, "C"}, {4, "D"}, {5, "E"}},
			Answer:   "3",
			Category: "解剖",
			ImageURL: "https://example.com/a.png",
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("records (-want +got):\n%s", d)
	}
}

func TestParseAliases(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"english", "Question,Choice1,choice2,Answer,Category,image_url"},
		{"fullwidth digits", "問題,選択肢１,選択肢２,解答,分類,画像URL"},
		{"spaces", " 設問 ,選択肢 1,選択肢 2,答え,カテゴリ,画像"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := c.header + "\nq,a,b,1,cat,u\n"
			tab, err := Parse([]byte(data))
			if err != nil {
				t.Fatal(err)
			}
			got := tab.Records[0]
			got.Row = nil
			want := Record{
				Question: "q",
				Choices:  []Choice{{1, "a"}, {2, "b"}},
				Answer:   "1",
				Category: "cat",
				ImageURL: "u",
			}
			if d := cmp.Diff(want, got); d != "" {
				t.Errorf("record (-want +got):\n%s", d)
			}
		})
	}
}

func TestParseBOM(t *testing.T) {
	tab, err := Parse([]byte("\xef\xbb\xbf問題文,正解\nq,a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Records) != 1 || tab.Records[0].Answer != "a" {
		t.Errorf("unexpected records %v", tab.Records)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"問題文", "問題文"},
		{"\uFEFF問題文", "問題文"},
		{" Choice 1 ", "choice1"},
		{"ＵＲＬ", "url"},
		{"選択肢１", "選択肢1"},
	}
	for _, c := range cases {
		if got := normalizeHeader(c.in); got != c.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseShiftJIS(t *testing.T) {
	sjis, err := japanese.ShiftJIS.NewEncoder().String("問題文,正解\n咬合とは,2\n")
	if err != nil {
		t.Fatal(err)
	}
	tab, err := Load(strings.NewReader(sjis))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Encoding != "Shift_JIS" {
		t.Errorf("encoding = %q", tab.Encoding)
	}
	if len(tab.Records) != 1 || tab.Records[0].Question != "咬合とは" {
		t.Errorf("unexpected records %v", tab.Records)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("a,b,c\n1,2,3\n"))
	if !errors.Is(err, ErrNoQuestionColumn) {
		t.Errorf("missing question column: got %v", err)
	}
	_, err = Parse(nil)
	if err == nil {
		t.Error("empty input accepted")
	}
}

func TestFieldString(t *testing.T) {
	for f, want := range map[Field]string{
		FieldQuestion: "question",
		FieldChoice3:  "choice3",
		FieldImage:    "image",
		Field(99):     "Field(99)",
	} {
		if got := f.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(f), got, want)
		}
	}
}
