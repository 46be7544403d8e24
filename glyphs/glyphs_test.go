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

package glyphs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		r    rune
		want Class
	}{
		{'A', Base},
		{'あ', Base},
		{'漢', Base},
		{'、', Base},
		{'1', Base},
		{'⎾', Symbol}, // dental
		{'⏌', Symbol}, // dental
		{'┘', Symbol}, // box corner
		{'ʰ', Symbol}, // spacing modifier
		{'́', Symbol},
		{'²', Base},
		{'₂', Symbol},
		{'→', Symbol},
		{'∑', Symbol},
		{'⌀', Symbol},
		{'▲', Symbol},
		{'⟨', Symbol},
		{'⤴', Symbol},
		{'⨁', Symbol},
		{'￥', Symbol},
		{'±', Symbol}, // Sm
		{'©', Symbol}, // So
		{'^', Symbol}, // Sk
		{'♪', Symbol}, // So
	}
	for _, test := range cases {
		if got := Classify(test.r); got != test.want {
			t.Errorf("Classify(%q) = %s, want %s", test.r, got, test.want)
		}
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []Run
	}{
		{"", nil},
		{"問題", []Run{{"問題", Base}}},
		{"→", []Run{{"→", Symbol}}},
		{"上顎⎾6の処置", []Run{
			{"上顎", Base},
			{"⎾", Symbol},
			{"6の処置", Base},
		}},
		{"a→←b", []Run{{"a", Base}, {"→←", Symbol}, {"b", Base}}},
	}
	for _, test := range cases {
		got := Split(test.in)
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("Split(%q) (-want +got):\n%s", test.in, d)
		}
	}
}

func TestSplitCoverage(t *testing.T) {
	lines := []string{
		"問題文: 下顎左側第一大臼歯 ⏌6 の根管治療 → 予後",
		"±×÷ abc ²³ ✓✗",
		"́combining first",
		strings.Repeat("⎾⎿", 20),
	}
	for _, line := range lines {
		b := &strings.Builder{}
		runs := Split(line)
		for i, run := range runs {
			if run.Text == "" {
				t.Errorf("%q: empty run", line)
			}
			if i > 0 && runs[i-1].Class == run.Class {
				t.Errorf("%q: adjacent runs with the same class", line)
			}
			b.WriteString(run.Text)
		}
		if b.String() != line {
			t.Errorf("runs do not reconstruct %q", line)
		}
	}
}

func TestReplace(t *testing.T) {
	line := "上顎⎾6の処置"
	got, n := Replace(line)
	if got != "上顎「6の処置" {
		t.Errorf("got %q", got)
	}
	if n != 1 {
		t.Errorf("replaced %d characters, want 1", n)
	}

	// base characters are never touched, even if they look like symbols
	got, n = Replace("abc 123 ＡＢＣ")
	if got != "abc 123 ＡＢＣ" || n != 0 {
		t.Errorf("unexpected replacement %q (%d)", got, n)
	}

	// symbols without a substitute stay
	got, n = Replace("♪→")
	if got != "♪->" || n != 1 {
		t.Errorf("got %q (%d)", got, n)
	}
}

func TestSubstitute(t *testing.T) {
	for r, s := range substitutes {
		if s == "" {
			t.Errorf("empty substitute for %q", r)
		}
		if _, ok := Substitute(r); !ok {
			t.Errorf("Substitute(%q) failed", r)
		}
	}
	if _, ok := Substitute('あ'); ok {
		t.Error("unexpected substitute for あ")
	}
}
