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
	"math"
	"slices"

	"seehuhn.de/go/dag"
	"seehuhn.de/go/postscript/cid"

	"github.com/db7559/qbank/pdf"
)

// EncodeWidths constructs the /W entry for a CIDFont dictionary.
// Widths equal to the default width dw are omitted.
func EncodeWidths(widths map[cid.CID]float64, dw float64) pdf.Array {
	ww := make([]cidWidth, 0, len(widths))
	for c, w := range widths {
		ww = append(ww, cidWidth{c, math.Round(w)})
	}
	if len(ww) == 0 {
		return nil
	}
	slices.SortFunc(ww, func(a, b cidWidth) int {
		return int(a.CID) - int(b.CID)
	})

	g := wwGraph{ww, math.Round(dw)}
	ee, err := dag.ShortestPath[wwEdge, int](g, len(ww))
	if err != nil {
		panic(err)
	}

	var res pdf.Array
	pos := 0
	for _, e := range ee {
		switch {
		case e > 0:
			res = append(res,
				pdf.Integer(ww[pos].CID),
				pdf.Integer(ww[pos+int(e)-1].CID),
				pdf.Integer(ww[pos].Width))
		case e < 0:
			var wi pdf.Array
			for i := pos; i < pos+int(-e); i++ {
				wi = append(wi, pdf.Integer(ww[i].Width))
			}
			res = append(res, pdf.Integer(ww[pos].CID), wi)
		}
		pos = g.To(pos, e)
	}
	return res
}

type cidWidth struct {
	CID   cid.CID
	Width float64
}

type wwGraph struct {
	ww []cidWidth
	dw float64
}

// An edge encodes how the next CID width is encoded:
//
//	e=0: the width of the next CID is the default width, so no entry is needed
//	e>0: the next e CIDs have the same width, encode as a range
//	e<0: the next -e entries have consecutive CIDs, encode as an array
type wwEdge int16

func (g wwGraph) AppendEdges(ee []wwEdge, v int) []wwEdge {
	ww := g.ww
	if ww[v].Width == g.dw {
		return append(ee, 0)
	}

	n := len(ww)

	i := v + 1
	for i < n && ww[i].Width == ww[v].Width {
		i++
	}
	if i > v+1 {
		ee = append(ee, wwEdge(i-v))
	}

	i = v
	for i < n && int(ww[i].CID)-int(ww[v].CID) == i-v {
		i++
		ee = append(ee, wwEdge(v-i))
	}

	return ee
}

func (g wwGraph) Length(v int, e wwEdge) int {
	// all integers are assumed to have 3 digits
	if e == 0 {
		return 0
	} else if e > 0 {
		return 12 // "%d %d %d\n"
	}
	return 6 + 4*int(-e) // "%d [%d ... %d]\n"
}

func (g wwGraph) To(v int, e wwEdge) int {
	if e == 0 {
		return v + 1
	}
	step := int(e)
	if step < 0 {
		step = -step
	}
	return v + step
}
