// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package raster

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// ActiveEdgeTable holds the edges which intersect the current scanline.
//
// Typical use, one row at a time:
//
//	t.SortByX()
//	// pair t.At(0), t.At(1), ... into spans
//	t.Advance()
//	t.Insert(...) // edges starting at t.ScanLine()
//	t.Prune(t.ScanLine())
type ActiveEdgeTable struct {
	edges    []*Edge
	scanLine int
	nextSeq  int
}

// NewActiveEdgeTable returns an empty table positioned at scanline y.
func NewActiveEdgeTable(y int) *ActiveEdgeTable {
	return &ActiveEdgeTable{scanLine: y}
}

// Reset empties the table and moves it to scanline y.
// The internal buffer is kept for reuse.
func (t *ActiveEdgeTable) Reset(y int) {
	clear(t.edges)
	t.edges = t.edges[:0]
	t.scanLine = y
	t.nextSeq = 0
}

// ScanLine returns the current scanline.
func (t *ActiveEdgeTable) ScanLine() int {
	return t.scanLine
}

// Advance moves the table to the next scanline and steps every active
// edge by its slope.
func (t *ActiveEdgeTable) Advance() {
	t.scanLine++
	for _, e := range t.edges {
		e.X += e.Slope
	}
}

// ResetTo moves the table to scanline y and recomputes the intersection of
// every active edge directly, without accumulating increments.
func (t *ActiveEdgeTable) ResetTo(y int) {
	t.scanLine = y
	for _, e := range t.edges {
		e.X = e.XAt(y)
	}
}

// Insert adds an edge which starts at the current scanline.
// Degenerate edges are ignored.
func (t *ActiveEdgeTable) Insert(e *Edge) {
	if e.IsDegenerate() {
		return
	}
	e.X = e.XAt(t.scanLine)
	t.push(e)
}

// seed adds an edge which started above the current scanline.
// The caller must call ResetTo before the intersections are used.
func (t *ActiveEdgeTable) seed(e *Edge) {
	if e.IsDegenerate() {
		return
	}
	t.push(e)
}

func (t *ActiveEdgeTable) push(e *Edge) {
	e.seq = t.nextSeq
	t.nextSeq++
	t.edges = append(t.edges, e)
}

// Prune removes all edges which end at row bottomY.  An edge is kept for
// its last row and removed once the table has moved past it.
func (t *ActiveEdgeTable) Prune(bottomY int) {
	n := 0
	for _, e := range t.edges {
		if !e.EndsAt(bottomY) {
			t.edges[n] = e
			n++
		}
	}
	clear(t.edges[n:])
	t.edges = t.edges[:n]
}

// SortByX orders the active edges by their current intersection.
// Edges with equal intersection keep the order in which they were inserted.
// Edges can cross between rows, so this must be called after every
// Advance/Insert batch and before spans are read.
func (t *ActiveEdgeTable) SortByX() {
	slices.SortStableFunc(t.edges, func(a, b *Edge) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}

// IsFillable reports whether at least one active edge contributes to the
// current scanline.
func (t *ActiveEdgeTable) IsFillable() bool {
	for _, e := range t.edges {
		if e.Covers(t.scanLine) {
			return true
		}
	}
	return false
}

// Len returns the number of active edges.
func (t *ActiveEdgeTable) Len() int {
	return len(t.edges)
}

// Empty reports whether the table holds no edges.
func (t *ActiveEdgeTable) Empty() bool {
	return len(t.edges) == 0
}

// At returns the i-th active edge in the current order.
func (t *ActiveEdgeTable) At(i int) *Edge {
	return t.edges[i]
}

func (t *ActiveEdgeTable) String() string {
	var b strings.Builder
	prefix := strconv.Itoa(t.scanLine) + ": "
	for i, e := range t.edges {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prefix)
		b.WriteString(e.String())
	}
	return b.String()
}
