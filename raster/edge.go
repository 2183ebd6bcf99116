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
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Edge is one polygon side, prepared for scanline traversal.
//
// Scanline y samples the polygon at the vertical pixel centre y+0.5.
// An edge therefore covers the rows whose centres lie in the half-open
// interval between its end points: rows YTop, YTop+1, ..., YBottom-1.
type Edge struct {
	YTop    int     // first row covered by the edge
	YBottom int     // one past the last row covered by the edge
	XTop    float64 // x at the centre of row YTop
	Slope   float64 // change of x per row

	// X is the intersection with the row the edge was last advanced to.
	// It is only meaningful for that row.
	X float64

	seq int // insertion order, used to break ties between equal X values
}

// NewEdge returns the edge between two screen-space points.
// The second return value is false if the edge covers no row centre;
// such edges (horizontal or very short) do not contribute to spans.
func NewEdge(p0, p1 vec.Vec2) (Edge, bool) {
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}

	yTop := rowOf(p0.Y)
	yBottom := rowOf(p1.Y)
	if yTop >= yBottom {
		return Edge{}, false
	}

	slope := (p1.X - p0.X) / (p1.Y - p0.Y)
	xTop := p0.X + slope*(float64(yTop)+0.5-p0.Y)
	return Edge{
		YTop:    yTop,
		YBottom: yBottom,
		XTop:    xTop,
		Slope:   slope,
		X:       xTop,
	}, true
}

// maxRow bounds the row indices of an edge.  Vertices further away than
// this are moved onto the bound, which keeps the conversion to int exact.
const maxRow = 1 << 30

// rowOf returns the first row whose centre lies at or below y.
func rowOf(y float64) int {
	r := math.Ceil(y - 0.5)
	return int(math.Max(-maxRow, math.Min(r, maxRow)))
}

// IsDegenerate reports whether the edge covers no rows.
func (e *Edge) IsDegenerate() bool {
	return e.YTop >= e.YBottom
}

// XAt computes the intersection with row y from the slope-intercept form.
func (e *Edge) XAt(y int) float64 {
	return e.XTop + e.Slope*float64(y-e.YTop)
}

// Covers reports whether the edge crosses the centre of row y.
func (e *Edge) Covers(y int) bool {
	return y >= e.YTop && y < e.YBottom
}

// EndsAt reports whether row y is the first row after the edge.
func (e *Edge) EndsAt(y int) bool {
	return e.YBottom == y
}

func (e *Edge) String() string {
	return fmt.Sprintf("[%d,%d) x=%.3f", e.YTop, e.YBottom, e.X)
}
