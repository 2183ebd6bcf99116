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
	"math"

	"seehuhn.de/go/geom/vec"
)

// defaultFlatness is the default maximum distance, in pixels, between a
// curve and its polygonal approximation.
const defaultFlatness = 0.25

// flattenQuadratic appends points approximating the quadratic Bézier
// curve from p0 via control point p1 to p2.  p0 itself is not appended.
func flattenQuadratic(pts []vec.Vec2, p0, p1, p2 vec.Vec2, flatness float64) []vec.Vec2 {
	// maximal distance between curve and chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if d := e.Length(); d > flatness {
		n = int(math.Ceil(math.Sqrt(d / flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pts = append(pts, p0.Mul(omt*omt).Add(p1.Mul(2*omt*t)).Add(p2.Mul(t*t)))
	}
	return pts
}

// flattenCubic appends points approximating the cubic Bézier curve from
// p0 via control points p1, p2 to p3.  p0 itself is not appended.
func flattenCubic(pts []vec.Vec2, p0, p1, p2, p3 vec.Vec2, flatness float64) []vec.Vec2 {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	// Wang's formula
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if x := math.Sqrt(3 * m / (4 * flatness)); x > 1 {
			n = int(math.Ceil(x))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pts = append(pts, p0.Mul(omt2*omt).
			Add(p1.Mul(3*omt2*t)).
			Add(p2.Mul(3*omt*t2)).
			Add(p3.Mul(t2*t)))
	}
	return pts
}
