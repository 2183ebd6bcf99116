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

package geom3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Rect3 is a rectangle in 3D space, used for the texture-space bounds of
// polygons.  U and V are the world-space vectors covered by one texel in
// the two texture directions; they are orthogonal and usually of unit
// length.  Width and Height give the extent in texels.
type Rect3 struct {
	Origin mgl64.Vec3
	U, V   mgl64.Vec3
	Width  float64
	Height float64
}

// Normal returns the unit normal V × U.
func (r Rect3) Normal() mgl64.Vec3 {
	return r.V.Cross(r.U).Normalize()
}

// Point returns the world-space location of texture coordinates (u, v).
func (r Rect3) Point(u, v float64) mgl64.Vec3 {
	return r.Origin.Add(r.U.Mul(u)).Add(r.V.Mul(v))
}

// Coords returns the texture coordinates of the orthogonal projection of
// p onto the plane of r.
func (r Rect3) Coords(p mgl64.Vec3) (u, v float64) {
	d := p.Sub(r.Origin)
	return d.Dot(r.U) / r.U.LenSqr(), d.Dot(r.V) / r.V.LenSqr()
}

// Transformed returns the rectangle mapped through m.  Origin is
// transformed as a point, U and V as directions.
func (r Rect3) Transformed(m mgl64.Mat4) Rect3 {
	return Rect3{
		Origin: mgl64.TransformCoordinate(r.Origin, m),
		U:      mgl64.TransformNormal(r.U, m),
		V:      mgl64.TransformNormal(r.V, m),
		Width:  r.Width,
		Height: r.Height,
	}
}
