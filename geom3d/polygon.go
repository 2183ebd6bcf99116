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

// Polygon is a planar, convex or concave polygon in 3D space.  Seen from
// the front, the vertices run counter-clockwise.
type Polygon struct {
	Vertices []mgl64.Vec3
}

// NewPolygon returns a polygon with the given vertices.
func NewPolygon(vertices ...mgl64.Vec3) Polygon {
	return Polygon{Vertices: vertices}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// Normal returns the unit normal vector, computed from the first three
// vertices as (v2-v1) × (v0-v1).  For polygons with fewer than three
// vertices, or collinear leading vertices, the zero vector is returned.
func (p Polygon) Normal() mgl64.Vec3 {
	if len(p.Vertices) < 3 {
		return mgl64.Vec3{}
	}
	v0, v1, v2 := p.Vertices[0], p.Vertices[1], p.Vertices[2]
	n := v2.Sub(v1).Cross(v0.Sub(v1))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// IsFacing reports whether the front side of the polygon is visible from
// the point eye.
func (p Polygon) IsFacing(eye mgl64.Vec3) bool {
	if len(p.Vertices) < 3 {
		return false
	}
	return eye.Sub(p.Vertices[0]).Dot(p.Normal()) >= 0
}

// Transformed returns a copy of the polygon with every vertex mapped
// through m.
func (p Polygon) Transformed(m mgl64.Mat4) Polygon {
	res := make([]mgl64.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		res[i] = mgl64.TransformCoordinate(v, m)
	}
	return Polygon{Vertices: res}
}

// Add places the polygon into the world using t.
func (p Polygon) Add(t *Transform) Polygon {
	return p.Transformed(t.Matrix())
}

// Subtract undoes Add.  With a camera transform, this maps world space to
// view space.
func (p Polygon) Subtract(t *Transform) Polygon {
	return p.Transformed(t.InverseMatrix())
}
