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

// Package geom3d provides the 3D geometry used by the renderer: rigid
// transforms with movement, polygons, texture-space rectangles and the
// pinhole view which projects view-space points onto the screen.
//
// Vectors and matrices are the types from
// github.com/go-gl/mathgl/mgl64.  View space has the camera at the origin,
// looking along the negative z axis, with y pointing up.
package geom3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an object in the world.  Points are scaled first, then
// rotated about the x, y and z axes (in this order), then translated.
type Transform struct {
	Location mgl64.Vec3

	// AngleX, AngleY and AngleZ are rotation angles in radians.
	AngleX, AngleY, AngleZ float64

	// Scale is a uniform scale factor.  Zero is treated as 1.
	Scale float64
}

// Transformable is implemented by geometry which can be mapped through a
// homogeneous matrix.  Transformed returns a new value and leaves the
// receiver unchanged.
type Transformable[T any] interface {
	Transformed(m mgl64.Mat4) T
}

// TransformAll maps every element of items through m.
func TransformAll[T Transformable[T]](items []T, m mgl64.Mat4) []T {
	res := make([]T, len(items))
	for i, item := range items {
		res[i] = item.Transformed(m)
	}
	return res
}

func (t *Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Matrix returns the matrix which maps object space to world space.
func (t *Transform) Matrix() mgl64.Mat4 {
	s := t.scale()
	return mgl64.Translate3D(t.Location[0], t.Location[1], t.Location[2]).
		Mul4(mgl64.HomogRotate3DZ(t.AngleZ)).
		Mul4(mgl64.HomogRotate3DY(t.AngleY)).
		Mul4(mgl64.HomogRotate3DX(t.AngleX)).
		Mul4(mgl64.Scale3D(s, s, s))
}

// InverseMatrix returns the matrix which maps world space to object space.
// For a camera transform, this is the world-to-view matrix.
func (t *Transform) InverseMatrix() mgl64.Mat4 {
	s := 1 / t.scale()
	return mgl64.Scale3D(s, s, s).
		Mul4(mgl64.HomogRotate3DX(-t.AngleX)).
		Mul4(mgl64.HomogRotate3DY(-t.AngleY)).
		Mul4(mgl64.HomogRotate3DZ(-t.AngleZ)).
		Mul4(mgl64.Translate3D(-t.Location[0], -t.Location[1], -t.Location[2]))
}

// RotateAngle adds the given angles to the current rotation.
func (t *Transform) RotateAngle(dx, dy, dz float64) {
	t.AngleX += dx
	t.AngleY += dy
	t.AngleZ += dz
}

// Apply maps a point from object space to world space.
func (t *Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.Matrix())
}

// normalizeAngle maps an angle into the interval [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
