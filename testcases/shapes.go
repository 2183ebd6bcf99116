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

package testcases

import (
	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
)

// quad returns a w×h rectangle in the plane z=0, centred at the origin
// and facing +z.
func quad(w, h float64) geom3d.Polygon {
	x, y := w/2, h/2
	return geom3d.NewPolygon(
		mgl64.Vec3{-x, -y, 0},
		mgl64.Vec3{x, -y, 0},
		mgl64.Vec3{x, y, 0},
		mgl64.Vec3{-x, y, 0},
	)
}

// floorTiles returns an n×n grid of square tiles of size s in the plane
// y=0, centred at the origin and facing +y.
func floorTiles(n int, s float64) []geom3d.Polygon {
	var res []geom3d.Polygon
	off := float64(n) * s / 2
	for i := range n {
		for j := range n {
			x0 := float64(i)*s - off
			z0 := float64(j)*s - off
			res = append(res, geom3d.NewPolygon(
				mgl64.Vec3{x0, 0, z0 + s},
				mgl64.Vec3{x0 + s, 0, z0 + s},
				mgl64.Vec3{x0 + s, 0, z0},
				mgl64.Vec3{x0, 0, z0},
			))
		}
	}
	return res
}

// cube returns the outward facing sides of a cube with edge length s,
// centred at the origin.
func cube(s float64) []geom3d.Polygon {
	h := s / 2
	return []geom3d.Polygon{
		geom3d.NewPolygon( // +z
			mgl64.Vec3{-h, -h, h}, mgl64.Vec3{h, -h, h},
			mgl64.Vec3{h, h, h}, mgl64.Vec3{-h, h, h}),
		geom3d.NewPolygon( // -z
			mgl64.Vec3{h, -h, -h}, mgl64.Vec3{-h, -h, -h},
			mgl64.Vec3{-h, h, -h}, mgl64.Vec3{h, h, -h}),
		geom3d.NewPolygon( // +x
			mgl64.Vec3{h, -h, h}, mgl64.Vec3{h, -h, -h},
			mgl64.Vec3{h, h, -h}, mgl64.Vec3{h, h, h}),
		geom3d.NewPolygon( // -x
			mgl64.Vec3{-h, -h, -h}, mgl64.Vec3{-h, -h, h},
			mgl64.Vec3{-h, h, h}, mgl64.Vec3{-h, h, -h}),
		geom3d.NewPolygon( // +y
			mgl64.Vec3{-h, h, h}, mgl64.Vec3{h, h, h},
			mgl64.Vec3{h, h, -h}, mgl64.Vec3{-h, h, -h}),
		geom3d.NewPolygon( // -y
			mgl64.Vec3{-h, -h, -h}, mgl64.Vec3{h, -h, -h},
			mgl64.Vec3{h, -h, h}, mgl64.Vec3{-h, -h, h}),
	}
}

// pyramid returns a square pyramid with base width w and height h,
// standing on the plane y=0.  The base is not included.
func pyramid(w, h float64) []geom3d.Polygon {
	b := w / 2
	top := mgl64.Vec3{0, h, 0}
	return []geom3d.Polygon{
		geom3d.NewPolygon(mgl64.Vec3{-b, 0, b}, mgl64.Vec3{b, 0, b}, top),
		geom3d.NewPolygon(mgl64.Vec3{b, 0, b}, mgl64.Vec3{b, 0, -b}, top),
		geom3d.NewPolygon(mgl64.Vec3{b, 0, -b}, mgl64.Vec3{-b, 0, -b}, top),
		geom3d.NewPolygon(mgl64.Vec3{-b, 0, -b}, mgl64.Vec3{-b, 0, b}, top),
	}
}
