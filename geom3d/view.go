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
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// View is a pinhole camera which projects view-space points onto a screen
// rectangle.  Screen y coordinates grow downwards.
type View struct {
	// Screen is the output area in pixels.
	Screen rect.Rect

	// Angle is the horizontal field of view in radians.
	Angle float64
}

// NewView returns a view for the given screen area and horizontal field of
// view.
func NewView(screen rect.Rect, angle float64) *View {
	return &View{Screen: screen, Angle: angle}
}

// Distance returns the distance from the eye to the projection plane,
// in pixels.
func (v *View) Distance() float64 {
	w := v.Screen.URx - v.Screen.LLx
	return w / 2 / math.Tan(v.Angle/2)
}

func (v *View) center() (float64, float64) {
	return (v.Screen.LLx + v.Screen.URx) / 2, (v.Screen.LLy + v.Screen.URy) / 2
}

// Project maps a view-space point to screen coordinates.  The returned
// depth is the distance in front of the eye; points with depth <= 0 cannot
// be projected meaningfully.
func (v *View) Project(p mgl64.Vec3) (vec.Vec2, float64) {
	cx, cy := v.center()
	d := v.Distance()
	depth := -p[2]
	return vec.Vec2{
		X: cx + d*p[0]/depth,
		Y: cy - d*p[1]/depth,
	}, depth
}

// Ray returns the view-space direction of the line of sight through the
// screen point (x, y).  The ray meets the projection plane at depth
// Distance().
func (v *View) Ray(x, y float64) mgl64.Vec3 {
	cx, cy := v.center()
	return mgl64.Vec3{x - cx, cy - y, -v.Distance()}
}
