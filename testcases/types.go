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
	"image"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/shade"
)

// Scene defines a single rendering test.
type Scene struct {
	Name   string // lowercase a-z and _ only
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels

	// FieldOfView is the horizontal viewing angle in radians.
	// Zero means 75°.
	FieldOfView float64

	Camera     geom3d.Transform
	Background color.RGBA
	Lighting   shade.Lighting
	Objects    []Object
}

// Object is a group of polygons sharing a texture and a placement.
type Object struct {
	// Polygons are given in object coordinates.
	Polygons  []geom3d.Polygon
	Transform geom3d.Transform

	// Texture is mapped onto every polygon.  If this is nil, the polygons
	// are filled with Color and not lit.
	Texture image.Image
	Color   color.RGBA

	// Motion, if set, describes how the object moves over time.
	Motion *Motion
}

// Motion is a movement towards a target location, combined with a turn
// about the y axis.
type Motion struct {
	Target mgl64.Vec3
	Speed  float64 // units per second

	TurnTo    float64 // final AngleY in radians
	TurnSpeed float64 // radians per second
}

// Angle returns the field of view of the scene.
func (s *Scene) Angle() float64 {
	if s.FieldOfView == 0 {
		return 75 * math.Pi / 180
	}
	return s.FieldOfView
}

// Placement returns the transform of o at time t after the start of the
// scene.
func (o *Object) Placement(t time.Duration) geom3d.Transform {
	if o.Motion == nil || t <= 0 {
		return o.Transform
	}
	mt := geom3d.NewMovingTransform(o.Transform)
	mt.MoveTo(o.Motion.Target, o.Motion.Speed)
	mt.RotateYTo(o.Motion.TurnTo, o.Motion.TurnSpeed)
	mt.Update(t)
	return mt.Transform
}

// Duration returns the time until all objects in the scene have come to
// rest.
func (s *Scene) Duration() time.Duration {
	var d time.Duration
	for i := range s.Objects {
		m := s.Objects[i].Motion
		if m == nil {
			continue
		}
		mt := geom3d.NewMovingTransform(s.Objects[i].Transform)
		mt.MoveTo(m.Target, m.Speed)
		d = max(d, mt.RemainingMoveTime())
		if m.TurnSpeed > 0 {
			turn := math.Abs(math.Remainder(m.TurnTo-s.Objects[i].Transform.AngleY, 2*math.Pi))
			d = max(d, time.Duration(turn/m.TurnSpeed*float64(time.Second)))
		}
	}
	return d
}
