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

package shade

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/internal/logging"
)

const (
	// ShadeResBits is the base-2 logarithm of ShadeRes.
	ShadeResBits = 4

	// ShadeRes is the size of a shade block in texels.  The shade map
	// holds one sample for every ShadeRes×ShadeRes block.
	ShadeRes = 1 << ShadeResBits

	shadeResMask = ShadeRes - 1

	// ShadeLevels is the number of distinct shade levels.
	ShadeLevels = 64

	// MaxShadeLevel is the shade level of a fully lit texel.
	MaxShadeLevel = ShadeLevels - 1
)

// ShadeMap is a grid of shade levels in the range [0, MaxShadeLevel].
// Sample (i, j) describes the light at texture position
// (i*ShadeRes, j*ShadeRes) relative to the origin of the rectangle the
// map was built for.
type ShadeMap struct {
	Width, Height int
	Levels        []byte
}

// BuildShadeMap samples the lighting over the rectangle bounds, which lies
// in a plane with unit normal vector normal.  The grid covers bounds with
// one extra row and column, so that every texel in bounds has four
// surrounding samples.
func BuildShadeMap(bounds geom3d.Rect3, normal mgl64.Vec3, lighting *Lighting) (*ShadeMap, error) {
	if lighting == nil {
		return nil, ErrMissingLights
	}
	if !(bounds.Width >= 0 && bounds.Height >= 0) {
		return nil, fmt.Errorf("shade: invalid bounds %gx%g", bounds.Width, bounds.Height)
	}

	w := int(math.Ceil(bounds.Width/ShadeRes)) + 1
	h := int(math.Ceil(bounds.Height/ShadeRes)) + 1
	m := &ShadeMap{
		Width:  w,
		Height: h,
		Levels: make([]byte, w*h),
	}
	for j := range h {
		for i := range w {
			p := bounds.Point(float64(i*ShadeRes), float64(j*ShadeRes))
			m.Levels[j*w+i] = Level(lighting.IntensityAt(p, normal))
		}
	}

	logging.Logger().Debug("shade map built",
		"width", w, "height", h, "lights", len(lighting.Lights))
	return m, nil
}

// At returns sample (i, j).
func (m *ShadeMap) At(i, j int) byte {
	return m.Levels[j*m.Width+i]
}

// interpolate returns the shade at grid position (gu, gv), measured in
// texels, as a fixed point number with 2*ShadeResBits fractional bits.
// The second return value is the change of the shade when gu increases by
// one texel, valid up to the end of the block.
func (m *ShadeMap) interpolate(gu, gv int) (shade, inc int) {
	fu := gu & shadeResMask
	fv := gv & shadeResMask
	off := gu>>ShadeResBits + (gv>>ShadeResBits)*m.Width

	s00 := (ShadeRes - fv) * int(m.Levels[off])
	s01 := fv * int(m.Levels[off+m.Width])
	s10 := (ShadeRes - fv) * int(m.Levels[off+1])
	s11 := fv * int(m.Levels[off+m.Width+1])

	shade = ShadeRes*ShadeRes/2 + (ShadeRes-fu)*(s00+s01) + fu*(s10+s11)
	inc = (s10 + s11) - (s00 + s01)
	return shade, inc
}
