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
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/internal/logging"
)

// SurfaceBorder is the number of extra texels added on each side of a
// surface, so that lookups slightly outside the polygon stay inside the
// buffer.
const SurfaceBorder = 1

var lastSurfaceID atomic.Uint64

// Surface is the lit texture of one polygon.
//
// The surface covers the texel-aligned bounding box of the polygon in
// texture space, plus SurfaceBorder texels on each side.  The buffer is
// built on first use.  It can be dropped with Clear, or be held by a
// Cache which may evict it; in both cases it is rebuilt when needed.
type Surface struct {
	texture  *ShadedTexture
	lighting *Lighting
	normal   mgl64.Vec3

	// bounds is the area covered by the buffer.  Its origin is at the
	// integer texture position (su, sv).
	bounds geom3d.Rect3
	su, sv int
	width  int
	height int

	// shadeBounds starts ShadeRes-SurfaceBorder texels before bounds in
	// both directions, so that surface texel x lies at shade grid
	// position x+ShadeRes-SurfaceBorder.
	shadeBounds geom3d.Rect3
	shadeMap    *ShadeMap

	id    uint64
	img   *image.RGBA
	cache *Cache
	dirty bool
}

// NewSurface returns the surface of poly, textured with texture placed
// at textureBounds and lit by lighting.  The shade map is computed
// immediately; the buffer is built on first use.
func NewSurface(texture *ShadedTexture, textureBounds geom3d.Rect3, poly geom3d.Polygon, lighting *Lighting) (*Surface, error) {
	if texture == nil {
		return nil, ErrMissingTexture
	}
	if lighting == nil {
		return nil, ErrMissingLights
	}
	normal := poly.Normal()
	if normal == (mgl64.Vec3{}) {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegeneratePolygon, poly.Len())
	}

	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, p := range poly.Vertices {
		u, v := textureBounds.Coords(p)
		minU = min(minU, u)
		maxU = max(maxU, u)
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	if math.IsNaN(minU+maxU+minV+maxV) || math.IsInf(minU+maxU+minV+maxV, 0) {
		return nil, fmt.Errorf("%w: invalid texture coordinates", ErrDegeneratePolygon)
	}

	u0 := int(math.Floor(minU))
	v0 := int(math.Floor(minV))
	s := &Surface{
		texture:  texture,
		lighting: lighting,
		normal:   normal,
		su:       u0 - SurfaceBorder,
		sv:       v0 - SurfaceBorder,
		width:    int(math.Ceil(maxU)) - u0 + 2*SurfaceBorder,
		height:   int(math.Ceil(maxV)) - v0 + 2*SurfaceBorder,
		id:       lastSurfaceID.Add(1),
	}

	s.bounds = geom3d.Rect3{
		Origin: textureBounds.Point(float64(s.su), float64(s.sv)),
		U:      textureBounds.U,
		V:      textureBounds.V,
		Width:  float64(s.width),
		Height: float64(s.height),
	}
	const lead = ShadeRes - SurfaceBorder
	s.shadeBounds = geom3d.Rect3{
		Origin: s.bounds.Point(-lead, -lead),
		U:      s.bounds.U,
		V:      s.bounds.V,
		Width:  float64(s.width + lead),
		Height: float64(s.height + lead),
	}

	var err error
	s.shadeMap, err = BuildShadeMap(s.shadeBounds, s.normal, lighting)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// TextureBoundsFor returns texture bounds for a w×h texture laid out on
// the plane of poly, with texture origin at the first vertex and the
// texture u direction pointing along the first edge.  One texel
// corresponds to one unit of length.
func TextureBoundsFor(poly geom3d.Polygon, w, h int) (geom3d.Rect3, error) {
	n := poly.Normal()
	if n == (mgl64.Vec3{}) {
		return geom3d.Rect3{}, fmt.Errorf("%w: %d vertices", ErrDegeneratePolygon, poly.Len())
	}
	u := poly.Vertices[1].Sub(poly.Vertices[0]).Normalize()
	v := u.Cross(n)
	return geom3d.Rect3{
		Origin: poly.Vertices[0],
		U:      u,
		V:      v,
		Width:  float64(w),
		Height: float64(h),
	}, nil
}

// Bounds returns the rectangle covered by the surface buffer.
func (s *Surface) Bounds() geom3d.Rect3 {
	return s.bounds
}

// Origin returns the texture coordinates of the top-left texel of the
// surface buffer.
func (s *Surface) Origin() (su, sv int) {
	return s.su, s.sv
}

// Size returns the size of the surface buffer in texels.
func (s *Surface) Size() (w, h int) {
	return s.width, s.height
}

// ShadeMap returns the shade map of the surface.
func (s *Surface) ShadeMap() *ShadeMap {
	return s.shadeMap
}

// SetLighting changes the lighting of the surface.  The shade map and
// buffer are rebuilt on next use.
func (s *Surface) SetLighting(lighting *Lighting) {
	s.lighting = lighting
	s.dirty = true
}

// SetCache moves the buffer into c.  After this, the surface only keeps
// its buffer as long as the cache does.  Passing nil detaches the surface
// from its cache.
func (s *Surface) SetCache(c *Cache) {
	if s.cache != nil {
		s.cache.Evict(s.id)
	}
	s.cache = c
	s.img = nil
}

// Clear drops the surface buffer.
func (s *Surface) Clear() {
	s.img = nil
	if s.cache != nil {
		s.cache.Evict(s.id)
	}
}

// IsCleared reports whether the buffer needs to be rebuilt before use.
func (s *Surface) IsCleared() bool {
	if s.dirty {
		return true
	}
	if s.cache != nil {
		return !s.cache.has(s.id)
	}
	return s.img == nil
}

// Image returns the surface buffer, building it if needed.
func (s *Surface) Image() (*image.RGBA, error) {
	if s.dirty {
		if err := s.relight(); err != nil {
			return nil, err
		}
	}
	if s.cache != nil {
		return s.cache.GetOrBuild(s.id, s.build)
	}
	if s.img == nil {
		img, err := s.build()
		if err != nil {
			return nil, err
		}
		s.img = img
	}
	return s.img, nil
}

// ColorAt returns texel (x, y) of the surface buffer, where (0, 0) is the
// top-left texel.  Coordinates outside the buffer are clamped to the
// nearest edge.
func (s *Surface) ColorAt(x, y int) (color.RGBA, error) {
	img, err := s.Image()
	if err != nil {
		return color.RGBA{}, err
	}
	x = min(max(x, 0), s.width-1)
	y = min(max(y, 0), s.height-1)
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
}

// Build computes a new surface buffer from the texture and the shade map,
// recomputing the shade map first if the lighting has changed.
// The result does not replace the buffer returned by Image.
func (s *Surface) Build() (*image.RGBA, error) {
	if s.dirty {
		if err := s.relight(); err != nil {
			return nil, err
		}
	}
	return s.build()
}

// build must not touch the cache, since it runs under the cache lock.
func (s *Surface) build() (*image.RGBA, error) {
	if s.texture == nil {
		return nil, ErrMissingTexture
	}
	if s.lighting == nil || s.shadeMap == nil {
		return nil, ErrMissingLights
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := range s.height {
		s.texture.SetCurrentRow(s.sv + y)
		gv := y + ShadeRes - SurfaceBorder
		row := img.Pix[y*img.Stride : y*img.Stride+4*s.width]

		// The first run ends at the first shade block boundary, all later
		// runs cover one full block.
		x := 0
		run := SurfaceBorder
		for x < s.width {
			end := min(x+run, s.width)
			shade, inc := s.shadeMap.interpolate(x+ShadeRes-SurfaceBorder, gv)
			for ; x < end; x++ {
				c := s.texture.ColorCurrentRow(s.su+x, shade>>(2*ShadeResBits))
				row[4*x] = c.R
				row[4*x+1] = c.G
				row[4*x+2] = c.B
				row[4*x+3] = c.A
				shade += inc
			}
			run = ShadeRes
		}
	}

	logging.Logger().Debug("surface built",
		"id", s.id, "width", s.width, "height", s.height)
	return img, nil
}

// relight recomputes the shade map after a lighting change.
func (s *Surface) relight() error {
	if s.lighting == nil {
		return ErrMissingLights
	}
	m, err := BuildShadeMap(s.shadeBounds, s.normal, s.lighting)
	if err != nil {
		return err
	}
	s.shadeMap = m
	s.dirty = false
	s.Clear()
	return nil
}
