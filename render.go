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

// Package render3d is a software renderer for textured, pre-lit polygons.
//
// Faces are transformed into view space, culled when they face away from
// the camera and converted into horizontal pixel spans by the scanline
// rasterizer in package raster.  Each pixel is coloured from the face's
// shaded surface (package shade), using perspective-correct texture
// coordinates, and a depth buffer resolves overlapping faces.
package render3d

//go:generate go run ./testcases/export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/internal/logging"
	"seehuhn.de/go/render3d/raster"
	"seehuhn.de/go/render3d/shade"
)

// ErrBehindCamera is returned for faces with vertices closer to the eye
// than the near plane.  Such faces are not drawn; there is no clipping.
var ErrBehindCamera = errors.New("render3d: polygon behind the camera")

// Face is a polygon to be drawn.
type Face struct {
	// Polygon is the outline of the face in world coordinates.  Only the
	// side from which the vertices appear counter-clockwise is drawn.
	Polygon geom3d.Polygon

	// Surface, if set, gives the lit texture of the face.  Surface bounds
	// must be in the same coordinate system as Polygon.
	Surface *shade.Surface

	// Color is used for faces without a surface.
	Color color.RGBA
}

// Renderer draws faces into an RGBA image.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	View   *geom3d.View
	Camera geom3d.Transform

	// Background is the colour used by Begin to clear the frame.
	Background color.RGBA

	// Near is the smallest depth at which vertices may appear.
	// The default is 1.
	Near float64

	img  *image.RGBA
	zbuf []float64
	rast *raster.Rasterizer
}

// NewRenderer returns a renderer for the given view.  The frame covers
// the screen area of the view, with pixel boundaries at integer
// coordinates.
func NewRenderer(view *geom3d.View) *Renderer {
	s := view.Screen
	bounds := image.Rect(
		int(math.Floor(s.LLx)), int(math.Floor(s.LLy)),
		int(math.Ceil(s.URx)), int(math.Ceil(s.URy)),
	)
	r := &Renderer{
		View:       view,
		Background: color.RGBA{A: 255},
		Near:       1,
		img:        image.NewRGBA(bounds),
		zbuf:       make([]float64, bounds.Dx()*bounds.Dy()),
		rast:       raster.NewRasterizer(view.Screen),
	}
	r.Begin()
	return r
}

// Begin starts a new frame by clearing the image and the depth buffer.
func (r *Renderer) Begin() {
	bg := r.Background
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = bg.R
		pix[i+1] = bg.G
		pix[i+2] = bg.B
		pix[i+3] = bg.A
	}
	for i := range r.zbuf {
		r.zbuf[i] = math.Inf(1)
	}
}

// Image returns the frame.  The image is reused by later frames.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Draw draws the given faces into the current frame.  Faces which cannot
// be drawn are skipped; the errors for all skipped faces are joined into
// the return value.  Back faces are skipped silently.
func (r *Renderer) Draw(faces ...Face) error {
	toView := r.Camera.InverseMatrix()
	var errs []error
	for i := range faces {
		err := r.drawFace(&faces[i], toView)
		if err != nil {
			logging.Logger().Warn("face not drawn", "face", i, "error", err)
			errs = append(errs, fmt.Errorf("face %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) drawFace(f *Face, toView mgl64.Mat4) error {
	poly := f.Polygon.Transformed(toView)
	if poly.Len() < 3 {
		return raster.ErrTooFewVertices
	}
	for _, v := range poly.Vertices {
		if -v[2] < r.Near {
			return ErrBehindCamera
		}
	}
	if !poly.IsFacing(mgl64.Vec3{}) {
		return nil
	}
	n := poly.Normal()
	if n == (mgl64.Vec3{}) {
		return nil
	}

	// Points on the line of sight through a pixel are t*ray, where the
	// ray has length Distance() in z.  The plane of the face is p·n = k.
	k := poly.Vertices[0].Dot(n)
	dist := r.View.Distance()

	var tex texels
	if f.Surface != nil {
		if err := tex.init(f.Surface, toView); err != nil {
			return err
		}
	}

	b := r.img.Rect
	stride := b.Dx()
	emit := func(y, xStart, xEnd int) {
		row := (y - b.Min.Y) * stride
		for x := xStart; x < xEnd; x++ {
			ray := r.View.Ray(float64(x)+0.5, float64(y)+0.5)
			rn := ray.Dot(n)
			if rn == 0 {
				continue
			}
			depth := k / rn * dist
			zi := row + x - b.Min.X
			if !(depth < r.zbuf[zi]) {
				continue
			}
			r.zbuf[zi] = depth

			c := f.Color
			if tex.img != nil {
				c = tex.at(ray)
			}
			i := r.img.PixOffset(x, y)
			p := r.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
	return r.rast.FillPolygon(poly.Vertices, r.View, emit)
}

// texels maps lines of sight to texels of a surface buffer.
type texels struct {
	img           *image.RGBA
	a, b, c       mgl64.Vec3
	width, height int
}

func (t *texels) init(s *shade.Surface, toView mgl64.Mat4) error {
	img, err := s.Image()
	if err != nil {
		return err
	}
	bounds := s.Bounds().Transformed(toView)
	o, u, v := bounds.Origin, bounds.U, bounds.V

	t.img = img
	t.a = v.Cross(o)
	t.b = o.Cross(u)
	t.c = u.Cross(v)
	t.width, t.height = s.Size()
	return nil
}

// at returns the texel seen along ray.
func (t *texels) at(ray mgl64.Vec3) color.RGBA {
	dc := ray.Dot(t.c)
	if dc == 0 {
		return color.RGBA{}
	}
	u := ray.Dot(t.a) / dc
	v := ray.Dot(t.b) / dc
	x := clampInt(u, t.width)
	y := clampInt(v, t.height)
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func clampInt(x float64, n int) int {
	switch {
	case !(x >= 0):
		return 0
	case x >= float64(n):
		return n - 1
	default:
		return int(x)
	}
}
