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

package render3d

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/shade"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// newTestRenderer returns a 64×64 renderer with a 90° field of view, so
// that the projection plane is at distance 32.
func newTestRenderer() *Renderer {
	view := geom3d.NewView(rect.Rect{URx: 64, URy: 64}, math.Pi/2)
	return NewRenderer(view)
}

// square returns a square with side 2h at depth z, centred on the view
// axis and facing the camera.
func square(h, z float64) geom3d.Polygon {
	return geom3d.NewPolygon(
		mgl64.Vec3{-h, -h, z},
		mgl64.Vec3{h, -h, z},
		mgl64.Vec3{h, h, z},
		mgl64.Vec3{-h, h, z},
	)
}

func reversed(p geom3d.Polygon) geom3d.Polygon {
	var v []mgl64.Vec3
	for i := len(p.Vertices) - 1; i >= 0; i-- {
		v = append(v, p.Vertices[i])
	}
	return geom3d.NewPolygon(v...)
}

func TestRenderSolidSquare(t *testing.T) {
	r := newTestRenderer()
	err := r.Draw(Face{Polygon: square(5, -10), Color: red})
	if err != nil {
		t.Fatal(err)
	}

	// the square covers x, y in [16, 48)
	img := r.Image()
	for y := range 64 {
		for x := range 64 {
			inside := x >= 16 && x < 48 && y >= 16 && y < 48
			want := r.Background
			if inside {
				want = red
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderBackfaceCulled(t *testing.T) {
	r := newTestRenderer()
	err := r.Draw(Face{Polygon: reversed(square(5, -10)), Color: red})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Image().RGBAAt(32, 32); got != r.Background {
		t.Errorf("back face drawn: %v", got)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	near := Face{Polygon: square(2, -5), Color: red}
	far := Face{Polygon: square(10, -10), Color: blue}

	for _, order := range [][]Face{{near, far}, {far, near}} {
		r := newTestRenderer()
		if err := r.Draw(order...); err != nil {
			t.Fatal(err)
		}
		img := r.Image()
		if got := img.RGBAAt(32, 32); got != red {
			t.Errorf("centre pixel %v, want red", got)
		}
		if got := img.RGBAAt(8, 8); got != blue {
			t.Errorf("outer pixel %v, want blue", got)
		}
	}
}

func TestRenderBehindCamera(t *testing.T) {
	r := newTestRenderer()
	behind := Face{Polygon: square(5, 3), Color: blue}
	crossing := Face{
		Polygon: geom3d.NewPolygon(
			mgl64.Vec3{-5, -5, -10}, mgl64.Vec3{5, -5, -10}, mgl64.Vec3{0, 5, 2},
		),
		Color: blue,
	}
	good := Face{Polygon: square(5, -10), Color: red}

	err := r.Draw(behind, good, crossing)
	if !errors.Is(err, ErrBehindCamera) {
		t.Fatalf("got %v, want ErrBehindCamera", err)
	}
	if got := r.Image().RGBAAt(32, 32); got != red {
		t.Errorf("other faces not drawn: centre pixel %v", got)
	}
}

func TestRenderCamera(t *testing.T) {
	r := newTestRenderer()
	// move the camera back and turn it around, so that it looks along +z
	r.Camera = geom3d.Transform{Location: mgl64.Vec3{0, 0, -20}, AngleY: math.Pi}

	// a square at z=-10 facing -z, seen from the camera at distance 10
	err := r.Draw(Face{Polygon: reversed(square(5, -10)), Color: red})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Image().RGBAAt(32, 32); got != red {
		t.Errorf("centre pixel %v, want red", got)
	}
	if got := r.Image().RGBAAt(10, 10); got != r.Background {
		t.Errorf("corner pixel %v, want background", got)
	}
}

func TestRenderBegin(t *testing.T) {
	r := newTestRenderer()
	if err := r.Draw(Face{Polygon: square(5, -10), Color: red}); err != nil {
		t.Fatal(err)
	}
	r.Background = blue
	r.Begin()
	if got := r.Image().RGBAAt(32, 32); got != blue {
		t.Errorf("centre pixel %v after Begin", got)
	}

	// the depth buffer is cleared as well
	if err := r.Draw(Face{Polygon: square(5, -50), Color: red}); err != nil {
		t.Fatal(err)
	}
	if got := r.Image().RGBAAt(32, 32); got != red {
		t.Errorf("centre pixel %v, want red", got)
	}
}

func checker(n, f int, c0, c1 color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n*f, n*f))
	for y := range n * f {
		for x := range n * f {
			if (x/f+y/f)%2 == 0 {
				img.SetRGBA(x, y, c0)
			} else {
				img.SetRGBA(x, y, c1)
			}
		}
	}
	return img
}

func TestRenderTextured(t *testing.T) {
	tex, err := shade.NewShadedTexture(checker(2, 5, red, blue))
	if err != nil {
		t.Fatal(err)
	}
	poly := square(5, -10)
	bounds, err := shade.TextureBoundsFor(poly, tex.Width(), tex.Height())
	if err != nil {
		t.Fatal(err)
	}
	surf, err := shade.NewSurface(tex, bounds, poly, &shade.Lighting{Ambient: 1})
	if err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer()
	if err := r.Draw(Face{Polygon: poly, Surface: surf}); err != nil {
		t.Fatal(err)
	}

	// Each quarter of the square shows one checkerboard field.
	img := r.Image()
	topLeft := img.RGBAAt(24, 24)
	topRight := img.RGBAAt(40, 24)
	bottomLeft := img.RGBAAt(24, 40)
	bottomRight := img.RGBAAt(40, 40)
	if topLeft != red {
		t.Errorf("top left %v, want red", topLeft)
	}
	if topRight != blue || bottomLeft != blue || bottomRight != red {
		t.Errorf("quarters %v %v %v %v", topLeft, topRight, bottomLeft, bottomRight)
	}
}

func TestRenderPerspectiveTexture(t *testing.T) {
	// A floor receding into the distance: texture rows further away must
	// be compressed on the screen.
	tex, err := shade.NewShadedTexture(checker(8, 4, red, blue))
	if err != nil {
		t.Fatal(err)
	}
	poly := geom3d.NewPolygon(
		mgl64.Vec3{-16, -4, -4},
		mgl64.Vec3{16, -4, -4},
		mgl64.Vec3{16, -4, -36},
		mgl64.Vec3{-16, -4, -36},
	)
	bounds, err := shade.TextureBoundsFor(poly, tex.Width(), tex.Height())
	if err != nil {
		t.Fatal(err)
	}
	surf, err := shade.NewSurface(tex, bounds, poly, &shade.Lighting{Ambient: 1})
	if err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer()
	if err := r.Draw(Face{Polygon: poly, Surface: surf}); err != nil {
		t.Fatal(err)
	}

	// count colour changes down the centre column, in the near and the
	// far half of the floor
	img := r.Image()
	changes := func(y0, y1 int) int {
		n := 0
		for y := y0 + 1; y < y1; y++ {
			if img.RGBAAt(32, y) != img.RGBAAt(32, y-1) {
				n++
			}
		}
		return n
	}
	// the floor spans rows 35.5 (far edge) to 64 (near edge, clipped)
	far, near := changes(36, 46), changes(54, 64)
	if far <= near {
		t.Errorf("far rows have %d colour changes, near rows %d", far, near)
	}
}

func TestRenderSurfaceError(t *testing.T) {
	tex, err := shade.NewShadedTexture(checker(2, 5, red, blue))
	if err != nil {
		t.Fatal(err)
	}
	poly := square(5, -10)
	bounds, _ := shade.TextureBoundsFor(poly, 10, 10)
	surf, err := shade.NewSurface(tex, bounds, poly, &shade.Lighting{Ambient: 1})
	if err != nil {
		t.Fatal(err)
	}
	surf.SetLighting(nil)

	r := newTestRenderer()
	err = r.Draw(Face{Polygon: poly, Surface: surf})
	if !errors.Is(err, shade.ErrMissingLights) {
		t.Errorf("got %v, want ErrMissingLights", err)
	}
}
