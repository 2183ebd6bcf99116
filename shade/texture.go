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
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// shadeTable[level][c] is the colour component c darkened to the given
// shade level.
var shadeTable = func() *[ShadeLevels][256]uint8 {
	t := new([ShadeLevels][256]uint8)
	for level := range ShadeLevels {
		for c := range 256 {
			t[level][c] = uint8((c*level + MaxShadeLevel/2) / MaxShadeLevel)
		}
	}
	return t
}()

// ShadedTexture is a texture which can be looked up at any shade level.
// Texture coordinates wrap around in both directions.
//
// Lookups are done row by row: SetCurrentRow selects the row, and
// ColorCurrentRow reads texels from it.
type ShadedTexture struct {
	img *image.RGBA
	row []uint8
}

// NewShadedTexture returns a texture with the pixels of img.
func NewShadedTexture(img image.Image) (*ShadedTexture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyTexture
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return newShadedTexture(rgba), nil
}

// NewScaledTexture returns a texture of size w×h, showing img scaled with
// the given interpolator.  Use draw.NearestNeighbor to magnify small
// pixel-art textures without blurring them.
func NewScaledTexture(img image.Image, w, h int, scaler draw.Scaler) (*ShadedTexture, error) {
	if img.Bounds().Empty() || w <= 0 || h <= 0 {
		return nil, ErrEmptyTexture
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)
	return newShadedTexture(rgba), nil
}

func newShadedTexture(img *image.RGBA) *ShadedTexture {
	t := &ShadedTexture{img: img}
	t.SetCurrentRow(0)
	return t
}

// Width returns the width of the texture in texels.
func (t *ShadedTexture) Width() int {
	return t.img.Rect.Dx()
}

// Height returns the height of the texture in texels.
func (t *ShadedTexture) Height() int {
	return t.img.Rect.Dy()
}

// SetCurrentRow selects texture row v for subsequent calls to
// ColorCurrentRow.
func (t *ShadedTexture) SetCurrentRow(v int) {
	v = wrap(v, t.Height())
	start := v * t.img.Stride
	t.row = t.img.Pix[start : start+4*t.Width()]
}

// ColorCurrentRow returns texel u of the current row, darkened to the
// given shade level.
func (t *ShadedTexture) ColorCurrentRow(u, level int) color.RGBA {
	i := 4 * wrap(u, t.Width())
	p := t.row[i : i+4 : i+4]
	tab := &shadeTable[level]
	return color.RGBA{R: tab[p[0]], G: tab[p[1]], B: tab[p[2]], A: p[3]}
}

func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
