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
)

// checker returns an n×n checkerboard with fields of f×f pixels.
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

// bricks returns a 32×32 tile of a brick wall.
func bricks() *image.RGBA {
	brick := color.RGBA{R: 170, G: 74, B: 44, A: 255}
	mortar := color.RGBA{R: 200, G: 200, B: 190, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			shift := 0
			if y/8%2 == 1 {
				shift = 8
			}
			if y%8 == 7 || (x+shift)%16 == 15 {
				img.SetRGBA(x, y, mortar)
			} else {
				img.SetRGBA(x, y, brick)
			}
		}
	}
	return img
}

// gradient returns a horizontal gradient from c0 to c1.
func gradient(w, h int, c0, c1 color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		c := color.RGBA{
			R: mix(c0.R, c1.R, x, w-1),
			G: mix(c0.G, c1.G, x, w-1),
			B: mix(c0.B, c1.B, x, w-1),
			A: 255,
		}
		for y := range h {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mix(a, b uint8, i, n int) uint8 {
	if n <= 0 {
		return a
	}
	return uint8((int(a)*(n-i) + int(b)*i) / n)
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	grey  = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	red   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	blue  = color.RGBA{R: 40, G: 60, B: 220, A: 255}
	sky   = color.RGBA{R: 30, G: 40, B: 70, A: 255}
)
