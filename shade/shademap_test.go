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
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/render3d/geom3d"
)

// floor is the plane z=0, facing +z, with texture v pointing down the
// y axis.
var floor = geom3d.Rect3{
	U: mgl64.Vec3{1, 0, 0},
	V: mgl64.Vec3{0, -1, 0},
}

func TestAttenuation(t *testing.T) {
	linear := &PointLight{Intensity: 0.8, Distance: 100}
	square := &PointLight{Intensity: 0.8, Falloff: FalloffInverseSquare}
	constant := &PointLight{Intensity: 0.8}

	for _, l := range []*PointLight{linear, square, constant} {
		t.Run(l.Falloff.String(), func(t *testing.T) {
			if a := l.Attenuation(0); a != 0.8 {
				t.Errorf("attenuation at 0 = %g, want 0.8", a)
			}
			prev := l.Attenuation(0)
			for d := 0.25; d < 200; d += 0.25 {
				a := l.Attenuation(d)
				if a > prev {
					t.Fatalf("attenuation increases at d=%g", d)
				}
				prev = a
			}
		})
	}

	if a := linear.Attenuation(100); a != 0 {
		t.Errorf("linear attenuation at falloff distance = %g", a)
	}
	if a := linear.Attenuation(50); math.Abs(a-0.8*50/150) > 1e-12 {
		t.Errorf("linear attenuation at 50 = %g", a)
	}
	if a := square.Attenuation(0.5); a != 0.8 {
		t.Errorf("inverse-square attenuation inside floor = %g", a)
	}
	if a := square.Attenuation(2); a != 0.2 {
		t.Errorf("inverse-square attenuation at 2 = %g", a)
	}
	if a := constant.Attenuation(1e6); a != 0.8 {
		t.Errorf("constant attenuation = %g", a)
	}
}

func TestLambert(t *testing.T) {
	n := mgl64.Vec3{0, 0, 1}
	l := NewPointLight(mgl64.Vec3{0, 0, 10}, 1, 0)

	if x := l.IntensityAt(mgl64.Vec3{}, n); x != 1 {
		t.Errorf("light straight above: %g", x)
	}
	if x := l.IntensityAt(mgl64.Vec3{10, 0, 0}, n); math.Abs(x-math.Sqrt(0.5)) > 1e-12 {
		t.Errorf("light at 45°: %g", x)
	}
	if x := l.IntensityAt(mgl64.Vec3{}, n.Mul(-1)); x != 0 {
		t.Errorf("light behind the surface: %g", x)
	}

	bright := &Lighting{
		Lights:  []*PointLight{l, l, l},
		Ambient: 0.5,
	}
	if x := bright.IntensityAt(mgl64.Vec3{}, n); x != 1 {
		t.Errorf("total intensity %g, want 1", x)
	}
}

func TestShadeMapSize(t *testing.T) {
	tests := []struct {
		w, h          float64
		wantW, wantH int
	}{
		{0, 0, 1, 1},
		{1, 1, 2, 2},
		{16, 16, 2, 2},
		{17, 32, 3, 3},
		{33, 16, 4, 2},
	}
	for _, tc := range tests {
		b := floor
		b.Width, b.Height = tc.w, tc.h
		m, err := BuildShadeMap(b, b.Normal(), &Lighting{Ambient: 1})
		if err != nil {
			t.Fatal(err)
		}
		if m.Width != tc.wantW || m.Height != tc.wantH {
			t.Errorf("%gx%g: got %dx%d, want %dx%d",
				tc.w, tc.h, m.Width, m.Height, tc.wantW, tc.wantH)
		}
		if len(m.Levels) != m.Width*m.Height {
			t.Errorf("%gx%g: %d levels", tc.w, tc.h, len(m.Levels))
		}
	}
}

func TestShadeMapMissingLights(t *testing.T) {
	b := floor
	b.Width, b.Height = 10, 10
	_, err := BuildShadeMap(b, b.Normal(), nil)
	if !errors.Is(err, ErrMissingLights) {
		t.Errorf("got %v, want ErrMissingLights", err)
	}
}

func TestShadeMapAmbient(t *testing.T) {
	b := floor
	b.Width, b.Height = 100, 50
	m, err := BuildShadeMap(b, b.Normal(), &Lighting{Ambient: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range m.Levels {
		if x != 32 {
			t.Fatalf("sample %d = %d, want 32", i, x)
		}
	}
}

func TestShadeMapPeak(t *testing.T) {
	b := floor
	b.Width, b.Height = 160, 160

	for _, height := range []float64{0, 0.5, 20} {
		light := NewPointLight(b.Point(32, 32).Add(mgl64.Vec3{0, 0, height}), 1, 300)
		m, err := BuildShadeMap(b, b.Normal(), &Lighting{Lights: []*PointLight{light}})
		if err != nil {
			t.Fatal(err)
		}

		want := Level(light.Attenuation(height))
		if got := m.At(2, 2); got != want {
			t.Errorf("height %g: peak %d, want %d", height, got, want)
		}
		for j := range m.Height {
			for i := range m.Width {
				if m.At(i, j) > want {
					t.Errorf("height %g: sample (%d,%d) = %d exceeds the peak", height, i, j, m.At(i, j))
				}
			}
		}

		// moving away from the light, along a row and along a column
		for k := 3; k < m.Width; k++ {
			if m.At(k, 2) > m.At(k-1, 2) || m.At(2, k) > m.At(2, k-1) {
				t.Errorf("height %g: shade increases at distance %d", height, k-2)
			}
		}
		if m.At(m.Width-1, 2) >= want {
			t.Errorf("height %g: no falloff", height)
		}
	}
}

func TestInterpolate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := &ShadeMap{Width: 3, Height: 3, Levels: make([]byte, 9)}
	for i := range m.Levels {
		m.Levels[i] = byte(rng.IntN(ShadeLevels))
	}

	const B = ShadeRes
	for bj := range 2 {
		for bi := range 2 {
			m00 := int(m.At(bi, bj))
			m10 := int(m.At(bi+1, bj))
			m01 := int(m.At(bi, bj+1))
			m11 := int(m.At(bi+1, bj+1))
			for fv := range B {
				gv := bj*B + fv
				shade, inc := m.interpolate(bi*B, gv)
				for fu := range B {
					want := (B-fu)*(B-fv)*m00 + fu*(B-fv)*m10 +
						(B-fu)*fv*m01 + fu*fv*m11 + B*B/2
					if shade != want {
						t.Fatalf("block (%d,%d) texel (%d,%d): shade %d, want %d",
							bi, bj, fu, fv, shade, want)
					}
					if direct, _ := m.interpolate(bi*B+fu, gv); direct != want {
						t.Fatalf("block (%d,%d) texel (%d,%d): direct %d, want %d",
							bi, bj, fu, fv, direct, want)
					}
					shade += inc
				}
			}
		}
	}

	// grid points reproduce the samples exactly
	for j := range 2 {
		for i := range 2 {
			shade, _ := m.interpolate(i*B, j*B)
			if level := shade >> (2 * ShadeResBits); level != int(m.At(i, j)) {
				t.Errorf("grid point (%d,%d): level %d, want %d", i, j, level, m.At(i, j))
			}
		}
	}
}
