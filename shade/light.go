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

// Package shade builds pre-lit texture buffers for polygons.
//
// Lighting is computed on a coarse grid of shade samples, one sample per
// [ShadeRes]×[ShadeRes] block of texels.  A [Surface] combines this grid
// with a [ShadedTexture], interpolating the shade level across each block,
// and stores the result as an RGBA image which can be evicted from a
// [Cache] and rebuilt on demand.
package shade

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrMissingLights is returned when a shade map or surface is built
	// without a lighting environment.
	ErrMissingLights = errors.New("shade: no lighting")

	// ErrMissingTexture is returned when a surface is built without a
	// texture.
	ErrMissingTexture = errors.New("shade: no texture")

	// ErrEmptyTexture is returned when a texture is created from an image
	// with no pixels.
	ErrEmptyTexture = errors.New("shade: empty texture image")

	// ErrDegeneratePolygon is returned for polygons which have fewer than
	// three vertices or no well-defined normal.
	ErrDegeneratePolygon = errors.New("shade: degenerate polygon")
)

// MinLightDistance is the distance below which a light is treated as
// touching the surface.  Inside this distance the angle of incidence is
// ignored, and the inverse-square model uses MinLightDistance instead of
// the true distance.
const MinLightDistance = 1.0

// Falloff selects how the intensity of a point light decreases with
// distance.
type Falloff int

const (
	// FalloffLinear scales the intensity by (F-d)/(F+d), where F is the
	// falloff distance of the light.  The light has no effect beyond F.
	FalloffLinear Falloff = iota

	// FalloffInverseSquare divides the intensity by the squared distance.
	FalloffInverseSquare
)

func (f Falloff) String() string {
	switch f {
	case FalloffLinear:
		return "linear"
	case FalloffInverseSquare:
		return "inverse-square"
	default:
		return "unknown"
	}
}

// PointLight is a light source which emits equally in all directions.
type PointLight struct {
	Position mgl64.Vec3

	// Intensity is the brightness at distance zero, normally in [0, 1].
	Intensity float64

	// Distance is the falloff distance for [FalloffLinear].  If this is
	// zero or negative, the light does not weaken with distance.
	Distance float64

	Falloff Falloff
}

// NewPointLight returns a light with linear falloff.
func NewPointLight(pos mgl64.Vec3, intensity, distance float64) *PointLight {
	return &PointLight{
		Position:  pos,
		Intensity: intensity,
		Distance:  distance,
	}
}

// Attenuation returns the intensity of the light at distance d.
func (l *PointLight) Attenuation(d float64) float64 {
	switch l.Falloff {
	case FalloffInverseSquare:
		d = max(d, MinLightDistance)
		return l.Intensity / (d * d)
	default:
		if l.Distance <= 0 {
			return l.Intensity
		}
		if d >= l.Distance {
			return 0
		}
		return l.Intensity * (l.Distance - d) / (l.Distance + d)
	}
}

// IntensityAt returns the light arriving at point p of a surface with unit
// normal n, clamped to [0, 1].
func (l *PointLight) IntensityAt(p, n mgl64.Vec3) float64 {
	dir := l.Position.Sub(p)
	d := dir.Len()
	x := l.Attenuation(d)
	if d >= MinLightDistance {
		x *= max(0, n.Dot(dir)/d)
	}
	return clamp01(x)
}

// Lighting is the lighting environment of a scene.
type Lighting struct {
	Lights []*PointLight

	// Ambient is the light level of surfaces which no light reaches.
	Ambient float64
}

// IntensityAt returns the total light level at point p of a surface with
// unit normal n, in the range [0, 1].
func (l *Lighting) IntensityAt(p, n mgl64.Vec3) float64 {
	var sum float64
	for _, light := range l.Lights {
		sum += light.IntensityAt(p, n)
	}
	return clamp01(clamp01(sum) + l.Ambient)
}

// Level converts a light level in [0, 1] into a shade level.
func Level(intensity float64) byte {
	return byte(math.Round(clamp01(intensity) * MaxShadeLevel))
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return min(x, 1)
}
