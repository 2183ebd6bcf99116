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
	"fmt"
	"image"
	"slices"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/render3d/geom3d"
	"seehuhn.de/go/render3d/internal/logging"
	"seehuhn.de/go/render3d/shade"
	"seehuhn.de/go/render3d/testcases"
)

// RenderScene renders a test scene as it appears at time t after the
// start of the scene.  If cache is not nil, surface buffers are built in
// the cache and evicted again before RenderScene returns.  Use a
// [SceneRenderer] to keep surfaces from one frame to the next.
func RenderScene(sc *testcases.Scene, t time.Duration, cache *shade.Cache) (*image.RGBA, error) {
	sr := NewSceneRenderer(sc, cache)
	defer sr.Release()
	return sr.Render(t)
}

// SceneRenderer renders the frames of one test scene.
//
// Surfaces are kept between frames.  A surface is replaced only when its
// polygon moves, and relit when the scene lighting changes, so that its
// buffer in the cache can be reused by later frames.
type SceneRenderer struct {
	Scene *testcases.Scene

	cache    *shade.Cache
	r        *Renderer
	textures []*shade.ShadedTexture
	surfaces map[faceKey]*sceneSurface
	lights   lightState
	frame    int
}

type faceKey struct {
	object, polygon int
}

type sceneSurface struct {
	world geom3d.Polygon
	surf  *shade.Surface
	frame int
}

// lightState records the lighting the surfaces were last built with.
type lightState struct {
	ambient float64
	lights  []shade.PointLight
}

func snapshotLights(l *shade.Lighting) lightState {
	s := lightState{ambient: l.Ambient}
	for _, light := range l.Lights {
		if light != nil {
			s.lights = append(s.lights, *light)
		}
	}
	return s
}

func (s lightState) equal(other lightState) bool {
	return s.ambient == other.ambient && slices.Equal(s.lights, other.lights)
}

// NewSceneRenderer returns a renderer for sc.  If cache is not nil, the
// surface buffers are kept in the cache.
func NewSceneRenderer(sc *testcases.Scene, cache *shade.Cache) *SceneRenderer {
	screen := rect.Rect{URx: float64(sc.Width), URy: float64(sc.Height)}
	return &SceneRenderer{
		Scene:    sc,
		cache:    cache,
		r:        NewRenderer(geom3d.NewView(screen, sc.Angle())),
		textures: make([]*shade.ShadedTexture, len(sc.Objects)),
		surfaces: make(map[faceKey]*sceneSurface),
		lights:   snapshotLights(&sc.Lighting),
	}
}

// Render draws the scene at time t.  The returned image is reused by the
// next call to Render.
func (sr *SceneRenderer) Render(t time.Duration) (*image.RGBA, error) {
	sc := sr.Scene
	sr.r.Camera = sc.Camera
	sr.r.Background = sc.Background
	sr.r.Begin()

	faces, err := sr.Faces(t)
	if err != nil {
		return nil, err
	}
	if err := sr.r.Draw(faces...); err != nil {
		return sr.r.Image(), fmt.Errorf("scene %q: %w", sc.Name, err)
	}
	return sr.r.Image(), nil
}

// Faces returns the faces of all objects in the scene at time t, in world
// coordinates, with surfaces lit by the scene lighting.  Surfaces of
// earlier frames which are no longer needed are released.
func (sr *SceneRenderer) Faces(t time.Duration) ([]Face, error) {
	sc := sr.Scene
	sr.frame++

	if lights := snapshotLights(&sc.Lighting); !lights.equal(sr.lights) {
		sr.lights = lights
		for _, s := range sr.surfaces {
			s.surf.SetLighting(&sc.Lighting)
		}
	}

	var faces []Face
	var errs []error
	for i := range sc.Objects {
		obj := &sc.Objects[i]
		placement := obj.Placement(t)

		tex, err := sr.texture(i)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", i, err))
			continue
		}

		for j, poly := range obj.Polygons {
			world := poly.Add(&placement)
			face := Face{Polygon: world, Color: obj.Color}
			if tex != nil {
				surf, err := sr.surface(faceKey{i, j}, tex, world)
				if err != nil {
					errs = append(errs, fmt.Errorf("object %d: %w", i, err))
					continue
				}
				face.Surface = surf
			}
			faces = append(faces, face)
		}
	}

	released := 0
	for key, s := range sr.surfaces {
		if s.frame != sr.frame {
			s.surf.SetCache(nil)
			delete(sr.surfaces, key)
			released++
		}
	}

	logging.Logger().Debug("scene prepared",
		"scene", sc.Name, "time", t, "faces", len(faces),
		"surfaces", len(sr.surfaces), "released", released)
	return faces, errors.Join(errs...)
}

// Release drops all surfaces and evicts their buffers from the cache.
func (sr *SceneRenderer) Release() {
	for key, s := range sr.surfaces {
		s.surf.SetCache(nil)
		delete(sr.surfaces, key)
	}
}

// texture returns the shaded texture of object i, or nil if the object
// has no texture.
func (sr *SceneRenderer) texture(i int) (*shade.ShadedTexture, error) {
	if sr.textures[i] != nil {
		return sr.textures[i], nil
	}
	img := sr.Scene.Objects[i].Texture
	if img == nil {
		return nil, nil
	}
	tex, err := shade.NewShadedTexture(img)
	if err != nil {
		return nil, err
	}
	sr.textures[i] = tex
	return tex, nil
}

// surface returns the surface for one polygon, reusing the surface of the
// previous frame if the polygon has not moved.
func (sr *SceneRenderer) surface(key faceKey, tex *shade.ShadedTexture, world geom3d.Polygon) (*shade.Surface, error) {
	if s, ok := sr.surfaces[key]; ok {
		if slices.Equal(s.world.Vertices, world.Vertices) {
			s.frame = sr.frame
			return s.surf, nil
		}
		s.surf.SetCache(nil)
		delete(sr.surfaces, key)
	}

	surf, err := newSurface(tex, world, &sr.Scene.Lighting)
	if err != nil {
		return nil, err
	}
	if sr.cache != nil {
		surf.SetCache(sr.cache)
	}
	sr.surfaces[key] = &sceneSurface{world: world, surf: surf, frame: sr.frame}
	return surf, nil
}

func newSurface(tex *shade.ShadedTexture, poly geom3d.Polygon, lighting *shade.Lighting) (*shade.Surface, error) {
	bounds, err := shade.TextureBoundsFor(poly, tex.Width(), tex.Height())
	if err != nil {
		return nil, err
	}
	return shade.NewSurface(tex, bounds, poly, lighting)
}
